// Package main is the Rumfinder CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kortnav/rumfinder/internal/cli"
	"github.com/kortnav/rumfinder/internal/config"
	"github.com/kortnav/rumfinder/internal/export"
	"github.com/kortnav/rumfinder/internal/extract"
	"github.com/kortnav/rumfinder/internal/models"
	"github.com/kortnav/rumfinder/internal/navigate"
	"github.com/kortnav/rumfinder/internal/server"
	"github.com/kortnav/rumfinder/internal/storage"
	"github.com/kortnav/rumfinder/internal/watcher"
	"github.com/kortnav/rumfinder/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/rumfinder/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "rumfinder serve" from the project dir uses the
// project's config (including debug).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "serve":
		runServe()
	case "search":
		runSearch()
	case "export":
		runExport()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("rumfinder version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (document changes, search requests, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	nav, store, err := initializeNavigator(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}
	if err := nav.Load(context.Background()); err != nil {
		logger.Fatal("Failed to load building index", zap.Error(err))
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	var watchSvc *watcher.Watcher
	if cfg.Watch.EnabledOrDefault() {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc = watcher.New(
			cfg.Building.Floors.All(),
			func(path string) {
				logger.Info("floor document changed, reloading", zap.String("path", path))
				if err := nav.Load(context.Background()); err != nil {
					logger.Warn("index reload failed", zap.Error(err))
				}
			},
			watchOpts...,
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
	}

	srv := server.NewServer(nav, store, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watchSvc != nil {
		watchSvc.Stop()
	}
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildSearchQuery joins all positional args with spaces so multi-word room
// names work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the
// query to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: rumfinder search [flags] <room>\n\n")
	fmt.Fprintf(fs.Output(), "Room is all remaining arguments joined by spaces. Matching is exact but\ncase-insensitive and ignores surrounding whitespace.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  rumfinder search A.1.10
  rumfinder search "a.1.10 "              # same room
  rumfinder search --output json A.1.10   # parseable output
  rumfinder search --server "" A.1.10     # load the index directly, no server
`)
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = load the index directly)")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	query := buildSearchQuery(fs.Args())
	if query == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
		format = cli.OutputText
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	var result *models.SearchResult
	if *serverURL != "" {
		// Use the HTTP API when the server is running (avoids an SQLite
		// lock conflict with the cache).
		var err error
		result, err = searchViaHTTP(*serverURL, query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		nav := mustLoadNavigator(*configPath)
		var err error
		result, err = nav.Search(query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
	}

	if err := cli.WriteSearchResult(os.Stdout, result, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
	if !result.Found && format == cli.OutputText {
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL, query string) (*models.SearchResult, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var result models.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outPath := fs.String("out", "rooms.xlsx", "output workbook path")
	_ = fs.Parse(os.Args[2:])

	nav := mustLoadNavigator(*configPath)
	b := nav.Building()
	if err := export.WriteFile(*outPath, b); err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d rooms and %d entrances to %s\n", b.RoomCount(), b.EntranceCount(), *outPath)
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Building  string `json:"building"`
	Floors    int    `json:"floors"`
	Rooms     int    `json:"rooms"`
	Entrances int    `json:"entrances"`
	Cache     *struct {
		Builds    int64 `json:"builds"`
		Rooms     int64 `json:"rooms"`
		Entrances int64 `json:"entrances"`
		SizeBytes int64 `json:"size_bytes"`
	} `json:"cache,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = load the index directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		nav := mustLoadNavigator(*configPath)
		b := nav.Building()
		status = statusResponse{
			Building:  b.Name,
			Floors:    len(b.Floors()),
			Rooms:     b.RoomCount(),
			Entrances: b.EntranceCount(),
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("building:   %s\n", status.Building)
		fmt.Printf("floors:     %d\n", status.Floors)
		fmt.Printf("rooms:      %d\n", status.Rooms)
		fmt.Printf("entrances:  %d\n", status.Entrances)
		if status.Cache != nil {
			fmt.Println()
			fmt.Println("# index cache")
			fmt.Printf("builds:     %d\n", status.Cache.Builds)
			fmt.Printf("size_bytes: %d\n", status.Cache.SizeBytes)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// initializeNavigator wires the extractor and optional index cache into a
// Navigator. The returned store is nil when no database path is configured.
func initializeNavigator(cfg *config.Config, logger *zap.Logger) (*navigate.Navigator, storage.Store, error) {
	opts := []navigate.Option{navigate.WithLogger(logger)}
	var store storage.Store
	if cfg.Storage.DatabasePath != "" {
		s, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize index cache: %w", err)
		}
		store = s
		opts = append(opts, navigate.WithStore(s))
	}
	nav := navigate.New(cfg, extract.NewPDFExtractor(), opts...)
	return nav, store, nil
}

// mustLoadNavigator loads config and builds the index for one-shot commands,
// exiting on any failure. The cache store is left open for process lifetime.
func mustLoadNavigator(configPath string) *navigate.Navigator {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	nav, _, err := initializeNavigator(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := nav.Load(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load building index: %v\n", err)
		os.Exit(1)
	}
	return nav
}

func printUsage() {
	fmt.Println(`rumfinder - Floor-plan room finder

Usage:
  rumfinder serve [flags]           Start the HTTP server
  rumfinder search [flags] <room>   Find a room and its nearest entrance
  rumfinder export [flags]          Export the room inventory as XLSX
  rumfinder status [flags]          Show building/index status
  rumfinder version                 Show version
  rumfinder help                    Show this help

Serve Flags:
  --config string    Config file path (default: /usr/local/etc/rumfinder/config.yaml)
  --debug            Enable debug logging (document changes, search requests, etc.)

Search Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to load the index directly.
  --output string    Output format: text or json (default: text)

Export Flags:
  --config string    Config file path
  --out string       Output workbook path (default: rooms.xlsx)

Status Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to load the index directly.
  --output string    Output format: text or json (default: text)

Examples:
  rumfinder serve
  rumfinder search A.1.10
  rumfinder search --output json A.1.10
  rumfinder export --out building.xlsx
  rumfinder status`)
}
