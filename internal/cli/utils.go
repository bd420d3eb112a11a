// Package cli provides CLI utilities for Rumfinder.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kortnav/rumfinder/internal/models"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// WriteSearchResult writes a search result to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResult(w io.Writer, result *models.SearchResult, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		writeSearchResultText(w, result)
		return nil
	}
}

func writeSearchResultText(w io.Writer, result *models.SearchResult) {
	if !result.Found {
		fmt.Fprintf(w, "\nRoom %q not found (%dms)\n", result.Query, result.QueryTime)
		return
	}
	fmt.Fprintf(w, "\nFound %s on %s (%dms)\n\n", result.Room, result.Floor, result.QueryTime)
	fmt.Fprintf(w, "Room position: (%.4f, %.4f)\n", result.RoomPosition.X, result.RoomPosition.Y)
	fmt.Fprintf(w, "Nearest entrance: (%.4f, %.4f)\n", result.Entrance.X, result.Entrance.Y)
	fmt.Fprintf(w, "Floor plan: %s (%.0fx%.0f pt, render scale %.1f)\n",
		result.DocumentPath, result.PageWidth, result.PageHeight, result.RenderScale)
}

// PrintSearchResult prints a search result to stdout in text format.
func PrintSearchResult(result *models.SearchResult) {
	_ = WriteSearchResult(os.Stdout, result, OutputText)
}
