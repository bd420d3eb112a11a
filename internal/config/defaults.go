package config

// Default room name patterns, matching the label formats seen across the
// building's plans (PH-D1, 01_02, A.1.01, A101, 202A, short codes).
var defaultRoomPatterns = []string{
	`^[A-Z0-9]{1,4}[-._][A-Z0-9]{1,4}`,
	`^\d{2}_\d{2}$`,
	`^[A-Z]\.\d\.\d{2}$`,
	`^PH-D\d+\.?\d*_?\d*$`,
	`^[A-Z]{1,2}\d{2,4}$`,
	`^\d{2,4}[A-Z]?$`,
	`^[A-Z0-9]{2,8}$`,
	`^[A-Z0-9.\-_]{2,10}$`,
}

// Default exclusions: area measurements, plan metadata, and bare numbers.
var defaultExcludePatterns = []string{
	`^\d+\.\d+m2$`,
	`^(Area|Type|Room \d+\.\d+m2):`,
	`^(width|height|scale|rotation|metadata|properties)$`,
	`^[\d.]+$`,
}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Building.Name == "" {
		cfg.Building.Name = "building"
	}
	if cfg.Extract.Page == 0 {
		cfg.Extract.Page = 1
	}
	if len(cfg.Markers.EntranceKeywords) == 0 {
		cfg.Markers.EntranceKeywords = []string{"indgang", "entrance", "entry"}
	}
	if len(cfg.Markers.RoomPatterns) == 0 {
		cfg.Markers.RoomPatterns = append([]string(nil), defaultRoomPatterns...)
	}
	if len(cfg.Markers.ExcludePatterns) == 0 {
		cfg.Markers.ExcludePatterns = append([]string(nil), defaultExcludePatterns...)
	}
	if len(cfg.Markers.FontSizeRanges) == 0 {
		// The plans label rooms at 3.4pt; one storey's plan uses 49.2pt.
		cfg.Markers.FontSizeRanges = []FontSizeRange{
			{Min: 3.2, Max: 3.6},
			{Min: 49.0, Max: 49.4},
		}
	}
	if cfg.Markers.MinTextLength == 0 {
		cfg.Markers.MinTextLength = 1
	}
	if cfg.Markers.MaxTextLength == 0 {
		cfg.Markers.MaxTextLength = 15
	}
	if cfg.Render.Scale == 0 {
		cfg.Render.Scale = 2.0
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/rumfinder/data/index.db"
	}
}
