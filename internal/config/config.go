package config

// Config holds runtime settings for the logbook CLI.
//
// DatabaseDriver selects the store backend, "sqlite" (default) or
// "postgres"; DatabaseDSN is interpreted by the selected backend.
type Config struct {
	DatabaseDriver  string
	DatabaseDSN     string
	Locale          string
	ExportChunkSize int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "logbook.db"
	c.Locale = "en"
	c.ExportChunkSize = 100
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
