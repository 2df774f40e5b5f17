package config

import (
	"encoding/json"
	"os"

	"github.com/mlazarev/logbook/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields leave the current Config value untouched.
type JsonConfig struct {
	DatabaseDriver  *string `json:"database_driver"`
	DatabaseDSN     *string `json:"database_dsn"`
	Locale          *string `json:"locale"`
	ExportChunkSize *int    `json:"export_chunk_size"`
}

// parseJson overlays cfg with values from the JSON file given via the
// -c/-config flags. No flag means no JSON is loaded. Read and unmarshal
// errors panic; loading a broken config file should not be survivable.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDriver != nil {
		cfg.DatabaseDriver = *jc.DatabaseDriver
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.Locale != nil {
		cfg.Locale = *jc.Locale
	}
	if jc.ExportChunkSize != nil {
		cfg.ExportChunkSize = *jc.ExportChunkSize
	}
}
