package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/docstudy/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Timeouts
// are given in whole seconds; after parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerURL       string `json:"server_url"`
	RequestTimeoutS int    `json:"request_timeout_s"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags (see
// flagx.JsonConfigFlags); when neither is given, nothing is loaded.
// Read or unmarshal errors panic (caller may recover if desired). Only
// fields present in the file override the Config.
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

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeoutS > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutS) * time.Second
	}
}
