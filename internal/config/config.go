package config

import (
	"encoding/json"
	"os"
)

// Config carries the launcher settings read from the optional
// eqx-config.json file. Command-line flags take precedence over it.
type Config struct {
	JavaPath   string `json:"java_path"`
	WorkingDir string `json:"working_dir"`
	Debug      bool   `json:"debug"`

	// Properties are framework property overrides applied on top of the
	// computed defaults. An empty value clears the default.
	Properties map[string]string `json:"properties"`

	// Args are program arguments prepended to those given on the
	// command line.
	Args []string `json:"args"`
}

// Load reads the config file at configPath, falling back to the
// EQX_CONFIG_PATH environment variable and then to eqx-config.json in
// the working directory. A missing file yields the defaults.
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		JavaPath:   "java",
		Properties: make(map[string]string),
	}

	if configPath == "" {
		configPath = os.Getenv("EQX_CONFIG_PATH")
		if configPath == "" {
			configPath = "eqx-config.json"
		}
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if cfg.JavaPath == "" {
		cfg.JavaPath = "java"
	}
	if cfg.Properties == nil {
		cfg.Properties = make(map[string]string)
	}

	return cfg, nil
}
