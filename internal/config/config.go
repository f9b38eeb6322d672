// Package config loads caseflow configuration: the service endpoint for the
// client commands and listen settings for the bundled dev service.
package config

// Config is the root configuration for caseflow.
type Config struct {
	Service ServiceConfig `json:"service"`
	Serve   ServeConfig   `json:"serve"`
	Log     LogConfig     `json:"log"`
}

// ServiceConfig points the client at the remote task service.
type ServiceConfig struct {
	BaseURL string `json:"base_url"`
}

// ServeConfig holds the bundled dev service settings.
type ServeConfig struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	DBPath string `json:"db_path"`
	Seed   string `json:"seed,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `json:"level"`
}

// applyDefaults fills in zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Service.BaseURL == "" {
		cfg.Service.BaseURL = "http://localhost:8080"
	}
	if cfg.Serve.Host == "" {
		cfg.Serve.Host = "127.0.0.1"
	}
	if cfg.Serve.Port == 0 {
		cfg.Serve.Port = 8080
	}
	if cfg.Serve.DBPath == "" {
		cfg.Serve.DBPath = DefaultDBPath()
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
