package config

import "time"

// Config holds runtime settings for the Lumen CLI.
type Config struct {
	ServerEndpointAddr string
	CachePath          string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.CachePath = "lumen-cache.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig applies defaults, then overlays the JSON file at path when
// path is non-empty. Command-line flags are applied by the caller.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if path == "" {
		return cfg, nil
	}
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}
