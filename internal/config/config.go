package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port        string `toml:"port"`
	MaxUploadMB int64  `toml:"max_upload_mb"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type RouterConfig struct {
	ParallelTimeoutSeconds int `toml:"parallel_timeout_seconds"`
}

type ProvidersConfig struct {
	CourtListenerToken   string `toml:"courtlistener_token"`
	CourtListenerBaseURL string `toml:"courtlistener_base_url"`
}

type Config struct {
	Server    ServerConfig    `toml:"server"`
	LLM       LLMConfig       `toml:"llm"`
	Router    RouterConfig    `toml:"router"`
	Providers ProvidersConfig `toml:"providers"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			MaxUploadMB: 32,
		},
		Router: RouterConfig{
			ParallelTimeoutSeconds: 6,
		},
	}
}
