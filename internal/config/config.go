package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Ultrahuman UltrahumanConfig `yaml:"ultrahuman"`
	Server     ServerConfig     `yaml:"server"`
	Auth       AuthConfig       `yaml:"auth"`
	Tailscale  TailscaleConfig  `yaml:"tailscale"`
}

type UltrahumanConfig struct {
	BaseURL      string `yaml:"base_url"`
	Token        string `yaml:"token"`
	DefaultEmail string `yaml:"default_email"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix NIGHTRING_ and underscore-separated
// paths:
//
//	NIGHTRING_UH_BASE_URL, NIGHTRING_UH_TOKEN, NIGHTRING_UH_DEFAULT_EMAIL,
//	NIGHTRING_SERVER_HOST, NIGHTRING_SERVER_PORT,
//	NIGHTRING_AUTH_API_KEY
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NIGHTRING_UH_BASE_URL"); v != "" {
		cfg.Ultrahuman.BaseURL = v
	}
	if v := os.Getenv("NIGHTRING_UH_TOKEN"); v != "" {
		cfg.Ultrahuman.Token = v
	}
	if v := os.Getenv("NIGHTRING_UH_DEFAULT_EMAIL"); v != "" {
		cfg.Ultrahuman.DefaultEmail = v
	}
	if v := os.Getenv("NIGHTRING_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("NIGHTRING_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("NIGHTRING_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
}

// The partner token is the only hard requirement: without it every fetch
// would fail, so a missing token is fatal at startup rather than per-request.
func (c *Config) validate() error {
	if c.Ultrahuman.Token == "" {
		return fmt.Errorf("ultrahuman.token is required")
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	return nil
}
