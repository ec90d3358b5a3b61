package main

import (
	"errors"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the sample service settings.
type Config struct {
	Addr      string        `koanf:"addr"`
	AuthToken string        `koanf:"auth_token"`
	RateLimit float64       `koanf:"rate_limit"`
	RateBurst int           `koanf:"rate_burst"`
	LogLevel  string        `koanf:"log_level"`
	IdleTTL   time.Duration `koanf:"idle_ttl"`
}

func defaultConfig() Config {
	return Config{
		Addr:      ":8080",
		AuthToken: "secret",
		RateLimit: 50,
		RateBurst: 100,
		LogLevel:  "info",
		IdleTTL:   5 * time.Minute,
	}
}

// loadConfig layers defaults, an optional YAML file, and SAMPLE_-prefixed
// environment variables, lowest precedence first.
func loadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// SAMPLE_ADDR, SAMPLE_AUTH_TOKEN, SAMPLE_RATE_LIMIT, ...
	envProvider := env.Provider("SAMPLE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "sample_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	return &cfg, nil
}
