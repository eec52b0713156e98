package config

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/logfields"
)

// Load reads, normalizes, defaults and validates the site configuration at
// configPath. Environment references are expanded after .env files beside
// the config are loaded.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, derrors.ConfigError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read configuration file").
			WithContext("path", configPath).
			Build()
	}
	loadEnvFiles(configPath)

	cfg, err := Parse(data)
	if err != nil {
		if ce, ok := derrors.AsClassified(err); ok {
			return nil, ce.WithContext("file", configPath)
		}
		return nil, err
	}
	slog.Debug("Loaded site configuration", logfields.Config(configPath), logfields.Snapshot(cfg.Snapshot()))
	return cfg, nil
}

// Parse runs the load pipeline on raw YAML without touching the filesystem.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(expandEnv(string(data))), &cfg); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to parse configuration").Fatal().Build()
	}

	res := NormalizeConfig(&cfg)
	for _, w := range res.Warnings {
		slog.Warn("Config normalization", slog.String("detail", w))
	}
	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
