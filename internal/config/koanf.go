// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/bookwise/config.yaml",
	"/etc/bookwise/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "BOOKWISE_CONFIG"

// EnvPrefix is stripped from environment variables before mapping them
// onto config keys: BOOKWISE_DATABASE_PATH -> database.path.
const EnvPrefix = "BOOKWISE_"

// Load builds the configuration from defaults, an optional YAML file,
// and BOOKWISE_-prefixed environment variables, in that order of
// increasing priority.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: built-in defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load default configuration: %w", err)
	}

	// Layer 2: YAML config file, if one exists
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the path of the first config file found, or
// empty string if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps BOOKWISE_ environment variables to config paths.
// The first underscore after the prefix separates the section from the
// key; remaining underscores stay in the key name.
//
// Examples:
//   - BOOKWISE_DATABASE_PATH            -> database.path
//   - BOOKWISE_PROVIDER_API_KEY         -> provider.api_key
//   - BOOKWISE_RECOMMEND_AI_SHARE_RATIO -> recommend.ai_share_ratio
//   - BOOKWISE_LOGGING_LEVEL            -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	// Keys without a section, such as BOOKWISE_CONFIG, are not config
	// values and must not land in the koanf root.
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return ""
	}

	switch section {
	case "database", "provider", "recommend", "server", "logging":
		return section + "." + rest
	default:
		// Unknown section: ignore rather than polluting the root.
		return ""
	}
}
