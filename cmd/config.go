package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// configEnvVar names the environment variable that can point at a config file
// instead of the --config flag.
const configEnvVar = "LOWPIX_CONFIG"

// Config holds the defaults for command-line options. Flags given explicitly
// always win over the file.
type Config struct {
	// Codec is the codec `encode` uses when --codec isn't given.
	Codec string `yaml:"codec"`
	// Gzip makes `encode` wrap blocks in gzip.
	Gzip bool `yaml:"gzip"`
	// Baselines makes `stats` include general-purpose compressors.
	Baselines bool `yaml:"baselines"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Codec:    "lz77",
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML config file on top of the defaults. There is no
// search path: a config is only ever read from the path given.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Level returns the log level named by the config.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
