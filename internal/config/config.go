// Package config holds process configuration and logger construction.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for the ingestion service.
type Config struct {
	// WatchDirectories are scanned in order on every run.
	WatchDirectories []string `yaml:"watch_directories"`
	// LogDirectory holds the history store, the metadata store and
	// the daily diagnostic log.
	LogDirectory string `yaml:"log_directory"`
	// Port is the HTTP listen port for serve mode.
	Port int `yaml:"port"`
	// Recursive controls whether subdirectories are scanned.
	Recursive bool `yaml:"recursive"`
	// Workers bounds parallel extraction; 1 means sequential.
	Workers int `yaml:"workers"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when nothing is provided.
func Default() Config {
	return Config{
		WatchDirectories: []string{"data/incoming"},
		LogDirectory:     "logs",
		Port:             8080,
		Recursive:        true,
		Workers:          1,
		LogLevel:         "info",
	}
}

// Load builds the configuration from defaults, an optional yaml file,
// and environment overrides, in that order.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DIP_WATCH_DIRS"); v != "" {
		cfg.WatchDirectories = splitDirs(v)
	}
	if v := os.Getenv("DIP_LOG_DIR"); v != "" {
		cfg.LogDirectory = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("DIP_WORKERS"); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			cfg.Workers = workers
		}
	}
	if v := os.Getenv("DIP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func splitDirs(v string) []string {
	var dirs []string
	for _, d := range strings.Split(v, ",") {
		if d = strings.TrimSpace(d); d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// ParseLogLevel maps a config string onto a slog level, defaulting to
// info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
