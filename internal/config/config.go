// Package config provides configuration for the ClipFlow TUI.
// Values come from environment variables with sensible defaults; a .env
// file in the working directory is loaded first when present.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL       = "http://localhost:8000"
	DefaultLogLevel     = "info"
	DefaultPollInterval = 2 * time.Second

	EnvAPIURL       = "CLIPFLOW_API_URL"
	EnvDownloadDir  = "CLIPFLOW_DOWNLOAD_DIR"
	EnvLogLevel     = "CLIPFLOW_LOG_LEVEL"
	EnvLogFile      = "CLIPFLOW_LOG_FILE"
	EnvPollInterval = "CLIPFLOW_POLL_INTERVAL"

	dataDirName = ".clipflow"
	logFilename = "clipflow.log"
)

// Config holds the resolved runtime configuration.
type Config struct {
	APIURL       string
	DownloadDir  string
	LogLevel     string
	LogFile      string
	PollInterval time.Duration
}

// Load reads .env (if present) and the environment, returning the
// effective configuration.
func Load() (*Config, error) {
	// Missing .env is not an error; explicit env vars still win below
	// because godotenv never overrides existing variables.
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:       DefaultAPIURL,
		DownloadDir:  defaultDownloadDir(),
		LogLevel:     DefaultLogLevel,
		LogFile:      defaultLogFile(),
		PollInterval: DefaultPollInterval,
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(EnvDownloadDir); v != "" {
		cfg.DownloadDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv(EnvPollInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPollInterval, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid %s: must be positive", EnvPollInterval)
		}
		cfg.PollInterval = d
	}

	return cfg, nil
}

func defaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

func defaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return logFilename
	}
	return filepath.Join(home, dataDirName, logFilename)
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)
