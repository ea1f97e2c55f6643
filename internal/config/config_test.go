package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("api url = %q, want %q", cfg.APIURL, DefaultAPIURL)
	}
	if cfg.PollInterval != DefaultPollInterval {
		t.Errorf("poll interval = %v, want %v", cfg.PollInterval, DefaultPollInterval)
	}
	if cfg.DownloadDir == "" || cfg.LogFile == "" {
		t.Error("download dir and log file must have defaults")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://edit-station:9000")
	t.Setenv(EnvDownloadDir, "/tmp/cuts")
	t.Setenv(EnvPollInterval, "500ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://edit-station:9000" {
		t.Errorf("api url = %q", cfg.APIURL)
	}
	if cfg.DownloadDir != "/tmp/cuts" {
		t.Errorf("download dir = %q", cfg.DownloadDir)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Errorf("poll interval = %v", cfg.PollInterval)
	}
}

func TestLoadRejectsBadPollInterval(t *testing.T) {
	t.Setenv(EnvPollInterval, "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparsable poll interval")
	}

	t.Setenv(EnvPollInterval, "-3s")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative poll interval")
	}
}
