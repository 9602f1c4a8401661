package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.DeezerAPIURL != "https://api.deezer.com" {
		t.Errorf("DeezerAPIURL = %q", cfg.DeezerAPIURL)
	}
	if cfg.SearchDefaultCount != 5 {
		t.Errorf("SearchDefaultCount = %d, want 5", cfg.SearchDefaultCount)
	}
	if cfg.SearchPageSize != 50 {
		t.Errorf("SearchPageSize = %d, want 50", cfg.SearchPageSize)
	}
	if cfg.SearchMaxPages != 5 {
		t.Errorf("SearchMaxPages = %d, want 5", cfg.SearchMaxPages)
	}
	if cfg.DeezerTimeout != 10*time.Second {
		t.Errorf("DeezerTimeout = %v, want 10s", cfg.DeezerTimeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SEARCH_DEFAULT_COUNT", "8")
	t.Setenv("SEARCH_MAX_PAGES", "3")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := Load()

	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want 9090", cfg.ServerPort)
	}
	if cfg.SearchDefaultCount != 8 {
		t.Errorf("SearchDefaultCount = %d, want 8", cfg.SearchDefaultCount)
	}
	if cfg.SearchMaxPages != 3 {
		t.Errorf("SearchMaxPages = %d, want 3", cfg.SearchMaxPages)
	}
	if !cfg.MinioUseSSL {
		t.Error("MinioUseSSL = false, want true")
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SEARCH_DEFAULT_COUNT", "five")

	cfg := Load()

	if cfg.SearchDefaultCount != 5 {
		t.Errorf("SearchDefaultCount = %d, want the default 5 for a malformed value", cfg.SearchDefaultCount)
	}
}
