package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStartURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"scheme added", "example.com/page", "https://example.com/page", false},
		{"https kept", "https://example.com", "https://example.com", false},
		{"http kept", "http://example.com", "http://example.com", false},
		{"empty", "   ", "", true},
		{"no host", "https://", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeStartURL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &CrawlConfig{}
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultMaxPages, cfg.MaxPages)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, DefaultTimeout, cfg.RequestTimeout)
	assert.Equal(t, DefaultCrawlDelay, cfg.CrawlDelay)
}

func TestApplyDefaultsClampsPageBudget(t *testing.T) {
	cfg := &CrawlConfig{MaxPages: 10000}
	cfg.ApplyDefaults()
	assert.Equal(t, MaxPagesCeiling, cfg.MaxPages)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "start_url: https://example.com\nmax_pages: 25\ncrawl_delay_seconds: 0.5\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", cfg.StartURL)
	assert.Equal(t, 25, cfg.MaxPages)
	assert.Equal(t, 500*time.Millisecond, cfg.CrawlDelay)
	assert.True(t, cfg.RespectRobots)
}

func TestLoadConfigRobotsOptOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("respect_robots: false\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.RespectRobots)
}

func TestBaseDomain(t *testing.T) {
	base, err := BaseDomain("https://example.com/a/b?q=1")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", base)

	_, err = BaseDomain("://bad")
	assert.Error(t, err)
}
