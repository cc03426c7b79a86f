package models

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultUserAgent  = "seolens/1.0 (+https://github.com/seolens)"
	DefaultMaxPages   = 10
	MaxPagesCeiling   = 200
	DefaultTimeout    = 10 * time.Second
	DefaultCrawlDelay = time.Second
)

// CrawlConfig holds the runtime configuration for one crawl session.
// Values come from CLI flags, optionally seeded from a YAML config file.
type CrawlConfig struct {
	StartURL       string
	MaxPages       int
	RespectRobots  bool
	UserAgent      string
	RequestTimeout time.Duration
	CrawlDelay     time.Duration
}

// yamlConfig is the on-disk shape: durations are fractional seconds.
type yamlConfig struct {
	StartURL              string  `yaml:"start_url"`
	MaxPages              int     `yaml:"max_pages"`
	RespectRobots         *bool   `yaml:"respect_robots"`
	UserAgent             string  `yaml:"user_agent"`
	RequestTimeoutSeconds float64 `yaml:"request_timeout_seconds"`
	CrawlDelaySeconds     float64 `yaml:"crawl_delay_seconds"`
}

// LoadConfig reads a YAML crawl configuration file.
func LoadConfig(path string) (*CrawlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	raw := &yamlConfig{}
	if err := yaml.Unmarshal(data, raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := &CrawlConfig{
		StartURL:       raw.StartURL,
		MaxPages:       raw.MaxPages,
		RespectRobots:  true,
		UserAgent:      raw.UserAgent,
		RequestTimeout: time.Duration(raw.RequestTimeoutSeconds * float64(time.Second)),
		CrawlDelay:     time.Duration(raw.CrawlDelaySeconds * float64(time.Second)),
	}
	if raw.RespectRobots != nil {
		cfg.RespectRobots = *raw.RespectRobots
	}
	return cfg, nil
}

// ApplyDefaults fills zero values and clamps the page budget.
func (c *CrawlConfig) ApplyDefaults() {
	if c.MaxPages <= 0 {
		c.MaxPages = DefaultMaxPages
	}
	if c.MaxPages > MaxPagesCeiling {
		c.MaxPages = MaxPagesCeiling
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultTimeout
	}
	if c.CrawlDelay <= 0 {
		c.CrawlDelay = DefaultCrawlDelay
	}
}

// NormalizeStartURL prepends https:// when the scheme is missing and
// validates the result.
func NormalizeStartURL(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "", fmt.Errorf("empty URL")
	}
	if !strings.HasPrefix(cleaned, "http://") && !strings.HasPrefix(cleaned, "https://") {
		cleaned = "https://" + cleaned
	}
	parsed, err := url.Parse(cleaned)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid URL %q: missing host", raw)
	}
	return cleaned, nil
}

// BaseDomain returns the scheme://host origin a crawl must stay inside.
func BaseDomain(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid URL %q: missing host", rawURL)
	}
	return fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host), nil
}
