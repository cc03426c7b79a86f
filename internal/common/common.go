// Package common holds the small helpers shared by the CLI commands.
package common

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"seolens/models"
	"seolens/pkg/lexicon"
)

// NewLogger builds the JSON logger used by every command. Quiet mode keeps
// errors only, so stdout output stays scriptable.
func NewLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

var markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

// SanitizeURL cleans up common copy-paste artifacts: surrounding whitespace,
// markdown link syntax and stray punctuation.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}
	for _, char := range []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"} {
		cleaned = strings.TrimSuffix(cleaned, char)
	}
	for _, char := range []string{"(", "[", "<", "\"", "'"} {
		cleaned = strings.TrimPrefix(cleaned, char)
	}
	return strings.TrimSpace(cleaned)
}

// BuildConfig assembles the crawl configuration: YAML file first when
// --config is set, then flag overrides, then defaults.
func BuildConfig(c *cli.Context, startURL string) (*models.CrawlConfig, error) {
	cfg := &models.CrawlConfig{RespectRobots: true}
	if path := c.String("config"); path != "" {
		loaded, err := models.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.StartURL = startURL
	if c.IsSet("max-pages") {
		cfg.MaxPages = c.Int("max-pages")
	}
	if c.Bool("no-robots") {
		cfg.RespectRobots = false
	}
	if c.IsSet("user-agent") {
		cfg.UserAgent = c.String("user-agent")
	}
	if c.IsSet("timeout") {
		cfg.RequestTimeout = time.Duration(c.Float64("timeout") * float64(time.Second))
	}
	if c.IsSet("delay") {
		cfg.CrawlDelay = time.Duration(c.Float64("delay") * float64(time.Second))
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// LoadLexicon returns the extraction tables, merged with a YAML override
// file when --lexicon is set.
func LoadLexicon(c *cli.Context) (*lexicon.Tables, error) {
	if path := c.String("lexicon"); path != "" {
		return lexicon.LoadFile(path)
	}
	return lexicon.Default(), nil
}

// WriteOutput writes the report to --output when set, stdout otherwise.
func WriteOutput(c *cli.Context, text string) error {
	if path := c.String("output"); path != "" {
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Print(text)
	return nil
}
