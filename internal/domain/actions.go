// Package domain implements the whole-site analysis command: crawl, score
// every page, summarize the site structure and render a report.
package domain

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"github.com/urfave/cli/v2"

	"seolens/internal/common"
	"seolens/models"
	"seolens/pkg/crawler"
	"seolens/pkg/extract"
	"seolens/pkg/report"
	"seolens/pkg/scoring"
	"seolens/pkg/sitesummary"
	"seolens/pkg/store"
)

func AnalyzeAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))
	if c.NArg() < 1 {
		return fmt.Errorf("usage: seolens domain <url>")
	}

	startURL, err := models.NormalizeStartURL(common.SanitizeURL(c.Args().First()))
	if err != nil {
		return err
	}
	cfg, err := common.BuildConfig(c, startURL)
	if err != nil {
		return err
	}
	lex, err := common.LoadLexicon(c)
	if err != nil {
		return err
	}

	logger.Info("starting domain analysis",
		"url", startURL, "max_pages", cfg.MaxPages, "respect_robots", cfg.RespectRobots)

	crawl := crawler.New(cfg, extract.New(lex), logger)
	batch, err := crawl.Run(c.Context)
	if err != nil {
		logger.Error("crawl failed", "error", err)
		os.Exit(2)
	}

	digest := BuildDigest(startURL, batch)
	logger.Info("analysis complete",
		"pages", len(digest.Pages), "skipped", len(batch.Skips), "avg_score", digest.Stats().Avg)

	if c.String("db") != "" || c.Bool("save") {
		if err := persist(c, startURL, digest, logger); err != nil {
			logger.Warn("failed to persist session", "error", err)
		}
	}

	if c.Bool("json") {
		data, err := json.MarshalIndent(NewEnvelope(digest, batch), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode digest: %w", err)
		}
		return common.WriteOutput(c, string(data)+"\n")
	}
	return common.WriteOutput(c, report.Generate(digest, nil, logger))
}

// BuildDigest scores every crawled page and assembles the digest handed to
// the report layer.
func BuildDigest(startURL string, batch *crawler.Batch) *models.AnalysisDigest {
	digest := &models.AnalysisDigest{Domain: hostOf(startURL)}
	for _, page := range batch.Pages {
		digest.Pages = append(digest.Pages, models.PageAnalysis{
			Signals:    *page.Signals,
			Score:      *scoring.Score(page.Signals),
			Enrichment: page.Enrichment,
		})
	}
	digest.Summary = *sitesummary.Build(batch.Signals())
	digest.Meta = models.CoverageOf(digest.Pages)
	return digest
}

// Envelope is the JSON result printed by --json: the digest plus batch-level
// statistics and the per-URL skip records.
type Envelope struct {
	*models.AnalysisDigest
	Stats models.ScoreStats `json:"stats"`
	Skips []crawler.Skip    `json:"skips,omitempty"`
}

func NewEnvelope(digest *models.AnalysisDigest, batch *crawler.Batch) *Envelope {
	return &Envelope{
		AnalysisDigest: digest,
		Stats:          digest.Stats(),
		Skips:          batch.Skips,
	}
}

func persist(c *cli.Context, startURL string, digest *models.AnalysisDigest, logger *slog.Logger) error {
	path := c.String("db")
	if path == "" {
		path = store.DefaultDBName
	}
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	sessionID, err := db.SaveSession(startURL, digest)
	if err != nil {
		return err
	}
	logger.Info("session saved", "session_id", sessionID, "db", db.Path())
	return nil
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return parsed.Host
}
