// Package page implements the single-page analysis command: crawl the
// surrounding site for context, then score the target page and apply the
// contextual adjustments.
package page

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"seolens/internal/common"
	"seolens/internal/domain"
	"seolens/models"
	"seolens/pkg/contextual"
	"seolens/pkg/crawler"
	"seolens/pkg/extract"
	"seolens/pkg/report"
	"seolens/pkg/scoring"
	"seolens/pkg/sitesummary"
)

func AnalyzeAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))
	if c.NArg() < 1 {
		return fmt.Errorf("usage: seolens page <url>")
	}

	targetURL, err := models.NormalizeStartURL(common.SanitizeURL(c.Args().First()))
	if err != nil {
		return err
	}
	// The crawl starts at the target so it is always the first page analyzed;
	// the rest of the budget gathers the site context.
	cfg, err := common.BuildConfig(c, targetURL)
	if err != nil {
		return err
	}
	lex, err := common.LoadLexicon(c)
	if err != nil {
		return err
	}

	logger.Info("starting page analysis", "url", targetURL, "context_pages", cfg.MaxPages)

	crawl := crawler.New(cfg, extract.New(lex), logger)
	batch, err := crawl.Run(c.Context)
	if err != nil {
		logger.Error("crawl failed", "error", err)
		os.Exit(2)
	}

	target := findTarget(batch, targetURL)
	if target == nil {
		logger.Error("target page could not be analyzed", "url", targetURL)
		os.Exit(2)
	}

	summary := sitesummary.Build(batch.Signals())
	base := scoring.Score(target.Signals)
	eval := contextual.Evaluate(target.Signals, base, summary)

	digest := domain.BuildDigest(targetURL, batch)
	digest.Contextual = eval
	digest.TargetURL = target.Signals.URL

	logger.Info("page analysis complete",
		"url", target.Signals.URL,
		"base_score", eval.BaseScore,
		"contextual_score", eval.ContextualScore)

	if c.Bool("json") {
		data, err := json.MarshalIndent(domain.NewEnvelope(digest, batch), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode digest: %w", err)
		}
		return common.WriteOutput(c, string(data)+"\n")
	}
	return common.WriteOutput(c, report.Generate(digest, nil, logger))
}

// findTarget locates the target page in the batch. The target is crawled
// first, but a redirect can change its final URL, so fall back to the first
// analyzed page.
func findTarget(batch *crawler.Batch, targetURL string) *crawler.Page {
	for _, p := range batch.Pages {
		if p.Signals.URL == targetURL {
			return p
		}
	}
	if len(batch.Pages) > 0 {
		return batch.Pages[0]
	}
	return nil
}
