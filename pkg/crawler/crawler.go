// Package crawler runs one breadth-first, single-threaded crawl session:
// FIFO frontier, same-domain containment, page budget, robots gate and a
// politeness delay between requests. Per-URL failures become recorded skips;
// only an empty batch is terminal.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"golang.org/x/time/rate"

	"seolens/models"
	"seolens/pkg/extract"
	"seolens/pkg/fetcher"
	"seolens/pkg/robots"
)

// ErrEmptyResult is returned when a crawl finishes with zero analyzed pages.
// No score can be computed from an empty batch.
var ErrEmptyResult = errors.New("no pages could be crawled")

// SkipReason classifies why one frontier URL produced no PageSignals.
type SkipReason string

const (
	SkipRobots      SkipReason = "robots_disallowed"
	SkipFetchError  SkipReason = "fetch_error"
	SkipBadStatus   SkipReason = "non_2xx_status"
	SkipNotHTML     SkipReason = "not_html"
	SkipParseError  SkipReason = "parse_error"
	SkipOffDomain   SkipReason = "off_domain"
	SkipExtractFail SkipReason = "extract_error"
)

// Skip records one URL the crawl visited but did not analyze.
type Skip struct {
	URL    string     `json:"url"`
	Reason SkipReason `json:"reason"`
	Detail string     `json:"detail,omitempty"`
}

// Page is one successfully analyzed page with its raw body retained for
// report enrichment.
type Page struct {
	Signals    *models.PageSignals
	Enrichment *models.PageEnrichment
}

// Batch is the result of one crawl session.
type Batch struct {
	Pages []*Page
	Skips []Skip
}

// Signals strips the batch down to the extraction records the scorer and
// summarizer consume.
func (b *Batch) Signals() []*models.PageSignals {
	out := make([]*models.PageSignals, len(b.Pages))
	for i, p := range b.Pages {
		out[i] = p.Signals
	}
	return out
}

// Crawler owns the per-session state. It must not be shared across sessions;
// visited and frontier belong to exactly one Run call.
type Crawler struct {
	cfg       *models.CrawlConfig
	fetcher   *fetcher.Fetcher
	gate      *robots.Gate
	extractor *extract.Extractor
	limiter   *rate.Limiter
	logger    *slog.Logger
}

func New(cfg *models.CrawlConfig, ext *extract.Extractor, logger *slog.Logger) *Crawler {
	return &Crawler{
		cfg:       cfg,
		fetcher:   fetcher.New(cfg.RequestTimeout, cfg.UserAgent),
		gate:      robots.NewGate(cfg.RequestTimeout, logger),
		extractor: ext,
		limiter:   rate.NewLimiter(rate.Every(cfg.CrawlDelay), 1),
		logger:    logger,
	}
}

// Run crawls breadth-first from the configured start URL until the frontier
// drains or the page budget is reached. Cancellation is checked before every
// fetch; pages collected before cancellation remain valid.
func (c *Crawler) Run(ctx context.Context) (*Batch, error) {
	startURL, err := models.NormalizeStartURL(c.cfg.StartURL)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(startURL)
	if err != nil {
		return nil, fmt.Errorf("invalid start URL: %w", err)
	}

	if c.cfg.RespectRobots {
		if err := c.gate.Load(ctx, startURL); err != nil {
			c.logger.Warn("robots policy load failed, continuing", "error", err)
		}
	}

	batch := &Batch{}
	visited := make(map[string]struct{})
	frontier := []string{startURL}

	for len(frontier) > 0 && len(batch.Pages) < c.cfg.MaxPages {
		if err := ctx.Err(); err != nil {
			c.logger.Info("crawl cancelled", "pages", len(batch.Pages))
			break
		}

		current := frontier[0]
		frontier = frontier[1:]
		if _, seen := visited[current]; seen {
			continue
		}
		visited[current] = struct{}{}

		page, skip := c.visit(ctx, current, base)
		if skip != nil {
			c.logger.Info("page skipped", "url", current, "reason", skip.Reason, "detail", skip.Detail)
			batch.Skips = append(batch.Skips, *skip)
			continue
		}

		batch.Pages = append(batch.Pages, page)
		c.logger.Info("page analyzed",
			"url", current,
			"chars", page.Signals.BodyCharCount,
			"links", page.Signals.InternalLinks.Count,
			"progress", fmt.Sprintf("%d/%d", len(batch.Pages), c.cfg.MaxPages))

		for _, link := range page.Signals.DiscoveredLinks {
			if _, seen := visited[link]; !seen {
				frontier = append(frontier, link)
			}
		}
	}

	if len(batch.Pages) == 0 {
		return batch, fmt.Errorf("%w: start URL %s", ErrEmptyResult, startURL)
	}
	return batch, nil
}

// visit fetches and analyzes one URL. A non-nil Skip means the URL produced
// no signals; the crawl always continues.
func (c *Crawler) visit(ctx context.Context, rawURL string, base *url.URL) (*Page, *Skip) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host != base.Host {
		return nil, &Skip{URL: rawURL, Reason: SkipOffDomain}
	}

	if c.cfg.RespectRobots && !c.gate.CanFetch(c.cfg.UserAgent, rawURL) {
		return nil, &Skip{URL: rawURL, Reason: SkipRobots}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Skip{URL: rawURL, Reason: SkipFetchError, Detail: err.Error()}
	}

	result, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, &Skip{URL: rawURL, Reason: SkipFetchError, Detail: err.Error()}
	}
	if result.StatusCode < 200 || result.StatusCode > 299 {
		return nil, &Skip{URL: rawURL, Reason: SkipBadStatus, Detail: fmt.Sprintf("status %d", result.StatusCode)}
	}
	if !result.IsHTML() {
		return nil, &Skip{URL: rawURL, Reason: SkipNotHTML, Detail: result.ContentType}
	}

	doc, err := result.Document()
	if err != nil {
		return nil, &Skip{URL: rawURL, Reason: SkipParseError, Detail: err.Error()}
	}

	sig, err := c.extractor.Extract(doc, result.FinalURL)
	if err != nil {
		return nil, &Skip{URL: rawURL, Reason: SkipExtractFail, Detail: err.Error()}
	}

	return &Page{
		Signals:    sig,
		Enrichment: extract.Enrich(result.FinalURL, result.Body),
	}, nil
}
