package extract

import (
	"net/url"
	"strings"

	"github.com/araddon/dateparse"
	readability "github.com/go-shiori/go-readability"

	"seolens/models"
)

// Enrich runs readability extraction over the raw HTML and returns the
// article metadata for the report digest. Failures are non-fatal; pages
// readability cannot parse simply carry no enrichment.
func Enrich(pageURL string, rawHTML []byte) *models.PageEnrichment {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	article, err := readability.FromReader(strings.NewReader(string(rawHTML)), parsed)
	if err != nil {
		return nil
	}

	enrichment := &models.PageEnrichment{
		Byline:   strings.TrimSpace(article.Byline),
		Excerpt:  strings.TrimSpace(article.Excerpt),
		SiteName: strings.TrimSpace(article.SiteName),
	}
	if article.PublishedTime != nil {
		enrichment.PublishedTime = article.PublishedTime.Format("2006-01-02")
	}
	if enrichment.Byline == "" && enrichment.Excerpt == "" &&
		enrichment.SiteName == "" && enrichment.PublishedTime == "" {
		return nil
	}
	return enrichment
}

// normalizeDate parses a loosely formatted date string and renders it as
// YYYY-MM-DD. Unparseable input yields the empty string.
func normalizeDate(raw string) string {
	t, err := dateparse.ParseAny(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}
