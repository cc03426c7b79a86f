// Package sitesummary aggregates a crawl batch into a SiteStructureSummary.
// Aggregation is pure and order-stable: the same page slice always produces
// the same summary, including keyword tie-breaks.
package sitesummary

import (
	"net/url"
	"strings"

	"seolens/models"
	"seolens/pkg/analytics"
	"seolens/pkg/scoring"
)

// topKeywordCount is how many ranked path keywords the summary carries.
const topKeywordCount = 10

// minKeywordLen filters trivial path segments (ids, language codes).
const minKeywordLen = 3

// Build aggregates the batch. A nil or empty batch yields a zero summary
// with a non-nil depth map.
func Build(pages []*models.PageSignals) *models.SiteStructureSummary {
	summary := &models.SiteStructureSummary{
		PageCount:         len(pages),
		DepthDistribution: make(map[int]int),
	}
	if len(pages) == 0 {
		return summary
	}

	counter := analytics.NewKeywordCounter()
	totalLinks := 0
	totalChars := 0
	for _, page := range pages {
		depth := scoring.PathDepth(page.URL)
		summary.DepthDistribution[depth]++
		totalLinks += page.InternalLinks.Count
		totalChars += page.BodyCharCount
		for _, segment := range pathSegments(page.URL) {
			counter.Add(segment)
		}
	}

	for _, kc := range counter.Top(topKeywordCount) {
		summary.TopKeywords = append(summary.TopKeywords, models.KeywordCount{
			Keyword: kc.Keyword, Count: kc.Count,
		})
	}
	summary.AvgInternalLinks = float64(totalLinks) / float64(len(pages))
	summary.AvgBodyChars = float64(totalChars) / float64(len(pages))
	return summary
}

// pathSegments tokenizes a URL path into lowercase keyword candidates.
// Separator characters inside a segment split it further, so
// /blog/seo-tips yields "blog", "seo" and "tips".
func pathSegments(rawURL string) []string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	var out []string
	for _, segment := range strings.Split(u.Path, "/") {
		for _, token := range strings.FieldsFunc(segment, func(r rune) bool {
			return r == '-' || r == '_' || r == '.'
		}) {
			token = strings.ToLower(token)
			if len(token) >= minKeywordLen {
				out = append(out, token)
			}
		}
	}
	return out
}
