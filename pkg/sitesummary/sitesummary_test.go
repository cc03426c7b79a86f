package sitesummary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seolens/models"
)

func page(url string, links, chars int) *models.PageSignals {
	return &models.PageSignals{
		URL:           url,
		BodyCharCount: chars,
		InternalLinks: models.LinkStats{Count: links},
	}
}

func TestBuild(t *testing.T) {
	pages := []*models.PageSignals{
		page("https://example.com/", 10, 1000),
		page("https://example.com/blog/seo-tips", 4, 2000),
		page("https://example.com/blog/seo-basics", 6, 3000),
	}

	summary := Build(pages)

	assert.Equal(t, 3, summary.PageCount)
	assert.Equal(t, map[int]int{0: 1, 2: 2}, summary.DepthDistribution)
	assert.InDelta(t, 20.0/3.0, summary.AvgInternalLinks, 1e-9)
	assert.InDelta(t, 2000.0, summary.AvgBodyChars, 1e-9)

	// "blog" and "seo" appear twice; "blog" was seen first. Short segments
	// and single-occurrence tokens rank below them.
	require.NotEmpty(t, summary.TopKeywords)
	assert.Equal(t, models.KeywordCount{Keyword: "blog", Count: 2}, summary.TopKeywords[0])
	assert.Equal(t, models.KeywordCount{Keyword: "seo", Count: 2}, summary.TopKeywords[1])
}

func TestPathSegmentTokenization(t *testing.T) {
	summary := Build([]*models.PageSignals{
		page("https://example.com/docs/getting_started.html", 0, 0),
	})

	var keywords []string
	for _, kw := range summary.TopKeywords {
		keywords = append(keywords, kw.Keyword)
	}
	// Separators split segments; "getting_started.html" contributes three
	// tokens and every token is lowercased.
	assert.ElementsMatch(t, []string{"docs", "getting", "started", "html"}, keywords)
}

func TestShortSegmentsIgnored(t *testing.T) {
	summary := Build([]*models.PageSignals{
		page("https://example.com/en/a/seo", 0, 0),
	})
	var keywords []string
	for _, kw := range summary.TopKeywords {
		keywords = append(keywords, kw.Keyword)
	}
	// "en" and "a" are too short to be keywords; "seo" is exactly long enough.
	assert.Equal(t, []string{"seo"}, keywords)
}

func TestTopKeywordsCapped(t *testing.T) {
	var pages []*models.PageSignals
	urls := []string{
		"https://example.com/alpha/bravo/charlie/delta",
		"https://example.com/echo/foxtrot/golf/hotel",
		"https://example.com/india/juliett/kilo/lima",
	}
	for _, u := range urls {
		pages = append(pages, page(u, 0, 0))
	}
	summary := Build(pages)
	assert.Len(t, summary.TopKeywords, 10)
}

func TestEmptyBatch(t *testing.T) {
	summary := Build(nil)
	assert.Equal(t, 0, summary.PageCount)
	assert.NotNil(t, summary.DepthDistribution)
	assert.Empty(t, summary.TopKeywords)
	assert.Zero(t, summary.AvgInternalLinks)
}
