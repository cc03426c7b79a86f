package report

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seolens/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func sampleDigest() *models.AnalysisDigest {
	return &models.AnalysisDigest{
		Domain: "example.com",
		Pages: []models.PageAnalysis{
			{
				Signals: models.PageSignals{URL: "https://example.com/good"},
				Score: models.ScoreResult{
					ComprehensiveScore: 85,
					CategoryScores: map[models.CategoryName]models.CategoryScore{
						models.CategoryTechnical: {Score: 40, Max: 40},
						models.CategoryContent:   {Score: 35, Max: 40},
						models.CategoryPlanning:  {Score: 10, Max: 20},
					},
					CheckResults: map[models.CheckID]bool{
						models.CheckFreshness: false,
					},
				},
			},
			{
				Signals: models.PageSignals{URL: "https://example.com/weak"},
				Score: models.ScoreResult{
					ComprehensiveScore: 30,
					CategoryScores: map[models.CategoryName]models.CategoryScore{
						models.CategoryTechnical: {Score: 20, Max: 40},
						models.CategoryContent:   {Score: 10, Max: 40},
						models.CategoryPlanning:  {Score: 0, Max: 20},
					},
					CheckResults: map[models.CheckID]bool{
						models.CheckFreshness:  false,
						models.CheckH1Present:  false,
						models.CheckBodyLength: false,
					},
				},
			},
		},
		Summary: models.SiteStructureSummary{
			PageCount:         2,
			DepthDistribution: map[int]int{1: 2},
			TopKeywords:       []models.KeywordCount{{Keyword: "widgets", Count: 4}},
			AvgInternalLinks:  2.5,
			AvgBodyChars:      640,
		},
	}
}

func TestFallbackDeterministic(t *testing.T) {
	digest := sampleDigest()
	first := Fallback(digest)
	second := Fallback(digest)
	assert.Equal(t, first, second)
}

func TestFallbackOrdersWorstFirst(t *testing.T) {
	text := Fallback(sampleDigest())
	weak := strings.Index(text, "https://example.com/weak")
	good := strings.Index(text, "https://example.com/good")
	require.NotEqual(t, -1, weak)
	require.NotEqual(t, -1, good)
	assert.Less(t, weak, good)
}

func TestFallbackAggregatesSiteIssues(t *testing.T) {
	text := Fallback(sampleDigest())
	// freshness fails on both pages (2/2 > half); h1_present only on one.
	assert.Contains(t, text, "Site-wide issues")
	assert.Contains(t, text, "freshness (2/2 pages)")
	assert.NotContains(t, text, "h1_present (1/2 pages)")
}

func TestGenerateUsesWriter(t *testing.T) {
	var received string
	writer := func(digestText string) (string, error) {
		received = digestText
		return "external report", nil
	}
	out := Generate(sampleDigest(), writer, testLogger())
	assert.Equal(t, "external report", out)
	assert.Contains(t, received, "example.com")
	assert.Contains(t, received, `"comprehensive_score"`)
}

func TestGenerateFallsBackOnWriterError(t *testing.T) {
	writer := func(string) (string, error) {
		return "", errors.New("model unavailable")
	}
	out := Generate(sampleDigest(), writer, testLogger())
	assert.Contains(t, out, "# SEO Analysis: example.com")
	assert.Contains(t, out, "Comprehensive score")
}

func TestGenerateFallsBackOnEmptyWriterOutput(t *testing.T) {
	writer := func(string) (string, error) { return "  \n", nil }
	out := Generate(sampleDigest(), writer, testLogger())
	assert.Contains(t, out, "# SEO Analysis: example.com")
}

func TestGenerateNilWriter(t *testing.T) {
	out := Generate(sampleDigest(), nil, testLogger())
	assert.Contains(t, out, "Pages analyzed: 2")
}

func TestMetaCoverageSection(t *testing.T) {
	digest := sampleDigest()
	digest.Meta = models.MetaCoverage{MissingOGP: 2, MissingCanonical: 1}
	text := Fallback(digest)
	assert.Contains(t, text, "Metadata coverage")
	assert.Contains(t, text, "2/2 page(s) missing Open Graph tags")
	assert.Contains(t, text, "1/2 page(s) missing canonical URL")
	assert.NotContains(t, text, "missing viewport meta")
}

func TestContextualSection(t *testing.T) {
	digest := sampleDigest()
	digest.TargetURL = "https://example.com/weak"
	digest.Contextual = &models.ContextualEvaluation{
		BaseScore:       30,
		ContextualScore: 23,
		Adjustments:     map[string]float64{"internal_links": -5, "content_volume": -2},
		Suggestions:     []string{"Add internal links where they help the reader."},
	}
	text := Fallback(digest)
	assert.Contains(t, text, "Contextual evaluation: https://example.com/weak")
	assert.Contains(t, text, "internal_links: -5")
	assert.Contains(t, text, "suggestion: Add internal links")
}
