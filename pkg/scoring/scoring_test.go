package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seolens/models"
)

// strongPage passes every check in one category or another; tests below
// mutate copies of it to flip individual checks.
func strongPage() *models.PageSignals {
	return &models.PageSignals{
		URL:          "https://example.com/widgets",
		Title:        "Buy Widgets Online",
		CanonicalURL: "https://example.com/widgets",
		Headings: models.HeadingSet{
			H1: []string{"Widgets Online"},
			H2: []string{"Why widgets"},
		},
		BodyCharCount: 900,
		InternalLinks: models.LinkStats{
			Count:           6,
			AnchorDiversity: 0.5,
		},
		Images:            models.ImageStats{},
		HasUnorderedList:  true,
		TitleH1Similarity: 2.0 / 3.0,
		FAQLike:           true,
		UpdatedMention:    true,
	}
}

func TestPerfectScore(t *testing.T) {
	result := Score(strongPage())
	assert.Equal(t, 100.0, result.ComprehensiveScore)
	for id, ok := range result.CheckResults {
		assert.True(t, ok, "check %s", id)
	}
}

func TestWorkedExample(t *testing.T) {
	// Canonical present, robots meta absent, one ul, 900 chars, title and H1
	// aligned, 4 internal links with diversity 0.5, no planning signals.
	sig := strongPage()
	sig.InternalLinks.Count = 4
	sig.FAQLike = false
	sig.UpdatedMention = false

	result := Score(sig)

	technical := result.CategoryScores[models.CategoryTechnical]
	content := result.CategoryScores[models.CategoryContent]
	planning := result.CategoryScores[models.CategoryPlanning]

	assert.Equal(t, 32.0, technical.Score) // misses the internal-links check
	assert.Equal(t, 40.0, content.Score)
	assert.Equal(t, 0.0, planning.Score)
	assert.Equal(t, 72.0, result.ComprehensiveScore)
	assert.False(t, result.CheckResults[models.CheckInternalLinks])
}

func TestBodyLengthMonotonicity(t *testing.T) {
	sig := strongPage()
	sig.BodyCharCount = 799
	below := Score(sig).ComprehensiveScore

	sig.BodyCharCount = 800
	above := Score(sig).ComprehensiveScore

	// Crossing the threshold changes exactly the body-length contribution.
	assert.Equal(t, 10.0, above-below)
}

func TestIdempotence(t *testing.T) {
	sig := strongPage()
	first := Score(sig)
	second := Score(sig)
	assert.Equal(t, first, second)
}

func TestIndexable(t *testing.T) {
	tests := []struct {
		name       string
		robotsMeta string
		want       bool
	}{
		{"absent", "", true},
		{"index follow", "index, follow", true},
		{"noindex", "noindex", false},
		{"noindex with follow", "noindex, follow", false},
		{"none", "none", false},
		{"nofollow only", "nofollow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := strongPage()
			sig.RobotsMeta = tt.robotsMeta
			assert.Equal(t, tt.want, Score(sig).CheckResults[models.CheckIndexable])
		})
	}
}

func TestAltCoverage(t *testing.T) {
	tests := []struct {
		name   string
		images models.ImageStats
		want   bool
	}{
		{"no evaluable images", models.ImageStats{Total: 3}, true},
		{"full coverage", models.ImageStats{Evaluable: 5}, true},
		{"at threshold", models.ImageStats{Evaluable: 5, WithoutAlt: 2}, true},
		{"below threshold", models.ImageStats{Evaluable: 5, WithoutAlt: 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := strongPage()
			sig.Images = tt.images
			assert.Equal(t, tt.want, Score(sig).CheckResults[models.CheckAltCoverage])
		})
	}
}

func TestHeadingHierarchy(t *testing.T) {
	sig := strongPage()
	sig.Headings = models.HeadingSet{H1: []string{"only h1"}}
	result := Score(sig)
	assert.False(t, result.CheckResults[models.CheckHeadingsHierarchy])
	assert.True(t, result.CheckResults[models.CheckH1Present])

	sig.Headings = models.HeadingSet{H1: []string{"h1"}, H3: []string{"h3"}}
	assert.True(t, Score(sig).CheckResults[models.CheckHeadingsHierarchy])
}

func TestPathDepth(t *testing.T) {
	tests := []struct {
		url  string
		want int
	}{
		{"https://example.com/", 0},
		{"https://example.com/a", 1},
		{"https://example.com/a/b/c", 3},
		{"https://example.com/a/b/c/", 3},
		{"https://example.com/a/b/c/d/e", 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PathDepth(tt.url), "url %s", tt.url)
	}
}

func TestCategoryMaxima(t *testing.T) {
	result := Score(&models.PageSignals{URL: "https://example.com/"})
	require.Len(t, result.CategoryScores, 3)
	assert.Equal(t, 40.0, result.CategoryScores[models.CategoryTechnical].Max)
	assert.Equal(t, 40.0, result.CategoryScores[models.CategoryContent].Max)
	assert.Equal(t, 20.0, result.CategoryScores[models.CategoryPlanning].Max)
}
