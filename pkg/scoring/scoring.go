// Package scoring implements the fixed three-category rubric over one
// PageSignals record. Scoring is a pure function: identical signals always
// produce identical results, with no I/O and no clock.
package scoring

import (
	"net/url"
	"strings"

	"seolens/models"
)

// Check weights. The three categories sum to 100.
const (
	weightIndexable         = 10
	weightCanonical         = 8
	weightURLShallow        = 6
	weightHeadingsHierarchy = 8
	weightInternalLinks     = 8

	weightBodyLength   = 10
	weightTitleH1Align = 8
	weightReadability  = 10
	weightAltCoverage  = 6
	weightH1Present    = 6

	weightPlanningBlocks = 10
	weightFreshness      = 10
)

// Rubric thresholds.
const (
	maxShallowDepth    = 3
	minInternalLinks   = 5
	minAnchorDiversity = 0.3
	minBodyChars       = 800
	minTitleH1Sim      = 0.5
	minAltRatio        = 0.6
)

type check struct {
	id       models.CheckID
	category models.CategoryName
	weight   float64
	passes   func(sig *models.PageSignals) bool
}

func checks() []check {
	return []check{
		{models.CheckIndexable, models.CategoryTechnical, weightIndexable, isIndexable},
		{models.CheckCanonical, models.CategoryTechnical, weightCanonical, func(s *models.PageSignals) bool {
			return s.CanonicalURL != ""
		}},
		{models.CheckURLShallow, models.CategoryTechnical, weightURLShallow, func(s *models.PageSignals) bool {
			return PathDepth(s.URL) <= maxShallowDepth
		}},
		{models.CheckHeadingsHierarchy, models.CategoryTechnical, weightHeadingsHierarchy, func(s *models.PageSignals) bool {
			return len(s.Headings.H1) > 0 && (len(s.Headings.H2) > 0 || len(s.Headings.H3) > 0)
		}},
		{models.CheckInternalLinks, models.CategoryTechnical, weightInternalLinks, func(s *models.PageSignals) bool {
			return s.InternalLinks.Count >= minInternalLinks && s.InternalLinks.AnchorDiversity >= minAnchorDiversity
		}},

		{models.CheckBodyLength, models.CategoryContent, weightBodyLength, func(s *models.PageSignals) bool {
			return s.BodyCharCount >= minBodyChars
		}},
		{models.CheckTitleH1Align, models.CategoryContent, weightTitleH1Align, func(s *models.PageSignals) bool {
			return s.TitleH1Similarity >= minTitleH1Sim
		}},
		{models.CheckReadability, models.CategoryContent, weightReadability, func(s *models.PageSignals) bool {
			return s.HasOrderedList || s.HasUnorderedList || s.HasTable || s.HasCode
		}},
		{models.CheckAltCoverage, models.CategoryContent, weightAltCoverage, hasAltCoverage},
		{models.CheckH1Present, models.CategoryContent, weightH1Present, func(s *models.PageSignals) bool {
			return len(s.Headings.H1) > 0
		}},

		{models.CheckPlanningBlocks, models.CategoryPlanning, weightPlanningBlocks, func(s *models.PageSignals) bool {
			return s.HowToLike || s.FAQLike || s.TOCLike
		}},
		{models.CheckFreshness, models.CategoryPlanning, weightFreshness, func(s *models.PageSignals) bool {
			return s.UpdatedMention
		}},
	}
}

// Score evaluates every rubric check against the signals and returns the
// per-check, per-category and comprehensive results.
func Score(sig *models.PageSignals) *models.ScoreResult {
	result := &models.ScoreResult{
		CategoryScores: map[models.CategoryName]models.CategoryScore{},
		CheckResults:   map[models.CheckID]bool{},
	}

	earned := map[models.CategoryName]float64{}
	max := map[models.CategoryName]float64{}
	for _, c := range checks() {
		ok := c.passes(sig)
		result.CheckResults[c.id] = ok
		max[c.category] += c.weight
		if ok {
			earned[c.category] += c.weight
		}
	}

	for _, cat := range []models.CategoryName{models.CategoryTechnical, models.CategoryContent, models.CategoryPlanning} {
		score := models.CategoryScore{Score: earned[cat], Max: max[cat]}
		if score.Max > 0 {
			score.Percentage = score.Score / score.Max * 100
		}
		result.CategoryScores[cat] = score
		result.ComprehensiveScore += score.Score
	}
	return result
}

// isIndexable passes unless the robots meta directive contains noindex or
// none. An absent directive is indexable.
func isIndexable(sig *models.PageSignals) bool {
	if sig.RobotsMeta == "" {
		return true
	}
	for _, directive := range strings.Split(sig.RobotsMeta, ",") {
		switch strings.TrimSpace(directive) {
		case "noindex", "none":
			return false
		}
	}
	return true
}

// hasAltCoverage passes when at least 60% of evaluable content images carry
// alt text, or when the page has no evaluable images at all.
func hasAltCoverage(sig *models.PageSignals) bool {
	if sig.Images.Evaluable == 0 {
		return true
	}
	withAlt := sig.Images.Evaluable - sig.Images.WithoutAlt
	return float64(withAlt)/float64(sig.Images.Evaluable) >= minAltRatio
}

// PathDepth is the number of non-empty slash segments in a URL's path.
// Unparseable URLs report depth zero.
func PathDepth(rawURL string) int {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0
	}
	depth := 0
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			depth++
		}
	}
	return depth
}
