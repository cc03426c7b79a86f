// Package contextual adjusts one page's rubric score using site-wide
// statistics. Adjustments are additive and the final score is clamped to
// [0,100]. Like the scorer, the evaluator is pure.
package contextual

import (
	"fmt"
	"strings"

	"seolens/models"
	"seolens/pkg/analytics"
	"seolens/pkg/scoring"
)

// Adjustment thresholds.
const (
	fewLinksMax        = 2
	lowRelevance       = 0.4
	highRelevance      = 0.6
	thinContentChars   = 400
	richContentChars   = 2000
	deepPathSegments   = 4
	titleKeywordLimit  = 5
	metaOverlapHigh    = 0.7
	metaOverlapLow     = 0.3
	minScore           = 0
	maxScore           = 100
)

// Evaluate applies the site-context adjustments to one page's base score.
// The summary may describe a single-page crawl; every adjustment degrades
// gracefully to "no adjustment" when its inputs are absent.
func Evaluate(sig *models.PageSignals, base *models.ScoreResult, summary *models.SiteStructureSummary) *models.ContextualEvaluation {
	eval := &models.ContextualEvaluation{
		BaseScore:   base.ComprehensiveScore,
		Adjustments: make(map[string]float64),
	}

	adjustLinks(sig, eval)
	adjustContentVolume(sig, eval)
	adjustDepth(sig, eval)
	adjustKeywordAlignment(sig, summary, eval)
	adjustMetaKeywords(sig, summary, eval)

	score := eval.BaseScore
	for _, delta := range eval.Adjustments {
		score += delta
	}
	if score < minScore {
		score = minScore
	}
	if score > maxScore {
		score = maxScore
	}
	eval.ContextualScore = score
	return eval
}

func adjustLinks(sig *models.PageSignals, eval *models.ContextualEvaluation) {
	links := sig.InternalLinks
	switch {
	case links.Count == 0:
		eval.Adjustments["internal_links"] = -5
		eval.Suggestions = append(eval.Suggestions,
			"The page has no internal links in its main content. Linking to related pages on the same site helps both readers and crawlers discover them.")
	case links.Count <= fewLinksMax:
		eval.Adjustments["internal_links"] = -3
		eval.Suggestions = append(eval.Suggestions,
			fmt.Sprintf("Only %d internal link(s) found in the main content. Consider linking more related pages where it genuinely helps the reader.", links.Count))
	case links.RelevanceScore < lowRelevance:
		eval.Adjustments["link_relevance"] = -2
		eval.Suggestions = append(eval.Suggestions,
			"Internal link anchor texts rarely relate to the page topic. Rewriting anchors to describe their target improves relevance for readers and crawlers.")
	case links.RelevanceScore >= highRelevance:
		eval.Adjustments["link_relevance"] = 2
	}
}

// adjustContentVolume deliberately leaves the 400-2000 range unadjusted.
// The analyzer cannot tell a top-level landing page from an article, so the
// reference guidance names both ranges and accompanies every evaluation
// rather than only the penalized ones.
func adjustContentVolume(sig *models.PageSignals, eval *models.ContextualEvaluation) {
	switch {
	case sig.BodyCharCount < thinContentChars:
		eval.Adjustments["content_volume"] = -2
		eval.Suggestions = append(eval.Suggestions,
			fmt.Sprintf("Main content is short (%d characters); expand only where it adds substance.", sig.BodyCharCount))
	case sig.BodyCharCount >= richContentChars:
		eval.Adjustments["content_volume"] = 2
	}
	eval.Suggestions = append(eval.Suggestions,
		"As a reference, landing pages often work well in the 400-800 character range while in-depth articles tend toward 2000 or more.")
}

func adjustDepth(sig *models.PageSignals, eval *models.ContextualEvaluation) {
	if depth := scoring.PathDepth(sig.URL); depth > deepPathSegments {
		eval.Adjustments["url_depth"] = -2
		eval.Suggestions = append(eval.Suggestions,
			fmt.Sprintf("The URL sits %d path segments deep. Pages buried this far from the root tend to receive less crawl attention; consider a flatter placement relative to the rest of the site.", depth))
	}
}

func adjustKeywordAlignment(sig *models.PageSignals, summary *models.SiteStructureSummary, eval *models.ContextualEvaluation) {
	if summary == nil || len(summary.TopKeywords) == 0 {
		return
	}
	top := summary.TopKeywords
	if len(top) > titleKeywordLimit {
		top = top[:titleKeywordLimit]
	}

	headline := strings.ToLower(sig.Title)
	if len(sig.Headings.H1) > 0 {
		headline += " " + strings.ToLower(sig.Headings.H1[0])
	}
	for _, kw := range top {
		if strings.Contains(headline, kw.Keyword) {
			eval.Adjustments["keyword_alignment"] = 3
			return
		}
	}
	eval.Adjustments["keyword_alignment"] = -2
	eval.Suggestions = append(eval.Suggestions,
		fmt.Sprintf("Neither the title nor the H1 mentions the site's most frequent topics (%s). Aligning the headline with the site's vocabulary can make the page easier to place.", keywordList(top)))
}

func adjustMetaKeywords(sig *models.PageSignals, summary *models.SiteStructureSummary, eval *models.ContextualEvaluation) {
	if summary == nil || len(summary.TopKeywords) == 0 || len(sig.MetaKeywords) == 0 {
		return
	}
	siteSet := make(map[string]struct{}, len(summary.TopKeywords))
	for _, kw := range summary.TopKeywords {
		siteSet[kw.Keyword] = struct{}{}
	}
	matched := 0
	for _, meta := range sig.MetaKeywords {
		for token := range analytics.Tokenize(meta) {
			if _, ok := siteSet[token]; ok {
				matched++
				break
			}
		}
	}
	overlap := float64(matched) / float64(len(sig.MetaKeywords))
	switch {
	case overlap >= metaOverlapHigh:
		eval.Adjustments["meta_keyword_alignment"] = 2
	case overlap < metaOverlapLow:
		eval.Adjustments["meta_keyword_alignment"] = -2
		eval.Suggestions = append(eval.Suggestions,
			"The declared meta keywords barely overlap with the site's actual URL vocabulary. Either the keywords or the site structure may be describing different topics.")
	}
}

func keywordList(kws []models.KeywordCount) string {
	names := make([]string, len(kws))
	for i, kw := range kws {
		names[i] = kw.Keyword
	}
	return strings.Join(names, ", ")
}
