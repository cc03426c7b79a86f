package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"seolens/models"
)

// Alt text outside [minAltLen, maxAltLen] characters is flagged poor quality
// even when it matches no placeholder pattern.
const (
	minAltLen = 3
	maxAltLen = 125
)

// maxPoorAltExamples caps the flagged images carried in the signals record.
const maxPoorAltExamples = 5

// maxSrcLen truncates recorded image sources.
const maxSrcLen = 100

// extractImages classifies every <img> on the page and evaluates alt-text
// coverage over content images only. Navigational, logo/decorative and
// anchor-wrapped images are excluded before evaluation.
func (e *Extractor) extractImages(doc *goquery.Document, sig *models.PageSignals) {
	stats := models.ImageStats{}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		stats.Total++
		node := s.Get(0)

		if e.inNavigation(node, nil) {
			return
		}
		if e.isLogoOrDecorative(node) {
			return
		}
		// An image wrapped in an anchor is a navigation affordance, not a
		// content illustration.
		if closestAnchor(node) != nil {
			return
		}

		stats.Evaluable++
		alt := strings.TrimSpace(attrValue(node, "alt"))
		if alt == "" {
			stats.WithoutAlt++
			return
		}
		if e.isPoorAlt(alt) && len(stats.PoorAltExamples) < maxPoorAltExamples {
			stats.PoorAltExamples = append(stats.PoorAltExamples, models.ImageRef{
				Src: truncate(attrValue(node, "src"), maxSrcLen),
				Alt: alt,
			})
		}
	})

	sig.Images = stats
}

// isLogoOrDecorative reports whether an image should be excluded from alt
// evaluation: logo/decoration keyword matches on class/id/src, a logo
// keyword in the alt itself, a presentation role, or an unlabeled link to
// the homepage inside navigation chrome.
func (e *Extractor) isLogoOrDecorative(n *html.Node) bool {
	allKeywords := append(append([]string{}, e.lex.LogoKeywords...), e.lex.DecorativeKeywords...)

	class := strings.ToLower(attrValue(n, "class"))
	id := strings.ToLower(attrValue(n, "id"))
	src := strings.ToLower(attrValue(n, "src"))
	for _, kw := range allKeywords {
		if (class != "" && strings.Contains(class, kw)) ||
			(id != "" && strings.Contains(id, kw)) ||
			(src != "" && strings.Contains(src, kw)) {
			return true
		}
	}

	alt := strings.ToLower(attrValue(n, "alt"))
	for _, kw := range e.lex.LogoKeywords {
		if alt != "" && strings.Contains(alt, kw) {
			return true
		}
	}

	switch strings.ToLower(attrValue(n, "role")) {
	case "presentation", "none":
		return true
	}

	if anchor := closestAnchor(n); anchor != nil {
		href := attrValue(anchor, "href")
		for _, home := range e.lex.HomeHrefs {
			if href == home {
				if e.inNavigation(n, nil) {
					return true
				}
				break
			}
		}
	}
	return false
}

// isPoorAlt flags generic placeholder alt values and values outside the
// accepted length range.
func (e *Extractor) isPoorAlt(alt string) bool {
	lower := strings.ToLower(strings.TrimSpace(alt))
	for _, re := range e.lex.PoorAltRegexps() {
		if re.MatchString(lower) {
			return true
		}
	}
	length := utf8.RuneCountInString(alt)
	return length < minAltLen || length > maxAltLen
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
