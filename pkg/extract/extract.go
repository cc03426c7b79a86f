// Package extract turns parsed HTML into a PageSignals record: main-content
// detection, metadata capture, link and image statistics, and the planning
// signals used by the scoring rubric.
package extract

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pemistahl/lingua-go"

	"seolens/models"
	"seolens/pkg/analytics"
	"seolens/pkg/lexicon"
)

// planningScanLines bounds how much of the page text the FAQ/HowTo/TOC
// detection looks at.
const planningScanLines = 200

// contentThresholdChars is the whitespace-stripped length a main-content
// candidate must reach to be selected.
const contentThresholdChars = 100

type Extractor struct {
	lex      *lexicon.Tables
	detector lingua.LanguageDetector
}

func New(lex *lexicon.Tables) *Extractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English, lingua.Japanese, lingua.German,
			lingua.French, lingua.Spanish, lingua.Portuguese,
			lingua.Chinese, lingua.Korean,
		).
		Build()
	return &Extractor{lex: lex, detector: detector}
}

// Extract produces the immutable PageSignals record for one page.
func (e *Extractor) Extract(doc *goquery.Document, pageURL string) (*models.PageSignals, error) {
	sig := &models.PageSignals{
		URL:      pageURL,
		IsSecure: strings.HasPrefix(pageURL, "https://"),
	}

	e.extractHead(doc, sig)
	e.extractHeadings(doc, sig)
	e.extractStructuredData(doc, sig)

	// Strip non-visible elements before any text walk. Structured data is
	// captured above because this removes script tags.
	doc.Find("script, style, noscript, template").Remove()

	source, root, text := e.selectMainContent(doc)
	sig.ContentSource = source
	sig.MainContentText = text
	sig.BodyCharCount = utf8.RuneCountInString(analytics.StripSpace(text))

	e.extractLinks(doc, root, sig)
	e.extractImages(doc, sig)
	e.extractFlags(doc, sig)

	sig.TitleH1Similarity = titleH1Similarity(sig)
	e.detectLanguage(sig)

	return sig, nil
}

// extractHead captures title, meta tags, canonical, viewport, hreflang, OGP
// and Twitter Card fields. These are verbatim captures; most carry no
// scoring weight.
func (e *Extractor) extractHead(doc *goquery.Document, sig *models.PageSignals) {
	sig.Title = strings.TrimSpace(doc.Find("title").First().Text())

	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		sig.MetaDescription = strings.TrimSpace(desc)
	}
	if kw, ok := doc.Find(`meta[name="keywords"]`).First().Attr("content"); ok {
		for _, k := range strings.Split(kw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				sig.MetaKeywords = append(sig.MetaKeywords, k)
			}
		}
	}
	if robots, ok := doc.Find(`meta[name="robots"]`).First().Attr("content"); ok {
		sig.RobotsMeta = strings.ToLower(strings.TrimSpace(robots))
	}
	if viewport, ok := doc.Find(`meta[name="viewport"]`).First().Attr("content"); ok {
		sig.ViewportMeta = strings.TrimSpace(viewport)
	}
	if canonical, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		sig.CanonicalURL = strings.TrimSpace(canonical)
	}
	if lang, ok := doc.Find("html").First().Attr("lang"); ok {
		sig.HTMLLang = strings.TrimSpace(lang)
	}

	doc.Find(`link[rel="alternate"][hreflang]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		hreflang, _ := s.Attr("hreflang")
		if href != "" && hreflang != "" {
			sig.HreflangLinks = append(sig.HreflangLinks, models.LangLink{Href: href, Hreflang: hreflang})
		}
	})

	doc.Find(`meta[property^="og:"]`).Each(func(_ int, s *goquery.Selection) {
		prop, _ := s.Attr("property")
		content, _ := s.Attr("content")
		if prop != "" && content != "" {
			if sig.OGPFields == nil {
				sig.OGPFields = make(map[string]string)
			}
			sig.OGPFields[prop] = content
		}
	})
	doc.Find(`meta[name^="twitter:"]`).Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content, _ := s.Attr("content")
		if name != "" && content != "" {
			if sig.TwitterFields == nil {
				sig.TwitterFields = make(map[string]string)
			}
			sig.TwitterFields[name] = content
		}
	})
}

func (e *Extractor) extractHeadings(doc *goquery.Document, sig *models.PageSignals) {
	collect := func(selector string, limit int) []string {
		var out []string
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			if limit > 0 && len(out) >= limit {
				return
			}
			if text := strings.TrimSpace(s.Text()); text != "" {
				out = append(out, text)
			}
		})
		return out
	}
	sig.Headings = models.HeadingSet{
		H1: collect("h1", 0),
		H2: collect("h2", 10),
		H3: collect("h3", 10),
	}
}

// extractStructuredData pulls the @type values out of every JSON-LD block,
// walking nested objects and arrays. Malformed blocks are skipped.
func (e *Extractor) extractStructuredData(doc *goquery.Document, sig *models.PageSignals) {
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return
		}
		sig.StructuredDataTypes = append(sig.StructuredDataTypes, jsonLDTypes(payload)...)
	})
}

func jsonLDTypes(data any) []string {
	var types []string
	switch v := data.(type) {
	case map[string]any:
		if t, ok := v["@type"]; ok {
			switch tv := t.(type) {
			case string:
				types = append(types, tv)
			case []any:
				for _, item := range tv {
					if s, ok := item.(string); ok {
						types = append(types, s)
					}
				}
			}
		}
		for _, value := range v {
			types = append(types, jsonLDTypes(value)...)
		}
	case []any:
		for _, item := range v {
			types = append(types, jsonLDTypes(item)...)
		}
	}
	return types
}

// extractFlags records the readability-block flags, the FAQ/HowTo/TOC text
// signals and the updated-date mention.
func (e *Extractor) extractFlags(doc *goquery.Document, sig *models.PageSignals) {
	sig.HasOrderedList = doc.Find("ol").Length() > 0
	sig.HasUnorderedList = doc.Find("ul").Length() > 0
	sig.HasTable = doc.Find("table").Length() > 0
	sig.HasCode = doc.Find("pre").Length() > 0 || doc.Find("code").Length() > 0

	lines := nonEmptyLines(sig.MainContentText)
	if len(lines) > planningScanLines {
		lines = lines[:planningScanLines]
	}
	flat := strings.ToLower(strings.Join(lines, " "))
	sig.FAQLike = containsAny(flat, e.lex.FAQKeywords)
	sig.HowToLike = containsAny(flat, e.lex.HowToKeywords)
	sig.TOCLike = containsAny(flat, e.lex.TOCKeywords)

	if m := e.lex.UpdatedRegexp().FindStringSubmatch(sig.MainContentText); m != nil {
		sig.UpdatedMention = true
		sig.UpdatedDate = normalizeDate(m[len(m)-1])
	}
}

func (e *Extractor) detectLanguage(sig *models.PageSignals) {
	if sig.HTMLLang != "" {
		// Declared language wins; keep only the primary subtag.
		sig.Language = strings.ToLower(strings.SplitN(sig.HTMLLang, "-", 2)[0])
		return
	}
	if utf8.RuneCountInString(sig.MainContentText) < 40 {
		return
	}
	if lang, ok := e.detector.DetectLanguageOf(sig.MainContentText); ok {
		sig.Language = strings.ToLower(lang.IsoCode639_1().String())
	}
}

func titleH1Similarity(sig *models.PageSignals) float64 {
	if len(sig.Headings.H1) == 0 {
		return 0
	}
	return analytics.Jaccard(
		analytics.Tokenize(sig.Title),
		analytics.Tokenize(sig.Headings.H1[0]),
	)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
