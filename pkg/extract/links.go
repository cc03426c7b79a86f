package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"seolens/models"
	"seolens/pkg/analytics"
)

// relevanceThreshold is the Jaccard similarity above which an anchor text is
// considered relevant to the page's title/H1 keywords.
const relevanceThreshold = 0.2

// maxDiscoveredLinks caps how many frontier candidates one page contributes.
const maxDiscoveredLinks = 20

// extractLinks computes the internal-link statistics over the main content
// region only. root nil (unparsable body) yields zero links.
func (e *Extractor) extractLinks(doc *goquery.Document, root *html.Node, sig *models.PageSignals) {
	sig.InternalLinks = models.LinkStats{}
	if root == nil {
		return
	}
	base, err := url.Parse(sig.URL)
	if err != nil {
		return
	}

	seen := make(map[string]struct{})
	var internal []string
	var anchorTexts []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if !e.inNavigation(n, root.Parent) {
				e.collectAnchor(n, base, seen, &internal, &anchorTexts)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	sig.InternalLinks.Count = len(internal)
	sig.InternalLinks.AnchorTexts = anchorTexts
	sig.InternalLinks.AnchorDiversity = anchorDiversity(anchorTexts)
	sig.InternalLinks.RelevanceScore = e.linkRelevance(sig, anchorTexts)

	if len(internal) > maxDiscoveredLinks {
		internal = internal[:maxDiscoveredLinks]
	}
	sig.DiscoveredLinks = internal
}

func (e *Extractor) collectAnchor(n *html.Node, base *url.URL, seen map[string]struct{}, internal *[]string, anchorTexts *[]string) {
	href := attrValue(n, "href")
	if href == "" {
		return
	}
	ref, err := url.Parse(href)
	if err != nil {
		return
	}
	target := base.ResolveReference(ref)
	if target.Scheme != "http" && target.Scheme != "https" {
		return
	}
	if target.Host != base.Host {
		return
	}
	target.Fragment = ""
	normalized := target.String()
	if _, dup := seen[normalized]; !dup {
		seen[normalized] = struct{}{}
		*internal = append(*internal, normalized)
	}
	if text := strings.ToLower(strings.TrimSpace(nodeText(n))); text != "" {
		*anchorTexts = append(*anchorTexts, text)
	}
}

// anchorDiversity is the ratio of distinct anchor texts to total anchor
// texts; zero when there are none.
func anchorDiversity(anchorTexts []string) float64 {
	if len(anchorTexts) == 0 {
		return 0
	}
	distinct := make(map[string]struct{}, len(anchorTexts))
	for _, t := range anchorTexts {
		distinct[t] = struct{}{}
	}
	return float64(len(distinct)) / float64(len(anchorTexts))
}

// linkRelevance is the fraction of anchor texts whose token set overlaps the
// page keyword set (title + first H1, stopwords removed) above the relevance
// threshold.
func (e *Extractor) linkRelevance(sig *models.PageSignals, anchorTexts []string) float64 {
	if len(anchorTexts) == 0 {
		return 0
	}
	pageText := sig.Title
	if len(sig.Headings.H1) > 0 {
		pageText += " " + sig.Headings.H1[0]
	}
	pageKeywords := e.contentTokens(pageText)
	if len(pageKeywords) == 0 {
		return 0
	}
	relevant := 0
	for _, anchor := range anchorTexts {
		if analytics.Jaccard(pageKeywords, e.contentTokens(anchor)) > relevanceThreshold {
			relevant++
		}
	}
	return float64(relevant) / float64(len(anchorTexts))
}

// contentTokens tokenizes text and drops lexicon stopwords.
func (e *Extractor) contentTokens(text string) map[string]struct{} {
	tokens := analytics.Tokenize(text)
	for _, stop := range e.lex.StopWords {
		delete(tokens, stop)
	}
	return tokens
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
