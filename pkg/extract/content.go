package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"seolens/pkg/analytics"
)

// contentStrategy locates one main-content candidate. Strategies are tried
// in order; the first whose extracted text clears the character threshold
// wins. The body fallback is unconditional, so selection never fails.
type contentStrategy struct {
	name   string
	locate func(doc *goquery.Document) *html.Node
}

func (e *Extractor) strategies() []contentStrategy {
	strategies := []contentStrategy{
		{name: "article", locate: func(doc *goquery.Document) *html.Node {
			return firstNode(doc.Find("article"))
		}},
	}
	for _, cls := range e.lex.ContentClasses {
		cls := cls
		strategies = append(strategies, contentStrategy{
			name: "class:" + cls,
			locate: func(doc *goquery.Document) *html.Node {
				return firstNode(doc.Find("." + cls))
			},
		})
	}
	strategies = append(strategies, contentStrategy{
		name: "main",
		locate: func(doc *goquery.Document) *html.Node {
			return firstNode(doc.Find("main"))
		},
	})
	return strategies
}

// selectMainContent runs the candidate cascade and returns the winning
// strategy name, the content root (nil for the body fallback) and the
// extracted text. Navigation subtrees are excluded from the text in every
// strategy, recursively through ancestor chains.
func (e *Extractor) selectMainContent(doc *goquery.Document) (string, *html.Node, string) {
	for _, s := range e.strategies() {
		root := s.locate(doc)
		if root == nil {
			continue
		}
		text := e.extractText(root)
		if utf8.RuneCountInString(analytics.StripSpace(text)) >= contentThresholdChars {
			return s.name, root, text
		}
	}

	body := firstNode(doc.Find("body"))
	if body == nil {
		return "body", nil, ""
	}
	return "body", body, e.extractText(body)
}

// extractText collects the visible text below root, skipping navigation
// subtrees. Text nodes are trimmed and joined with newlines, mirroring how
// the threshold and planning-signal scans consume them.
func (e *Extractor) extractText(root *html.Node) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
			if n != root && e.isNavigationalNode(n) {
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return strings.Join(parts, "\n")
}

func firstNode(sel *goquery.Selection) *html.Node {
	if sel.Length() == 0 {
		return nil
	}
	return sel.Get(0)
}
