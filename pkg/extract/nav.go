package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// isNavigationalNode reports whether a single element looks like navigation
// chrome: a header/footer/nav tag, a navigation ARIA role, or a class/id
// containing a navigation keyword.
func (e *Extractor) isNavigationalNode(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, tag := range e.lex.NavigationTags {
		if n.Data == tag {
			return true
		}
	}
	role := strings.ToLower(attrValue(n, "role"))
	if role != "" {
		for _, r := range e.lex.NavigationRoles {
			if role == r {
				return true
			}
		}
	}
	class := strings.ToLower(attrValue(n, "class"))
	id := strings.ToLower(attrValue(n, "id"))
	for _, kw := range e.lex.NavigationKeywords {
		if (class != "" && strings.Contains(class, kw)) || (id != "" && strings.Contains(id, kw)) {
			return true
		}
	}
	return false
}

// inNavigation walks the ancestor chain up to (and excluding) stop, checking
// the node and every ancestor. A nil stop walks to the document root.
func (e *Extractor) inNavigation(n, stop *html.Node) bool {
	for cur := n; cur != nil && cur != stop; cur = cur.Parent {
		if e.isNavigationalNode(cur) {
			return true
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// closestAnchor returns the nearest ancestor <a> element, or nil.
func closestAnchor(n *html.Node) *html.Node {
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		if cur.Type == html.ElementNode && cur.Data == "a" {
			return cur
		}
	}
	return nil
}
