package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// DefaultSnapshotLength caps the size of a cleaned DOM snapshot.
const DefaultSnapshotLength = 200000

// DOMSnapshot is a cleaned copy of a page's markup kept as failure evidence.
type DOMSnapshot struct {
	Title     string
	HTML      string
	Truncated bool
}

// CleanDOM strips scripts, styles and comments from rawHTML and keeps the
// attributes that locators match on (role, aria-label, placeholder, class).
// Output stops after maxLength bytes of content; zero uses DefaultSnapshotLength.
func CleanDOM(rawHTML string, maxLength int) (*DOMSnapshot, error) {
	if maxLength <= 0 {
		maxLength = DefaultSnapshotLength
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	w := &domWriter{max: maxLength}
	w.walk(doc, 0)

	return &DOMSnapshot{
		Title:     findTitle(doc),
		HTML:      strings.TrimSpace(w.b.String()),
		Truncated: w.truncated,
	}, nil
}

type domWriter struct {
	b         strings.Builder
	n         int
	max       int
	truncated bool
}

func (w *domWriter) walk(n *html.Node, depth int) {
	if w.truncated {
		return
	}

	switch n.Type {
	case html.CommentNode, html.DoctypeNode:
		return
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if droppedElements[tag] {
			return
		}
		w.element(n, tag, depth)
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, depth)
	}
}

func (w *domWriter) text(data string) {
	text := strings.TrimSpace(data)
	if text == "" {
		return
	}
	remaining := w.max - w.n
	if remaining <= 0 {
		w.truncated = true
		return
	}
	if len(text) > remaining {
		text = text[:remaining] + "..."
		w.truncated = true
	}
	w.b.WriteString(html.EscapeString(text))
	w.n += len(text)
}

func (w *domWriter) element(n *html.Node, tag string, depth int) {
	if depth > 0 {
		w.b.WriteString("\n")
		w.b.WriteString(strings.Repeat("  ", depth))
	}

	w.b.WriteString("<" + tag)
	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if keptAttributes[key] || strings.HasPrefix(key, "aria-") || strings.HasPrefix(key, "data-") {
			fmt.Fprintf(&w.b, ` %s="%s"`, key, html.EscapeString(attr.Val))
		}
	}
	w.b.WriteString(">")
	w.n += len(tag) + 2
	if w.n >= w.max {
		w.truncated = true
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, depth+1)
	}

	if voidElements[tag] {
		return
	}
	w.b.WriteString("</" + tag + ">")
	w.n += len(tag) + 3
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, "title") && n.FirstChild != nil {
		return strings.TrimSpace(n.FirstChild.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

var droppedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"iframe":   true,
	"svg":      true,
	"link":     true,
	"meta":     true,
}

var keptAttributes = map[string]bool{
	"id":          true,
	"class":       true,
	"role":        true,
	"name":        true,
	"type":        true,
	"href":        true,
	"for":         true,
	"placeholder": true,
	"value":       true,
	"alt":         true,
	"disabled":    true,
	"hidden":      true,
	"style":       true,
}

var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}
