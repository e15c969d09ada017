package extractor

import (
	"strings"

	"golang.org/x/net/html"
)

var skippedTextParents = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"head":     true,
	"title":    true,
}

// visibleText approximates a browser's innerText for a raw HTML document:
// text nodes outside script/style/head, whitespace-collapsed, one line per
// block of text.
func visibleText(rawHTML string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedTextParents[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				b.WriteString(text)
				b.WriteString("\n")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(b.String())
}
