// Package htmltext pulls plain text out of posting description fragments.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FirstBlock returns the trimmed text content of the first <p> element in
// fragment. When the fragment has no paragraph, the trimmed text of the whole
// fragment is returned instead. Empty input yields "".
func FirstBlock(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	nodes, err := parse(fragment)
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	for _, n := range nodes {
		if p := findFirst(n, atom.P); p != nil {
			return strings.TrimSpace(textOf(p))
		}
	}
	return strings.TrimSpace(joinText(nodes))
}

// parse reads fragment as the body of a <div>. The tokenizer is lenient, so
// an error means unreadable input rather than bad markup.
func parse(fragment string) ([]*html.Node, error) {
	return html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
}

// findFirst walks n depth-first in document order.
func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func joinText(nodes []*html.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(textOf(n))
	}
	return sb.String()
}

// textOf concatenates the text nodes under n, like DOM textContent.
func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textOf(c))
	}
	return sb.String()
}
