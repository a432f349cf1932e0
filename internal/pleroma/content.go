// ABOUTME: Flattens status HTML into plain text for the terminal
// ABOUTME: Paragraphs and <br> become line breaks; hidden link prefixes are dropped

package pleroma

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText converts status HTML to plain text. Each paragraph or <br>
// starts a new line, runs of whitespace collapse to one space, and
// empty lines are removed. Unparseable input is returned trimmed.
func PlainText(raw string) string {
	if !strings.ContainsAny(raw, "<&") {
		return joinLines(raw)
	}
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}

	var b strings.Builder
	extractText(doc, &b)
	return joinLines(b.String())
}

// extractText walks n and writes its visible text to b.
func extractText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style":
			return
		case "p", "div", "li", "blockquote":
			b.WriteByte('\n')
		case "br":
			b.WriteByte('\n')
			return
		case "span":
			if hasClass(n, "invisible") {
				return
			}
		}
	}

	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, b)
	}

	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "blockquote":
			b.WriteByte('\n')
		case "span":
			if hasClass(n, "ellipsis") {
				b.WriteString("…")
			}
		}
	}
}

// joinLines normalises whitespace per line and drops empty lines.
func joinLines(s string) string {
	var out []string
	for line := range strings.SplitSeq(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" && strings.Contains(" "+a.Val+" ", " "+class+" ") {
			return true
		}
	}
	return false
}
