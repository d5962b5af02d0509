// Package richtext implements the restricted-HTML toolkit used by editable
// fields: parsing fragments into a node tree, sanitizing, measuring and
// truncating by plain-text length, and mapping caret positions to linear
// character offsets.
//
// All functions are tolerant of malformed input. They never panic and never
// return errors; bad markup degrades to its text content.
package richtext

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewContainer returns a detached <div> element used as the root of a
// fragment tree.
func NewContainer() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
}

// Parse parses fragment into a fresh container. An unparsable fragment
// yields a container holding the raw string as a single text node.
func Parse(fragment string) *html.Node {
	root := NewContainer()
	SetInner(root, fragment)
	return root
}

// SetInner replaces the children of n with the nodes parsed from fragment.
func SetInner(n *html.Node, fragment string) {
	if n == nil {
		return
	}
	RemoveChildren(n)
	if fragment == "" {
		return
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), NewContainer())
	if err != nil {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: fragment})
		return
	}
	for _, c := range nodes {
		if c.Parent != nil {
			c.Parent.RemoveChild(c)
		}
		n.AppendChild(c)
	}
}

// RemoveChildren detaches every child of n.
func RemoveChildren(n *html.Node) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
}

// Unwrap replaces n with its children.
func Unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for n.FirstChild != nil {
		c := n.FirstChild
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
}

// TextNodes returns the text nodes at or below n in document order.
func TextNodes(n *html.Node) []*html.Node {
	if n != nil && n.Type == html.TextNode {
		return []*html.Node{n}
	}
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				out = append(out, c)
				continue
			}
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}

// Contains reports whether n is root or a descendant of root.
func Contains(root, n *html.Node) bool {
	if root == nil {
		return false
	}
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

// TextContent concatenates every text node below n.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	for _, t := range TextNodes(n) {
		sb.WriteString(t.Data)
	}
	return sb.String()
}

// PlainText returns the plain-text projection of an HTML fragment.
func PlainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return fragment
	}
	return TextContent(Parse(fragment))
}

// StripTags removes the markup from text that may carry stray HTML. Text
// using only known HTML elements loses its tags; anything else, such as
// "<Go>", is literal and returned unchanged.
func StripTags(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	root := Parse(text)
	known := true
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil && known; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == 0 {
				known = false
				return
			}
			walk(c)
		}
	}
	walk(root)
	if !known {
		return text
	}
	return TextContent(root)
}

// PlainLen is the length of the plain-text projection, counted in characters.
func PlainLen(fragment string) int {
	return utf8.RuneCountInString(PlainText(fragment))
}

// Remaining reports how many characters are still allowed under limit.
// A non-positive limit means unlimited and yields -1.
func Remaining(fragment string, limit int) int {
	if limit <= 0 {
		return -1
	}
	if left := limit - PlainLen(fragment); left > 0 {
		return left
	}
	return 0
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// runePrefix returns the first n characters of s.
func runePrefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// runeSuffix returns s without its first n characters.
func runeSuffix(s string, n int) string {
	return s[len(runePrefix(s, n)):]
}
