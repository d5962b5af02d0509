package richtext

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// richTags is the allow-list for multi-line rich fields.
var richTags = map[atom.Atom]bool{
	atom.B: true, atom.Strong: true, atom.I: true, atom.Em: true, atom.U: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Br: true,
}

// inlineTags is the allow-list for single-line fields.
var inlineTags = map[atom.Atom]bool{
	atom.B: true, atom.Strong: true, atom.I: true, atom.Em: true, atom.U: true,
}

// pasteDropped elements are removed together with their content on paste.
var pasteDropped = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Meta: true, atom.Link: true,
	atom.Iframe: true, atom.Object: true, atom.Embed: true, atom.Svg: true,
	atom.Canvas: true, atom.Video: true, atom.Audio: true, atom.Picture: true,
	atom.Source: true, atom.Track: true, atom.Hr: true, atom.Form: true,
	atom.Fieldset: true, atom.Legend: true, atom.Button: true, atom.Input: true,
	atom.Textarea: true, atom.Select: true, atom.Option: true, atom.Table: true,
	atom.Thead: true, atom.Tbody: true, atom.Tfoot: true, atom.Tr: true,
	atom.Th: true, atom.Td: true, atom.Img: true, atom.Title: true,
}

// pasteBlocks are flattened on paste with a line break separating them from
// preceding content.
var pasteBlocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Section: true,
	atom.Article: true, atom.Header: true, atom.Footer: true, atom.Aside: true,
	atom.Nav: true, atom.Main: true, atom.Blockquote: true, atom.Pre: true,
	atom.Address: true, atom.Figure: true, atom.Figcaption: true,
	atom.Dl: true, atom.Dt: true, atom.Dd: true,
}

// Sanitize reduces fragment to the rich allow-list: b, strong, i, em, u, ul,
// ol, li and br, all without attributes. Other elements are unwrapped so their
// text survives. Runs of adjacent line breaks collapse into one.
func Sanitize(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	root := Parse(fragment)
	unwrapDisallowed(root, richTags)
	collapseAdjacentBreaks(root)
	return strings.TrimSpace(Inner(root))
}

// SanitizeSingleLine is the strict mode used by one-line formatted fields.
// Only inline emphasis survives; line breaks and newline characters become
// spaces and whitespace runs collapse to a single space.
func SanitizeSingleLine(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	root := Parse(fragment)
	flattenLine(root)
	return collapseSpace(Inner(root))
}

// CleanPastedHTML prepares a clipboard HTML payload for insertion. Non-content
// elements are dropped with their children, block containers are flattened
// into line breaks, break runs collapse and non-breaking spaces become plain
// spaces.
func CleanPastedHTML(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	root := Parse(fragment)
	dropNonContent(root)
	flattenPasted(root)
	normalizePasted(root)
	return strings.TrimSpace(Inner(root))
}

// PlainTextToHTML converts a plain clipboard payload into line-break separated
// markup: every non-blank line is whitespace-collapsed, trimmed and escaped.
func PlainTextToHTML(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.Join(strings.FieldsFunc(l, unicode.IsSpace), " ")
		if l == "" {
			continue
		}
		lines = append(lines, textEscaper.Replace(l))
	}
	return strings.Join(lines, "<br>")
}

// unwrapDisallowed walks children before their parent, so content promoted
// out of an unwrapped element has already been cleaned.
func unwrapDisallowed(n *html.Node, allowed map[atom.Atom]bool) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.ElementNode:
			unwrapDisallowed(c, allowed)
			if allowed[c.DataAtom] && c.Namespace == "" {
				c.Attr = nil
			} else {
				Unwrap(c)
			}
		case html.CommentNode, html.DoctypeNode:
			n.RemoveChild(c)
		}
		c = next
	}
}

func flattenLine(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.ElementNode:
			flattenLine(c)
			switch {
			case c.DataAtom == atom.Br:
				n.InsertBefore(&html.Node{Type: html.TextNode, Data: " "}, c)
				n.RemoveChild(c)
			case inlineTags[c.DataAtom] && c.Namespace == "":
				c.Attr = nil
			default:
				Unwrap(c)
			}
		case html.CommentNode, html.DoctypeNode:
			n.RemoveChild(c)
		}
		c = next
	}
}

func dropNonContent(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.ElementNode:
			if pasteDropped[c.DataAtom] {
				n.RemoveChild(c)
			} else {
				dropNonContent(c)
			}
		case html.CommentNode, html.DoctypeNode:
			n.RemoveChild(c)
		}
		c = next
	}
}

func flattenPasted(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode {
			flattenPasted(c)
			switch {
			case richTags[c.DataAtom] && c.Namespace == "":
				c.Attr = nil
			case pasteBlocks[c.DataAtom]:
				if c.PrevSibling != nil && c.FirstChild != nil {
					n.InsertBefore(newBreak(), c)
				}
				Unwrap(c)
			default:
				Unwrap(c)
			}
		}
		c = next
	}
}

// normalizePasted replaces non-breaking spaces and collapses any run of
// breaks, including whitespace between and after them, into one break.
func normalizePasted(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			c.Data = strings.ReplaceAll(c.Data, "\u00a0", " ")
		case isBreak(c):
			var run []*html.Node
			breaks := 0
			for s := c.NextSibling; s != nil; s = s.NextSibling {
				if isBreak(s) {
					breaks++
				} else if !isBlankText(s) {
					break
				}
				run = append(run, s)
			}
			if breaks > 0 {
				for _, s := range run {
					n.RemoveChild(s)
				}
			}
		case c.Type == html.ElementNode:
			normalizePasted(c)
		}
	}
}

func collapseAdjacentBreaks(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isBreak(c) {
			for c.NextSibling != nil && isBreak(c.NextSibling) {
				n.RemoveChild(c.NextSibling)
			}
			continue
		}
		if c.Type == html.ElementNode {
			collapseAdjacentBreaks(c)
		}
	}
}

func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}

func newBreak() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "br", DataAtom: atom.Br}
}

func isBreak(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == atom.Br
}

func isBlankText(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}
