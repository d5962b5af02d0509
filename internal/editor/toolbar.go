package editor

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"resume-builder/pkg/richtext"
)

// Command is an inline formatting action offered by the toolbar.
type Command string

const (
	Bold          Command = "bold"
	Italic        Command = "italic"
	Underline     Command = "underline"
	UnorderedList Command = "insertUnorderedList"
	OrderedList   Command = "insertOrderedList"
)

// Commands lists the toolbar buttons in display order.
var Commands = []Command{Bold, Italic, Underline, UnorderedList, OrderedList}

// ToolbarState tells which formats apply at the caret.
type ToolbarState struct {
	Bold          bool `json:"bold"`
	Italic        bool `json:"italic"`
	Underline     bool `json:"underline"`
	UnorderedList bool `json:"ul"`
	OrderedList   bool `json:"ol"`
}

// Active reports the state of one command.
func (t ToolbarState) Active(cmd Command) bool {
	switch cmd {
	case Bold:
		return t.Bold
	case Italic:
		return t.Italic
	case Underline:
		return t.Underline
	case UnorderedList:
		return t.UnorderedList
	case OrderedList:
		return t.OrderedList
	}
	return false
}

var inlineFormats = map[Command][]atom.Atom{
	Bold:      {atom.B, atom.Strong},
	Italic:    {atom.I, atom.Em},
	Underline: {atom.U},
}

// HasToolbar reports whether the controller offers formatting commands.
func (c *Controller) HasToolbar() bool {
	return c.opts.Rich && c.isHTML() && !c.opts.PreviewMode
}

// Toolbar reflects the formatting around the current selection.
func (c *Controller) Toolbar() ToolbarState {
	var st ToolbarState
	p := c.surface.FocusPosition()
	if !c.HasToolbar() || !c.surface.inside(p) {
		return st
	}
	for n := p.Node; n != nil && n != c.surface.root; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		switch n.DataAtom {
		case atom.B, atom.Strong:
			st.Bold = true
		case atom.I, atom.Em:
			st.Italic = true
		case atom.U:
			st.Underline = true
		case atom.Ul:
			st.UnorderedList = true
		case atom.Ol:
			st.OrderedList = true
		}
	}
	return st
}

// Exec applies a formatting command to the selection and processes the edit.
func (c *Controller) Exec(cmd Command) {
	if !c.HasToolbar() {
		return
	}
	c.surface.Focus()
	start, end, ok := c.surface.Selection()
	if !ok {
		end = len([]rune(c.surface.Text()))
		start = end
	}
	root := c.surface.root
	switch cmd {
	case Bold, Italic, Underline:
		toggleInline(root, start, end, inlineFormats[cmd])
	case UnorderedList:
		toggleList(root, start, end, atom.Ul)
	case OrderedList:
		toggleList(root, start, end, atom.Ol)
	default:
		return
	}
	c.surface.Select(start, end)
	c.Input()
}

type textSpan struct {
	node       *html.Node
	start, end int
}

func spans(root *html.Node, start, end int) []textSpan {
	var out []textSpan
	pos := 0
	for _, t := range richtext.TextNodes(root) {
		l := len([]rune(t.Data))
		if pos < end && pos+l > start {
			out = append(out, textSpan{node: t, start: pos, end: pos + l})
		}
		pos += l
	}
	return out
}

func formatted(root, n *html.Node, tags []atom.Atom) *html.Node {
	for p := n.Parent; p != nil && p != root; p = p.Parent {
		for _, a := range tags {
			if p.Type == html.ElementNode && p.DataAtom == a {
				return p
			}
		}
	}
	return nil
}

// toggleInline removes the format when every selected character already has
// it, and otherwise wraps each selected run of text in tags[0].
func toggleInline(root *html.Node, start, end int, tags []atom.Atom) {
	if start >= end {
		return
	}
	sel := spans(root, start, end)
	if len(sel) == 0 {
		return
	}
	active := true
	for _, s := range sel {
		if formatted(root, s.node, tags) == nil {
			active = false
			break
		}
	}
	if active {
		for _, s := range sel {
			if f := formatted(root, s.node, tags); f != nil {
				richtext.Unwrap(f)
			}
		}
		return
	}
	for _, s := range sel {
		if formatted(root, s.node, tags) != nil {
			continue
		}
		r := []rune(s.node.Data)
		lo, hi := max(start, s.start)-s.start, min(end, s.end)-s.start
		el := &html.Node{Type: html.ElementNode, Data: tags[0].String(), DataAtom: tags[0]}
		el.AppendChild(&html.Node{Type: html.TextNode, Data: string(r[lo:hi])})

		parent := s.node.Parent
		if lo > 0 {
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: string(r[:lo])}, s.node)
		}
		parent.InsertBefore(el, s.node)
		if hi < len(r) {
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: string(r[hi:])}, s.node)
		}
		parent.RemoveChild(s.node)
	}
}

type line struct {
	nodes      []*html.Node
	start, end int
	brk        *html.Node // break terminating the line, if any
}

func lines(root *html.Node) []line {
	out := []line{{}}
	pos := 0
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		cur := &out[len(out)-1]
		if c.Type == html.ElementNode && c.DataAtom == atom.Br {
			cur.brk = c
			out = append(out, line{start: pos, end: pos})
			continue
		}
		pos += len([]rune(richtext.TextContent(c)))
		cur.nodes = append(cur.nodes, c)
		cur.end = pos
	}
	return out
}

func enclosingList(root, n *html.Node) *html.Node {
	for p := n; p != nil && p != root; p = p.Parent {
		if p.Type == html.ElementNode && (p.DataAtom == atom.Ul || p.DataAtom == atom.Ol) {
			return p
		}
	}
	return nil
}

// toggleList turns the selected top-level lines into a list of kind tag, or
// converts back to break separated lines when the caret already sits in one.
func toggleList(root *html.Node, start, end int, tag atom.Atom) {
	if list := enclosingList(root, richtext.PositionAt(root, start).Node); list != nil {
		if list.DataAtom != tag {
			list.Data, list.DataAtom = tag.String(), tag
			return
		}
		unlist(list)
		return
	}

	all := lines(root)
	first, last := -1, -1
	for i, l := range all {
		if l.start <= end && l.end >= start {
			if first < 0 {
				first = i
			}
			last = i
			if start == end {
				break
			}
		}
	}
	if first < 0 {
		return
	}

	list := &html.Node{Type: html.ElementNode, Data: tag.String(), DataAtom: tag}
	var anchor *html.Node
	if len(all[first].nodes) > 0 {
		anchor = all[first].nodes[0]
	} else if first > 0 {
		anchor = all[first-1].brk.NextSibling
	} else {
		anchor = root.FirstChild
	}
	root.InsertBefore(list, anchor)
	for i := first; i <= last; i++ {
		li := &html.Node{Type: html.ElementNode, Data: "li", DataAtom: atom.Li}
		for _, n := range all[i].nodes {
			root.RemoveChild(n)
			li.AppendChild(n)
		}
		list.AppendChild(li)
		if b := all[i].brk; b != nil {
			root.RemoveChild(b)
		}
	}
}

// unlist replaces a list with its items separated by breaks.
func unlist(list *html.Node) {
	parent := list.Parent
	if p := list.PrevSibling; p != nil && !isBreak(p) {
		parent.InsertBefore(newBreak(), list)
	}
	first := true
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if !first {
			parent.InsertBefore(newBreak(), list)
		}
		first = false
		for li.FirstChild != nil {
			c := li.FirstChild
			li.RemoveChild(c)
			parent.InsertBefore(c, list)
		}
	}
	if n := list.NextSibling; n != nil && !isBreak(n) {
		parent.InsertBefore(newBreak(), list)
	}
	parent.RemoveChild(list)
}

func newBreak() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "br", DataAtom: atom.Br}
}

func isBreak(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Br
}
