package richtext

import "golang.org/x/net/html"

// Position is a boundary point inside a tree. For text nodes Offset counts
// characters; for element nodes it is a child index.
type Position struct {
	Node   *html.Node
	Offset int
}

// Offset returns the number of text characters between the start of
// container and pos. Markup does not count. A position that is unset or lies
// outside container yields 0.
func Offset(container *html.Node, pos Position) int {
	if container == nil || pos.Node == nil || !Contains(container, pos.Node) {
		return 0
	}
	offset := max(pos.Offset, 0)

	count := 0
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		i := 0
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if n == pos.Node && i == offset {
				return true
			}
			if c.Type == html.TextNode {
				if c == pos.Node {
					count += min(offset, runeLen(c.Data))
					return true
				}
				count += runeLen(c.Data)
			} else if walk(c) {
				return true
			}
			i++
		}
		return n == pos.Node
	}
	walk(container)
	return count
}

// PositionAt returns the collapsed position preceded by exactly n text
// characters. Offsets past the end clamp to the end of the content.
func PositionAt(container *html.Node, n int) Position {
	if container == nil {
		return Position{}
	}
	remaining := max(n, 0)
	for _, t := range TextNodes(container) {
		l := runeLen(t.Data)
		if l >= remaining {
			return Position{Node: t, Offset: remaining}
		}
		remaining -= l
	}
	return End(container)
}

// End returns the position after the last character of container.
func End(container *html.Node) Position {
	if container == nil {
		return Position{}
	}
	texts := TextNodes(container)
	if len(texts) == 0 {
		children := 0
		for c := container.FirstChild; c != nil; c = c.NextSibling {
			children++
		}
		return Position{Node: container, Offset: children}
	}
	last := texts[len(texts)-1]
	return Position{Node: last, Offset: runeLen(last.Data)}
}

// Split turns character offset n into a node boundary, splitting a text node
// when needed. It returns the parent to insert into and the node to insert
// before (nil meaning append).
func Split(container *html.Node, n int) (parent, before *html.Node) {
	pos := PositionAt(container, n)
	if pos.Node == nil {
		return nil, nil
	}
	if pos.Node.Type != html.TextNode {
		return pos.Node, childAt(pos.Node, pos.Offset)
	}
	t := pos.Node
	switch {
	case pos.Offset <= 0:
		return t.Parent, t
	case pos.Offset >= runeLen(t.Data):
		return t.Parent, t.NextSibling
	}
	tail := &html.Node{Type: html.TextNode, Data: runeSuffix(t.Data, pos.Offset)}
	t.Data = runePrefix(t.Data, pos.Offset)
	t.Parent.InsertBefore(tail, t.NextSibling)
	return t.Parent, tail
}

// DeleteRange removes the text characters in [start, end). Elements are left
// in place even when they end up empty.
func DeleteRange(container *html.Node, start, end int) {
	if container == nil || end <= start {
		return
	}
	pos := 0
	for _, t := range TextNodes(container) {
		l := runeLen(t.Data)
		s, e := pos, pos+l
		pos = e
		lo, hi := max(start, s), min(end, e)
		if lo < hi {
			t.Data = runePrefix(t.Data, lo-s) + runeSuffix(t.Data, hi-s)
		}
	}
}

func childAt(n *html.Node, i int) *html.Node {
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}
