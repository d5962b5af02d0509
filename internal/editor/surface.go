// Package editor holds the editable region controller: a live editable
// surface bound to one content field, kept within its length budget and
// markup allow-list while the user types, pastes and formats.
package editor

import (
	"golang.org/x/net/html"

	"resume-builder/pkg/richtext"
)

// Surface is an in-memory editable region: a node tree plus focus and a
// selection whose boundaries point into that tree.
type Surface struct {
	root    *html.Node
	focused bool
	anchor  richtext.Position
	focus   richtext.Position
}

// NewSurface returns an empty, unfocused surface.
func NewSurface() *Surface {
	return &Surface{root: richtext.NewContainer()}
}

// Root exposes the container node.
func (s *Surface) Root() *html.Node { return s.root }

func (s *Surface) Focus()        { s.focused = true }
func (s *Surface) Focused() bool { return s.focused }

// Blur removes focus and drops the selection.
func (s *Surface) Blur() {
	s.focused = false
	s.anchor, s.focus = richtext.Position{}, richtext.Position{}
}

// Select places the selection between two character offsets.
func (s *Surface) Select(start, end int) {
	s.anchor = richtext.PositionAt(s.root, start)
	s.focus = richtext.PositionAt(s.root, end)
}

// SetCaret collapses the selection at character offset n.
func (s *Surface) SetCaret(n int) { s.Select(n, n) }

// CaretToEnd collapses the selection after the last character.
func (s *Surface) CaretToEnd() {
	s.anchor = richtext.End(s.root)
	s.focus = s.anchor
}

// CaretToStart collapses the selection before the first child.
func (s *Surface) CaretToStart() {
	s.anchor = richtext.Position{Node: s.root}
	s.focus = s.anchor
}

// SelectPositions sets raw selection boundaries.
func (s *Surface) SelectPositions(anchor, focus richtext.Position) {
	s.anchor, s.focus = anchor, focus
}

// Selection returns the selected character range, ordered. ok is false when
// nothing is selected inside the surface.
func (s *Surface) Selection() (start, end int, ok bool) {
	if !s.inside(s.anchor) || !s.inside(s.focus) {
		return 0, 0, false
	}
	start = richtext.Offset(s.root, s.anchor)
	end = richtext.Offset(s.root, s.focus)
	if start > end {
		start, end = end, start
	}
	return start, end, true
}

// FocusPosition is the moving end of the selection.
func (s *Surface) FocusPosition() richtext.Position { return s.focus }

func (s *Surface) inside(p richtext.Position) bool {
	return p.Node != nil && richtext.Contains(s.root, p.Node)
}

// HTML serializes the surface content.
func (s *Surface) HTML() string { return richtext.Inner(s.root) }

// Text returns the plain-text projection of the surface content.
func (s *Surface) Text() string { return richtext.TextContent(s.root) }

// SetHTML replaces the content with fragment. Any selection is invalidated.
func (s *Surface) SetHTML(fragment string) {
	richtext.SetInner(s.root, fragment)
}

// SetText replaces the content with a single text node.
func (s *Surface) SetText(text string) {
	richtext.RemoveChildren(s.root)
	if text != "" {
		s.root.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// InsertHTML replaces the selection with fragment and collapses the caret
// after it. Without a selection the fragment is appended.
func (s *Surface) InsertHTML(fragment string) {
	s.insert(richtext.Parse(fragment))
}

// InsertText replaces the selection with literal text.
func (s *Surface) InsertText(text string) {
	c := richtext.NewContainer()
	if text != "" {
		c.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	s.insert(c)
}

func (s *Surface) insert(frag *html.Node) {
	start, end, ok := s.Selection()
	if !ok {
		start = len([]rune(s.Text()))
		end = start
	}
	richtext.DeleteRange(s.root, start, end)
	added := len([]rune(richtext.TextContent(frag)))

	parent, before := richtext.Split(s.root, start)
	if parent == nil {
		parent, before = s.root, nil
	}
	for c := frag.FirstChild; c != nil; {
		next := c.NextSibling
		frag.RemoveChild(c)
		parent.InsertBefore(c, before)
		c = next
	}
	s.SetCaret(start + added)
}
