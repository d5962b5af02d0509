package richtext

import "golang.org/x/net/html"

// Truncate cuts fragment so that its plain-text projection holds at most
// limit characters. Everything up to the cut is kept verbatim; everything
// after it is discarded. A negative limit means unlimited, and a fragment that
// already fits is returned unchanged.
func Truncate(fragment string, limit int) string {
	if limit < 0 || PlainLen(fragment) <= limit {
		return fragment
	}
	root := Parse(fragment)
	TruncateTree(root, limit)
	return Inner(root)
}

// TruncateTree truncates the tree under root in place and reports whether
// anything was cut.
func TruncateTree(root *html.Node, limit int) bool {
	if root == nil || limit < 0 {
		return false
	}
	texts := TextNodes(root)
	total := 0
	for _, t := range texts {
		total += runeLen(t.Data)
	}
	if total <= limit {
		return false
	}

	remaining := limit
	var ref *html.Node
	for _, t := range texts {
		n := runeLen(t.Data)
		if n >= remaining {
			t.Data = runePrefix(t.Data, remaining)
			ref = t
			break
		}
		remaining -= n
	}
	if ref == nil {
		return false
	}

	// drop every following sibling of the cut node and of its ancestors
	for cur := ref; cur != nil && cur != root; cur = cur.Parent {
		for cur.NextSibling != nil {
			cur.Parent.RemoveChild(cur.NextSibling)
		}
	}
	if ref.Data == "" {
		pruneEmpty(root, ref)
	}
	return true
}

// pruneEmpty removes n and then every ancestor left without children.
func pruneEmpty(root, n *html.Node) {
	p := n.Parent
	if p == nil {
		return
	}
	p.RemoveChild(n)
	for p != root && p.FirstChild == nil && p.Parent != nil {
		gp := p.Parent
		gp.RemoveChild(p)
		p = gp
	}
}
