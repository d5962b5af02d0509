package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"plain text", "just text", "just text"},
		{"unwraps paragraph and strips attributes", `<p class="x">Hello <b style="c">world</b></p>`, "Hello <b>world</b>"},
		{"nested disallowed", `<div><span><em id="a">x</em></span></div>`, "<em>x</em>"},
		{"only disallowed tags", `<span>a</span><div>b</div>`, "ab"},
		{"break runs collapse", "a<br><br><br>b", "a<br>b"},
		{"lists survive", `<ul data-x="1"><li onclick="y()">one</li></ul>`, "<ul><li>one</li></ul>"},
		{"script text is kept as text", "<script>alert(1)</script>ok", "alert(1)ok"},
		{"entities stay escaped", "a &amp; b &lt;c&gt;", "a &amp; b &lt;c&gt;"},
		{"comments dropped", "a<!-- note -->b", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		`<p>one</p><p>two<br><br>three</p>`,
		`<b class="a"><i>x</i></b><u>y</u>`,
		`<ul><li>a</li><li><strong>b</strong></li></ul><ol><li>c</li></ol>`,
		`<div><div><span>deep</span></div></div><br><br>`,
		`<table><tr><td>cell</td></tr></table>`,
		`<a href="https://example.com">link</a> and <font color="red">red</font>`,
		"tabs\tand\nnewlines",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}

func TestSanitizeStripsAttributesKeepsOrder(t *testing.T) {
	in := `<b class="a">x</b><i style="y">z</i><ul id="l"><li title="t">w</li></ul>`
	assert.Equal(t, "<b>x</b><i>z</i><ul><li>w</li></ul>", Sanitize(in))
}

func TestSanitizeSingleLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"breaks and lists flatten", "<p>Hello<br>there</p>\n<ul><li><strong class=\"k\">bold</strong></li></ul>", "Hello there <strong>bold</strong>"},
		{"whitespace collapses", "  a \n\n b  ", "a b"},
		{"inline tags kept", `<em>x</em> <u>y</u> <i>z</i> <b>w</b>`, "<em>x</em> <u>y</u> <i>z</i> <b>w</b>"},
		{"line separators", "one two three", "one two three"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeSingleLine(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, SanitizeSingleLine(got))
		})
	}
}

func TestCleanPastedHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"clipboard document", `<html><body><!--StartFragment--><p>First</p><p>Second <b style="x">bold</b></p><!--EndFragment--></body></html>`, "First<br>Second <b>bold</b>"},
		{"drops non content", `<div>a</div><script>x()</script><img src="x.png"><p>b</p>`, "a<br>b"},
		{"break runs with whitespace", "a<br> <br> <br>b", "a<br>b"},
		{"nbsp normalised", "Price:&nbsp;10", "Price: 10"},
		{"empty blocks add no break", "<p></p><p>x</p>", "x"},
		{"spans unwrap without break", `<span style="a">x</span><span>y</span>`, "xy"},
		{"links keep their text", `see <a href="https://example.com">docs</a>`, "see docs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanPastedHTML(tt.in))
		})
	}
}

func TestPlainTextToHTML(t *testing.T) {
	assert.Equal(t, "line one<br>line two<br>&lt;tag&gt;", PlainTextToHTML("line one\r\n\r\n  line   two  \n<tag>"))
	assert.Equal(t, "", PlainTextToHTML("\n \n"))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "", PlainText("<p></p>"))
	assert.Equal(t, "x", PlainText("<p>x</p>"))
	assert.Equal(t, "a & b", PlainText("a &amp; b"))
	assert.Equal(t, 4, PlainLen("<b>héll</b>"))
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "", StripTags("<p></p>"))
	assert.Equal(t, "x", StripTags("<p><b>x</b></p>"))
	assert.Equal(t, "<Go>", StripTags("<Go>"))
	assert.Equal(t, "a < b", StripTags("a < b"))
	assert.Equal(t, "R&D", StripTags("R&D"))
}

func TestTextContentOfTopLevelChildren(t *testing.T) {
	root := Parse("one<br><b>two</b>")
	var got []string
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		got = append(got, TextContent(c))
	}
	assert.Equal(t, []string{"one", "", "two"}, got)
	assert.Len(t, TextNodes(root.FirstChild), 1)
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, -1, Remaining("anything", 0))
	assert.Equal(t, 5, Remaining("<b>12345</b>", 10))
	assert.Equal(t, 0, Remaining("123456789012", 10))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"cuts inside second node", "<b>Hello</b> world", 7, "<b>Hello</b> w"},
		{"drops trailing items", "<ul><li>one</li><li>two</li></ul>", 3, "<ul><li>one</li></ul>"},
		{"zero limit empties", "<b>abc</b>", 0, ""},
		{"cut at node end drops following structure", "<i>a</i><b>bc</b>", 1, "<i>a</i>"},
		{"multibyte characters", "héllo", 2, "hé"},
		{"fits already", `<p class="x">short</p>`, 10, `<p class="x">short</p>`},
		{"unlimited", "abc", -1, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.limit))
		})
	}
}

func TestTruncateNeverExceedsLimit(t *testing.T) {
	inputs := []string{
		"<b>Hello</b> <i>brave</i> new<br>world",
		"<ul><li>alpha</li><li><strong>beta</strong> gamma</li></ul>tail",
		"plain text only",
		"",
	}
	for _, in := range inputs {
		total := PlainLen(in)
		for n := 0; n <= total+2; n++ {
			out := Truncate(in, n)
			assert.LessOrEqual(t, PlainLen(out), n, "input %q limit %d", in, n)
			assert.LessOrEqual(t, PlainLen(out), total)
			if n >= total {
				assert.Equal(t, in, out)
			}
		}
	}
}

func TestCaretRoundTrip(t *testing.T) {
	container := Parse("ab<b>cd<i>e</i></b><br>fg")
	total := runeLen(TextContent(container))
	require.Equal(t, 7, total)

	for k := 0; k <= total; k++ {
		pos := PositionAt(container, k)
		require.NotNil(t, pos.Node)
		assert.Equal(t, k, Offset(container, pos), "offset %d", k)
	}
}

func TestCaretClampsAndTolerates(t *testing.T) {
	container := Parse("ab<b>cd</b>")

	assert.Equal(t, 4, Offset(container, PositionAt(container, 100)))
	assert.Equal(t, 0, Offset(container, PositionAt(container, -3)))
	assert.Equal(t, 2, Offset(container, Position{Node: container, Offset: 1}))

	detached := &html.Node{Type: html.TextNode, Data: "zzz"}
	assert.Equal(t, 0, Offset(container, Position{Node: detached, Offset: 2}))
	assert.Equal(t, 0, Offset(nil, Position{Node: detached}))
	assert.Equal(t, Position{}, PositionAt(nil, 3))

	empty := NewContainer()
	pos := PositionAt(empty, 5)
	assert.Equal(t, empty, pos.Node)
	assert.Equal(t, 0, Offset(empty, pos))
}

func TestSplitAndDelete(t *testing.T) {
	container := Parse("abcd")
	parent, before := Split(container, 2)
	require.NotNil(t, parent)
	b := &html.Node{Type: html.ElementNode, Data: "b", DataAtom: atom.B}
	b.AppendChild(&html.Node{Type: html.TextNode, Data: "X"})
	parent.InsertBefore(b, before)
	assert.Equal(t, "ab<b>X</b>cd", Inner(container))

	DeleteRange(container, 1, 4)
	assert.Equal(t, "a<b></b>d", Inner(container))
}
