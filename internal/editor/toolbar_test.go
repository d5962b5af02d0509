package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-builder/internal/domain"
)

func richController(content string) (*Controller, *recorder) {
	rec := &recorder{}
	c := New(content, Options{Kind: domain.ContentHTML, Rich: true, OnChange: rec.onChange})
	c.Surface().Focus()
	return c, rec
}

func TestExecBoldToggles(t *testing.T) {
	c, rec := richController("hello")
	c.Surface().Select(0, 5)

	c.Exec(Bold)
	assert.Equal(t, "<b>hello</b>", rec.last())
	assert.True(t, c.Toolbar().Bold)
	assert.Contains(t, c.View(), `data-command="bold" data-active="true"`)

	c.Exec(Bold)
	assert.Equal(t, "hello", rec.last())
	assert.False(t, c.Toolbar().Bold)
}

func TestExecItalicOnPartialSelection(t *testing.T) {
	c, rec := richController("hello world")
	c.Surface().Select(6, 11)

	c.Exec(Italic)
	assert.Equal(t, "hello <i>world</i>", rec.last())
}

func TestExecCollapsedInlineIsNoop(t *testing.T) {
	c, rec := richController("hello")
	c.Surface().SetCaret(2)
	c.Exec(Underline)
	assert.Empty(t, rec.values)
}

func TestExecListsOnCaretLine(t *testing.T) {
	c, rec := richController("one<br>two")
	c.Surface().SetCaret(4)

	c.Exec(UnorderedList)
	assert.Equal(t, "one<br><ul><li>two</li></ul>", rec.last())
	assert.True(t, c.Toolbar().UnorderedList)

	c.Exec(OrderedList)
	assert.Equal(t, "one<br><ol><li>two</li></ol>", rec.last())
	assert.True(t, c.Toolbar().OrderedList)

	c.Exec(OrderedList)
	assert.Equal(t, "one<br>two", rec.last())
}

func TestExecListOnLastLine(t *testing.T) {
	c, rec := richController("a<br>b<br>c")
	c.Surface().SetCaret(3)

	c.Exec(UnorderedList)
	assert.Equal(t, "a<br>b<br><ul><li>c</li></ul>", rec.last())
}

func TestExecListOverSelectedLines(t *testing.T) {
	c, rec := richController("one<br>two")
	c.Surface().Select(0, 6)

	c.Exec(UnorderedList)
	assert.Equal(t, "<ul><li>one</li><li>two</li></ul>", rec.last())
}

func TestToolbarDisabledForPlainFields(t *testing.T) {
	c := New("<b>x</b>", Options{Kind: domain.ContentHTML})
	c.Surface().Focus()
	c.Surface().Select(0, 1)
	assert.False(t, c.HasToolbar())
	assert.Equal(t, ToolbarState{}, c.Toolbar())

	c.Exec(Bold)
	assert.Equal(t, "<b>x</b>", c.Surface().HTML())
}
