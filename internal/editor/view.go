package editor

import (
	"strings"

	"golang.org/x/net/html"

	"resume-builder/pkg/richtext"
)

var commandLabels = map[Command]string{
	Bold:          "B",
	Italic:        "I",
	Underline:     "U",
	UnorderedList: "• List",
	OrderedList:   "1. List",
}

// View renders the controller. In preview mode the output is static markup
// with no placeholder; otherwise it is the editable region, preceded by the
// toolbar for rich fields.
func (c *Controller) View() string {
	var sb strings.Builder
	if c.opts.PreviewMode {
		sb.WriteString(`<div class="field">`)
		sb.WriteString(Static(c.content, c.isHTML()))
		sb.WriteString(`</div>`)
		return sb.String()
	}

	if c.HasToolbar() {
		state := c.Toolbar()
		sb.WriteString(`<div class="toolbar" data-toolbar>`)
		for _, cmd := range Commands {
			sb.WriteString(`<button type="button" data-command="`)
			sb.WriteString(string(cmd))
			sb.WriteString(`"`)
			if state.Active(cmd) {
				sb.WriteString(` data-active="true"`)
			}
			sb.WriteString(`>`)
			sb.WriteString(html.EscapeString(commandLabels[cmd]))
			sb.WriteString(`</button>`)
		}
		sb.WriteString(`</div>`)
	}

	empty := "false"
	if c.empty {
		empty = "true"
	}
	sb.WriteString(`<div class="editable-content" contenteditable="true" data-empty="`)
	sb.WriteString(empty)
	sb.WriteString(`" data-placeholder="`)
	sb.WriteString(html.EscapeString(c.opts.Placeholder))
	sb.WriteString(`">`)
	if c.isHTML() {
		sb.WriteString(c.surface.HTML())
	} else {
		sb.WriteString(html.EscapeString(c.surface.Text()))
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

// Static renders stored content as read-only markup. HTML content goes
// through the rich allow-list; plain content is escaped.
func Static(content string, isHTML bool) string {
	if isHTML {
		return richtext.Sanitize(content)
	}
	return html.EscapeString(content)
}
