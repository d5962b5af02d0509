package editor

import (
	"strings"
	"unicode/utf8"

	"resume-builder/internal/domain"
	"resume-builder/pkg/richtext"
)

// Options configures a Controller.
type Options struct {
	Kind             domain.ContentKind
	MaxLength        int // plain-text characters; 0 means unlimited
	Rich             bool
	AllowPresentDate bool
	PreviewMode      bool
	Placeholder      string
	OnChange         func(content string)
}

// OptionsFor derives controller options from a field description.
func OptionsFor(f domain.Field) Options {
	return Options{
		Kind:             f.ContentKind(),
		MaxLength:        f.MaxLength,
		Rich:             f.Rich(),
		AllowPresentDate: f.AllowPresent,
		Placeholder:      f.Placeholder,
	}
}

// Clipboard is a paste payload with an HTML and a plain-text flavour. Either
// may be empty.
type Clipboard interface {
	HTML() string
	Text() string
}

// ClipboardData is a static Clipboard.
type ClipboardData struct {
	Markup string `json:"html"`
	Plain  string `json:"text"`
}

func (c ClipboardData) HTML() string { return c.Markup }
func (c ClipboardData) Text() string { return c.Plain }

// Controller binds a Surface to an externally owned content string.
type Controller struct {
	opts        Options
	surface     *Surface
	content     string
	lastEmitted string
	empty       bool
}

// New creates a controller showing content.
func New(content string, opts Options) *Controller {
	if opts.Kind == "" {
		opts.Kind = domain.ContentText
	}
	c := &Controller{opts: opts, surface: NewSurface(), lastEmitted: content}
	c.content = content
	c.load(content)
	return c
}

// Surface returns the live editing surface.
func (c *Controller) Surface() *Surface { return c.surface }

// Content is the last content supplied by the owner or emitted to it.
func (c *Controller) Content() string { return c.content }

// Options returns the controller configuration.
func (c *Controller) Options() Options { return c.opts }

// Empty reports whether the plain-text projection is blank.
func (c *Controller) Empty() bool { return c.empty }

func (c *Controller) isHTML() bool { return c.opts.Kind == domain.ContentHTML }

// current reads the surface the way the owner stores content.
func (c *Controller) current() string {
	if c.isHTML() {
		return c.surface.HTML()
	}
	return c.surface.Text()
}

func (c *Controller) load(content string) {
	if c.isHTML() {
		c.surface.SetHTML(content)
	} else {
		c.surface.SetText(content)
	}
	c.empty = strings.TrimSpace(c.surface.Text()) == ""
}

// Sync applies content supplied from outside. When it differs from what the
// surface shows, the surface is rewritten; a caret inside a focused surface
// keeps its character offset, clamped to the new length.
func (c *Controller) Sync(content string) {
	c.content = content
	c.lastEmitted = content
	if c.opts.PreviewMode || c.current() == content {
		return
	}
	c.replace(content)
}

// replace rewrites the surface and restores the caret at the same character
// offset when the surface is focused with a selection inside it.
func (c *Controller) replace(content string) {
	_, offset, inside := c.surface.Selection()
	restore := inside && c.surface.Focused()
	c.load(content)
	if restore {
		c.surface.SetCaret(min(offset, utf8.RuneCountInString(c.surface.Text())))
	}
}

// Input processes the surface after a user edit: sanitize rich markup,
// enforce the length budget by truncating in place, then emit the result if
// it changed.
func (c *Controller) Input() {
	if c.opts.PreviewMode {
		return
	}
	next := c.current()
	if c.opts.Rich && c.isHTML() {
		if clean := richtext.Sanitize(next); clean != next {
			next = clean
			c.replace(next)
		}
	}
	if c.opts.MaxLength > 0 {
		if c.isHTML() {
			if cut := richtext.Truncate(next, c.opts.MaxLength); cut != next {
				next = cut
				c.replace(next)
			}
		} else if utf8.RuneCountInString(next) > c.opts.MaxLength {
			next = string([]rune(next)[:c.opts.MaxLength])
			c.replace(next)
		}
	}

	if next != c.lastEmitted {
		c.lastEmitted = next
		c.content = next
		if c.opts.OnChange != nil {
			c.opts.OnChange(next)
		}
	}

	c.empty = strings.TrimSpace(c.surface.Text()) == ""
	if c.empty && c.surface.Focused() {
		c.surface.CaretToStart()
	}
}

// TypeText inserts text at the caret as a keystroke would and processes the
// resulting input.
func (c *Controller) TypeText(text string) {
	if c.opts.PreviewMode {
		return
	}
	c.surface.InsertText(text)
	c.Input()
}

// KeyDown handles a key press and reports whether the default action was
// suppressed. In a plain single-line field Enter commits by removing focus
// instead of inserting a newline.
func (c *Controller) KeyDown(key string) bool {
	if c.opts.PreviewMode || c.opts.Rich || c.isHTML() || key != "Enter" {
		return false
	}
	c.surface.Blur()
	return true
}

// Remaining is the number of characters still accepted, or -1 when the field
// is unlimited.
func (c *Controller) Remaining() int {
	if c.opts.MaxLength <= 0 {
		return -1
	}
	return max(0, c.opts.MaxLength-utf8.RuneCountInString(c.surface.Text()))
}

// Paste inserts a clipboard payload at the caret. Only as much of it as fits
// the remaining budget is inserted; with no budget left it is discarded.
func (c *Controller) Paste(cb Clipboard) {
	if c.opts.PreviewMode || cb == nil {
		return
	}
	remaining := c.Remaining()
	if remaining == 0 {
		return
	}

	if c.isHTML() {
		cleaned := ""
		if h := cb.HTML(); h != "" {
			cleaned = richtext.CleanPastedHTML(h)
		}
		if cleaned == "" {
			cleaned = richtext.PlainTextToHTML(cb.Text())
		}
		cleaned = richtext.Truncate(cleaned, remaining)
		if cleaned == "" {
			return
		}
		c.surface.InsertHTML(cleaned)
	} else {
		text := strings.ReplaceAll(cb.Text(), "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
		if remaining > 0 && utf8.RuneCountInString(text) > remaining {
			text = string([]rune(text)[:remaining])
		}
		if text == "" {
			return
		}
		c.surface.InsertText(text)
	}
	c.Input()
}

// ReplaceAll swaps the whole content as a user edit would, e.g. when a
// companion picker commits a value.
func (c *Controller) ReplaceAll(content string) {
	if c.opts.PreviewMode {
		return
	}
	c.load(content)
	c.Input()
}

// PreviewMode reports whether the controller renders statically.
func (c *Controller) PreviewMode() bool { return c.opts.PreviewMode }

// SetPreviewMode switches between editing and static rendering. Leaving
// preview mode reloads the surface from the current content.
func (c *Controller) SetPreviewMode(on bool) {
	if c.opts.PreviewMode == on {
		return
	}
	c.opts.PreviewMode = on
	if on {
		c.surface.Blur()
		return
	}
	if c.current() != c.content {
		c.load(c.content)
	}
}
