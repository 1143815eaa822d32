package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Renderer handles drawing text screens.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Begin clears the frame to the palette background.
func (r *Renderer) Begin(p Palette) {
	r.screen.Fill(p.Base())
}

// End flushes the frame.
func (r *Renderer) End() {
	r.screen.Show()
}

// Size returns the drawable area.
func (r *Renderer) Size() (width, height int) {
	return r.screen.Size()
}

// Text draws s starting at column x and returns the column after it.
// Grapheme clusters are kept together and wide characters take two cells.
func (r *Renderer) Text(x, y int, s string, style tcell.Style) int {
	width, height := r.screen.Size()
	if y < 0 || y >= height {
		return x
	}
	state := -1
	for s != "" {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		runes := []rune(cluster)
		if x >= 0 {
			r.screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += w
	}
	return x
}

// Centered draws s horizontally centred on row y.
func (r *Renderer) Centered(y int, s string, style tcell.Style) {
	width, _ := r.screen.Size()
	x := (width - TextWidth(s)) / 2
	if x < 0 {
		x = 0
	}
	r.Text(x, y, s, style)
}

// Bar fills row y with style and draws s centred on it.
func (r *Renderer) Bar(y int, s string, style tcell.Style) {
	width, _ := r.screen.Size()
	r.Text(0, y, strings.Repeat(" ", width), style)
	r.Centered(y, s, style)
}

// Footer draws key hints on the last row.
func (r *Renderer) Footer(s string, style tcell.Style) {
	_, height := r.screen.Size()
	r.Centered(height-1, s, style)
}

// TextWidth returns the number of cells s occupies.
func TextWidth(s string) int {
	return uniseg.StringWidth(s)
}

// Truncate shortens s to at most width cells, ending with an ellipsis when
// anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if TextWidth(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	state := -1
	for s != "" {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if used+w > width-1 {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	b.WriteString("…")
	return b.String()
}
