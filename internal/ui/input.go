package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Input is a single-line text field.
type Input struct {
	value string
	limit int
}

// NewInput creates a field holding at most limit grapheme clusters
// (0 means unlimited).
func NewInput(limit int) *Input {
	return &Input{limit: limit}
}

// Value returns the current text.
func (in *Input) Value() string {
	return in.value
}

// SetValue replaces the text.
func (in *Input) SetValue(s string) {
	in.value = s
}

// Clear empties the field.
func (in *Input) Clear() {
	in.value = ""
}

// Backspace removes the last grapheme cluster.
func (in *Input) Backspace() {
	if in.value == "" {
		return
	}
	g := uniseg.NewGraphemes(in.value)
	last := 0
	for g.Next() {
		from, _ := g.Positions()
		last = from
	}
	in.value = in.value[:last]
}

// HandleKey applies an editing key and reports whether the event was
// consumed. Enter and Escape are left to the caller.
func (in *Input) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		in.Backspace()
		return true
	case tcell.KeyCtrlU:
		in.Clear()
		return true
	case tcell.KeyRune:
		next := in.value + string(ev.Rune())
		if in.limit > 0 && uniseg.GraphemeClusterCount(next) > in.limit {
			return true
		}
		in.value = next
		return true
	}
	return false
}
