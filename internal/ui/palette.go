package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/partybox/internal/gamedata"
)

// Palette is the colour scheme for one screen family.
type Palette struct {
	Background tcell.Color
	Foreground tcell.Color
	Accent     tcell.Color
	// OnAccent is the text colour that reads best on Accent.
	OnAccent tcell.Color
}

// DefaultPalette is used for themes missing from the data.
var DefaultPalette = Palette{
	Background: tcell.ColorBlack,
	Foreground: tcell.ColorWhite,
	Accent:     tcell.ColorYellow,
	OnAccent:   tcell.ColorBlack,
}

// Base is the normal text style.
func (p Palette) Base() tcell.Style {
	return tcell.StyleDefault.Background(p.Background).Foreground(p.Foreground)
}

// Title is bold text in the accent colour.
func (p Palette) Title() tcell.Style {
	return p.Base().Foreground(p.Accent).Bold(true)
}

// Selected highlights the focused row.
func (p Palette) Selected() tcell.Style {
	return tcell.StyleDefault.Background(p.Accent).Foreground(p.OnAccent).Bold(true)
}

// Dim is secondary text such as key hints.
func (p Palette) Dim() tcell.Style {
	return p.Base().Dim(true)
}

// Palettes maps theme IDs to palettes.
type Palettes map[string]Palette

// NewPalettes parses theme definitions. Invalid colours fall back to the
// default palette's value for that slot.
func NewPalettes(themes []gamedata.ThemeDef) Palettes {
	out := make(Palettes, len(themes))
	for _, t := range themes {
		p := DefaultPalette
		if c, err := gamedata.ParseHexColor(t.Background); err == nil {
			p.Background = c
		}
		if c, err := gamedata.ParseHexColor(t.Foreground); err == nil {
			p.Foreground = c
		}
		if c, err := gamedata.ParseHexColor(t.Accent); err == nil {
			p.Accent = c
			p.OnAccent = gamedata.Contrast(t.Accent)
		}
		out[t.ID] = p
	}
	return out
}

// Get returns the palette for id, or DefaultPalette.
func (p Palettes) Get(id string) Palette {
	if pal, ok := p[id]; ok {
		return pal
	}
	return DefaultPalette
}
