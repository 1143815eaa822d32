package gamedata

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000", "FF0000" or "#F00") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}

// ThemeDef is a named colour scheme for one screen family.
type ThemeDef struct {
	ID         string `json:"id"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	Accent     string `json:"accent"`
}

// ThemesFile represents the structure of themes.json.
type ThemesFile struct {
	Themes []ThemeDef `json:"themes"`
}

// LoadThemes loads theme definitions from the embedded themes.json file.
func LoadThemes() ([]ThemeDef, error) {
	file, err := Load[ThemesFile]("themes.json")
	if err != nil {
		return nil, err
	}
	return file.Themes, nil
}

// Contrast picks black or white text for the given background, whichever
// reads better.
func Contrast(background string) tcell.Color {
	if !strings.HasPrefix(background, "#") {
		background = "#" + background
	}
	c, err := colorful.Hex(background)
	if err != nil {
		return tcell.ColorWhite
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}
