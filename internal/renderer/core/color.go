// Package core provides the cell and screen types shared by the renderer
// and its terminal backends.
package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents a terminal color.
// Supports the eight-color palette, true color and the terminal default.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	Indexed bool
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// paletteNames lists the classic eight colors in palette order.
var paletteNames = [...]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
}

// PaletteColor returns palette entry i.
func PaletteColor(i int) Color {
	return Color{R: uint8(i), Indexed: true}
}

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseColor accepts "default", a palette name such as "cyan", a palette
// index "%3" or a hex triplet "#rrggbb" / "#rgb".
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "default" {
		return ColorDefault, nil
	}
	for i, n := range paletteNames {
		if s == n {
			return PaletteColor(i), nil
		}
	}
	if strings.HasPrefix(s, "%") {
		var i int
		if _, err := fmt.Sscanf(s, "%%%d", &i); err != nil || i < 0 || i > 255 {
			return Color{}, fmt.Errorf("invalid palette index: %s", s)
		}
		return PaletteColor(i), nil
	}
	c, err := colorful.Hex(expandHex(s))
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return ColorFromRGB(r, g, b), nil
}

// expandHex turns "#abc" into "#aabbcc".
func expandHex(s string) string {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 {
		return s
	}
	return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
}

// IsDefault returns true if this is the terminal's default color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default != other.Default {
		return false
	}
	if c.Default {
		return true
	}
	if c.Indexed != other.Indexed {
		return false
	}
	if c.Indexed {
		return c.R == other.R
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns a string representation of the color.
func (c Color) String() string {
	switch {
	case c.Default:
		return "default"
	case c.Indexed && int(c.R) < len(paletteNames):
		return paletteNames[c.R]
	case c.Indexed:
		return fmt.Sprintf("%%%d", c.R)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
