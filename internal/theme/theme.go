package theme

import (
	"fmt"
	"image/color"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
)

var hex6 = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Palette holds the UI colors as #RRGGBB strings.
type Palette struct {
	Background string
	Card       string
	Foreground string
	Accent     string // generate
	Primary    string // save
	Danger     string // clear
}

func DefaultPalette() Palette {
	return Palette{
		Background: "#1e1e2e",
		Card:       "#2e2e3e",
		Foreground: "#ffffff",
		Accent:     "#4caf50",
		Primary:    "#2196f3",
		Danger:     "#ef4444",
	}
}

// Sanitize replaces every invalid color with the matching default.
func (p Palette) Sanitize() Palette {
	d := DefaultPalette()
	return Palette{
		Background: SafeColor(p.Background, d.Background),
		Card:       SafeColor(p.Card, d.Card),
		Foreground: SafeColor(p.Foreground, d.Foreground),
		Accent:     SafeColor(p.Accent, d.Accent),
		Primary:    SafeColor(p.Primary, d.Primary),
		Danger:     SafeColor(p.Danger, d.Danger),
	}
}

func IsHexColor(c string) bool {
	return hex6.MatchString(c)
}

// SafeColor returns c when it is a #RRGGBB color and fallback otherwise.
func SafeColor(c, fallback string) string {
	if IsHexColor(c) {
		return c
	}
	return fallback
}

// Darken scales every channel of a #RRGGBB color by factor, clamped to [0,255].
// Invalid input is returned unchanged.
func Darken(hexColor string, factor float64) string {
	r, g, b, err := ParseHex(hexColor)
	if err != nil {
		return hexColor
	}
	return fmt.Sprintf("#%02x%02x%02x", scale(r, factor), scale(g, factor), scale(b, factor))
}

// ParseHex splits a #RRGGBB color into its channels.
func ParseHex(hexColor string) (r, g, b uint8, err error) {
	if !IsHexColor(hexColor) {
		return 0, 0, 0, fmt.Errorf("invalid color %q: expected #RRGGBB", hexColor)
	}
	c, err := colorful.Hex(hexColor)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", hexColor, err)
	}
	r, g, b = c.RGB255()
	return r, g, b, nil
}

// RGBA converts a #RRGGBB color to an opaque color.RGBA.
func RGBA(hexColor string) (color.RGBA, error) {
	r, g, b, err := ParseHex(hexColor)
	if err != nil {
		return color.RGBA{}, err
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func scale(c uint8, factor float64) uint8 {
	v := int(float64(c) * factor)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
