// Package contrast picks legible text colors for team-colored backgrounds.
//
// The score sheet uses the perceived-brightness formula and the workbook
// uses WCAG coefficients. The two may disagree for the same color.
package contrast

import (
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// ErrInvalidColor is returned for strings that are not hex RGB colors.
var ErrInvalidColor = crerr.New("invalid color")

// RGB is an 8-bit per channel color.
type RGB struct {
	R, G, B uint8
}

// White is the fallback background for missing colors.
var White = RGB{R: 0xFF, G: 0xFF, B: 0xFF}

// ParseHex parses #RRGGBB, RRGGBB or #RGB.
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, crerr.Wrapf(ErrInvalidColor, "%q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, crerr.Wrapf(ErrInvalidColor, "%q", s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustParseHex parses s and falls back to White when it is not a color.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		return White
	}
	return c
}

// Hex formats the color as #RRGGBB.
func (c RGB) Hex() string {
	const digits = "0123456789ABCDEF"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+i*2] = digits[v>>4]
		b[2+i*2] = digits[v&0x0F]
	}
	return string(b)
}

// TextColor is one of the two canonical foregrounds.
type TextColor int

// Text colors.
const (
	Dark TextColor = iota
	Light
)

// CSS returns the color literal used in the HTML score sheet.
func (t TextColor) CSS() string {
	if t == Light {
		return "#FFFFFF"
	}
	return "#000000"
}

func (t TextColor) String() string {
	if t == Light {
		return "light"
	}
	return "dark"
}

// LegacyLuminance is 1 minus the perceived brightness, in [0,1]. Bright
// backgrounds score low.
func LegacyLuminance(c RGB) float64 {
	return 1 - (0.299*float64(c.R)+0.587*float64(c.G)+0.114*float64(c.B))/255
}

// LegacyText is the score-sheet policy: dark text when LegacyLuminance < 0.5.
func LegacyText(c RGB) TextColor {
	if LegacyLuminance(c) < 0.5 {
		return Dark
	}
	return Light
}

// Workbook font colors.
const (
	WorkbookDark  = "000000"
	WorkbookLight = "FFFFFF"
)

// RelativeLuminance applies WCAG channel coefficients to raw channel values,
// in [0,1].
func RelativeLuminance(c RGB) float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
}

// WorkbookFont is the spreadsheet policy: black font on backgrounds brighter
// than one half, white otherwise.
func WorkbookFont(c RGB) string {
	if RelativeLuminance(c) > 0.5 {
		return WorkbookDark
	}
	return WorkbookLight
}
