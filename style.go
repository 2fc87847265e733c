package pixt

import (
	"fmt"
	"strings"
)

// Style names a built-in palette together with the color mode it uses
// when colored output is requested.
type Style int

const (
	StylePixel Style = iota
	StyleAscii
	StyleBlock
	StyleBraille
	StyleDots
	StyleCustom
)

var (
	asciiRamp  = []rune{' ', '.', '-', '~', '+', '*', '%', '#', '@'}
	blockRamp  = []rune{' ', '░', '▒', '▓'}
	pixelRamp  = []rune{' ', '▀', '▞', '▟', '█'}
	pixelGlyph = []rune{'▀'}
	dotsRamp   = []rune{' ', '⠂', '⠒', '⠕', '⠞', '⠟', '⠿'}

	brailleGrid = [][]rune{
		{' ', '⠁', '⠉', '⠓', '⠛'},
		{'⠄', '⠅', '⠩', '⠝', '⠟'},
		{'⠤', '⠥', '⠭', '⠯', '⠽'},
		{'⠴', '⠵', '⠽', '⠾', '⠿'},
		{'⠶', '⠾', '⠾', '⠿', '⠿'},
	}
)

var styleNames = map[string]Style{
	"pixel":   StylePixel,
	"ascii":   StyleAscii,
	"block":   StyleBlock,
	"braills": StyleBraille,
	"braille": StyleBraille,
	"dots":    StyleDots,
	"custom":  StyleCustom,
}

// StyleNames lists the accepted style names in display order.
func StyleNames() []string {
	return []string{"pixel", "ascii", "block", "braills", "dots", "custom"}
}

// ParseStyle returns the style with the given case-insensitive name.
func ParseStyle(name string) (Style, error) {
	s, ok := styleNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown style %q (want one of %s)",
			name, strings.Join(StyleNames(), ", "))
	}
	return s, nil
}

func (s Style) String() string {
	switch s {
	case StylePixel:
		return "pixel"
	case StyleAscii:
		return "ascii"
	case StyleBlock:
		return "block"
	case StyleBraille:
		return "braills"
	case StyleDots:
		return "dots"
	case StyleCustom:
		return "custom"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// Palette returns the built-in palette for the style. Pixel swaps its
// ramp for a single upper-half block when colored, letting the foreground
// and background carry the two pixels. Custom styles have no built-in
// palette.
func (s Style) Palette(colored bool) (*Palette, error) {
	switch s {
	case StyleAscii:
		return NewRamp(asciiRamp)
	case StyleBlock:
		return NewRamp(blockRamp)
	case StylePixel:
		if colored {
			return NewRamp(pixelGlyph)
		}
		return NewRamp(pixelRamp)
	case StyleBraille:
		return NewGrid(brailleGrid)
	case StyleDots:
		return NewRamp(dotsRamp)
	}
	return nil, fmt.Errorf("style %s has no built-in palette", s)
}

// ColorMode returns the color mode for the style.
func (s Style) ColorMode(colored bool) ColorMode {
	switch {
	case !colored:
		return ColorNone
	case s == StylePixel:
		return ColorTopForeground
	default:
		return ColorAvgForeground
	}
}
