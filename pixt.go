// Package pixt converts raster images into character art. Each output
// character stands for a vertical pair of pixels: the glyph is picked from
// a Palette by intensity, and a Sink writes it as plain text, 24-bit ANSI
// terminal text, HTML, or a PNG preview, optionally colored with the two
// pixel colors.
package pixt

import "errors"

var (
	// ErrEmptyPalette is returned when a palette has no rows or a row
	// without glyphs.
	ErrEmptyPalette = errors.New("palette must have at least one non-empty row")

	// ErrInvalidGlyphs is returned when custom palette input cannot be
	// interpreted as UTF-8 text.
	ErrInvalidGlyphs = errors.New("palette input is not valid UTF-8")

	// ErrUnsupportedFormat is returned for format and color mode
	// combinations that have no sink, SVG in particular.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)
