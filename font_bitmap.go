package pixt

import (
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// GlyphWidth and GlyphHeight define the pixel size of one character
	// cell in PNG output. Cells are twice as tall as they are wide, like
	// terminal cells.
	GlyphWidth  = 8
	GlyphHeight = 16

	// alphaThreshold is the coverage above which an anti-aliased glyph
	// pixel counts as foreground (25%).
	alphaThreshold = 64
)

// GlyphBitmap is a GlyphWidth x GlyphHeight monochrome glyph, one byte
// per row with bit x set for a foreground pixel in column x.
type GlyphBitmap [GlyphHeight]uint8

// getBit checks if a specific bit is set in the bitmap
func (g GlyphBitmap) getBit(x, y int) bool {
	if x < 0 || x >= GlyphWidth || y < 0 || y >= GlyphHeight {
		return false
	}
	return g[y]&(1<<x) != 0
}

// setBit sets a specific bit in the bitmap
func (g *GlyphBitmap) setBit(x, y int, value bool) {
	if x < 0 || x >= GlyphWidth || y < 0 || y >= GlyphHeight {
		return
	}
	if value {
		g[y] |= 1 << x
	} else {
		g[y] &^= 1 << x
	}
}

// Quadrants represents the four quadrants of a block element glyph. A true
// quadrant is drawn in the foreground color.
type Quadrants struct {
	TopLeft     bool
	TopRight    bool
	BottomLeft  bool
	BottomRight bool
}

// blockQuadrants maps the block element glyphs onto their quadrants so
// they can be drawn exactly, whatever font is in use.
var blockQuadrants = map[rune]Quadrants{
	' ': {false, false, false, false}, // 0000: Empty space
	'▗': {false, false, false, true},  // 0001: Quadrant lower right
	'▖': {false, false, true, false},  // 0010: Quadrant lower left
	'▄': {false, false, true, true},   // 0011: Lower half block
	'▝': {false, true, false, false},  // 0100: Quadrant upper right
	'▐': {false, true, false, true},   // 0101: Right half block
	'▞': {false, true, true, false},   // 0110: Diagonal upper right and lower left
	'▟': {false, true, true, true},    // 0111: Three quadrants: upper right, lower left, lower right
	'▘': {true, false, false, false},  // 1000: Quadrant upper left
	'▚': {true, false, false, true},   // 1001: Diagonal upper left and lower right
	'▌': {true, false, true, false},   // 1010: Left half block
	'▙': {true, false, true, true},    // 1011: Three quadrants: upper left, lower left, lower right
	'▀': {true, true, false, false},   // 1100: Upper half block
	'▜': {true, true, false, true},    // 1101: Three quadrants: upper left, upper right, lower right
	'▛': {true, true, true, false},    // 1110: Three quadrants: upper left, upper right, lower left
	'█': {true, true, true, true},     // 1111: Full block
}

// shadePatterns draws the shade glyphs as regular dither patterns.
var shadePatterns = map[rune]func(x, y int) bool{
	'░': func(x, y int) bool { return x%2 == 0 && y%2 == 0 },
	'▒': func(x, y int) bool { return (x+y)%2 == 0 },
	'▓': func(x, y int) bool { return !(x%2 == 1 && y%2 == 1) },
}

// brailleDots maps the eight dot bits of a Braille pattern onto their
// column and row in the 2x4 dot matrix.
var brailleDots = [8]struct{ col, row int }{
	{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}, {0, 3}, {1, 3},
}

// brailleBitmap draws a Braille pattern as 2x2 pixel dots centered in
// 4x4 sub-cells.
func brailleBitmap(r rune) GlyphBitmap {
	var g GlyphBitmap
	pattern := uint8(r - 0x2800)
	cw, ch := GlyphWidth/2, GlyphHeight/4
	for bit, dot := range brailleDots {
		if pattern&(1<<bit) == 0 {
			continue
		}
		x0 := dot.col*cw + cw/4
		y0 := dot.row*ch + ch/4
		for y := y0; y < y0+ch/2; y++ {
			for x := x0; x < x0+cw/2; x++ {
				g.setBit(x, y, true)
			}
		}
	}
	return g
}

// quadrantBitmap fills the bitmap quadrants that are set.
func quadrantBitmap(q Quadrants) GlyphBitmap {
	var g GlyphBitmap
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			top, left := y < GlyphHeight/2, x < GlyphWidth/2
			var on bool
			switch {
			case top && left:
				on = q.TopLeft
			case top:
				on = q.TopRight
			case left:
				on = q.BottomLeft
			default:
				on = q.BottomRight
			}
			g.setBit(x, y, on)
		}
	}
	return g
}

// FontBitmaps rasterises glyphs for PNG output and caches the results.
// Block elements, Braille patterns and shades are drawn geometrically;
// every other glyph is rendered from a font face.
type FontBitmaps struct {
	face   font.Face
	glyphs map[rune]GlyphBitmap
	name   string
}

// NewFontBitmaps returns glyph bitmaps rendered from face.
func NewFontBitmaps(face font.Face, name string) *FontBitmaps {
	return &FontBitmaps{
		face:   face,
		glyphs: make(map[rune]GlyphBitmap),
		name:   name,
	}
}

// DefaultFontBitmaps returns glyph bitmaps rendered from the built-in 7x13
// bitmap font, which covers printable ASCII only.
func DefaultFontBitmaps() *FontBitmaps {
	return NewFontBitmaps(basicfont.Face7x13, "basicfont 7x13")
}

// LoadFontBitmaps loads a TrueType font from path. An empty path selects
// the built-in font.
func LoadFontBitmaps(path string) (*FontBitmaps, error) {
	if path == "" {
		return DefaultFontBitmaps(), nil
	}
	ttf, err := loadFont(path)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    float64(GlyphHeight) * 0.75,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return NewFontBitmaps(face, path), nil
}

// loadFont loads a TrueType font from file
func loadFont(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}

	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return ttf, nil
}

// Name returns the font name the bitmaps were rendered from.
func (fb *FontBitmaps) Name() string { return fb.name }

// Glyph returns the bitmap for a rune, rendering it on first use.
func (fb *FontBitmaps) Glyph(r rune) GlyphBitmap {
	if g, ok := fb.glyphs[r]; ok {
		return g
	}
	var g GlyphBitmap
	if q, ok := blockQuadrants[r]; ok {
		g = quadrantBitmap(q)
	} else if r >= 0x2800 && r <= 0x28FF {
		g = brailleBitmap(r)
	} else if shade, ok := shadePatterns[r]; ok {
		for y := 0; y < GlyphHeight; y++ {
			for x := 0; x < GlyphWidth; x++ {
				g.setBit(x, y, shade(x, y))
			}
		}
	} else {
		g = renderGlyphToBitmap(fb.face, r)
	}
	fb.glyphs[r] = g
	return g
}

// renderGlyphToBitmap renders a single glyph into a cell-sized alpha image
// and thresholds the coverage into a bitmap. The baseline is placed from
// the face metrics so that descenders are not clipped.
func renderGlyphToBitmap(face font.Face, r rune) GlyphBitmap {
	var bitmap GlyphBitmap
	if _, ok := face.GlyphAdvance(r); !ok {
		return bitmap
	}

	img := image.NewAlpha(image.Rect(0, 0, GlyphWidth, GlyphHeight))
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	baselineY := (GlyphHeight + ascent - descent) / 2

	d := font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, baselineY),
	}
	d.DrawString(string(r))

	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			if img.AlphaAt(x, y).A > alphaThreshold {
				bitmap.setBit(x, y, true)
			}
		}
	}
	return bitmap
}
