package pixt

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
)

var errNoCanvas = errors.New("png sink: header not written")

var (
	defaultForeground = RGB{255, 255, 255}
	defaultBackground = RGB{0, 0, 0}
)

// pngSink rasterises the cells onto a canvas and encodes it as a PNG when
// the footer is written. Modes without a foreground draw glyphs white and
// modes without a background fill cells black.
type pngSink struct {
	w      io.Writer
	fonts  *FontBitmaps
	colors colorFunc
	hasFG  bool
	hasBG  bool
	scale  int

	canvas   *image.RGBA
	col, row int
}

func newPNGSink(w io.Writer, m ColorMode, cfg sinkConfig) (*pngSink, error) {
	fonts := cfg.fonts
	if fonts == nil {
		var err error
		if fonts, err = LoadFontBitmaps(cfg.fontPath); err != nil {
			return nil, err
		}
	}
	colors, hasFG, hasBG := m.resolve()
	return &pngSink{
		w:      w,
		fonts:  fonts,
		colors: colors,
		hasFG:  hasFG,
		hasBG:  hasBG,
		scale:  cfg.scale,
	}, nil
}

// Header sizes the canvas for a width x height pixel image: one cell
// column per pixel column and one cell row per pixel row pair.
func (s *pngSink) Header(width, height int) error {
	cols, rows := max(width, 1), max(height/2, 1)
	s.canvas = image.NewRGBA(image.Rect(0, 0,
		cols*GlyphWidth*s.scale, rows*GlyphHeight*s.scale))
	draw.Draw(s.canvas, s.canvas.Bounds(),
		image.NewUniform(defaultBackground.Color()), image.Point{}, draw.Src)
	s.col, s.row = 0, 0
	return nil
}

func (s *pngSink) Cell(c Cell) error {
	if s.canvas == nil {
		return errNoCanvas
	}
	fg, bg := s.colors(c)
	if !s.hasFG {
		fg = defaultForeground
	}
	if !s.hasBG {
		bg = defaultBackground
	}
	s.drawGlyph(s.fonts.Glyph(c.Glyph), fg.Color(), bg.Color())
	s.col++
	return nil
}

func (s *pngSink) LineEnd() error {
	if s.canvas == nil {
		return errNoCanvas
	}
	s.col = 0
	s.row++
	return nil
}

func (s *pngSink) Footer() error {
	if s.canvas == nil {
		return errNoCanvas
	}
	return png.Encode(s.w, s.canvas)
}

// drawGlyph renders a GlyphBitmap at the current cell with scaling.
func (s *pngSink) drawGlyph(bitmap GlyphBitmap, fg, bg color.RGBA) {
	startX := s.col * GlyphWidth * s.scale
	startY := s.row * GlyphHeight * s.scale
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			c := bg
			if bitmap.getBit(x, y) {
				c = fg
			}
			for sy := 0; sy < s.scale; sy++ {
				for sx := 0; sx < s.scale; sx++ {
					s.canvas.SetRGBA(startX+x*s.scale+sx, startY+y*s.scale+sy, c)
				}
			}
		}
	}
}
