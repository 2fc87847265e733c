package pixt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ColorMode decides how the colors of a cell's two pixels map onto the
// foreground and background of the emitted glyph.
type ColorMode int

const (
	// ColorNone emits bare glyphs.
	ColorNone ColorMode = iota
	// ColorAvgForeground colors the glyph with the average of both pixels.
	ColorAvgForeground
	// ColorAvgBackground colors the cell background with the average of
	// both pixels.
	ColorAvgBackground
	// ColorTopForeground uses the top pixel as foreground and the bottom
	// pixel as background.
	ColorTopForeground
	// ColorTopBackground uses the top pixel as background and the bottom
	// pixel as foreground.
	ColorTopBackground
)

func (m ColorMode) String() string {
	switch m {
	case ColorNone:
		return "none"
	case ColorAvgForeground:
		return "avg-fg"
	case ColorAvgBackground:
		return "avg-bg"
	case ColorTopForeground:
		return "fg-top-bg-bottom"
	case ColorTopBackground:
		return "bg-top-fg-bottom"
	}
	return fmt.Sprintf("ColorMode(%d)", int(m))
}

// colorFunc extracts the foreground and background of a cell.
type colorFunc func(c Cell) (fg, bg RGB)

// resolve returns the color extraction for the mode. hasFG and hasBG
// report whether the mode sets each channel at all.
func (m ColorMode) resolve() (f colorFunc, hasFG, hasBG bool) {
	switch m {
	case ColorAvgForeground:
		return func(c Cell) (RGB, RGB) {
			return Average(c.Top, c.Bottom), RGB{}
		}, true, false
	case ColorAvgBackground:
		return func(c Cell) (RGB, RGB) {
			return RGB{}, Average(c.Top, c.Bottom)
		}, false, true
	case ColorTopForeground:
		return func(c Cell) (RGB, RGB) {
			return c.Top, c.Bottom
		}, true, true
	case ColorTopBackground:
		return func(c Cell) (RGB, RGB) {
			return c.Bottom, c.Top
		}, true, true
	}
	return func(Cell) (RGB, RGB) { return RGB{}, RGB{} }, false, false
}

func (m ColorMode) valid() bool {
	return m >= ColorNone && m <= ColorTopBackground
}

// Format is the kind of document a Sink produces.
type Format int

const (
	FormatTerminal Format = iota
	FormatText
	FormatHTML
	FormatSVG
	FormatPNG
)

func (f Format) String() string {
	switch f {
	case FormatTerminal:
		return "terminal"
	case FormatText:
		return "text"
	case FormatHTML:
		return "html"
	case FormatSVG:
		return "svg"
	case FormatPNG:
		return "png"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromPath picks the output format from a destination file name.
// HTML, SVG and PNG are recognised by extension; everything else,
// including an empty path, is terminal output.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	case ".svg":
		return FormatSVG
	case ".png":
		return FormatPNG
	}
	return FormatTerminal
}

// Sink writes one rendered document. Header is called once before the
// first cell with the pixel size of the image, LineEnd after every row of
// cells and Footer once at the end.
type Sink interface {
	Header(width, height int) error
	Cell(c Cell) error
	LineEnd() error
	Footer() error
}

type sinkConfig struct {
	htmlForeground string
	htmlBackground string
	compact        bool
	fontPath       string
	fonts          *FontBitmaps
	scale          int
}

func defaultSinkConfig() sinkConfig {
	return sinkConfig{
		htmlForeground: "#fff",
		htmlBackground: "#191919",
		scale:          1,
	}
}

// SinkOption configures a Sink.
type SinkOption func(*sinkConfig)

// WithHTMLColors sets the page text and background colors of HTML output.
// Empty values keep the defaults.
func WithHTMLColors(foreground, background string) SinkOption {
	return func(c *sinkConfig) {
		if foreground != "" {
			c.htmlForeground = foreground
		}
		if background != "" {
			c.htmlBackground = background
		}
	}
}

// WithCompactEscapes makes terminal output skip color escapes that repeat
// the colors already in effect on the current line.
func WithCompactEscapes() SinkOption {
	return func(c *sinkConfig) {
		c.compact = true
	}
}

// WithFont sets the TrueType font PNG output draws glyphs with.
func WithFont(path string) SinkOption {
	return func(c *sinkConfig) {
		c.fontPath = path
	}
}

// WithFontBitmaps makes PNG output draw with already loaded glyph
// bitmaps instead of loading the font given by WithFont. The bitmaps
// cache glyphs as they are drawn, so share them only between sinks used
// from one goroutine.
func WithFontBitmaps(fb *FontBitmaps) SinkOption {
	return func(c *sinkConfig) {
		c.fonts = fb
	}
}

// WithScale sets the pixel scale of PNG output. Each cell is
// GlyphWidth*scale by GlyphHeight*scale pixels.
func WithScale(scale int) SinkOption {
	return func(c *sinkConfig) {
		if scale > 0 {
			c.scale = scale
		}
	}
}

// NewSink returns the sink for a format and color mode writing to w. The
// combination is resolved here, once, so that per-cell calls do not
// branch on it. SVG output is not implemented and returns
// ErrUnsupportedFormat.
func NewSink(w io.Writer, f Format, m ColorMode, opts ...SinkOption) (Sink, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%s with color mode %s: %w", f, m, ErrUnsupportedFormat)
	}
	cfg := defaultSinkConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	switch f {
	case FormatText:
		return newTextSink(w), nil
	case FormatTerminal:
		return newTerminalSink(w, m, cfg.compact), nil
	case FormatHTML:
		return newHTMLSink(w, m, cfg), nil
	case FormatPNG:
		return newPNGSink(w, m, cfg)
	}
	return nil, fmt.Errorf("%s with color mode %s: %w", f, m, ErrUnsupportedFormat)
}
