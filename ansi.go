package pixt

import (
	"io"
	"strconv"
	"unicode/utf8"
)

const (
	ESC = "\u001b"

	// resetLine clears colors at the end of every colored terminal line.
	resetLine = ESC + "[0m\n"
)

// textSink writes bare glyphs and newlines. It serves plain text output
// and uncolored terminal output.
type textSink struct {
	w   io.Writer
	buf []byte
}

func newTextSink(w io.Writer) *textSink {
	return &textSink{w: w, buf: make([]byte, 0, utf8.UTFMax)}
}

func (s *textSink) Header(int, int) error { return nil }

func (s *textSink) Cell(c Cell) error {
	s.buf = utf8.AppendRune(s.buf[:0], c.Glyph)
	_, err := s.w.Write(s.buf)
	return err
}

func (s *textSink) LineEnd() error {
	_, err := io.WriteString(s.w, "\n")
	return err
}

func (s *textSink) Footer() error { return nil }

// terminalSink writes glyphs preceded by 24-bit SGR color escapes. Every
// line ends by resetting colors.
type terminalSink struct {
	w      io.Writer
	buf    []byte
	colors colorFunc
	hasFG  bool
	hasBG  bool

	// compact output skips escapes that repeat the colors in effect.
	compact      bool
	lastFG       RGB
	lastBG       RGB
	fgSet, bgSet bool
}

func newTerminalSink(w io.Writer, m ColorMode, compact bool) Sink {
	if m == ColorNone {
		return newTextSink(w)
	}
	colors, hasFG, hasBG := m.resolve()
	return &terminalSink{
		w:       w,
		buf:     make([]byte, 0, 48),
		colors:  colors,
		hasFG:   hasFG,
		hasBG:   hasBG,
		compact: compact,
	}
}

func (s *terminalSink) Header(int, int) error { return nil }

func (s *terminalSink) Cell(c Cell) error {
	fg, bg := s.colors(c)
	buf := s.buf[:0]
	if s.hasBG && !(s.compact && s.bgSet && s.lastBG == bg) {
		buf = appendSGR(buf, "48", bg)
		s.lastBG, s.bgSet = bg, true
	}
	if s.hasFG && !(s.compact && s.fgSet && s.lastFG == fg) {
		buf = appendSGR(buf, "38", fg)
		s.lastFG, s.fgSet = fg, true
	}
	buf = utf8.AppendRune(buf, c.Glyph)
	s.buf = buf
	_, err := s.w.Write(buf)
	return err
}

func (s *terminalSink) LineEnd() error {
	s.fgSet, s.bgSet = false, false
	_, err := io.WriteString(s.w, resetLine)
	return err
}

func (s *terminalSink) Footer() error { return nil }

// appendSGR appends a 24-bit color escape. layer is "38" for foreground
// and "48" for background.
func appendSGR(dst []byte, layer string, c RGB) []byte {
	dst = append(dst, ESC+"["...)
	dst = append(dst, layer...)
	dst = append(dst, ";2;"...)
	dst = strconv.AppendUint(dst, uint64(c.R), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(c.G), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(c.B), 10)
	return append(dst, 'm')
}
