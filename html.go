package pixt

import (
	"fmt"
	"io"
	"unicode/utf8"
)

const htmlHeader = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
    * {
        color: %s;
        background-color: %s;
        font-family: monospace;
    }
    pre {
        line-height: %s;
        margin: 0;
        padding: 0;
        font-size: 10px;
    }
    </style>
  </head>
  <body>
    <pre>`

const htmlFooter = "    </pre>\n  </body>\n</html>\n"

// htmlSink writes a standalone HTML page with the art inside a <pre>
// block. Colored modes wrap every glyph in a styled <span> and break
// lines with <br />, with a tighter line height so that the half-height
// cells stack without gaps.
type htmlSink struct {
	w          io.Writer
	buf        []byte
	lineHeight string
	lineEnd    string
	foreground string
	background string
	cell       func(dst []byte, c Cell) []byte
}

func newHTMLSink(w io.Writer, m ColorMode, cfg sinkConfig) *htmlSink {
	s := &htmlSink{
		w:          w,
		buf:        make([]byte, 0, 96),
		lineHeight: "0.6",
		lineEnd:    "<br />\n",
		foreground: cfg.htmlForeground,
		background: cfg.htmlBackground,
	}
	colors, _, _ := m.resolve()
	switch m {
	case ColorNone:
		s.lineHeight = "1.2"
		s.lineEnd = "\n"
		s.cell = appendHTMLGlyph
	case ColorAvgForeground:
		s.cell = func(dst []byte, c Cell) []byte {
			fg, _ := colors(c)
			dst = append(dst, `<span style="color:`...)
			dst = fg.appendHex(dst)
			return closeSpan(dst, c.Glyph)
		}
	case ColorAvgBackground:
		s.cell = func(dst []byte, c Cell) []byte {
			_, bg := colors(c)
			dst = append(dst, `<span style="background-color:`...)
			dst = bg.appendHex(dst)
			return closeSpan(dst, c.Glyph)
		}
	default:
		s.cell = func(dst []byte, c Cell) []byte {
			fg, bg := colors(c)
			dst = append(dst, `<span style="color:`...)
			dst = fg.appendHex(dst)
			dst = append(dst, `;background-color:`...)
			dst = bg.appendHex(dst)
			return closeSpan(dst, c.Glyph)
		}
	}
	return s
}

func (s *htmlSink) Header(int, int) error {
	_, err := fmt.Fprintf(s.w, htmlHeader, s.foreground, s.background, s.lineHeight)
	return err
}

func (s *htmlSink) Cell(c Cell) error {
	s.buf = s.cell(s.buf[:0], c)
	_, err := s.w.Write(s.buf)
	return err
}

func (s *htmlSink) LineEnd() error {
	_, err := io.WriteString(s.w, s.lineEnd)
	return err
}

func (s *htmlSink) Footer() error {
	_, err := io.WriteString(s.w, htmlFooter)
	return err
}

// closeSpan ends the style attribute, writes the glyph and closes the
// span.
func closeSpan(dst []byte, r rune) []byte {
	dst = append(dst, `;">`...)
	dst = appendHTMLGlyph(dst, Cell{Glyph: r})
	return append(dst, "</span>"...)
}

// appendHTMLGlyph appends the glyph escaped the way html.EscapeString
// escapes text.
func appendHTMLGlyph(dst []byte, c Cell) []byte {
	switch c.Glyph {
	case '<':
		return append(dst, "&lt;"...)
	case '>':
		return append(dst, "&gt;"...)
	case '&':
		return append(dst, "&amp;"...)
	case '"':
		return append(dst, "&#34;"...)
	case '\'':
		return append(dst, "&#39;"...)
	}
	return utf8.AppendRune(dst, c.Glyph)
}
