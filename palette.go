package pixt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Palette holds the glyphs a render picks from. A palette with a single
// row is a ramp: the averaged intensity of both pixels selects a column.
// A palette with several rows is a grid: the top pixel selects the column
// and the bottom pixel selects the row.
//
// A Palette is immutable once constructed.
type Palette struct {
	rows [][]rune
}

// NewRamp returns a one-row palette ordered from darkest to brightest.
func NewRamp(glyphs []rune) (*Palette, error) {
	return NewGrid([][]rune{glyphs})
}

// NewGrid returns a palette with the given rows. Rows may differ in
// length; the column count is taken from the first row. The input is
// copied.
func NewGrid(rows [][]rune) (*Palette, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyPalette
	}
	p := &Palette{rows: make([][]rune, len(rows))}
	for i, row := range rows {
		if len(row) == 0 {
			return nil, fmt.Errorf("row %d: %w", i, ErrEmptyPalette)
		}
		p.rows[i] = append([]rune(nil), row...)
	}
	return p, nil
}

// ParseRamp interprets a custom character string as a ramp.
func ParseRamp(s string) (*Palette, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%q: %w", s, ErrInvalidGlyphs)
	}
	return NewRamp([]rune(s))
}

// ParseLines builds a palette with one row per line of text. Leading and
// trailing whitespace is trimmed from every line and blank lines are
// skipped.
func ParseLines(text string) (*Palette, error) {
	return ReadPalette(strings.NewReader(text))
}

// ReadPalette reads a line-per-row palette from r. See ParseLines.
func ReadPalette(r io.Reader) (*Palette, error) {
	var rows [][]rune
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Bytes()
		if !utf8.Valid(line) {
			return nil, fmt.Errorf("line %d: %w", n, ErrInvalidGlyphs)
		}
		trimmed := strings.TrimSpace(string(line))
		if trimmed == "" {
			continue
		}
		rows = append(rows, []rune(trimmed))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read palette: %w", err)
	}
	return NewGrid(rows)
}

// LoadPaletteFile reads a line-per-row palette from the named file.
func LoadPaletteFile(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open palette: %w", err)
	}
	defer f.Close()

	p, err := ReadPalette(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Rows returns the number of palette rows.
func (p *Palette) Rows() int { return len(p.rows) }

// Cols returns the number of glyphs in the first row.
func (p *Palette) Cols() int { return len(p.rows[0]) }

// Is2D reports whether the palette is a grid rather than a ramp.
func (p *Palette) Is2D() bool { return len(p.rows) > 1 }

// Row returns a copy of row i.
func (p *Palette) Row(i int) []rune {
	return append([]rune(nil), p.rows[i]...)
}

// MaxWidth returns the widest terminal cell width of any glyph. Glyphs
// wider than one cell break the column alignment of the output.
func (p *Palette) MaxWidth() int {
	widest := 0
	for _, row := range p.rows {
		for _, r := range row {
			widest = max(widest, runewidth.RuneWidth(r))
		}
	}
	return widest
}

// String returns the palette rows joined by newlines.
func (p *Palette) String() string {
	var sb strings.Builder
	for i, row := range p.rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}

// Glyph returns the glyph for a top and bottom pixel.
func (p *Palette) Glyph(top, bottom RGB) rune {
	if len(p.rows) == 1 {
		return p.rampGlyph(top, bottom)
	}
	return p.gridGlyph(top, bottom)
}

// rampGlyph averages the intensities of both pixels and maps the result
// onto the single row.
func (p *Palette) rampGlyph(top, bottom RGB) rune {
	row := p.rows[0]
	avg := (Intensity(top) + Intensity(bottom)) / 2
	return row[bucket(int(avg), len(row))]
}

// gridGlyph maps the top intensity onto a column and the bottom intensity
// onto a row. Intensities are narrowed to 8 bits before scaling.
func (p *Palette) gridGlyph(top, bottom RGB) rune {
	t := uint8(Intensity(top))
	b := uint8(Intensity(bottom))
	row := p.rows[bucket(int(b), len(p.rows))]
	col := min(bucket(int(t), len(p.rows[0])), len(row)-1)
	return row[col]
}

// bucket maps an intensity in [0, 255] onto one of n equal-width buckets.
func bucket(intensity, n int) int {
	return min(intensity*n/256, n-1)
}
