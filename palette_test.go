package pixt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gray(v uint8) RGB { return RGB{v, v, v} }

var fixtureGrid = [][]rune{
	{' ', '⠁', '⠉', '⠓', '⠛'},
	{'⠄', '⠅', '⠩', '⠝', '⠟'},
	{'⠤', '⠥', '⠭', '⠯', '⠿'},
	{'⠴', '⠵', '⠽', '⠿', '⠿'},
	{'⠶', '⠾', '⠿', '⠿', '⠿'},
}

func TestGridGlyph(t *testing.T) {
	p, err := NewGrid(fixtureGrid)
	require.NoError(t, err)

	tests := []struct {
		top, bottom uint8
		want        rune
	}{
		{0, 0, ' '},
		{255, 0, '⠛'},
		{254, 0, '⠛'},
		{127, 0, '⠉'},
		{0, 255, '⠶'},
		{0, 254, '⠶'},
		{0, 127, '⠤'},
		{255, 255, '⠿'},
		{254, 254, '⠿'},
		{127, 127, '⠭'},
	}

	for _, tt := range tests {
		got := p.Glyph(gray(tt.top), gray(tt.bottom))
		if got != tt.want {
			t.Errorf("Glyph(%d, %d) = %q, want %q", tt.top, tt.bottom, got, tt.want)
		}
	}
}

func TestGridGlyphAxes(t *testing.T) {
	p, err := NewGrid([][]rune{
		[]rune("ab"),
		[]rune("cd"),
	})
	require.NoError(t, err)

	// The top pixel picks the column, the bottom pixel picks the row.
	assert.Equal(t, 'b', p.Glyph(gray(255), gray(0)))
	assert.Equal(t, 'c', p.Glyph(gray(0), gray(255)))
}

func TestGridGlyphRaggedRows(t *testing.T) {
	p, err := NewGrid([][]rune{
		[]rune("abc"),
		[]rune("d"),
	})
	require.NoError(t, err)

	assert.Equal(t, 'c', p.Glyph(gray(255), gray(0)))
	assert.Equal(t, 'd', p.Glyph(gray(255), gray(255)))
}

func TestRampGlyph(t *testing.T) {
	p, err := NewRamp(asciiRamp)
	require.NoError(t, err)

	tests := []struct {
		name        string
		top, bottom RGB
		want        rune
	}{
		{"black", gray(0), gray(0), ' '},
		{"white", gray(255), gray(255), '@'},
		{"near white", gray(254), gray(254), '@'},
		{"half", gray(255), gray(0), '+'},
		{"one bucket", gray(29), gray(29), '.'},
		{"just below first bucket edge", gray(28), gray(28), ' '},
		{"channels averaged", RGB{255, 0, 0}, RGB{255, 0, 0}, '-'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Glyph(tt.top, tt.bottom); got != tt.want {
				t.Errorf("Glyph(%v, %v) = %q, want %q", tt.top, tt.bottom, got, tt.want)
			}
		})
	}
}

func TestRampGlyphMonotonic(t *testing.T) {
	p, err := NewRamp(dotsRamp)
	require.NoError(t, err)

	index := func(r rune) int {
		for i, g := range dotsRamp {
			if g == r {
				return i
			}
		}
		t.Fatalf("glyph %q not in ramp", r)
		return -1
	}

	prev := 0
	for v := 0; v < 256; v++ {
		i := index(p.Glyph(gray(uint8(v)), gray(uint8(v))))
		if i < prev {
			t.Fatalf("intensity %d maps to index %d, below %d", v, i, prev)
		}
		prev = i
	}
	assert.Equal(t, len(dotsRamp)-1, prev)
}

func TestPaletteConstructionErrors(t *testing.T) {
	_, err := NewGrid(nil)
	assert.ErrorIs(t, err, ErrEmptyPalette)

	_, err = NewRamp(nil)
	assert.ErrorIs(t, err, ErrEmptyPalette)

	_, err = NewGrid([][]rune{[]rune("ab"), {}})
	assert.ErrorIs(t, err, ErrEmptyPalette)
	assert.ErrorContains(t, err, "row 1")

	_, err = ParseRamp("")
	assert.ErrorIs(t, err, ErrEmptyPalette)

	_, err = ParseRamp("ab\xff")
	assert.ErrorIs(t, err, ErrInvalidGlyphs)

	_, err = ParseLines("\n   \n\t\n")
	assert.ErrorIs(t, err, ErrEmptyPalette)

	_, err = ReadPalette(strings.NewReader("ok\n\xfe\xff\n"))
	assert.ErrorIs(t, err, ErrInvalidGlyphs)
	assert.ErrorContains(t, err, "line 2")
}

func TestParseLines(t *testing.T) {
	p, err := ParseLines("  .:\n\n\t-=+  \n#\n")
	require.NoError(t, err)

	assert.Equal(t, 3, p.Rows())
	assert.Equal(t, 2, p.Cols())
	assert.True(t, p.Is2D())
	assert.Equal(t, []rune("-=+"), p.Row(1))
	assert.Equal(t, ".:\n-=+\n#", p.String())
}

func TestParseRamp(t *testing.T) {
	p, err := ParseRamp(" ░▒▓█")
	require.NoError(t, err)

	assert.Equal(t, 1, p.Rows())
	assert.Equal(t, 5, p.Cols())
	assert.False(t, p.Is2D())
	assert.Equal(t, '█', p.Glyph(gray(255), gray(255)))
}

func TestPaletteIsImmutable(t *testing.T) {
	rows := [][]rune{[]rune("ab")}
	p, err := NewGrid(rows)
	require.NoError(t, err)

	rows[0][0] = 'z'
	row := p.Row(0)
	row[1] = 'y'

	assert.Equal(t, "ab", p.String())
}

func TestPaletteMaxWidth(t *testing.T) {
	ascii, err := NewRamp(asciiRamp)
	require.NoError(t, err)
	assert.Equal(t, 1, ascii.MaxWidth())

	wide, err := ParseRamp(" 中文")
	require.NoError(t, err)
	assert.Equal(t, 2, wide.MaxWidth())
}

func TestLoadPaletteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.txt")
	require.NoError(t, os.WriteFile(path, []byte(" ab \ncd\n"), 0o644))

	p, err := LoadPaletteFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ab\ncd", p.String())

	_, err = LoadPaletteFile(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
