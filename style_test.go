package pixt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	for _, name := range StyleNames() {
		s, err := ParseStyle(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, s.String())
	}

	s, err := ParseStyle(" Braille ")
	require.NoError(t, err)
	assert.Equal(t, StyleBraille, s)

	_, err = ParseStyle("sparkle")
	assert.ErrorContains(t, err, "unknown style")
}

func TestStylePalettes(t *testing.T) {
	tests := []struct {
		style   Style
		colored bool
		rows    int
		cols    int
		mode    ColorMode
	}{
		{StyleAscii, false, 1, 9, ColorNone},
		{StyleAscii, true, 1, 9, ColorAvgForeground},
		{StyleBlock, false, 1, 4, ColorNone},
		{StylePixel, false, 1, 5, ColorNone},
		{StylePixel, true, 1, 1, ColorTopForeground},
		{StyleBraille, false, 5, 5, ColorNone},
		{StyleBraille, true, 5, 5, ColorAvgForeground},
		{StyleDots, true, 1, 7, ColorAvgForeground},
	}

	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			p, err := tt.style.Palette(tt.colored)
			require.NoError(t, err)
			assert.Equal(t, tt.rows, p.Rows())
			assert.Equal(t, tt.cols, p.Cols())
			assert.Equal(t, tt.mode, tt.style.ColorMode(tt.colored))
		})
	}
}

func TestStylePresetTables(t *testing.T) {
	p, _ := StyleAscii.Palette(false)
	assert.Equal(t, " .-~+*%#@", p.String())

	p, _ = StyleBlock.Palette(false)
	assert.Equal(t, " ░▒▓", p.String())

	p, _ = StylePixel.Palette(false)
	assert.Equal(t, " ▀▞▟█", p.String())

	p, _ = StylePixel.Palette(true)
	assert.Equal(t, "▀", p.String())

	p, _ = StyleDots.Palette(false)
	assert.Equal(t, " ⠂⠒⠕⠞⠟⠿", p.String())

	p, _ = StyleBraille.Palette(false)
	assert.Equal(t, " ⠁⠉⠓⠛\n⠄⠅⠩⠝⠟\n⠤⠥⠭⠯⠽\n⠴⠵⠽⠾⠿\n⠶⠾⠾⠿⠿", p.String())
}

func TestCustomStyleHasNoPalette(t *testing.T) {
	_, err := StyleCustom.Palette(false)
	assert.Error(t, err)
	assert.Equal(t, ColorAvgForeground, StyleCustom.ColorMode(true))
}
