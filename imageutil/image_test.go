package imageutil

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitDimensions(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		req        Size
		termWidth  int
		wantW      int
		wantH      int
	}{
		{"both given", 100, 50, Size{80, 40}, 120, 80, 40},
		{"both given ignore terminal", 100, 50, Size{300, 7}, 80, 300, 7},
		{"width only", 100, 50, Size{Width: 40}, 80, 40, 20},
		{"width only wider than terminal", 100, 50, Size{Width: 200}, 80, 200, 100},
		{"height only", 100, 50, Size{Height: 30}, 80, 60, 30},
		{"height only capped by terminal", 100, 50, Size{Height: 30}, 50, 50, 30},
		{"neither", 100, 50, Size{}, 80, 80, 40},
		{"neither tall source", 10, 100, Size{}, 80, 80, 800},
		{"height rounds to zero", 1000, 1, Size{Width: 10}, 80, 10, 1},
		{"width rounds to zero", 1, 1000, Size{Height: 10}, 80, 1, 10},
		{"no terminal width", 100, 50, Size{}, 0, 1, 1},
		{"empty source", 0, 0, Size{}, 80, 80, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitDimensions(tt.srcW, tt.srcH, tt.req, tt.termWidth)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FitDimensions(%d, %d, %+v, %d) = %dx%d, want %dx%d",
					tt.srcW, tt.srcH, tt.req, tt.termWidth, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResize(t *testing.T) {
	img := CreateGradientImage(100, 100)

	// Downscale
	resized := Resize(img, 50, 50, InterpolationCatmullRom)
	if w, h := Dimensions(resized); w != 50 || h != 50 {
		t.Errorf("Expected 50x50, got %dx%d", w, h)
	}

	// Upscale
	resized = Resize(img, 200, 200, InterpolationLinear)
	if w, h := Dimensions(resized); w != 200 || h != 200 {
		t.Errorf("Expected 200x200, got %dx%d", w, h)
	}
}

func TestResizeSameSizeCopies(t *testing.T) {
	img := CreateGradientImage(8, 8)
	resized := Resize(img, 8, 8, InterpolationLanczos)
	assert.Equal(t, img.Pix, resized.Pix)
}

func TestResizeNearestKeepsHardEdges(t *testing.T) {
	img := CreateCheckerboardImage(4, 4, 1)
	resized := Resize(img, 8, 8, InterpolationNearest)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			v := resized.NRGBAAt(x, y).R
			if v != 0 && v != 255 {
				t.Fatalf("pixel (%d,%d) = %d, want pure black or white", x, y, v)
			}
		}
	}
}

func TestFit(t *testing.T) {
	img := CreateColorBarsImage(64, 32)
	fitted := Fit(img, Size{}, 16, InterpolationBox)
	w, h := Dimensions(fitted)
	assert.Equal(t, 16, w)
	assert.Equal(t, 8, h)
}

func TestParseInterpolation(t *testing.T) {
	for _, name := range []string{"catmullrom", "linear", "nearest", "lanczos", "box"} {
		interp, err := ParseInterpolation(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, interp.String())
	}

	interp, err := ParseInterpolation("  Nearest ")
	require.NoError(t, err)
	assert.Equal(t, InterpolationNearest, interp)

	_, err = ParseInterpolation("bicubic")
	assert.ErrorContains(t, err, "unknown filter")
}

func TestToNRGBA(t *testing.T) {
	img := CreateSolidImage(4, 4, color.White)
	assert.Same(t, img, ToNRGBA(img))

	sub := img.SubImage(image.Rect(1, 1, 3, 4))
	rebased := ToNRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 3), rebased.Bounds())
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, rebased.NRGBAAt(0, 0))

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	rgba.Set(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, ToNRGBA(rgba).NRGBAAt(1, 1))
}

func TestFlatten(t *testing.T) {
	opaque := CreateSolidImage(2, 2, color.White)
	assert.Same(t, opaque, Flatten(opaque, color.Black))

	img := CreateSolidImage(2, 2, color.White)
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 0})

	flat := Flatten(img, color.Black)
	assert.True(t, flat.Opaque())
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, flat.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, flat.NRGBAAt(1, 1))
}

func TestLoadSaveImage(t *testing.T) {
	// Create temp directory
	tmpDir := t.TempDir()

	// Create test image
	img := CreateColorBarsImage(64, 64)

	// Save to PNG
	pngPath := filepath.Join(tmpDir, "test.png")
	require.NoError(t, SaveImage(img, pngPath))

	// Load back
	loaded, err := LoadImage(pngPath)
	require.NoError(t, err)

	// PNG should be lossless
	assert.Equal(t, img.Bounds(), loaded.Bounds())
	assert.Equal(t, img.Pix, loaded.Pix)
}

func TestLoadImageErrors(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorContains(t, err, "failed to load image")

	_, err = Decode(strings.NewReader("definitely not an image"))
	assert.ErrorContains(t, err, "failed to decode image")
}

func TestStripedImage(t *testing.T) {
	img := CreateStripedImage(3, 4, color.White, color.Black)
	assert.Equal(t, uint8(255), img.NRGBAAt(2, 0).R)
	assert.Equal(t, uint8(0), img.NRGBAAt(2, 1).R)
	assert.Equal(t, uint8(255), img.NRGBAAt(0, 2).R)
}
