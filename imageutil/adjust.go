package imageutil

import (
	"image"

	"github.com/disintegration/gift"
)

// Adjustments are tonal corrections applied before rendering. The zero
// value changes nothing.
type Adjustments struct {
	Invert     bool    // swap light and dark, for light terminal backgrounds
	Grayscale  bool    // drop color
	Brightness float32 // percentage in [-100, 100]
	Contrast   float32 // percentage in [-100, 100]
	Gamma      float32 // 1 or 0 leaves the image unchanged
}

// IsZero reports whether the adjustments leave an image unchanged.
func (a Adjustments) IsZero() bool {
	return !a.Invert && !a.Grayscale && a.Brightness == 0 && a.Contrast == 0 &&
		(a.Gamma == 0 || a.Gamma == 1)
}

func (a Adjustments) filters() *gift.GIFT {
	g := gift.New()
	if a.Grayscale {
		g.Add(gift.Grayscale())
	}
	if a.Brightness != 0 {
		g.Add(gift.Brightness(a.Brightness))
	}
	if a.Contrast != 0 {
		g.Add(gift.Contrast(a.Contrast))
	}
	if a.Gamma != 0 && a.Gamma != 1 {
		g.Add(gift.Gamma(a.Gamma))
	}
	if a.Invert {
		g.Add(gift.Invert())
	}
	return g
}

// Adjust applies a to img. Images are returned unchanged when a is zero.
func Adjust(img *image.NRGBA, a Adjustments) *image.NRGBA {
	if a.IsZero() {
		return img
	}
	g := a.filters()
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}
