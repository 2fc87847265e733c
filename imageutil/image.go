// Package imageutil loads and prepares images for character-art
// rendering: decoding, orientation, transparency and resizing.
package imageutil

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ToNRGBA returns img as an *image.NRGBA with bounds starting at (0, 0).
// Images that already satisfy this are returned unchanged.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

// Flatten composites img over a solid background so that transparent
// pixels take the background color rather than whatever channel values
// they happen to carry. Opaque images come back unchanged.
func Flatten(img image.Image, bg color.Color) *image.NRGBA {
	src := ToNRGBA(img)
	if src.Opaque() {
		return src
	}
	b := src.Bounds()
	dst := imaging.New(b.Dx(), b.Dy(), bg)
	return imaging.Overlay(dst, src, image.Point{}, 1.0)
}

// Dimensions returns the width and height of img.
func Dimensions(img image.Image) (width, height int) {
	b := img.Bounds()
	return b.Dx(), b.Dy()
}
