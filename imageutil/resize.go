package imageutil

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationCatmullRom uses the Catmull-Rom cubic filter, sharp
	// for both up and down scaling.
	InterpolationCatmullRom Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality; keeps pixel art crisp.
	InterpolationNearest

	// InterpolationLanczos uses a Lanczos filter with radius 3.
	InterpolationLanczos

	// InterpolationBox averages the source pixels under each target pixel.
	InterpolationBox
)

var interpolationNames = []string{"catmullrom", "linear", "nearest", "lanczos", "box"}

func (i Interpolation) String() string {
	if i >= 0 && int(i) < len(interpolationNames) {
		return interpolationNames[i]
	}
	return fmt.Sprintf("Interpolation(%d)", int(i))
}

// ParseInterpolation returns the interpolation with the given name.
func ParseInterpolation(name string) (Interpolation, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range interpolationNames {
		if n == name {
			return Interpolation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown filter %q (want one of %s)",
		name, strings.Join(interpolationNames, ", "))
}

func (i Interpolation) filter() imaging.ResampleFilter {
	switch i {
	case InterpolationLinear:
		return imaging.Linear
	case InterpolationNearest:
		return imaging.NearestNeighbor
	case InterpolationLanczos:
		return imaging.Lanczos
	case InterpolationBox:
		return imaging.Box
	default:
		return imaging.CatmullRom
	}
}

// Size is a requested output size in pixels. Zero fields are derived
// from the source aspect ratio.
type Size struct {
	Width  int
	Height int
}

// FitDimensions resolves a requested size against a source size:
//
//   - width and height given: used as is;
//   - only width: height follows the aspect ratio;
//   - only height: width follows the aspect ratio, capped at termWidth;
//   - neither: width is termWidth and height follows the aspect ratio.
//
// Both results are at least 1.
func FitDimensions(srcW, srcH int, req Size, termWidth int) (width, height int) {
	srcW, srcH = max(srcW, 1), max(srcH, 1)
	switch {
	case req.Width > 0 && req.Height > 0:
		width, height = req.Width, req.Height
	case req.Width > 0:
		width = req.Width
		height = req.Width * srcH / srcW
	case req.Height > 0:
		height = req.Height
		width = req.Height * srcW / srcH
		if termWidth > 0 {
			width = min(width, termWidth)
		}
	default:
		width = max(termWidth, 1)
		height = width * srcH / srcW
	}
	return max(width, 1), max(height, 1)
}

// Fit resizes img to the size FitDimensions picks for it.
func Fit(img image.Image, req Size, termWidth int, interp Interpolation) *image.NRGBA {
	srcW, srcH := Dimensions(img)
	w, h := FitDimensions(srcW, srcH, req, termWidth)
	return Resize(img, w, h, interp)
}

// Resize resizes an image to the specified dimensions using the given
// interpolation method. An image already at the target size is copied.
func Resize(img image.Image, width, height int, interp Interpolation) *image.NRGBA {
	if w, h := Dimensions(img); w == width && h == height {
		return ToNRGBA(img)
	}
	return imaging.Resize(img, width, height, interp.filter())
}
