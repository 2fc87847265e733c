package imageutil

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/webp" // Register WebP decoder
)

// LoadImage loads an image from the specified path, applying any EXIF
// orientation so that photos come out upright.
// Supports PNG, JPEG, GIF, BMP, TIFF and WebP formats.
func LoadImage(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return ToNRGBA(img), nil
}

// Decode reads an image from r. See LoadImage.
func Decode(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return ToNRGBA(img), nil
}

// SaveImage saves an image to the specified path. The format is chosen
// from the file extension.
func SaveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
