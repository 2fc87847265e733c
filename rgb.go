package pixt

import (
	"image/color"
)

const hexDigits = "0123456789ABCDEF"

// RGB represents a color in the RGB color space with 8-bit channels,
// where each channel ranges from 0 to 255. Alpha is never carried; pixels
// read from an image drop it.
type RGB struct {
	R, G, B uint8
}

// RGBFromColor converts a color.Color to RGB. The color is first
// converted to non-premultiplied form so that translucent pixels keep
// their channel values, and the alpha channel is then discarded.
func RGBFromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// Color converts the RGB value to an opaque color.RGBA.
func (c RGB) Color() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Intensity returns the unweighted grayscale intensity of a color, the
// mean of its three channels truncated toward zero. The sum is taken in
// 16 bits so that three saturated channels cannot overflow.
func Intensity(c RGB) uint16 {
	return (uint16(c.R) + uint16(c.G) + uint16(c.B)) / 3
}

// Average returns the per-channel mean of two colors, truncating odd
// sums.
func Average(a, b RGB) RGB {
	return RGB{
		R: uint8((uint16(a.R) + uint16(b.R)) / 2),
		G: uint8((uint16(a.G) + uint16(b.G)) / 2),
		B: uint8((uint16(a.B) + uint16(b.B)) / 2),
	}
}

// Hex returns the color as an uppercase CSS hex string, e.g. "#1A2B3C".
func (c RGB) Hex() string {
	return string(c.appendHex(make([]byte, 0, 7)))
}

// appendHex appends the "#RRGGBB" form of the color to dst.
func (c RGB) appendHex(dst []byte) []byte {
	return append(dst, '#',
		hexDigits[c.R>>4], hexDigits[c.R&0x0F],
		hexDigits[c.G>>4], hexDigits[c.G&0x0F],
		hexDigits[c.B>>4], hexDigits[c.B&0x0F])
}
