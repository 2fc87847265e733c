package pixt

import (
	"image"
	"iter"
)

// Cell is one output character: the glyph picked for a vertical pixel
// pair and the colors of both pixels.
type Cell struct {
	Glyph  rune
	Top    RGB
	Bottom RGB
}

// Rows walks img two pixel rows at a time and yields one sequence of
// cells per row pair. Rows are paired as (0,1), (2,3), ...; a trailing
// unpaired row is never rendered, so an image of height 5 yields two
// rows. Each cell reads (x, y) as the top pixel and (x, y+1) as the
// bottom pixel.
//
// The sequences are computed lazily from img and p and hold no state
// between calls.
func Rows(img image.Image, p *Palette) iter.Seq[iter.Seq[Cell]] {
	b := img.Bounds()
	at := pixelReader(img)
	return func(yield func(iter.Seq[Cell]) bool) {
		for y := b.Min.Y; y+1 < b.Max.Y; y += 2 {
			row := func(yieldCell func(Cell) bool) {
				for x := b.Min.X; x < b.Max.X; x++ {
					top, bottom := at(x, y), at(x, y+1)
					c := Cell{Glyph: p.Glyph(top, bottom), Top: top, Bottom: bottom}
					if !yieldCell(c) {
						return
					}
				}
			}
			if !yield(row) {
				return
			}
		}
	}
}

// CountCells returns the number of cells Rows yields for an image of the
// given size.
func CountCells(width, height int) int {
	if width <= 0 || height < 2 {
		return 0
	}
	return width * (height / 2)
}

// pixelReader returns a function reading RGB values from img, reading
// the pixel buffer directly for the NRGBA and RGBA images produced by
// decoding and resizing.
func pixelReader(img image.Image) func(x, y int) RGB {
	switch m := img.(type) {
	case *image.NRGBA:
		return func(x, y int) RGB {
			i := m.PixOffset(x, y)
			return RGB{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2]}
		}
	case *image.RGBA:
		return func(x, y int) RGB {
			c := m.RGBAAt(x, y)
			if c.A == 0xFF {
				return RGB{R: c.R, G: c.G, B: c.B}
			}
			return RGBFromColor(c)
		}
	}
	return func(x, y int) RGB {
		return RGBFromColor(img.At(x, y))
	}
}
