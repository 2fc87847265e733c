package pixt

import (
	"fmt"
	"image"
	"io"
)

// Renderer turns images into character art with a fixed palette and
// output configuration. A Renderer is not safe for concurrent use; give
// each goroutine its own.
type Renderer struct {
	// Configuration options
	Palette   *Palette
	Format    Format
	ColorMode ColorMode

	sinkOpts []SinkOption

	// Stats of the last render (private)
	cells int
	lines int
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a new Renderer for palette p with the given
// options. Default values: Format=FormatTerminal, ColorMode=ColorNone.
func NewRenderer(p *Palette, opts ...RendererOption) *Renderer {
	r := &Renderer{
		Palette:   p,
		Format:    FormatTerminal,
		ColorMode: ColorNone,
	}

	// Apply options
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithFormat sets the output format.
func WithFormat(f Format) RendererOption {
	return func(r *Renderer) {
		r.Format = f
	}
}

// WithColorMode sets how pixel colors map onto glyph colors.
func WithColorMode(m ColorMode) RendererOption {
	return func(r *Renderer) {
		r.ColorMode = m
	}
}

// WithSinkOptions passes options through to the sink of every render.
func WithSinkOptions(opts ...SinkOption) RendererOption {
	return func(r *Renderer) {
		r.sinkOpts = append(r.sinkOpts, opts...)
	}
}

// Render writes img to w: the header, every row of cells followed by a
// line end, then the footer. The first write error aborts the render and
// is returned. Nothing is written when the format and color mode have no
// sink.
func (r *Renderer) Render(img image.Image, w io.Writer) error {
	r.cells, r.lines = 0, 0
	if r.Palette == nil {
		return ErrEmptyPalette
	}
	sink, err := NewSink(w, r.Format, r.ColorMode, r.sinkOpts...)
	if err != nil {
		return err
	}
	return r.emit(img, sink)
}

// RenderTo drives an already constructed sink, for callers that supply
// their own Sink implementation.
func (r *Renderer) RenderTo(img image.Image, sink Sink) error {
	r.cells, r.lines = 0, 0
	if r.Palette == nil {
		return ErrEmptyPalette
	}
	return r.emit(img, sink)
}

func (r *Renderer) emit(img image.Image, sink Sink) error {
	b := img.Bounds()
	if err := sink.Header(b.Dx(), b.Dy()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for row := range Rows(img, r.Palette) {
		for cell := range row {
			if err := sink.Cell(cell); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
			r.cells++
		}
		if err := sink.LineEnd(); err != nil {
			return fmt.Errorf("failed to write line end: %w", err)
		}
		r.lines++
	}
	if err := sink.Footer(); err != nil {
		return fmt.Errorf("failed to write footer: %w", err)
	}
	return nil
}

// Stats returns the number of cells and lines written by the last render.
func (r *Renderer) Stats() (cells, lines int) {
	return r.cells, r.lines
}
