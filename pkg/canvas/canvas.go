// Package canvas is a raster drawing surface that strokes straight lines into
// an RGBA image.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/willbeason/webtree/pkg/geometry"
)

// A Canvas accumulates strokes of the current width and color in a
// rasterizer and paints them onto its image when the stroke state changes or
// the image is read.
type Canvas struct {
	img *image.RGBA
	ras *vector.Rasterizer

	lineWidth float64
	stroke    color.Color

	// pending is set while the rasterizer holds strokes not yet painted.
	pending bool
}

// New returns a transparent canvas of the given size, stroking black lines
// one pixel wide.
func New(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	return &Canvas{
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		ras:       vector.NewRasterizer(width, height),
		lineWidth: 1,
		stroke:    color.Black,
	}
}

func (c *Canvas) Width() int  { return c.img.Rect.Dx() }
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Clear discards pending strokes and erases the image to transparent.
func (c *Canvas) Clear() {
	c.ras.Reset(c.Width(), c.Height())
	c.pending = false
	draw.Draw(c.img, c.img.Rect, image.Transparent, image.Point{}, draw.Src)
}

// FillRect paints the rectangle over the image, rounded outward to whole pixels.
func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	c.flush()

	r := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	).Intersect(c.img.Rect)
	if r.Empty() {
		return
	}

	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// SetLineWidth sets the width of later strokes. Like an HTML canvas, zero,
// negative, infinite and NaN widths are ignored.
func (c *Canvas) SetLineWidth(width float64) {
	if !(width > 0) || math.IsInf(width, 1) || width == c.lineWidth {
		return
	}

	c.flush()
	c.lineWidth = width
}

func (c *Canvas) LineWidth() float64 { return c.lineWidth }

// SetStrokeColor sets the color of later strokes.
func (c *Canvas) SetStrokeColor(col color.Color) {
	c.flush()
	c.stroke = col
}

// StrokeLine strokes the segment as a rectangle lineWidth wide with butt ends.
// Degenerate and non-finite segments draw nothing.
func (c *Canvas) StrokeLine(from, to geometry.XY) {
	if !finite(from) || !finite(to) {
		return
	}

	d := to.Sub(from)
	length := d.Length()
	if length == 0 {
		return
	}

	half := c.lineWidth / 2
	n := geometry.XY{X: -d.Y / length * half, Y: d.X / length * half}

	quad := []geometry.XY{from.Add(n), to.Add(n), to.Sub(n), from.Sub(n)}
	poly := clip(quad, float64(c.Width()), float64(c.Height()))
	if len(poly) < 3 {
		return
	}

	c.ras.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, p := range poly[1:] {
		c.ras.LineTo(float32(p.X), float32(p.Y))
	}
	c.ras.ClosePath()
	c.pending = true
}

// Image paints any pending strokes and returns the canvas image.
func (c *Canvas) Image() *image.RGBA {
	c.flush()
	return c.img
}

// EncodePNG writes the canvas as a PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func (c *Canvas) flush() {
	if !c.pending {
		return
	}

	c.ras.Draw(c.img, c.img.Rect, image.NewUniform(c.stroke), image.Point{})
	c.ras.Reset(c.Width(), c.Height())
	c.pending = false
}

func finite(p geometry.XY) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
