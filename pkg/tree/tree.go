package tree

import (
	"image/color"

	"github.com/willbeason/webtree/pkg/geometry"
)

// RootFraction is the trunk length as a fraction of the surface height.
const RootFraction = 0.25

// A Surface is something a tree can be drawn on.
//
// All coordinates are surface coordinates. The renderer keeps its own
// transform, so a Surface has no transform state of its own.
type Surface interface {
	// Clear erases the whole surface to transparent.
	Clear()
	// FillRect paints the rectangle with origin (x, y) and size (w, h).
	FillRect(x, y, w, h float64, c color.Color)
	// SetLineWidth sets the width of subsequent strokes.
	SetLineWidth(width float64)
	// SetStrokeColor sets the color of subsequent strokes.
	SetStrokeColor(c color.Color)
	// StrokeLine strokes the straight segment from one point to another.
	StrokeLine(from, to geometry.XY)
}

// A Segment is one drawn branch.
type Segment struct {
	From, To geometry.XY
	// Depth is 0 for the trunk and increases by one per branching.
	Depth int
	// Angle is the absolute rotation of the frame the segment was drawn in.
	Angle float64
}

// Stats summarizes one traversal.
type Stats struct {
	// Segments is the number of segments drawn, including the trunk.
	Segments int
	// Depth is the deepest level drawn.
	Depth int
	// Truncated is set when MaxDepth stopped the traversal before the branch
	// length fell below MinBranchLength.
	Truncated bool
}

// Render redraws the whole surface with the tree described by params.
//
// The surface is cleared and filled opaque white first, so exported images
// have no transparent pixels.
func Render(params Params, surface Surface, width, height int) Stats {
	w, h := float64(width), float64(height)

	surface.Clear()
	surface.FillRect(0, 0, w, h, color.White)
	surface.SetStrokeColor(color.Black)
	surface.SetLineWidth(params.LineThickness)

	return Walk(params, width, height, func(s Segment) {
		surface.StrokeLine(s.From, s.To)
	})
}

// Walk visits every segment of the tree in drawing order without drawing.
//
// The trunk starts at the bottom center of a width by height surface and is
// a quarter of the height long.
func Walk(params Params, width, height int, visit func(Segment)) Stats {
	rootLength := float64(height) * RootFraction

	root := geometry.Identity.
		Translate(float64(width)/2, float64(height)).
		Rotate(params.RootDirection)

	w := newWalker(params, visit)
	w.trunk(root, rootLength)

	return w.stats
}
