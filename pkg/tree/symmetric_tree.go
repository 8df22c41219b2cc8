package tree

import "github.com/willbeason/webtree/pkg/geometry"

// walker grows a perfectly-symmetric tree where every junction splits into
// two branches turned by the same angle to either side.
type walker struct {
	params   Params
	theta    float64
	maxDepth int
	visit    func(Segment)
	stats    Stats
}

func newWalker(params Params, visit func(Segment)) *walker {
	return &walker{
		params:   params,
		theta:    geometry.Radians(params.BranchAngleDegrees),
		maxDepth: params.maxDepth(),
		visit:    visit,
	}
}

// trunk draws the root segment and grows the tree from its far end.
// The trunk is always drawn, however short.
func (w *walker) trunk(frame geometry.Frame, length float64) {
	end := frame.Forward(length)
	w.emit(Segment{From: frame.Origin, To: end.Origin, Depth: 0, Angle: frame.Angle})
	w.grow(end, length, 1)
}

// grow draws the two children of the branch that ends at frame's origin.
func (w *walker) grow(frame geometry.Frame, length float64, depth int) {
	length *= w.params.HeightDecayFactor

	// Written as "not greater" so that a NaN length also stops.
	if !(length > w.params.MinBranchLength) {
		return
	}

	if depth > w.maxDepth {
		w.stats.Truncated = true
		return
	}

	// Angles are relative to the parent's frame, and the root direction is
	// added at every level.
	w.branch(frame, length, w.theta+w.params.RootDirection, depth)
	w.branch(frame, length, -w.theta+w.params.RootDirection, depth)
}

// branch draws one child. frame is a copy, so the sibling drawn after this
// call pivots from the same point and angle.
func (w *walker) branch(frame geometry.Frame, length, angle float64, depth int) {
	frame = frame.Rotate(angle)
	end := frame.Forward(length)

	w.emit(Segment{From: frame.Origin, To: end.Origin, Depth: depth, Angle: frame.Angle})
	w.grow(end, length, depth+1)
}

func (w *walker) emit(s Segment) {
	w.stats.Segments++
	if s.Depth > w.stats.Depth {
		w.stats.Depth = s.Depth
	}

	if w.visit != nil {
		w.visit(s)
	}
}
