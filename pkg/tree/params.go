package tree

// DefaultMaxDepth bounds the recursion when Params.MaxDepth is unset.
//
// A full tree of this depth strokes 2^17-1 segments.
const DefaultMaxDepth = 16

// Params is everything a single render needs besides the surface.
//
// Params carries no invariants between fields. A HeightDecayFactor of 1 or
// more never decays below MinBranchLength, in which case MaxDepth is what
// ends the traversal.
type Params struct {
	// LineThickness is the stroke width of every segment, in pixels.
	LineThickness float64 `json:"lineThickness"`

	// BranchAngleDegrees is how far each child branch turns away from its
	// parent, clockwise for one child and counter-clockwise for the other.
	BranchAngleDegrees float64 `json:"branchAngleDegrees"`

	// HeightDecayFactor multiplies the branch length at each level.
	HeightDecayFactor float64 `json:"heightDecayFactor"`

	// MinBranchLength is the effective threshold: branches no longer than it
	// are not drawn.
	MinBranchLength float64 `json:"minBranchLength"`

	// RootDirection rotates the trunk, in radians clockwise.
	// It is also added to every child's turn, so it compounds with depth.
	RootDirection float64 `json:"rootDirection"`

	// MaxDepth is the deepest branch level drawn. Zero means DefaultMaxDepth.
	MaxDepth int `json:"maxDepth,omitempty"`
}

// DefaultParams are the parameters of the default controls.
func DefaultParams() Params {
	return DefaultControls().Params()
}

func (p Params) maxDepth() int {
	if p.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return p.MaxDepth
}
