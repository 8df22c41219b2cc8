package geometry

// A Frame is a local coordinate system: an origin in surface coordinates and
// the cumulative rotation of its axes.
//
// Frames are values. Every operation returns a new Frame and leaves the
// receiver unchanged, so a caller's frame is the same after any call that
// was handed a copy of it.
type Frame struct {
	Origin XY
	// Angle is measured in radians clockwise on screen, matching the rotation
	// direction of a raster surface whose Y axis points down.
	Angle float64
}

// Identity is the frame of the surface itself.
var Identity = Frame{}

// Translate moves the origin by the local offset (dx, dy).
func (f Frame) Translate(dx, dy float64) Frame {
	return Frame{Origin: f.Apply(XY{X: dx, Y: dy}), Angle: f.Angle}
}

// Rotate turns the frame's axes by angle radians about its origin.
func (f Frame) Rotate(angle float64) Frame {
	return Frame{Origin: f.Origin, Angle: f.Angle + angle}
}

// Forward moves the origin length units along the local "up" axis.
func (f Frame) Forward(length float64) Frame {
	return f.Translate(0, -length)
}

// Apply maps a point in the frame's local coordinates to surface coordinates.
func (f Frame) Apply(local XY) XY {
	return Rescale(local, 1.0, f.Angle, f.Origin)
}

// Matrix is the frame as a 2D affine matrix in canvas order (a, b, c, d, e, f),
// mapping (x, y) to (a*x + c*y + e, b*x + d*y + f).
func (f Frame) Matrix() Matrix {
	x := f.Apply(XY{X: 1})
	y := f.Apply(XY{Y: 1})

	return Matrix{
		x.X - f.Origin.X, x.Y - f.Origin.Y,
		y.X - f.Origin.X, y.Y - f.Origin.Y,
		f.Origin.X, f.Origin.Y,
	}
}

// Matrix is a 2D affine transform in canvas order.
type Matrix [6]float64

// Apply maps p through the matrix.
func (m Matrix) Apply(p XY) XY {
	return XY{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}
