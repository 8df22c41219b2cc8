package geometry

import "math"

// XY is a point or offset in surface coordinates.
//
// Surface coordinates follow raster conventions: X grows to the right and Y
// grows downward, so "up" is negative Y.
type XY struct {
	X, Y float64
}

func (xy XY) Add(other XY) XY {
	return XY{X: xy.X + other.X, Y: xy.Y + other.Y}
}

func (xy XY) Sub(other XY) XY {
	return XY{X: xy.X - other.X, Y: xy.Y - other.Y}
}

func (xy XY) Length() float64 {
	return math.Hypot(xy.X, xy.Y)
}

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Rescale scales xy, rotates it by angle and then moves it by offset.
func Rescale(xy XY, scale float64, angle float64, offset XY) XY {
	x := xy.X * scale
	y := xy.Y * scale

	sin, cos := math.Sincos(angle)
	x2 := x*cos - y*sin + offset.X
	y2 := x*sin + y*cos + offset.Y

	return XY{X: x2, Y: y2}
}
