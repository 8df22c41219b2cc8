package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

func assertXY(t *testing.T, want, got XY) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "X")
	assert.InDelta(t, want.Y, got.Y, tol, "Y")
}

func TestRadians(t *testing.T) {
	tests := []struct {
		degrees float64
		want    float64
	}{
		{0, 0},
		{25, 0.4363323129985824},
		{90, math.Pi / 2},
		{180, math.Pi},
		{-45, -math.Pi / 4},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Radians(tt.degrees), tol, "Radians(%v)", tt.degrees)
		assert.InDelta(t, tt.degrees, Degrees(Radians(tt.degrees)), tol)
	}
}

func TestRescale(t *testing.T) {
	got := Rescale(XY{X: 1}, 2.0, math.Pi/2, XY{X: 1, Y: 1})
	assertXY(t, XY{X: 1, Y: 3}, got)
}

func TestFrame_Forward(t *testing.T) {
	root := Identity.Translate(400, 600)
	end := root.Forward(150)

	assertXY(t, XY{X: 400, Y: 450}, end.Origin)
	assert.Equal(t, root.Angle, end.Angle)
}

func TestFrame_RotateClockwise(t *testing.T) {
	// A quarter turn points local "up" at the surface's right.
	f := Identity.Rotate(math.Pi / 2)
	assertXY(t, XY{X: 10}, f.Apply(XY{Y: -10}))
}

func TestFrame_OperationsDoNotMutate(t *testing.T) {
	f := Frame{Origin: XY{X: 3, Y: 4}, Angle: 0.3}
	before := f.Matrix()

	_ = f.Rotate(1.2)
	_ = f.Forward(20)
	_ = f.Translate(5, 6)

	assert.Equal(t, before, f.Matrix())
}

func TestFrame_Matrix(t *testing.T) {
	f := Identity.Translate(10, 20).Rotate(Radians(30)).Forward(7)
	m := f.Matrix()

	for _, p := range []XY{{}, {X: 1}, {Y: 1}, {X: -4, Y: 2.5}} {
		assertXY(t, f.Apply(p), m.Apply(p))
	}
}

func TestFrame_RotationsCompose(t *testing.T) {
	a := Identity.Rotate(0.2).Rotate(0.5)
	b := Identity.Rotate(0.7)

	assertXY(t, b.Apply(XY{X: 1, Y: 2}), a.Apply(XY{X: 1, Y: 2}))
}
