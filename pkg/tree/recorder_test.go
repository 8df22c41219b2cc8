package tree

import (
	"fmt"
	"image/color"

	"github.com/willbeason/webtree/pkg/geometry"
)

// recorder is a Surface that remembers every call.
type recorder struct {
	calls []string
	lines [][2]geometry.XY
}

var _ Surface = (*recorder)(nil)

func (r *recorder) Clear() {
	r.calls = append(r.calls, "clear")
}

func (r *recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.calls = append(r.calls, fmt.Sprintf("fill %v %v %v %v %v", x, y, w, h, c))
}

func (r *recorder) SetLineWidth(width float64) {
	r.calls = append(r.calls, fmt.Sprintf("width %v", width))
}

func (r *recorder) SetStrokeColor(c color.Color) {
	r.calls = append(r.calls, fmt.Sprintf("stroke %v", c))
}

func (r *recorder) StrokeLine(from, to geometry.XY) {
	r.lines = append(r.lines, [2]geometry.XY{from, to})
}
