package canvas

import "github.com/willbeason/webtree/pkg/geometry"

// clip cuts a convex polygon to the rectangle [0, width] x [0, height] one
// edge at a time (Sutherland-Hodgman). The rasterizer walks every row a path
// spans, so geometry far off the canvas must not reach it.
func clip(poly []geometry.XY, width, height float64) []geometry.XY {
	poly = clipEdge(poly, func(p geometry.XY) float64 { return p.X })
	poly = clipEdge(poly, func(p geometry.XY) float64 { return width - p.X })
	poly = clipEdge(poly, func(p geometry.XY) float64 { return p.Y })
	poly = clipEdge(poly, func(p geometry.XY) float64 { return height - p.Y })
	return poly
}

// clipEdge keeps the part of poly where inside(p) >= 0. inside must be
// linear in p.
func clipEdge(poly []geometry.XY, inside func(geometry.XY) float64) []geometry.XY {
	if len(poly) == 0 {
		return nil
	}

	out := make([]geometry.XY, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	prevIn := inside(prev)

	for _, cur := range poly {
		curIn := inside(cur)

		if (prevIn >= 0) != (curIn >= 0) {
			t := prevIn / (prevIn - curIn)
			out = append(out, geometry.XY{
				X: prev.X + t*(cur.X-prev.X),
				Y: prev.Y + t*(cur.Y-prev.Y),
			})
		}
		if curIn >= 0 {
			out = append(out, cur)
		}

		prev, prevIn = cur, curIn
	}

	return out
}
