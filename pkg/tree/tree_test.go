package tree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willbeason/webtree/pkg/geometry"
)

const tol = 1e-9

func collect(params Params, width, height int) ([]Segment, Stats) {
	var segments []Segment
	stats := Walk(params, width, height, func(s Segment) {
		segments = append(segments, s)
	})
	return segments, stats
}

func TestRender_PreparesSurface(t *testing.T) {
	r := &recorder{}
	params := DefaultParams()
	params.LineThickness = 3

	Render(params, r, 800, 600)

	require.Len(t, r.calls, 4)
	assert.Equal(t, "clear", r.calls[0])
	assert.Equal(t, "fill 0 0 800 600 {65535}", r.calls[1])
	assert.Equal(t, "stroke {0}", r.calls[2])
	assert.Equal(t, "width 3", r.calls[3])
}

func TestRender_StrokesEverySegment(t *testing.T) {
	r := &recorder{}
	stats := Render(DefaultParams(), r, 800, 600)

	segments, _ := collect(DefaultParams(), 800, 600)
	require.Len(t, r.lines, stats.Segments)
	for i, s := range segments {
		assert.Equal(t, [2]geometry.XY{s.From, s.To}, r.lines[i])
	}
}

func TestWalk_Trunk(t *testing.T) {
	segments, _ := collect(DefaultParams(), 800, 600)
	require.NotEmpty(t, segments)

	trunk := segments[0]
	assert.Equal(t, 0, trunk.Depth)
	assert.InDelta(t, 400, trunk.From.X, tol)
	assert.InDelta(t, 600, trunk.From.Y, tol)
	assert.InDelta(t, 400, trunk.To.X, tol)
	assert.InDelta(t, 450, trunk.To.Y, tol)
	assert.InDelta(t, 150, trunk.To.Sub(trunk.From).Length(), tol)
}

func TestWalk_TrunkDirection(t *testing.T) {
	c := DefaultControls()
	c.Direction = 90

	segments, _ := collect(c.Params(), 800, 600)

	// A quarter turn clockwise lays the trunk along the bottom edge.
	trunk := segments[0]
	assert.InDelta(t, 550, trunk.To.X, tol)
	assert.InDelta(t, 600, trunk.To.Y, tol)
}

func TestWalk_Defaults(t *testing.T) {
	_, stats := collect(DefaultParams(), 800, 600)

	// 150 * 0.66^10 > 2 >= 150 * 0.66^11.
	assert.Equal(t, Stats{Segments: 1<<11 - 1, Depth: 10}, stats)
}

func TestWalk_DepthWithinBound(t *testing.T) {
	tests := []struct {
		name   string
		height int
		decay  float64
		thresh float64
	}{
		{name: "defaults", height: 600, decay: 0.66, thresh: 2},
		{name: "slow decay", height: 600, decay: 0.8, thresh: 5},
		{name: "fast decay", height: 600, decay: 0.3, thresh: 1},
		{name: "tall", height: 2000, decay: 0.7, thresh: 4},
		{name: "threshold above trunk", height: 100, decay: 0.5, thresh: 30},
		{name: "small surface", height: 40, decay: 0.66, thresh: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParams()
			params.HeightDecayFactor = tt.decay
			params.MinBranchLength = tt.thresh

			_, stats := collect(params, 800, tt.height)

			rootLength := float64(tt.height) / 4
			analytic := math.Log(tt.thresh/rootLength) / math.Log(tt.decay)
			assert.LessOrEqual(t, float64(stats.Depth), math.Max(analytic, 0))
			assert.LessOrEqual(t, stats.Depth, DepthBound(params, rootLength))
			assert.False(t, stats.Truncated)
			assert.Equal(t, 1<<(stats.Depth+1)-1, stats.Segments)
		})
	}
}

func TestWalk_NonDecayingIsBounded(t *testing.T) {
	for _, decay := range []float64{1, 1.2} {
		params := DefaultParams()
		params.HeightDecayFactor = decay
		params.MaxDepth = 5

		_, stats := collect(params, 800, 600)

		assert.True(t, stats.Truncated)
		assert.Equal(t, 5, stats.Depth)
		assert.Equal(t, 1<<6-1, stats.Segments)
	}
}

func TestWalk_ZeroThresholdUsesDefaultMaxDepth(t *testing.T) {
	c := DefaultControls()
	c.Branching = BranchingBase

	_, stats := collect(c.Params(), 800, 600)

	assert.True(t, stats.Truncated)
	assert.Equal(t, DefaultMaxDepth, stats.Depth)
}

func TestWalk_NaNStops(t *testing.T) {
	params := DefaultParams()
	params.HeightDecayFactor = math.NaN()

	_, stats := collect(params, 800, 600)

	assert.Equal(t, Stats{Segments: 1}, stats)
}

type pivot struct {
	at    geometry.XY
	depth int
}

func siblings(segments []Segment) map[pivot][]Segment {
	groups := make(map[pivot][]Segment)
	for _, s := range segments[1:] {
		k := pivot{at: s.From, depth: s.Depth}
		groups[k] = append(groups[k], s)
	}
	return groups
}

// spreadByDepth returns the angle between siblings at each depth, checking
// that it does not vary within a depth.
func spreadByDepth(t *testing.T, segments []Segment) map[int]float64 {
	t.Helper()

	spread := make(map[int]float64)
	for k, pair := range siblings(segments) {
		require.Len(t, pair, 2, "pivot %v", k)

		s := math.Abs(pair[0].Angle - pair[1].Angle)
		if prev, ok := spread[k.depth]; ok {
			assert.InDelta(t, prev, s, tol)
		}
		spread[k.depth] = s
	}
	return spread
}

func TestWalk_WiderAngleSpreadsSiblings(t *testing.T) {
	narrow := DefaultControls()
	wide := DefaultControls()
	wide.Degrees = 50

	narrowSegments, narrowStats := collect(narrow.Params(), 800, 600)
	wideSegments, wideStats := collect(wide.Params(), 800, 600)

	assert.Equal(t, narrowStats.Depth, wideStats.Depth)

	narrowSpread := spreadByDepth(t, narrowSegments)
	wideSpread := spreadByDepth(t, wideSegments)
	require.Len(t, narrowSpread, narrowStats.Depth)

	for depth := 1; depth <= narrowStats.Depth; depth++ {
		assert.InDelta(t, geometry.Radians(50), narrowSpread[depth], tol)
		assert.InDelta(t, geometry.Radians(100), wideSpread[depth], tol)
		assert.Greater(t, wideSpread[depth], narrowSpread[depth])
	}
}

func TestWalk_BranchingSliderIsInverted(t *testing.T) {
	low := DefaultControls()
	d, _ := Lookup(Branching)
	low.Branching = d.Min

	high := DefaultControls()
	high.Branching = d.Max

	_, lowStats := collect(low.Params(), 800, 600)
	_, highStats := collect(high.Params(), 800, 600)

	// The slider's minimum is the largest threshold.
	assert.Less(t, lowStats.Segments, highStats.Segments)
	assert.Less(t, lowStats.Depth, highStats.Depth)
}

func TestWalk_SiblingsSharePivot(t *testing.T) {
	c := DefaultControls()
	c.Direction = 20

	segments, _ := collect(c.Params(), 800, 600)

	// Every segment after the trunk starts where its parent ended.
	ends := map[geometry.XY]int{segments[0].To: 0}
	for _, s := range segments[1:] {
		depth, ok := ends[s.From]
		require.True(t, ok, "segment at depth %d starts at no parent's end", s.Depth)
		assert.Equal(t, s.Depth-1, depth)
		ends[s.To] = s.Depth
	}

	for k, pair := range siblings(segments) {
		require.Len(t, pair, 2, "pivot %v", k)
	}
}

func TestWalk_RootDirectionCompounds(t *testing.T) {
	c := DefaultControls()
	c.Direction = 10
	dir := geometry.Radians(10)
	theta := geometry.Radians(25)

	segments, _ := collect(c.Params(), 800, 600)

	// The first child of the first child: root + two turns, each adding the direction.
	assert.InDelta(t, dir, segments[0].Angle, tol)
	assert.InDelta(t, dir+theta+dir, segments[1].Angle, tol)
	assert.InDelta(t, dir+2*(theta+dir), segments[2].Angle, tol)
}

func TestDepthBound(t *testing.T) {
	base := DefaultParams()

	tests := []struct {
		name   string
		modify func(p *Params)
		root   float64
		want   int
	}{
		{name: "defaults", modify: func(*Params) {}, root: 150, want: 10},
		{name: "threshold above trunk", modify: func(p *Params) { p.MinBranchLength = 200 }, root: 150, want: 0},
		{name: "no decay", modify: func(p *Params) { p.HeightDecayFactor = 1 }, root: 150, want: DefaultMaxDepth},
		{name: "zero threshold", modify: func(p *Params) { p.MinBranchLength = 0 }, root: 150, want: DefaultMaxDepth},
		{name: "capped", modify: func(p *Params) { p.MaxDepth = 4 }, root: 150, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.modify(&p)
			assert.Equal(t, tt.want, DepthBound(p, tt.root))
		})
	}
}
