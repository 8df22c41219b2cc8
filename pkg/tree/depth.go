package tree

import "math"

// DepthBound returns the deepest branch level Walk can reach with a trunk of
// rootLength.
//
// A branch at depth k has length rootLength*decay^k and is drawn only while
// that exceeds the threshold, so k < log(threshold/rootLength)/log(decay).
// When the decay never shrinks branches below a positive threshold the bound
// is MaxDepth.
func DepthBound(params Params, rootLength float64) int {
	maxDepth := params.maxDepth()

	decay := params.HeightDecayFactor
	threshold := params.MinBranchLength
	if decay <= 0 || decay >= 1 || threshold <= 0 || rootLength <= 0 {
		return maxDepth
	}
	if threshold >= rootLength {
		return 0
	}

	bound := math.Log(threshold/rootLength) / math.Log(decay)
	if bound >= float64(maxDepth) {
		return maxDepth
	}
	return int(math.Floor(bound))
}
