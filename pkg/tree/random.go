package tree

import (
	"math"
	"math/rand"
)

// RandomControls picks every control uniformly within its input range,
// rounded to the control's step.
func RandomControls(r *rand.Rand) Controls {
	c := Controls{}

	for _, d := range Definitions {
		v := d.Min + r.Float64()*(d.Max-d.Min)
		if d.Step > 0 {
			v = d.Min + math.Round((v-d.Min)/d.Step)*d.Step
		}
		*c.field(d.Name) = v
	}

	return c
}
