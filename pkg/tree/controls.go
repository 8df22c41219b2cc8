package tree

import (
	"fmt"
	"math"

	"github.com/mitchellh/mapstructure"

	"github.com/willbeason/webtree/pkg/geometry"
)

// Control names, as used by the HTTP API, config files and CLI flags.
const (
	Thickness = "thickness"
	Degrees   = "degrees"
	Height    = "height"
	Branching = "branching"
	Direction = "direction"
)

// BranchingBase is subtracted from the branching control to get the minimum
// branch length. A larger branching value therefore draws more of the tree.
const BranchingBase = 10.0

// Controls are the five user-facing values.
//
// They differ from Params in two ways: Branching is the slider position
// rather than the threshold, and Direction is in degrees.
type Controls struct {
	Thickness float64 `json:"thickness" yaml:"thickness" toml:"thickness" mapstructure:"thickness"`
	Degrees   float64 `json:"degrees" yaml:"degrees" toml:"degrees" mapstructure:"degrees"`
	Height    float64 `json:"height" yaml:"height" toml:"height" mapstructure:"height"`
	Branching float64 `json:"branching" yaml:"branching" toml:"branching" mapstructure:"branching"`
	Direction float64 `json:"direction" yaml:"direction" toml:"direction" mapstructure:"direction"`
}

// A Definition describes one control: its default and the range its input
// widget offers. Ranges are advisory; nothing in this package clamps to them.
type Definition struct {
	Name        string
	Label       string
	Description string
	Default     float64
	Min         float64
	Max         float64
	Step        float64
}

// Definitions lists the controls in display order.
var Definitions = []Definition{
	{
		Name:        Thickness,
		Label:       "Line thickness",
		Description: "Stroke width of every branch, in pixels.",
		Default:     1,
		Min:         1,
		Max:         10,
		Step:        1,
	},
	{
		Name:        Degrees,
		Label:       "Branch angle",
		Description: "Degrees each child turns away from its parent.",
		Default:     25,
		Min:         0,
		Max:         180,
		Step:        1,
	},
	{
		Name:        Height,
		Label:       "Height factor",
		Description: "Length of a child branch relative to its parent.",
		Default:     0.66,
		Min:         0.1,
		Max:         0.9,
		Step:        0.01,
	},
	{
		Name:        Branching,
		Label:       "Branching",
		Description: "Higher values keep drawing shorter branches. The minimum branch length is 10 minus this value.",
		Default:     8,
		Min:         0,
		Max:         9,
		Step:        1,
	},
	{
		Name:        Direction,
		Label:       "Direction",
		Description: "Rotation of the trunk in degrees, clockwise.",
		Default:     0,
		Min:         -180,
		Max:         180,
		Step:        1,
	},
}

// Names returns the control names in display order.
func Names() []string {
	names := make([]string, len(Definitions))
	for i, d := range Definitions {
		names[i] = d.Name
	}
	return names
}

// Lookup returns the definition of the named control.
func Lookup(name string) (Definition, bool) {
	for _, d := range Definitions {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// DefaultControls returns every control at its default.
func DefaultControls() Controls {
	c := Controls{}
	c.ResetAll()
	return c
}

// Params derives the render parameters from the controls.
func (c Controls) Params() Params {
	return Params{
		LineThickness:      c.Thickness,
		BranchAngleDegrees: c.Degrees,
		HeightDecayFactor:  c.Height,
		MinBranchLength:    BranchingBase - c.Branching,
		RootDirection:      geometry.Radians(c.Direction),
	}
}

// Get returns the displayed value of the named control.
func (c *Controls) Get(name string) (float64, error) {
	field := c.field(name)
	if field == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	return *field, nil
}

// Set changes one control. value may be any type that reads as a number,
// including numeric strings.
func (c *Controls) Set(name string, value any) error {
	return c.Apply(map[string]any{name: value})
}

// Apply sets several controls at once. Either every value is applied or, on
// error, none is. NaN and infinities are rejected.
func (c *Controls) Apply(values map[string]any) error {
	for name := range values {
		if c.field(name) == nil {
			return fmt.Errorf("%w: %q", ErrUnknownControl, name)
		}
	}

	next := *c
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &next,
	})
	if err != nil {
		return err
	}

	if err = decoder.Decode(values); err != nil {
		return fmt.Errorf("%w: %v", ErrNotNumeric, err)
	}

	for name := range values {
		if v := *next.field(name); math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrNotNumeric, name, v)
		}
	}

	*c = next
	return nil
}

// Reset restores the named control to its default.
func (c *Controls) Reset(name string) error {
	d, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}

	*c.field(name) = d.Default
	return nil
}

// ResetAll restores every control to its default.
func (c *Controls) ResetAll() {
	for _, d := range Definitions {
		*c.field(d.Name) = d.Default
	}
}

// Values returns the displayed value of every control, keyed by name.
func (c Controls) Values() map[string]float64 {
	values := make(map[string]float64, len(Definitions))
	for _, d := range Definitions {
		values[d.Name] = *c.field(d.Name)
	}
	return values
}

func (c *Controls) field(name string) *float64 {
	switch name {
	case Thickness:
		return &c.Thickness
	case Degrees:
		return &c.Degrees
	case Height:
		return &c.Height
	case Branching:
		return &c.Branching
	case Direction:
		return &c.Direction
	default:
		return nil
	}
}
