package tree

import "errors"

// ErrUnknownControl is returned when a control name is not one of Names.
var ErrUnknownControl = errors.New("unknown control")

// ErrNotNumeric is returned when a control value cannot be read as a finite
// number.
var ErrNotNumeric = errors.New("control value is not numeric")
