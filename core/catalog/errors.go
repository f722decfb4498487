package catalog

import (
	"errors"
	"fmt"
)

// Axis names
const (
	AxisDay  = "day"
	AxisSlot = "slot"
)

// ErrKeyNotFound is returned by a Store when nothing was saved under a key yet.
var ErrKeyNotFound = errors.New("catalog key not found")

// DuplicateAxisLabelError reports an attempt to add a label already present on an axis.
type DuplicateAxisLabelError struct {
	Axis  string
	Label string
}

func (err *DuplicateAxisLabelError) Error() string {
	return fmt.Sprintf("%s %q already exists", err.Axis, err.Label)
}

// InvalidRangeError reports a slot synthesis with a missing endpoint.
type InvalidRangeError struct {
	Start string
	End   string
}

func (err *InvalidRangeError) Error() string {
	switch {
	case err.Start == "" && err.End == "":
		return "start and end times are required"
	case err.Start == "":
		return "start time is required"
	default:
		return "end time is required"
	}
}
