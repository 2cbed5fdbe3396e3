package geo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDegenerateInput matches every DegenerateInputError via errors.Is.
	ErrDegenerateInput = errors.New("degenerate input")
	// ErrMalformedDataset matches every MalformedDatasetError via errors.Is.
	ErrMalformedDataset = errors.New("malformed dataset")
)

// DegenerateInputError reports a point set whose convex hull is not a polygon:
// fewer than 3 points, or all points identical or collinear.
type DegenerateInputError struct {
	Reason string
	Points int
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("%s: %s (%d points)", ErrDegenerateInput, e.Reason, e.Points)
}

// Is reports whether target is ErrDegenerateInput.
func (e *DegenerateInputError) Is(target error) bool {
	return target == ErrDegenerateInput
}

// MalformedDatasetError reports missing or invalid place fields.
// Location points at the offending record (e.g. "sections[1].places[3]")
// and is empty when the problem concerns the whole document.
type MalformedDatasetError struct {
	Location string
	Reasons  []string
}

func (e *MalformedDatasetError) Error() string {
	msg := strings.Join(e.Reasons, "; ")
	if e.Location == "" {
		return fmt.Sprintf("%s: %s", ErrMalformedDataset, msg)
	}

	return fmt.Sprintf("%s: %s: %s", ErrMalformedDataset, e.Location, msg)
}

// Is reports whether target is ErrMalformedDataset.
func (e *MalformedDatasetError) Is(target error) bool {
	return target == ErrMalformedDataset
}

// Malformed is a shorthand for a MalformedDatasetError with a formatted reason.
func Malformed(location, format string, args ...any) *MalformedDatasetError {
	return &MalformedDatasetError{
		Location: location,
		Reasons:  []string{fmt.Sprintf(format, args...)},
	}
}
