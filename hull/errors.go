package hull

import "fmt"

// DegenerateInputError means the points do not span a volume: fewer than four
// of them are affinely independent within tolerance.
type DegenerateInputError struct {
	Points int
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("hull: degenerate input (%d points): %s", e.Points, e.Reason)
}

// InconsistentOrientationError means a built hull is not a closed,
// outward-wound surface. It indicates a bug or numerically hostile input and
// the hull must not be used.
type InconsistentOrientationError struct {
	Reason string
}

func (e *InconsistentOrientationError) Error() string {
	return "hull: inconsistent orientation: " + e.Reason
}
