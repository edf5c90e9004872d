package hydro

import (
	"fmt"

	"github.com/jakecoffman/hydro/hull"
)

type (
	// DegenerateInputError is returned when the submerged points do not
	// enclose a volume. The step falls back to zero volume.
	DegenerateInputError = hull.DegenerateInputError

	// InconsistentOrientationError means the submerged hull is broken. The
	// body's forces for the step are zeroed.
	InconsistentOrientationError = hull.InconsistentOrientationError
)

// InvalidSampleError reports a non-finite water sample. The triangle is
// treated as dry for the step.
type InvalidSampleError struct {
	Triangle int
	Corner   int
	Height   float64
	Velocity Vector
}

func (e *InvalidSampleError) Error() string {
	return fmt.Sprintf("invalid water sample at triangle %d corner %d: height %v velocity %v",
		e.Triangle, e.Corner, e.Height, e.Velocity)
}

// validateSamples flags triangles with non-finite samples in skip and returns
// one error per bad triangle.
func validateSamples(water []TriangleWater, skip []bool) []error {
	var errs []error
	for i, w := range water {
		for k, s := range w {
			if !IsFinite(s.Height) || !IsFiniteVector(s.Velocity) {
				skip[i] = true
				errs = append(errs, &InvalidSampleError{Triangle: i, Corner: k, Height: s.Height, Velocity: s.Velocity})
				break
			}
		}
	}
	return errs
}
