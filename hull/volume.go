package hull

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type directedEdge struct {
	a, b int
}

// Validate checks that the faces form a closed surface with consistent
// winding: each directed edge appears once and its reverse appears once.
func (h *Hull) Validate() error {
	if len(h.Faces) < 4 {
		return &InconsistentOrientationError{Reason: fmt.Sprintf("%d faces cannot close a volume", len(h.Faces))}
	}

	edges := make(map[directedEdge]bool, len(h.Faces)*3)
	for fi, f := range h.Faces {
		if l := f.Normal.Len(); math.IsNaN(l) || math.Abs(l-1) > 1e-6 {
			return &InconsistentOrientationError{Reason: fmt.Sprintf("face %d has a degenerate normal", fi)}
		}
		for e := 0; e < 3; e++ {
			de := directedEdge{f.Vertices[e], f.Vertices[(e+1)%3]}
			if edges[de] {
				return &InconsistentOrientationError{Reason: fmt.Sprintf("edge %d->%d is wound the same way twice", de.a, de.b)}
			}
			edges[de] = true
		}
	}
	for de := range edges {
		if !edges[directedEdge{de.b, de.a}] {
			return &InconsistentOrientationError{Reason: fmt.Sprintf("edge %d->%d is open", de.a, de.b)}
		}
	}

	// Euler characteristic of a sphere.
	if v, e, f := len(h.VertexIndices()), len(edges)/2, len(h.Faces); v-e+f != 2 {
		return &InconsistentOrientationError{Reason: fmt.Sprintf("V-E+F = %d, want 2", v-e+f)}
	}
	return nil
}

// VolumeCentroid integrates the enclosed volume and its centroid by summing
// signed tetrahedra from every face to a reference point inside the hull.
func (h *Hull) VolumeCentroid() (float64, mgl64.Vec3, error) {
	verts := h.Vertices()
	if len(verts) == 0 {
		return 0, mgl64.Vec3{}, &InconsistentOrientationError{Reason: "hull has no faces"}
	}

	var ref mgl64.Vec3
	for _, v := range verts {
		ref = ref.Add(v)
	}
	ref = ref.Mul(1 / float64(len(verts)))

	volume := 0.0
	var moment mgl64.Vec3
	for _, f := range h.Faces {
		a := h.Points[f.Vertices[0]].Sub(ref)
		b := h.Points[f.Vertices[1]].Sub(ref)
		c := h.Points[f.Vertices[2]].Sub(ref)

		v := a.Dot(b.Cross(c)) / 6
		volume += v
		// tetra centroid relative to ref is (a+b+c)/4
		moment = moment.Add(a.Add(b).Add(c).Mul(v / 4))
	}

	if math.IsNaN(volume) || math.IsInf(volume, 0) {
		return 0, ref, &InconsistentOrientationError{Reason: "volume is not finite"}
	}
	if volume < -h.volumeTolerance() {
		return 0, ref, &InconsistentOrientationError{Reason: fmt.Sprintf("negative volume %g", volume)}
	}
	if volume <= 0 {
		return 0, ref, nil
	}
	return volume, ref.Add(moment.Mul(1 / volume)), nil
}

func (h *Hull) volumeTolerance() float64 {
	tol := h.Tolerance
	if tol <= 0 {
		tol = DefaultPlaneDistanceTolerance
	}
	return tol * float64(len(h.Faces))
}
