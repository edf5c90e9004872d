package hull

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxCorners(hx, hy, hz float64) []mgl64.Vec3 {
	var pts []mgl64.Vec3
	for _, x := range []float64{-hx, hx} {
		for _, y := range []float64{-hy, hy} {
			for _, z := range []float64{-hz, hz} {
				pts = append(pts, mgl64.Vec3{x, y, z})
			}
		}
	}
	return pts
}

func TestBuildBox(t *testing.T) {
	h, err := Build(boxCorners(1, 1, 1))
	require.NoError(t, err)
	require.NoError(t, h.Validate())

	assert.Len(t, h.Faces, 12)

	volume, centroid, err := h.VolumeCentroid()
	require.NoError(t, err)
	assert.InDelta(t, 8.0, volume, 1e-6)
	assert.InDelta(t, 0.0, centroid.X(), 1e-6)
	assert.InDelta(t, 0.0, centroid.Y(), 1e-6)
	assert.InDelta(t, 0.0, centroid.Z(), 1e-6)
}

func TestBuildIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pts := make([]mgl64.Vec3, 60)
	for i := range pts {
		pts[i] = mgl64.Vec3{rng.Float64()*4 - 2, rng.Float64()*2 - 1, rng.Float64()*3 - 1.5}
	}

	first, err := Build(pts)
	require.NoError(t, err)
	v1, _, err := first.VolumeCentroid()
	require.NoError(t, err)

	second, err := Build(first.Vertices())
	require.NoError(t, err)
	v2, _, err := second.VolumeCentroid()
	require.NoError(t, err)

	assert.Equal(t, len(first.Faces), len(second.Faces))
	assert.InDelta(t, v1, v2, 1e-9)
}

func TestBuildDegenerate(t *testing.T) {
	coplanar := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}, {1, 0, 1}}
	h, err := Build(coplanar)
	assert.Nil(t, h)

	var degenerate *DegenerateInputError
	require.True(t, errors.As(err, &degenerate))
	assert.Equal(t, 4, degenerate.Points)

	_, err = Build(coplanar[:3])
	assert.True(t, errors.As(err, &degenerate))

	collinear := []mgl64.Vec3{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}, {3, 3, 3}, {4, 4, 4}}
	_, err = Build(collinear)
	assert.True(t, errors.As(err, &degenerate))
}

func TestBuildMergesDuplicates(t *testing.T) {
	pts := boxCorners(0.5, 0.5, 0.5)
	pts = append(pts, pts...)
	pts = append(pts, mgl64.Vec3{0.5, 0.5, 0.5 + 1e-13})

	h, err := Build(pts)
	require.NoError(t, err)
	require.NoError(t, h.Validate())
	assert.Len(t, h.VertexIndices(), 8)

	volume, _, err := h.VolumeCentroid()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, volume, 1e-9)
}

func TestBuildContainsAllPoints(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pts := make([]mgl64.Vec3, 200)
	for i := range pts {
		// points in a unit ball
		for {
			p := mgl64.Vec3{rng.Float64()*2 - 1, rng.Float64()*2 - 1, rng.Float64()*2 - 1}
			if p.Len() <= 1 {
				pts[i] = p
				break
			}
		}
	}

	h, err := Build(pts)
	require.NoError(t, err)
	require.NoError(t, h.Validate())

	for i, p := range pts {
		if !h.Contains(p) {
			t.Errorf("point %d (%v) is outside the hull", i, p)
		}
	}

	volume, centroid, err := h.VolumeCentroid()
	require.NoError(t, err)
	assert.Greater(t, volume, 0.0)
	assert.Less(t, volume, 4.0/3.0*math.Pi)
	assert.Less(t, centroid.Len(), 0.5)
}

func TestBuildInteriorAndBoundaryPoints(t *testing.T) {
	// half submerged unit cube: bottom corners, waterline corners and
	// waterline points on the middle of the rim edges
	pts := []mgl64.Vec3{
		{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5},
		{0.5, 0, 0}, {-0.5, 0, 0}, {0, 0, 0.5}, {0, 0, -0.5},
		{-0.5, 0, -0.5}, {0.5, 0, -0.5}, {0.5, 0, 0.5}, {-0.5, 0, 0.5},
		{0, -0.25, 0},
	}

	h, err := Build(pts)
	require.NoError(t, err)
	require.NoError(t, h.Validate())

	volume, centroid, err := h.VolumeCentroid()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, volume, 1e-9)
	assert.InDelta(t, -0.25, centroid.Y(), 1e-9)
	assert.InDelta(t, 0.0, centroid.X(), 1e-9)
}

func TestVolumeCentroidInverted(t *testing.T) {
	h, err := Build(boxCorners(1, 1, 1))
	require.NoError(t, err)

	for i := range h.Faces {
		v := h.Faces[i].Vertices
		h.Faces[i].Vertices = [3]int{v[0], v[2], v[1]}
	}

	_, _, err = h.VolumeCentroid()
	var inconsistent *InconsistentOrientationError
	assert.True(t, errors.As(err, &inconsistent))
}

func TestValidateOpenSurface(t *testing.T) {
	h, err := Build(boxCorners(1, 2, 3))
	require.NoError(t, err)

	h.Faces = h.Faces[1:]
	var inconsistent *InconsistentOrientationError
	assert.True(t, errors.As(h.Validate(), &inconsistent))
}

func TestBuildLargeCoordinates(t *testing.T) {
	pts := boxCorners(1, 1, 1)
	for i := range pts {
		pts[i] = pts[i].Add(mgl64.Vec3{1e5, -2e4, 3e5})
	}
	h, err := Build(pts)
	require.NoError(t, err)
	require.NoError(t, h.Validate())

	volume, centroid, err := h.VolumeCentroid()
	require.NoError(t, err)
	assert.InDelta(t, 8.0, volume, 1e-6)
	assert.InDelta(t, 1e5, centroid.X(), 1e-6)
}
