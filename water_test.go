package hydro

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slopeWater rises one unit per unit of x and flows along +z.
type slopeWater struct {
	calls int
}

func (w *slopeWater) SampleHeight(p Vector) float64 {
	w.calls++
	return p.X()
}

func (w *slopeWater) SampleVelocity(p Vector) Vector {
	w.calls++
	return Vector{0, 0, p.X()}
}

type batchWater struct {
	slopeWater
	batches int
}

func (w *batchWater) SampleHeights(points []Vector, heights []float64) {
	w.batches++
	for i, p := range points {
		heights[i] = p.X()
	}
}

func (w *batchWater) SampleVelocities(points []Vector, velocities []Vector) {
	w.batches++
	for i, p := range points {
		velocities[i] = Vector{0, 0, p.X()}
	}
}

var testTris = []TrianglePoints{
	{P0: Vector{0, 0, 0}, P1: Vector{3, 0, 0}, P2: Vector{0, 3, 0}, LocalToWorld: NewTransformTranslate(Vector{1, 0, 0})},
	{P0: Vector{0, 0, 0}, P1: Vector{6, 0, 0}, P2: Vector{0, 0, 6}, LocalToWorld: NewTransformIdentity()},
}

func TestWaterQueryPerVertex(t *testing.T) {
	q := WaterQuery{Provider: &slopeWater{}, Settings: WaterSettings{QueryHeights: true, QueryVelocities: true, HeightOffset: 0.5}}

	heights := make([][3]float64, len(testTris))
	q.SampleHeights(testTris, heights)
	assert.Equal(t, [3]float64{1.5, 4.5, 1.5}, heights[0])
	assert.Equal(t, [3]float64{0.5, 6.5, 0.5}, heights[1])

	velocities := make([][3]Vector, len(testTris))
	q.SampleVelocities(testTris, velocities)
	assert.Equal(t, Vector{0, 0, 4}, velocities[0][1])
	assert.Equal(t, Vector{0, 0, 0}, velocities[1][2])
}

func TestWaterQueryGrouped(t *testing.T) {
	provider := &slopeWater{}
	q := WaterQuery{Provider: provider, Settings: WaterSettings{GroupQueries: true, QueryHeights: true, QueryVelocities: true}}

	heights := make([][3]float64, len(testTris))
	q.SampleHeights(testTris, heights)
	// world centroid x of the first triangle is 1 + 1
	assert.Equal(t, [3]float64{2, 2, 2}, heights[0])
	assert.Equal(t, [3]float64{2, 2, 2}, heights[1])
	assert.Equal(t, len(testTris), provider.calls)

	velocities := make([][3]Vector, len(testTris))
	q.SampleVelocities(testTris, velocities)
	assert.Equal(t, velocities[0][0], velocities[0][2])
}

func TestWaterQueryDisabled(t *testing.T) {
	provider := &slopeWater{}
	q := WaterQuery{Provider: provider, Settings: WaterSettings{DefaultHeight: 7, HeightOffset: 100}}

	heights := make([][3]float64, len(testTris))
	velocities := make([][3]Vector, len(testTris))
	q.SampleHeights(testTris, heights)
	q.SampleVelocities(testTris, velocities)

	assert.Equal(t, [3]float64{7, 7, 7}, heights[1])
	assert.Equal(t, [3]Vector{}, velocities[0])
	assert.Zero(t, provider.calls)

	// no provider at all behaves the same
	q = WaterQuery{Settings: WaterSettings{QueryHeights: true, DefaultHeight: -1}}
	q.SampleHeights(testTris, heights)
	assert.Equal(t, [3]float64{-1, -1, -1}, heights[0])
}

func TestWaterQueryBatch(t *testing.T) {
	provider := &batchWater{}
	q := WaterQuery{Provider: provider, Settings: WaterSettings{QueryHeights: true, QueryVelocities: true}}

	mesh := NewBoxMesh(1, 1, 1)
	water := make([]TriangleWater, mesh.Count())
	q.SampleMesh(mesh, NewTransformTranslate(Vector{10, 0, 0}), water)

	assert.Equal(t, 2, provider.batches)
	assert.Zero(t, provider.calls)
	for i := range water {
		for k := range water[i] {
			assert.InDelta(t, 10, water[i][k].Height, 0.5+1e-12)
			assert.Equal(t, water[i][k].Height, water[i][k].Velocity.Z())
		}
	}
}

func TestFlatWater(t *testing.T) {
	w := FlatWater{Height: 2, Velocity: Vector{1, 0, 0}}
	assert.Equal(t, 2.0, w.SampleHeight(Vector{100, -3, 8}))
	assert.Equal(t, Vector{1, 0, 0}, w.SampleVelocity(Vector{}))
}

func TestWaterQueryMirroredMesh(t *testing.T) {
	q := WaterQuery{Provider: &slopeWater{}, Settings: WaterSettings{QueryHeights: true}}

	mesh := NewBoxMesh(1, 2, 3)
	mirror := NewTransformTRS(Vector{4, 0, 0}, mgl64.QuatIdent(), Vector{-1, 1, 1})
	require.True(t, mirror.Mirrors())

	water := make([]TriangleWater, mesh.Count())
	q.SampleMesh(mesh, mirror, water)

	// every corner is paired with the height sampled at that same world corner
	world := mesh.Transform(mirror)
	for i := range water {
		a, b, c := world.Vert(i)
		assert.Equal(t, a.X(), water[i][0].Height, "triangle %d corner 0", i)
		assert.Equal(t, b.X(), water[i][1].Height, "triangle %d corner 1", i)
		assert.Equal(t, c.X(), water[i][2].Height, "triangle %d corner 2", i)
	}
}
