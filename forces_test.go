package hydro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel() ForceModel {
	s := DefaultSettings()
	return s.forceModel()
}

// a 1x1 floor facing down, 2 units under water
func floorFragment() Fragment {
	return Fragment{
		Area:     1,
		Centroid: Vector{0, -2, 0},
		Normal:   Vector{0, -1, 0},
		Depth:    2,
	}
}

func TestDragAtRestIsZero(t *testing.T) {
	m := testModel()
	f := floorFragment()
	assert.Equal(t, Vector{}, m.DragForce(&f, Vector{}))

	// moving with the water is the same as resting
	f.WaterVelocity = Vector{3, 0, 1}
	assert.True(t, m.DragForce(&f, Vector{3, 0, 1}).ApproxEqual(Vector{}))
}

func TestPressureDragOpposesMotion(t *testing.T) {
	m := testModel()
	f := floorFragment()

	// sinking pushes the floor into the water
	down := m.DragForce(&f, Vector{0, -2, 0})
	assert.Greater(t, down.Y(), 0.0)
	assert.InDelta(t, m.PressureDrag.Linear*2+m.PressureDrag.Quadratic*4, down.Y(), 1e-9)

	// rising pulls away from the water and gets suction
	up := m.DragForce(&f, Vector{0, 2, 0})
	assert.Less(t, up.Y(), 0.0)
	assert.InDelta(t, -(m.SuctionDrag.Linear*2 + m.SuctionDrag.Quadratic*4), up.Y(), 1e-9)
}

func TestSkinDragIsTangential(t *testing.T) {
	m := testModel()
	f := floorFragment()

	drag := m.DragForce(&f, Vector{2, 0, 0})
	assert.Less(t, drag.X(), 0.0)
	assert.Zero(t, drag.Y())
	assert.InDelta(t, -0.5*m.FluidDensity*m.SkinDrag*4, drag.X(), 1e-9)

	// a current across a still body drags it along
	f.WaterVelocity = Vector{0, 0, 1}
	assert.Greater(t, m.DragForce(&f, Vector{}).Z(), 0.0)
}

func TestPressureForce(t *testing.T) {
	m := testModel()
	f := floorFragment()
	assert.InDelta(t, m.FluidDensity*m.Gravity*2, m.PressureForce(&f).Y(), 1e-9)

	// side walls get no vertical push
	f.Normal = Vector{1, 0, 0}
	assert.Equal(t, Vector{}, m.PressureForce(&f))
}

func TestAccumulateTorque(t *testing.T) {
	m := testModel()
	m.Pressure = true

	body := NewBody(NewBoxMesh(1, 1, 1))
	f := floorFragment()
	f.Centroid = Vector{1, -2, 0}

	acc := m.Accumulate(body, []Fragment{f})
	require.InDelta(t, m.FluidDensity*m.Gravity*2, acc.Force.Y(), 1e-9)
	assert.Equal(t, Vector{}, acc.Drag)
	// lever arm along +x, force along +y
	assert.InDelta(t, acc.Force.Y(), acc.Torque.Z(), 1e-9)
	assert.Equal(t, body.Force(), acc.Force)
}

func TestNewFragment(t *testing.T) {
	r := ClassifyTriangle(Vector{0, -1, 0}, Vector{1, -1, 0}, Vector{0, 1, 0}, 0, 0, 0)
	require.Equal(t, SubmersionPartial, r.State)

	water := TriangleWater{
		{Height: 0, Velocity: Vector{3, 0, 0}},
		{Height: 0, Velocity: Vector{0, 0, 0}},
		{Height: 0, Velocity: Vector{0, 0, 0}},
	}
	tri := Triangle{Normal: Vector{0, 0, 1}}
	f := NewFragment(4, tri, &r, water)

	assert.Equal(t, 4, f.Triangle)
	assert.InDelta(t, r.Area, f.Area, 1e-12)
	assert.Greater(t, f.Depth, 0.0)
	assert.Less(t, f.Depth, 1.0)
	assert.Less(t, f.Centroid.Y(), 0.0)
	assert.Equal(t, Vector{1, 0, 0}, f.WaterVelocity)
}

func TestBuoyancyPointsUp(t *testing.T) {
	m := testModel()
	b := m.Buoyancy(2)
	assert.InDelta(t, m.FluidDensity*m.Gravity*2, b.Y(), 1e-9)
	assert.Zero(t, b.X())
	assert.Zero(t, b.Z())
}
