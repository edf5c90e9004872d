package hydro

import "math"

// Fragment is a submerged triangle piece reduced to what the force model
// needs.
type Fragment struct {
	Triangle int

	Area     float64
	Centroid Vector
	Normal   Vector

	// mean depth below the surface over the fragment area
	Depth float64

	WaterVelocity Vector
}

// NewFragment reduces a classified triangle. The water velocity at the
// centroid is the mean of the corner samples.
func NewFragment(index int, tri Triangle, r *SubmersionResult, water TriangleWater) Fragment {
	depths := r.Depths()
	var wv Vector
	for _, s := range water {
		wv = wv.Add(s.Velocity)
	}
	return Fragment{
		Triangle:      index,
		Area:          r.Area,
		Centroid:      CentroidForPoly(r.Count, r.Polygon[:]),
		Normal:        tri.Normal,
		Depth:         math.Max(0, AverageForPoly(r.Count, r.Polygon[:], depths[:])),
		WaterVelocity: wv.Mul(1.0 / 3.0),
	}
}

// DragCoefficients are the linear and quadratic terms of a drag law.
type DragCoefficients struct {
	Linear    float64 `toml:"linear" yaml:"linear"`
	Quadratic float64 `toml:"quadratic" yaml:"quadratic"`
}

func (c DragCoefficients) magnitude(speed float64) float64 {
	return c.Linear*speed + c.Quadratic*speed*speed
}

// ForceModel turns fragments into forces on a body.
type ForceModel struct {
	FluidDensity float64
	Gravity      float64

	// per fragment hydrostatic pressure instead of whole volume buoyancy
	Pressure bool

	PressureDrag DragCoefficients
	SuctionDrag  DragCoefficients
	SkinDrag     float64
}

// PressureForce is the hydrostatic push on a fragment. Only the component
// along the water surface normal is kept.
func (m *ForceModel) PressureForce(f *Fragment) Vector {
	n := f.Normal.Mul(-m.FluidDensity * m.Gravity * f.Depth * f.Area)
	return Vector{0, n[1], 0}
}

// DragForce resists the motion of the fragment relative to the water. The
// normal part is pressure drag when the face moves into the water and suction
// drag when it moves away; the tangential part is skin friction.
func (m *ForceModel) DragForce(f *Fragment, bodyVelocity Vector) Vector {
	rel := bodyVelocity.Sub(f.WaterVelocity)

	vn := rel.Dot(f.Normal)
	tangent := rel.Sub(f.Normal.Mul(vn))

	var force Vector
	if vn > 0 {
		force = f.Normal.Mul(-m.PressureDrag.magnitude(vn) * f.Area)
	} else if vn < 0 {
		force = f.Normal.Mul(m.SuctionDrag.magnitude(-vn) * f.Area)
	}

	if speed := tangent.Len(); speed > 0 {
		force = force.Add(tangent.Mul(-0.5 * m.FluidDensity * m.SkinDrag * f.Area * speed))
	}
	return force
}

// Accumulation is the net effect of a set of fragments on a body.
type Accumulation struct {
	Force  Vector
	Torque Vector

	Drag     Vector
	Pressure Vector
}

// Accumulate applies every fragment to body and returns the totals. The body
// must have had its forces reset by the caller.
func (m *ForceModel) Accumulate(body *Body, fragments []Fragment) Accumulation {
	var acc Accumulation
	for i := range fragments {
		f := &fragments[i]

		drag := m.DragForce(f, body.VelocityAtWorldPoint(f.Centroid))
		acc.Drag = acc.Drag.Add(drag)
		body.ApplyForceAtWorldPoint(drag, f.Centroid)

		if m.Pressure {
			p := m.PressureForce(f)
			acc.Pressure = acc.Pressure.Add(p)
			body.ApplyForceAtWorldPoint(p, f.Centroid)
		}
	}
	acc.Force = body.Force()
	acc.Torque = body.Torque()
	return acc
}

// Buoyancy is the displaced fluid weight of volume, pushing up at center.
func (m *ForceModel) Buoyancy(volume float64) Vector {
	return VectorUp.Mul(m.FluidDensity * m.Gravity * volume)
}
