package hydro

// WaterDataProvider supplies the water surface. Heights are world space y
// values of the surface above (or below) the point.
type WaterDataProvider interface {
	SampleHeight(p Vector) float64
	SampleVelocity(p Vector) Vector
}

// BatchWaterDataProvider is implemented by providers that answer many points
// in one call. When present, a step issues a single call per quantity.
type BatchWaterDataProvider interface {
	WaterDataProvider
	SampleHeights(points []Vector, heights []float64)
	SampleVelocities(points []Vector, velocities []Vector)
}

// FlatWater is a still, level surface.
type FlatWater struct {
	Height   float64
	Velocity Vector
}

func (w FlatWater) SampleHeight(p Vector) float64 {
	return w.Height
}

func (w FlatWater) SampleVelocity(p Vector) Vector {
	return w.Velocity
}

// WaterSample is the water state at one point for one evaluation.
type WaterSample struct {
	Height   float64
	Velocity Vector
}

// TrianglePoints are the local corners of one triangle and the transform that
// places them in the world.
type TrianglePoints struct {
	P0, P1, P2   Vector
	LocalToWorld Transform
}

// WaterQuery applies the sampling policy on top of a provider.
type WaterQuery struct {
	Provider WaterDataProvider
	Settings WaterSettings
}

// samplePoints returns the world points to query for tris: one centroid per
// triangle when grouping, three corners otherwise.
func (q *WaterQuery) samplePoints(tris []TrianglePoints) []Vector {
	if q.Settings.GroupQueries {
		points := make([]Vector, len(tris))
		for i, tri := range tris {
			points[i] = tri.LocalToWorld.Point(TriangleCentroid(tri.P0, tri.P1, tri.P2))
		}
		return points
	}

	points := make([]Vector, 3*len(tris))
	for i, tri := range tris {
		points[3*i] = tri.LocalToWorld.Point(tri.P0)
		points[3*i+1] = tri.LocalToWorld.Point(tri.P1)
		points[3*i+2] = tri.LocalToWorld.Point(tri.P2)
	}
	return points
}

// SampleHeights fills out with the water height at each triangle corner.
func (q *WaterQuery) SampleHeights(tris []TrianglePoints, out [][3]float64) {
	assertHard(len(out) >= len(tris), "Height buffer is shorter than the triangle list")

	if q.Provider == nil || !q.Settings.QueryHeights {
		h := q.Settings.DefaultHeight
		for i := range tris {
			out[i] = [3]float64{h, h, h}
		}
		return
	}

	points := q.samplePoints(tris)
	heights := make([]float64, len(points))
	if batch, ok := q.Provider.(BatchWaterDataProvider); ok {
		batch.SampleHeights(points, heights)
	} else {
		for i, p := range points {
			heights[i] = q.Provider.SampleHeight(p)
		}
	}

	offset := q.Settings.HeightOffset
	for i := range tris {
		if q.Settings.GroupQueries {
			h := heights[i] + offset
			out[i] = [3]float64{h, h, h}
		} else {
			out[i] = [3]float64{heights[3*i] + offset, heights[3*i+1] + offset, heights[3*i+2] + offset}
		}
	}
}

// SampleVelocities fills out with the water velocity at each triangle corner.
func (q *WaterQuery) SampleVelocities(tris []TrianglePoints, out [][3]Vector) {
	assertHard(len(out) >= len(tris), "Velocity buffer is shorter than the triangle list")

	if q.Provider == nil || !q.Settings.QueryVelocities {
		for i := range tris {
			out[i] = [3]Vector{}
		}
		return
	}

	points := q.samplePoints(tris)
	velocities := make([]Vector, len(points))
	if batch, ok := q.Provider.(BatchWaterDataProvider); ok {
		batch.SampleVelocities(points, velocities)
	} else {
		for i, p := range points {
			velocities[i] = q.Provider.SampleVelocity(p)
		}
	}

	for i := range tris {
		if q.Settings.GroupQueries {
			v := velocities[i]
			out[i] = [3]Vector{v, v, v}
		} else {
			out[i] = [3]Vector{velocities[3*i], velocities[3*i+1], velocities[3*i+2]}
		}
	}
}

// TriangleWater is the sampled water at the three corners of one triangle.
type TriangleWater [3]WaterSample

// SampleMesh samples the water at every triangle of a local space mesh placed
// by localToWorld.
func (q *WaterQuery) SampleMesh(mesh *Mesh, localToWorld Transform, out []TriangleWater) {
	// corners follow the world winding, which Mesh.Transform flips for mirrors
	mirrored := localToWorld.Mirrors()
	tris := make([]TrianglePoints, mesh.Count())
	for i := range tris {
		p0, p1, p2 := mesh.Vert(i)
		if mirrored {
			p1, p2 = p2, p1
		}
		tris[i] = TrianglePoints{P0: p0, P1: p1, P2: p2, LocalToWorld: localToWorld}
	}

	heights := make([][3]float64, len(tris))
	velocities := make([][3]Vector, len(tris))
	q.SampleHeights(tris, heights)
	q.SampleVelocities(tris, velocities)

	for i := range tris {
		for k := 0; k < 3; k++ {
			out[i][k] = WaterSample{Height: heights[i][k], Velocity: velocities[i][k]}
		}
	}
}
