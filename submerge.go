package hydro

// Submersion tags how much of a triangle is under water.
type Submersion int

const (
	SubmersionDry Submersion = iota
	SubmersionFull
	SubmersionPartial
)

func (s Submersion) String() string {
	switch s {
	case SubmersionDry:
		return "Dry"
	case SubmersionFull:
		return "Full"
	case SubmersionPartial:
		return "Partial"
	}
	return "Submersion(?)"
}

// SubmersionResult is the part of one triangle at or below the water surface.
// Polygon keeps the winding of the source triangle; Heights holds the water
// height above each polygon corner.
type SubmersionResult struct {
	State Submersion

	Count   int
	Polygon [4]Vector
	Heights [4]float64

	Area     float64
	Fraction float64
}

// Depths returns how far each polygon corner is below the surface.
func (r *SubmersionResult) Depths() [4]float64 {
	var d [4]float64
	for i := 0; i < r.Count; i++ {
		d[i] = r.Heights[i] - r.Polygon[i][1]
	}
	return d
}

// ClassifyTriangle clips triangle p0 p1 p2 against a water surface whose
// height above each corner is h0 h1 h2. A corner exactly on the surface counts
// as submerged. Inputs must be finite.
func ClassifyTriangle(p0, p1, p2 Vector, h0, h1, h2 float64) SubmersionResult {
	verts := [3]Vector{p0, p1, p2}
	heights := [3]float64{h0, h1, h2}

	// distance above the surface
	var dist [3]float64
	wet := 0
	for i := range verts {
		dist[i] = verts[i][1] - heights[i]
		if dist[i] <= 0 {
			wet++
		}
	}

	var r SubmersionResult
	switch wet {
	case 0:
		return r
	case 3:
		r.State = SubmersionFull
		r.Count = 3
		copy(r.Polygon[:], verts[:])
		copy(r.Heights[:], heights[:])
		r.Area = TriangleArea(p0, p1, p2)
		r.Fraction = 1
		return r
	}

	j := 2
	for i := 0; i < 3; i++ {
		a, b := verts[j], verts[i]
		da, db := dist[j], dist[i]

		// crossing strictly between a dry and a wet corner
		if (da > 0 && db < 0) || (da < 0 && db > 0) {
			t := da / (da - db)
			r.Polygon[r.Count] = LerpVector(a, b, t)
			r.Heights[r.Count] = Lerp(heights[j], heights[i], t)
			r.Count++
		}
		if db <= 0 {
			r.Polygon[r.Count] = b
			r.Heights[r.Count] = heights[i]
			r.Count++
		}
		j = i
	}
	assertHard(r.Count <= 4, "Clipped triangle has more than 4 corners")

	r.Area = AreaForPoly(r.Count, r.Polygon[:])
	if r.Count < 3 || r.Area <= 0 {
		// only a corner or an edge touches the surface
		return SubmersionResult{}
	}

	r.State = SubmersionPartial
	full := TriangleArea(p0, p1, p2)
	if full > 0 {
		r.Fraction = Clamp01(r.Area / full)
	}
	return r
}

// ClassifyTriangles classifies every triangle of a world space mesh. Triangles
// marked in skip are reported dry.
func ClassifyTriangles(world *Mesh, water []TriangleWater, skip []bool, out []SubmersionResult) {
	for i := range world.Triangles {
		if skip != nil && skip[i] {
			out[i] = SubmersionResult{}
			continue
		}
		p0, p1, p2 := world.Vert(i)
		w := water[i]
		out[i] = ClassifyTriangle(p0, p1, p2, w[0].Height, w[1].Height, w[2].Height)
	}
}
