package hydro

// Planar polygon helpers. Polygons are convex, counter-clockwise seen from
// their normal side, and small (clipped triangles have 3 or 4 corners).

// AreaForPoly sums the fan triangles of a convex planar polygon.
func AreaForPoly(count int, verts []Vector) float64 {
	if count < 3 {
		return 0
	}
	area := 0.0
	for i := 1; i < count-1; i++ {
		area += TriangleArea(verts[0], verts[i], verts[i+1])
	}
	return area
}

// CentroidForPoly is the area centroid. Degenerate polygons fall back to the
// average of their corners.
func CentroidForPoly(count int, verts []Vector) Vector {
	sum := 0.0
	var vsum Vector
	for i := 1; i < count-1; i++ {
		a := TriangleArea(verts[0], verts[i], verts[i+1])
		vsum = vsum.Add(TriangleCentroid(verts[0], verts[i], verts[i+1]).Mul(a))
		sum += a
	}
	if sum > 0 {
		return vsum.Mul(1 / sum)
	}

	var avg Vector
	for i := 0; i < count; i++ {
		avg = avg.Add(verts[i])
	}
	if count > 0 {
		avg = avg.Mul(1 / float64(count))
	}
	return avg
}

// AverageForPoly is the area weighted mean of a value that varies linearly
// across each fan triangle, such as water depth.
func AverageForPoly(count int, verts []Vector, values []float64) float64 {
	sum := 0.0
	vsum := 0.0
	for i := 1; i < count-1; i++ {
		a := TriangleArea(verts[0], verts[i], verts[i+1])
		vsum += a * (values[0] + values[i] + values[i+1]) / 3
		sum += a
	}
	if sum > 0 {
		return vsum / sum
	}

	avg := 0.0
	for i := 0; i < count; i++ {
		avg += values[i]
	}
	if count > 0 {
		avg /= float64(count)
	}
	return avg
}
