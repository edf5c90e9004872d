package hydro

import "math"

// BB is an axis aligned bounding box.
type BB struct {
	Min, Max Vector
}

func NewBBForExtents(c Vector, hw, hh, hd float64) BB {
	return BB{
		Min: Vector{c[0] - hw, c[1] - hh, c[2] - hd},
		Max: Vector{c[0] + hw, c[1] + hh, c[2] + hd},
	}
}

// NewBBForPoints returns an inverted (empty) box when points is empty.
func NewBBForPoints(points []Vector) BB {
	bb := BB{
		Min: Vector{INFINITY, INFINITY, INFINITY},
		Max: Vector{-INFINITY, -INFINITY, -INFINITY},
	}
	for _, p := range points {
		bb = bb.Expand(p)
	}
	return bb
}

func (bb BB) Empty() bool {
	return bb.Min[0] > bb.Max[0] || bb.Min[1] > bb.Max[1] || bb.Min[2] > bb.Max[2]
}

func (a BB) Intersects(b BB) bool {
	return a.Min[0] <= b.Max[0] && b.Min[0] <= a.Max[0] &&
		a.Min[1] <= b.Max[1] && b.Min[1] <= a.Max[1] &&
		a.Min[2] <= b.Max[2] && b.Min[2] <= a.Max[2]
}

func (bb BB) Contains(other BB) bool {
	return bb.ContainsVect(other.Min) && bb.ContainsVect(other.Max)
}

func (bb BB) ContainsVect(v Vector) bool {
	return bb.Min[0] <= v[0] && bb.Max[0] >= v[0] &&
		bb.Min[1] <= v[1] && bb.Max[1] >= v[1] &&
		bb.Min[2] <= v[2] && bb.Max[2] >= v[2]
}

func (a BB) Merge(b BB) BB {
	return BB{
		Min: Vector{math.Min(a.Min[0], b.Min[0]), math.Min(a.Min[1], b.Min[1]), math.Min(a.Min[2], b.Min[2])},
		Max: Vector{math.Max(a.Max[0], b.Max[0]), math.Max(a.Max[1], b.Max[1]), math.Max(a.Max[2], b.Max[2])},
	}
}

func (bb BB) Expand(v Vector) BB {
	return BB{
		Min: Vector{math.Min(bb.Min[0], v[0]), math.Min(bb.Min[1], v[1]), math.Min(bb.Min[2], v[2])},
		Max: Vector{math.Max(bb.Max[0], v[0]), math.Max(bb.Max[1], v[1]), math.Max(bb.Max[2], v[2])},
	}
}

func (bb BB) Center() Vector {
	return LerpVector(bb.Min, bb.Max, 0.5)
}

// Extents are the half sizes along each axis.
func (bb BB) Extents() Vector {
	return bb.Max.Sub(bb.Min).Mul(0.5)
}

func (bb BB) Volume() float64 {
	d := bb.Max.Sub(bb.Min)
	return d[0] * d[1] * d[2]
}

func (bb BB) Offset(v Vector) BB {
	return BB{bb.Min.Add(v), bb.Max.Add(v)}
}
