package hydro

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector is a double precision 3D point or direction.
type Vector = mgl64.Vec3

const INFINITY = math.MaxFloat64

var VectorUp = Vector{0, 1, 0}

func Lerp(f1, f2, t float64) float64 {
	return f1*(1.0-t) + f2*t
}

func LerpVector(a, b Vector, t float64) Vector {
	return a.Mul(1.0 - t).Add(b.Mul(t))
}

func Clamp01(f float64) float64 {
	return math.Max(0, math.Min(f, 1))
}

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func Normalize(v Vector) Vector {
	l := v.Len()
	if l == 0 {
		return Vector{}
	}
	return v.Mul(1.0 / l)
}

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func IsFiniteVector(v Vector) bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}

// TriangleArea is half the length of the edge cross product.
func TriangleArea(a, b, c Vector) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Len() * 0.5
}

func TriangleCentroid(a, b, c Vector) Vector {
	return a.Add(b).Add(c).Mul(1.0 / 3.0)
}

// TriangleNormal follows the counter-clockwise winding of a, b, c.
func TriangleNormal(a, b, c Vector) Vector {
	return Normalize(b.Sub(a).Cross(c.Sub(a)))
}
