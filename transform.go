package hydro

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is an affine local-to-world transform.
type Transform struct {
	m mgl64.Mat4
}

func NewTransformIdentity() Transform {
	return Transform{mgl64.Ident4()}
}

func NewTransformTranslate(translate Vector) Transform {
	return Transform{mgl64.Translate3D(translate[0], translate[1], translate[2])}
}

func NewTransformScale(scaleX, scaleY, scaleZ float64) Transform {
	return Transform{mgl64.Scale3D(scaleX, scaleY, scaleZ)}
}

func NewTransformRotate(rotation mgl64.Quat) Transform {
	return Transform{rotation.Normalize().Mat4()}
}

// NewTransformTRS composes scale, then rotation, then translation.
func NewTransformTRS(translate Vector, rotation mgl64.Quat, scale Vector) Transform {
	t := mgl64.Translate3D(translate[0], translate[1], translate[2])
	r := rotation.Normalize().Mat4()
	s := mgl64.Scale3D(scale[0], scale[1], scale[2])
	return Transform{t.Mul4(r).Mul4(s)}
}

func (t Transform) Matrix() mgl64.Mat4 {
	return t.m
}

// Mirrors reports whether t flips handedness, which reverses triangle winding.
func (t Transform) Mirrors() bool {
	return t.m.Mat3().Det() < 0
}

func (t Transform) Inverse() Transform {
	return Transform{t.m.Inv()}
}

func (t Transform) Point(p Vector) Vector {
	return t.m.Mul4x1(p.Vec4(1)).Vec3()
}

func (t Transform) Vect(v Vector) Vector {
	return t.m.Mul4x1(v.Vec4(0)).Vec3()
}

// Normal maps a surface normal with the inverse transpose, so non-uniform
// scale keeps it perpendicular to the surface.
func (t Transform) Normal(n Vector) Vector {
	it := t.m.Mat3().Inv().Transpose()
	return Normalize(it.Mul3x1(n))
}

func (t Transform) BB(bb BB) BB {
	c := t.Point(bb.Center())
	h := bb.Extents()
	m := t.m.Mat3()

	var e Vector
	for row := 0; row < 3; row++ {
		e[row] = math.Abs(m.At(row, 0))*h[0] + math.Abs(m.At(row, 1))*h[1] + math.Abs(m.At(row, 2))*h[2]
	}
	return NewBBForExtents(c, e[0], e[1], e[2])
}
