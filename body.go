package hydro

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Body is a rigid body floating in the water. The integrator that moves it
// lives elsewhere; a Body carries the state a step reads and the forces a step
// writes.
type Body struct {
	id uuid.UUID

	mesh *Mesh

	// position, rotation and scale of the local frame
	p     Vector
	rot   mgl64.Quat
	scale Vector

	// center of gravity in local coordinates
	cog Vector

	// velocity and angular velocity (radians per second, world axes)
	v Vector
	w Vector

	// accumulated force and torque
	f Vector
	t Vector

	transform Transform

	space  *Space
	result StepResult
}

func (b *Body) String() string {
	return fmt.Sprint("Body ", b.id)
}

func NewBody(mesh *Mesh) *Body {
	body := &Body{
		id:    uuid.New(),
		mesh:  mesh,
		rot:   mgl64.QuatIdent(),
		scale: Vector{1, 1, 1},
	}
	if mesh != nil {
		body.cog = mesh.BB().Center()
	}
	body.updateTransform()
	return body
}

func (body *Body) ID() uuid.UUID {
	return body.id
}

func (body *Body) Mesh() *Mesh {
	return body.mesh
}

func (body *Body) Space() *Space {
	return body.space
}

func (body *Body) updateTransform() {
	body.transform = NewTransformTRS(body.p, body.rot, body.scale)
}

func (body *Body) Transform() Transform {
	return body.transform
}

func (body *Body) Position() Vector {
	return body.p
}

func (body *Body) SetPosition(position Vector) {
	body.p = position
	body.updateTransform()
}

func (body *Body) Rotation() mgl64.Quat {
	return body.rot
}

func (body *Body) SetRotation(rotation mgl64.Quat) {
	body.rot = rotation.Normalize()
	body.updateTransform()
}

func (body *Body) Scale() Vector {
	return body.scale
}

func (body *Body) SetScale(scale Vector) {
	assertHard(scale[0] != 0 && scale[1] != 0 && scale[2] != 0, "Body scale must be non-zero")
	body.scale = scale
	body.updateTransform()
}

func (body *Body) CenterOfGravity() Vector {
	return body.cog
}

func (body *Body) SetCenterOfGravity(cog Vector) {
	body.cog = cog
}

func (body *Body) WorldCenterOfGravity() Vector {
	return body.transform.Point(body.cog)
}

func (body *Body) Velocity() Vector {
	return body.v
}

func (body *Body) SetVelocity(x, y, z float64) {
	body.v = Vector{x, y, z}
}

func (body *Body) SetVelocityVector(v Vector) {
	body.v = v
}

func (body *Body) AngularVelocity() Vector {
	return body.w
}

func (body *Body) SetAngularVelocity(angularVelocity Vector) {
	body.w = angularVelocity
}

func (body *Body) Force() Vector {
	return body.f
}

func (body *Body) Torque() Vector {
	return body.t
}

func (body *Body) ResetForces() {
	body.f = Vector{}
	body.t = Vector{}
}

// Result is what the last step computed for this body.
func (body *Body) Result() StepResult {
	return body.result
}

func (body *Body) WorldToLocal(point Vector) Vector {
	return body.transform.Inverse().Point(point)
}

func (body *Body) LocalToWorld(point Vector) Vector {
	return body.transform.Point(point)
}

func (body *Body) ApplyForceAtWorldPoint(force, point Vector) {
	body.f = body.f.Add(force)

	r := point.Sub(body.WorldCenterOfGravity())
	body.t = body.t.Add(r.Cross(force))
}

func (body *Body) ApplyForceAtLocalPoint(force, point Vector) {
	body.ApplyForceAtWorldPoint(body.transform.Vect(force), body.transform.Point(point))
}

func (body *Body) VelocityAtLocalPoint(point Vector) Vector {
	return body.VelocityAtWorldPoint(body.transform.Point(point))
}

func (body *Body) VelocityAtWorldPoint(point Vector) Vector {
	r := point.Sub(body.WorldCenterOfGravity())
	return body.v.Add(body.w.Cross(r))
}
