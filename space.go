package hydro

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jakecoffman/hydro/hull"
	"golang.org/x/sync/errgroup"
)

// StepResult is the output of one body for one step.
type StepResult struct {
	// submerged volume and the centroid buoyancy acts through
	Volume        float64
	BuoyantCenter Vector

	// net force and torque about the world center of gravity
	Force  Vector
	Torque Vector

	Buoyancy Vector
	Drag     Vector

	SubmergedArea float64
	Submerged     int

	// non fatal problems, such as *InvalidSampleError
	Diagnostics []error

	// set when the result was zeroed
	Err error
}

type Space struct {
	Settings Settings
	Water    WaterDataProvider
	Logger   *slog.Logger

	stamp  uint
	bodies []*Body
}

func NewSpace(water WaterDataProvider, settings Settings) *Space {
	return &Space{
		Settings: settings,
		Water:    water,
	}
}

func (space *Space) logger() *slog.Logger {
	if space.Logger != nil {
		return space.Logger
	}
	return slog.Default()
}

func (space *Space) Stamp() uint {
	return space.stamp
}

func (space *Space) AddBody(body *Body) *Body {
	assertHard(body.space == nil, "This body is already added to a space and cannot be added to another.")
	body.space = space
	space.bodies = append(space.bodies, body)
	return body
}

func (space *Space) RemoveBody(body *Body) {
	assertHard(body.space == space, "Cannot remove a body that was not added to the space.")
	for i, b := range space.bodies {
		if b == body {
			// leak-free delete from slice
			last := len(space.bodies) - 1
			copy(space.bodies[i:], space.bodies[i+1:])
			space.bodies[last] = nil
			space.bodies = space.bodies[:last]
			break
		}
	}
	body.space = nil
}

func (space *Space) EachBody(f func(*Body)) {
	for _, body := range space.bodies {
		f(body)
	}
}

func (space *Space) ContainsBody(body *Body) bool {
	return body.space == space
}

// Step evaluates every body against the current water. Bodies are independent
// and run in parallel; results are stored on each body and returned in the
// order bodies were added.
func (space *Space) Step() []StepResult {
	space.stamp++

	results := make([]StepResult, len(space.bodies))
	var g errgroup.Group
	g.SetLimit(space.Settings.workers())
	for i, body := range space.bodies {
		i, body := i, body
		g.Go(func() error {
			results[i] = space.evaluateIsolated(body)
			body.result = results[i]
			return nil
		})
	}
	// bodies never return an error; failures travel in StepResult.Err
	g.Wait()
	return results
}

// evaluateIsolated keeps a panic in one body's pipeline from taking down the
// rest of the step.
func (space *Space) evaluateIsolated(body *Body) (result StepResult) {
	defer func() {
		if r := recover(); r != nil {
			body.ResetForces()
			result = StepResult{Err: fmt.Errorf("body %v: %v", body.id, r)}
			space.logger().Error("body evaluation panicked", "body", body.id, "panic", r)
		}
	}()
	return space.Evaluate(body)
}

// Evaluate computes the submerged volume and water forces for one body. It
// only reads the space, so bodies may be evaluated concurrently.
func (space *Space) Evaluate(body *Body) StepResult {
	body.ResetForces()
	result := StepResult{BuoyantCenter: body.WorldCenterOfGravity()}

	mesh := body.mesh
	if mesh == nil || mesh.Count() == 0 {
		return result
	}
	log := space.logger().With("body", body.id, "triangles", mesh.Count())

	world := mesh.Transform(body.transform)

	query := WaterQuery{Provider: space.Water, Settings: space.Settings.Water}
	water := make([]TriangleWater, mesh.Count())
	query.SampleMesh(mesh, body.transform, water)

	skip := make([]bool, mesh.Count())
	result.Diagnostics = validateSamples(water, skip)
	for _, err := range result.Diagnostics {
		log.Warn("skipping triangle", "err", err)
	}

	if isDry(world, water, skip) {
		return result
	}

	classified := make([]SubmersionResult, mesh.Count())
	ClassifyTriangles(world, water, skip, classified)

	fragments := make([]Fragment, 0, mesh.Count())
	points := make([]Vector, 0, 4*mesh.Count())
	var areaCenter Vector
	for i := range classified {
		r := &classified[i]
		if r.State == SubmersionDry {
			continue
		}
		f := NewFragment(i, world.Triangles[i], r, water[i])
		fragments = append(fragments, f)
		points = append(points, r.Polygon[:r.Count]...)

		result.SubmergedArea += f.Area
		areaCenter = areaCenter.Add(f.Centroid.Mul(f.Area))
	}
	result.Submerged = len(fragments)
	if len(fragments) == 0 {
		return result
	}
	areaCenter = areaCenter.Mul(1 / result.SubmergedArea)

	volume, center, err := submergedVolume(points)
	var degenerate *DegenerateInputError
	switch {
	case errors.As(err, &degenerate):
		log.Debug("submerged region has no volume", "err", err)
		volume, center = 0, areaCenter
	case err != nil:
		return space.fail(body, log, result, err)
	}
	result.Volume = volume
	result.BuoyantCenter = center

	model := space.Settings.forceModel()
	acc := model.Accumulate(body, fragments)
	result.Drag = acc.Drag
	result.Buoyancy = acc.Pressure
	if !model.Pressure && volume > 0 {
		result.Buoyancy = model.Buoyancy(volume)
		body.ApplyForceAtWorldPoint(result.Buoyancy, center)
	}
	result.Force = body.Force()
	result.Torque = body.Torque()

	if !IsFiniteVector(result.Force) || !IsFiniteVector(result.Torque) ||
		!IsFinite(result.Volume) || !IsFiniteVector(result.BuoyantCenter) {
		return space.fail(body, log, result, &InconsistentOrientationError{Reason: "non-finite force result"})
	}
	return result
}

// isDry is true when the whole body is above the highest sampled surface.
func isDry(world *Mesh, water []TriangleWater, skip []bool) bool {
	top := -INFINITY
	for i, w := range water {
		if skip[i] {
			continue
		}
		for _, s := range w {
			if s.Height > top {
				top = s.Height
			}
		}
	}
	return world.BB().Min[1] > top
}

func submergedVolume(points []Vector) (float64, Vector, error) {
	h, err := hull.Build(points)
	if err != nil {
		return 0, Vector{}, err
	}
	if err := h.Validate(); err != nil {
		return 0, Vector{}, err
	}
	return h.VolumeCentroid()
}

// fail zeroes the body's contribution for the step.
func (space *Space) fail(body *Body, log *slog.Logger, result StepResult, err error) StepResult {
	log.Error("discarding water forces", "err", err)
	body.ResetForces()
	return StepResult{
		BuoyantCenter: body.WorldCenterOfGravity(),
		SubmergedArea: result.SubmergedArea,
		Submerged:     result.Submerged,
		Diagnostics:   result.Diagnostics,
		Err:           err,
	}
}
