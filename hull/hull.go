// Package hull builds 3D convex hulls of small point sets and integrates the
// enclosed volume. Hulls are built incrementally: an initial tetrahedron is
// grown one outside point at a time by replacing the faces that point can see
// with a fan of faces joined to the horizon.
package hull

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultPlaneDistanceTolerance is how far above a face plane a point must
	// be before it counts as outside. It is scaled by the size of the input.
	DefaultPlaneDistanceTolerance = 1e-10

	// StartingDeltaDotProductInSimplex bounds how aligned the third simplex
	// direction may be with the first edge before it is rejected as a seed.
	StartingDeltaDotProductInSimplex = 0.5

	// ConnectorTableSize is the bucket count of the edge connector table.
	ConnectorTableSize = 2017
)

// Face is a triangle of a finished hull. Vertices index the point set the
// hull was built from and wind counter-clockwise seen from outside.
type Face struct {
	Vertices [3]int
	Normal   mgl64.Vec3
	Offset   float64
}

// Distance is the signed distance of p above the face plane.
func (f Face) Distance(p mgl64.Vec3) float64 {
	return f.Normal.Dot(p) + f.Offset
}

type Hull struct {
	Points    []mgl64.Vec3
	Faces     []Face
	Tolerance float64
}

type options struct {
	tolerance float64
}

type Option func(*options)

// WithPlaneDistanceTolerance replaces the size scaled default tolerance.
func WithPlaneDistanceTolerance(tol float64) Option {
	return func(o *options) {
		o.tolerance = tol
	}
}

// face is the working form of a hull triangle. adj[i] is the face across the
// edge v[i] -> v[(i+1)%3].
type face struct {
	v      [3]int
	normal mgl64.Vec3
	offset float64
	adj    [3]*face

	outside      []int
	furthest     int
	furthestDist float64

	visible bool
	dead    bool
}

func (f *face) distance(p mgl64.Vec3) float64 {
	return f.normal.Dot(p) + f.offset
}

func (f *face) addOutside(i int, dist float64) {
	if len(f.outside) == 0 || dist > f.furthestDist {
		f.furthest = i
		f.furthestDist = dist
	}
	f.outside = append(f.outside, i)
}

type horizonEdge struct {
	a, b  int
	outer *face
}

type builder struct {
	points []mgl64.Vec3
	tol    float64

	faces      []*face
	pending    []*face
	connectors connectorTable

	visible []*face
	horizon []horizonEdge
	created []*face
	orphans []int
}

// Build computes the convex hull of points. It fails with a
// *DegenerateInputError when fewer than four affinely independent points
// remain after merging points closer than the tolerance.
func Build(points []mgl64.Vec3, opts ...Option) (*Hull, error) {
	if len(points) < 4 {
		return nil, &DegenerateInputError{Points: len(points), Reason: "need at least 4 points"}
	}

	o := options{tolerance: scaledTolerance(points)}
	for _, opt := range opts {
		opt(&o)
	}

	b := &builder{points: points, tol: o.tolerance}
	unique := b.dedupe()
	if len(unique) < 4 {
		return nil, &DegenerateInputError{Points: len(unique), Reason: "fewer than 4 distinct points"}
	}

	simplex, err := b.initialSimplex(unique)
	if err != nil {
		return nil, err
	}
	b.buildSimplex(simplex)

	used := map[int]bool{simplex[0]: true, simplex[1]: true, simplex[2]: true, simplex[3]: true}
	for _, i := range unique {
		if !used[i] {
			b.assign(i, b.faces)
		}
	}
	for _, f := range b.faces {
		if len(f.outside) > 0 {
			b.pending = append(b.pending, f)
		}
	}

	for len(b.pending) > 0 {
		f := b.pending[len(b.pending)-1]
		b.pending = b.pending[:len(b.pending)-1]
		if f.dead || len(f.outside) == 0 {
			continue
		}
		if err := b.addPoint(f, f.furthest); err != nil {
			return nil, err
		}
	}

	return b.finish(), nil
}

// scaledTolerance grows the plane tolerance with the magnitude of the input
// so large coordinates are not held to an absolute 1e-10.
func scaledTolerance(points []mgl64.Vec3) float64 {
	scale := 1.0
	for _, p := range points {
		for _, c := range p {
			scale = math.Max(scale, math.Abs(c))
		}
	}
	return DefaultPlaneDistanceTolerance * scale
}

// dedupe returns the indices of points that are not within tolerance of an
// earlier point.
func (b *builder) dedupe() []int {
	tol2 := b.tol * b.tol
	unique := make([]int, 0, len(b.points))
	for i, p := range b.points {
		dup := false
		for _, j := range unique {
			if p.Sub(b.points[j]).LenSqr() <= tol2 {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, i)
		}
	}
	return unique
}

func (b *builder) initialSimplex(unique []int) ([4]int, error) {
	var simplex [4]int
	pts := b.points

	// axis extremes
	extremes := make([]int, 0, 6)
	for axis := 0; axis < 3; axis++ {
		lo, hi := unique[0], unique[0]
		for _, i := range unique {
			if pts[i][axis] < pts[lo][axis] {
				lo = i
			}
			if pts[i][axis] > pts[hi][axis] {
				hi = i
			}
		}
		extremes = append(extremes, lo, hi)
	}

	best := -1.0
	for x := 0; x < len(extremes); x++ {
		for y := x + 1; y < len(extremes); y++ {
			d := pts[extremes[x]].Sub(pts[extremes[y]]).LenSqr()
			if d > best {
				best = d
				simplex[0], simplex[1] = extremes[x], extremes[y]
			}
		}
	}
	if math.Sqrt(best) <= b.tol {
		return simplex, &DegenerateInputError{Points: len(unique), Reason: "all points coincide"}
	}

	a := pts[simplex[0]]
	axis := pts[simplex[1]].Sub(a).Normalize()

	// Prefer seeds that leave the first edge at a wide angle; fall back to
	// the farthest point of any direction.
	best = -1.0
	wideBest := -1.0
	wide := -1
	for _, i := range unique {
		if i == simplex[0] || i == simplex[1] {
			continue
		}
		r := pts[i].Sub(a)
		d := r.Cross(axis).Len()
		if d > best {
			best = d
			simplex[2] = i
		}
		if l := r.Len(); l > 0 && math.Abs(r.Dot(axis))/l < StartingDeltaDotProductInSimplex && d > wideBest {
			wideBest = d
			wide = i
		}
	}
	if best <= b.tol {
		return simplex, &DegenerateInputError{Points: len(unique), Reason: "all points are collinear"}
	}
	if wide >= 0 && wideBest > b.tol && wideBest > 0.5*best {
		simplex[2] = wide
	}

	n := pts[simplex[1]].Sub(a).Cross(pts[simplex[2]].Sub(a)).Normalize()
	best = -1.0
	for _, i := range unique {
		if i == simplex[0] || i == simplex[1] || i == simplex[2] {
			continue
		}
		d := math.Abs(pts[i].Sub(a).Dot(n))
		if d > best {
			best = d
			simplex[3] = i
		}
	}
	if best <= b.tol {
		return simplex, &DegenerateInputError{Points: len(unique), Reason: "all points are coplanar"}
	}

	return simplex, nil
}

func (b *builder) newFace(v0, v1, v2 int) *face {
	f := &face{v: [3]int{v0, v1, v2}}
	b.plane(f)
	b.faces = append(b.faces, f)
	return f
}

func (b *builder) plane(f *face) {
	p0, p1, p2 := b.points[f.v[0]], b.points[f.v[1]], b.points[f.v[2]]
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	if l := n.Len(); l > 0 {
		n = n.Mul(1 / l)
	}
	f.normal = n
	f.offset = -n.Dot(p0)
}

func (b *builder) buildSimplex(s [4]int) {
	pts := b.points
	centroid := pts[s[0]].Add(pts[s[1]]).Add(pts[s[2]]).Add(pts[s[3]]).Mul(0.25)

	tris := [4][3]int{
		{s[0], s[1], s[2]},
		{s[0], s[3], s[1]},
		{s[1], s[3], s[2]},
		{s[2], s[3], s[0]},
	}
	for _, t := range tris {
		f := &face{v: t}
		b.plane(f)
		if f.distance(centroid) > 0 {
			f.v[1], f.v[2] = f.v[2], f.v[1]
			b.plane(f)
		}
		b.faces = append(b.faces, f)
	}
	for _, f := range b.faces {
		for e := 0; e < 3; e++ {
			b.connectors.Connect(f, e)
		}
	}
}

// assign puts point i in the outside set of the candidate face it is
// farthest above. Points above no face are inside the hull and dropped.
func (b *builder) assign(i int, candidates []*face) {
	p := b.points[i]
	var best *face
	bestDist := b.tol
	for _, f := range candidates {
		if f.dead {
			continue
		}
		if d := f.distance(p); d > bestDist {
			best = f
			bestDist = d
		}
	}
	if best != nil {
		best.addOutside(i, bestDist)
	}
}

func (b *builder) addPoint(start *face, pi int) error {
	p := b.points[pi]

	b.visible = b.visible[:0]
	b.horizon = b.horizon[:0]
	b.created = b.created[:0]
	b.orphans = b.orphans[:0]

	start.visible = true
	b.visible = append(b.visible, start)
	for i := 0; i < len(b.visible); i++ {
		f := b.visible[i]
		for _, n := range f.adj {
			if n.visible {
				continue
			}
			if n.distance(p) > b.tol {
				n.visible = true
				b.visible = append(b.visible, n)
			}
		}
	}

	for _, f := range b.visible {
		for e := 0; e < 3; e++ {
			if n := f.adj[e]; !n.visible {
				b.horizon = append(b.horizon, horizonEdge{a: f.v[e], b: f.v[(e+1)%3], outer: n})
			}
		}
	}

	for _, f := range b.visible {
		f.dead = true
		for _, i := range f.outside {
			if i != pi {
				b.orphans = append(b.orphans, i)
			}
		}
		f.outside = nil
	}

	for _, h := range b.horizon {
		nf := b.newFace(h.a, h.b, pi)
		nf.adj[0] = h.outer
		j := edgeIndex(h.outer, h.b, h.a)
		if j < 0 {
			return &InconsistentOrientationError{Reason: "horizon edge has no twin on the outer face"}
		}
		h.outer.adj[j] = nf
		b.connectors.Connect(nf, 1)
		b.connectors.Connect(nf, 2)
		b.created = append(b.created, nf)
	}
	if b.connectors.Count() != 0 {
		b.connectors.Reset()
		return &InconsistentOrientationError{Reason: "horizon is not a single closed loop"}
	}

	for _, i := range b.orphans {
		b.assign(i, b.created)
	}
	for _, f := range b.created {
		if len(f.outside) > 0 {
			b.pending = append(b.pending, f)
		}
	}
	return nil
}

func edgeIndex(f *face, a, b int) int {
	for e := 0; e < 3; e++ {
		if f.v[e] == a && f.v[(e+1)%3] == b {
			return e
		}
	}
	return -1
}

func (b *builder) finish() *Hull {
	h := &Hull{Points: b.points, Tolerance: b.tol}
	for _, f := range b.faces {
		if f.dead {
			continue
		}
		h.Faces = append(h.Faces, Face{Vertices: f.v, Normal: f.normal, Offset: f.offset})
	}
	return h
}

// VertexIndices returns the sorted distinct point indices used by faces.
func (h *Hull) VertexIndices() []int {
	seen := map[int]bool{}
	var indices []int
	for _, f := range h.Faces {
		for _, v := range f.Vertices {
			if !seen[v] {
				seen[v] = true
				indices = append(indices, v)
			}
		}
	}
	sort.Ints(indices)
	return indices
}

// Vertices returns the points on the hull.
func (h *Hull) Vertices() []mgl64.Vec3 {
	indices := h.VertexIndices()
	verts := make([]mgl64.Vec3, len(indices))
	for i, v := range indices {
		verts[i] = h.Points[v]
	}
	return verts
}

// Contains reports whether p is on or inside every face plane.
func (h *Hull) Contains(p mgl64.Vec3) bool {
	for _, f := range h.Faces {
		if f.Distance(p) > h.Tolerance {
			return false
		}
	}
	return true
}
