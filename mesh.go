package hydro

import "fmt"

// Triangle indexes three vertices of a Mesh. Normal and Area are cached when
// the mesh is built or transformed.
type Triangle struct {
	A, B, C int

	Normal Vector
	Area   float64
}

// Mesh is a triangulated closed hull. A body keeps its mesh in local space and
// derives a world space copy every step.
type Mesh struct {
	Verts     []Vector
	Triangles []Triangle

	bb BB
}

// NewMesh builds a mesh from counter-clockwise (outward facing) triangle
// indices. Zero area triangles are dropped.
func NewMesh(verts []Vector, indices []int) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("mesh: index count %d is not a multiple of 3", len(indices))
	}

	mesh := &Mesh{
		Verts:     append([]Vector(nil), verts...),
		Triangles: make([]Triangle, 0, len(indices)/3),
	}
	for i := 0; i < len(indices); i += 3 {
		tri := Triangle{A: indices[i], B: indices[i+1], C: indices[i+2]}
		for _, v := range [3]int{tri.A, tri.B, tri.C} {
			if v < 0 || v >= len(verts) {
				return nil, fmt.Errorf("mesh: triangle %d references vertex %d of %d", i/3, v, len(verts))
			}
		}
		if !mesh.cacheTriangle(&tri) {
			continue
		}
		mesh.Triangles = append(mesh.Triangles, tri)
	}
	if len(mesh.Triangles) == 0 {
		return nil, fmt.Errorf("mesh: no triangles with area")
	}

	mesh.bb = NewBBForPoints(mesh.Verts)
	return mesh, nil
}

// NewBoxMesh is a w x h x d box centered on the origin.
func NewBoxMesh(w, h, d float64) *Mesh {
	hw, hh, hd := w/2, h/2, d/2
	verts := []Vector{
		{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {-hw, hh, -hd},
		{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd},
	}
	indices := []int{
		0, 2, 1, 0, 3, 2, // back  -z
		4, 5, 6, 4, 6, 7, // front +z
		0, 1, 5, 0, 5, 4, // bottom -y
		3, 7, 6, 3, 6, 2, // top   +y
		0, 4, 7, 0, 7, 3, // left  -x
		1, 2, 6, 1, 6, 5, // right +x
	}
	mesh, err := NewMesh(verts, indices)
	if err != nil {
		panic(err)
	}
	return mesh
}

func (mesh *Mesh) cacheTriangle(tri *Triangle) bool {
	a, b, c := mesh.Verts[tri.A], mesh.Verts[tri.B], mesh.Verts[tri.C]
	tri.Area = TriangleArea(a, b, c)
	if tri.Area <= 0 {
		return false
	}
	tri.Normal = TriangleNormal(a, b, c)
	return true
}

func (mesh *Mesh) BB() BB {
	return mesh.bb
}

func (mesh *Mesh) Count() int {
	return len(mesh.Triangles)
}

// Vert returns the three corners of triangle i.
func (mesh *Mesh) Vert(i int) (Vector, Vector, Vector) {
	tri := mesh.Triangles[i]
	return mesh.Verts[tri.A], mesh.Verts[tri.B], mesh.Verts[tri.C]
}

// Transform returns a copy of the mesh with every vertex mapped by t. Topology
// is shared with the source, normals and areas are recomputed.
func (mesh *Mesh) Transform(t Transform) *Mesh {
	world := &Mesh{
		Verts:     make([]Vector, len(mesh.Verts)),
		Triangles: make([]Triangle, len(mesh.Triangles)),
	}
	for i, v := range mesh.Verts {
		world.Verts[i] = t.Point(v)
	}
	mirrored := t.Mirrors()
	for i, tri := range mesh.Triangles {
		if mirrored {
			tri.B, tri.C = tri.C, tri.B
		}
		world.cacheTriangle(&tri)
		world.Triangles[i] = tri
	}
	world.bb = NewBBForPoints(world.Verts)
	return world
}

// Volume of the closed mesh, by the divergence theorem.
func (mesh *Mesh) Volume() float64 {
	volume := 0.0
	for i := range mesh.Triangles {
		a, b, c := mesh.Vert(i)
		volume += a.Dot(b.Cross(c)) / 6
	}
	return volume
}
