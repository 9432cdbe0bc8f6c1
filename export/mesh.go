// Package export turns rendered solids into interchange files: binary STL
// for printing, faceted AP214 STEP for CAD, a top-view SVG drawing and a
// shaded PNG preview. All writers are deterministic: exporting the same
// solid twice produces byte-identical files.
package export

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/soypat/sdf"
	"github.com/soypat/sdf/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh with welded vertices. Vertex order
// follows first appearance in the renderer's triangle stream, so meshing the
// same solid at the same resolution always yields the same indexing.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][3]int
}

// vkey welds at float32 precision, the precision STL stores anyway.
type vkey [3]float32

// RenderMesh meshes the solid with the octree renderer at the given cell
// resolution and welds coincident vertices. Triangles that collapse under
// welding are dropped.
func RenderMesh(s sdf.SDF3, cells int) (*Mesh, error) {
	tris, err := render.RenderAll(render.NewOctreeRenderer(s, cells))
	if err != nil {
		return nil, err
	}
	m := &Mesh{
		Vertices: make([]r3.Vec, 0, len(tris)),
		Faces:    make([][3]int, 0, len(tris)),
	}
	index := make(map[vkey]int, len(tris))
	for _, t := range tris {
		var face [3]int
		for i, v := range t {
			k := vkey{float32(v.X), float32(v.Y), float32(v.Z)}
			j, ok := index[k]
			if !ok {
				j = len(m.Vertices)
				index[k] = j
				m.Vertices = append(m.Vertices, v)
			}
			face[i] = j
		}
		if face[0] == face[1] || face[1] == face[2] || face[2] == face[0] {
			continue
		}
		m.Faces = append(m.Faces, face)
	}
	return m, nil
}

// Bounds returns the axis aligned bounding box of the mesh vertices.
func (m *Mesh) Bounds() r3.Box {
	if len(m.Vertices) == 0 {
		return r3.Box{}
	}
	b := r3.Box{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b.Min = minElem(b.Min, v)
		b.Max = maxElem(b.Max, v)
	}
	return b
}

// normal32 is the face normal computed in float32, matching the precision
// the mesh was welded at. Zero for degenerate faces.
func (m *Mesh) normal32(f [3]int) (x, y, z float32) {
	a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
	ux, uy, uz := float32(b.X-a.X), float32(b.Y-a.Y), float32(b.Z-a.Z)
	vx, vy, vz := float32(c.X-a.X), float32(c.Y-a.Y), float32(c.Z-a.Z)
	x = uy*vz - uz*vy
	y = uz*vx - ux*vz
	z = ux*vy - uy*vx
	n := math32.Sqrt(x*x + y*y + z*z)
	if n == 0 {
		return 0, 0, 0
	}
	return x / n, y / n, z / n
}

func minElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

func maxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}
