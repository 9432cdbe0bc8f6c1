package export

import (
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
)

// PNG renders a shaded isometric preview of the mesh. The camera, light and
// palette are fixed so previews of the same mesh are identical.
func PNG(path string, m *Mesh) error {
	tris := make([]*fauxgl.Triangle, 0, len(m.Faces))
	for _, face := range m.Faces {
		a := m.Vertices[face[0]]
		b := m.Vertices[face[1]]
		c := m.Vertices[face[2]]
		tris = append(tris, fauxgl.NewTriangleForPoints(
			fauxgl.V(a.X, a.Y, a.Z),
			fauxgl.V(b.X, b.Y, b.Z),
			fauxgl.V(c.X, c.Y, c.Z),
		))
	}
	mesh := fauxgl.NewTriangleMesh(tris)

	const (
		width, height = 1280, 960
		scale         = 2 // supersampling, downsampled for antialiasing
		fovy          = 30
		near, far     = 1, 10
	)
	var (
		eye    = fauxgl.V(-2.5, -3.5, 2.5)
		center = fauxgl.V(0, 0, 0)
		up     = fauxgl.V(0, 0, 1)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)

	mesh.BiUnitCube()
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, near, far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor("#468966")
	context.Shader = shader
	context.DrawMesh(mesh)

	image := resize.Resize(width, height, context.Image(), resize.Bilinear)
	return fauxgl.SavePNG(path, image)
}
