package export

import (
	"bufio"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"
)

// svgScale is the drawing resolution in pixels per millimetre.
const svgScale = 10

const svgMarginMM = 2.0

// SVG writes a top view of the mesh: every upward-facing triangle projected
// onto the XY plane, SVG Y axis pointing down-page so +Y in model space is up
// on the drawing. Faces are emitted in mesh order, which keeps the file
// stable across runs.
func SVG(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	canvas := svg.New(w)

	b := m.Bounds()
	width := int(math.Ceil((b.Max.X - b.Min.X + 2*svgMarginMM) * svgScale))
	height := int(math.Ceil((b.Max.Y - b.Min.Y + 2*svgMarginMM) * svgScale))
	px := func(x float64) int { return int(math.Round((x - b.Min.X + svgMarginMM) * svgScale)) }
	py := func(y float64) int { return int(math.Round((b.Max.Y - y + svgMarginMM) * svgScale)) }

	canvas.Start(width, height)
	style := "fill:#d0d0d0;stroke:#404040;stroke-width:1"
	for _, face := range m.Faces {
		_, _, nz := m.normal32(face)
		if nz <= 0 {
			continue
		}
		xs := make([]int, 3)
		ys := make([]int, 3)
		for i, vi := range face {
			xs[i] = px(m.Vertices[vi].X)
			ys[i] = py(m.Vertices[vi].Y)
		}
		canvas.Polygon(xs, ys, style)
	}
	canvas.End()

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
