package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/soypat/sdf"
)

// Format is an output file format.
type Format string

const (
	FormatSTL  Format = "stl"
	FormatSTEP Format = "step"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
)

// ParseFormats parses a comma separated format list, e.g. "stl,step".
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		f := Format(part)
		switch f {
		case FormatSTL, FormatSTEP, FormatSVG, FormatPNG:
			out = append(out, f)
		default:
			return nil, fmt.Errorf("unknown format %q", part)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no formats in %q", s)
	}
	return out, nil
}

// Write exports the solid to dir under the given stem name, once per
// requested format. The mesh is rendered at most once and reused by the
// mesh-based writers; STL streams from its own renderer pass instead, which
// keeps it independent of welding.
func Write(dir, name string, s sdf.SDF3, cells int, formats []Format) error {
	var mesh *Mesh
	meshed := func() (*Mesh, error) {
		if mesh != nil {
			return mesh, nil
		}
		m, err := RenderMesh(s, cells)
		if err != nil {
			return nil, fmt.Errorf("mesh %s: %w", name, err)
		}
		logrus.WithFields(logrus.Fields{
			"solid":     name,
			"vertices":  len(m.Vertices),
			"triangles": len(m.Faces),
		}).Debug("solid meshed")
		mesh = m
		return mesh, nil
	}

	for _, f := range formats {
		path := filepath.Join(dir, name+"."+string(f))
		var err error
		switch f {
		case FormatSTL:
			err = STL(path, s, cells)
		case FormatSTEP:
			var m *Mesh
			if m, err = meshed(); err == nil {
				err = STEP(path, m)
			}
		case FormatSVG:
			var m *Mesh
			if m, err = meshed(); err == nil {
				err = SVG(path, m)
			}
		case FormatPNG:
			var m *Mesh
			if m, err = meshed(); err == nil {
				err = PNG(path, m)
			}
		}
		if err != nil {
			return fmt.Errorf("export %s: %w", path, err)
		}
		logrus.WithFields(logrus.Fields{"path": path, "format": f}).Info("wrote output")
	}
	return nil
}
