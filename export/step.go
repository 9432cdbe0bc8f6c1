package export

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// STEP writes the mesh as an ISO 10303-21 AP214 file: one planar
// ADVANCED_FACE per triangle under a MANIFOLD_SOLID_BREP, vertices shared
// through the welded index. No timestamp goes into the header so repeated
// exports are byte-identical.
func STEP(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := &stepWriter{bw: bufio.NewWriter(f)}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	w.raw("ISO-10303-21;\nHEADER;\n")
	w.raw("FILE_DESCRIPTION((''),'2;1');\n")
	w.raw("FILE_NAME('%s','',(''),(''),'','','');\n", name)
	w.raw("FILE_SCHEMA(('AUTOMOTIVE_DESIGN { 1 0 10303 214 1 1 1 1 }'));\n")
	w.raw("ENDSEC;\nDATA;\n")

	appCtx := w.entity("APPLICATION_CONTEXT('core data for automotive mechanical design processes')")
	w.entity("APPLICATION_PROTOCOL_DEFINITION('international standard','automotive_design',2000,#%d)", appCtx)
	prodCtx := w.entity("PRODUCT_CONTEXT('',#%d,'mechanical')", appCtx)
	prod := w.entity("PRODUCT('%s','%s','',(#%d))", name, name, prodCtx)
	formation := w.entity("PRODUCT_DEFINITION_FORMATION('','',#%d)", prod)
	defCtx := w.entity("PRODUCT_DEFINITION_CONTEXT('part definition',#%d,'design')", appCtx)
	pdef := w.entity("PRODUCT_DEFINITION('design','',#%d,#%d)", formation, defCtx)
	pshape := w.entity("PRODUCT_DEFINITION_SHAPE('','',#%d)", pdef)

	lu := w.entity("(LENGTH_UNIT()NAMED_UNIT(*)SI_UNIT(.MILLI.,.METRE.))")
	au := w.entity("(NAMED_UNIT(*)PLANE_ANGLE_UNIT()SI_UNIT($,.RADIAN.))")
	su := w.entity("(NAMED_UNIT(*)SI_UNIT($,.STERADIAN.)SOLID_ANGLE_UNIT())")
	unc := w.entity("UNCERTAINTY_MEASURE_WITH_UNIT(LENGTH_MEASURE(1.E-03),#%d,'distance_accuracy_value','')", lu)
	geomCtx := w.entity("(GEOMETRIC_REPRESENTATION_CONTEXT(3)GLOBAL_UNCERTAINTY_ASSIGNED_CONTEXT((#%d))GLOBAL_UNIT_ASSIGNED_CONTEXT((#%d,#%d,#%d))REPRESENTATION_CONTEXT('',''))", unc, lu, au, su)

	points := make([]int, len(m.Vertices))
	for i, v := range m.Vertices {
		points[i] = w.entity("CARTESIAN_POINT('',(%s,%s,%s))", stepReal(v.X), stepReal(v.Y), stepReal(v.Z))
	}

	faces := make([]int, 0, len(m.Faces))
	for _, face := range m.Faces {
		a := m.Vertices[face[0]]
		b := m.Vertices[face[1]]
		c := m.Vertices[face[2]]
		nx, ny, nz, ok := unitNormal(
			b.X-a.X, b.Y-a.Y, b.Z-a.Z,
			c.X-a.X, c.Y-a.Y, c.Z-a.Z,
		)
		if !ok {
			continue
		}
		rx, ry, rz, _ := unit(b.X-a.X, b.Y-a.Y, b.Z-a.Z)

		axis := w.entity("DIRECTION('',(%s,%s,%s))", stepReal(nx), stepReal(ny), stepReal(nz))
		ref := w.entity("DIRECTION('',(%s,%s,%s))", stepReal(rx), stepReal(ry), stepReal(rz))
		place := w.entity("AXIS2_PLACEMENT_3D('',#%d,#%d,#%d)", points[face[0]], axis, ref)
		plane := w.entity("PLANE('',#%d)", place)
		loop := w.entity("POLY_LOOP('',(#%d,#%d,#%d))", points[face[0]], points[face[1]], points[face[2]])
		bound := w.entity("FACE_OUTER_BOUND('',#%d,.T.)", loop)
		faces = append(faces, w.entity("ADVANCED_FACE('',(#%d),#%d,.T.)", bound, plane))
	}

	refs := make([]string, len(faces))
	for i, id := range faces {
		refs[i] = fmt.Sprintf("#%d", id)
	}
	shell := w.entity("CLOSED_SHELL('',(%s))", strings.Join(refs, ","))
	brep := w.entity("MANIFOLD_SOLID_BREP('%s',#%d)", name, shell)

	origin := w.entity("CARTESIAN_POINT('',(0.,0.,0.))")
	zdir := w.entity("DIRECTION('',(0.,0.,1.))")
	xdir := w.entity("DIRECTION('',(1.,0.,0.))")
	place := w.entity("AXIS2_PLACEMENT_3D('',#%d,#%d,#%d)", origin, zdir, xdir)
	rep := w.entity("ADVANCED_BREP_SHAPE_REPRESENTATION('',(#%d,#%d),#%d)", brep, place, geomCtx)
	w.entity("SHAPE_DEFINITION_REPRESENTATION(#%d,#%d)", pshape, rep)

	w.raw("ENDSEC;\nEND-ISO-10303-21;\n")

	if w.err != nil {
		f.Close()
		return w.err
	}
	if err := w.bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// stepWriter numbers entities sequentially and carries a sticky error so
// callers only check once.
type stepWriter struct {
	bw  *bufio.Writer
	id  int
	err error
}

func (w *stepWriter) raw(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.bw, format, args...)
}

func (w *stepWriter) entity(format string, args ...any) int {
	w.id++
	w.raw("#%d="+format+";\n", append([]any{w.id}, args...)...)
	return w.id
}

// stepReal formats a real with the decimal point part 21 requires.
func stepReal(v float64) string {
	s := fmt.Sprintf("%.6G", v)
	if !strings.ContainsAny(s, ".E") {
		s += "."
	}
	return s
}

func unit(x, y, z float64) (ux, uy, uz float64, ok bool) {
	n := math.Sqrt(x*x + y*y + z*z)
	if n == 0 {
		return 0, 0, 0, false
	}
	return x / n, y / n, z / n, true
}

func unitNormal(ux, uy, uz, vx, vy, vz float64) (nx, ny, nz float64, ok bool) {
	return unit(uy*vz-uz*vy, uz*vx-ux*vz, ux*vy-uy*vx)
}
