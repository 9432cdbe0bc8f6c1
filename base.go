package enclosure

import (
	"math"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form2/must2"
	"github.com/soypat/sdf/form3/must3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Base builds the enclosure base: the hollowed outer shell with connector
// apertures, mounting bosses, the alignment ledge, the snap-fit grooves, the
// pry slots and the DIN rail channel. The returned solid is immutable; the
// report records the executed stages and every fillet outcome.
//
// Stage order is load-bearing. The exterior rounding runs while the solid is
// still a plain box: its edge selection (vertical corners, bottom perimeter)
// is only unambiguous before booleans complicate the surface. The DIN
// channel is filleted as a sub-assembly and unioned last so its junction
// blend cannot disturb the wall cuts.
func Base(p Params) (sdf.SDF3, *BuildReport, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	d := p.Derive()
	cuts := BaseCutouts(d)
	if err := ValidateCutouts(d, cuts); err != nil {
		return nil, nil, err
	}

	report := &BuildReport{Solid: "base"}
	stages := []Stage{
		{Name: "shell", Apply: func(sdf.SDF3) (sdf.SDF3, error) {
			return baseShell(d, report), nil
		}},
		{Name: "cavity", Apply: func(s sdf.SDF3) (sdf.SDF3, error) {
			return sdf.Difference3D(s, baseCavity(d)), nil
		}},
		{Name: "mount-bosses", Apply: func(s sdf.SDF3) (sdf.SDF3, error) {
			return addBosses(d, s), nil
		}},
		{Name: "wall-apertures", Apply: func(s sdf.SDF3) (sdf.SDF3, error) {
			return cutFaces(d, s, cuts, FaceLeft, FaceRight, FaceFront, FaceBack), nil
		}},
		{Name: "mount-holes", Apply: func(s sdf.SDF3) (sdf.SDF3, error) {
			return cutFaces(d, s, cuts, FaceFloor), nil
		}},
		{Name: "alignment-ledge", Apply: func(s sdf.SDF3) (sdf.SDF3, error) {
			return sdf.Union3D(s, alignmentLedge(d)), nil
		}},
		{Name: "clip-grooves", Apply: func(s sdf.SDF3) (sdf.SDF3, error) {
			return cutClipGrooves(d, s), nil
		}},
		{Name: "pry-slots", Apply: func(s sdf.SDF3) (sdf.SDF3, error) {
			return cutPrySlots(d, s), nil
		}},
		{Name: "din-channel", Apply: func(s sdf.SDF3) (sdf.SDF3, error) {
			out, res := unionRound("din-channel", d.Fillet.DIN, d.DIN.HookThickness/2, s, DINChannel(d))
			report.recordFillet(res)
			return out, nil
		}},
	}
	s, err := runStages(report, stages)
	if err != nil {
		return nil, report, err
	}
	return s, report, nil
}

// baseShell is the outer box with the base wall height (the lid plate
// thickness is already split off the top). Vertical corners and the bottom
// perimeter carry the exterior rounding; the top rim stays sharp so the lid
// seats flat on it.
func baseShell(d Dimensions, report *BuildReport) sdf.SDF3 {
	h := d.OuterHeight - d.LidThickness
	limit := math.Min(math.Min(d.OuterLength, d.OuterWidth), h) / 2
	shape := func(r float64) sdf.SDF3 { return shellSolid(d, h, r) }
	s, res := filletSpec{
		op:      "base-exterior",
		target:  d.Fillet.Exterior,
		limit:   limit,
		round:   shape,
		chamfer: shape, // the shell is rebuilt from its profile; no chamfered profile form exists
		skip:    func() sdf.SDF3 { return shellSolid(d, h, 0) },
	}.apply()
	report.recordFillet(res)
	// Shift so the shell spans [-OuterHeight/2, BaseTopZ].
	return sdf.Transform3D(s, sdf.Translate3D(r3.Vec{Z: -d.LidThickness / 2}))
}

// shellSolid builds the shell centered at the origin with rounded vertical
// corners and rounded bottom edges, top edges sharp: the extrusion of the
// rounded profile keeps a sharp top and bottom, and intersecting it with a
// fully rounded box that pokes past the top by exactly r leaves only the
// bottom rounding behind.
func shellSolid(d Dimensions, h, r float64) sdf.SDF3 {
	size := r3.Vec{X: d.OuterLength, Y: d.OuterWidth, Z: h}
	if r == 0 {
		return must3.Box(size, 0)
	}
	prism := sdf.Extrude3D(must2.Box(r2.Vec{X: size.X, Y: size.Y}, r), h)
	rounded := sdf.Transform3D(
		must3.Box(r3.Vec{X: size.X, Y: size.Y, Z: h + r}, r),
		sdf.Translate3D(r3.Vec{Z: r / 2}),
	)
	return sdf.Intersect3D(prism, rounded)
}

// baseCavity hollows the shell down to the floor, piercing past the open top.
func baseCavity(d Dimensions) sdf.SDF3 {
	h := d.BaseTopZ - d.FloorZ + pierce
	c := must3.Box(r3.Vec{X: d.BoxLength, Y: d.BoxWidth, Z: h}, 0)
	return sdf.Transform3D(c, sdf.Translate3D(r3.Vec{Z: d.FloorZ + h/2}))
}

// addBosses raises the six board standoffs on the floor. The clearance
// through-holes are drilled in a later stage, after the wall apertures.
func addBosses(d Dimensions, s sdf.SDF3) sdf.SDF3 {
	m := d.Mount
	for _, hole := range m.Pattern {
		boss := sdf.Transform3D(must3.Cylinder(m.BossHeight+pierce, m.BossDiameter/2, 0), sdf.Translate3D(r3.Vec{
			X: hole.X - m.BoardLength/2,
			Y: hole.Y - m.BoardWidth/2,
			Z: d.FloorZ + (m.BossHeight-pierce)/2,
		}))
		s = sdf.Union3D(s, boss)
	}
	return s
}

// cutFaces subtracts every cutout belonging to the given faces, in table
// order.
func cutFaces(d Dimensions, s sdf.SDF3, cuts []Cutout, faces ...Face) sdf.SDF3 {
	for _, c := range cuts {
		for _, f := range faces {
			if c.Face == f {
				s = sdf.Difference3D(s, c.solid(d))
				break
			}
		}
	}
	return s
}

// alignmentLedge is the ring that narrows the cavity opening at the top so
// the lid skirt registers laterally. It is added material, not a cut: the
// ring steps inward from the cavity wall by the ledge depth.
func alignmentLedge(d Dimensions) sdf.SDF3 {
	k := d.Ledge
	outer := must3.Box(r3.Vec{X: d.BoxLength + pierce, Y: d.BoxWidth + pierce, Z: k.Height}, 0)
	inner := must3.Box(r3.Vec{
		X: d.BoxLength - 2*k.Depth,
		Y: d.BoxWidth - 2*k.Depth,
		Z: k.Height + pierce,
	}, 0)
	ring := sdf.Difference3D(outer, inner)
	return sdf.Transform3D(ring, sdf.Translate3D(r3.Vec{Z: d.BaseTopZ - k.Height/2}))
}

// cutClipGrooves pockets the inner X walls where the lid clip bumps land.
// Groove size is bump size plus the clearance margin, by construction.
func cutClipGrooves(d Dimensions, s sdf.SDF3) sdf.SDF3 {
	k := d.Clip
	for _, sign := range []float64{-1, 1} {
		for _, y := range k.YPositions {
			g := sdf.Transform3D(must3.Box(r3.Vec{X: k.GrooveDepth + pierce, Y: d.GrooveWidth, Z: d.GrooveHeight}, 0), sdf.Translate3D(r3.Vec{
				X: sign * (d.BoxLength/2 + (k.GrooveDepth-pierce)/2),
				Y: y,
				Z: d.GrooveCenterZ,
			}))
			s = sdf.Difference3D(s, g)
		}
	}
	return s
}

// cutPrySlots notches the top edge of all four walls from the outer face so
// a screwdriver can lever the lid off.
func cutPrySlots(d Dimensions, s sdf.SDF3) sdf.SDF3 {
	k := d.Pry
	zCenter := d.BaseTopZ - (k.Height-pierce)/2
	// Y walls: slots spaced along X.
	for _, x := range k.XPositions {
		for _, sign := range []float64{-1, 1} {
			slot := sdf.Transform3D(must3.Box(r3.Vec{X: k.Width, Y: k.Depth + pierce, Z: k.Height + pierce}, 0), sdf.Translate3D(r3.Vec{
				X: x,
				Y: sign * (d.OuterWidth/2 - (k.Depth-pierce)/2),
				Z: zCenter,
			}))
			s = sdf.Difference3D(s, slot)
		}
	}
	// X walls: slots spaced along Y.
	for _, y := range k.YPositions {
		for _, sign := range []float64{-1, 1} {
			slot := sdf.Transform3D(must3.Box(r3.Vec{X: k.Depth + pierce, Y: k.Width, Z: k.Height + pierce}, 0), sdf.Translate3D(r3.Vec{
				X: sign * (d.OuterLength/2 - (k.Depth-pierce)/2),
				Y: y,
				Z: zCenter,
			}))
			s = sdf.Difference3D(s, slot)
		}
	}
	return s
}
