package enclosure

import (
	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form2/must2"
	"github.com/soypat/sdf/form3/must3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Lid builds the enclosure lid in its own frame, Z spanning
// [-LidHeight/2, LidHeight/2]: the top plate with the LCD window and the
// push button hole, the registration skirt hanging below it, and the two
// snap-fit bumps on the skirt's X faces.
//
// The top face rounding has to land on edges the apertures created, so it
// runs last. Blend-based rounding can't see which union produced an edge, so
// the builder carries the plate's 2D silhouette through the aperture stages
// and the fillet stage re-extrudes the plate from it with rounded top edges,
// splicing it onto the skirt.
func Lid(p Params) (sdf.SDF3, *BuildReport, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	d := p.Derive()
	cuts := LidCutouts(d)
	if err := ValidateCutouts(d, cuts); err != nil {
		return nil, nil, err
	}

	report := &BuildReport{Solid: "lid"}
	// The plate covers the cavity opening, not the outer rim: it sits
	// flush inside the walls so the bumps land in the grooves.
	profile := sdf.SDF2(must2.Box(r2.Vec{X: d.BoxLength, Y: d.BoxWidth}, 0))

	stages := []Stage{
		{Name: "plate-skirt", Apply: func(sdf.SDF3) (sdf.SDF3, error) {
			return sdf.Union3D(lidPlate(d, profile, 0), lidSkirt(d)), nil
		}},
	}
	for _, c := range cuts {
		c := c
		stages = append(stages, Stage{
			Name: c.Name + "-aperture",
			Apply: func(s sdf.SDF3) (sdf.SDF3, error) {
				profile = sdf.Difference2D(profile, c.silhouette())
				return sdf.Difference3D(s, c.solid(d)), nil
			},
		})
	}
	stages = append(stages,
		Stage{Name: "clip-bumps", Apply: func(s sdf.SDF3) (sdf.SDF3, error) {
			return sdf.Union3D(s, clipBumps(d)), nil
		}},
		Stage{Name: "top-fillet", Apply: func(s sdf.SDF3) (sdf.SDF3, error) {
			out, res := topFillet(d, s, profile)
			report.recordFillet(res)
			return out, nil
		}},
	)

	s, err := runStages(report, stages)
	if err != nil {
		return nil, report, err
	}
	return s, report, nil
}

// silhouette is the cutout's 2D footprint at its face-local position.
func (c Cutout) silhouette() sdf.SDF2 {
	var s sdf.SDF2
	if c.Kind == Circle {
		s = must2.Circle(c.Dia / 2)
	} else {
		s = must2.Box(c.Size, 0)
	}
	return sdf.Transform2D(s, sdf.Translate2D(c.At))
}

// lidPlate extrudes the tracked silhouette into the top plate. With a
// nonzero radius the extrusion's upper half is swapped for a rounded one, so
// every top edge the silhouette carries (outer rim and apertures alike) is
// rounded while the underside stays sharp against the base rim.
func lidPlate(d Dimensions, profile sdf.SDF2, r float64) sdf.SDF3 {
	h := d.LidThickness
	var s sdf.SDF3
	if r == 0 {
		s = sdf.Extrude3D(profile, h)
	} else {
		s = sdf.Union3D(
			sdf.Cut3D(sdf.Extrude3D(profile, h), r3.Vec{}, r3.Vec{Z: -1}),
			sdf.Cut3D(sdf.ExtrudeRounded3D(profile, h, r), r3.Vec{}, r3.Vec{Z: 1}),
		)
	}
	return sdf.Transform3D(s, sdf.Translate3D(r3.Vec{Z: d.LidHeight/2 - h/2}))
}

// lidSkirt is the rectangular ring that drops inside the base cavity. It
// overlaps the plate underside by pierce so the union has no seam film.
func lidSkirt(d Dimensions) sdf.SDF3 {
	h := d.SkirtHeight + pierce
	outer := must3.Box(r3.Vec{X: d.SkirtOuterLength, Y: d.SkirtOuterWidth, Z: h}, 0)
	inner := must3.Box(r3.Vec{
		X: d.SkirtOuterLength - 2*d.WallThickness,
		Y: d.SkirtOuterWidth - 2*d.WallThickness,
		Z: h + pierce,
	}, 0)
	ring := sdf.Difference3D(outer, inner)
	return sdf.Transform3D(ring, sdf.Translate3D(r3.Vec{Z: -d.LidHeight/2 + h/2 - pierce}))
}

// clipBumps are the two snap bumps protruding from the skirt's outer X faces
// at the height that lands them in the base grooves when the lid is seated.
func clipBumps(d Dimensions) sdf.SDF3 {
	k := d.Clip
	var bumps []sdf.SDF3
	for _, sign := range []float64{-1, 1} {
		for _, y := range k.YPositions {
			b := sdf.Transform3D(must3.Box(r3.Vec{X: k.BumpDepth + pierce, Y: k.BumpWidth, Z: k.BumpHeight}, 0), sdf.Translate3D(r3.Vec{
				X: sign * (d.SkirtOuterLength/2 + (k.BumpDepth-pierce)/2),
				Y: y,
				Z: d.BumpCenterZ,
			}))
			bumps = append(bumps, b)
		}
	}
	return sdf.Union3D(bumps...)
}

// topFillet replaces the solid's plate section with a re-extrusion of the
// tracked silhouette whose top edges carry the fallback chain's radius.
func topFillet(d Dimensions, s sdf.SDF3, profile sdf.SDF2) (sdf.SDF3, FilletResult) {
	plateBottom := d.LidHeight/2 - d.LidThickness
	splice := func(r float64) sdf.SDF3 {
		below := sdf.Cut3D(s, r3.Vec{Z: plateBottom}, r3.Vec{Z: -1})
		return sdf.Union3D(below, lidPlate(d, profile, r))
	}
	return filletSpec{
		op:     "lid-top",
		target: d.Fillet.Lid,
		limit:  d.LidThickness / 2,
		round:  splice,
		// The re-extrusion only has a rounded form; the chain downgrades
		// through half radius to skip without a distinct chamfer.
		chamfer: splice,
		skip:    func() sdf.SDF3 { return s },
	}.apply()
}
