package enclosure

import (
	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"
)

// DINChannel builds the TS35 rail channel sub-assembly hanging below the
// base floor: two guide walls with inward L-shaped hook shelves. The fixed
// side (+Y) is stiff and hooks the rail lip first; the spring side (-Y) is
// thinner so it flexes, and its hook reaches an extra interference distance
// so the enclosure snaps on.
//
// The sub-assembly is returned sharp. The base builder unions it onto the
// floor through the fillet fallback chain, which realizes the channel's
// junction fillets.
func DINChannel(d Dimensions) sdf.SDF3 {
	k := d.DIN
	length := d.OuterLength - 2*k.EndInset
	baseZ := -d.OuterHeight / 2
	innerHalf := (k.RailWidth + 2*k.Clearance) / 2

	wallZ := baseZ + (pierce-k.GuideHeight)/2 // walls overlap the floor by pierce
	hookZ := baseZ - k.GuideHeight + k.HookThickness/2

	// Fixed hook side.
	fwInner := innerHalf
	fwOuter := fwInner + k.FixedWall
	fixedWall := sdf.Transform3D(
		must3.Box(r3.Vec{X: length, Y: k.FixedWall, Z: k.GuideHeight + pierce}, 0),
		sdf.Translate3D(r3.Vec{Y: (fwInner + fwOuter) / 2, Z: wallZ}),
	)
	fhInner := fwInner - k.HookReach
	fixedHook := sdf.Transform3D(
		must3.Box(r3.Vec{X: length, Y: fwOuter - fhInner, Z: k.HookThickness}, 0),
		sdf.Translate3D(r3.Vec{Y: (fhInner + fwOuter) / 2, Z: hookZ}),
	)

	// Spring clip side.
	swInner := -innerHalf
	swOuter := swInner - k.SpringWall
	springWall := sdf.Transform3D(
		must3.Box(r3.Vec{X: length, Y: k.SpringWall, Z: k.GuideHeight + pierce}, 0),
		sdf.Translate3D(r3.Vec{Y: (swInner + swOuter) / 2, Z: wallZ}),
	)
	shInner := swInner + k.HookReach + k.SpringInterference
	springHook := sdf.Transform3D(
		must3.Box(r3.Vec{X: length, Y: shInner - swOuter, Z: k.HookThickness}, 0),
		sdf.Translate3D(r3.Vec{Y: (swOuter + shInner) / 2, Z: hookZ}),
	)

	return sdf.Union3D(fixedWall, fixedHook, springWall, springHook)
}
