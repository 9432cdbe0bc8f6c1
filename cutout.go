package enclosure

import (
	"fmt"
	"math"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form3/must3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// pierce extends cutting solids past the faces they pierce so booleans never
// leave a zero-thickness film on the surface.
const pierce = 0.1

// ShapeKind is the cutout silhouette.
type ShapeKind uint8

const (
	Circle ShapeKind = iota
	Rectangle
)

// Face identifies the enclosure face a cutout belongs to.
type Face uint8

const (
	FaceLeft  Face = iota // -X wall
	FaceRight             // +X wall
	FaceFront             // -Y wall
	FaceBack              // +Y wall
	FaceFloor
	FaceLid // lid top plate
)

func (f Face) String() string {
	switch f {
	case FaceLeft:
		return "-X wall"
	case FaceRight:
		return "+X wall"
	case FaceFront:
		return "-Y wall"
	case FaceBack:
		return "+Y wall"
	case FaceFloor:
		return "floor"
	case FaceLid:
		return "lid top"
	}
	return "unknown face"
}

// Cutout is one aperture in face-local coordinates. For the side walls At.X
// runs along the wall (world Y on the X walls, world X on the Y walls) and
// At.Y is the world Z of the center. For the floor and the lid top, At is
// the world XY center.
type Cutout struct {
	Name string
	Kind ShapeKind
	Face Face
	Size r2.Vec  // rectangle width x height; unused for circles
	Dia  float64 // circle diameter; unused for rectangles
	At   r2.Vec
}

// BaseCutouts returns the fixed aperture table for the base solid: the
// connector openings on all four walls plus the floor mounting holes.
func BaseCutouts(d Dimensions) []Cutout {
	c := d.Conn
	cutoutFloor := -d.OuterHeight/2 + d.WallThickness + c.FloorOffset

	cuts := []Cutout{
		{
			Name: "power-jack", Kind: Circle, Face: FaceLeft,
			Dia: c.PowerJackDiameter,
			At: r2.Vec{
				X: -d.OuterWidth/2 + c.PowerJackDiameter/2 + c.PowerFromFront,
				Y: cutoutFloor + c.PowerJackDiameter/2,
			},
		},
		{
			Name: "usb", Kind: Rectangle, Face: FaceLeft,
			Size: r2.Vec{X: c.USBWidth, Y: c.USBHeight},
			At: r2.Vec{
				X: d.OuterWidth/2 - c.USBWidth/2 - c.USBFromBack,
				Y: cutoutFloor + c.USBHeight/2,
			},
		},
	}
	usb := cuts[len(cuts)-1]
	cuts = append(cuts, Cutout{
		Name: "rj45", Kind: Rectangle, Face: FaceLeft,
		Size: r2.Vec{X: c.RJ45Width, Y: c.RJ45Height},
		At: r2.Vec{
			X: usb.At.X,
			Y: usb.At.Y + c.USBHeight/2 + c.RJ45Gap + c.RJ45Height/2,
		},
	})

	jackZ := cutoutFloor + c.AudioCenterHeight
	for i := 0; i < c.AudioJackCount; i++ {
		cuts = append(cuts, Cutout{
			Name: fmt.Sprintf("audio-jack-%d", i+1), Kind: Circle, Face: FaceRight,
			Dia: c.AudioJackDiameter,
			At: r2.Vec{
				X: -d.OuterWidth/2 + c.AudioFirstOffset + float64(i)*c.AudioPitch,
				Y: jackZ,
			},
		})
	}
	sideJackX := d.OuterLength/2 - c.SideJackInset
	for _, f := range []Face{FaceFront, FaceBack} {
		cuts = append(cuts, Cutout{
			Name: "audio-jack-side", Kind: Circle, Face: f,
			Dia: c.AudioJackDiameter,
			At:  r2.Vec{X: sideJackX, Y: jackZ},
		})
	}

	for i, m := range d.Mount.Pattern {
		cuts = append(cuts, Cutout{
			Name: fmt.Sprintf("mount-hole-%d", i+1), Kind: Circle, Face: FaceFloor,
			Dia: d.Mount.HoleDiameter,
			At: r2.Vec{
				X: m.X - d.Mount.BoardLength/2,
				Y: m.Y - d.Mount.BoardWidth/2,
			},
		})
	}
	return cuts
}

// LidCutouts returns the LCD window and the push button aperture, both on the
// lid top plate. The LCD is centered; the button sits to its right.
func LidCutouts(d Dimensions) []Cutout {
	l := d.Lid
	return []Cutout{
		{
			Name: "lcd", Kind: Rectangle, Face: FaceLid,
			Size: r2.Vec{X: l.LCDWidth, Y: l.LCDHeight},
		},
		{
			Name: "push-button", Kind: Circle, Face: FaceLid,
			Dia: l.ButtonDiameter,
			At:  r2.Vec{X: l.LCDWidth/2 + l.ButtonGap + l.ButtonDiameter/2},
		},
	}
}

// faceBounds returns the face-local rectangle a cutout must stay inside.
func faceBounds(d Dimensions, f Face) (lo, hi r2.Vec) {
	switch f {
	case FaceLeft, FaceRight:
		return r2.Vec{X: -d.OuterWidth / 2, Y: -d.OuterHeight / 2},
			r2.Vec{X: d.OuterWidth / 2, Y: d.BaseTopZ}
	case FaceFront, FaceBack:
		return r2.Vec{X: -d.OuterLength / 2, Y: -d.OuterHeight / 2},
			r2.Vec{X: d.OuterLength / 2, Y: d.BaseTopZ}
	case FaceFloor, FaceLid:
		return r2.Vec{X: -d.BoxLength / 2, Y: -d.BoxWidth / 2},
			r2.Vec{X: d.BoxLength / 2, Y: d.BoxWidth / 2}
	}
	return r2.Vec{}, r2.Vec{}
}

// ValidateCutouts checks every cutout lies fully within its face. The kernel
// happily produces self-intersecting garbage for out-of-bounds cuts, so this
// runs before any boolean.
func ValidateCutouts(d Dimensions, cuts []Cutout) error {
	for _, c := range cuts {
		lo, hi := faceBounds(d, c.Face)
		hw, hh := c.Size.X/2, c.Size.Y/2
		if c.Kind == Circle {
			hw, hh = c.Dia/2, c.Dia/2
		}
		if c.At.X-hw < lo.X || c.At.X+hw > hi.X || c.At.Y-hh < lo.Y || c.At.Y+hh > hi.Y {
			return fmt.Errorf("cutout %q exceeds the bounds of the %s", c.Name, c.Face)
		}
	}
	return nil
}

// solid returns the cutting solid positioned in the base frame (or the lid
// frame for FaceLid cutouts).
func (c Cutout) solid(d Dimensions) sdf.SDF3 {
	t := d.WallThickness + 2*pierce
	var s sdf.SDF3
	switch c.Face {
	case FaceLeft, FaceRight:
		x := math.Copysign(d.OuterLength/2-d.WallThickness/2, faceSign(c.Face))
		if c.Kind == Circle {
			s = sdf.Transform3D(must3.Cylinder(t, c.Dia/2, 0), sdf.RotateY(math.Pi/2))
		} else {
			s = must3.Box(r3.Vec{X: t, Y: c.Size.X, Z: c.Size.Y}, 0)
		}
		s = sdf.Transform3D(s, sdf.Translate3D(r3.Vec{X: x, Y: c.At.X, Z: c.At.Y}))
	case FaceFront, FaceBack:
		y := math.Copysign(d.OuterWidth/2-d.WallThickness/2, faceSign(c.Face))
		if c.Kind == Circle {
			s = sdf.Transform3D(must3.Cylinder(t, c.Dia/2, 0), sdf.RotateX(math.Pi/2))
		} else {
			s = must3.Box(r3.Vec{X: c.Size.X, Y: t, Z: c.Size.Y}, 0)
		}
		s = sdf.Transform3D(s, sdf.Translate3D(r3.Vec{X: c.At.X, Y: y, Z: c.At.Y}))
	case FaceFloor:
		// Pierces the floor and continues through the mounting boss.
		h := d.WallThickness + d.Mount.BossHeight + 2*pierce
		s = must3.Cylinder(h, c.Dia/2, 0)
		z := -d.OuterHeight/2 - pierce + h/2
		s = sdf.Transform3D(s, sdf.Translate3D(r3.Vec{X: c.At.X, Y: c.At.Y, Z: z}))
	case FaceLid:
		h := d.LidThickness + 2*pierce
		if c.Kind == Circle {
			s = must3.Cylinder(h, c.Dia/2, 0)
		} else {
			s = must3.Box(r3.Vec{X: c.Size.X, Y: c.Size.Y, Z: h}, 0)
		}
		z := d.LidHeight/2 - d.LidThickness/2
		s = sdf.Transform3D(s, sdf.Translate3D(r3.Vec{X: c.At.X, Y: c.At.Y, Z: z}))
	}
	return s
}

func faceSign(f Face) float64 {
	if f == FaceLeft || f == FaceFront {
		return -1
	}
	return 1
}
