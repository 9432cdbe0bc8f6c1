// Package enclosure generates a two-part 3D printable enclosure (base and
// lid) for an Arduino Mega carrying an LCD hat, sized for TS35 DIN rail
// mounting. Geometry is built with the github.com/soypat/sdf signed distance
// function kernel and meshed with its octree renderer.
//
// All lengths are millimetres. The world origin sits at the center of the
// un-split outer box: the base occupies Z in [-OuterHeight/2, BaseTopZ] and
// the lid is built in its own frame spanning [-LidHeight/2, LidHeight/2].
package enclosure

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Params is the base constant set every other dimension derives from.
// Values are never mutated after Derive; builders receive the derived
// Dimensions and treat it as read-only.
type Params struct {
	// Inner cavity dimensions. Length runs along X, width along Y.
	BoxLength float64
	BoxWidth  float64
	BoxHeight float64
	// WallThickness is shared by the floor, the side walls, the lid plate
	// and the lid skirt.
	WallThickness float64

	Mount  MountParams
	Conn   ConnectorParams
	Clip   ClipParams
	Pry    PryParams
	Ledge  LedgeParams
	DIN    DINParams
	Lid    LidParams
	Fillet FilletParams
}

// MountParams locates the board mounting bosses and their through-holes.
// Pattern coordinates use the board drawing convention: origin at the board's
// bottom-left corner.
type MountParams struct {
	BoardLength float64
	BoardWidth  float64
	Pattern     []r2.Vec
	// HoleDiameter is the M3 clearance through-hole drilled through boss
	// and floor.
	HoleDiameter float64
	BossDiameter float64
	BossHeight   float64
}

// ConnectorParams sizes and places the side wall apertures.
type ConnectorParams struct {
	USBWidth    float64
	USBHeight   float64
	USBFromBack float64 // horizontal offset of the USB cutout from the +Y edge

	RJ45Width  float64
	RJ45Height float64
	RJ45Gap    float64 // vertical gap between USB top and RJ45 bottom

	PowerJackDiameter float64
	PowerFromFront    float64 // horizontal offset of the jack from the -Y edge

	// FloorOffset raises the bottom of the power/USB cutouts above the
	// inner floor.
	FloorOffset float64

	AudioJackDiameter float64
	AudioJackCount    int
	AudioFirstOffset  float64 // first jack center from the -Y edge, on the +X wall
	AudioPitch        float64
	AudioCenterHeight float64 // jack center above FloorOffset
	SideJackInset     float64 // single Y-wall jacks, measured from the +X edge
}

// ClipParams defines the snap-fit bump (lid) and groove (base) pair. Groove
// dimensions are always derived as bump + GrooveExtra; they are never stored
// independently.
type ClipParams struct {
	BumpWidth   float64
	BumpHeight  float64
	BumpDepth   float64 // protrusion from the skirt face
	GrooveExtra float64 // total clearance added to the groove
	GrooveDepth float64 // pocket depth into the base wall
	SeatOffset  float64 // bump bottom above the skirt's lower edge
	YPositions  [2]float64
}

// PryParams defines the screwdriver slots cut into the top edge of all four
// walls from the outer face.
type PryParams struct {
	Width      float64
	Depth      float64
	Height     float64
	XPositions [2]float64 // slots on the Y walls
	YPositions [2]float64 // slots on the X walls
}

// LedgeParams defines the alignment ledge ring that narrows the cavity
// opening so the lid skirt registers laterally.
type LedgeParams struct {
	Depth  float64 // step inward from the cavity wall
	Height float64
}

// DINParams defines the TS35 rail channel on the enclosure underside. The
// fixed hook wall is stiff and hooks first; the spring wall is thinner so it
// can flex and snap over the opposite rail lip.
type DINParams struct {
	RailWidth          float64
	Clearance          float64 // per side, slide fit
	GuideHeight        float64 // wall drop below the enclosure floor
	FixedWall          float64
	SpringWall         float64
	HookReach          float64
	HookThickness      float64
	SpringInterference float64 // extra spring hook reach for the snap fit
	EndInset           float64 // channel is shorter than the enclosure by this per end
}

// LidParams defines the lid apertures and skirt fit.
type LidParams struct {
	LCDWidth       float64
	LCDHeight      float64
	ButtonDiameter float64
	ButtonGap      float64 // between LCD aperture edge and button rim
	SkirtClearance float64 // per side, room for the clip bumps plus FDM tolerance
}

// FilletParams holds the target radii fed to the fallback chain.
type FilletParams struct {
	Exterior float64 // base vertical corners and bottom edges
	Lid      float64 // lid top-face edges, applied after the apertures are cut
	DIN      float64 // DIN channel to floor junction
}

// DefaultParams returns the Arduino Mega + 16x2 LCD hat values the enclosure
// was drawn for. Cavity dimensions include 1.5 mm of margin over the raw
// board for silkscreen and measurement uncertainty.
func DefaultParams() Params {
	const (
		boardLength = 102.7
		boardWidth  = 54.5
		boardMargin = 1.5
	)
	return Params{
		BoxLength:     boardLength + boardMargin,
		BoxWidth:      boardWidth + boardMargin,
		BoxHeight:     50,
		WallThickness: 2.5,
		Mount: MountParams{
			BoardLength: boardLength,
			BoardWidth:  boardWidth,
			Pattern: []r2.Vec{
				{X: 14.0, Y: 2.5},
				{X: 15.3, Y: 50.8},
				{X: 64.8, Y: 7.6},
				{X: 64.8, Y: 35.5},
				{X: 93.0, Y: 2.5},
				{X: 88.9, Y: 48.2},
			},
			HoleDiameter: 3.2,
			BossDiameter: 3.8,
			BossHeight:   3.0,
		},
		Conn: ConnectorParams{
			USBWidth:          10,
			USBHeight:         5,
			USBFromBack:       13.5,
			RJ45Width:         16,
			RJ45Height:        14,
			RJ45Gap:           10,
			PowerJackDiameter: 9,
			PowerFromFront:    5,
			FloorOffset:       3,
			AudioJackDiameter: 6,
			AudioJackCount:    4,
			AudioFirstOffset:  7.5,
			AudioPitch:        12.8,
			AudioCenterHeight: 14,
			SideJackInset:     24.5,
		},
		Clip: ClipParams{
			BumpWidth:   5.0,
			BumpHeight:  2.0,
			BumpDepth:   0.5,
			GrooveExtra: 0.4,
			GrooveDepth: 0.7,
			SeatOffset:  1.0,
			YPositions:  [2]float64{-12, 12},
		},
		Pry: PryParams{
			Width:      6.0,
			Depth:      2.0,
			Height:     2.5,
			XPositions: [2]float64{-15, 15},
			YPositions: [2]float64{-10, 10},
		},
		Ledge: LedgeParams{Depth: 0.75, Height: 2.0},
		DIN: DINParams{
			RailWidth:          35.0,
			Clearance:          0.3,
			GuideHeight:        10.0,
			FixedWall:          3.0,
			SpringWall:         2.0,
			HookReach:          2.5,
			HookThickness:      1.5,
			SpringInterference: 0.3,
			EndInset:           5.0,
		},
		Lid: LidParams{
			LCDWidth:       66,
			LCDHeight:      16,
			ButtonDiameter: 7,
			ButtonGap:      3,
			SkirtClearance: 0.75,
		},
		Fillet: FilletParams{
			Exterior: 2.0,
			Lid:      1.5,
			DIN:      1.5,
		},
	}
}

// Validate rejects parameter sets that cannot produce a printable enclosure.
// Derive itself is pure arithmetic and cannot fail, so all geometric sanity
// checks live here.
func (p Params) Validate() error {
	switch {
	case p.BoxLength <= 0 || p.BoxWidth <= 0 || p.BoxHeight <= 0:
		return errors.New("inner cavity dimensions must be positive")
	case p.WallThickness <= 0:
		return errors.New("wall thickness must be positive")
	case p.Mount.HoleDiameter >= p.Mount.BossDiameter:
		return fmt.Errorf("mount hole %.3g swallows boss %.3g", p.Mount.HoleDiameter, p.Mount.BossDiameter)
	case p.Clip.GrooveExtra < 0 || p.Clip.GrooveDepth >= p.WallThickness:
		return errors.New("clip groove must stay inside the wall")
	}
	smallest := math.Min(p.BoxLength, p.BoxWidth)
	// The skirt drops inside the cavity: its clearance plus its wall must
	// leave a void, or the lid degenerates to a solid plug.
	if p.Lid.SkirtClearance+p.WallThickness > smallest/2 {
		return fmt.Errorf("skirt clearance %.3g + wall %.3g exceeds half the smallest cavity cross-section %.3g",
			p.Lid.SkirtClearance, p.WallThickness, smallest/2)
	}
	lidHeight := p.BoxHeight / 5
	if lidHeight <= p.WallThickness {
		return fmt.Errorf("lid height %.3g leaves no skirt below a %.3g plate", lidHeight, p.WallThickness)
	}
	if 2*p.Ledge.Depth >= smallest {
		return errors.New("alignment ledge closes the cavity opening")
	}
	return nil
}

// Dimensions is the complete derived dimension set. Every field is a pure
// function of Params; nothing here is mutated after Derive returns.
type Dimensions struct {
	Params

	OuterLength float64
	OuterWidth  float64
	OuterHeight float64

	LidThickness float64
	LidHeight    float64
	SkirtHeight  float64

	SkirtOuterLength float64
	SkirtOuterWidth  float64

	GrooveWidth  float64
	GrooveHeight float64

	// FloorZ is the inner floor plane, BaseTopZ the top of the base walls.
	FloorZ   float64
	BaseTopZ float64

	// GrooveCenterZ is in the base frame; BumpCenterZ in the lid frame.
	// Both describe the same seated clip position.
	GrooveCenterZ float64
	BumpCenterZ   float64
}

// Derive computes the full dimension set from the base constants.
func (p Params) Derive() Dimensions {
	d := Dimensions{Params: p}
	d.OuterLength = p.BoxLength + 2*p.WallThickness
	d.OuterWidth = p.BoxWidth + 2*p.WallThickness
	d.OuterHeight = p.BoxHeight + 2*p.WallThickness

	d.LidThickness = p.WallThickness
	d.LidHeight = p.BoxHeight / 5
	d.SkirtHeight = d.LidHeight - d.LidThickness

	d.SkirtOuterLength = p.BoxLength - 2*p.Lid.SkirtClearance
	d.SkirtOuterWidth = p.BoxWidth - 2*p.Lid.SkirtClearance

	d.GrooveWidth = p.Clip.BumpWidth + p.Clip.GrooveExtra
	d.GrooveHeight = p.Clip.BumpHeight + p.Clip.GrooveExtra

	d.FloorZ = -d.OuterHeight/2 + p.WallThickness
	d.BaseTopZ = d.OuterHeight/2 - d.LidThickness

	d.BumpCenterZ = -d.LidHeight/2 + p.Clip.SeatOffset + p.Clip.BumpHeight/2
	// The lid seats with its top plate flush with the base wall top.
	d.GrooveCenterZ = d.BaseTopZ - d.LidHeight + p.Clip.SeatOffset + p.Clip.BumpHeight/2
	return d
}
