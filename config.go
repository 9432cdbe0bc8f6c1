package enclosure

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

// paramsFile mirrors Params with pointer fields so a config file can
// override any subset of the defaults without zeroing the rest. Every
// Params field has a key here; new parameters must be added to both.
type paramsFile struct {
	BoxLength     *float64 `yaml:"box_length"`
	BoxWidth      *float64 `yaml:"box_width"`
	BoxHeight     *float64 `yaml:"box_height"`
	WallThickness *float64 `yaml:"wall_thickness"`

	Mount struct {
		BoardLength  *float64 `yaml:"board_length"`
		BoardWidth   *float64 `yaml:"board_width"`
		Pattern      []r2.Vec `yaml:"pattern"`
		HoleDiameter *float64 `yaml:"hole_diameter"`
		BossDiameter *float64 `yaml:"boss_diameter"`
		BossHeight   *float64 `yaml:"boss_height"`
	} `yaml:"mount"`

	Conn struct {
		USBWidth    *float64 `yaml:"usb_width"`
		USBHeight   *float64 `yaml:"usb_height"`
		USBFromBack *float64 `yaml:"usb_from_back"`

		RJ45Width  *float64 `yaml:"rj45_width"`
		RJ45Height *float64 `yaml:"rj45_height"`
		RJ45Gap    *float64 `yaml:"rj45_gap"`

		PowerJackDiameter *float64 `yaml:"power_jack_diameter"`
		PowerFromFront    *float64 `yaml:"power_from_front"`

		FloorOffset *float64 `yaml:"floor_offset"`

		AudioJackDiameter *float64 `yaml:"audio_jack_diameter"`
		AudioJackCount    *int     `yaml:"audio_jack_count"`
		AudioFirstOffset  *float64 `yaml:"audio_first_offset"`
		AudioPitch        *float64 `yaml:"audio_pitch"`
		AudioCenterHeight *float64 `yaml:"audio_center_height"`
		SideJackInset     *float64 `yaml:"side_jack_inset"`
	} `yaml:"conn"`

	Clip struct {
		BumpWidth   *float64    `yaml:"bump_width"`
		BumpHeight  *float64    `yaml:"bump_height"`
		BumpDepth   *float64    `yaml:"bump_depth"`
		GrooveExtra *float64    `yaml:"groove_extra"`
		GrooveDepth *float64    `yaml:"groove_depth"`
		SeatOffset  *float64    `yaml:"seat_offset"`
		YPositions  *[2]float64 `yaml:"y_positions"`
	} `yaml:"clip"`

	Pry struct {
		Width      *float64    `yaml:"width"`
		Depth      *float64    `yaml:"depth"`
		Height     *float64    `yaml:"height"`
		XPositions *[2]float64 `yaml:"x_positions"`
		YPositions *[2]float64 `yaml:"y_positions"`
	} `yaml:"pry"`

	Ledge struct {
		Depth  *float64 `yaml:"depth"`
		Height *float64 `yaml:"height"`
	} `yaml:"ledge"`

	DIN struct {
		RailWidth          *float64 `yaml:"rail_width"`
		Clearance          *float64 `yaml:"clearance"`
		GuideHeight        *float64 `yaml:"guide_height"`
		FixedWall          *float64 `yaml:"fixed_wall"`
		SpringWall         *float64 `yaml:"spring_wall"`
		HookReach          *float64 `yaml:"hook_reach"`
		HookThickness      *float64 `yaml:"hook_thickness"`
		SpringInterference *float64 `yaml:"spring_interference"`
		EndInset           *float64 `yaml:"end_inset"`
	} `yaml:"din"`

	Lid struct {
		LCDWidth       *float64 `yaml:"lcd_width"`
		LCDHeight      *float64 `yaml:"lcd_height"`
		ButtonDiameter *float64 `yaml:"button_diameter"`
		ButtonGap      *float64 `yaml:"button_gap"`
		SkirtClearance *float64 `yaml:"skirt_clearance"`
	} `yaml:"lid"`

	Fillet struct {
		Exterior *float64 `yaml:"exterior"`
		Lid      *float64 `yaml:"lid"`
		DIN      *float64 `yaml:"din"`
	} `yaml:"fillet"`
}

// LoadParams reads a YAML overrides file and applies it on top of
// DefaultParams. The result is validated before it is returned.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	b, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("read params: %w", err)
	}
	var f paramsFile
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Params{}, fmt.Errorf("parse params %s: %w", path, err)
	}

	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setPair := func(dst *[2]float64, src *[2]float64) {
		if src != nil {
			*dst = *src
		}
	}

	set(&p.BoxLength, f.BoxLength)
	set(&p.BoxWidth, f.BoxWidth)
	set(&p.BoxHeight, f.BoxHeight)
	set(&p.WallThickness, f.WallThickness)

	set(&p.Mount.BoardLength, f.Mount.BoardLength)
	set(&p.Mount.BoardWidth, f.Mount.BoardWidth)
	if f.Mount.Pattern != nil {
		p.Mount.Pattern = f.Mount.Pattern
	}
	set(&p.Mount.HoleDiameter, f.Mount.HoleDiameter)
	set(&p.Mount.BossDiameter, f.Mount.BossDiameter)
	set(&p.Mount.BossHeight, f.Mount.BossHeight)

	set(&p.Conn.USBWidth, f.Conn.USBWidth)
	set(&p.Conn.USBHeight, f.Conn.USBHeight)
	set(&p.Conn.USBFromBack, f.Conn.USBFromBack)
	set(&p.Conn.RJ45Width, f.Conn.RJ45Width)
	set(&p.Conn.RJ45Height, f.Conn.RJ45Height)
	set(&p.Conn.RJ45Gap, f.Conn.RJ45Gap)
	set(&p.Conn.PowerJackDiameter, f.Conn.PowerJackDiameter)
	set(&p.Conn.PowerFromFront, f.Conn.PowerFromFront)
	set(&p.Conn.FloorOffset, f.Conn.FloorOffset)
	set(&p.Conn.AudioJackDiameter, f.Conn.AudioJackDiameter)
	if f.Conn.AudioJackCount != nil {
		p.Conn.AudioJackCount = *f.Conn.AudioJackCount
	}
	set(&p.Conn.AudioFirstOffset, f.Conn.AudioFirstOffset)
	set(&p.Conn.AudioPitch, f.Conn.AudioPitch)
	set(&p.Conn.AudioCenterHeight, f.Conn.AudioCenterHeight)
	set(&p.Conn.SideJackInset, f.Conn.SideJackInset)

	set(&p.Clip.BumpWidth, f.Clip.BumpWidth)
	set(&p.Clip.BumpHeight, f.Clip.BumpHeight)
	set(&p.Clip.BumpDepth, f.Clip.BumpDepth)
	set(&p.Clip.GrooveExtra, f.Clip.GrooveExtra)
	set(&p.Clip.GrooveDepth, f.Clip.GrooveDepth)
	set(&p.Clip.SeatOffset, f.Clip.SeatOffset)
	setPair(&p.Clip.YPositions, f.Clip.YPositions)

	set(&p.Pry.Width, f.Pry.Width)
	set(&p.Pry.Depth, f.Pry.Depth)
	set(&p.Pry.Height, f.Pry.Height)
	setPair(&p.Pry.XPositions, f.Pry.XPositions)
	setPair(&p.Pry.YPositions, f.Pry.YPositions)

	set(&p.Ledge.Depth, f.Ledge.Depth)
	set(&p.Ledge.Height, f.Ledge.Height)

	set(&p.DIN.RailWidth, f.DIN.RailWidth)
	set(&p.DIN.Clearance, f.DIN.Clearance)
	set(&p.DIN.GuideHeight, f.DIN.GuideHeight)
	set(&p.DIN.FixedWall, f.DIN.FixedWall)
	set(&p.DIN.SpringWall, f.DIN.SpringWall)
	set(&p.DIN.HookReach, f.DIN.HookReach)
	set(&p.DIN.HookThickness, f.DIN.HookThickness)
	set(&p.DIN.SpringInterference, f.DIN.SpringInterference)
	set(&p.DIN.EndInset, f.DIN.EndInset)

	set(&p.Lid.LCDWidth, f.Lid.LCDWidth)
	set(&p.Lid.LCDHeight, f.Lid.LCDHeight)
	set(&p.Lid.ButtonDiameter, f.Lid.ButtonDiameter)
	set(&p.Lid.ButtonGap, f.Lid.ButtonGap)
	set(&p.Lid.SkirtClearance, f.Lid.SkirtClearance)

	set(&p.Fillet.Exterior, f.Fillet.Exterior)
	set(&p.Fillet.Lid, f.Fillet.Lid)
	set(&p.Fillet.DIN, f.Fillet.DIN)

	if err := p.Validate(); err != nil {
		return Params{}, fmt.Errorf("params %s: %w", path, err)
	}
	return p, nil
}
