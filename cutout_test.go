package enclosure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func findCutout(t *testing.T, cuts []Cutout, name string) Cutout {
	t.Helper()
	for _, c := range cuts {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no cutout named %q", name)
	return Cutout{}
}

func TestBaseCutoutsAudioPitch(t *testing.T) {
	d := DefaultParams().Derive()
	cuts := BaseCutouts(d)

	// Jacks march front to back at the configured pitch on the +X wall.
	for i := 0; i < d.Conn.AudioJackCount; i++ {
		c := findCutout(t, cuts, "audio-jack-"+string(rune('1'+i)))
		assert.Equal(t, FaceRight, c.Face)
		want := -d.OuterWidth/2 + d.Conn.AudioFirstOffset + float64(i)*d.Conn.AudioPitch
		assert.InDelta(t, want, c.At.X, 1e-12)
		assert.InDelta(t, d.FloorZ+d.Conn.FloorOffset+d.Conn.AudioCenterHeight, c.At.Y, 1e-12)
	}
}

func TestBaseCutoutsSideJacks(t *testing.T) {
	d := DefaultParams().Derive()
	cuts := BaseCutouts(d)

	// One jack per Y wall, at the same height as the +X row and inset
	// from the +X edge.
	var side []Cutout
	for _, c := range cuts {
		if c.Name == "audio-jack-side" {
			side = append(side, c)
		}
	}
	require.Len(t, side, 2)
	faces := map[Face]bool{}
	for _, c := range side {
		faces[c.Face] = true
		assert.Equal(t, d.Conn.AudioJackDiameter, c.Dia)
		assert.InDelta(t, d.OuterLength/2-d.Conn.SideJackInset, c.At.X, 1e-12)
		assert.InDelta(t, d.FloorZ+d.Conn.FloorOffset+d.Conn.AudioCenterHeight, c.At.Y, 1e-12)
	}
	assert.True(t, faces[FaceFront] && faces[FaceBack], "one per Y wall, got %v", faces)
}

func TestBaseCutoutsRJ45AboveUSB(t *testing.T) {
	d := DefaultParams().Derive()
	cuts := BaseCutouts(d)
	usb := findCutout(t, cuts, "usb")
	rj45 := findCutout(t, cuts, "rj45")
	assert.Equal(t, usb.At.X, rj45.At.X, "stacked on the same wall position")
	gap := (rj45.At.Y - rj45.Size.Y/2) - (usb.At.Y + usb.Size.Y/2)
	assert.InDelta(t, d.Conn.RJ45Gap, gap, 1e-12)
}

func TestBaseCutoutsMountHolesFollowPattern(t *testing.T) {
	d := DefaultParams().Derive()
	cuts := BaseCutouts(d)
	var holes []Cutout
	for _, c := range cuts {
		if c.Face == FaceFloor {
			holes = append(holes, c)
		}
	}
	require.Len(t, holes, len(d.Mount.Pattern))
	for i, h := range holes {
		assert.InDelta(t, d.Mount.Pattern[i].X-d.Mount.BoardLength/2, h.At.X, 1e-12)
		assert.InDelta(t, d.Mount.Pattern[i].Y-d.Mount.BoardWidth/2, h.At.Y, 1e-12)
		assert.Equal(t, d.Mount.HoleDiameter, h.Dia)
	}
}

func TestValidateCutoutsDefaults(t *testing.T) {
	d := DefaultParams().Derive()
	assert.NoError(t, ValidateCutouts(d, BaseCutouts(d)))
	assert.NoError(t, ValidateCutouts(d, LidCutouts(d)))
}

func TestValidateCutoutsRejectsOutOfBounds(t *testing.T) {
	p := DefaultParams()
	// An LCD wider than the cavity cannot fit the lid plate.
	p.Lid.LCDWidth = p.BoxLength + 10
	d := p.Derive()
	err := ValidateCutouts(d, LidCutouts(d))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lcd")
}

func TestLidCutoutButtonPlacement(t *testing.T) {
	d := DefaultParams().Derive()
	cuts := LidCutouts(d)
	lcd := findCutout(t, cuts, "lcd")
	button := findCutout(t, cuts, "push-button")
	assert.Equal(t, r2.Vec{}, lcd.At, "LCD window is centered")
	edgeToRim := button.At.X - button.Dia/2 - lcd.Size.X/2
	assert.InDelta(t, d.Lid.ButtonGap, edgeToRim, 1e-12)
}
