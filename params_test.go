package enclosure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveOuterDimensions(t *testing.T) {
	p := DefaultParams()
	p.BoxLength = 103
	p.BoxWidth = 54
	p.BoxHeight = 50
	p.WallThickness = 2.5
	require.NoError(t, p.Validate())

	d := p.Derive()
	assert.Equal(t, 108.0, d.OuterLength)
	assert.Equal(t, 59.0, d.OuterWidth)
	assert.Equal(t, 55.0, d.OuterHeight)
	assert.Equal(t, 10.0, d.LidHeight, "lid takes a fifth of the cavity height")
	assert.Equal(t, 2.5, d.LidThickness)
	assert.Equal(t, 7.5, d.SkirtHeight)
}

func TestDeriveGrooveTracksBump(t *testing.T) {
	p := DefaultParams()
	d := p.Derive()
	assert.Equal(t, p.Clip.BumpWidth+p.Clip.GrooveExtra, d.GrooveWidth)
	assert.Equal(t, p.Clip.BumpHeight+p.Clip.GrooveExtra, d.GrooveHeight)

	// The groove is never stored; resizing the bump resizes it.
	p.Clip.BumpWidth = 8
	d = p.Derive()
	assert.Equal(t, 8+p.Clip.GrooveExtra, d.GrooveWidth)
}

func TestDeriveLandmarks(t *testing.T) {
	d := DefaultParams().Derive()
	assert.Equal(t, -d.OuterHeight/2+d.WallThickness, d.FloorZ)
	assert.Equal(t, d.OuterHeight/2-d.LidThickness, d.BaseTopZ)
	// Seated lid: its top is flush with the base wall top, so the groove
	// center in the base frame equals the bump center mapped over.
	assert.InDelta(t, d.GrooveCenterZ, d.BaseTopZ-d.LidHeight/2+d.BumpCenterZ, 1e-12)
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero wall", func(p *Params) { p.WallThickness = 0 }},
		{"negative cavity", func(p *Params) { p.BoxLength = -1 }},
		{"hole swallows boss", func(p *Params) { p.Mount.HoleDiameter = p.Mount.BossDiameter }},
		{"groove through wall", func(p *Params) { p.Clip.GrooveDepth = p.WallThickness }},
		{"skirt degenerates", func(p *Params) { p.Lid.SkirtClearance = 30 }},
		{"no skirt below plate", func(p *Params) { p.BoxHeight = 10 }},
		{"ledge closes opening", func(p *Params) { p.Ledge.Depth = 40 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestDefaultParamsValid(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())
}
