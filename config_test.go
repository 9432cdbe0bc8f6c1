package enclosure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeParams(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadParamsOverlaysDefaults(t *testing.T) {
	path := writeParams(t, `
box_height: 60
lid:
  lcd_width: 71.5
fillet:
  din: 1.0
`)
	p, err := LoadParams(path)
	require.NoError(t, err)

	def := DefaultParams()
	assert.Equal(t, 60.0, p.BoxHeight)
	assert.Equal(t, 71.5, p.Lid.LCDWidth)
	assert.Equal(t, 1.0, p.Fillet.DIN)
	// Untouched values keep their defaults.
	assert.Equal(t, def.BoxLength, p.BoxLength)
	assert.Equal(t, def.WallThickness, p.WallThickness)
	assert.Equal(t, def.Fillet.Exterior, p.Fillet.Exterior)
}

func TestLoadParamsCoversEveryParamGroup(t *testing.T) {
	path := writeParams(t, `
mount:
  hole_diameter: 3.4
  pattern:
    - {x: 14, y: 2.5}
    - {x: 96.5, y: 50.5}
conn:
  audio_jack_count: 2
  side_jack_inset: 20
clip:
  bump_depth: 0.8
  y_positions: [-14, 14]
pry:
  width: 8
ledge:
  height: 3
din:
  spring_wall: 2.5
  end_inset: 8
`)
	p, err := LoadParams(path)
	require.NoError(t, err)

	assert.Equal(t, 3.4, p.Mount.HoleDiameter)
	require.Len(t, p.Mount.Pattern, 2)
	assert.Equal(t, 96.5, p.Mount.Pattern[1].X)
	assert.Equal(t, 2, p.Conn.AudioJackCount)
	assert.Equal(t, 20.0, p.Conn.SideJackInset)
	assert.Equal(t, 0.8, p.Clip.BumpDepth)
	assert.Equal(t, [2]float64{-14, 14}, p.Clip.YPositions)
	assert.Equal(t, 8.0, p.Pry.Width)
	assert.Equal(t, 3.0, p.Ledge.Height)
	assert.Equal(t, 2.5, p.DIN.SpringWall)
	assert.Equal(t, 8.0, p.DIN.EndInset)

	// Siblings of overridden keys keep their defaults.
	def := DefaultParams()
	assert.Equal(t, def.Mount.BossDiameter, p.Mount.BossDiameter)
	assert.Equal(t, def.Clip.BumpWidth, p.Clip.BumpWidth)
	assert.Equal(t, def.DIN.FixedWall, p.DIN.FixedWall)
}

func TestLoadParamsEmptyFileIsDefaults(t *testing.T) {
	p, err := LoadParams(writeParams(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultParams(), p)
}

func TestLoadParamsRejectsUnknownKeys(t *testing.T) {
	_, err := LoadParams(writeParams(t, "wall_thicknes: 3\n"))
	assert.Error(t, err, "typos should not silently fall back to defaults")
}

func TestLoadParamsValidatesResult(t *testing.T) {
	_, err := LoadParams(writeParams(t, "wall_thickness: -2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wall thickness")
}

func TestLoadParamsMissingFile(t *testing.T) {
	_, err := LoadParams(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
