package export_test

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/enclosure/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNGPreview(t *testing.T) {
	m, err := export.RenderMesh(testSolid(), 30)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "box.png")
	require.NoError(t, export.PNG(path, m))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 960, cfg.Height)
}
