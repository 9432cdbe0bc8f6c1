package export_test

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/enclosure/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSVGTopView(t *testing.T) {
	m, err := export.RenderMesh(testSolid(), 30)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "box.svg")
	require.NoError(t, export.SVG(path, m))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, "<svg")
	assert.Contains(t, s, "</svg>")
	assert.Greater(t, strings.Count(s, "<polygon"), 0, "upward faces must be drawn")

	// Well-formed XML end to end.
	dec := xml.NewDecoder(strings.NewReader(s))
	for {
		_, err := dec.Token()
		if err != nil {
			assert.Contains(t, err.Error(), "EOF")
			break
		}
	}
}

func TestSVGDeterministic(t *testing.T) {
	m, err := export.RenderMesh(testSolid(), 30)
	require.NoError(t, err)
	dir := t.TempDir()
	a := filepath.Join(dir, "a.svg")
	b := filepath.Join(dir, "b.svg")
	require.NoError(t, export.SVG(a, m))
	require.NoError(t, export.SVG(b, m))
	ab, _ := os.ReadFile(a)
	bb, _ := os.ReadFile(b)
	assert.Equal(t, ab, bb)
}
