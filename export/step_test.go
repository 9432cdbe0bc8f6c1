package export_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/enclosure/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepFile(t *testing.T, name string) string {
	t.Helper()
	m, err := export.RenderMesh(testSolid(), 30)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, export.STEP(path, m))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestSTEPStructure(t *testing.T) {
	s := stepFile(t, "box.step")
	assert.True(t, strings.HasPrefix(s, "ISO-10303-21;\n"))
	assert.True(t, strings.HasSuffix(s, "END-ISO-10303-21;\n"))
	assert.Contains(t, s, "AUTOMOTIVE_DESIGN")
	assert.Contains(t, s, "FILE_NAME('box'")
	assert.Contains(t, s, "MANIFOLD_SOLID_BREP('box'")
	assert.Contains(t, s, "CLOSED_SHELL")
	assert.Contains(t, s, "SHAPE_DEFINITION_REPRESENTATION")

	// One POLY_LOOP face set per triangle, vertices shared via the welded
	// index rather than repeated per face.
	loops := strings.Count(s, "POLY_LOOP")
	points := strings.Count(s, "CARTESIAN_POINT")
	assert.Greater(t, loops, 0)
	assert.Less(t, points, 3*loops)
}

func TestSTEPDeterministic(t *testing.T) {
	a := stepFile(t, "box.step")
	b := stepFile(t, "box.step")
	assert.Equal(t, a, b, "header carries no timestamp; exports must be identical")
}

func TestSTEPRealsCarryDecimalPoint(t *testing.T) {
	s := stepFile(t, "box.step")
	for _, line := range strings.Split(s, "\n") {
		if !strings.Contains(line, "CARTESIAN_POINT") {
			continue
		}
		inner := line[strings.LastIndex(line, "(")+1:]
		for _, field := range strings.Split(strings.Trim(inner, "();"), ",") {
			assert.True(t, strings.ContainsAny(field, ".E"), "real %q in %q", field, line)
		}
	}
}
