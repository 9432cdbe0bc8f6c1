package export

import (
	"github.com/soypat/sdf"
	"github.com/soypat/sdf/render"
)

// STL writes the solid to path as binary STL, streaming triangles straight
// from the octree renderer. The renderer walks its octree in a fixed order,
// so the output is deterministic for a given solid and resolution.
func STL(path string, s sdf.SDF3, cells int) error {
	return render.CreateSTL(path, render.NewOctreeRenderer(s, cells))
}
