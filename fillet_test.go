package enclosure

import (
	"testing"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form3/must3"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func testSpec(target, limit float64) filletSpec {
	box := func(float64) sdf.SDF3 { return must3.Box(r3.Vec{X: 1, Y: 1, Z: 1}, 0) }
	return filletSpec{
		op:      "test",
		target:  target,
		limit:   limit,
		round:   box,
		chamfer: box,
		skip:    func() sdf.SDF3 { return box(0) },
	}
}

func TestFilletFallbackChain(t *testing.T) {
	cases := []struct {
		name   string
		target float64
		limit  float64
		tier   FilletTier
		radius float64
	}{
		{"fits", 2.0, 26.25, TierFull, 2.0},
		{"half fits", 1.5, 0.75, TierHalf, 0.75},
		{"round too small to print, chamfer fits", 0.3, 0.2, TierChamfer, 0.3},
		{"nothing fits", 0.3, 0.1, TierSkip, 0},
		{"negative target", -1, 5, TierSkip, 0},
		{"zero limit", 2, 0, TierSkip, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, res := testSpec(tc.target, tc.limit).apply()
			assert.NotNil(t, s)
			assert.Equal(t, tc.tier, res.Tier)
			assert.Equal(t, tc.radius, res.Radius)
			assert.Equal(t, tc.target, res.Target)
		})
	}
}

// The effective radius never grows along the chain: for a fixed limit,
// raising the target can only hold or lower the realized tier.
func TestFilletChainMonotonic(t *testing.T) {
	const limit = 1.0
	prevTier := TierFull
	for _, target := range []float64{0.5, 1.0, 1.5, 2.0, 2.5, 5.0} {
		_, res := testSpec(target, limit).apply()
		assert.GreaterOrEqual(t, res.Tier, prevTier, "target %v", target)
		assert.LessOrEqual(t, res.Radius, res.Target)
		prevTier = res.Tier
	}
}

func TestUnionRoundBlends(t *testing.T) {
	base := must3.Box(r3.Vec{X: 10, Y: 10, Z: 2}, 0)
	post := sdf.Transform3D(
		must3.Cylinder(6, 1, 0),
		sdf.Translate3D(r3.Vec{Z: 3}),
	)
	s, res := unionRound("post", 0.5, 1.0, base, post)
	assert.Equal(t, TierFull, res.Tier)

	// In the concave junction the blend adds material: a point just outside
	// both operands but within the blend radius of each is solid.
	p := r3.Vec{X: 1.1, Y: 0, Z: 1.1}
	assert.Positive(t, base.Evaluate(p))
	assert.Positive(t, post.Evaluate(p))
	assert.Negative(t, s.Evaluate(p), "junction point should be inside the filleted union")

	// Far from the junction the union is unchanged.
	far := r3.Vec{X: 20, Y: 0, Z: 0}
	assert.InDelta(t, sdf.Union3D(base, post).Evaluate(far), s.Evaluate(far), 0.51)
}
