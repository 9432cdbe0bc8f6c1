package enclosure

import (
	"math"

	"github.com/soypat/sdf"
)

// FilletTier identifies which attempt of the fallback chain produced a
// result. The chain is full radius, half radius, chamfer, then skip; it
// downgrades locally and never aborts a build.
type FilletTier uint8

const (
	TierFull FilletTier = iota
	TierHalf
	TierChamfer
	TierSkip
)

func (t FilletTier) String() string {
	switch t {
	case TierFull:
		return "full"
	case TierHalf:
		return "half"
	case TierChamfer:
		return "chamfer"
	case TierSkip:
		return "skip"
	}
	return "unknown"
}

// FilletResult records the outcome of one fillet operation for diagnostics.
type FilletResult struct {
	Op     string
	Target float64 // requested radius
	Limit  float64 // geometric limit supplied by the caller
	Radius float64 // effective radius, 0 when skipped
	Tier   FilletTier
}

// filletSpec is one fillet operation expressed as the ordered attempt list of
// the fallback chain. Every attempt applies to the same operands with the
// same limit; only the blend radius and blend function change.
type filletSpec struct {
	op     string
	target float64
	limit  float64
	// round applies the quarter-circle blend at the given radius.
	round func(r float64) sdf.SDF3
	// chamfer applies the 45 degree blend. May equal round for operations
	// the kernel can only realize as a rounding.
	chamfer func(r float64) sdf.SDF3
	// skip returns the sharp result.
	skip func() sdf.SDF3
}

// minRoundRadius is the smallest round an FDM printer resolves. Smaller
// rounds smear into the surface; a chamfer of the same size still prints, so
// rounds below it fail over to the chamfer attempt.
const minRoundRadius = 0.2

// apply walks the fallback chain and reports which tier succeeded.
func (fs filletSpec) apply() (sdf.SDF3, FilletResult) {
	res := FilletResult{Op: fs.op, Target: fs.target, Limit: fs.limit}
	switch {
	case roundOK(fs.target, fs.limit):
		res.Tier, res.Radius = TierFull, fs.target
		return fs.round(res.Radius), res
	case roundOK(fs.target/2, fs.limit):
		res.Tier, res.Radius = TierHalf, fs.target/2
		return fs.round(res.Radius), res
	case filletOK(fs.target, 2*fs.limit):
		// A 45 degree chamfer consumes half the clearance of a round of
		// the same size, so it is accepted up to twice the limit.
		res.Tier, res.Radius = TierChamfer, fs.target
		return fs.chamfer(res.Radius), res
	}
	res.Tier, res.Radius = TierSkip, 0
	return fs.skip(), res
}

func roundOK(r, limit float64) bool {
	return r >= minRoundRadius && filletOK(r, limit)
}

func filletOK(r, limit float64) bool {
	return r > 0 && !math.IsNaN(r) && !math.IsInf(r, 0) && r <= limit
}

// unionRound unions add onto base with a filleted junction, downgrading per
// the fallback chain when the target radius exceeds limit.
func unionRound(op string, target, limit float64, base, add sdf.SDF3) (sdf.SDF3, FilletResult) {
	return filletSpec{
		op:     op,
		target: target,
		limit:  limit,
		round: func(r float64) sdf.SDF3 {
			u := sdf.Union3D(base, add)
			u.SetMin(sdf.MinRound(r))
			return u
		},
		chamfer: func(r float64) sdf.SDF3 {
			u := sdf.Union3D(base, add)
			u.SetMin(sdf.MinPoly(0, r))
			return u
		},
		skip: func() sdf.SDF3 { return sdf.Union3D(base, add) },
	}.apply()
}
