package enclosure

import (
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"
	"github.com/soypat/sdf"
)

// Stage is one named step of a builder's transformation chain. Each stage
// consumes the previous solid and produces the next; stages run strictly in
// the declared order because the edge rounding performed by a stage is only
// valid against the boolean history of the solid it receives.
type Stage struct {
	Name  string
	Apply func(s sdf.SDF3) (sdf.SDF3, error)
}

// BuildReport is the diagnostics trail of one builder run: the stages that
// executed and the tier every fillet operation landed on.
type BuildReport struct {
	Solid   string
	Stages  []string
	Fillets []FilletResult
}

// FilletFor returns the recorded result for the named fillet operation.
func (r *BuildReport) FilletFor(op string) (FilletResult, bool) {
	for _, f := range r.Fillets {
		if f.Op == op {
			return f, true
		}
	}
	return FilletResult{}, false
}

func (r *BuildReport) recordFillet(res FilletResult) {
	r.Fillets = append(r.Fillets, res)
	entry := logrus.WithFields(logrus.Fields{
		"solid":  r.Solid,
		"op":     res.Op,
		"tier":   res.Tier.String(),
		"radius": res.Radius,
		"target": res.Target,
	})
	if res.Tier == TierFull {
		entry.Debug("fillet applied")
		return
	}
	entry.Warn("fillet degraded")
}

// runStages executes the chain. Kernel panics raised by the must-style shape
// constructors are recovered into errors, same as form3 wraps must3.
func runStages(report *BuildReport, stages []Stage) (s sdf.SDF3, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = fmt.Errorf("%s builder panicked: %v\n%s", report.Solid, a, debug.Stack())
		}
	}()
	for _, st := range stages {
		s, err = st.Apply(s)
		if err != nil {
			return nil, fmt.Errorf("%s stage %q: %w", report.Solid, st.Name, err)
		}
		report.Stages = append(report.Stages, st.Name)
		logrus.WithFields(logrus.Fields{"solid": report.Solid, "stage": st.Name}).Debug("stage complete")
	}
	return s, nil
}
