package allocation

import (
	"fmt"

	"github.com/Cloud-Coop/cloudcoal/types"
)

//Options are the knobs forwarded to the optimization backend.
type Options struct {
	//RelativeGap in [0,1]: the solver may stop once it holds a feasible
	//solution proved within this fraction of the optimum. Zero demands the
	//exact optimum.
	RelativeGap float64
	//TimeLimit in seconds for one solve; non-positive means unbounded.
	TimeLimit float64
}

//Solver is the optimization backend contract. An infeasible model is NOT an
//error: it yields a result with Solved=false. A non-nil error signals an
//internal solver fault and aborts the whole analysis.
type Solver interface {
	Solve(model Model, opts Options) (types.OptimalAllocationInfo, error)
}

//validate rejects structurally inconsistent models before the backend runs.
//An inconsistency here means the model builder is broken, so it surfaces as
//a solver fault rather than an infeasible status.
func validate(m Model) error {
	if len(m.PMCategories) != m.NumPMs() || len(m.PMPowerStates) != m.NumPMs() {
		return fmt.Errorf("inconsistent PM tables: %d PMs, %d categories, %d power states",
			m.NumPMs(), len(m.PMCategories), len(m.PMPowerStates))
	}
	if len(m.VMCategories) != m.NumVMs() {
		return fmt.Errorf("inconsistent VM tables: %d VMs, %d categories", m.NumVMs(), len(m.VMCategories))
	}
	for _, c := range m.PMCategories {
		if c < 0 || c >= len(m.PMSpecMinPowers) || c >= len(m.PMSpecMaxPowers) {
			return fmt.Errorf("PM category %d has no power specification", c)
		}
	}
	for _, c := range m.VMCategories {
		if c < 0 || c >= len(m.VMSpecCPUs) || c >= len(m.VMSpecRAMs) {
			return fmt.Errorf("VM category %d has no CPU/RAM specification", c)
		}
	}
	for _, cip := range m.PMCIPs {
		if cip < 0 || cip >= m.NumCIPs {
			return fmt.Errorf("PM owned by unknown CIP %d", cip)
		}
	}
	for _, cip := range m.VMCIPs {
		if cip < 0 || cip >= m.NumCIPs {
			return fmt.Errorf("VM originating from unknown CIP %d", cip)
		}
	}
	return nil
}
