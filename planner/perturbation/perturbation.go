//Package perturbation derives randomized variants of a base scenario for
//Monte-Carlo experiments: VM counts, baseline PM power states, PM switch
//costs and CIP-to-CIP migration costs can each be redrawn per iteration.
package perturbation

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Cloud-Coop/cloudcoal/scenario"
	"github.com/Cloud-Coop/cloudcoal/util"
)

const hourSecs = 3600.0

//Switch-on/off times follow Normal(300us, 50us), expressed in hours. The
//switch-on and switch-off costs of a PM are assumed equal.
const (
	switchTimeMean = 3e-4 / hourSecs
	switchTimeSD   = 5e-5 / hourSecs
)

//Migration of the smallest VM class takes Normal(277s, 61s); every next
//class doubles both parameters. The transfer cost rate prices a 100 Mbps
//link at 0.00001 $/MB for a planner activated every 12 hours.
const (
	migrationTimeMean = 277.0 / hourSecs
	migrationTimeSD   = 61.0 / hourSecs
	dataTransferCost  = 1e-5              // $/MB
	activationPeriod  = 12.0              // hours between two planner runs
	dataRate          = 12.5 * hourSecs   // MB/hour
	transferCostRate  = dataTransferCost * dataRate / activationPeriod
)

//Generator produces the scenario of each Monte-Carlo iteration. Every
//perturbed table cell owns its generator, seeded once from a seed stream, so
//enabling one perturbation never shifts the random draws of another.
type Generator struct {
	base     scenario.Scenario
	settings util.PerturbationSettings

	vmCounts   [][]*rand.Rand       //[c][v]
	pmStates   [][]distuv.Bernoulli //[c][p]
	onOffCosts [][]distuv.Normal    //[c][p]
	migrCosts  [][][]distuv.Normal  //[c1][c2][v]
}

//NewGenerator prepares the per-cell generators for the enabled
//perturbations of the base scenario.
func NewGenerator(base scenario.Scenario, settings util.PerturbationSettings) *Generator {
	g := &Generator{base: base, settings: settings}
	seedStream := rand.New(rand.NewPCG(uint64(settings.Seed), 0))

	if settings.GenVMs {
		src := rand.New(rand.NewPCG(seedStream.Uint64(), seedStream.Uint64()))
		g.vmCounts = make([][]*rand.Rand, base.NumCIPs)
		for c := 0; c < base.NumCIPs; c++ {
			g.vmCounts[c] = make([]*rand.Rand, base.NumVMTypes)
			for v := 0; v < base.NumVMTypes; v++ {
				g.vmCounts[c][v] = rand.New(rand.NewPCG(src.Uint64(), src.Uint64()))
			}
		}
	}
	if settings.GenPMPowerStates {
		src := rand.New(rand.NewPCG(seedStream.Uint64(), seedStream.Uint64()))
		g.pmStates = make([][]distuv.Bernoulli, base.NumCIPs)
		for c := 0; c < base.NumCIPs; c++ {
			g.pmStates[c] = make([]distuv.Bernoulli, base.NumPMTypes)
			for p := 0; p < base.NumPMTypes; p++ {
				g.pmStates[c][p] = distuv.Bernoulli{P: 0.5, Src: rand.NewPCG(src.Uint64(), src.Uint64())}
			}
		}
	}
	if settings.GenPMOnOffCosts {
		src := rand.New(rand.NewPCG(seedStream.Uint64(), seedStream.Uint64()))
		g.onOffCosts = make([][]distuv.Normal, base.NumCIPs)
		for c := 0; c < base.NumCIPs; c++ {
			g.onOffCosts[c] = make([]distuv.Normal, base.NumPMTypes)
			for p := 0; p < base.NumPMTypes; p++ {
				g.onOffCosts[c][p] = distuv.Normal{
					Mu:    switchTimeMean,
					Sigma: switchTimeSD,
					Src:   rand.NewPCG(src.Uint64(), src.Uint64()),
				}
			}
		}
	}
	if settings.GenVMMigrationCosts {
		src := rand.New(rand.NewPCG(seedStream.Uint64(), seedStream.Uint64()))
		g.migrCosts = make([][][]distuv.Normal, base.NumCIPs)
		for c1 := 0; c1 < base.NumCIPs; c1++ {
			g.migrCosts[c1] = make([][]distuv.Normal, base.NumCIPs)
			for c2 := 0; c2 < base.NumCIPs; c2++ {
				g.migrCosts[c1][c2] = make([]distuv.Normal, base.NumVMTypes)
				mu := migrationTimeMean
				sigma := migrationTimeSD
				for v := 0; v < base.NumVMTypes; v++ {
					g.migrCosts[c1][c2][v] = distuv.Normal{
						Mu:    mu,
						Sigma: sigma,
						Src:   rand.NewPCG(src.Uint64(), src.Uint64()),
					}
					mu *= 2
					sigma *= 2
				}
			}
		}
	}
	return g
}

//NumIterations returns how many scenarios the experiment should run.
//Without VM count perturbation the scenario is deterministic across
//iterations, so a single one suffices.
func (g *Generator) NumIterations() int {
	if !g.settings.GenVMs {
		return 1
	}
	if g.settings.NumIterations < 1 {
		return 1
	}
	return g.settings.NumIterations
}

//Next draws the scenario of the next iteration. The base scenario is never
//modified.
func (g *Generator) Next() scenario.Scenario {
	s := g.base.Clone()

	if g.settings.GenVMs {
		for c := 0; c < s.NumCIPs; c++ {
			for v := 0; v < s.NumVMTypes; v++ {
				s.CIPNumVMs[c][v] = g.vmCounts[c][v].IntN(g.base.CIPNumVMs[c][v] + 1)
			}
		}
	}
	if g.settings.GenPMPowerStates {
		for c := 0; c < s.NumCIPs; c++ {
			states := make([]bool, 0, s.NumPMsOf(c))
			for p := 0; p < s.NumPMTypes; p++ {
				for k := 0; k < s.CIPNumPMs[c][p]; k++ {
					states = append(states, g.pmStates[c][p].Rand() > 0)
				}
			}
			s.CIPPMPowerStates[c] = states
		}
	}
	if g.settings.GenPMOnOffCosts {
		for c := 0; c < s.NumCIPs; c++ {
			for p := 0; p < s.NumPMTypes; p++ {
				//Transition cost rate in $/hour: full power during the
				//transition, priced at the CIP's electricity cost.
				rate := s.PMSpecMaxPowers[p] * 1e-3 * s.CIPElectricityCosts[c]
				cost := g.onOffCosts[c][p].Rand() * rate
				if cost < 0 {
					cost = 0
				}
				s.CIPPMAsleepCosts[c][p] = cost
				s.CIPPMAwakeCosts[c][p] = cost
			}
		}
	}
	if g.settings.GenVMMigrationCosts {
		for c1 := 0; c1 < s.NumCIPs; c1++ {
			for c2 := 0; c2 < s.NumCIPs; c2++ {
				for v := 0; v < s.NumVMTypes; v++ {
					if c1 == c2 {
						s.CIPToCIPVMMigrationCosts[c1][c2][v] = 0
						continue
					}
					cost := g.migrCosts[c1][c2][v].Rand() * transferCostRate
					if cost < 0 {
						cost = 0
					}
					s.CIPToCIPVMMigrationCosts[c1][c2][v] = cost
				}
			}
		}
	}
	return s
}
