package allocation

import (
	"math"
	"time"

	"github.com/op/go-logging"

	"github.com/Cloud-Coop/cloudcoal/types"
	"github.com/Cloud-Coop/cloudcoal/util"
)

var log = logging.MustGetLogger("cloudcoal")

//Slack used when checking the RAM/CPU capacity of a PM against summed shares.
const capacityEps = 1e-9

//How many search nodes are expanded between two wall-clock checks.
const deadlineCheckInterval = 1024

//BranchBoundSolver is an exact depth-first branch-and-bound backend for the
//allocation model. It assigns VMs to PMs one at a time, prunes on a cost
//lower bound, and decides the power state of the PMs left empty by picking
//the cheaper of keeping the baseline state or switching.
type BranchBoundSolver struct{}

//NewBranchBoundSolver returns the default optimization backend.
func NewBranchBoundSolver() *BranchBoundSolver {
	return &BranchBoundSolver{}
}

//Solve finds the optimal allocation for the model. Infeasibility is reported
//through Solved=false; only an internal fault returns an error.
func (bb *BranchBoundSolver) Solve(model Model, opts Options) (types.OptimalAllocationInfo, error) {
	solution := types.NewOptimalAllocationInfo()
	if err := validate(model); err != nil {
		return solution, err
	}
	if model.Mode == MinPower {
		log.Warning("Power optimization does not work well when PM switch-on/off costs and VM migration costs are not zero!")
	}

	st := newSearchState(model, opts)
	st.dfs(0)

	if !st.found {
		if st.timedOut {
			log.Warningf("Optimization was stopped by the time limit with no feasible solution")
		} else {
			log.Debugf("The allocation model is infeasible")
		}
		return solution, nil
	}

	solution.Solved = true
	solution.Optimal = !st.timedOut
	if st.timedOut {
		log.Warning("Optimization problem solved but non-optimal!")
	}
	solution.ObjectiveValue = st.best
	bb.extract(model, st, &solution)
	return solution, nil
}

//extract turns the best assignment into power states, the placement matrix,
//the monetary cost and the aggregate power draw.
func (bb *BranchBoundSolver) extract(model Model, st *searchState, solution *types.OptimalAllocationInfo) {
	npms := model.NumPMs()
	nvms := model.NumVMs()

	hosted := make([]int, npms)
	cpu := make([]float64, npms)
	solution.PMVMAllocations = make([][]bool, npms)
	for h := 0; h < npms; h++ {
		solution.PMVMAllocations[h] = make([]bool, nvms)
	}
	for v, h := range st.bestAssignment {
		solution.PMVMAllocations[h][v] = true
		hosted[h]++
		cpu[h] += st.cpuReq[v][h]
	}

	solution.PMPowerStates = make([]bool, npms)
	solution.KWatt = 0
	for h := 0; h < npms; h++ {
		solution.PMPowerStates[h] = hosted[h] > 0 || st.onWhenEmpty[h]
		if solution.PMPowerStates[h] {
			g := model.PMCategories[h]
			solution.KWatt += PMConsumedPower(model.PMSpecMinPowers[g], model.PMSpecMaxPowers[g], cpu[h]) * 1e-3
		}
	}

	if model.Mode == MinPower {
		//The objective carries Watts; recompute the energy cost from the
		//power solution. Switch and migration costs are missing here, which
		//is the documented limitation of this mode.
		cost := 0.0
		for h := 0; h < npms; h++ {
			if !solution.PMPowerStates[h] {
				continue
			}
			g := model.PMCategories[h]
			wcost := model.CIPElectricityCosts[model.PMCIPs[h]] * 1e-3
			cost += PMConsumedPower(model.PMSpecMinPowers[g], model.PMSpecMaxPowers[g], cpu[h]) * wcost
		}
		solution.Cost = cost
	} else {
		solution.Cost = solution.ObjectiveValue
	}
}

//searchState carries the mutable data of one depth-first search.
type searchState struct {
	model Model

	//Per-PM precomputed figures, mode dependent.
	cpuReq      [][]float64 //[vm][pm]
	ramReq      [][]float64 //[vm][pm]
	placeCost   [][]float64 //[vm][pm] incremental objective of one placement
	activation  []float64   //[pm] objective of hosting the first VM
	idle        []float64   //[pm] objective of staying empty
	onWhenEmpty []bool      //[pm] power decision of an empty PM

	cpuUsed     []float64
	ramUsed     []float64
	hostCount   []int
	assignment  []int
	accumulated float64
	emptyIdle   float64

	pruneFactor float64

	best           float64
	bestAssignment []int
	found          bool

	deadline    time.Time
	hasDeadline bool
	timedOut    bool
	nodes       int
}

func newSearchState(model Model, opts Options) *searchState {
	npms := model.NumPMs()
	nvms := model.NumVMs()
	st := &searchState{
		model:       model,
		cpuReq:      make([][]float64, nvms),
		ramReq:      make([][]float64, nvms),
		placeCost:   make([][]float64, nvms),
		activation:  make([]float64, npms),
		idle:        make([]float64, npms),
		onWhenEmpty: make([]bool, npms),
		cpuUsed:     make([]float64, npms),
		ramUsed:     make([]float64, npms),
		hostCount:   make([]int, npms),
		assignment:  make([]int, nvms),
		best:        math.Inf(1),
		pruneFactor: 1 - opts.RelativeGap,
	}
	if util.DefinitelyGreater(opts.TimeLimit, 0) {
		st.deadline = time.Now().Add(time.Duration(opts.TimeLimit * float64(time.Second)))
		st.hasDeadline = true
	}

	for h := 0; h < npms; h++ {
		g := model.PMCategories[h]
		cip := model.PMCIPs[h]
		wcost := model.CIPElectricityCosts[cip] * 1e-3
		minPower := model.PMSpecMinPowers[g]
		switch model.Mode {
		case MinPower:
			st.activation[h] = minPower
		default:
			st.activation[h] = minPower * wcost
			if !model.PMPowerStates[h] {
				st.activation[h] += model.CIPPMAwakeCosts[cip][g]
			}
			if model.PMPowerStates[h] {
				//Empty PM with an on baseline: keep it on and pay energy, or
				//switch it off and pay the switch-off cost.
				keepOn := minPower * wcost
				switchOff := model.CIPPMAsleepCosts[cip][g]
				if keepOn < switchOff {
					st.idle[h] = keepOn
					st.onWhenEmpty[h] = true
				} else {
					st.idle[h] = switchOff
				}
			}
		}
		st.emptyIdle += st.idle[h]
	}

	for v := 0; v < nvms; v++ {
		q := model.VMCategories[v]
		st.cpuReq[v] = make([]float64, npms)
		st.ramReq[v] = make([]float64, npms)
		st.placeCost[v] = make([]float64, npms)
		for h := 0; h < npms; h++ {
			g := model.PMCategories[h]
			st.cpuReq[v][h] = model.VMSpecCPUs[q][g]
			st.ramReq[v][h] = model.VMSpecRAMs[q][g]
			deltaPower := model.PMSpecMaxPowers[g] - model.PMSpecMinPowers[g]
			if model.Mode == MinPower {
				st.placeCost[v][h] = st.cpuReq[v][h] * deltaPower
			} else {
				wcost := model.CIPElectricityCosts[model.PMCIPs[h]] * 1e-3
				st.placeCost[v][h] = st.cpuReq[v][h]*deltaPower*wcost +
					model.CIPToCIPVMMigrationCosts[model.VMCIPs[v]][model.PMCIPs[h]][q]
			}
		}
	}
	return st
}

//dfs places VM v and every following VM; it returns true when the search
//must stop because the wall-clock limit expired.
func (st *searchState) dfs(v int) bool {
	st.nodes++
	if st.hasDeadline && st.nodes%deadlineCheckInterval == 0 && time.Now().After(st.deadline) {
		st.timedOut = true
		return true
	}

	if v == len(st.assignment) {
		candidate := st.accumulated + st.emptyIdle
		if candidate < st.best {
			st.best = candidate
			st.bestAssignment = append(st.bestAssignment[:0], st.assignment...)
			st.found = true
		}
		return false
	}

	for h := 0; h < len(st.hostCount); h++ {
		if st.cpuUsed[h]+st.cpuReq[v][h] > 1+capacityEps {
			continue
		}
		if st.ramUsed[h]+st.ramReq[v][h] > 1+capacityEps {
			continue
		}

		delta := st.placeCost[v][h]
		var first float64
		if st.hostCount[h] == 0 {
			first = st.activation[h]
		}
		bound := st.accumulated + delta + first + st.emptyIdle
		if st.hostCount[h] == 0 {
			bound -= st.idle[h]
		}
		if st.found && bound >= st.best*st.pruneFactor {
			continue
		}

		st.cpuUsed[h] += st.cpuReq[v][h]
		st.ramUsed[h] += st.ramReq[v][h]
		st.hostCount[h]++
		st.accumulated += delta + first
		if st.hostCount[h] == 1 {
			st.emptyIdle -= st.idle[h]
		}
		st.assignment[v] = h

		stop := st.dfs(v + 1)

		st.cpuUsed[h] -= st.cpuReq[v][h]
		st.ramUsed[h] -= st.ramReq[v][h]
		st.hostCount[h]--
		st.accumulated -= delta + first
		if st.hostCount[h] == 0 {
			st.emptyIdle += st.idle[h]
		}
		if stop {
			return true
		}
	}
	return false
}
