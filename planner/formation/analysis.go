//Package formation runs the coalition analysis: it solves the allocation
//problem of every non-empty coalition of providers, builds the induced
//cooperative game, divides the coalition values into per-provider payoffs
//and finally selects the partitions of the provider set that satisfy the
//configured stability criterion.
package formation

import (
	"math"
	"runtime"
	"sync"

	"github.com/op/go-logging"

	"github.com/Cloud-Coop/cloudcoal/combinatorics"
	"github.com/Cloud-Coop/cloudcoal/gametheory"
	"github.com/Cloud-Coop/cloudcoal/planner/allocation"
	"github.com/Cloud-Coop/cloudcoal/scenario"
	"github.com/Cloud-Coop/cloudcoal/types"
	"github.com/Cloud-Coop/cloudcoal/util"
)

var log = logging.MustGetLogger("cloudcoal")

//Analyzer drives the per-coalition phase of the analysis. Coalitions of the
//same size are independent of each other, so each size level is solved by a
//pool of workers; the game-theoretic phase of a level runs sequentially
//because it reads the values of every smaller coalition.
type Analyzer struct {
	Solver   allocation.Solver
	Options  allocation.Options
	Mode     allocation.ObjectiveMode
	Division string
	Workers  int
}

//NewAnalyzer builds an analyzer from the run configuration, backed by the
//default optimization backend.
func NewAnalyzer(cfg util.RunConfiguration) *Analyzer {
	return &Analyzer{
		Solver: allocation.NewBranchBoundSolver(),
		Options: allocation.Options{
			RelativeGap: cfg.OptRelativeGap,
			TimeLimit:   cfg.OptTimeLimit,
		},
		Division: cfg.PayoffDivision,
		Workers:  cfg.Workers,
	}
}

//AnalyzeCoalitions solves every non-empty coalition of the scenario's
//providers and returns the induced game together with the coalition table.
//A coalition whose allocation problem has no solution keeps an effectively
//minus-infinite value and gets no payoff division.
func (a *Analyzer) AnalyzeCoalitions(s scenario.Scenario) (*gametheory.Game, map[gametheory.CID]types.CoalitionInfo, error) {
	n := s.NumCIPs
	game := gametheory.NewGame(n)
	coalitions := make(map[gametheory.CID]types.CoalitionInfo, 1<<uint(n)-1)

	//Group the coalition identifiers by size. Binary counting order keeps
	//each level internally sorted.
	bySize := make([][]gametheory.CID, n+1)
	gen := combinatorics.NewSubsetGenerator(n)
	for {
		members, ok := gen.Next()
		if !ok {
			break
		}
		cid := gametheory.MakeCID(members)
		bySize[len(members)] = append(bySize[len(members)], cid)
	}

	workers := a.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	for size := 1; size <= n; size++ {
		level := bySize[size]
		log.Debugf("Analyzing the %d coalitions of size %d", len(level), size)

		results := make([]types.CoalitionInfo, len(level))
		errs := make([]error, len(level))
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					results[i], errs[i] = a.solveCoalition(s, level[i])
				}
			}()
		}
		for i := range level {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		for _, err := range errs {
			if err != nil {
				return nil, nil, err
			}
		}

		//Record the whole level before appraising it: the core test and the
		//payoff division of a coalition read the values of its subsets.
		for _, info := range results {
			game.SetValue(info.CID, info.Value)
		}
		for i := range results {
			info := &results[i]
			if info.OptimalAllocation.Solved {
				if err := a.appraise(game, info); err != nil {
					return nil, nil, err
				}
			}
			coalitions[info.CID] = *info
		}
	}
	return game, coalitions, nil
}

//solveCoalition pools the members' machines, solves the placement problem
//and derives the coalition value as total revenue minus allocation cost.
func (a *Analyzer) solveCoalition(s scenario.Scenario, cid gametheory.CID) (types.CoalitionInfo, error) {
	members := cid.Players()
	info := types.CoalitionInfo{
		CID:               cid,
		OptimalAllocation: types.NewOptimalAllocationInfo(),
		Value:             -math.MaxFloat64,
	}

	model := allocation.NewCoalitionModel(s, members, a.Mode)
	solution, err := a.Solver.Solve(model, a.Options)
	if err != nil {
		return info, err
	}
	info.OptimalAllocation = solution
	if !solution.Solved {
		//No allocation means no payoff vector can satisfy the members.
		info.CoreEmpty = true
		log.Warningf("No feasible allocation for coalition %v", members)
		return info, nil
	}

	info.Value = coalitionRevenue(s, members) - solution.Cost
	info.CIPAllocations = cipAllocations(model, members, solution)
	log.Debugf("Coalition %v: cost=%g value=%g kwatt=%g", members, solution.Cost, info.Value, solution.KWatt)
	return info, nil
}

//appraise runs the game-theoretic part for one solved coalition: the core
//emptiness test, the configured payoff division and the membership of the
//resulting payoff vector in the core.
func (a *Analyzer) appraise(game *gametheory.Game, info *types.CoalitionInfo) error {
	sub := game.Subgame(info.CID.Players())

	empty, err := gametheory.CoreIsEmpty(sub)
	if err != nil {
		return err
	}
	info.CoreEmpty = empty

	switch a.Division {
	case util.BANZHAF_DIVISION:
		info.Payoffs = gametheory.BanzhafValue(sub)
	case util.NORM_BANZHAF_DIVISION:
		info.Payoffs = gametheory.NormBanzhafValue(sub)
	default:
		info.Payoffs = gametheory.ShapleyValue(sub)
	}
	if !empty {
		info.PayoffsInCore = gametheory.BelongsToCore(sub, info.Payoffs)
	}
	return nil
}

//coalitionRevenue is the hourly revenue the members collect from their VMs,
//independent of where the VMs are placed.
func coalitionRevenue(s scenario.Scenario, members []int) float64 {
	total := 0.0
	for _, c := range members {
		for v := 0; v < s.NumVMTypes; v++ {
			total += float64(s.CIPNumVMs[c][v]) * s.CIPRevenues[c][v]
		}
	}
	return total
}

//cipAllocations summarizes the allocation per member provider: how many of
//its PMs are powered, how many VMs they host and the power they draw.
func cipAllocations(model allocation.Model, members []int, sol types.OptimalAllocationInfo) map[int]types.CIPAllocationInfo {
	out := make(map[int]types.CIPAllocationInfo, len(members))
	for _, c := range members {
		out[c] = types.CIPAllocationInfo{}
	}
	for h := 0; h < model.NumPMs(); h++ {
		if !sol.PMPowerStates[h] {
			continue
		}
		entry := out[model.PMCIPs[h]]
		entry.NumOnPMs++
		u := 0.0
		for v := 0; v < model.NumVMs(); v++ {
			if sol.PMVMAllocations[h][v] {
				entry.NumVMs++
				u += model.VMSpecCPUs[model.VMCategories[v]][model.PMCategories[h]]
			}
		}
		g := model.PMCategories[h]
		entry.TotWatt += allocation.PMConsumedPower(model.PMSpecMinPowers[g], model.PMSpecMaxPowers[g], u)
		out[model.PMCIPs[h]] = entry
	}
	return out
}
