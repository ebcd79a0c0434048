package formation

import (
	"fmt"
	"math"

	"github.com/Cloud-Coop/cloudcoal/gametheory"
	"github.com/Cloud-Coop/cloudcoal/types"
	"github.com/Cloud-Coop/cloudcoal/util"
)

//PartitionSelector walks every partition of the provider set and returns the
//ones satisfying a stability or optimality criterion. Selectors are run after
//the coalition table is complete and must not mutate it.
type PartitionSelector interface {
	Select(game *gametheory.Game, coalitions map[gametheory.CID]types.CoalitionInfo) []types.PartitionInfo
}

//NewPartitionSelector maps a formation strategy name to its selector.
func NewPartitionSelector(strategy string) (PartitionSelector, error) {
	switch strategy {
	case util.NASH_STABLE_FORMATION:
		return nashStableSelector{}, nil
	case util.MERGE_SPLIT_STABLE_FORMATION:
		return mergeSplitStableSelector{}, nil
	case util.PARETO_OPTIMAL_FORMATION:
		return paretoOptimalSelector{}, nil
	case util.SOCIAL_OPTIMUM_FORMATION:
		return socialOptimumSelector{}, nil
	default:
		return nil, fmt.Errorf("unknown coalition formation strategy %q", strategy)
	}
}

//buildPartition assembles the candidate record of one partition: its
//coalition identifiers in block order, the summed value and the per-provider
//payoffs. A member of a coalition with no payoff division gets NaN, which
//the selectors treat according to their own rules.
func buildPartition(blocks [][]int, coalitions map[gametheory.CID]types.CoalitionInfo) types.PartitionInfo {
	part := types.PartitionInfo{Payoffs: make(map[int]float64)}
	for _, block := range blocks {
		cid := gametheory.MakeCID(block)
		info := coalitions[cid]
		part.Coalitions = append(part.Coalitions, cid)
		part.Value += info.Value
		for _, p := range block {
			if payoff, ok := info.Payoffs[p]; ok {
				part.Payoffs[p] = payoff
			} else {
				part.Payoffs[p] = math.NaN()
			}
		}
	}
	return part
}
