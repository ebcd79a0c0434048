package formation

import (
	"math"

	"github.com/Cloud-Coop/cloudcoal/combinatorics"
	"github.com/Cloud-Coop/cloudcoal/gametheory"
	"github.com/Cloud-Coop/cloudcoal/types"
)

//paretoOptimalSelector keeps the partitions dominating, per provider, every
//payoff seen earlier in the enumeration. A candidate is rejected as soon as
//one provider fails to strictly improve on its best payoff so far; the
//remaining providers of that candidate do not update the running bests.
type paretoOptimalSelector struct{}

func (paretoOptimalSelector) Select(game *gametheory.Game, coalitions map[gametheory.CID]types.CoalitionInfo) []types.PartitionInfo {
	var optimal []types.PartitionInfo

	players := game.Players()
	bestPayoffs := make([]float64, len(players))
	for i := range bestPayoffs {
		bestPayoffs[i] = math.NaN()
	}

	gen := combinatorics.NewPartitionGenerator(players)
	for {
		blocks, ok := gen.Next()
		if !ok {
			break
		}
		part := buildPartition(blocks, coalitions)

		dominates := true
		for i, p := range players {
			payoff := part.Payoffs[p]
			if math.IsNaN(bestPayoffs[i]) || payoff > bestPayoffs[i] {
				bestPayoffs[i] = payoff
			} else {
				dominates = false
				break
			}
		}
		if dominates {
			optimal = append(optimal, part)
		}
	}
	return optimal
}
