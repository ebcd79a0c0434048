package formation

import (
	"github.com/Cloud-Coop/cloudcoal/combinatorics"
	"github.com/Cloud-Coop/cloudcoal/gametheory"
	"github.com/Cloud-Coop/cloudcoal/types"
	"github.com/Cloud-Coop/cloudcoal/util"
)

//nashStableSelector keeps the partitions where no provider strictly prefers
//to join another coalition of the partition or to leave for its own
//singleton coalition.
type nashStableSelector struct{}

func (nashStableSelector) Select(game *gametheory.Game, coalitions map[gametheory.CID]types.CoalitionInfo) []types.PartitionInfo {
	var stable []types.PartitionInfo

	gen := combinatorics.NewPartitionGenerator(game.Players())
	for {
		blocks, ok := gen.Next()
		if !ok {
			break
		}
		part := buildPartition(blocks, coalitions)
		if isNashStable(game, part, coalitions) {
			stable = append(stable, part)
		}
	}
	return stable
}

//isNashStable checks every unilateral deviation of every provider. A
//deviation target whose payoffs were never divided counts as a violation:
//nothing guarantees the provider would not gain there.
func isNashStable(game *gametheory.Game, part types.PartitionInfo, coalitions map[gametheory.CID]types.CoalitionInfo) bool {
	for _, p := range game.Players() {
		pCID := gametheory.MakeCID([]int{p})
		current := part.Payoffs[p]

		inSingleton := false
		for _, cid := range part.Coalitions {
			if cid.Contains(p) {
				inSingleton = cid == pCID
				continue
			}
			//Deviation: p joins this coalition of the partition.
			aug := coalitions[cid.Union(pCID)]
			payoff, ok := aug.Payoffs[p]
			if !ok || util.DefinitelyGreater(payoff, current) {
				return false
			}
		}

		//Deviation: p leaves for its own singleton coalition.
		if !inSingleton {
			single := coalitions[pCID]
			payoff, ok := single.Payoffs[p]
			if !ok || util.DefinitelyGreater(payoff, current) {
				return false
			}
		}
	}
	return true
}
