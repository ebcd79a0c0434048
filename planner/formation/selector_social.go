package formation

import (
	"github.com/Cloud-Coop/cloudcoal/combinatorics"
	"github.com/Cloud-Coop/cloudcoal/gametheory"
	"github.com/Cloud-Coop/cloudcoal/types"
	"github.com/Cloud-Coop/cloudcoal/util"
)

//socialOptimumSelector keeps the partitions maximizing the social welfare,
//that is the sum of the coalition values. Partitions whose welfare ties the
//maximum within the float tolerance are all kept.
type socialOptimumSelector struct{}

func (socialOptimumSelector) Select(game *gametheory.Game, coalitions map[gametheory.CID]types.CoalitionInfo) []types.PartitionInfo {
	var best []types.PartitionInfo
	bestValue := 0.0

	gen := combinatorics.NewPartitionGenerator(game.Players())
	for {
		blocks, ok := gen.Next()
		if !ok {
			break
		}
		part := buildPartition(blocks, coalitions)

		switch {
		case len(best) == 0 || util.DefinitelyGreater(part.Value, bestValue):
			best = best[:0]
			best = append(best, part)
			bestValue = part.Value
		case util.EssentiallyEqual(part.Value, bestValue):
			best = append(best, part)
		}
	}
	return best
}
