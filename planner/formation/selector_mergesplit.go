package formation

import (
	"github.com/Cloud-Coop/cloudcoal/combinatorics"
	"github.com/Cloud-Coop/cloudcoal/gametheory"
	"github.com/Cloud-Coop/cloudcoal/types"
	"github.com/Cloud-Coop/cloudcoal/util"
)

//mergeSplitStableSelector keeps the partitions stable under arbitrary merge
//and split operations: no coalition of the partition is worth strictly less
//than one of its own sub-partitions, and no group of coalitions of the
//partition is jointly worth strictly less than its merger.
type mergeSplitStableSelector struct{}

func (mergeSplitStableSelector) Select(game *gametheory.Game, coalitions map[gametheory.CID]types.CoalitionInfo) []types.PartitionInfo {
	var stable []types.PartitionInfo

	gen := combinatorics.NewPartitionGenerator(game.Players())
	for {
		blocks, ok := gen.Next()
		if !ok {
			break
		}
		part := buildPartition(blocks, coalitions)
		if splitStable(blocks, coalitions) && mergeStable(part.Coalitions, coalitions) {
			stable = append(stable, part)
		}
	}
	return stable
}

//splitStable checks that no coalition of the partition can be split into
//sub-coalitions jointly worth strictly more.
func splitStable(blocks [][]int, coalitions map[gametheory.CID]types.CoalitionInfo) bool {
	for _, block := range blocks {
		value := coalitions[gametheory.MakeCID(block)].Value

		sub := combinatorics.NewPartitionGenerator(block)
		for {
			subBlocks, ok := sub.Next()
			if !ok {
				break
			}
			split := 0.0
			for _, b := range subBlocks {
				split += coalitions[gametheory.MakeCID(b)].Value
			}
			if util.DefinitelyLess(value, split) {
				return false
			}
		}
	}
	return true
}

//mergeStable checks that no group of coalitions of the partition is jointly
//worth strictly less than the coalition formed by merging them.
func mergeStable(cids []gametheory.CID, coalitions map[gametheory.CID]types.CoalitionInfo) bool {
	gen := combinatorics.NewSubsetGenerator(len(cids))
	for {
		indexes, ok := gen.Next()
		if !ok {
			break
		}
		separate := 0.0
		merged := gametheory.EmptyCID
		for _, i := range indexes {
			separate += coalitions[cids[i]].Value
			merged = merged.Union(cids[i])
		}
		if util.DefinitelyLess(separate, coalitions[merged].Value) {
			return false
		}
	}
	return true
}
