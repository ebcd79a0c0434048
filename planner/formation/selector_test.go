package formation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cloud-Coop/cloudcoal/gametheory"
	"github.com/Cloud-Coop/cloudcoal/types"
)

//buildTable turns characteristic values and optional payoff divisions into a
//coalition table, with the members' payoffs defaulting to an equal share of
//the coalition value.
func buildTable(values map[gametheory.CID]float64, payoffs map[gametheory.CID]map[int]float64) map[gametheory.CID]types.CoalitionInfo {
	table := make(map[gametheory.CID]types.CoalitionInfo)
	for cid, value := range values {
		info := types.CoalitionInfo{CID: cid, Value: value}
		info.OptimalAllocation.Solved = true
		if p, ok := payoffs[cid]; ok {
			info.Payoffs = p
		} else {
			info.Payoffs = make(map[int]float64)
			members := cid.Players()
			for _, m := range members {
				info.Payoffs[m] = value / float64(len(members))
			}
		}
		table[cid] = info
	}
	return table
}

func cids(blocks ...[]int) []gametheory.CID {
	out := make([]gametheory.CID, len(blocks))
	for i, b := range blocks {
		out[i] = gametheory.MakeCID(b)
	}
	return out
}

func TestNashStableGrandOnly(t *testing.T) {
	//Joining up pays 2 each, staying alone pays 1: only the grand
	//coalition is Nash-stable, splitting invites a profitable move.
	game := gametheory.NewGame(2)
	table := buildTable(map[gametheory.CID]float64{
		gametheory.MakeCID([]int{0}):    1,
		gametheory.MakeCID([]int{1}):    1,
		gametheory.MakeCID([]int{0, 1}): 4,
	}, nil)

	stable := nashStableSelector{}.Select(game, table)

	require.Len(t, stable, 1)
	assert.Equal(t, cids([]int{0, 1}), stable[0].Coalitions)
}

func TestNashStableSingletonsOnly(t *testing.T) {
	//Cooperating destroys value, so all-singletons is the only stable
	//arrangement.
	game := gametheory.NewGame(2)
	table := buildTable(map[gametheory.CID]float64{
		gametheory.MakeCID([]int{0}):    2,
		gametheory.MakeCID([]int{1}):    2,
		gametheory.MakeCID([]int{0, 1}): 2,
	}, nil)

	stable := nashStableSelector{}.Select(game, table)

	require.Len(t, stable, 1)
	assert.Equal(t, cids([]int{0}, []int{1}), stable[0].Coalitions)
}

func TestNashStableMissingPayoffBlocksDeviationTarget(t *testing.T) {
	//The grand coalition has no payoff division, so a provider considering
	//to join the other cannot rule out a gain: the singleton partition is
	//rejected.
	game := gametheory.NewGame(2)
	table := buildTable(map[gametheory.CID]float64{
		gametheory.MakeCID([]int{0}):    1,
		gametheory.MakeCID([]int{1}):    1,
		gametheory.MakeCID([]int{0, 1}): 4,
	}, nil)
	grand := table[gametheory.MakeCID([]int{0, 1})]
	grand.Payoffs = nil
	table[gametheory.MakeCID([]int{0, 1})] = grand

	stable := nashStableSelector{}.Select(game, table)

	for _, part := range stable {
		assert.NotEqual(t, cids([]int{0}, []int{1}), part.Coalitions)
	}
}

func TestParetoOptimalFirstDominates(t *testing.T) {
	//The grand coalition is enumerated first and pays more to everybody:
	//nothing after it can strictly improve on all coordinates.
	game := gametheory.NewGame(2)
	table := buildTable(map[gametheory.CID]float64{
		gametheory.MakeCID([]int{0}):    1,
		gametheory.MakeCID([]int{1}):    1,
		gametheory.MakeCID([]int{0, 1}): 4,
	}, nil)

	optimal := paretoOptimalSelector{}.Select(game, table)

	require.Len(t, optimal, 1)
	assert.Equal(t, cids([]int{0, 1}), optimal[0].Coalitions)
}

func TestParetoOptimalLaterStrictImprovement(t *testing.T) {
	//Singletons strictly improve on the grand coalition for both
	//providers; both partitions are kept since each dominated everything
	//enumerated before it.
	game := gametheory.NewGame(2)
	table := buildTable(map[gametheory.CID]float64{
		gametheory.MakeCID([]int{0}):    2,
		gametheory.MakeCID([]int{1}):    2,
		gametheory.MakeCID([]int{0, 1}): 2,
	}, nil)

	optimal := paretoOptimalSelector{}.Select(game, table)

	require.Len(t, optimal, 2)
	assert.Equal(t, cids([]int{0, 1}), optimal[0].Coalitions)
	assert.Equal(t, cids([]int{0}, []int{1}), optimal[1].Coalitions)
}

func TestParetoOptimalMixedImprovementRejected(t *testing.T) {
	//The singleton partition improves the first provider but not the
	//second one: no Pareto improvement, only the grand coalition remains.
	game := gametheory.NewGame(2)
	table := buildTable(map[gametheory.CID]float64{
		gametheory.MakeCID([]int{0}):    3,
		gametheory.MakeCID([]int{1}):    1,
		gametheory.MakeCID([]int{0, 1}): 4,
	}, nil)

	optimal := paretoOptimalSelector{}.Select(game, table)

	require.Len(t, optimal, 1)
	assert.Equal(t, cids([]int{0, 1}), optimal[0].Coalitions)
}

func TestSocialOptimumKeepsAllTies(t *testing.T) {
	game := gametheory.NewGame(3)
	table := buildTable(map[gametheory.CID]float64{
		gametheory.MakeCID([]int{0}):       1,
		gametheory.MakeCID([]int{1}):       1,
		gametheory.MakeCID([]int{2}):       3,
		gametheory.MakeCID([]int{0, 1}):    2,
		gametheory.MakeCID([]int{0, 2}):    1,
		gametheory.MakeCID([]int{1, 2}):    1,
		gametheory.MakeCID([]int{0, 1, 2}): 5,
	}, nil)

	best := socialOptimumSelector{}.Select(game, table)

	//Three partitions reach the optimum welfare of 5, in enumeration
	//order: {0,1,2}, {0,1}{2} and {0}{1}{2}.
	require.Len(t, best, 3)
	assert.Equal(t, cids([]int{0, 1, 2}), best[0].Coalitions)
	assert.Equal(t, cids([]int{0, 1}, []int{2}), best[1].Coalitions)
	assert.Equal(t, cids([]int{0}, []int{1}, []int{2}), best[2].Coalitions)
	for _, part := range best {
		assert.InDelta(t, 5.0, part.Value, 1e-9)
	}
}

func TestSocialOptimumStrictWinnerClearsTies(t *testing.T) {
	game := gametheory.NewGame(2)
	table := buildTable(map[gametheory.CID]float64{
		gametheory.MakeCID([]int{0}):    1,
		gametheory.MakeCID([]int{1}):    1,
		gametheory.MakeCID([]int{0, 1}): 10,
	}, nil)

	best := socialOptimumSelector{}.Select(game, table)

	require.Len(t, best, 1)
	assert.Equal(t, cids([]int{0, 1}), best[0].Coalitions)
	assert.InDelta(t, 10.0, best[0].Value, 1e-9)
}

func TestMergeSplitSuperadditiveGrandOnly(t *testing.T) {
	game := gametheory.NewGame(3)
	table := buildTable(map[gametheory.CID]float64{
		gametheory.MakeCID([]int{0}):       1,
		gametheory.MakeCID([]int{1}):       1,
		gametheory.MakeCID([]int{2}):       1,
		gametheory.MakeCID([]int{0, 1}):    3,
		gametheory.MakeCID([]int{0, 2}):    3,
		gametheory.MakeCID([]int{1, 2}):    3,
		gametheory.MakeCID([]int{0, 1, 2}): 6,
	}, nil)

	stable := mergeSplitStableSelector{}.Select(game, table)

	require.Len(t, stable, 1)
	assert.Equal(t, cids([]int{0, 1, 2}), stable[0].Coalitions)
}

func TestMergeSplitIndifferenceKeepsBoth(t *testing.T) {
	//Merging and splitting move no value, so neither operation is
	//profitable and both partitions survive.
	game := gametheory.NewGame(2)
	table := buildTable(map[gametheory.CID]float64{
		gametheory.MakeCID([]int{0}):    1,
		gametheory.MakeCID([]int{1}):    1,
		gametheory.MakeCID([]int{0, 1}): 2,
	}, nil)

	stable := mergeSplitStableSelector{}.Select(game, table)

	require.Len(t, stable, 2)
	assert.Equal(t, cids([]int{0, 1}), stable[0].Coalitions)
	assert.Equal(t, cids([]int{0}, []int{1}), stable[1].Coalitions)
}

func TestMergeSplitSubadditiveSingletonsOnly(t *testing.T) {
	game := gametheory.NewGame(2)
	table := buildTable(map[gametheory.CID]float64{
		gametheory.MakeCID([]int{0}):    1,
		gametheory.MakeCID([]int{1}):    1,
		gametheory.MakeCID([]int{0, 1}): 1,
	}, nil)

	stable := mergeSplitStableSelector{}.Select(game, table)

	require.Len(t, stable, 1)
	assert.Equal(t, cids([]int{0}, []int{1}), stable[0].Coalitions)
}

func TestNewPartitionSelector(t *testing.T) {
	for _, strategy := range []string{"nash", "merge-split", "pareto", "social"} {
		selector, err := NewPartitionSelector(strategy)
		require.NoError(t, err, strategy)
		assert.NotNil(t, selector, strategy)
	}
	_, err := NewPartitionSelector("alphabetical")
	assert.Error(t, err)
}
