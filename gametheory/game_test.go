package gametheory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeCIDIsOrderIndependent(t *testing.T) {
	assert.Equal(t, MakeCID([]int{0, 2, 3}), MakeCID([]int{3, 0, 2}))
	assert.Equal(t, MakeCID([]int{1, 1, 2}), MakeCID([]int{2, 1}))
	assert.NotEqual(t, MakeCID([]int{0, 1}), MakeCID([]int{0, 2}))
}

func TestCIDPlayersRoundTrip(t *testing.T) {
	members := []int{1, 4, 6}
	cid := MakeCID(members)
	assert.Equal(t, members, cid.Players())
	assert.Equal(t, 3, cid.Size())
	assert.True(t, cid.Contains(4))
	assert.False(t, cid.Contains(0))
}

func TestGrandCID(t *testing.T) {
	assert.Equal(t, MakeCID([]int{0, 1, 2}), GrandCID(3))
	assert.Equal(t, CID(1), GrandCID(1))
}

func TestGameValues(t *testing.T) {
	g := NewGame(2)
	assert.Equal(t, 0.0, g.Value(MakeCID([]int{0})))
	assert.False(t, g.HasValue(MakeCID([]int{0})))

	g.SetValue(MakeCID([]int{0}), 2.5)
	assert.Equal(t, 2.5, g.Value(MakeCID([]int{0})))
	assert.Equal(t, 0.0, g.Value(EmptyCID))
}

func TestSubgameSharesCharacteristicFunction(t *testing.T) {
	g := NewGame(3)
	g.SetValue(MakeCID([]int{1}), 3)
	g.SetValue(MakeCID([]int{1, 2}), 7)

	sub := g.Subgame([]int{2, 1})
	assert.Equal(t, []int{1, 2}, sub.Players())
	assert.Equal(t, 3.0, sub.Value(MakeCID([]int{1})))
	assert.Equal(t, MakeCID([]int{1, 2}), sub.GrandCoalition())
	assert.Equal(t, 7.0, sub.Value(sub.GrandCoalition()))
}
