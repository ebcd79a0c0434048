package gametheory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

//Three-player majority game: any coalition of two or more players wins.
func majorityGame() *Game {
	g := NewGame(3)
	g.SetValue(MakeCID([]int{0, 1}), 1)
	g.SetValue(MakeCID([]int{0, 2}), 1)
	g.SetValue(MakeCID([]int{1, 2}), 1)
	g.SetValue(MakeCID([]int{0, 1, 2}), 1)
	return g
}

func TestShapleyValueTwoPlayers(t *testing.T) {
	g := NewGame(2)
	g.SetValue(MakeCID([]int{0}), 1)
	g.SetValue(MakeCID([]int{1}), 2)
	g.SetValue(MakeCID([]int{0, 1}), 4)

	payoffs := ShapleyValue(g)
	assert.InDelta(t, 1.5, payoffs[0], eps)
	assert.InDelta(t, 2.5, payoffs[1], eps)
}

func TestShapleyValueIsEfficient(t *testing.T) {
	g := majorityGame()
	payoffs := ShapleyValue(g)
	sum := 0.0
	for _, p := range g.Players() {
		assert.InDelta(t, 1.0/3.0, payoffs[p], eps)
		sum += payoffs[p]
	}
	assert.InDelta(t, g.Value(g.GrandCoalition()), sum, eps)
}

func TestBanzhafValueNeedNotBeEfficient(t *testing.T) {
	g := majorityGame()
	payoffs := BanzhafValue(g)
	sum := 0.0
	for _, p := range g.Players() {
		assert.InDelta(t, 0.5, payoffs[p], eps)
		sum += payoffs[p]
	}
	//The raw Banzhaf payoffs exceed v(N)=1 here.
	assert.InDelta(t, 1.5, sum, eps)
}

func TestNormBanzhafValueIsEfficient(t *testing.T) {
	g := majorityGame()
	payoffs := NormBanzhafValue(g)
	sum := 0.0
	for _, p := range g.Players() {
		assert.InDelta(t, 1.0/3.0, payoffs[p], eps)
		sum += payoffs[p]
	}
	assert.InDelta(t, g.Value(g.GrandCoalition()), sum, eps)
}

func TestDivisionsOnSubgame(t *testing.T) {
	g := NewGame(3)
	g.SetValue(MakeCID([]int{1}), 2)
	g.SetValue(MakeCID([]int{2}), 4)
	g.SetValue(MakeCID([]int{1, 2}), 10)

	sub := g.Subgame([]int{1, 2})
	payoffs := ShapleyValue(sub)
	require.Len(t, payoffs, 2)
	assert.InDelta(t, 4.0, payoffs[1], eps)
	assert.InDelta(t, 6.0, payoffs[2], eps)
}
