//Package gametheory implements the cooperative-game primitives of the
//coalition analysis: canonical coalition identifiers, a transferable-utility
//game with an explicit characteristic function, the Shapley and Banzhaf
//value divisions and the core tests.
package gametheory

import (
	"math/bits"
	"sort"
)

//CID is the canonical identifier of a coalition: a bit set over the player
//index space. Two member sets with the same players always produce the same
//CID, which makes it usable as a map key across the whole run.
type CID uint64

//EmptyCID identifies the empty coalition.
const EmptyCID CID = 0

//MakeCID builds the identifier of the coalition formed by the given players.
//Order and duplicates in the input do not matter.
func MakeCID(players []int) CID {
	var cid CID
	for _, p := range players {
		cid |= CID(1) << uint(p)
	}
	return cid
}

//GrandCID returns the identifier of the grand coalition of n players.
func GrandCID(n int) CID {
	return CID(1)<<uint(n) - 1
}

//Players returns the members of the coalition in ascending order.
func (c CID) Players() []int {
	players := make([]int, 0, bits.OnesCount64(uint64(c)))
	for rest := uint64(c); rest != 0; {
		p := bits.TrailingZeros64(rest)
		players = append(players, p)
		rest &= rest - 1
	}
	return players
}

//Size returns the number of members.
func (c CID) Size() int {
	return bits.OnesCount64(uint64(c))
}

//Contains reports whether player p is a member.
func (c CID) Contains(p int) bool {
	return c&(CID(1)<<uint(p)) != 0
}

//Union returns the identifier of the union of the two coalitions.
func (c CID) Union(o CID) CID {
	return c | o
}

//Game is a transferable-utility cooperative game with an explicit
//characteristic function. The empty coalition is worth zero; coalitions with
//no recorded value are worth zero as well.
type Game struct {
	players []int
	values  map[CID]float64
}

//NewGame creates a game over the players {0,...,n-1}.
func NewGame(n int) *Game {
	players := make([]int, n)
	for i := range players {
		players[i] = i
	}
	return &Game{players: players, values: make(map[CID]float64)}
}

//Players returns the game's players in ascending order.
func (g *Game) Players() []int {
	return g.players
}

//NumPlayers returns the number of players.
func (g *Game) NumPlayers() int {
	return len(g.players)
}

//SetValue records the characteristic-function value of a coalition.
func (g *Game) SetValue(cid CID, value float64) {
	g.values[cid] = value
}

//Value returns the characteristic-function value of a coalition, or zero if
//the coalition is empty or was never recorded.
func (g *Game) Value(cid CID) float64 {
	return g.values[cid]
}

//HasValue reports whether a value was recorded for the coalition.
func (g *Game) HasValue(cid CID) bool {
	_, ok := g.values[cid]
	return ok
}

//GrandCoalition returns the identifier of the coalition of all players.
func (g *Game) GrandCoalition() CID {
	return MakeCID(g.players)
}

//Subgame restricts the game to the given members. The restricted game shares
//the characteristic function of the parent, so player indices (and therefore
//CIDs) keep their meaning from the full game.
func (g *Game) Subgame(members []int) *Game {
	sorted := append([]int(nil), members...)
	sort.Ints(sorted)
	return &Game{players: sorted, values: g.values}
}
