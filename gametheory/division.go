package gametheory

import (
	"gonum.org/v1/gonum/floats"
)

/* Value division methods: each one splits a coalition's value among its
   members. Shapley is efficient (payoffs sum to the grand value); the raw
   Banzhaf value generally is not, which is why a normalized variant exists. */

//ShapleyValue computes the Shapley payoff of every player of the game.
func ShapleyValue(g *Game) map[int]float64 {
	players := g.Players()
	m := len(players)
	fact := factorials(m)
	payoffs := make(map[int]float64, m)

	for idx, p := range players {
		others := withoutIndex(players, idx)
		sum := 0.0
		forEachSubset(others, func(subset []int) {
			s := len(subset)
			weight := fact[s] * fact[m-s-1] / fact[m]
			with := MakeCID(subset) | MakeCID([]int{p})
			sum += weight * (g.Value(with) - g.Value(MakeCID(subset)))
		})
		payoffs[p] = sum
	}
	return payoffs
}

//BanzhafValue computes the (raw) Banzhaf payoff of every player: the average
//marginal contribution over all coalitions of the other players.
func BanzhafValue(g *Game) map[int]float64 {
	players := g.Players()
	m := len(players)
	scale := 1.0
	if m > 1 {
		scale = 1.0 / float64(uint64(1)<<uint(m-1))
	}
	payoffs := make(map[int]float64, m)

	for idx, p := range players {
		others := withoutIndex(players, idx)
		sum := 0.0
		forEachSubset(others, func(subset []int) {
			with := MakeCID(subset) | MakeCID([]int{p})
			sum += g.Value(with) - g.Value(MakeCID(subset))
		})
		payoffs[p] = sum * scale
	}
	return payoffs
}

//NormBanzhafValue rescales the raw Banzhaf payoffs so that they sum to the
//value of the coalition of all players. When the raw payoffs sum to zero the
//raw values are returned unchanged, since no rescaling exists.
func NormBanzhafValue(g *Game) map[int]float64 {
	payoffs := BanzhafValue(g)
	raw := make([]float64, 0, len(payoffs))
	for _, v := range payoffs {
		raw = append(raw, v)
	}
	total := floats.Sum(raw)
	if total == 0 {
		return payoffs
	}
	grand := g.Value(g.GrandCoalition())
	for p, v := range payoffs {
		payoffs[p] = v * grand / total
	}
	return payoffs
}

//forEachSubset calls fn for every subset of the elements, the empty set
//included. The slice passed to fn is reused between calls.
func forEachSubset(elements []int, fn func(subset []int)) {
	n := len(elements)
	subset := make([]int, 0, n)
	for mask := uint64(0); mask < uint64(1)<<uint(n); mask++ {
		subset = subset[:0]
		for i := 0; i < n; i++ {
			if mask&(uint64(1)<<uint(i)) != 0 {
				subset = append(subset, elements[i])
			}
		}
		fn(subset)
	}
}

func withoutIndex(players []int, idx int) []int {
	others := make([]int, 0, len(players)-1)
	others = append(others, players[:idx]...)
	return append(others, players[idx+1:]...)
}

func factorials(n int) []float64 {
	fact := make([]float64, n+1)
	fact[0] = 1
	for i := 1; i <= n; i++ {
		fact[i] = fact[i-1] * float64(i)
	}
	return fact
}
