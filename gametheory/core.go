package gametheory

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/Cloud-Coop/cloudcoal/util"
)

/* The core of a game is the set of payoff vectors that no sub-coalition can
   improve upon by breaking away: sum(x)=v(N) and sum_{i in S} x_i >= v(S)
   for every coalition S. Emptiness is decided with a linear program:
   minimize sum(x) subject to the rationality constraints of every proper
   non-empty coalition; the core is non-empty iff the optimum does not exceed
   v(N). */

//CoreIsEmpty reports whether the core of the game is empty. A failure inside
//the linear-program solver is returned as an error and is fatal upstream.
func CoreIsEmpty(g *Game) (bool, error) {
	members := g.Players()
	m := len(members)
	grand := g.Value(g.GrandCoalition())
	if m <= 1 {
		//A single player always keeps exactly v(N).
		return false, nil
	}

	//Coalitions with an effectively minus-infinite value cannot block any
	//payoff vector. Their constraints are clamped to a floor far below
	//every achievable payoff, which leaves the feasible region unchanged
	//but keeps the simplex numerically sane.
	const rhsFloor = -1e30

	//Standard form: x = u - w with u,w >= 0, one surplus variable per
	//rationality constraint. Rows with a negative right-hand side are
	//negated so that b stays non-negative.
	numRows := (1 << uint(m)) - 2
	numCols := 2*m + numRows
	a := mat.NewDense(numRows, numCols, nil)
	b := make([]float64, numRows)
	c := make([]float64, numCols)
	for i := 0; i < m; i++ {
		c[i] = 1
		c[m+i] = -1
	}

	row := 0
	for mask := uint64(1); mask < uint64(1)<<uint(m)-1; mask++ {
		subset := make([]int, 0, m)
		for i := 0; i < m; i++ {
			if mask&(uint64(1)<<uint(i)) != 0 {
				subset = append(subset, members[i])
			}
		}
		rhs := g.Value(MakeCID(subset))
		if rhs < rhsFloor {
			rhs = rhsFloor
		}
		sign := 1.0
		if rhs < 0 {
			sign = -1.0
			rhs = -rhs
		}
		for i := 0; i < m; i++ {
			if mask&(uint64(1)<<uint(i)) != 0 {
				a.Set(row, i, sign)
				a.Set(row, m+i, -sign)
			}
		}
		a.Set(row, 2*m+row, -sign)
		b[row] = rhs
		row++
	}

	optF, _, err := lp.Simplex(c, a, b, 0, nil)
	if err != nil {
		return true, fmt.Errorf("core linear program failed: %v", err)
	}
	return util.DefinitelyGreater(optF, grand), nil
}

//BelongsToCore reports whether the payoff vector lies inside the core of the
//game: efficient for the coalition of all players and rational for every
//sub-coalition, both within the numeric tolerance.
func BelongsToCore(g *Game, payoffs map[int]float64) bool {
	members := g.Players()
	m := len(members)

	total := 0.0
	for _, p := range members {
		total += payoffs[p]
	}
	if !util.ApproximatelyEqual(total, g.Value(g.GrandCoalition())) {
		return false
	}

	for mask := uint64(1); mask < uint64(1)<<uint(m)-1; mask++ {
		subset := make([]int, 0, m)
		sum := 0.0
		for i := 0; i < m; i++ {
			if mask&(uint64(1)<<uint(i)) != 0 {
				subset = append(subset, members[i])
				sum += payoffs[members[i]]
			}
		}
		if util.DefinitelyLess(sum, g.Value(MakeCID(subset))) {
			return false
		}
	}
	return true
}
