//Package combinatorics provides lazy generators for the subset lattice and
//the set-partition space of a small index set. Both generators hand out the
//next element in a fixed canonical order, so enumerations are deterministic
//and nothing is materialized up front even though the totals are exponential.
package combinatorics

//SubsetGenerator enumerates every non-empty subset of {0,...,n-1} in binary
//counting order. Counting order guarantees that every proper subset of a set
//is produced before the set itself.
type SubsetGenerator struct {
	n    int
	mask uint64
	last uint64
}

//NewSubsetGenerator creates a generator over the non-empty subsets of an
//index set of size n. n must not exceed 63.
func NewSubsetGenerator(n int) *SubsetGenerator {
	return &SubsetGenerator{n: n, mask: 0, last: (uint64(1) << uint(n)) - 1}
}

//HasNext reports whether at least one subset is still to be produced.
func (g *SubsetGenerator) HasNext() bool {
	return g.mask < g.last
}

//Next returns the members of the next subset in ascending index order.
//The second result is false once the enumeration is exhausted.
func (g *SubsetGenerator) Next() ([]int, bool) {
	if !g.HasNext() {
		return nil, false
	}
	g.mask++
	members := make([]int, 0, g.n)
	for i := 0; i < g.n; i++ {
		if g.mask&(uint64(1)<<uint(i)) != 0 {
			members = append(members, i)
		}
	}
	return members, true
}

//Reset rewinds the generator to the start of the enumeration.
func (g *SubsetGenerator) Reset() {
	g.mask = 0
}
