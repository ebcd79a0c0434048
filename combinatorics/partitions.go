package combinatorics

//PartitionGenerator enumerates every partition of an element slice into
//non-empty disjoint blocks, in lexicographic restricted-growth-string order.
//The first partition is the single block holding all elements; the last one
//is all singletons. Blocks are ordered by their smallest member.
type PartitionGenerator struct {
	elements []int
	codes    []int
	maxima   []int
	done     bool
}

//NewPartitionGenerator creates a generator over the partitions of the given
//elements. The slice is not copied; callers must not mutate it while the
//generator is live.
func NewPartitionGenerator(elements []int) *PartitionGenerator {
	n := len(elements)
	return &PartitionGenerator{
		elements: elements,
		codes:    make([]int, n),
		maxima:   make([]int, n),
		done:     n == 0,
	}
}

//HasNext reports whether at least one partition is still to be produced.
func (g *PartitionGenerator) HasNext() bool {
	return !g.done
}

//Next returns the blocks of the next partition. The second result is false
//once the enumeration is exhausted.
func (g *PartitionGenerator) Next() ([][]int, bool) {
	if g.done {
		return nil, false
	}
	blocks := g.current()
	g.advance()
	return blocks, true
}

//Reset rewinds the generator to the start of the enumeration.
func (g *PartitionGenerator) Reset() {
	for i := range g.codes {
		g.codes[i] = 0
		g.maxima[i] = 0
	}
	g.done = len(g.elements) == 0
}

func (g *PartitionGenerator) current() [][]int {
	numBlocks := 0
	for _, c := range g.codes {
		if c+1 > numBlocks {
			numBlocks = c + 1
		}
	}
	blocks := make([][]int, numBlocks)
	for i, c := range g.codes {
		blocks[c] = append(blocks[c], g.elements[i])
	}
	return blocks
}

//advance computes the successor restricted growth string: find the rightmost
//position (beyond the first) whose code can still grow, bump it, and zero the
//tail.
func (g *PartitionGenerator) advance() {
	n := len(g.codes)
	for i := n - 1; i > 0; i-- {
		if g.codes[i] <= g.maxima[i-1] {
			g.codes[i]++
			if g.codes[i] > g.maxima[i-1] {
				g.maxima[i] = g.codes[i]
			} else {
				g.maxima[i] = g.maxima[i-1]
			}
			for j := i + 1; j < n; j++ {
				g.codes[j] = 0
				g.maxima[j] = g.maxima[i]
			}
			return
		}
	}
	g.done = true
}
