package coordinator

// WorkGenerator produces fresh partitions lazily: base values ascending from
// a configured start up to maxBase inclusive. The start lets a deployment
// skip a prefix of the search space already exhausted by prior work.
type WorkGenerator struct {
	next    uint32
	maxBase uint32
	last    uint32
	done    bool
}

// NewWorkGenerator creates a generator over [start, maxBase]. A start of
// zero is clamped to 1; a start beyond maxBase yields an already-exhausted
// generator.
func NewWorkGenerator(start, maxBase uint32) *WorkGenerator {
	if start < 1 {
		start = 1
	}
	g := &WorkGenerator{next: start, maxBase: maxBase}
	if start > maxBase {
		g.done = true
	}
	return g
}

// Next returns the next fresh partition. The second return value is false
// once the range is exhausted, and stays false.
func (g *WorkGenerator) Next() (uint32, bool) {
	if g.done {
		return 0, false
	}
	a := g.next
	g.last = a
	if a == g.maxBase {
		g.done = true
	} else {
		g.next++
	}
	return a, true
}

// Done reports whether the generator has produced its last partition.
func (g *WorkGenerator) Done() bool {
	return g.done
}

// Progress returns the completion fraction lastProduced/maxBase, in [0, 1].
// An exhausted generator reports 1.
func (g *WorkGenerator) Progress() float64 {
	if g.done {
		return 1.0
	}
	if g.maxBase == 0 || g.last == 0 {
		return 0.0
	}
	return float64(g.last) / float64(g.maxBase)
}
