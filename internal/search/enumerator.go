package search

import "github.com/agbru/bealsearch/internal/modmath"

// Enumerator is a deterministic, lazy state machine over the candidate
// space. For each base a (ascending), it yields every base b in [1, a] with
// gcd(a, b) = 1 (ascending), and for each surviving pair every exponent pair
// (x, y) with x and y in [3, maxPow], x-major, both ascending. This is the
// canonical total order for the search; downstream consumers only depend on
// the produced set, but the machine itself is exhaustive and duplicate-free
// within one lifetime.
//
// An Enumerator is single-use: once exhausted it stays exhausted. Create a
// fresh instance to enumerate again.
type Enumerator struct {
	maxPow uint32
	lastA  uint32

	a, b, x, y uint32
	done       bool
}

// NewEnumerator creates an enumerator covering every base a in [1, maxBase].
func NewEnumerator(maxBase, maxPow uint32) *Enumerator {
	e := &Enumerator{maxPow: maxPow, lastA: maxBase, a: 1, b: 1, x: 3, y: 3}
	if maxBase < 1 || maxPow < 3 {
		e.done = true
	}
	return e
}

// NewPartitionEnumerator creates an enumerator restricted to the single
// partition a; it yields every valid (b, x, y) for that base.
func NewPartitionEnumerator(maxPow, a uint32) *Enumerator {
	e := &Enumerator{maxPow: maxPow, lastA: a, a: a, b: 1, x: 3, y: 3}
	if a < 1 || maxPow < 3 {
		e.done = true
	}
	return e
}

// Next yields the next quadruple in order. The second return value is false
// exactly when the sequence is exhausted; it stays false on every subsequent
// call.
func (e *Enumerator) Next() (Quad, bool) {
	if e.done {
		return Quad{}, false
	}
	q := Quad{A: e.a, X: e.x, B: e.b, Y: e.y}
	e.advance()
	return q, true
}

// advance moves the cursor to the next valid position, or marks the
// enumerator done. b = 1 is coprime to every a, so each base contributes at
// least one pair.
func (e *Enumerator) advance() {
	e.y++
	if e.y <= e.maxPow {
		return
	}
	e.y = 3
	e.x++
	if e.x <= e.maxPow {
		return
	}
	e.x = 3
	e.b++
	for e.b <= e.a && modmath.GCD(e.a, e.b) != 1 {
		e.b++
	}
	if e.b <= e.a {
		return
	}
	e.b = 1
	e.a++
	if e.a <= e.lastA {
		return
	}
	e.done = true
}
