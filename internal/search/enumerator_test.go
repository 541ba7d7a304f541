package search

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/bealsearch/internal/modmath"
)

// expectedQuads brute-forces the set of quadruples the enumerator must
// produce for a single base.
func expectedQuads(a, maxPow uint32) map[Quad]struct{} {
	want := make(map[Quad]struct{})
	for b := uint32(1); b <= a; b++ {
		if modmath.GCD(a, b) != 1 {
			continue
		}
		for x := uint32(3); x <= maxPow; x++ {
			for y := uint32(3); y <= maxPow; y++ {
				want[Quad{A: a, X: x, B: b, Y: y}] = struct{}{}
			}
		}
	}
	return want
}

func drain(e *Enumerator) []Quad {
	var quads []Quad
	for {
		q, ok := e.Next()
		if !ok {
			return quads
		}
		quads = append(quads, q)
	}
}

func TestPartitionEnumeratorExactSet(t *testing.T) {
	t.Parallel()
	for _, a := range []uint32{1, 2, 6, 12, 30} {
		const maxPow = 7
		want := expectedQuads(a, maxPow)
		got := drain(NewPartitionEnumerator(maxPow, a))

		if len(got) != len(want) {
			t.Errorf("a=%d: produced %d quadruples, want %d", a, len(got), len(want))
		}
		seen := make(map[Quad]struct{}, len(got))
		for _, q := range got {
			if _, ok := want[q]; !ok {
				t.Errorf("a=%d: unexpected quadruple %v", a, q)
			}
			if _, dup := seen[q]; dup {
				t.Errorf("a=%d: duplicate quadruple %v", a, q)
			}
			seen[q] = struct{}{}
		}
	}
}

func TestEnumeratorExhaustionIsSticky(t *testing.T) {
	t.Parallel()
	e := NewPartitionEnumerator(3, 2)
	// a=2 with maxPow=3: b in {1}, single (x, y) = (3, 3).
	if q, ok := e.Next(); !ok || q != (Quad{A: 2, X: 3, B: 1, Y: 3}) {
		t.Fatalf("first Next() = %v, %v", q, ok)
	}
	for i := 0; i < 5; i++ {
		if _, ok := e.Next(); ok {
			t.Fatalf("Next() returned ok after exhaustion (call %d)", i)
		}
	}
}

func TestEnumeratorSkipsNonCoprimePairs(t *testing.T) {
	t.Parallel()
	// a=12 shares factors with 2,3,4,6,8,9,10,12; only 1,5,7,11 survive.
	got := drain(NewPartitionEnumerator(3, 12))
	bases := make(map[uint32]struct{})
	for _, q := range got {
		bases[q.B] = struct{}{}
	}
	want := []uint32{1, 5, 7, 11}
	if len(bases) != len(want) {
		t.Fatalf("surviving b values = %v, want %v", bases, want)
	}
	for _, b := range want {
		if _, ok := bases[b]; !ok {
			t.Errorf("b=%d missing from enumeration", b)
		}
	}
}

func TestGlobalEnumeratorCoversAllBases(t *testing.T) {
	t.Parallel()
	const (
		maxBase = 15
		maxPow  = 5
	)
	got := drain(NewEnumerator(maxBase, maxPow))

	want := make(map[Quad]struct{})
	for a := uint32(1); a <= maxBase; a++ {
		for q := range expectedQuads(a, maxPow) {
			want[q] = struct{}{}
		}
	}

	if len(got) != len(want) {
		t.Fatalf("produced %d quadruples, want %d", len(got), len(want))
	}
	for _, q := range got {
		if _, ok := want[q]; !ok {
			t.Errorf("unexpected quadruple %v", q)
		}
		delete(want, q)
	}
	if len(want) != 0 {
		t.Errorf("%d quadruples never produced, e.g. %v", len(want), firstKey(want))
	}
}

func firstKey(m map[Quad]struct{}) Quad {
	for q := range m {
		return q
	}
	return Quad{}
}

func TestEnumeratorDegenerateBounds(t *testing.T) {
	t.Parallel()
	if got := drain(NewEnumerator(0, 10)); len(got) != 0 {
		t.Errorf("maxBase=0 produced %d quadruples", len(got))
	}
	if got := drain(NewPartitionEnumerator(2, 5)); len(got) != 0 {
		t.Errorf("maxPow=2 produced %d quadruples", len(got))
	}
}

// TestEnumerator_PropertyBased checks the exact-set invariant over random
// bases and exponent bounds.
func TestEnumerator_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("partition enumeration equals the brute-force set", prop.ForAll(
		func(a, maxPow uint32) bool {
			want := expectedQuads(a, maxPow)
			got := drain(NewPartitionEnumerator(maxPow, a))
			if len(got) != len(want) {
				return false
			}
			for _, q := range got {
				if _, ok := want[q]; !ok {
					return false
				}
				delete(want, q)
			}
			return len(want) == 0
		},
		gen.UInt32Range(1, 40),
		gen.UInt32Range(3, 10),
	))

	properties.TestingRun(t)
}
