package search

import (
	"context"
	"errors"
	"math/big"
	"testing"

	apperrors "github.com/agbru/bealsearch/internal/errors"
)

// oracleSearch recomputes the candidate set for the given bounds entirely
// with arbitrary-precision arithmetic: residue sets from big.Int
// exponentiation, coprimality from big.Int GCD, and the modular sums from
// full-precision a^x + b^y reduced at the end. It shares no code with the
// engine's modular path.
func oracleSearch(maxBase, maxPow uint32, primes [2]uint32) map[Quad]struct{} {
	memberships := make([]map[uint32]struct{}, 2)
	for i, m := range primes {
		members := make(map[uint32]struct{})
		mod := new(big.Int).SetUint64(uint64(m))
		for c := uint32(1); c <= maxBase; c++ {
			for z := uint32(3); z <= maxPow; z++ {
				r := new(big.Int).Exp(
					new(big.Int).SetUint64(uint64(c)),
					new(big.Int).SetUint64(uint64(z)),
					mod)
				members[uint32(r.Uint64())] = struct{}{}
			}
		}
		memberships[i] = members
	}

	want := make(map[Quad]struct{})
	for a := uint32(1); a <= maxBase; a++ {
		for b := uint32(1); b <= a; b++ {
			g := new(big.Int).GCD(nil, nil,
				new(big.Int).SetUint64(uint64(a)),
				new(big.Int).SetUint64(uint64(b)))
			if g.Uint64() != 1 {
				continue
			}
			for x := uint32(3); x <= maxPow; x++ {
				ax := new(big.Int).Exp(
					new(big.Int).SetUint64(uint64(a)),
					new(big.Int).SetUint64(uint64(x)), nil)
				for y := uint32(3); y <= maxPow; y++ {
					by := new(big.Int).Exp(
						new(big.Int).SetUint64(uint64(b)),
						new(big.Int).SetUint64(uint64(y)), nil)
					sum := new(big.Int).Add(ax, by)

					hit := true
					for i, m := range primes {
						r := new(big.Int).Mod(sum, new(big.Int).SetUint64(uint64(m)))
						if _, ok := memberships[i][uint32(r.Uint64())]; !ok {
							hit = false
							break
						}
					}
					if hit {
						want[Quad{A: a, X: x, B: b, Y: y}] = struct{}{}
					}
				}
			}
		}
	}
	return want
}

// TestEngineMatchesOracle compares the union of SearchPartition over every
// partition against an independent arbitrary-precision reference at a small
// scale. Small moduli are deliberate: they make collisions frequent enough
// to exercise both the hit and miss paths.
func TestEngineMatchesOracle(t *testing.T) {
	t.Parallel()
	const (
		maxBase = 30
		maxPow  = 8
	)
	primes := [2]uint32{997, 1009}

	eng, err := NewEngine(Config{MaxBase: maxBase, MaxPow: maxPow, Primes: primes})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	got := make(map[Quad]struct{})
	ctx := context.Background()
	for a := uint32(1); a <= maxBase; a++ {
		quads, err := eng.SearchPartition(ctx, a)
		if err != nil {
			t.Fatalf("SearchPartition(%d): %v", a, err)
		}
		for _, q := range quads {
			if q.A != a {
				t.Errorf("SearchPartition(%d) emitted quadruple for a=%d", a, q.A)
			}
			if _, dup := got[q]; dup {
				t.Errorf("duplicate candidate %v", q)
			}
			got[q] = struct{}{}
		}
	}

	want := oracleSearch(maxBase, maxPow, primes)
	if len(want) == 0 {
		t.Fatal("oracle produced no candidates; the fixture no longer exercises the hit path")
	}
	for q := range want {
		if _, ok := got[q]; !ok {
			t.Errorf("candidate %v missing from engine output", q)
		}
	}
	for q := range got {
		if _, ok := want[q]; !ok {
			t.Errorf("engine emitted %v, absent from oracle output", q)
		}
	}
}

func TestEngineRejectsEqualPrimes(t *testing.T) {
	t.Parallel()
	_, err := NewEngine(Config{MaxBase: 10, MaxPow: 5, Primes: [2]uint32{97, 97}})
	if err == nil {
		t.Fatal("NewEngine accepted an identical modulus pair")
	}
}

func TestSearchPartitionOutOfRange(t *testing.T) {
	t.Parallel()
	eng, err := NewEngine(Config{MaxBase: 10, MaxPow: 5, Primes: [2]uint32{997, 1009}})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	for _, a := range []uint32{0, 11, 4294967295} {
		if _, err := eng.SearchPartition(context.Background(), a); err == nil {
			t.Errorf("SearchPartition(%d) succeeded for out-of-range partition", a)
		} else {
			var ve apperrors.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("SearchPartition(%d) error = %v, want ValidationError", a, err)
			}
		}
	}
}

// TestSearchPartitionCapacityOverflow forces the capacity error with tiny
// moduli, under which nearly every sum collides in both tables.
func TestSearchPartitionCapacityOverflow(t *testing.T) {
	t.Parallel()
	eng, err := NewEngine(Config{MaxBase: 10, MaxPow: 6, Primes: [2]uint32{5, 7}, MaxResults: 1})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	_, err = eng.SearchPartition(context.Background(), 7)
	if !errors.Is(err, ErrResultCapacity) {
		t.Fatalf("SearchPartition error = %v, want ErrResultCapacity", err)
	}
}

func TestSearchPartitionCanceledContext(t *testing.T) {
	t.Parallel()
	// maxPow=100 gives ~9.6k steps per coprime pair, enough to reach the
	// periodic cancellation check.
	eng, err := NewEngine(Config{MaxBase: 10, MaxPow: 100, Primes: [2]uint32{1000003, 1000033}})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := eng.SearchPartition(ctx, 9); !errors.Is(err, context.Canceled) {
		t.Fatalf("SearchPartition error = %v, want context.Canceled", err)
	}
}

func TestEngineParameterAccessors(t *testing.T) {
	t.Parallel()
	cfg := Config{MaxBase: 12, MaxPow: 9, Primes: [2]uint32{997, 1009}}
	eng, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if eng.MaxBase() != 12 || eng.MaxPow() != 9 || eng.Primes() != cfg.Primes {
		t.Errorf("accessors = (%d, %d, %v), want (12, 9, %v)",
			eng.MaxBase(), eng.MaxPow(), eng.Primes(), cfg.Primes)
	}
}
