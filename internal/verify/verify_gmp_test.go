//go:build gmp

package verify

import (
	"testing"

	"github.com/ncw/gmp"
)

func TestNthRoot(t *testing.T) {
	t.Parallel()
	tests := []struct {
		s    int64
		n    uint32
		want int64
	}{
		{1, 3, 1},
		{8, 3, 2},
		{26, 3, 2},
		{27, 3, 3},
		{28, 3, 3},
		{243, 5, 3},
		{1024, 10, 2},
		{1, 100, 1},
	}
	for _, tt := range tests {
		got := nthRoot(gmp.NewInt(tt.s), tt.n)
		if got.Cmp(gmp.NewInt(tt.want)) != 0 {
			t.Errorf("nthRoot(%d, %d) = %v, want %d", tt.s, tt.n, got, tt.want)
		}
	}
}

// TestNthRootLargeExact checks a root large enough to exercise multi-limb
// arithmetic: (2^64 + 13)^3.
func TestNthRootLargeExact(t *testing.T) {
	t.Parallel()
	base := new(gmp.Int).Add(new(gmp.Int).Lsh(gmp.NewInt(1), 64), gmp.NewInt(13))
	cube := new(gmp.Int).Exp(base, gmp.NewInt(3), nil)

	if got := nthRoot(cube, 3); got.Cmp(base) != 0 {
		t.Errorf("nthRoot((2^64+13)^3, 3) = %v, want %v", got, base)
	}

	cube.Sub(cube, gmp.NewInt(1))
	want := new(gmp.Int).Sub(base, gmp.NewInt(1))
	if got := nthRoot(cube, 3); got.Cmp(want) != 0 {
		t.Errorf("nthRoot((2^64+13)^3 - 1, 3) = %v, want %v", got, want)
	}
}
