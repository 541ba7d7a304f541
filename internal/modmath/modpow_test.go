package modmath

import (
	"math/big"
	"math/rand"
	"testing"
)

// modPowOracle computes base^exponent mod modulus with arbitrary-precision
// arithmetic. It is the reference against which ModPow is validated.
func modPowOracle(base, exponent uint64, modulus uint32) uint32 {
	b := new(big.Int).SetUint64(base)
	e := new(big.Int).SetUint64(exponent)
	m := new(big.Int).SetUint64(uint64(modulus))
	r := new(big.Int).Exp(b, e, m)
	return uint32(r.Uint64())
}

func TestModPowDenseSweep(t *testing.T) {
	t.Parallel()
	for base := uint64(1); base <= 50; base++ {
		for exponent := uint64(0); exponent <= 50; exponent++ {
			for modulus := uint32(1); modulus <= 50; modulus++ {
				want := modPowOracle(base, exponent, modulus)
				got := ModPow(base, exponent, modulus)
				if got != want {
					t.Fatalf("ModPow(%d, %d, %d) = %d, want %d", base, exponent, modulus, got, want)
				}
			}
		}
	}
}

// TestModPowRegressions pins the historical overflow bug: when the base
// exceeds the modulus, the first squaring overflows unless the base is
// reduced first. These exact inputs exposed the bug.
func TestModPowRegressions(t *testing.T) {
	t.Parallel()
	cases := []struct {
		base, exponent uint64
		modulus        uint32
	}{
		{4542062976100348463, 4637193517411546665, 3773338459},
		{70487458014159955, 5566498974156504764, 3541295600},
	}
	for _, tc := range cases {
		want := modPowOracle(tc.base, tc.exponent, tc.modulus)
		got := ModPow(tc.base, tc.exponent, tc.modulus)
		if got != want {
			t.Errorf("ModPow(%d, %d, %d) = %d, want %d", tc.base, tc.exponent, tc.modulus, got, want)
		}
	}
}

func TestModPowModulusOne(t *testing.T) {
	t.Parallel()
	for _, base := range []uint64{0, 1, 2, 1 << 40, ^uint64(0)} {
		for _, exponent := range []uint64{0, 1, 17, ^uint64(0)} {
			if got := ModPow(base, exponent, 1); got != 0 {
				t.Errorf("ModPow(%d, %d, 1) = %d, want 0", base, exponent, got)
			}
		}
	}
}

func TestModPowRandomSweep(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		base := rng.Uint64()
		exponent := rng.Uint64()
		modulus := uint32(rng.Uint64())
		if modulus == 0 {
			modulus = 1
		}
		want := modPowOracle(base, exponent, modulus)
		got := ModPow(base, exponent, modulus)
		if got != want {
			t.Fatalf("ModPow(%d, %d, %d) = %d, want %d", base, exponent, modulus, got, want)
		}
	}
}

func TestAddMod(t *testing.T) {
	t.Parallel()
	cases := []struct {
		x, y, m, want uint32
	}{
		{0, 0, 7, 0},
		{3, 4, 7, 0},
		{6, 6, 7, 5},
		{4294967290, 4294967290, 4294967291, 4294967289},
		{1, 0, 2, 1},
	}
	for _, tc := range cases {
		if got := AddMod(tc.x, tc.y, tc.m); got != tc.want {
			t.Errorf("AddMod(%d, %d, %d) = %d, want %d", tc.x, tc.y, tc.m, got, tc.want)
		}
	}
}

func BenchmarkModPow(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ModPow(uint64(i)+3, uint64(i)*2654435761, 4294967291)
	}
}
