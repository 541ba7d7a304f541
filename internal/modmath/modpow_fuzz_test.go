package modmath

import "testing"

// FuzzModPow cross-checks ModPow against arbitrary-precision exponentiation.
// The seed corpus includes the inputs that historically triggered the
// missing-base-reduction overflow.
func FuzzModPow(f *testing.F) {
	f.Add(uint64(2), uint64(10), uint32(1000))
	f.Add(uint64(0), uint64(0), uint32(1))
	f.Add(^uint64(0), ^uint64(0), ^uint32(0))
	f.Add(uint64(4542062976100348463), uint64(4637193517411546665), uint32(3773338459))
	f.Add(uint64(70487458014159955), uint64(5566498974156504764), uint32(3541295600))

	f.Fuzz(func(t *testing.T, base, exponent uint64, modulus uint32) {
		if modulus == 0 {
			return
		}
		want := modPowOracle(base, exponent, modulus)
		got := ModPow(base, exponent, modulus)
		if got != want {
			t.Fatalf("ModPow(%d, %d, %d) = %d, want %d", base, exponent, modulus, got, want)
		}
	})
}
