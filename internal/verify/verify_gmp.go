//go:build gmp

// This file provides a GMP-based candidate verifier, conditionally compiled
// with the "gmp" build tag. The build tag architecture ensures that:
//   - Projects can build without GMP (the default, using math/big)
//   - GMP support is opt-in, requiring: go build -tags=gmp
//   - The codebase remains portable across systems without libgmp installed
//
// System Requirements for GMP:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp
//   - Windows: Requires MinGW or WSL with libgmp
//
// The binding exposes no mpz_root, so the n-th root uses the same binary
// search as the math/big variant; the win comes from GMP's multiplication
// once the exponent bound, and therefore the sums, grow large.
package verify

import (
	"math/big"

	"github.com/ncw/gmp"
)

// Verify checks whether a^x + b^y is a perfect power c^z for some exponent z
// in [3, maxPow]. It computes the sum exactly, so a positive result is a
// proven identity, not a candidate.
//
// Parameters:
//   - a, x, b, y: The candidate quadruple.
//   - maxPow: The largest exponent z to try.
//
// Returns:
//   - Confirmation: The confirmed (c, z) pair when found.
//   - bool: true if the candidate is an exact identity.
func Verify(a, x, b, y, maxPow uint32) (Confirmation, bool) {
	s := new(gmp.Int).Exp(gmp.NewInt(int64(a)), gmp.NewInt(int64(x)), nil)
	s.Add(s, new(gmp.Int).Exp(gmp.NewInt(int64(b)), gmp.NewInt(int64(y)), nil))

	two := gmp.NewInt(2)
	pow := new(gmp.Int)
	for z := uint32(3); z <= maxPow; z++ {
		// Once 2^z exceeds the sum, no base c >= 2 can work, and c = 1
		// is impossible for s >= 2.
		if pow.Exp(two, gmp.NewInt(int64(z)), nil).Cmp(s) > 0 {
			break
		}
		c := nthRoot(s, z)
		if pow.Exp(c, gmp.NewInt(int64(z)), nil).Cmp(s) == 0 {
			return Confirmation{C: new(big.Int).SetBytes(c.Bytes()), Z: z}, true
		}
	}
	return Confirmation{}, false
}

// nthRoot returns floor(s^(1/n)) for s >= 1 and n >= 1, by binary search on
// the root's bit length.
func nthRoot(s *gmp.Int, n uint32) *gmp.Int {
	bits := (s.BitLen() / int(n)) + 1
	lo := gmp.NewInt(1)
	hi := new(gmp.Int).Lsh(gmp.NewInt(1), uint(bits))
	mid, pow := new(gmp.Int), new(gmp.Int)
	bigN := gmp.NewInt(int64(n))

	// Invariant: lo^n <= s < hi^n.
	for {
		mid.Add(lo, hi)
		mid.Rsh(mid, 1)
		if mid.Cmp(lo) == 0 {
			return new(gmp.Int).Set(lo)
		}
		pow.Exp(mid, bigN, nil)
		if pow.Cmp(s) <= 0 {
			lo.Set(mid)
		} else {
			hi.Set(mid)
		}
	}
}
