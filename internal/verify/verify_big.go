//go:build !gmp

package verify

import "math/big"

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
	s := new(big.Int).Exp(big.NewInt(int64(a)), big.NewInt(int64(x)), nil)
	s.Add(s, new(big.Int).Exp(big.NewInt(int64(b)), big.NewInt(int64(y)), nil))

	two := big.NewInt(2)
	pow := new(big.Int)
	for z := uint32(3); z <= maxPow; z++ {
		// Once 2^z exceeds the sum, no base c >= 2 can work, and c = 1
		// is impossible for s >= 2.
		if pow.Exp(two, big.NewInt(int64(z)), nil).Cmp(s) > 0 {
			break
		}
		c := nthRoot(s, z)
		if pow.Exp(c, big.NewInt(int64(z)), nil).Cmp(s) == 0 {
			return Confirmation{C: c, Z: z}, true
		}
	}
	return Confirmation{}, false
}

// nthRoot returns floor(s^(1/n)) for s >= 1 and n >= 1, by binary search on
// the root's bit length.
func nthRoot(s *big.Int, n uint32) *big.Int {
	bits := (s.BitLen() / int(n)) + 1
	lo := big.NewInt(1)
	hi := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	mid, pow := new(big.Int), new(big.Int)
	bigN := big.NewInt(int64(n))

	// Invariant: lo^n <= s < hi^n.
	for {
		mid.Add(lo, hi)
		mid.Rsh(mid, 1)
		if mid.Cmp(lo) == 0 {
			return new(big.Int).Set(lo)
		}
		pow.Exp(mid, bigN, nil)
		if pow.Cmp(s) <= 0 {
			lo.Set(mid)
		} else {
			hi.Set(mid)
		}
	}
}
