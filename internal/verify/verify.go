// Package verify re-checks candidate quadruples with exact arithmetic.
//
// The search engine emits probabilistic candidates: quadruples whose modular
// sums collide in both residue tables. Verification computes s = a^x + b^y
// exactly and searches for an exponent z with a perfect z-th root, which
// would make (a, x, b, y, c, z) an actual counter-example.
//
// Two implementations exist: the default math/big one, and a GMP-backed one
// compiled with the "gmp" build tag for faster root extraction on large
// exponent bounds.
package verify

import "math/big"

// Confirmation describes an exact-arithmetic confirmation of a candidate:
// a right-hand side c^z exactly equal to a^x + b^y.
type Confirmation struct {
	// C is the confirmed base of the right-hand side.
	C *big.Int
	// Z is the confirmed exponent, in [3, maxPow].
	Z uint32
}
