// Package modmath provides the modular arithmetic primitives used by the
// counter-example search: overflow-free modular exponentiation and the
// Euclidean greatest common divisor. Both operate on fixed-width unsigned
// integers and are exact for their full input domains.
package modmath

// ModPow computes base^exponent mod modulus using binary (square-and-multiply)
// exponentiation. The base is reduced modulo the modulus before the first
// squaring; skipping that reduction overflows the 64-bit intermediate as soon
// as the base exceeds 2^32 and silently corrupts the result.
//
// The modulus is limited to 32 bits so that every intermediate product of two
// reduced operands fits in a uint64.
//
// Parameters:
//   - base: The base, any unsigned 64-bit value.
//   - exponent: The exponent, any unsigned 64-bit value.
//   - modulus: The modulus, must be non-zero.
//
// Returns:
//   - uint32: base^exponent mod modulus. For modulus 1 the result is 0.
func ModPow(base, exponent uint64, modulus uint32) uint32 {
	m := uint64(modulus)
	result := 1 % m
	base %= m
	for exponent > 0 {
		if exponent&1 == 1 {
			result = result * base % m
		}
		exponent >>= 1
		base = base * base % m
	}
	return uint32(result)
}

// AddMod returns (x + y) mod m for operands already reduced modulo m.
// The sum of two reduced operands is below 2m, so a single conditional
// subtraction suffices.
func AddMod(x, y, m uint32) uint32 {
	s := uint64(x) + uint64(y)
	if s >= uint64(m) {
		s -= uint64(m)
	}
	return uint32(s)
}
