// Package search implements the candidate-detection engine for the Beal
// conjecture counter-example search. It exposes an ordered enumerator over
// the (a, x, b, y) space and an Engine that filters every enumerated
// quadruple through two independently keyed power-residue tables. A quadruple
// that collides in both tables is a candidate only; exact big-integer
// verification is a separate concern.
package search

import "fmt"

// Quad is a candidate quadruple (a, x, b, y) for the equation a^x + b^y = c^z.
// The bases satisfy 1 <= b <= a and gcd(a, b) = 1; the exponents satisfy
// 3 <= x, y.
type Quad struct {
	A uint32 `json:"a"`
	X uint32 `json:"x"`
	B uint32 `json:"b"`
	Y uint32 `json:"y"`
}

// String renders the quadruple in the persisted result format: "a x b y".
func (q Quad) String() string {
	return fmt.Sprintf("%d %d %d %d", q.A, q.X, q.B, q.Y)
}
