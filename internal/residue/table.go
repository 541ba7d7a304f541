package residue

import (
	"fmt"

	"github.com/agbru/bealsearch/internal/modmath"
)

// Table holds c^z mod modulus for every c in [1, maxBase] and z in [3, maxPow],
// plus the exact membership index over [0, modulus). A Table is immutable
// after New returns and is safe for concurrent lookups.
type Table struct {
	maxBase  uint32
	maxPow   uint32
	modulus  uint32
	residues []uint32 // row-major: (c-1)*(maxPow-2) + (z-3)
	members  *Bitset
}

// New builds the power-residue table for the given bounds and modulus.
// Construction cost is O(maxBase * maxPow) modular exponentiations plus one
// bitset allocation sized by the modulus; for production moduli near 2^32
// this dominates worker startup.
//
// Parameters:
//   - maxBase: The largest base c, must be at least 1.
//   - maxPow: The largest exponent z, must be at least 3.
//   - modulus: The table modulus, must be non-zero.
//
// Returns:
//   - *Table: The immutable table.
//   - error: An error if the bounds are invalid.
func New(maxBase, maxPow, modulus uint32) (*Table, error) {
	if maxBase < 1 {
		return nil, fmt.Errorf("residue: maxBase must be at least 1, got %d", maxBase)
	}
	if maxPow < 3 {
		return nil, fmt.Errorf("residue: maxPow must be at least 3, got %d", maxPow)
	}
	if modulus == 0 {
		return nil, fmt.Errorf("residue: modulus must be non-zero")
	}

	powers := uint64(maxPow) - 2
	t := &Table{
		maxBase:  maxBase,
		maxPow:   maxPow,
		modulus:  modulus,
		residues: make([]uint32, uint64(maxBase)*powers),
		members:  NewBitset(uint64(modulus)),
	}

	i := 0
	for c := uint32(1); c <= maxBase; c++ {
		for z := uint32(3); z <= maxPow; z++ {
			r := modmath.ModPow(uint64(c), uint64(z), modulus)
			t.residues[i] = r
			t.members.Set(r)
			i++
		}
	}
	return t, nil
}

// Get returns the precomputed c^z mod modulus. It panics if (c, z) lies
// outside the ranges the table was built for; callers own the bounds.
func (t *Table) Get(c, z uint32) uint32 {
	if c < 1 || c > t.maxBase || z < 3 || z > t.maxPow {
		panic(fmt.Sprintf("residue: lookup (%d, %d) outside table bounds [1,%d]x[3,%d]", c, z, t.maxBase, t.maxPow))
	}
	return t.residues[uint64(c-1)*(uint64(t.maxPow)-2)+uint64(z-3)]
}

// Contains reports whether v equals c^z mod modulus for some c, z within the
// table bounds. The check is exact: O(1), no false positives or negatives.
func (t *Table) Contains(v uint32) bool {
	return t.members.Contains(v)
}

// MaxBase returns the largest base the table covers.
func (t *Table) MaxBase() uint32 { return t.maxBase }

// MaxPow returns the largest exponent the table covers.
func (t *Table) MaxPow() uint32 { return t.maxPow }

// Modulus returns the table modulus.
func (t *Table) Modulus() uint32 { return t.modulus }
