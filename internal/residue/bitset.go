// Package residue implements the precomputed power-residue tables that drive
// the candidate filter. A Table stores c^z mod m for every base and exponent
// in range together with an exact membership index over the residue domain
// [0, m): a fixed-size bitset with one bit per possible residue, allocated
// once at construction and read-only thereafter. Because the index is exact
// (no false positives, no false negatives), a membership hit is always
// traceable to a concrete table entry.
package residue

// Bitset is a fixed-size set of uint32 values in [0, size). It is write-once:
// all Set calls happen during table construction, after which concurrent
// readers need no synchronization.
type Bitset struct {
	words []uint64
	size  uint64
}

// NewBitset allocates a bitset covering the domain [0, size).
// For the search's near-2^32 moduli this is a single ~512 MiB allocation;
// it is made exactly once per table.
func NewBitset(size uint64) *Bitset {
	return &Bitset{
		words: make([]uint64, (size+63)/64),
		size:  size,
	}
}

// Set marks v as a member. v must be below the size the bitset was created
// with.
func (b *Bitset) Set(v uint32) {
	b.words[v>>6] |= 1 << (v & 63)
}

// Contains reports whether v was previously Set. Values at or beyond the
// domain size are never members.
func (b *Bitset) Contains(v uint32) bool {
	if uint64(v) >= b.size {
		return false
	}
	return b.words[v>>6]&(1<<(v&63)) != 0
}

// Size returns the domain size the bitset covers.
func (b *Bitset) Size() uint64 {
	return b.size
}
