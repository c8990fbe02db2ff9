package bitset

import (
	"fmt"
	"math/bits"
)

const wordBits = 64

// Bitset is a fixed-size bit vector. The zero value is an empty set of
// length zero.
type Bitset struct {
	words []uint64
	n     uint64
}

// New creates a zeroed Bitset holding n bits.
func New(n uint64) *Bitset {
	return &Bitset{
		words: make([]uint64, wordsFor(n)),
		n:     n,
	}
}

func wordsFor(n uint64) uint64 {
	return (n + wordBits - 1) / wordBits
}

// Len returns the number of bits in the set.
func (b *Bitset) Len() uint64 { return b.n }

func (b *Bitset) check(i uint64) {
	if i >= b.n {
		panic(fmt.Sprintf("bitset: index %d out of range [0, %d)", i, b.n))
	}
}

// Test reports whether bit i is set.
func (b *Bitset) Test(i uint64) bool {
	b.check(i)
	return b.words[i/wordBits]&(1<<(i%wordBits)) != 0
}

// Set sets bit i.
func (b *Bitset) Set(i uint64) {
	b.check(i)
	b.words[i/wordBits] |= 1 << (i % wordBits)
}

// Reset clears bit i.
func (b *Bitset) Reset(i uint64) {
	b.check(i)
	b.words[i/wordBits] &^= 1 << (i % wordBits)
}

// Clear resets every bit.
func (b *Bitset) Clear() {
	clear(b.words)
}

// Count returns the number of set bits.
func (b *Bitset) Count() uint64 {
	return popcountWords(b.words)
}

// Any reports whether at least one bit is set.
func (b *Bitset) Any() bool {
	for _, w := range b.words {
		if w != 0 {
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (b *Bitset) Clone() *Bitset {
	c := &Bitset{words: make([]uint64, len(b.words)), n: b.n}
	copy(c.words, b.words)
	return c
}

// And returns a new Bitset holding the intersection of b and o.
// Both sets must have the same length.
func (b *Bitset) And(o *Bitset) *Bitset {
	return b.Clone().AndWith(o)
}

// AndWith intersects b with o in place and returns b.
// Both sets must have the same length.
func (b *Bitset) AndWith(o *Bitset) *Bitset {
	if b.n != o.n {
		panic(fmt.Sprintf("bitset: length mismatch %d != %d", b.n, o.n))
	}
	andWords(b.words, o.words)
	return b
}

// ForEach calls fn with the index of every set bit in ascending order.
func (b *Bitset) ForEach(fn func(i uint64)) {
	for wi, w := range b.words {
		base := uint64(wi) * wordBits
		for w != 0 {
			fn(base + uint64(bits.TrailingZeros64(w)))
			w &= w - 1
		}
	}
}

// Words exposes the backing words. Bits at or beyond Len are always zero.
func (b *Bitset) Words() []uint64 { return b.words }

// String renders the set as {i, j, ...}. Meant for debugging small sets.
func (b *Bitset) String() string {
	s := "{"
	first := true
	b.ForEach(func(i uint64) {
		if !first {
			s += ", "
		}
		first = false
		s += fmt.Sprint(i)
	})
	return s + "}"
}
