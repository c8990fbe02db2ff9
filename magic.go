package chess

import (
	"math/bits"
	"sync"
	"sync/atomic"
)

// magic holds the fancy-magic lookup data for one slider on one square.
type magic struct {
	mask    Bitboard // relevant occupancy, board edges removed
	magic   uint64
	shift   uint8
	attacks []Bitboard
}

func (m *magic) index(occupied Bitboard) uint64 {
	return (uint64(occupied&m.mask) * m.magic) >> m.shift
}

func (m *magic) lookup(occupied Bitboard) Bitboard {
	return m.attacks[m.index(occupied)]
}

var (
	rookMagics   [NumOfSquaresInBoard]magic
	bishopMagics [NumOfSquaresInBoard]magic

	magicsOnce  sync.Once
	magicsReady atomic.Bool
)

// InitMagics builds the rook and bishop magic tables. It is safe to call
// more than once and from several goroutines; only the first call does work.
// Until it has run, slider attacks are computed with the ray walk.
func InitMagics() {
	magicsOnce.Do(func() {
		var rng prng = 728
		for sq := A1; sq <= H8; sq++ {
			initMagic(&rookMagics[sq], sq, rookDirections, &rng)
			initMagic(&bishopMagics[sq], sq, bishopDirections, &rng)
		}
		magicsReady.Store(true)
	})
}

func initMagic(m *magic, sq Square, dirs []int, rng *prng) {
	edges := ((Rank1BB | Rank8BB) &^ BBRank(sq.Rank())) | ((FileABB | FileHBB) &^ BBFile(sq.File()))
	m.mask = generateSliderAttacks(sq, EmptyBB, dirs) &^ edges
	n := m.mask.PopCount()
	m.shift = uint8(64 - n)

	size := 1 << n
	occupancy := make([]Bitboard, 0, size)
	reference := make([]Bitboard, 0, size)
	// Carry-rippler: enumerate every subset of the mask.
	for b := EmptyBB; ; {
		occupancy = append(occupancy, b)
		reference = append(reference, generateSliderAttacks(sq, b, dirs))
		b = (b - m.mask) & m.mask
		if b == EmptyBB {
			break
		}
	}

	m.attacks = make([]Bitboard, size)
	epoch := make([]int, size)
	for attempt := 1; ; attempt++ {
		var candidate uint64
		for bits.OnesCount64((uint64(m.mask)*candidate)>>56) < 6 {
			candidate = rng.sparse()
		}
		m.magic = candidate

		ok := true
		for i, occ := range occupancy {
			idx := m.index(occ)
			if epoch[idx] < attempt {
				epoch[idx] = attempt
				m.attacks[idx] = reference[i]
			} else if m.attacks[idx] != reference[i] {
				ok = false
				break
			}
		}
		if ok {
			return
		}
	}
}

// prng is a xorshift64* generator. The state must never be zero.
type prng uint64

func (s *prng) next() uint64 {
	x := uint64(*s)
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	*s = prng(x)
	return x * 2685821657736338717
}

// sparse returns a number with roughly one bit in eight set.
func (s *prng) sparse() uint64 {
	return s.next() & s.next() & s.next()
}
