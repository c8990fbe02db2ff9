package chess

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bb(squares ...Square) Bitboard {
	var b Bitboard
	for _, sq := range squares {
		b = b.Set(sq)
	}
	return b
}

func TestLeaperAttacks(t *testing.T) {
	assert.Equal(t, bb(B3, C2), GetKnightAttacks(A1))
	assert.Equal(t, bb(C2, E2, B3, F3, B5, F5, C6, E6), GetKnightAttacks(D4))
	assert.Equal(t, bb(A2, B2, B1), GetKingAttacks(A1))
	assert.Equal(t, bb(D5, F5), GetPawnAttacks(E4, White))
	assert.Equal(t, bb(D3, F3), GetPawnAttacks(E4, Black))
	assert.Equal(t, bb(B3), GetPawnAttacks(A2, White))
	// A white pawn attacks e5 from d4 or f4.
	assert.Equal(t, bb(D4, F4), GetPawnAttackedBy(White, E5))
	assert.Equal(t, EmptyBB, GetKnightAttacks(NoSquare))
}

func TestGeometry(t *testing.T) {
	assert.Equal(t, bb(B2, C3, D4, E5, F6, G7), Between(A1, H8))
	assert.Equal(t, EmptyBB, Between(A1, B3))
	assert.Equal(t, bb(A2, A3, A4, A5, A6, A7, A8), Ray(A1, North))
	assert.Equal(t, -1, getDirection(A1, B3))
	assert.Equal(t, SouthWest, getDirection(H8, A1))
	assert.Equal(t, NorthWest, getDirection(H1, A8))
}

func TestSliderAttacksClassical(t *testing.T) {
	occ := bb(D6, F4, B4)
	assert.Equal(t, bb(D5, D6, E4, F4, D3, D2, D1, C4, B4), generateSliderAttacks(D4, occ, rookDirections))
	assert.Equal(t, bb(B2, C3), generateSliderAttacks(A1, bb(C3), bishopDirections))
	assert.Equal(t, GetKnightAttacks(D4), Attacks(Knight, Black, D4, FullBB))
	assert.Equal(t, GetPawnAttacks(E4, Black), Attacks(Pawn, Black, E4, EmptyBB))
}

func TestMagicsMatchClassical(t *testing.T) {
	InitMagics()
	InitMagics() // idempotent
	require.True(t, magicsReady.Load())

	rng := rand.New(rand.NewSource(42))
	for sq := A1; sq <= H8; sq++ {
		for i := 0; i < 200; i++ {
			occ := Bitboard(rng.Uint64() & rng.Uint64())
			require.Equal(t, generateSliderAttacks(sq, occ, rookDirections), GenerateRookAttacks(sq, occ), "rook %s", sq)
			require.Equal(t, generateSliderAttacks(sq, occ, bishopDirections), GenerateBishopAttacks(sq, occ), "bishop %s", sq)
		}
	}
}

func TestAttackersTo(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/1b6/8/3N4/4K3/8 w - - 0 1")
	require.NoError(t, err)
	b := pos.Board()

	assert.Equal(t, bb(B5), b.AttackersTo(C4, Black))
	assert.Equal(t, bb(D3), b.AttackersTo(B4, White))
	assert.Equal(t, bb(D3, E2), b.AttackersTo(E1, White))
	// d3 stands between the bishop and the king on the b5-e2 diagonal.
	assert.Equal(t, bb(D3), b.Pinned(White))
	assert.Equal(t, EmptyBB, b.Pinned(Black))
}

func TestPinned(t *testing.T) {
	// Bishop a6, knight d3, king f1: the knight is pinned along the diagonal.
	pos, err := ParseFEN("4k3/8/b7/8/8/3N4/8/5K2 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, bb(D3), pos.Board().Pinned(White))
	assert.Equal(t, EmptyBB, pos.Board().Pinned(Black))

	// Two pieces between king and slider: neither is pinned.
	pos, err = ParseFEN("4k3/8/b7/8/2N5/3N4/8/5K2 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, EmptyBB, pos.Board().Pinned(White))
}

func TestCaptureLeavesKingSafe(t *testing.T) {
	// The knight on d3 is pinned by the bishop on a6 and cannot take on e5.
	pos, err := ParseFEN("4k3/8/b7/4p3/8/3N4/8/5K2 w - - 0 1")
	require.NoError(t, err)
	assert.False(t, pos.Board().CaptureLeavesKingSafe(D3, E5))

	// The king cannot capture a defended piece.
	pos, err = ParseFEN("4k3/8/8/8/8/2b5/3p4/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.False(t, pos.Board().CaptureLeavesKingSafe(E1, D2))

	pos, err = ParseFEN("4k3/8/8/8/8/8/3p4/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, pos.Board().CaptureLeavesKingSafe(E1, D2))
	assert.False(t, pos.Board().CaptureLeavesKingSafe(A1, D2))
}
