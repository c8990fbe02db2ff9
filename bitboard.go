package chess

import (
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit integer used to represent the state of a chessboard.
// Bit i corresponds to Square(i): A1 is the least significant bit, H8 the most.
type Bitboard uint64

// --- Constants ---

const (
	NumOfSquaresInBoard = 64 // Total squares on the board.
	NumOfFiles          = 8  // Number of files (columns).
	NumOfRanks          = 8  // Number of ranks (rows).
	NumOfPieces         = 6  // Number of piece types (P, N, B, R, Q, K).
)

// Directions for ray generation (N, NE, E, SE, S, SW, W, NW). Used for sliders.
const (
	North = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	NumDirections // Total number of directions = 8
)

// --- Predefined Bitboard Constants ---

const (
	EmptyBB Bitboard = 0
	FullBB  Bitboard = ^EmptyBB // All squares set

	// Files (LSB = Rank 1)
	FileABB Bitboard = 0x0101010101010101
	FileBBB Bitboard = FileABB << 1
	FileGBB Bitboard = FileABB << 6
	FileHBB Bitboard = FileABB << 7

	// Ranks (LSB = File A)
	Rank1BB Bitboard = 0xFF
	Rank8BB Bitboard = Rank1BB << (8 * 7)

	// A1 is dark (0), B1 is light (1)... H8 is dark (0)
	LightSquaresBB Bitboard = 0x55AA55AA55AA55AA

	// Edge Masks
	NotAFile  Bitboard = ^FileABB
	NotHFile  Bitboard = ^FileHBB
	NotABFile Bitboard = ^(FileABB | FileBBB)
	NotGHFile Bitboard = ^(FileGBB | FileHBB)
)

// --- Bitboard Manipulation ---

// SquareBB returns a bitboard with only the given square set. Returns EmptyBB for invalid squares.
func SquareBB(sq Square) Bitboard {
	if sq >= A1 && sq <= H8 {
		return 1 << sq
	}
	return EmptyBB
}

// BBFile returns a bitboard mask for the given file.
func BBFile(f File) Bitboard {
	if f >= FileA && f <= FileH {
		return FileABB << f
	}
	return EmptyBB
}

// BBRank returns a bitboard mask for the given rank.
func BBRank(r Rank) Bitboard {
	if r >= Rank1 && r <= Rank8 {
		return Rank1BB << (8 * r)
	}
	return EmptyBB
}

// Set sets the bit corresponding to the square. Handles invalid squares.
func (b Bitboard) Set(sq Square) Bitboard { return b | SquareBB(sq) }

// Clear clears the bit corresponding to the square. Handles invalid squares.
func (b Bitboard) Clear(sq Square) Bitboard { return b &^ SquareBB(sq) }

// Occupied checks if the square is occupied (bit is set). Handles invalid squares.
func (b Bitboard) Occupied(sq Square) bool {
	return (b & SquareBB(sq)) != 0
}

// MoreThanOne reports whether at least two bits are set.
func (b Bitboard) MoreThanOne() bool { return b&(b-1) != 0 }

// PopCount counts the number of set bits.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// LSB finds the index of the least significant bit. Returns (square, true) or (NoSquare, false).
func (b Bitboard) LSB() (Square, bool) {
	if b == 0 {
		return NoSquare, false
	}
	return Square(bits.TrailingZeros64(uint64(b))), true
}

// MSB finds the index of the most significant bit. Returns (square, true) or (NoSquare, false).
func (b Bitboard) MSB() (Square, bool) {
	if b == 0 {
		return NoSquare, false
	}
	return Square(NumOfSquaresInBoard - 1 - bits.LeadingZeros64(uint64(b))), true
}

// PopLSB finds and removes the least significant bit. Returns (square, new bitboard, true) or (NoSquare, original bitboard, false).
func (b Bitboard) PopLSB() (Square, Bitboard, bool) {
	if b == 0 {
		return NoSquare, b, false
	}
	// b & (b-1) clears the LSB
	return Square(bits.TrailingZeros64(uint64(b))), b & (b - 1), true
}

// String returns the 64-bit binary string representation (MSB=H8, LSB=A1).
func (b Bitboard) String() string {
	var sb strings.Builder
	for i := 63; i >= 0; i-- {
		if (uint64(b)>>i)&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// abs returns the absolute value of an integer.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
