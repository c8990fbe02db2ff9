package chess

import (
	"strconv"
	"strings"
)

// A Board represents a chess board and its relationship between squares and pieces using bitboards.
type Board struct {
	// Piece Bitboards
	bbWhiteKing   Bitboard
	bbWhiteQueen  Bitboard
	bbWhiteRook   Bitboard
	bbWhiteBishop Bitboard
	bbWhiteKnight Bitboard
	bbWhitePawn   Bitboard
	bbBlackKing   Bitboard
	bbBlackQueen  Bitboard
	bbBlackRook   Bitboard
	bbBlackBishop Bitboard
	bbBlackKnight Bitboard
	bbBlackPawn   Bitboard

	// Convenience Bitboards
	whiteSqs Bitboard // Combined white pieces
	blackSqs Bitboard // Combined black pieces

	// King Locations (cached)
	whiteKingSq Square
	blackKingSq Square
}

// NewBoard returns a board initialized from a square-to-piece mapping.
func NewBoard(m map[Square]Piece) *Board {
	b := &Board{}
	for sq, p := range m {
		if p == NoPiece || SquareBB(sq) == EmptyBB {
			continue
		}
		b.setBBForPiece(p, b.bbForPiece(p).Set(sq))
	}
	b.calcConvienceBBs()
	return b
}

// Piece returns the piece located on the given square.
// Returns NoPiece if the square is empty or invalid.
func (b *Board) Piece(sq Square) Piece {
	sqBB := SquareBB(sq)
	if sqBB == EmptyBB || b.Occupied()&sqBB == 0 {
		return NoPiece
	}
	for p := WhitePawn; p <= BlackKing; p++ {
		if b.bbForPiece(p)&sqBB != 0 {
			return p
		}
	}
	return NoPiece
}

// Pieces returns the bitboard of pieces of type pt and color c.
// NoColor selects both colors.
func (b *Board) Pieces(pt PieceType, c Color) Bitboard {
	if c == NoColor {
		return b.bbForPiece(NewPiece(pt, White)) | b.bbForPiece(NewPiece(pt, Black))
	}
	return b.bbForPiece(NewPiece(pt, c))
}

// Color returns every square occupied by a piece of color c.
func (b *Board) Color(c Color) Bitboard {
	switch c {
	case White:
		return b.whiteSqs
	case Black:
		return b.blackSqs
	}
	return EmptyBB
}

// Occupied returns every occupied square.
func (b *Board) Occupied() Bitboard { return b.whiteSqs | b.blackSqs }

// KingSquare returns the square of the king of color c, or NoSquare if there is none.
func (b *Board) KingSquare(c Color) Square {
	switch c {
	case White:
		return b.whiteKingSq
	case Black:
		return b.blackKingSq
	}
	return NoSquare
}

// AttackersTo returns the pieces of color c that attack sq.
func (b *Board) AttackersTo(sq Square, c Color) Bitboard {
	return b.attackersWithout(sq, c, EmptyBB, EmptyBB)
}

// attackersWithout returns the attackers of color c to sq on a board where
// the squares in vacated are empty and the squares in filled are occupied.
// Pieces standing on vacated squares never count as attackers.
func (b *Board) attackersWithout(sq Square, c Color, vacated, filled Bitboard) Bitboard {
	occupied := (b.Occupied() &^ vacated) | filled
	live := ^vacated
	return GetAttackersTo(sq, c, occupied,
		b.Pieces(Pawn, c)&live, b.Pieces(Knight, c)&live, b.Pieces(Bishop, c)&live,
		b.Pieces(Rook, c)&live, b.Pieces(Queen, c)&live, b.Pieces(King, c)&live)
}

// CaptureLeavesKingSafe reports whether the piece on from can take the piece
// on to without exposing its own king. Only the board geometry is checked:
// from must hold a piece that attacks to, and to must hold an opposing piece.
func (b *Board) CaptureLeavesKingSafe(from, to Square) bool {
	mover := b.Piece(from)
	if mover == NoPiece {
		return false
	}
	c := mover.Color()
	kingSq := b.KingSquare(c)
	if mover.Type() == King {
		kingSq = to
	}
	if kingSq == NoSquare {
		return true
	}
	// The captured piece is gone and can no longer give check.
	return b.attackersWithout(kingSq, c.Other(), SquareBB(from)|SquareBB(to), SquareBB(to)) == EmptyBB
}

// Pinned returns the pieces of color c that are pinned to their own king.
func (b *Board) Pinned(c Color) Bitboard {
	them := c.Other()
	return PinnedPieces(c, b.Occupied(), b.Pieces(King, c), b.Color(c),
		b.Pieces(Rook, them)|b.Pieces(Queen, them),
		b.Pieces(Bishop, them)|b.Pieces(Queen, them))
}

// update applies a move to the board, modifying the bitboard representation.
// Assumes the move is valid.
func (b *Board) update(m *Move) {
	p1 := b.Piece(m.S1()) // Piece being moved
	s1 := m.S1()
	s2 := m.S2()

	// 1. Clear the origin square for the moving piece
	b.setBBForPiece(p1, b.bbForPiece(p1).Clear(s1))

	// 2. Handle capture. En passant is handled below.
	if m.HasTag(Capture) && !m.HasTag(EnPassant) {
		if p2 := b.Piece(s2); p2 != NoPiece {
			b.setBBForPiece(p2, b.bbForPiece(p2).Clear(s2))
		}
	}

	// 3. Place the moving piece, or its promotion, on the destination square
	placed := p1
	if promoType := m.Promo(); promoType != NoPieceType {
		placed = NewPiece(promoType, p1.Color())
	}
	b.setBBForPiece(placed, b.bbForPiece(placed).Set(s2))

	// 4. Handle Special Moves
	switch {
	case m.HasTag(EnPassant):
		if p1.Color() == White {
			b.bbBlackPawn = b.bbBlackPawn.Clear(s2 - 8)
		} else {
			b.bbWhitePawn = b.bbWhitePawn.Clear(s2 + 8)
		}
	case m.HasTag(KingSideCastle):
		if p1.Color() == White {
			b.bbWhiteRook = b.bbWhiteRook.Clear(H1).Set(F1)
		} else {
			b.bbBlackRook = b.bbBlackRook.Clear(H8).Set(F8)
		}
	case m.HasTag(QueenSideCastle):
		if p1.Color() == White {
			b.bbWhiteRook = b.bbWhiteRook.Clear(A1).Set(D1)
		} else {
			b.bbBlackRook = b.bbBlackRook.Clear(A8).Set(D8)
		}
	}

	b.calcConvienceBBs()
}

// calcConvienceBBs updates the combined white and black bitboards and caches
// the king locations.
func (b *Board) calcConvienceBBs() {
	b.whiteSqs = b.bbWhiteKing | b.bbWhiteQueen | b.bbWhiteRook | b.bbWhiteBishop | b.bbWhiteKnight | b.bbWhitePawn
	b.blackSqs = b.bbBlackKing | b.bbBlackQueen | b.bbBlackRook | b.bbBlackBishop | b.bbBlackKnight | b.bbBlackPawn

	b.whiteKingSq, _ = b.bbWhiteKing.LSB()
	b.blackKingSq, _ = b.bbBlackKing.LSB()
}

// copy creates a deep copy of the board.
func (b *Board) copy() *Board {
	c := *b
	return &c
}

// --- Helper methods for getting/setting specific piece bitboards ---

// bbForPiece returns the specific Bitboard for the given piece.
// Returns EmptyBB if the piece is NoPiece.
func (b *Board) bbForPiece(p Piece) Bitboard {
	switch p {
	case WhiteKing:
		return b.bbWhiteKing
	case WhiteQueen:
		return b.bbWhiteQueen
	case WhiteRook:
		return b.bbWhiteRook
	case WhiteBishop:
		return b.bbWhiteBishop
	case WhiteKnight:
		return b.bbWhiteKnight
	case WhitePawn:
		return b.bbWhitePawn
	case BlackKing:
		return b.bbBlackKing
	case BlackQueen:
		return b.bbBlackQueen
	case BlackRook:
		return b.bbBlackRook
	case BlackBishop:
		return b.bbBlackBishop
	case BlackKnight:
		return b.bbBlackKnight
	case BlackPawn:
		return b.bbBlackPawn
	default:
		return EmptyBB
	}
}

// setBBForPiece updates the specific Bitboard for the given piece.
// Panics if the piece is invalid.
func (b *Board) setBBForPiece(p Piece, bb Bitboard) {
	switch p {
	case WhiteKing:
		b.bbWhiteKing = bb
	case WhiteQueen:
		b.bbWhiteQueen = bb
	case WhiteRook:
		b.bbWhiteRook = bb
	case WhiteBishop:
		b.bbWhiteBishop = bb
	case WhiteKnight:
		b.bbWhiteKnight = bb
	case WhitePawn:
		b.bbWhitePawn = bb
	case BlackKing:
		b.bbBlackKing = bb
	case BlackQueen:
		b.bbBlackQueen = bb
	case BlackRook:
		b.bbBlackRook = bb
	case BlackBishop:
		b.bbBlackBishop = bb
	case BlackKnight:
		b.bbBlackKnight = bb
	case BlackPawn:
		b.bbBlackPawn = bb
	default:
		panic("chess: setBBForPiece called with invalid piece")
	}
}

// --- FEN and Debugging ---

// Draw returns a text diagram of the board, rank 8 at the top. Empty light
// squares are drawn as "." and empty dark squares as "+".
func (b *Board) Draw() string {
	var sb strings.Builder
	sb.WriteString("\n  a b c d e f g h\n")
	for r := Rank8; r >= Rank1; r-- {
		sb.WriteString(r.String() + " ")
		for f := FileA; f <= FileH; f++ {
			sq := NewSquare(f, r)
			switch p := b.Piece(sq); {
			case p != NoPiece:
				sb.WriteString(p.String() + " ")
			case SquareColor(sq) == White:
				sb.WriteString(". ")
			default:
				sb.WriteString("+ ")
			}
		}
		sb.WriteString(r.String() + "\n")
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// String implements the fmt.Stringer interface and returns
// a string in the FEN board format: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR
func (b *Board) String() string {
	var fen strings.Builder
	for r := Rank8; r >= Rank1; r-- {
		emptyCount := 0
		for f := FileA; f <= FileH; f++ {
			p := b.Piece(NewSquare(f, r))
			if p == NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				fen.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			fen.WriteString(p.getFENChar())
		}
		if emptyCount > 0 {
			fen.WriteString(strconv.Itoa(emptyCount))
		}
		if r != Rank1 {
			fen.WriteString("/")
		}
	}
	return fen.String()
}
