package chess

import "fmt"

// A MoveTag represents a notable consequence of a move.
type MoveTag uint16

const (
	// KingSideCastle indicates that the move is a king side castle.
	KingSideCastle MoveTag = 1 << iota
	// QueenSideCastle indicates that the move is a queen side castle.
	QueenSideCastle
	// Capture indicates that the move captures a piece.
	Capture
	// EnPassant indicates that the move captures via en passant.
	EnPassant
)

// A Move is the movement of a piece from one square to another.
type Move struct {
	s1    Square
	s2    Square
	promo PieceType
	tags  MoveTag
}

// NewMove returns an untagged move. Tags are derived when the move is
// applied to a position.
func NewMove(s1, s2 Square, promo PieceType) *Move {
	return &Move{s1: s1, s2: s2, promo: promo}
}

// String returns a string useful for debugging. String doesn't return
// algebraic notation.
func (m *Move) String() string {
	return m.s1.String() + m.s2.String() + m.promo.String()
}

// S1 returns the origin square of the move.
func (m *Move) S1() Square { return m.s1 }

// S2 returns the destination square of the move.
func (m *Move) S2() Square { return m.s2 }

// Promo returns promotion piece type of the move.
func (m *Move) Promo() PieceType { return m.promo }

// HasTag returns true if the move contains the MoveTag given.
func (m *Move) HasTag(tag MoveTag) bool { return (tag & m.tags) > 0 }

func (m *Move) addTag(tag MoveTag) { m.tags |= tag }

// ParseUCI decodes a move in UCI long algebraic notation such as "e2e4" or
// "e7e8q". The move is not checked against any position.
func ParseUCI(s string) (*Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return nil, fmt.Errorf("chess: invalid UCI move %q", s)
	}
	s1, ok1 := parseSquare(s[0:2])
	s2, ok2 := parseSquare(s[2:4])
	if !ok1 || !ok2 || s1 == s2 {
		return nil, fmt.Errorf("chess: invalid UCI move %q", s)
	}
	m := &Move{s1: s1, s2: s2}
	if len(s) == 5 {
		switch promo := PieceTypeFromName(s[4:]); promo {
		case Knight, Bishop, Rook, Queen:
			m.promo = promo
		default:
			return nil, fmt.Errorf("chess: invalid promotion in UCI move %q", s)
		}
	}
	return m, nil
}
