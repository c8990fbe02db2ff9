package chess

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Side is the side of the board a castle takes place on.
type Side int

const (
	// KingSide is the right side of the board from White's perspective.
	KingSide Side = iota + 1
	// QueenSide is the left side of the board from White's perspective.
	QueenSide
)

// CastleRights holds the state of both sides castling abilities in FEN
// notation, e.g. "KQkq" or "-".
type CastleRights string

// CanCastle returns true if the given color and side combination
// can castle, otherwise returns false.
func (cr CastleRights) CanCastle(c Color, side Side) bool {
	char := "k"
	if side == QueenSide {
		char = "q"
	}
	if c == White {
		char = strings.ToUpper(char)
	}
	return strings.Contains(string(cr), char)
}

// String implements the fmt.Stringer interface.
func (cr CastleRights) String() string {
	if cr == "" {
		return "-"
	}
	return string(cr)
}

// Position represents the state of the game without regard to its outcome.
// Positions are immutable once built; PlayUCI returns a new Position.
type Position struct {
	board           *Board
	turn            Color
	castleRights    CastleRights
	enPassantSquare Square
	halfMoveClock   int
	moveCount       int
}

// Board returns the position's board.
func (pos *Position) Board() *Board { return pos.board }

// Turn returns the color to move next.
func (pos *Position) Turn() Color { return pos.turn }

// CastleRights returns the castling rights of the position.
func (pos *Position) CastleRights() CastleRights { return pos.castleRights }

// EnPassantSquare returns the en-passant square, or NoSquare.
func (pos *Position) EnPassantSquare() Square { return pos.enPassantSquare }

// HalfMoveClock returns the half-move clock (50-rule).
func (pos *Position) HalfMoveClock() int { return pos.halfMoveClock }

// MoveCount returns the full move number.
func (pos *Position) MoveCount() int { return pos.moveCount }

// InCheck reports whether the side to move is in check.
func (pos *Position) InCheck() bool {
	kingSq := pos.board.KingSquare(pos.turn)
	if kingSq == NoSquare {
		return false
	}
	return pos.board.AttackersTo(kingSq, pos.turn.Other()) != EmptyBB
}

// String implements the fmt.Stringer interface and returns a
// string with the FEN format: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1
func (pos *Position) String() string {
	return fmt.Sprintf("%s %s %s %s %d %d", pos.board, pos.turn, pos.castleRights,
		pos.enPassantSquare, pos.halfMoveClock, pos.moveCount)
}

// PlayUCI applies a move in UCI notation and returns the resulting position.
// The move must be pseudo-legal for the side to move: a piece of that side
// must stand on the origin square and the destination must not hold one.
// Whether the move leaves the mover's own king in check is not verified.
func (pos *Position) PlayUCI(s string) (*Position, error) {
	m, err := ParseUCI(s)
	if err != nil {
		return nil, err
	}
	return pos.Update(m)
}

// Update applies m and returns the resulting position. Move tags are derived
// from the position, so m may come straight from ParseUCI or NewMove.
func (pos *Position) Update(m *Move) (*Position, error) {
	b := pos.board
	p1 := b.Piece(m.s1)
	if p1 == NoPiece || p1.Color() != pos.turn {
		return nil, fmt.Errorf("chess: move %s: no %s piece on %s", m, pos.turn.Name(), m.s1)
	}
	if b.Color(pos.turn).Occupied(m.s2) {
		return nil, fmt.Errorf("chess: move %s: destination occupied by own piece", m)
	}
	lastRank := Rank8
	if pos.turn == Black {
		lastRank = Rank1
	}
	if m.promo != NoPieceType && (p1.Type() != Pawn || m.s2.Rank() != lastRank) {
		return nil, fmt.Errorf("chess: move %s: invalid promotion", m)
	}
	if m.promo == NoPieceType && p1.Type() == Pawn && m.s2.Rank() == lastRank {
		return nil, fmt.Errorf("chess: move %s: missing promotion piece", m)
	}

	tagged := &Move{s1: m.s1, s2: m.s2, promo: m.promo}
	if b.Color(pos.turn.Other()).Occupied(m.s2) {
		tagged.addTag(Capture)
	}
	if p1.Type() == Pawn && m.s2 == pos.enPassantSquare && m.s1.File() != m.s2.File() {
		tagged.addTag(Capture | EnPassant)
	}
	if p1.Type() == King {
		switch int(m.s2.File()) - int(m.s1.File()) {
		case 2:
			tagged.addTag(KingSideCastle)
		case -2:
			tagged.addTag(QueenSideCastle)
		}
	}

	board := b.copy()
	board.update(tagged)

	next := &Position{
		board:           board,
		turn:            pos.turn.Other(),
		castleRights:    pos.updateCastleRights(tagged),
		enPassantSquare: NoSquare,
		halfMoveClock:   pos.halfMoveClock + 1,
		moveCount:       pos.moveCount,
	}
	if p1.Type() == Pawn || tagged.HasTag(Capture) {
		next.halfMoveClock = 0
	}
	if pos.turn == Black {
		next.moveCount++
	}
	if p1.Type() == Pawn && abs(int(m.s2)-int(m.s1)) == 16 {
		next.enPassantSquare = Square((int(m.s1) + int(m.s2)) / 2)
	}
	return next, nil
}

func (pos *Position) updateCastleRights(m *Move) CastleRights {
	cr := string(pos.castleRights)
	drop := func(chars string) {
		for _, ch := range chars {
			cr = strings.ReplaceAll(cr, string(ch), "")
		}
	}
	if p := pos.board.Piece(m.s1); p.Type() == King {
		if p.Color() == White {
			drop("KQ")
		} else {
			drop("kq")
		}
	}
	for _, sq := range []Square{m.s1, m.s2} {
		switch sq {
		case H1:
			drop("K")
		case A1:
			drop("Q")
		case H8:
			drop("k")
		case A8:
			drop("q")
		}
	}
	if cr == "" || cr == "-" {
		return "-"
	}
	return CastleRights(cr)
}

// ParseFEN parses a FEN string into a Position. The half-move clock and move
// number fields are optional, as in EPD records.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) != 4 && len(fields) != 6 {
		return nil, fmt.Errorf("chess: fen %q: expected 4 or 6 fields, got %d", fen, len(fields))
	}
	b, err := fenBoard(fields[0])
	if err != nil {
		return nil, err
	}
	turn, err := fenTurn(fields[1])
	if err != nil {
		return nil, err
	}
	rights, err := fenCastleRights(fields[2])
	if err != nil {
		return nil, err
	}
	ep := NoSquare
	if fields[3] != "-" {
		sq, ok := parseSquare(fields[3])
		if !ok || (sq.Rank() != Rank3 && sq.Rank() != Rank6) {
			return nil, fmt.Errorf("chess: fen %q: invalid en passant square %q", fen, fields[3])
		}
		ep = sq
	}
	pos := &Position{
		board:           b,
		turn:            turn,
		castleRights:    rights,
		enPassantSquare: ep,
		moveCount:       1,
	}
	if len(fields) == 6 {
		if pos.halfMoveClock, err = strconv.Atoi(fields[4]); err != nil || pos.halfMoveClock < 0 {
			return nil, fmt.Errorf("chess: fen %q: invalid half move clock %q", fen, fields[4])
		}
		if pos.moveCount, err = strconv.Atoi(fields[5]); err != nil || pos.moveCount < 1 {
			return nil, fmt.Errorf("chess: fen %q: invalid move count %q", fen, fields[5])
		}
	}
	return pos, nil
}

var errFENRanks = errors.New("chess: fen board must have 8 ranks of 8 squares")

// fenBoard parses the piece placement field of a FEN.
func fenBoard(boardStr string) (*Board, error) {
	rankStrs := strings.Split(boardStr, "/")
	if len(rankStrs) != NumOfRanks {
		return nil, errFENRanks
	}
	m := map[Square]Piece{}
	for i, rankStr := range rankStrs {
		r := Rank(NumOfRanks - 1 - i)
		f := FileA
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				f += File(ch - '0')
				continue
			}
			p := pieceFromFENChar(ch)
			if p == NoPiece {
				return nil, fmt.Errorf("chess: fen board: invalid piece %q", ch)
			}
			if f > FileH {
				return nil, errFENRanks
			}
			m[NewSquare(f, r)] = p
			f++
		}
		if f != FileH+1 {
			return nil, errFENRanks
		}
	}
	b := NewBoard(m)
	if b.Pieces(King, White).PopCount() != 1 || b.Pieces(King, Black).PopCount() != 1 {
		return nil, errors.New("chess: fen board must have exactly one king per side")
	}
	return b, nil
}

func fenTurn(s string) (Color, error) {
	switch s {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	}
	return NoColor, fmt.Errorf("chess: fen: invalid turn %q", s)
}

func fenCastleRights(s string) (CastleRights, error) {
	if s == "-" {
		return "-", nil
	}
	for _, ch := range s {
		if !strings.ContainsRune("KQkq", ch) {
			return "", fmt.Errorf("chess: fen: invalid castle rights %q", s)
		}
	}
	return CastleRights(s), nil
}
