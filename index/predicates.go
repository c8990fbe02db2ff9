package index

import (
	chess "github.com/0x5844/motif"
)

// Built-in features.
const (
	SideToMoveWhite FeatureID = iota
	SideToMoveBlack
	SideToMoveInCheck
	KnightOnlyDefendedByBishop
	BishopOnlyDefendedByKnight
	KnightAttackedByPawn
	BishopAttacksQueen
	KnightAttacksQueen
	PieceUndefended
	PiecePinned
	CapturableWithCheck
)

// DefaultRegistry returns a registry with the built-in features.
func DefaultRegistry() *Registry {
	return NewRegistry(
		PositionFeature(SideToMoveWhite, "SIDE_TO_MOVE_WHITE", PositionFunc(sideToMove(chess.White))),
		PositionFeature(SideToMoveBlack, "SIDE_TO_MOVE_BLACK", PositionFunc(sideToMove(chess.Black))),
		PositionFeature(SideToMoveInCheck, "SIDE_TO_MOVE_IN_CHECK", PositionFunc((*chess.Position).InCheck)),
		InstanceFeature(KnightOnlyDefendedByBishop, "KNIGHT_ONLY_DEFENDED_BY_BISHOP", onlyDefendedBy(chess.Bishop), chess.Knight),
		InstanceFeature(BishopOnlyDefendedByKnight, "BISHOP_ONLY_DEFENDED_BY_KNIGHT", onlyDefendedBy(chess.Knight), chess.Bishop),
		InstanceFeature(KnightAttackedByPawn, "KNIGHT_ATTACKED_BY_PAWN", attackedBy(chess.Pawn), chess.Knight),
		InstanceFeature(BishopAttacksQueen, "BISHOP_ATTACKS_QUEEN", attacksEnemy(chess.Queen), chess.Bishop),
		InstanceFeature(KnightAttacksQueen, "KNIGHT_ATTACKS_QUEEN", attacksEnemy(chess.Queen), chess.Knight),
		InstanceFeature(PieceUndefended, "PIECE_UNDEFENDED", InstanceFunc(undefended)),
		InstanceFeature(PiecePinned, "PIECE_PINNED", InstanceFunc(pinned)),
		InstanceFeature(CapturableWithCheck, "CAPTURABLE_WITH_CHECK", InstanceFunc(capturableWithCheck)),
	)
}

func sideToMove(c chess.Color) func(*chess.Position) bool {
	return func(pos *chess.Position) bool { return pos.Turn() == c }
}

// onlyDefendedBy holds when the instance has exactly one defender of its
// own color and that defender is of type pt.
func onlyDefendedBy(pt chess.PieceType) InstanceFunc {
	return func(pos *chess.Position, in Instance) bool {
		b := pos.Board()
		d := b.AttackersTo(in.Square, in.Color)
		return d != chess.EmptyBB && !d.MoreThanOne() && d&b.Pieces(pt, in.Color) != chess.EmptyBB
	}
}

func attackedBy(pt chess.PieceType) InstanceFunc {
	return func(pos *chess.Position, in Instance) bool {
		b := pos.Board()
		them := in.Color.Other()
		return b.AttackersTo(in.Square, them)&b.Pieces(pt, them) != chess.EmptyBB
	}
}

// attacksEnemy holds when the instance attacks an opposing piece of type pt.
func attacksEnemy(pt chess.PieceType) InstanceFunc {
	return func(pos *chess.Position, in Instance) bool {
		b := pos.Board()
		att := chess.Attacks(in.Type, in.Color, in.Square, b.Occupied())
		return att&b.Pieces(pt, in.Color.Other()) != chess.EmptyBB
	}
}

func undefended(pos *chess.Position, in Instance) bool {
	return pos.Board().AttackersTo(in.Square, in.Color) == chess.EmptyBB
}

func pinned(pos *chess.Position, in Instance) bool {
	return pos.Board().Pinned(in.Color).Occupied(in.Square)
}

// capturableWithCheck holds when some opposing piece can take the instance
// without exposing its own king and, standing on the captured square, then
// attacks the instance's king. Every attacker is tried. A pawn capturing onto
// its last rank is judged as each piece it may promote to.
func capturableWithCheck(pos *chess.Position, in Instance) bool {
	b := pos.Board()
	kingSq := b.KingSquare(in.Color)
	if kingSq == chess.NoSquare {
		return false
	}
	them := in.Color.Other()
	for att := b.AttackersTo(in.Square, them); att != chess.EmptyBB; {
		from, next, _ := att.PopLSB()
		att = next
		if !b.CaptureLeavesKingSafe(from, in.Square) {
			continue
		}
		occupied := b.Occupied() &^ chess.SquareBB(from)
		for _, pt := range capturerTypes(b.Piece(from).Type(), them, in.Square) {
			if chess.Attacks(pt, them, in.Square, occupied).Occupied(kingSq) {
				return true
			}
		}
	}
	return false
}

// capturerTypes returns the types a piece of type pt and color c may have
// after capturing on sq. Rook and bishop promotions check no square a queen
// does not.
func capturerTypes(pt chess.PieceType, c chess.Color, sq chess.Square) []chess.PieceType {
	lastRank := chess.Rank8
	if c == chess.Black {
		lastRank = chess.Rank1
	}
	if pt == chess.Pawn && sq.Rank() == lastRank {
		return []chess.PieceType{chess.Queen, chess.Knight}
	}
	return []chess.PieceType{pt}
}
