package pattern

import "github.com/0x5844/motif/index"

// Builtin returns the patterns shipped with motif, ordered by code.
func Builtin() []*Pattern {
	return []*Pattern{
		New("M01", "defence/knight/bishop", "Knight defended only by a bishop",
			index.Positions(index.Feature(index.KnightOnlyDefendedByBishop))),
		New("M02", "defence/bishop/knight", "Bishop defended only by a knight",
			index.Positions(index.Feature(index.BishopOnlyDefendedByKnight))),
		New("M03", "defence/bishop/knight/queen", "Knight-guarded bishop hitting the queen, White to move",
			index.And(index.Positions(index.And(index.Feature(index.BishopOnlyDefendedByKnight), index.Feature(index.BishopAttacksQueen))), index.Feature(index.SideToMoveWhite))),
		New("M04", "defence/bishop/guard", "Bishop guarding a knight that attacks the queen",
			index.Positions(index.ProjectLeft(index.BishopDefendsKnight, index.Feature(index.KnightAttacksQueen)))),
		New("M05", "defence/knight/guard", "Knight guarding a bishop that attacks the queen",
			index.Positions(index.ProjectLeft(index.KnightDefendsBishop, index.Feature(index.BishopAttacksQueen)))),
		New("M06", "hanging", "Undefended piece",
			index.Positions(index.Feature(index.PieceUndefended))),
		New("M07", "hanging/knight/pawn", "Undefended knight attacked by a pawn",
			index.Positions(index.And(index.Feature(index.PieceUndefended), index.Feature(index.KnightAttackedByPawn)))),
		New("M08", "pin", "Pinned piece",
			index.Positions(index.Feature(index.PiecePinned))),
		New("M09", "pin/queen", "Pinned bishop that attacks the queen",
			index.Positions(index.And(index.Feature(index.PiecePinned), index.Feature(index.BishopAttacksQueen)))),
		New("M10", "check/capture", "Piece capturable with check",
			index.Positions(index.Feature(index.CapturableWithCheck))),
		New("M11", "check/capture/undefended", "Undefended piece capturable with check",
			index.Positions(index.And(index.Feature(index.PieceUndefended), index.Feature(index.CapturableWithCheck)))),
		New("M12", "attack/knight/queen", "Knight attacking the queen",
			index.Positions(index.Feature(index.KnightAttacksQueen))),
		New("M13", "attack/bishop/queen", "Bishop attacking the queen",
			index.Positions(index.Feature(index.BishopAttacksQueen))),
		New("M14", "attack/knight/knight", "Knight attacked by an undefended opposing knight",
			index.Positions(index.ProjectRight(index.KnightAttacksKnight, index.Feature(index.PieceUndefended)))),
		New("M15", "check", "Side to move in check",
			index.Feature(index.SideToMoveInCheck)),
	}
}
