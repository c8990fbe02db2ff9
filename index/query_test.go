package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bishopQueenIndex holds one position where White to move can win a bishop
// that is guarded only by a knight and eyes the white queen, plus decoys.
func bishopQueenIndex(t *testing.T, opts ...Option) *Index {
	return BuildPositions(positions(t,
		"7k/8/4n3/8/3b4/8/1Q6/K7 w - - 0 1",
		"7k/8/4n3/8/3b4/8/1Q6/K7 b - - 0 1",
		"7k/8/4n3/4p3/3b4/8/1Q6/K7 w - - 0 1",
		"7k/8/4n3/8/3b4/8/8/K7 w - - 0 1",
	), opts...)
}

func collect(idx *Index, expr Expr) []uint64 {
	out := []uint64{}
	idx.FullQuery(expr, func(id uint64) { out = append(out, id) })
	return out
}

func TestQueryBishopAttacksQueen(t *testing.T) {
	idx := bishopQueenIndex(t)

	expr := And(
		Positions(And(Feature(BishopOnlyDefendedByKnight), Feature(BishopAttacksQueen))),
		Feature(SideToMoveWhite),
	)
	assert.Equal(t, []uint64{0}, collect(idx, expr))

	// The pawn decoy fails only on the defender count; the last decoy has
	// no queen to attack.
	assert.Equal(t, []uint64{0, 3}, collect(idx, Positions(Feature(BishopOnlyDefendedByKnight))))
	assert.Equal(t, []uint64{0, 2}, collect(idx, Positions(Feature(BishopAttacksQueen))))
	assert.Equal(t, []uint64{1}, collect(idx, Feature(SideToMoveBlack)))
}

func TestQueryRelationProjection(t *testing.T) {
	idx := bishopQueenIndex(t)

	// Knights that defend a bishop which attacks the queen.
	defending := ProjectLeft(KnightDefendsBishop, Feature(BishopAttacksQueen))
	assert.Equal(t, DomainInstance, defending.Domain(idx))
	got := members(defending.Eval(idx))
	require.NotEmpty(t, got)
	for _, id := range got {
		assert.Equal(t, "knight", idx.Instance(id).Type.Name())
	}
	assert.Equal(t, []uint64{0, 2}, collect(idx, Positions(defending)))

	// Bishops defended by an undefended knight.
	guarded := ProjectRight(KnightDefendsBishop, Feature(PieceUndefended))
	assert.Equal(t, []uint64{0, 2, 3}, collect(idx, Positions(guarded)))
}

func TestQueryCollectAndCountAgree(t *testing.T) {
	idx := bishopQueenIndex(t)
	exprs := []Expr{
		Feature(SideToMoveWhite),
		Positions(Feature(PieceUndefended)),
		And(Feature(SideToMoveWhite), Positions(Feature(BishopAttacksQueen))),
	}
	for _, expr := range exprs {
		want := collect(idx, expr)
		bm := idx.Collect(expr)
		assert.Equal(t, want, append([]uint64{}, bm.ToArray()...), expr.String())
		assert.Equal(t, uint64(len(want)), idx.Count(expr), expr.String())
	}
}

func TestQueryDoesNotMutateIndex(t *testing.T) {
	idx := bishopQueenIndex(t)
	before := members(idx.FeatureBits(SideToMoveWhite))

	collect(idx, And(Feature(SideToMoveWhite), Feature(SideToMoveBlack)))
	assert.Equal(t, before, members(idx.FeatureBits(SideToMoveWhite)))
}

func TestQueryDomainMismatch(t *testing.T) {
	idx := bishopQueenIndex(t)
	noop := func(uint64) {}

	assert.Panics(t, func() { idx.FullQuery(And(Feature(SideToMoveWhite), Feature(PieceUndefended)), noop) })
	assert.Panics(t, func() { idx.FullQuery(Feature(PieceUndefended), noop) })
	assert.Panics(t, func() { idx.Collect(Feature(PieceUndefended)) })
	assert.Panics(t, func() { idx.FullQuery(Positions(Feature(SideToMoveWhite)), noop) })
	assert.Panics(t, func() { ProjectLeft(KnightDefendsBishop, Feature(SideToMoveWhite)).Eval(idx) })
	assert.Panics(t, func() { Feature(FeatureID(99)).Eval(idx) })
	assert.Panics(t, func() { idx.Relation(RelationID(99)) })
}

func TestQueryString(t *testing.T) {
	expr := And(Positions(Feature(PieceUndefended)), Feature(SideToMoveWhite))
	assert.Equal(t, "and(project_right(3, feature(8)), feature(0))", expr.String())
}

func TestIndexRelations(t *testing.T) {
	idx := bishopQueenIndex(t, WithRelations(DefaultRelations()[1]))
	infos := idx.Relations()
	require.Len(t, infos, 2)
	assert.Equal(t, "instance_in_position", infos[0].Name)
	assert.Equal(t, "bishop_defends_knight", infos[1].Name)
	assert.Panics(t, func() { idx.Relation(KnightDefendsBishop) })
}

func TestValidate(t *testing.T) {
	idx := bishopQueenIndex(t)
	assert.NoError(t, idx.Validate(Positions(Feature(PieceUndefended))))
	assert.Error(t, idx.Validate(Feature(PieceUndefended)))
	assert.Error(t, idx.Validate(And(Feature(SideToMoveWhite), Feature(PieceUndefended))))
	assert.Error(t, idx.Validate(Feature(FeatureID(99))))
	assert.Error(t, idx.Validate(ProjectLeft(RelationID(99), Feature(PieceUndefended))))
}
