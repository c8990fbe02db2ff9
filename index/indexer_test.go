package index

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	chess "github.com/0x5844/motif"
	"github.com/0x5844/motif/corpus"
)

type recorder struct {
	mu       sync.Mutex
	passes   []int
	sizes    map[Domain]uint64
	features map[string]uint64
	queries  []uint64
}

func newRecorder() *recorder {
	return &recorder{sizes: map[Domain]uint64{}, features: map[string]uint64{}}
}

func (r *recorder) PassCompleted(pass int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passes = append(r.passes, pass)
}

func (r *recorder) DomainSized(d Domain, size uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sizes[d] = size
}

func (r *recorder) FeatureBuilt(f FeatureDef, cardinality uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.features[f.Name] = cardinality
}

func (r *recorder) QueryCompleted(matches uint64, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, matches)
}

func positions(t *testing.T, fens ...string) []*chess.Position {
	t.Helper()
	out := make([]*chess.Position, len(fens))
	for i, fen := range fens {
		out[i] = mustFEN(t, fen)
	}
	return out
}

func TestBuildKnightDefendedByBishop(t *testing.T) {
	idx := BuildPositions(positions(t,
		"7k/8/4b3/3n4/8/8/8/K7 w - - 0 1",
		"7k/8/8/8/8/8/8/K6N w - - 0 1",
	))

	assert.Equal(t, uint64(2), idx.Size(DomainPosition))
	// Only the side not to move is tracked, so the white knight on h1 is not
	// an instance.
	require.Equal(t, uint64(2), idx.Size(DomainInstance))
	assert.Equal(t, Instance{Position: 0, Square: chess.D5, Color: chess.Black, Type: chess.Knight}, idx.Instance(0))
	assert.Equal(t, Instance{Position: 0, Square: chess.E6, Color: chess.Black, Type: chess.Bishop}, idx.Instance(1))

	assert.Equal(t, []uint64{0}, members(idx.FeatureBits(KnightOnlyDefendedByBishop)))
	assert.Equal(t, []uint64{0, 1}, members(idx.FeatureBits(SideToMoveWhite)))
	assert.Empty(t, members(idx.FeatureBits(SideToMoveBlack)))

	assert.Equal(t, []Edge{{Left: 1, Right: 0}}, idx.Relation(BishopDefendsKnight).Edges())
	assert.Empty(t, idx.Relation(KnightDefendsBishop).Edges())
	assert.Equal(t, []Edge{{0, 0}, {1, 0}}, idx.Relation(InstanceInPosition).Edges())

	var got []uint64
	idx.FullQuery(Positions(Feature(KnightOnlyDefendedByBishop)), func(id uint64) { got = append(got, id) })
	assert.Equal(t, []uint64{0}, got)
}

func TestBuildTrackBothAllTypes(t *testing.T) {
	start := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	pos := positions(t, start, start)
	opts := []Option{
		WithTrackedColors(TrackBoth),
		// Order and duplicates do not matter.
		WithTrackedTypes(chess.Queen, chess.Rook, chess.Knight, chess.Bishop, chess.Knight),
	}

	idx := BuildPositions(pos, opts...)
	assert.Equal(t, []chess.PieceType{chess.Knight, chess.Bishop, chess.Rook, chess.Queen}, idx.TrackedTypes())
	assert.Equal(t, TrackBoth, idx.TrackedColors())
	require.Equal(t, uint64(28), idx.Size(DomainInstance))

	want := []struct {
		sq chess.Square
		c  chess.Color
		pt chess.PieceType
	}{
		{chess.B1, chess.White, chess.Knight}, {chess.G1, chess.White, chess.Knight},
		{chess.B8, chess.Black, chess.Knight}, {chess.G8, chess.Black, chess.Knight},
		{chess.C1, chess.White, chess.Bishop}, {chess.F1, chess.White, chess.Bishop},
		{chess.C8, chess.Black, chess.Bishop}, {chess.F8, chess.Black, chess.Bishop},
		{chess.A1, chess.White, chess.Rook}, {chess.H1, chess.White, chess.Rook},
		{chess.A8, chess.Black, chess.Rook}, {chess.H8, chess.Black, chess.Rook},
		{chess.D1, chess.White, chess.Queen}, {chess.D8, chess.Black, chess.Queen},
	}
	for p := uint64(0); p < 2; p++ {
		for i, w := range want {
			id := p*uint64(len(want)) + uint64(i)
			assert.Equal(t, Instance{Position: p, Square: w.sq, Color: w.c, Type: w.pt}, idx.Instance(id), "instance %d", id)
		}
	}

	// Every instance belongs to exactly one position.
	edges := idx.Relation(InstanceInPosition).Edges()
	require.Len(t, edges, 28)
	for i, e := range edges {
		assert.Equal(t, uint64(i), e.Left)
		assert.Equal(t, idx.Instance(e.Left).Position, e.Right)
	}

	// A second build over the same input is identical.
	again := BuildPositions(pos, opts...)
	for _, f := range idx.Registry().Features() {
		assert.Equal(t, members(idx.FeatureBits(f.ID)), members(again.FeatureBits(f.ID)), f.Name)
	}
}

func TestBuildKnightAttacksKnight(t *testing.T) {
	fen := "4k3/8/8/3n4/8/4N3/8/4K3 w - - 0 1"

	enemy := BuildPositions(positions(t, fen))
	assert.Empty(t, enemy.Relation(KnightAttacksKnight).Edges())

	both := BuildPositions(positions(t, fen), WithTrackedColors(TrackBoth))
	assert.Equal(t, Instance{Square: chess.E3, Color: chess.White, Type: chess.Knight}, both.Instance(0))
	assert.Equal(t, []Edge{{Left: 1, Right: 0}, {Left: 0, Right: 1}}, both.Relation(KnightAttacksKnight).Edges())
}

func TestBuildEmpty(t *testing.T) {
	idx := BuildPositions(nil)
	assert.Equal(t, uint64(0), idx.Size(DomainPosition))
	assert.Equal(t, uint64(0), idx.Size(DomainInstance))
	assert.Equal(t, uint64(0), idx.Count(Feature(SideToMoveWhite)))

	// Positions without tracked pieces give an empty instance domain.
	idx = BuildPositions(positions(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1"))
	assert.Equal(t, uint64(1), idx.Size(DomainPosition))
	assert.Equal(t, uint64(0), idx.Size(DomainInstance))
	assert.Equal(t, uint64(0), idx.Count(Positions(Feature(PieceUndefended))))
	assert.Equal(t, uint64(1), idx.Count(Feature(SideToMoveWhite)))
}

func TestIndexerStateMachine(t *testing.T) {
	pos := mustFEN(t, "7k/8/4b3/3n4/8/8/8/K7 w - - 0 1")

	ix := NewIndexer()
	assert.Panics(t, func() { ix.PushFirstPass(pos) })
	assert.Panics(t, func() { ix.EndFirstPass() })
	assert.Panics(t, func() { ix.ProcessSecondPass(pos) })
	assert.Panics(t, func() { ix.Finish() })

	ix.BeginFirstPass()
	assert.Panics(t, func() { ix.BeginFirstPass() })
	assert.Panics(t, func() { ix.ProcessSecondPass(pos) })
	ix.PushFirstPass(pos)
	ix.EndFirstPass()
	assert.Panics(t, func() { ix.PushFirstPass(pos) })

	ix.ProcessSecondPass(pos)
	idx := ix.Finish()
	assert.Equal(t, uint64(1), idx.Size(DomainPosition))
	assert.Panics(t, func() { ix.ProcessSecondPass(pos) })
	assert.Panics(t, func() { ix.Finish() })
}

func TestIndexerCountMismatch(t *testing.T) {
	one := mustFEN(t, "7k/8/8/3n4/8/8/8/K7 w - - 0 1")
	two := mustFEN(t, "7k/8/4b3/3n4/8/8/8/K7 w - - 0 1")

	t.Run("more instances", func(t *testing.T) {
		ix := NewIndexer()
		ix.BeginFirstPass()
		ix.PushFirstPass(one)
		ix.EndFirstPass()
		assert.PanicsWithValue(t,
			"index: fill pass found more instance entities than the 1 counted",
			func() { ix.ProcessSecondPass(two) })
	})

	t.Run("fewer instances", func(t *testing.T) {
		ix := NewIndexer()
		ix.BeginFirstPass()
		ix.PushFirstPass(two)
		ix.EndFirstPass()
		ix.ProcessSecondPass(one)
		assert.PanicsWithValue(t,
			"index: instance domain counted 2 entities but filled 1",
			func() { ix.Finish() })
	})

	t.Run("missing position", func(t *testing.T) {
		ix := NewIndexer()
		ix.BeginFirstPass()
		ix.PushFirstPass(one)
		ix.EndFirstPass()
		assert.Panics(t, func() { ix.Finish() })
	})
}

func TestIndexerRejectsUntrackableType(t *testing.T) {
	assert.Panics(t, func() { NewIndexer(WithTrackedTypes(chess.Pawn)) })
	assert.Panics(t, func() { NewIndexer(WithTrackedTypes(chess.King)) })
}

func TestBuildObserverAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	rec := newRecorder()

	idx := BuildPositions(positions(t,
		"7k/8/4b3/3n4/8/8/8/K7 w - - 0 1",
		"7k/8/8/8/8/8/8/K6N w - - 0 1",
	), WithLogger(zap.New(core)), WithObserver(rec))

	assert.Equal(t, []int{1, 2}, rec.passes)
	assert.Equal(t, map[Domain]uint64{DomainPosition: 2, DomainInstance: 2}, rec.sizes)
	assert.Equal(t, uint64(1), rec.features["KNIGHT_ONLY_DEFENDED_BY_BISHOP"])
	assert.Equal(t, uint64(2), rec.features["SIDE_TO_MOVE_WHITE"])
	assert.Len(t, rec.features, 11)

	idx.Count(Feature(SideToMoveWhite))
	assert.Equal(t, []uint64{2}, rec.queries)

	assert.Equal(t, 1, logs.FilterMessage("counting pass started").Len())
	finished := logs.FilterMessage("fill pass finished").All()
	require.Len(t, finished, 1)
	fields := finished[0].ContextMap()
	assert.Equal(t, uint64(2), fields["positions"])
	assert.Equal(t, uint64(2), fields["instances"])
	// Query logs are debug level.
	assert.Equal(t, 0, logs.FilterMessage("query finished").Len())
}

func TestBuildFromSource(t *testing.T) {
	idx, err := Build(corpus.FromFENs(
		"7k/8/4b3/3n4/8/8/8/K7 w - - 0 1",
		"7k/8/8/8/8/8/8/K6N w - - 0 1",
	))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), idx.Size(DomainPosition))
	assert.Equal(t, []uint64{0}, members(idx.FeatureBits(KnightOnlyDefendedByBishop)))

	_, err = Build(corpus.FromFENs("7k/8/8/8/8/8/8/K7 w - - 0 1", "not a fen"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index: decode record 1")
}

func TestInstancesOf(t *testing.T) {
	idx := BuildPositions(positions(t,
		"7k/8/4b3/3n4/8/8/8/K7 w - - 0 1",
		"7k/8/8/8/8/8/8/K6N w - - 0 1",
		"7k/8/8/8/8/8/8/K6n w - - 0 1",
	))

	first, ins := idx.InstancesOf(0)
	assert.Equal(t, uint64(0), first)
	assert.Len(t, ins, 2)

	_, ins = idx.InstancesOf(1)
	assert.Empty(t, ins)

	first, ins = idx.InstancesOf(2)
	assert.Equal(t, uint64(2), first)
	require.Len(t, ins, 1)
	assert.Equal(t, chess.H1, ins[0].Square)

	_, ins = idx.InstancesOf(9)
	assert.Empty(t, ins)
}
