package index

import (
	"fmt"
	"slices"

	chess "github.com/0x5844/motif"
)

// Instance describes one occurrence of a tracked piece in one position.
// Its id is its offset in the index's instance table.
type Instance struct {
	Position uint64
	Square   chess.Square
	Color    chess.Color
	Type     chess.PieceType
}

func (in Instance) String() string {
	return fmt.Sprintf("%s %s on %s in position %d", in.Color.Name(), in.Type.Name(), in.Square, in.Position)
}

// TrackedColors selects which side's pieces become instances.
type TrackedColors uint8

const (
	// TrackEnemy tracks the pieces of the side not to move.
	TrackEnemy TrackedColors = iota
	// TrackBoth tracks the pieces of both sides.
	TrackBoth
)

func (tc TrackedColors) String() string {
	switch tc {
	case TrackEnemy:
		return "enemy"
	case TrackBoth:
		return "both"
	}
	return fmt.Sprintf("TrackedColors(%d)", uint8(tc))
}

// ParseTrackedColors is the inverse of TrackedColors.String.
func ParseTrackedColors(s string) (TrackedColors, bool) {
	switch s {
	case "enemy":
		return TrackEnemy, true
	case "both":
		return TrackBoth, true
	}
	return 0, false
}

// colors returns the tracked colors for a position with turn to move,
// White before Black.
func (tc TrackedColors) colors(turn chess.Color) []chess.Color {
	if tc == TrackBoth {
		return []chess.Color{chess.White, chess.Black}
	}
	return []chess.Color{turn.Other()}
}

// DefaultTrackedTypes are the piece types indexed unless configured otherwise.
func DefaultTrackedTypes() []chess.PieceType {
	return []chess.PieceType{chess.Knight, chess.Bishop}
}

// trackableTypes lists the piece types that may become instances, in
// discovery order.
var trackableTypes = []chess.PieceType{chess.Knight, chess.Bishop, chess.Rook, chess.Queen}

// normalizeTypes dedups types and puts them in discovery order.
func normalizeTypes(types []chess.PieceType) []chess.PieceType {
	out := make([]chess.PieceType, 0, len(types))
	for _, pt := range trackableTypes {
		if slices.Contains(types, pt) {
			out = append(out, pt)
		}
	}
	for _, pt := range types {
		if !slices.Contains(trackableTypes, pt) {
			panic(fmt.Sprintf("index: piece type %q cannot be tracked", pt.Name()))
		}
	}
	return out
}

// countInstances returns the number of tracked pieces in pos.
func countInstances(pos *chess.Position, types []chess.PieceType, tc TrackedColors) uint64 {
	var n int
	b := pos.Board()
	for _, c := range tc.colors(pos.Turn()) {
		for _, pt := range types {
			n += b.Pieces(pt, c).PopCount()
		}
	}
	return uint64(n)
}

// forEachInstance calls fn for every tracked piece in pos: types in
// discovery order, then colors White before Black, then squares A1 to H8.
func forEachInstance(pos *chess.Position, types []chess.PieceType, tc TrackedColors, fn func(chess.Square, chess.Color, chess.PieceType)) {
	b := pos.Board()
	for _, pt := range types {
		for _, c := range tc.colors(pos.Turn()) {
			for bb := b.Pieces(pt, c); bb != chess.EmptyBB; {
				sq, next, _ := bb.PopLSB()
				bb = next
				fn(sq, c, pt)
			}
		}
	}
}

const noID = ^uint64(0)

// squareTable maps the squares of one position to instance ids.
type squareTable [chess.NumOfSquaresInBoard]uint64

func (t *squareTable) reset() {
	for i := range t {
		t[i] = noID
	}
}
