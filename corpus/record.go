// Package corpus supplies replayable sequences of position records.
//
// A Source is indexable: reading record i twice yields the same record,
// which is what lets the index build make two identical passes.
package corpus

import (
	"github.com/cockroachdb/errors"

	chess "github.com/0x5844/motif"
)

// Record is one position as stored in a corpus.
type Record struct {
	// Line is the 1-based line number in the source file, 0 for records
	// built in memory.
	Line int
	// ID is the record's identifier, such as a Lichess puzzle id. May be empty.
	ID string
	// FEN is the board state.
	FEN string
	// Move is an optional UCI move applied to FEN to obtain the indexed position.
	Move string
}

// Source is a replayable, indexable sequence of records.
type Source interface {
	Len() int
	Record(i int) (Record, error)
}

// Records is an in-memory Source.
type Records []Record

// Len implements Source.
func (rs Records) Len() int { return len(rs) }

// Record implements Source.
func (rs Records) Record(i int) (Record, error) {
	if i < 0 || i >= len(rs) {
		return Record{}, errors.Newf("corpus: record %d out of range [0, %d)", i, len(rs))
	}
	return rs[i], nil
}

// FromFENs builds an in-memory Source from bare FEN strings.
func FromFENs(fens ...string) Records {
	rs := make(Records, len(fens))
	for i, fen := range fens {
		rs[i] = Record{FEN: fen}
	}
	return rs
}

// Decode parses r.FEN and applies r.Move, if any.
func Decode(r Record) (*chess.Position, error) {
	pos, err := chess.ParseFEN(r.FEN)
	if err != nil {
		return nil, r.wrap(err, "parse fen")
	}
	if r.Move == "" {
		return pos, nil
	}
	next, err := pos.PlayUCI(r.Move)
	if err != nil {
		return nil, r.wrap(err, "apply move")
	}
	return next, nil
}

func (r Record) wrap(err error, what string) error {
	switch {
	case r.Line > 0 && r.ID != "":
		return errors.Wrapf(err, "corpus: line %d (%s): %s", r.Line, r.ID, what)
	case r.Line > 0:
		return errors.Wrapf(err, "corpus: line %d: %s", r.Line, what)
	case r.ID != "":
		return errors.Wrapf(err, "corpus: record %s: %s", r.ID, what)
	}
	return errors.Wrapf(err, "corpus: %s", what)
}
