package corpus

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Format is the layout of a corpus file.
type Format int

const (
	// FormatPuzzleCSV is the Lichess puzzle database layout:
	// PuzzleId,FEN,Moves,Rating,... The first move of Moves is the
	// opponent's move that sets up the puzzle and is applied to FEN.
	FormatPuzzleCSV Format = iota
	// FormatFEN holds one FEN per line, optionally followed by ';' and a
	// UCI move to apply. Lines starting with '#' are comments.
	FormatFEN
)

const (
	puzzleColumnID    = 0
	puzzleColumnFEN   = 1
	puzzleColumnMoves = 2
	puzzleMinColumns  = 3
	puzzleHeader      = "PuzzleId"
)

func (f Format) String() string {
	switch f {
	case FormatPuzzleCSV:
		return "puzzle-csv"
	case FormatFEN:
		return "fen"
	}
	return "unknown"
}

// ParseFormat is the inverse of Format.String.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "puzzle-csv", "csv", "lichess":
		return FormatPuzzleCSV, nil
	case "fen", "epd":
		return FormatFEN, nil
	}
	return 0, errors.Newf("corpus: unknown format %q", s)
}

// skip reports whether line carries no record.
func (f Format) skip(line []byte) bool {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return true
	}
	switch f {
	case FormatPuzzleCSV:
		return bytes.HasPrefix(line, []byte(puzzleHeader))
	case FormatFEN:
		return line[0] == '#'
	}
	return false
}

// parse decodes one non-skipped line.
func (f Format) parse(line []byte, lineNo int) (Record, error) {
	switch f {
	case FormatPuzzleCSV:
		return parsePuzzleLine(line, lineNo)
	case FormatFEN:
		return parseFENLine(line, lineNo), nil
	}
	return Record{}, errors.Newf("corpus: unknown format %d", int(f))
}

func parsePuzzleLine(line []byte, lineNo int) (Record, error) {
	reader := csv.NewReader(bytes.NewReader(line))
	reader.FieldsPerRecord = -1
	row, err := reader.Read()
	if err != nil {
		return Record{}, errors.Wrapf(err, "corpus: line %d", lineNo)
	}
	if len(row) < puzzleMinColumns {
		return Record{}, errors.Newf("corpus: line %d: expected at least %d columns, got %d", lineNo, puzzleMinColumns, len(row))
	}
	moves := strings.Fields(row[puzzleColumnMoves])
	if len(moves) == 0 {
		return Record{}, errors.Newf("corpus: line %d: puzzle %s has no moves", lineNo, row[puzzleColumnID])
	}
	return Record{
		Line: lineNo,
		ID:   row[puzzleColumnID],
		FEN:  row[puzzleColumnFEN],
		Move: moves[0],
	}, nil
}

func parseFENLine(line []byte, lineNo int) Record {
	fen, move, _ := strings.Cut(string(bytes.TrimSpace(line)), ";")
	return Record{
		Line: lineNo,
		FEN:  strings.TrimSpace(fen),
		Move: strings.TrimSpace(move),
	}
}
