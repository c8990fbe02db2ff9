package index

import (
	"github.com/cockroachdb/errors"

	chess "github.com/0x5844/motif"
	"github.com/0x5844/motif/corpus"
)

// Build indexes every record of src. Both passes read the same Source, so
// they see the same positions in the same order. A malformed record aborts
// the build before the indexer sees it; no partial index is returned.
func Build(src corpus.Source, opts ...Option) (*Index, error) {
	chess.InitMagics()

	ix := NewIndexer(opts...)
	n := src.Len()

	ix.BeginFirstPass()
	for i := 0; i < n; i++ {
		pos, err := load(src, i)
		if err != nil {
			return nil, err
		}
		ix.PushFirstPass(pos)
	}
	ix.EndFirstPass()

	for i := 0; i < n; i++ {
		pos, err := load(src, i)
		if err != nil {
			return nil, err
		}
		ix.ProcessSecondPass(pos)
	}
	return ix.Finish(), nil
}

// BuildPositions indexes already decoded positions.
func BuildPositions(positions []*chess.Position, opts ...Option) *Index {
	chess.InitMagics()

	ix := NewIndexer(opts...)
	ix.BeginFirstPass()
	for _, pos := range positions {
		ix.PushFirstPass(pos)
	}
	ix.EndFirstPass()
	for _, pos := range positions {
		ix.ProcessSecondPass(pos)
	}
	return ix.Finish()
}

func load(src corpus.Source, i int) (*chess.Position, error) {
	r, err := src.Record(i)
	if err != nil {
		return nil, errors.Wrapf(err, "index: read record %d", i)
	}
	pos, err := corpus.Decode(r)
	if err != nil {
		return nil, errors.Wrapf(err, "index: decode record %d", i)
	}
	return pos, nil
}
