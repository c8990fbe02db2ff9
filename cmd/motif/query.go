package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chess "github.com/0x5844/motif"
	"github.com/0x5844/motif/corpus"
	"github.com/0x5844/motif/index"
	"github.com/0x5844/motif/pattern"
	"github.com/0x5844/motif/render"
)

type queryFlags struct {
	limit int
	count bool
	out   string
	svg   string
	board bool
}

func newQueryCmd(a *app) *cobra.Command {
	var qf queryFlags
	cmd := &cobra.Command{
		Use:   "query <pattern>",
		Short: "Run a built-in pattern against the corpus",
		Long: `Run a built-in pattern, given by name or code (see "motif patterns"),
against the indexed corpus. Matching positions are printed as record number,
record id and FEN.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, src, err := a.openIndex()
			if err != nil {
				return err
			}
			defer src.Close()

			expr, err := resolveQuery(idx, args[0])
			if err != nil {
				return err
			}
			a.log.Debug("query resolved", zap.Stringer("expr", expr))

			if qf.count {
				fmt.Fprintln(cmd.OutOrStdout(), idx.Count(expr))
				return nil
			}

			bm := idx.Collect(expr)
			if qf.out != "" {
				if err := writeBitmap(qf.out, bm.WriteTo); err != nil {
					return err
				}
			}
			if qf.svg != "" {
				if err := os.MkdirAll(qf.svg, 0o755); err != nil {
					return errors.Wrap(err, "create svg directory")
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d matching positions\n", bm.GetCardinality())
			shown := 0
			for it := bm.Iterator(); it.HasNext() && (qf.limit <= 0 || shown < qf.limit); shown++ {
				id := it.Next()
				r, err := src.Record(int(id))
				if err != nil {
					return err
				}
				pos, err := corpus.Decode(r)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d\t%s\t%s\n", id, r.ID, pos)
				if qf.board {
					fmt.Fprint(out, pos.Board().Draw())
				}
				if qf.svg != "" {
					if err := writeDiagram(filepath.Join(qf.svg, fmt.Sprintf("%d.svg", id)), idx, id, pos); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&qf.limit, "limit", "n", 20, "print at most this many positions (0 for all)")
	f.BoolVar(&qf.count, "count", false, "print only the number of matches")
	f.StringVarP(&qf.out, "out", "o", "", "write the matching position ids as a roaring bitmap")
	f.StringVar(&qf.svg, "svg", "", "write a diagram of every printed position to this directory")
	f.BoolVar(&qf.board, "board", false, "draw every printed position as text")
	return cmd
}

// resolveQuery looks arg up in the built-in book and checks that the
// pattern fits idx.
func resolveQuery(idx *index.Index, arg string) (index.Expr, error) {
	book := pattern.NewBuiltinBook()
	p, ok := book.Lookup(arg)
	if !ok {
		if near := book.Find(pattern.Split(arg)); near != nil {
			return nil, errors.Newf("unknown pattern %q, closest is %s (%s)", arg, near.Name(), near.Code())
		}
		return nil, errors.Newf("unknown pattern %q, see motif patterns", arg)
	}
	if err := idx.Validate(p.Expr()); err != nil {
		return nil, errors.Wrapf(err, "pattern %s", p.Code())
	}
	return p.Expr(), nil
}

func writeBitmap(path string, write func(w io.Writer) (int64, error)) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create bitmap file")
	}
	if _, err := write(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return f.Close()
}

// writeDiagram renders pos with the squares of its tracked pieces marked.
func writeDiagram(path string, idx *index.Index, id uint64, pos *chess.Position) error {
	var marks chess.Bitboard
	_, instances := idx.InstancesOf(id)
	for _, in := range instances {
		marks = marks.Set(in.Square)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create diagram")
	}
	render.Position(f, pos, marks, render.WithCoordinates(true), render.WithFlip(pos.Turn() == chess.Black))
	return f.Close()
}
