// Package render draws positions as SVG diagrams, optionally marking
// squares such as the instances a query matched.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	chess "github.com/0x5844/motif"
)

type options struct {
	squareSize  int
	light, dark string
	mark        string
	coordinates bool
	flipped     bool
}

// Option configures a diagram.
type Option func(*options)

// WithSquareSize sets the edge length of one square in pixels. Default 45.
func WithSquareSize(px int) Option {
	return func(o *options) {
		if px > 0 {
			o.squareSize = px
		}
	}
}

// WithColors sets the fill colors of light squares, dark squares and marks.
func WithColors(light, dark, mark string) Option {
	return func(o *options) {
		o.light, o.dark, o.mark = light, dark, mark
	}
}

// WithCoordinates draws file letters and rank digits along the edges.
func WithCoordinates(on bool) Option {
	return func(o *options) { o.coordinates = on }
}

// WithFlip draws the board from Black's side.
func WithFlip(on bool) Option {
	return func(o *options) { o.flipped = on }
}

// Position writes pos as a standalone SVG document to w. Squares in marks
// get a translucent overlay.
func Position(w io.Writer, pos *chess.Position, marks chess.Bitboard, opts ...Option) {
	o := options{
		squareSize: 45,
		light:      "#f0d9b5",
		dark:       "#b58863",
		mark:       "#e63946",
	}
	for _, fn := range opts {
		fn(&o)
	}

	size := o.squareSize * 8
	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Title(pos.String())

	b := pos.Board()
	fontSize := o.squareSize * 4 / 5
	for sq := chess.A1; sq <= chess.H8; sq++ {
		x, y := o.origin(sq)
		fill := o.dark
		if chess.SquareColor(sq) == chess.White {
			fill = o.light
		}
		canvas.Rect(x, y, o.squareSize, o.squareSize, "fill:"+fill)
		if marks.Occupied(sq) {
			canvas.Rect(x, y, o.squareSize, o.squareSize, fmt.Sprintf("fill:%s;fill-opacity:0.45", o.mark))
		}
		if p := b.Piece(sq); p != chess.NoPiece {
			canvas.Text(x+o.squareSize/2, y+o.squareSize*4/5, p.String(),
				fmt.Sprintf("font-size:%dpx;text-anchor:middle", fontSize))
		}
	}

	if o.coordinates {
		style := fmt.Sprintf("font-size:%dpx;fill:#333", o.squareSize/5)
		for f := chess.FileA; f <= chess.FileH; f++ {
			x, _ := o.origin(chess.NewSquare(f, chess.Rank1))
			canvas.Text(x+o.squareSize-o.squareSize/5, size-2, f.String(), style)
		}
		for r := chess.Rank1; r <= chess.Rank8; r++ {
			_, y := o.origin(chess.NewSquare(chess.FileA, r))
			canvas.Text(2, y+o.squareSize/5, r.String(), style)
		}
	}
	canvas.End()
}

// origin returns the top left corner of sq.
func (o options) origin(sq chess.Square) (x, y int) {
	col, row := int(sq.File()), 7-int(sq.Rank())
	if o.flipped {
		col, row = 7-col, 7-row
	}
	return col * o.squareSize, row * o.squareSize
}
