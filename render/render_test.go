package render

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chess "github.com/0x5844/motif"
)

type doc struct {
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
	Rects  []struct {
		X     int    `xml:"x,attr"`
		Y     int    `xml:"y,attr"`
		Style string `xml:"style,attr"`
	} `xml:"rect"`
	Texts []struct {
		X    int    `xml:"x,attr"`
		Y    int    `xml:"y,attr"`
		Body string `xml:",chardata"`
	} `xml:"text"`
}

func draw(t *testing.T, fen string, marks chess.Bitboard, opts ...Option) doc {
	t.Helper()
	pos, err := chess.ParseFEN(fen)
	require.NoError(t, err)
	var buf bytes.Buffer
	Position(&buf, pos, marks, opts...)

	var d doc
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &d), buf.String())
	return d
}

func TestPosition(t *testing.T) {
	d := draw(t, "7k/8/4b3/3n4/8/8/8/K7 w - - 0 1", chess.SquareBB(chess.D5), WithSquareSize(10))

	assert.Equal(t, "80", d.Width)
	assert.Equal(t, "80", d.Height)
	require.Len(t, d.Rects, 65)

	// a1 is dark and drawn at the bottom left.
	assert.Equal(t, 0, d.Rects[0].X)
	assert.Equal(t, 70, d.Rects[0].Y)
	assert.Equal(t, "fill:#b58863", d.Rects[0].Style)

	var marked int
	for _, r := range d.Rects {
		if strings.Contains(r.Style, "fill-opacity") {
			marked++
			assert.Equal(t, 30, r.X)
			assert.Equal(t, 30, r.Y)
		}
	}
	assert.Equal(t, 1, marked)

	var glyphs []string
	for _, tx := range d.Texts {
		glyphs = append(glyphs, tx.Body)
	}
	assert.ElementsMatch(t, []string{"♔", "♞", "♝", "♚"}, glyphs)
}

func TestPositionFlippedWithCoordinates(t *testing.T) {
	d := draw(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1", chess.EmptyBB,
		WithSquareSize(10), WithFlip(true), WithCoordinates(true),
		WithColors("white", "gray", "red"))

	require.Len(t, d.Rects, 64)
	// a1 is at the top right when viewed from Black's side.
	assert.Equal(t, 70, d.Rects[0].X)
	assert.Equal(t, 0, d.Rects[0].Y)
	assert.Equal(t, "fill:gray", d.Rects[0].Style)
	assert.Len(t, d.Texts, 2+16)
}
