package chess

// Color represents the color of a chess piece or the side to move.
type Color int8

const (
	// NoColor represents no color.
	NoColor Color = iota
	// White represents the color white.
	White
	// Black represents the color black.
	Black
)

// Other returns the opposite color of the receiver. NoColor stays NoColor.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// String implements the fmt.Stringer interface and returns
// the color's FEN compatible notation.
func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	}
	return "-"
}

// Name returns a display friendly name.
func (c Color) Name() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "No Color"
}

// PieceType is the type of a piece.
type PieceType int8

const (
	// NoPieceType represents a lack of piece type.
	NoPieceType PieceType = iota
	// Pawn represents a pawn.
	Pawn
	// Knight represents a knight.
	Knight
	// Bishop represents a bishop.
	Bishop
	// Rook represents a rook.
	Rook
	// Queen represents a queen.
	Queen
	// King represents a king.
	King
)

// PieceTypes returns a slice of all piece types, Pawn to King.
func PieceTypes() [NumOfPieces]PieceType {
	return [NumOfPieces]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}
}

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	}
	return ""
}

// Name returns the lower case English name of the piece type.
func (p PieceType) Name() string {
	switch p {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return ""
}

// PieceTypeFromName is the inverse of PieceType.Name. It accepts the single
// letter form as well and returns NoPieceType for unknown input.
func PieceTypeFromName(s string) PieceType {
	for _, pt := range PieceTypes() {
		if s == pt.Name() || s == pt.String() {
			return pt
		}
	}
	return NoPieceType
}

// Piece is a piece type with a color.
type Piece int8

const (
	// NoPiece represents no piece
	NoPiece Piece = iota
	WhitePawn
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
)

// NewPiece returns the piece matching the PieceType and Color.
// NoPiece is returned if the PieceType or Color isn't valid.
func NewPiece(t PieceType, c Color) Piece {
	if t < Pawn || t > King {
		return NoPiece
	}
	switch c {
	case White:
		return Piece(t)
	case Black:
		return Piece(int8(t) + NumOfPieces)
	}
	return NoPiece
}

// Type returns the type of the piece.
func (p Piece) Type() PieceType {
	switch {
	case p >= WhitePawn && p <= WhiteKing:
		return PieceType(p)
	case p >= BlackPawn && p <= BlackKing:
		return PieceType(int8(p) - NumOfPieces)
	}
	return NoPieceType
}

// Color returns the color of the piece.
func (p Piece) Color() Color {
	switch {
	case p >= WhitePawn && p <= WhiteKing:
		return White
	case p >= BlackPawn && p <= BlackKing:
		return Black
	}
	return NoColor
}

// String implements the fmt.Stringer interface
func (p Piece) String() string {
	return pieceUnicodes[p]
}

var pieceUnicodes = [...]string{" ", "♙", "♘", "♗", "♖", "♕", "♔", "♟", "♞", "♝", "♜", "♛", "♚"}

// getFENChar returns the FEN letter of the piece: upper case for White.
func (p Piece) getFENChar() string {
	return fenChars[p]
}

var fenChars = [...]string{"", "P", "N", "B", "R", "Q", "K", "p", "n", "b", "r", "q", "k"}

// pieceFromFENChar is the inverse of getFENChar.
func pieceFromFENChar(ch byte) Piece {
	for i := WhitePawn; i <= BlackKing; i++ {
		if fenChars[i][0] == ch {
			return i
		}
	}
	return NoPiece
}

// File is the file of a square.
type File int8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

func (f File) String() string {
	return string(rune('a' + f))
}

// Rank is the rank of a square.
type Rank int8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

func (r Rank) String() string {
	return string(rune('1' + r))
}

// A Square is one of the 64 rank and file combinations that make up a chess board.
type Square int8

// NoSquare represents an invalid or absent square.
const NoSquare Square = -1

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NewSquare creates a new Square from a File and a Rank
func NewSquare(f File, r Rank) Square {
	return Square(int8(r)*NumOfFiles + int8(f))
}

// File returns the square's file.
func (sq Square) File() File {
	return File(int8(sq) % NumOfFiles)
}

// Rank returns the square's rank.
func (sq Square) Rank() Rank {
	return Rank(int8(sq) / NumOfFiles)
}

// String returns the algebraic name of the square, e.g. "e4".
func (sq Square) String() string {
	if sq < A1 || sq > H8 {
		return "-"
	}
	return sq.File().String() + sq.Rank().String()
}

// SquareColor returns White for light squares and Black for dark ones.
func SquareColor(sq Square) Color {
	if LightSquaresBB.Occupied(sq) {
		return White
	}
	return Black
}

// parseSquare converts an algebraic square name into a Square.
func parseSquare(s string) (Square, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, false
	}
	return NewSquare(File(s[0]-'a'), Rank(s[1]-'1')), true
}
