package chess

// --- Precomputed Attack and Geometry Data ---
// These tables are initialized in the init() function below and never
// written afterwards. Sliding attacks use the magic tables in magic.go once
// InitMagics has run, and the classical ray walk before that.
var (
	// Indexed by [colorIdx][square] for pawns, [square] for others.
	pawnAttacks    [2][NumOfSquaresInBoard]Bitboard // Squares attacked *by* a pawn on sq (captures).
	pawnAttackedBy [2][NumOfSquaresInBoard]Bitboard // Squares a pawn *must be on* to attack sq.
	knightAttacks  [NumOfSquaresInBoard]Bitboard    // knightAttackedBy == knightAttacks
	kingAttacks    [NumOfSquaresInBoard]Bitboard

	rays      [NumOfSquaresInBoard][NumDirections]Bitboard       // Ray in direction from sq (excluding sq).
	betweenBB [NumOfSquaresInBoard][NumOfSquaresInBoard]Bitboard // Squares strictly between two squares.

	// Squares from which a slider could attack targetSq on an empty board.
	rookAttackPotential   [NumOfSquaresInBoard]Bitboard
	bishopAttackPotential [NumOfSquaresInBoard]Bitboard
)

var (
	rookDirections   = []int{North, East, South, West}
	bishopDirections = []int{NorthEast, SouthEast, SouthWest, NorthWest}
)

const (
	whiteIdx = 0
	blackIdx = 1
)

func colorIndex(c Color) int {
	if c == Black {
		return blackIdx
	}
	return whiteIdx
}

func init() {
	initLeaperAttacks()
	initRays()
	initBetween() // Uses rays
	initSliderAttackPotential()
}

// Initializes pawn, knight and king attack tables.
func initLeaperAttacks() {
	for sq := A1; sq <= H8; sq++ {
		sqBB := SquareBB(sq)

		pawnAttacks[whiteIdx][sq] = (sqBB<<7)&NotHFile | (sqBB<<9)&NotAFile
		pawnAttacks[blackIdx][sq] = (sqBB>>9)&NotHFile | (sqBB>>7)&NotAFile
		// A white pawn attacks sq from the squares a black pawn on sq would attack, and vice versa.
		pawnAttackedBy[whiteIdx][sq] = pawnAttacks[blackIdx][sq]
		pawnAttackedBy[blackIdx][sq] = pawnAttacks[whiteIdx][sq]

		// Pattern: +/- 6, 10, 15, 17
		knightAttacks[sq] = (sqBB<<17)&NotAFile | (sqBB<<15)&NotHFile |
			(sqBB<<10)&NotABFile | (sqBB<<6)&NotGHFile |
			(sqBB>>6)&NotABFile | (sqBB>>10)&NotGHFile |
			(sqBB>>15)&NotAFile | (sqBB>>17)&NotHFile

		// Pattern: +/- 1, 7, 8, 9
		kingAttacks[sq] = (sqBB<<9)&NotAFile | sqBB<<8 | (sqBB<<7)&NotHFile |
			(sqBB<<1)&NotAFile | (sqBB>>1)&NotHFile |
			(sqBB>>7)&NotAFile | sqBB>>8 | (sqBB>>9)&NotHFile
	}
}

// Initializes ray tables. Rays exclude the starting square.
func initRays() {
	// Steps: N=8, NE=9, E=1, SE=-7, S=-8, SW=-9, W=-1, NW=7
	steps := [NumDirections]int{8, 9, 1, -7, -8, -9, -1, 7}
	for sq := A1; sq <= H8; sq++ {
		for dir := 0; dir < NumDirections; dir++ {
			ray := EmptyBB
			for cur := int(sq) + steps[dir]; cur >= 0 && cur < NumOfSquaresInBoard; cur += steps[dir] {
				prev := Square(cur - steps[dir])
				next := Square(cur)
				// Wrapped around an edge if the step is longer than a king move.
				if max(abs(int(next.File())-int(prev.File())), abs(int(next.Rank())-int(prev.Rank()))) > 1 {
					break
				}
				ray |= SquareBB(next)
			}
			rays[sq][dir] = ray
		}
	}
}

// Initializes between bitboards using precomputed rays.
func initBetween() {
	for s1 := A1; s1 <= H8; s1++ {
		for s2 := A1; s2 <= H8; s2++ {
			dir := getDirection(s1, s2)
			if dir == -1 {
				continue
			}
			betweenBB[s1][s2] = Ray(s1, dir) & Ray(s2, getOppositeDirection(dir))
		}
	}
}

func initSliderAttackPotential() {
	for sq := A1; sq <= H8; sq++ {
		rookAttackPotential[sq] = Ray(sq, North) | Ray(sq, East) | Ray(sq, South) | Ray(sq, West)
		bishopAttackPotential[sq] = Ray(sq, NorthEast) | Ray(sq, SouthEast) | Ray(sq, SouthWest) | Ray(sq, NorthWest)
	}
}

// getDirection determines the direction index from square s1 to s2, or -1 if not aligned.
func getDirection(s1, s2 Square) int {
	if s1 == s2 || s1 < A1 || s1 > H8 || s2 < A1 || s2 > H8 {
		return -1
	}
	df := int(s2.File()) - int(s1.File())
	dr := int(s2.Rank()) - int(s1.Rank())
	switch {
	case df == 0 && dr > 0:
		return North
	case df == 0:
		return South
	case dr == 0 && df > 0:
		return East
	case dr == 0:
		return West
	case abs(df) != abs(dr):
		return -1
	case dr > 0 && df > 0:
		return NorthEast
	case dr > 0:
		return NorthWest
	case df > 0:
		return SouthEast
	}
	return SouthWest
}

// getOppositeDirection returns the opposite direction index.
// Directions are ordered such that opposite is +4 mod 8.
func getOppositeDirection(dir int) int {
	if dir < 0 || dir >= NumDirections {
		return -1
	}
	return (dir + 4) % NumDirections
}

// isPositiveRayDir checks if a direction index increases the square index (N, NE, E, NW).
func isPositiveRayDir(dir int) bool {
	return dir == North || dir == NorthEast || dir == East || dir == NorthWest
}

// Ray returns the precomputed ray from sq in direction dir (excluding sq).
func Ray(sq Square, dir int) Bitboard {
	if sq < A1 || sq > H8 || dir < 0 || dir >= NumDirections {
		return EmptyBB
	}
	return rays[sq][dir]
}

// Between returns the precomputed squares strictly between s1 and s2.
func Between(s1, s2 Square) Bitboard {
	if s1 < A1 || s1 > H8 || s2 < A1 || s2 > H8 {
		return EmptyBB
	}
	return betweenBB[s1][s2]
}

// --- Attack Generation ---

// GetPawnAttacks returns the squares attacked by a pawn of 'color' on 'sq'.
func GetPawnAttacks(sq Square, color Color) Bitboard {
	if sq < A1 || sq > H8 {
		return EmptyBB
	}
	return pawnAttacks[colorIndex(color)][sq]
}

// GetPawnAttackedBy returns the squares where a pawn of 'color' would attack 'sq'.
func GetPawnAttackedBy(color Color, sq Square) Bitboard {
	if sq < A1 || sq > H8 {
		return EmptyBB
	}
	return pawnAttackedBy[colorIndex(color)][sq]
}

// GetKnightAttacks returns the squares attacked by a knight on 'sq'.
func GetKnightAttacks(sq Square) Bitboard {
	if sq < A1 || sq > H8 {
		return EmptyBB
	}
	return knightAttacks[sq]
}

// GetKingAttacks returns the squares attacked by a king on 'sq'.
func GetKingAttacks(sq Square) Bitboard {
	if sq < A1 || sq > H8 {
		return EmptyBB
	}
	return kingAttacks[sq]
}

// generateSliderAttacks walks the precomputed rays from sq, stopping at the
// first blocker in each direction (blocker included). It is the reference
// the magic tables are built from.
func generateSliderAttacks(sq Square, blockers Bitboard, dirs []int) Bitboard {
	if sq < A1 || sq > H8 {
		return EmptyBB
	}
	attacks := EmptyBB
	for _, dir := range dirs {
		ray := Ray(sq, dir)
		blockedRay := ray & blockers
		if blockedRay == 0 {
			attacks |= ray
			continue
		}
		var blockerSq Square
		if isPositiveRayDir(dir) {
			blockerSq, _ = blockedRay.LSB()
		} else {
			blockerSq, _ = blockedRay.MSB()
		}
		// Ray from sq minus the ray beyond the blocker keeps the blocker itself.
		attacks |= ray &^ Ray(blockerSq, dir)
	}
	return attacks
}

// GenerateRookAttacks calculates rook attacks from a square, considering blockers.
func GenerateRookAttacks(sq Square, blockers Bitboard) Bitboard {
	if sq < A1 || sq > H8 {
		return EmptyBB
	}
	if magicsReady.Load() {
		return rookMagics[sq].lookup(blockers)
	}
	return generateSliderAttacks(sq, blockers, rookDirections)
}

// GenerateBishopAttacks calculates bishop attacks from a square, considering blockers.
func GenerateBishopAttacks(sq Square, blockers Bitboard) Bitboard {
	if sq < A1 || sq > H8 {
		return EmptyBB
	}
	if magicsReady.Load() {
		return bishopMagics[sq].lookup(blockers)
	}
	return generateSliderAttacks(sq, blockers, bishopDirections)
}

// GenerateQueenAttacks calculates queen attacks from a square, considering blockers.
func GenerateQueenAttacks(sq Square, blockers Bitboard) Bitboard {
	return GenerateRookAttacks(sq, blockers) | GenerateBishopAttacks(sq, blockers)
}

// Attacks returns the squares a piece of type pt and color c standing on sq
// attacks, given the board occupancy. Color only matters for pawns.
func Attacks(pt PieceType, c Color, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Pawn:
		return GetPawnAttacks(sq, c)
	case Knight:
		return GetKnightAttacks(sq)
	case Bishop:
		return GenerateBishopAttacks(sq, occupied)
	case Rook:
		return GenerateRookAttacks(sq, occupied)
	case Queen:
		return GenerateQueenAttacks(sq, occupied)
	case King:
		return GetKingAttacks(sq)
	}
	return EmptyBB
}

// GetAttackersTo returns a bitboard of pieces of 'attackerColor' attacking 'targetSq', considering 'occupied' board state.
// Takes bitboards for each piece type of the attacking color.
func GetAttackersTo(targetSq Square, attackerColor Color, occupied Bitboard,
	pawns, knights, bishops, rooks, queens, king Bitboard) Bitboard {

	if targetSq < A1 || targetSq > H8 {
		return EmptyBB
	}

	attackers := GetPawnAttackedBy(attackerColor, targetSq) & pawns
	attackers |= GetKnightAttacks(targetSq) & knights // Knight attacks are symmetrical
	// Slider attacks generated *from* targetSq, intersected with the matching sliders.
	attackers |= GenerateBishopAttacks(targetSq, occupied) & (bishops | queens)
	attackers |= GenerateRookAttacks(targetSq, occupied) & (rooks | queens)
	attackers |= GetKingAttacks(targetSq) & king
	return attackers
}

// PinnedPieces identifies pieces of 'color' pinned to their king.
// kingSqBB should be the Bitboard containing only the king of 'color'.
// potentialPins is the set of pieces of 'color' that could be pinned.
// oppRQ is opponent Rooks | Queens. oppBQ is opponent Bishops | Queens.
func PinnedPieces(color Color, occupied, kingSqBB, potentialPins, oppRQ, oppBQ Bitboard) Bitboard {
	kingSq, ok := kingSqBB.LSB()
	if !ok {
		return EmptyBB
	}

	pinned := EmptyBB
	pinners := rookAttackPotential[kingSq]&oppRQ | bishopAttackPotential[kingSq]&oppBQ
	for tempPinners := pinners; tempPinners != EmptyBB; {
		pinnerSq, next, _ := tempPinners.PopLSB()
		tempPinners = next

		// Only a single piece between king and pinner can be pinned.
		piecesBetween := Between(kingSq, pinnerSq) & occupied
		if piecesBetween.PopCount() == 1 {
			pinned |= piecesBetween & potentialPins
		}
	}
	return pinned
}
