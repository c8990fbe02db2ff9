package index

import (
	"fmt"

	chess "github.com/0x5844/motif"
	"github.com/0x5844/motif/bitset"
)

// RelationID identifies a relation.
type RelationID uint16

const (
	// KnightDefendsBishop links a knight (left) to a bishop of its own color
	// that it defends (right).
	KnightDefendsBishop RelationID = iota
	// BishopDefendsKnight links a bishop (left) to a knight of its own color
	// that it defends (right).
	BishopDefendsKnight
	// KnightAttacksKnight links a knight (left) to an opposing knight it
	// attacks (right). Both colors must be tracked for it to have edges.
	KnightAttacksKnight
	// InstanceInPosition links every instance (left) to its position (right).
	InstanceInPosition
)

// RelationInfo declares a relation and the domains on each side.
type RelationInfo struct {
	ID    RelationID
	Name  string
	Left  Domain
	Right Domain
}

// Edge is one (left, right) pair.
type Edge struct {
	Left  uint64
	Right uint64
}

// Relation is an append-only edge list between two domains.
type Relation struct {
	info  RelationInfo
	edges []Edge
}

// NewRelation creates an empty relation with room for capacity edges.
func NewRelation(info RelationInfo, capacity int) *Relation {
	return &Relation{info: info, edges: make([]Edge, 0, capacity)}
}

// Info returns the relation's declaration.
func (r *Relation) Info() RelationInfo { return r.info }

// Add appends an edge. Ids are not checked against domain sizes.
func (r *Relation) Add(left, right uint64) {
	r.edges = append(r.edges, Edge{Left: left, Right: right})
}

// Edges returns the edges in insertion order. The slice must not be modified.
func (r *Relation) Edges() []Edge { return r.edges }

// Len returns the number of edges.
func (r *Relation) Len() int { return len(r.edges) }

// ProjectLeft returns a bitset of resultSize with bit l set iff some edge
// (l, r) has r set in rightFilter.
func (r *Relation) ProjectLeft(rightFilter *bitset.Bitset, resultSize uint64) *bitset.Bitset {
	result := bitset.New(resultSize)
	for _, e := range r.edges {
		if rightFilter.Test(e.Right) {
			result.Set(e.Left)
		}
	}
	return result
}

// ProjectRight returns a bitset of resultSize with bit r set iff some edge
// (l, r) has l set in leftFilter.
func (r *Relation) ProjectRight(leftFilter *bitset.Bitset, resultSize uint64) *bitset.Bitset {
	result := bitset.New(resultSize)
	for _, e := range r.edges {
		if leftFilter.Test(e.Left) {
			result.Set(e.Right)
		}
	}
	return result
}

// SourceFunc returns the squares of the left-side pieces related to the
// right-side instance in pos.
type SourceFunc func(pos *chess.Position, right Instance) chess.Bitboard

// RelationDef declares an instance-to-instance relation populated during
// the fill pass. Both sides live in DomainInstance; LeftType and RightType
// pin down which piece types each side holds.
type RelationDef struct {
	Info      RelationInfo
	LeftType  chess.PieceType
	RightType chess.PieceType
	Sources   SourceFunc
}

var instanceInPosition = RelationInfo{
	ID:    InstanceInPosition,
	Name:  "instance_in_position",
	Left:  DomainInstance,
	Right: DomainPosition,
}

// defenders returns the pieces of type pt that defend in.
func defenders(pt chess.PieceType) SourceFunc {
	return func(pos *chess.Position, in Instance) chess.Bitboard {
		b := pos.Board()
		return b.AttackersTo(in.Square, in.Color) & b.Pieces(pt, in.Color)
	}
}

// attackers returns the opposing pieces of type pt that attack in.
func attackers(pt chess.PieceType) SourceFunc {
	return func(pos *chess.Position, in Instance) chess.Bitboard {
		b := pos.Board()
		them := in.Color.Other()
		return b.AttackersTo(in.Square, them) & b.Pieces(pt, them)
	}
}

// DefaultRelations returns the built-in instance relations.
func DefaultRelations() []RelationDef {
	return []RelationDef{
		{
			Info:     RelationInfo{ID: KnightDefendsBishop, Name: "knight_defends_bishop", Left: DomainInstance, Right: DomainInstance},
			LeftType: chess.Knight, RightType: chess.Bishop,
			Sources: defenders(chess.Knight),
		},
		{
			Info:     RelationInfo{ID: BishopDefendsKnight, Name: "bishop_defends_knight", Left: DomainInstance, Right: DomainInstance},
			LeftType: chess.Bishop, RightType: chess.Knight,
			Sources: defenders(chess.Bishop),
		},
		{
			Info:     RelationInfo{ID: KnightAttacksKnight, Name: "knight_attacks_knight", Left: DomainInstance, Right: DomainInstance},
			LeftType: chess.Knight, RightType: chess.Knight,
			Sources: attackers(chess.Knight),
		},
	}
}

func validateRelations(defs []RelationDef) {
	seen := map[RelationID]bool{InstanceInPosition: true}
	for _, d := range defs {
		if seen[d.Info.ID] {
			panic(fmt.Sprintf("index: duplicate relation %d (%s)", d.Info.ID, d.Info.Name))
		}
		seen[d.Info.ID] = true
		if d.Info.Left != DomainInstance || d.Info.Right != DomainInstance {
			panic(fmt.Sprintf("index: relation %s must link instances to instances", d.Info.Name))
		}
		if d.Sources == nil {
			panic(fmt.Sprintf("index: relation %s has no source function", d.Info.Name))
		}
	}
}
