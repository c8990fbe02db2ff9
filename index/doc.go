// Package index is an in-memory bitmap index over chess positions.
//
// Architecture:
//   - Two domains: positions, and one shared table of piece instances
//     tagged with their piece type
//   - One packed bitset per feature, sized to its domain
//   - Append-only edge lists for relations between instances, plus the
//     built-in instance_in_position relation that links every instance
//     to its position
//   - Two-pass build: a counting pass sizes every structure, a fill pass
//     assigns ids and evaluates predicates
//
// Queries are hand-assembled Expr trees of feature lookups, intersections
// and relation projections. They never re-read the corpus.
//
// Build-protocol violations (wrong pass order, more entities in the fill
// pass than were counted, mismatched domains in a query) panic.
package index
