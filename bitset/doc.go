// Package bitset provides a fixed-size packed bit vector.
//
// Architecture:
//   - ceil(n/64) uint64 words for n bits, bit i in word i/64 at position i%64
//   - Size is fixed at construction; no growth, no shrinking
//   - Word-batched AND kernel, four words per iteration plus a scalar tail
//
// Out-of-range indices and size mismatches are programmer errors and panic.
//
// Used by the index package for feature columns and query results.
package bitset
