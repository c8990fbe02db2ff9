// Command motif indexes a corpus of chess positions by tactical motif and
// answers queries over it.
//
// Examples:
//
//	motif --corpus puzzles.csv.zst build
//	motif --corpus puzzles.csv.zst query M03 --limit 5 --svg out/
//	motif --corpus positions.fen --format fen query pin --count
//	motif patterns defence
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
