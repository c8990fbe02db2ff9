package bitset

import "math/bits"

// andWords performs dst[i] &= src[i] for all words.
// len(src) must be at least len(dst).
func andWords(dst, src []uint64) {
	// Process 4 words at a time (unrolled)
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		dst[i] &= src[i]
		dst[i+1] &= src[i+1]
		dst[i+2] &= src[i+2]
		dst[i+3] &= src[i+3]
	}
	for ; i < len(dst); i++ {
		dst[i] &= src[i]
	}
}

func popcountWords(words []uint64) uint64 {
	var n int
	i := 0
	for ; i+4 <= len(words); i += 4 {
		n += bits.OnesCount64(words[i]) + bits.OnesCount64(words[i+1]) +
			bits.OnesCount64(words[i+2]) + bits.OnesCount64(words[i+3])
	}
	for ; i < len(words); i++ {
		n += bits.OnesCount64(words[i])
	}
	return uint64(n)
}
