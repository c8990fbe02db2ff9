package bitset

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitset(t *testing.T) {
	b := New(100)
	require.Equal(t, uint64(100), b.Len())
	require.Len(t, b.Words(), 2)

	for i := uint64(0); i < b.Len(); i++ {
		require.False(t, b.Test(i), "fresh bit %d", i)
	}
	assert.False(t, b.Any())

	b.Set(10)
	for i := uint64(0); i < b.Len(); i++ {
		assert.Equal(t, i == 10, b.Test(i), "bit %d", i)
	}
	assert.Equal(t, uint64(1), b.Count())

	b.Reset(10)
	assert.False(t, b.Test(10))

	b.Set(10)
	b.Set(64)
	b.Set(99)
	assert.Equal(t, uint64(3), b.Count())
	assert.Equal(t, "{10, 64, 99}", b.String())

	b.Clear()
	assert.Equal(t, uint64(0), b.Count())
}

func TestBitset_OutOfRange(t *testing.T) {
	b := New(65)
	assert.Panics(t, func() { b.Test(65) })
	assert.Panics(t, func() { b.Set(1000) })
	assert.Panics(t, func() { b.Reset(65) })
	assert.NotPanics(t, func() { b.Set(64) })
}

func TestBitset_Empty(t *testing.T) {
	b := New(0)
	assert.Equal(t, uint64(0), b.Len())
	assert.Empty(t, b.Words())
	assert.Equal(t, uint64(0), b.And(New(0)).Count())
	assert.Panics(t, func() { b.Test(0) })

	called := false
	b.ForEach(func(uint64) { called = true })
	assert.False(t, called)
}

func TestBitset_And(t *testing.T) {
	// Sizes straddle the unrolled kernel and its tail.
	for _, n := range []uint64{1, 63, 64, 65, 255, 256, 257, 1000} {
		rng := rand.New(rand.NewSource(int64(n)))
		a, b := New(n), New(n)
		for i := uint64(0); i < n; i++ {
			if rng.Intn(2) == 0 {
				a.Set(i)
			}
			if rng.Intn(3) == 0 {
				b.Set(i)
			}
		}

		c := a.And(b)
		for i := uint64(0); i < n; i++ {
			require.Equal(t, a.Test(i) && b.Test(i), c.Test(i), "n=%d bit %d", n, i)
		}

		// And leaves its operands alone; AndWith mutates the receiver.
		before := a.Count()
		_ = a.And(b)
		assert.Equal(t, before, a.Count())
		assert.Same(t, a, a.AndWith(b))
		assert.Equal(t, c.Count(), a.Count())
	}
}

func TestBitset_AndSizeMismatch(t *testing.T) {
	assert.Panics(t, func() { New(10).And(New(11)) })
	assert.Panics(t, func() { New(128).AndWith(New(64)) })
}

func TestBitset_ForEachAscending(t *testing.T) {
	b := New(300)
	want := []uint64{0, 5, 63, 64, 128, 299}
	for i := len(want) - 1; i >= 0; i-- {
		b.Set(want[i])
	}
	var got []uint64
	b.ForEach(func(i uint64) { got = append(got, i) })
	assert.Equal(t, want, got)
}

func TestBitset_Clone(t *testing.T) {
	b := New(10)
	b.Set(3)
	c := b.Clone()
	c.Set(4)
	assert.False(t, b.Test(4))
	assert.True(t, c.Test(3))
}

func BenchmarkAnd(b *testing.B) {
	x, y := New(1<<20), New(1<<20)
	for i := uint64(0); i+1 < x.Len(); i += 3 {
		x.Set(i)
		y.Set(i + 1)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.AndWith(y)
	}
}
