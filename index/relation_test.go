package index

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x5844/motif/bitset"
)

func bits(n uint64, set ...uint64) *bitset.Bitset {
	b := bitset.New(n)
	for _, i := range set {
		b.Set(i)
	}
	return b
}

func members(b *bitset.Bitset) []uint64 {
	out := []uint64{}
	b.ForEach(func(i uint64) { out = append(out, i) })
	return out
}

func TestRelationProjectionRoundTrip(t *testing.T) {
	r := NewRelation(RelationInfo{Name: "test", Left: DomainInstance, Right: DomainInstance}, 0)
	r.Add(0, 0)
	r.Add(0, 1)
	r.Add(1, 2)
	require.Equal(t, 3, r.Len())
	assert.Equal(t, []Edge{{0, 0}, {0, 1}, {1, 2}}, r.Edges())

	assert.Equal(t, []uint64{0, 1}, members(r.ProjectLeft(bits(3, 1, 2), 2)))
	assert.Equal(t, []uint64{0, 1}, members(r.ProjectRight(bits(2, 0), 3)))
	assert.Equal(t, []uint64{2}, members(r.ProjectRight(bits(2, 1), 3)))
	assert.Empty(t, members(r.ProjectLeft(bits(3), 2)))
}

func TestRelationProjectLeftDefinition(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const nLeft, nRight = 40, 70

	r := NewRelation(RelationInfo{Name: "random"}, 0)
	for i := 0; i < 200; i++ {
		// Duplicates and unsorted edges are allowed.
		r.Add(uint64(rng.Intn(nLeft)), uint64(rng.Intn(nRight)))
	}
	filter := bitset.New(nRight)
	for i := uint64(0); i < nRight; i++ {
		if rng.Intn(4) == 0 {
			filter.Set(i)
		}
	}

	got := r.ProjectLeft(filter, nLeft)
	for l := uint64(0); l < nLeft; l++ {
		want := false
		for _, e := range r.Edges() {
			if e.Left == l && filter.Test(e.Right) {
				want = true
				break
			}
		}
		require.Equal(t, want, got.Test(l), "left %d", l)
	}
}

func TestRelationProjectEmpty(t *testing.T) {
	r := NewRelation(instanceInPosition, 0)
	assert.Equal(t, uint64(0), r.ProjectRight(bitset.New(0), 0).Len())
	assert.Equal(t, instanceInPosition, r.Info())
}

func TestValidateRelations(t *testing.T) {
	assert.NotPanics(t, func() { validateRelations(DefaultRelations()) })

	dup := append(DefaultRelations(), DefaultRelations()[0])
	assert.Panics(t, func() { validateRelations(dup) })

	builtin := DefaultRelations()[:1]
	builtin[0].Info.ID = InstanceInPosition
	assert.Panics(t, func() { validateRelations(builtin) })

	noSource := DefaultRelations()[:1]
	noSource[0].Sources = nil
	assert.Panics(t, func() { validateRelations(noSource) })
}
