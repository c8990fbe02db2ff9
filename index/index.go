package index

import (
	"fmt"
	"sort"

	chess "github.com/0x5844/motif"
	"github.com/0x5844/motif/bitset"
	"go.uber.org/zap"
)

// Index is the immutable result of a build. It is safe for concurrent
// queries as long as the Observer it was built with is.
type Index struct {
	registry  *Registry
	sizes     [numDomains]uint64
	features  map[FeatureID]*bitset.Bitset
	instances []Instance
	relations map[RelationID]*Relation
	relOrder  []RelationID
	types     []chess.PieceType
	colors    TrackedColors

	logger   *zap.Logger
	observer Observer
}

// Size returns the number of entities in domain d.
func (idx *Index) Size(d Domain) uint64 {
	if !d.valid() {
		panic(fmt.Sprintf("index: invalid domain %d", d))
	}
	return idx.sizes[d]
}

// Instance returns the descriptor of instance id.
func (idx *Index) Instance(id uint64) Instance {
	if id >= uint64(len(idx.instances)) {
		panic(fmt.Sprintf("index: instance %d out of range [0, %d)", id, len(idx.instances)))
	}
	return idx.instances[id]
}

// InstancesOf returns the id of the first instance of position pos and the
// instances it holds, in id order.
func (idx *Index) InstancesOf(pos uint64) (first uint64, instances []Instance) {
	lo := sort.Search(len(idx.instances), func(i int) bool { return idx.instances[i].Position >= pos })
	hi := sort.Search(len(idx.instances), func(i int) bool { return idx.instances[i].Position > pos })
	return uint64(lo), idx.instances[lo:hi:hi]
}

// Registry returns the features the index was built with.
func (idx *Index) Registry() *Registry { return idx.registry }

// Feature returns the definition of feature id.
func (idx *Index) Feature(id FeatureID) FeatureDef {
	f, ok := idx.registry.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("index: unknown feature %d", id))
	}
	return f
}

// FeatureBits returns the stored bitset of feature id. The result is shared
// with the index and must not be modified.
func (idx *Index) FeatureBits(id FeatureID) *bitset.Bitset {
	b, ok := idx.features[id]
	if !ok {
		panic(fmt.Sprintf("index: unknown feature %d", id))
	}
	return b
}

// Relation returns the relation id. The result must not be modified.
func (idx *Index) Relation(id RelationID) *Relation {
	r, ok := idx.relations[id]
	if !ok {
		panic(fmt.Sprintf("index: unknown relation %d", id))
	}
	return r
}

// Relations returns the declarations of every populated relation, the
// built-in instance_in_position first.
func (idx *Index) Relations() []RelationInfo {
	out := make([]RelationInfo, 0, len(idx.relOrder))
	for _, id := range idx.relOrder {
		out = append(out, idx.relations[id].Info())
	}
	return out
}

// TrackedTypes returns the piece types indexed as instances.
func (idx *Index) TrackedTypes() []chess.PieceType { return idx.types }

// TrackedColors returns which side's pieces were indexed.
func (idx *Index) TrackedColors() TrackedColors { return idx.colors }

func (idx *Index) edgeCount() int {
	n := 0
	for _, r := range idx.relations {
		n += r.Len()
	}
	return n
}
