package index

import (
	"fmt"
	"time"

	chess "github.com/0x5844/motif"
	"github.com/0x5844/motif/bitset"
	"go.uber.org/zap"
)

type state uint8

const (
	stateIdle state = iota
	stateCounting
	stateCounted
	stateFilling
	stateBuilt
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateCounting:
		return "counting"
	case stateCounted:
		return "counted"
	case stateFilling:
		return "filling"
	case stateBuilt:
		return "built"
	}
	return "unknown"
}

// Indexer builds an Index in two passes over the same sequence of positions:
//
//	ix := index.NewIndexer()
//	ix.BeginFirstPass()
//	for _, p := range positions { ix.PushFirstPass(p) }
//	ix.EndFirstPass()
//	for _, p := range positions { ix.ProcessSecondPass(p) }
//	idx := ix.Finish()
//
// Both passes must see the same positions in the same order; Build takes
// care of that for a corpus.Source. An Indexer is single use and not safe
// for concurrent use.
type Indexer struct {
	opts  options
	state state

	counted [numDomains]uint64
	next    [numDomains]uint64

	features  []FeatureDef
	bits      []*bitset.Bitset // parallel to features
	instances []Instance
	relations []*Relation // parallel to opts.relations
	inPos     *Relation
	squares   squareTable

	passStart time.Time
}

// NewIndexer returns an idle Indexer.
func NewIndexer(opts ...Option) *Indexer {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	o.types = normalizeTypes(o.types)
	validateRelations(o.relations)
	return &Indexer{opts: o, features: o.registry.Features()}
}

func (ix *Indexer) transition(from, to state) {
	if ix.state != from {
		panic(fmt.Sprintf("index: cannot move to %s from %s (want %s)", to, ix.state, from))
	}
	ix.state = to
}

// BeginFirstPass starts the counting pass.
func (ix *Indexer) BeginFirstPass() {
	ix.transition(stateIdle, stateCounting)
	ix.passStart = time.Now()
	ix.opts.logger.Info("counting pass started",
		zap.Stringers("tracked_types", ix.opts.types),
		zap.Stringer("tracked_colors", ix.opts.colors),
		zap.Int("features", len(ix.features)),
		zap.Int("relations", len(ix.opts.relations)))
}

// PushFirstPass counts the entities of pos.
func (ix *Indexer) PushFirstPass(pos *chess.Position) {
	if ix.state != stateCounting {
		panic(fmt.Sprintf("index: PushFirstPass in state %s", ix.state))
	}
	ix.counted[DomainPosition]++
	ix.counted[DomainInstance] += countInstances(pos, ix.opts.types, ix.opts.colors)
}

// EndFirstPass allocates every structure at its final size.
func (ix *Indexer) EndFirstPass() {
	ix.transition(stateCounting, stateCounted)

	ix.bits = make([]*bitset.Bitset, len(ix.features))
	for i, f := range ix.features {
		ix.bits[i] = bitset.New(ix.counted[f.Domain])
	}
	ix.instances = make([]Instance, 0, ix.counted[DomainInstance])
	ix.inPos = NewRelation(instanceInPosition, int(ix.counted[DomainInstance]))
	ix.relations = make([]*Relation, len(ix.opts.relations))
	for i, def := range ix.opts.relations {
		ix.relations[i] = NewRelation(def.Info, 0)
	}

	elapsed := time.Since(ix.passStart)
	ix.opts.observer.PassCompleted(1, elapsed)
	ix.opts.logger.Info("counting pass finished",
		zap.Uint64("positions", ix.counted[DomainPosition]),
		zap.Uint64("instances", ix.counted[DomainInstance]),
		zap.Duration("elapsed", elapsed))
	ix.passStart = time.Now()
}

// ProcessSecondPass assigns ids to pos and its instances, evaluates every
// feature and populates relations. Positions must arrive in the order they
// were counted.
func (ix *Indexer) ProcessSecondPass(pos *chess.Position) {
	switch ix.state {
	case stateCounted:
		ix.state = stateFilling
	case stateFilling:
	default:
		panic(fmt.Sprintf("index: ProcessSecondPass in state %s", ix.state))
	}

	pid := ix.assign(DomainPosition, 1)
	for i, f := range ix.features {
		if f.Domain == DomainPosition && f.position.EvalPosition(pos) {
			ix.bits[i].Set(pid)
		}
	}

	first := uint64(len(ix.instances))
	ix.squares.reset()
	forEachInstance(pos, ix.opts.types, ix.opts.colors, func(sq chess.Square, c chess.Color, pt chess.PieceType) {
		id := ix.assign(DomainInstance, 1)
		in := Instance{Position: pid, Square: sq, Color: c, Type: pt}
		ix.instances = append(ix.instances, in)
		ix.squares[sq] = id
		ix.inPos.Add(id, pid)
		for i, f := range ix.features {
			if f.AppliesTo(pt) && f.instance.EvalInstance(pos, in) {
				ix.bits[i].Set(id)
			}
		}
	})

	for ri, def := range ix.opts.relations {
		for rid := first; rid < uint64(len(ix.instances)); rid++ {
			right := ix.instances[rid]
			if right.Type != def.RightType {
				continue
			}
			for src := def.Sources(pos, right); src != chess.EmptyBB; {
				sq, next, _ := src.PopLSB()
				src = next
				lid := ix.squares[sq]
				if lid == noID || ix.instances[lid].Type != def.LeftType {
					continue
				}
				ix.relations[ri].Add(lid, rid)
			}
		}
	}
}

// assign hands out the next id of domain d.
func (ix *Indexer) assign(d Domain, n uint64) uint64 {
	id := ix.next[d]
	if id+n > ix.counted[d] {
		panic(fmt.Sprintf("index: fill pass found more %s entities than the %d counted", d, ix.counted[d]))
	}
	ix.next[d] += n
	return id
}

// Finish verifies that the fill pass saw exactly the counted entities and
// returns the immutable index. The Indexer must not be used afterwards.
func (ix *Indexer) Finish() *Index {
	switch ix.state {
	case stateCounted, stateFilling:
	default:
		panic(fmt.Sprintf("index: Finish in state %s", ix.state))
	}
	for _, d := range Domains() {
		if ix.next[d] != ix.counted[d] {
			panic(fmt.Sprintf("index: %s domain counted %d entities but filled %d", d, ix.counted[d], ix.next[d]))
		}
	}
	ix.state = stateBuilt

	elapsed := time.Since(ix.passStart)
	obs := ix.opts.observer
	obs.PassCompleted(2, elapsed)

	idx := &Index{
		registry:  ix.opts.registry,
		features:  make(map[FeatureID]*bitset.Bitset, len(ix.features)),
		instances: ix.instances,
		relations: make(map[RelationID]*Relation, len(ix.relations)+1),
		types:     ix.opts.types,
		colors:    ix.opts.colors,
		logger:    ix.opts.logger,
		observer:  obs,
	}
	idx.sizes = ix.counted
	for i, f := range ix.features {
		idx.features[f.ID] = ix.bits[i]
		obs.FeatureBuilt(f, ix.bits[i].Count())
	}
	idx.relations[InstanceInPosition] = ix.inPos
	idx.relOrder = append(idx.relOrder, InstanceInPosition)
	for _, r := range ix.relations {
		idx.relations[r.Info().ID] = r
		idx.relOrder = append(idx.relOrder, r.Info().ID)
	}
	for _, d := range Domains() {
		obs.DomainSized(d, idx.sizes[d])
	}

	ix.opts.logger.Info("fill pass finished",
		zap.Uint64("positions", idx.sizes[DomainPosition]),
		zap.Uint64("instances", idx.sizes[DomainInstance]),
		zap.Int("edges", idx.edgeCount()),
		zap.Duration("elapsed", elapsed))

	ix.bits, ix.instances, ix.relations, ix.inPos = nil, nil, nil, nil
	return idx
}
