package index

import (
	"fmt"
	"slices"

	chess "github.com/0x5844/motif"
)

// FeatureID identifies a feature.
type FeatureID uint16

// PositionPredicate decides a position-level feature.
type PositionPredicate interface {
	EvalPosition(pos *chess.Position) bool
}

// InstancePredicate decides an instance-level feature. Implementations must
// not modify pos.
type InstancePredicate interface {
	EvalInstance(pos *chess.Position, in Instance) bool
}

// PositionFunc adapts a function to PositionPredicate.
type PositionFunc func(pos *chess.Position) bool

// EvalPosition implements PositionPredicate.
func (f PositionFunc) EvalPosition(pos *chess.Position) bool { return f(pos) }

// InstanceFunc adapts a function to InstancePredicate.
type InstanceFunc func(pos *chess.Position, in Instance) bool

// EvalInstance implements InstancePredicate.
func (f InstanceFunc) EvalInstance(pos *chess.Position, in Instance) bool { return f(pos, in) }

// FeatureDef is a registered feature: a predicate tagged with the domain it
// applies to. Exactly one of the two predicates is set, matching Domain.
type FeatureDef struct {
	ID     FeatureID
	Name   string
	Domain Domain
	// Types restricts an instance feature to instances of these piece
	// types. Empty means every tracked type.
	Types []chess.PieceType

	position PositionPredicate
	instance InstancePredicate
}

// PositionFeature declares a feature over DomainPosition.
func PositionFeature(id FeatureID, name string, p PositionPredicate) FeatureDef {
	return FeatureDef{ID: id, Name: name, Domain: DomainPosition, position: p}
}

// InstanceFeature declares a feature over DomainInstance.
func InstanceFeature(id FeatureID, name string, p InstancePredicate, types ...chess.PieceType) FeatureDef {
	return FeatureDef{ID: id, Name: name, Domain: DomainInstance, Types: types, instance: p}
}

// AppliesTo reports whether the feature is evaluated for instances of type pt.
func (f FeatureDef) AppliesTo(pt chess.PieceType) bool {
	return f.Domain == DomainInstance && (len(f.Types) == 0 || slices.Contains(f.Types, pt))
}

func (f FeatureDef) String() string {
	return f.Name
}

// Registry holds feature definitions in registration order.
type Registry struct {
	features []FeatureDef
	byID     map[FeatureID]int
	byName   map[string]int
}

// NewRegistry creates a registry holding fs.
func NewRegistry(fs ...FeatureDef) *Registry {
	r := &Registry{byID: map[FeatureID]int{}, byName: map[string]int{}}
	for _, f := range fs {
		r.Register(f)
	}
	return r
}

// Register adds f. It panics on a duplicate id or name, or when f's
// predicate does not match its domain.
func (r *Registry) Register(f FeatureDef) {
	if _, ok := r.byID[f.ID]; ok {
		panic(fmt.Sprintf("index: duplicate feature id %d", f.ID))
	}
	if _, ok := r.byName[f.Name]; ok {
		panic(fmt.Sprintf("index: duplicate feature name %q", f.Name))
	}
	switch f.Domain {
	case DomainPosition:
		if f.position == nil || f.instance != nil {
			panic(fmt.Sprintf("index: feature %s: position domain needs a position predicate", f.Name))
		}
	case DomainInstance:
		if f.instance == nil || f.position != nil {
			panic(fmt.Sprintf("index: feature %s: instance domain needs an instance predicate", f.Name))
		}
	default:
		panic(fmt.Sprintf("index: feature %s: invalid domain %s", f.Name, f.Domain))
	}
	r.byID[f.ID] = len(r.features)
	r.byName[f.Name] = len(r.features)
	r.features = append(r.features, f)
}

// Lookup returns the feature registered under id.
func (r *Registry) Lookup(id FeatureID) (FeatureDef, bool) {
	i, ok := r.byID[id]
	if !ok {
		return FeatureDef{}, false
	}
	return r.features[i], true
}

// ByName returns the feature registered under name.
func (r *Registry) ByName(name string) (FeatureDef, bool) {
	i, ok := r.byName[name]
	if !ok {
		return FeatureDef{}, false
	}
	return r.features[i], true
}

// Features returns the definitions in registration order.
func (r *Registry) Features() []FeatureDef { return slices.Clone(r.features) }

// Len returns the number of registered features.
func (r *Registry) Len() int { return len(r.features) }
