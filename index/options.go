package index

import (
	"time"

	chess "github.com/0x5844/motif"
	"go.uber.org/zap"
)

// Observer receives build and query measurements. Implementations must be
// cheap; they run inline.
type Observer interface {
	// PassCompleted is called after each build pass (1 or 2).
	PassCompleted(pass int, elapsed time.Duration)
	// DomainSized is called once per domain when the build finishes.
	DomainSized(d Domain, size uint64)
	// FeatureBuilt is called once per feature when the build finishes.
	FeatureBuilt(f FeatureDef, cardinality uint64)
	// QueryCompleted is called after every FullQuery or Collect.
	QueryCompleted(matches uint64, elapsed time.Duration)
}

// NopObserver discards every measurement.
type NopObserver struct{}

// PassCompleted implements Observer.
func (NopObserver) PassCompleted(int, time.Duration) {}

// DomainSized implements Observer.
func (NopObserver) DomainSized(Domain, uint64) {}

// FeatureBuilt implements Observer.
func (NopObserver) FeatureBuilt(FeatureDef, uint64) {}

// QueryCompleted implements Observer.
func (NopObserver) QueryCompleted(uint64, time.Duration) {}

type options struct {
	registry  *Registry
	relations []RelationDef
	types     []chess.PieceType
	colors    TrackedColors
	logger    *zap.Logger
	observer  Observer
}

func defaultOptions() options {
	return options{
		registry:  DefaultRegistry(),
		relations: DefaultRelations(),
		types:     DefaultTrackedTypes(),
		colors:    TrackEnemy,
		logger:    zap.NewNop(),
		observer:  NopObserver{},
	}
}

// Option configures an Indexer.
type Option func(*options)

// WithRegistry sets the features to build. Defaults to DefaultRegistry().
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithRelations sets the instance relations to populate. Defaults to
// DefaultRelations(). instance_in_position is always built.
func WithRelations(defs ...RelationDef) Option {
	return func(o *options) {
		o.relations = defs
	}
}

// WithTrackedTypes sets the piece types that become instances. Knight,
// Bishop, Rook and Queen are accepted. Defaults to Knight and Bishop.
func WithTrackedTypes(types ...chess.PieceType) Option {
	return func(o *options) {
		o.types = types
	}
}

// WithTrackedColors sets which side's pieces become instances.
func WithTrackedColors(tc TrackedColors) Option {
	return func(o *options) {
		o.colors = tc
	}
}

// WithLogger sets the logger. A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver sets the metrics observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}
