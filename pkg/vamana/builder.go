package vamana

import (
	"github.com/arannis/vamana/internal/rng"
	"github.com/arannis/vamana/pkg/observability"
)

// Builder constructs an Index from a batch of items (C8): a seeded
// Fisher-Yates shuffle of the input followed by sequential Add calls.
//
// The teacher's Build() (pkg/diskann/build.go) has no shuffle step at all -
// it inserts buildVectors in whatever order the caller accumulated them,
// which makes the resulting graph's shape depend on insertion order in a
// way spec.md explicitly calls out as undesirable (§9: construction order
// should not bias which early nodes become over-connected hubs). The
// shuffle is this core's supplemented behavior, not a teacher inheritance.
type Builder struct {
	Config Config
	Dist   Distance
	Logger *observability.Logger
}

// NewBuilder returns a Builder with the given configuration and distance
// functor.
func NewBuilder(cfg Config, dist Distance) *Builder {
	return &Builder{Config: cfg, Dist: dist}
}

// Build constructs a new Index from items. Returns ErrEmptyInput if items is
// empty, or an error from Config.Validate/Add otherwise.
func (b *Builder) Build(items []Item) (*Index, error) {
	if len(items) == 0 {
		return nil, ErrEmptyInput
	}
	if err := b.Config.Validate(); err != nil {
		return nil, err
	}

	idx, err := NewIndex(b.Config, b.Dist)
	if err != nil {
		return nil, err
	}
	idx.SetLogger(b.Logger)

	shuffled := make([]Item, len(items))
	copy(shuffled, items)
	src := rng.New(b.Config.Seed)
	src.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if b.Logger != nil {
		b.Logger.Info("vamana: build starting", map[string]interface{}{"count": len(shuffled)})
	}

	for i, item := range shuffled {
		if err := idx.Add(item.ID, item.Vector); err != nil {
			return nil, err
		}
		if b.Logger != nil && i > 0 && i%1000 == 0 {
			b.Logger.Debug("vamana: build progress", map[string]interface{}{"inserted": i, "total": len(shuffled)})
		}
	}

	if b.Logger != nil {
		b.Logger.Info("vamana: build complete", map[string]interface{}{
			"count":          idx.Size(),
			"average_degree": idx.AverageDegree(),
		})
	}

	return idx, nil
}

// Build is a convenience wrapper that constructs a Builder with the
// dispatched-SIMD squared-L2 distance and the given config, then builds an
// Index from items. Most callers that don't need a custom Distance or
// Logger should use this directly.
func Build(items []Item, cfg Config) (*Index, error) {
	b := NewBuilder(cfg, DispatchedSquaredL2Distance)
	return b.Build(items)
}
