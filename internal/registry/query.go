package registry

import (
	"hash/fnv"
	"slices"
)

// Registry is the read-only movement catalog. Safe for concurrent use; no
// method mutates state after New.
type Registry struct {
	movements []Movement
	byID      map[string]Movement
}

// New loads the built-in catalog.
func New() *Registry {
	return NewWithMovements(defaultCatalog)
}

// NewWithMovements builds a registry from an explicit movement list. Used by
// tests that need a small controlled pool.
func NewWithMovements(movements []Movement) *Registry {
	byID := make(map[string]Movement, len(movements))
	for _, m := range movements {
		byID[m.ID] = m
	}
	return &Registry{
		movements: slices.Clone(movements),
		byID:      byID,
	}
}

// Get looks up a movement by ID.
func (r *Registry) Get(id string) (Movement, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// Len returns the catalog size.
func (r *Registry) Len() int {
	return len(r.movements)
}

// Criteria filters and orders a catalog query.
type Criteria struct {
	// Categories restricts results to these categories. Empty means any.
	Categories []Category
	// Patterns requires at least one matching pattern tag. Empty means any.
	Patterns []string
	// ExcludePatterns drops movements carrying any of these tags. Used for
	// injury constraints.
	ExcludePatterns []string
	// Equipment is the available equipment; movements needing anything else
	// are filtered out. Nil means unconstrained.
	Equipment []string
	// ExcludeBannedMains drops movements flagged as banned main-block filler.
	ExcludeBannedMains bool
	// Limit caps the result size. Zero means no cap.
	Limit int
	// Seed drives the deterministic shuffle. The same seed always produces
	// the same ordering.
	Seed string
}

// Query returns the movements matching the criteria in a deterministic
// seeded order. An empty result means no movement matched; callers must treat
// that as a failure rather than silently composing an empty block.
func (r *Registry) Query(c Criteria) []Movement {
	var matched []Movement
	for _, m := range r.movements {
		if len(c.Categories) > 0 && !slices.Contains(c.Categories, m.Category) {
			continue
		}
		if len(c.Patterns) > 0 && !m.HasAnyPattern(c.Patterns) {
			continue
		}
		if len(c.ExcludePatterns) > 0 && m.HasAnyPattern(c.ExcludePatterns) {
			continue
		}
		if c.Equipment != nil && !m.PerformableWith(c.Equipment) {
			continue
		}
		if c.ExcludeBannedMains && m.BannedInMainWhenLoaded {
			continue
		}
		matched = append(matched, m)
	}

	shuffleDeterministic(matched, c.Seed)

	if c.Limit > 0 && len(matched) > c.Limit {
		matched = matched[:c.Limit]
	}
	return matched
}

// shuffleDeterministic permutes movements with a linear congruential
// generator seeded from the FNV-1a hash of the seed string. Identical seeds
// always yield identical permutations, which is the backbone of the
// regenerate guarantee.
func shuffleDeterministic(movements []Movement, seed string) {
	state := hashSeed(seed)
	for i := len(movements) - 1; i > 0; i-- {
		state = lcgNext(state)
		j := int(state % uint32(i+1)) //nolint:gosec // bounded by i+1.
		movements[i], movements[j] = movements[j], movements[i]
	}
}

// hashSeed folds a seed string into a 32-bit LCG state.
func hashSeed(seed string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	return h.Sum32()
}

// lcgNext advances a Numerical-Recipes-flavoured linear congruential
// generator.
func lcgNext(state uint32) uint32 {
	const (
		multiplier = 1664525
		increment  = 1013904223
	)
	return state*multiplier + increment
}
