// Package registry holds the static movement catalog and its query
// semantics. The catalog is loaded once at startup and shared read-only by
// every generation request.
package registry

import "slices"

// Category classifies a movement into one of a closed set of training
// buckets. Style policies whitelist categories, so the set is deliberately
// small and stable.
type Category string

const (
	CategoryOlympic        Category = "olympic"
	CategoryPowerlifting   Category = "powerlifting"
	CategoryGymnastics     Category = "gymnastics"
	CategoryMonostructural Category = "monostructural"
	CategoryAccessory      Category = "accessory"
	CategoryCore           Category = "core"
	CategoryRecovery       Category = "recovery"
)

// Movement pattern tags used across the catalog, packs, and policies.
const (
	PatternSquat         = "squat"
	PatternHinge         = "hinge"
	PatternLunge         = "lunge"
	PatternPush          = "push"
	PatternPull          = "pull"
	PatternPressOverhead = "press_overhead"
	PatternOlympicSnatch = "olympic_snatch"
	PatternOlympicClean  = "olympic_clean"
	PatternOlympicJerk   = "olympic_jerk"
	PatternCarry         = "carry"
	PatternCore          = "core"
	PatternSwing         = "swing"
	PatternBurpee        = "burpee"
	PatternJump          = "jump"
	PatternMonoRow       = "mono_row"
	PatternMonoBike      = "mono_bike"
	PatternMonoRun       = "mono_run"
	PatternMonoSki       = "mono_ski"
	PatternMonoJumpRope  = "mono_jump_rope"
	PatternStretch       = "stretch"
)

// Equipment tags.
const (
	EquipmentBarbell      = "barbell"
	EquipmentDumbbell     = "dumbbell"
	EquipmentKettlebell   = "kettlebell"
	EquipmentMedicineBall = "medicine_ball"
	EquipmentPullUpBar    = "pull_up_bar"
	EquipmentBox          = "box"
	EquipmentRower        = "rower"
	EquipmentBike         = "bike"
	EquipmentSkiErg       = "ski_erg"
	EquipmentJumpRope     = "jump_rope"
	EquipmentBench        = "bench"
)

// loadedEquipment lists equipment tags that count as an external load for
// hardness scoring and loaded-ratio policies.
//
//nolint:gochecknoglobals // immutable lookup table.
var loadedEquipment = []string{
	EquipmentBarbell,
	EquipmentDumbbell,
	EquipmentKettlebell,
	EquipmentMedicineBall,
}

// Movement is a single catalog entry. Immutable after load.
type Movement struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	// Patterns are movement-pattern tags, e.g. "squat" or "olympic_snatch".
	Patterns []string `json:"patterns"`
	// Equipment lists everything needed to perform the movement. Empty means
	// bodyweight only.
	Equipment []string `json:"equipment"`
	// BannedInMainWhenLoaded marks low-value filler that should not occupy a
	// main training block when loaded equipment is available.
	BannedInMainWhenLoaded bool `json:"banned_in_main_when_loaded"`
}

// HasPattern reports whether the movement carries the given pattern tag.
func (m Movement) HasPattern(pattern string) bool {
	return slices.Contains(m.Patterns, pattern)
}

// HasAnyPattern reports whether the movement carries at least one of the
// given pattern tags.
func (m Movement) HasAnyPattern(patterns []string) bool {
	for _, p := range patterns {
		if m.HasPattern(p) {
			return true
		}
	}
	return false
}

// PerformableWith reports whether every equipment tag the movement needs is
// in the available list. Bodyweight movements are always performable.
func (m Movement) PerformableWith(available []string) bool {
	for _, needed := range m.Equipment {
		if !slices.Contains(available, needed) {
			return false
		}
	}
	return true
}

// Loaded reports whether the movement uses an external load.
func (m Movement) Loaded() bool {
	for _, eq := range m.Equipment {
		if slices.Contains(loadedEquipment, eq) {
			return true
		}
	}
	return false
}

// HasLoadedEquipment reports whether the available equipment list contains
// any of the core loaded implements (barbell, dumbbell, kettlebell).
func HasLoadedEquipment(available []string) bool {
	return slices.Contains(available, EquipmentBarbell) ||
		slices.Contains(available, EquipmentDumbbell) ||
		slices.Contains(available, EquipmentKettlebell)
}
