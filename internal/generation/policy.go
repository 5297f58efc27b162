package generation

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/noble-hunt/AXLE-sub000/internal/registry"
)

// Policy is the declarative rule set a style's main blocks must satisfy.
type Policy struct {
	AllowedCategories []registry.Category
	// RequiredAnyGroups lists pattern groups; each group needs at least one
	// matching main-block movement.
	RequiredAnyGroups [][]string
	BannedNamePatterns []*regexp.Regexp
	// RequireLoadedRatio is the minimum fraction of loaded main-block items
	// when loaded equipment is available. Zero disables the check.
	RequireLoadedRatio float64
	// RequireSingleEquipment restricts every main item to movements carrying
	// this equipment tag, e.g. barbell-only styles. Empty disables.
	RequireSingleEquipment string
}

//nolint:gochecknoglobals // immutable policy table loaded once.
var stylePolicies = map[Style]Policy{
	StyleCrossFit: {
		AllowedCategories: []registry.Category{
			registry.CategoryOlympic, registry.CategoryPowerlifting,
			registry.CategoryGymnastics, registry.CategoryMonostructural,
			registry.CategoryAccessory, registry.CategoryCore,
		},
		BannedNamePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)jumping jack`),
			regexp.MustCompile(`(?i)high knees`),
		},
		RequireLoadedRatio: 0.4,
	},
	StyleOlympic: {
		AllowedCategories: []registry.Category{
			registry.CategoryOlympic, registry.CategoryPowerlifting,
		},
		RequiredAnyGroups: [][]string{
			{registry.PatternOlympicSnatch},
			{registry.PatternOlympicClean, registry.PatternOlympicJerk},
		},
		RequireLoadedRatio:     0.9,
		RequireSingleEquipment: registry.EquipmentBarbell,
	},
	StylePowerlifting: {
		AllowedCategories: []registry.Category{
			registry.CategoryPowerlifting, registry.CategoryAccessory,
		},
		RequireLoadedRatio:     0.85,
		RequireSingleEquipment: registry.EquipmentBarbell,
	},
	StyleStrength: {
		AllowedCategories: []registry.Category{
			registry.CategoryPowerlifting, registry.CategoryAccessory,
			registry.CategoryCore,
		},
		RequireLoadedRatio: 0.7,
	},
	StyleHIIT: {
		AllowedCategories: []registry.Category{
			registry.CategoryGymnastics, registry.CategoryAccessory,
			registry.CategoryMonostructural, registry.CategoryCore,
		},
		BannedNamePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)jumping jack`),
		},
	},
	StyleEndurance: {
		AllowedCategories: []registry.Category{
			registry.CategoryMonostructural, registry.CategoryCore,
			registry.CategoryRecovery,
		},
	},
}

// PolicyFor returns the policy for a style.
func PolicyFor(style Style) (Policy, bool) {
	p, ok := stylePolicies[style]
	return p, ok
}

type violationKind string

const (
	violationCategory  violationKind = "category_not_allowed"
	violationPatterns  violationKind = "required_pattern_missing"
	violationBanned    violationKind = "banned_name"
	violationEquipment violationKind = "wrong_equipment"
	violationLoaded    violationKind = "loaded_ratio_below_threshold"
)

// Violation describes the first policy check that failed.
type Violation struct {
	Kind     violationKind
	Reason   string
	Offender string
	// Block and Item locate the offending item; -1 when the violation is
	// workout-wide (pattern groups, loaded ratio).
	Block int
	Item  int
}

// enforcePolicy checks the workout's main blocks against the policy,
// short-circuiting on the first failure. A nil result means the workout is
// compliant.
func enforcePolicy(w Workout, policy Policy, reg *registry.Registry, equipment []string) *Violation {
	for _, bi := range w.mainBlocks() {
		for ii, item := range w.Blocks[bi].Items {
			mv, ok := reg.Get(item.RegistryID)
			if !ok {
				continue
			}
			if len(policy.AllowedCategories) > 0 && !slices.Contains(policy.AllowedCategories, mv.Category) {
				return &Violation{
					Kind:     violationCategory,
					Reason:   fmt.Sprintf("category %q not allowed", mv.Category),
					Offender: item.ExerciseName,
					Block:    bi,
					Item:     ii,
				}
			}
			for _, banned := range policy.BannedNamePatterns {
				if banned.MatchString(item.ExerciseName) {
					return &Violation{
						Kind:     violationBanned,
						Reason:   fmt.Sprintf("name matches banned pattern %q", banned.String()),
						Offender: item.ExerciseName,
						Block:    bi,
						Item:     ii,
					}
				}
			}
			if policy.RequireSingleEquipment != "" &&
				!slices.Contains(mv.Equipment, policy.RequireSingleEquipment) {
				return &Violation{
					Kind:     violationEquipment,
					Reason:   fmt.Sprintf("movement does not use %s", policy.RequireSingleEquipment),
					Offender: item.ExerciseName,
					Block:    bi,
					Item:     ii,
				}
			}
		}
	}

	for _, group := range policy.RequiredAnyGroups {
		if !hasPatternHit(w, reg, group) {
			return &Violation{
				Kind:   violationPatterns,
				Reason: fmt.Sprintf("no main-block movement matches any of %v", group),
				Block:  -1,
				Item:   -1,
			}
		}
	}

	if policy.RequireLoadedRatio > 0 && registry.HasLoadedEquipment(equipment) {
		ratio := mainLoadedRatio(w, reg)
		if ratio < policy.RequireLoadedRatio {
			return &Violation{
				Kind: violationLoaded,
				Reason: fmt.Sprintf("loaded ratio %.2f below threshold %.2f",
					ratio, policy.RequireLoadedRatio),
				Block: -1,
				Item:  -1,
			}
		}
	}

	return nil
}

// hasPatternHit reports whether any main-block item matches one of the
// group's patterns.
func hasPatternHit(w Workout, reg *registry.Registry, group []string) bool {
	for _, bi := range w.mainBlocks() {
		for _, item := range w.Blocks[bi].Items {
			mv, ok := reg.Get(item.RegistryID)
			if ok && mv.HasAnyPattern(group) {
				return true
			}
		}
	}
	return false
}

// mainLoadedRatio computes the fraction of main-block items whose movement
// carries an external load.
func mainLoadedRatio(w Workout, reg *registry.Registry) float64 {
	total, loaded := 0, 0
	for _, bi := range w.mainBlocks() {
		for _, item := range w.Blocks[bi].Items {
			total++
			if mv, ok := reg.Get(item.RegistryID); ok && mv.Loaded() {
				loaded++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(loaded) / float64(total)
}

// satisfiesPolicy reports whether a single movement may appear in a main
// block under the policy.
func satisfiesPolicy(mv registry.Movement, policy Policy) bool {
	if len(policy.AllowedCategories) > 0 && !slices.Contains(policy.AllowedCategories, mv.Category) {
		return false
	}
	for _, banned := range policy.BannedNamePatterns {
		if banned.MatchString(mv.Name) {
			return false
		}
	}
	if policy.RequireSingleEquipment != "" &&
		!slices.Contains(mv.Equipment, policy.RequireSingleEquipment) {
		return false
	}
	return true
}

// autoFixPolicy attempts one repair pass for the given violation: offending
// items are substituted with a registry movement that shares at least one
// pattern tag and satisfies the policy. It returns the repaired workout, a
// human-readable repair log, and the violation left standing after
// revalidation, if any.
//
// There is exactly one fix pass; an unfixed violation afterwards is terminal
// for this stage.
func autoFixPolicy(
	w Workout,
	violation *Violation,
	policy Policy,
	reg *registry.Registry,
	equipment []string,
	seedToken string,
) (Workout, []string, *Violation) {
	out := cloneWorkout(w)
	var repairs []string

	switch violation.Kind {
	case violationCategory, violationBanned, violationEquipment:
		if fixed, note := substituteItem(&out, violation.Block, violation.Item, policy, reg, equipment, seedToken); fixed {
			repairs = append(repairs, note)
		}
	case violationLoaded:
		repairs = append(repairs, substituteUnloadedItems(&out, policy, reg, equipment, seedToken)...)
	case violationPatterns:
		// No pattern-sharing substitute can introduce a missing group; this
		// violation is structural and falls through to revalidation.
	}

	remaining := enforcePolicy(out, policy, reg, equipment)
	return out, repairs, remaining
}

// substituteItem swaps one offending item for a policy-satisfying movement
// sharing at least one of its pattern tags.
func substituteItem(
	w *Workout,
	blockIdx, itemIdx int,
	policy Policy,
	reg *registry.Registry,
	equipment []string,
	seedToken string,
) (bool, string) {
	if blockIdx < 0 || blockIdx >= len(w.Blocks) || itemIdx >= len(w.Blocks[blockIdx].Items) {
		return false, ""
	}
	item := w.Blocks[blockIdx].Items[itemIdx]
	offender, ok := reg.Get(item.RegistryID)
	if !ok {
		return false, ""
	}

	candidates := reg.Query(registry.Criteria{
		Categories:         policy.AllowedCategories,
		Patterns:           offender.Patterns,
		Equipment:          equipment,
		ExcludeBannedMains: true,
		Seed:               fmt.Sprintf("%s:policyfix:%d:%d", seedToken, blockIdx, itemIdx),
	})
	for _, candidate := range candidates {
		if candidate.ID == offender.ID || !satisfiesPolicy(candidate, policy) {
			continue
		}
		w.Blocks[blockIdx].Items[itemIdx].ExerciseName = candidate.Name
		w.Blocks[blockIdx].Items[itemIdx].RegistryID = candidate.ID
		return true, fmt.Sprintf("substituted %q for %q in block %d", candidate.Name, offender.Name, blockIdx)
	}
	return false, ""
}

// substituteUnloadedItems replaces bodyweight main-block items with loaded
// alternatives until the loaded-ratio threshold is met or candidates run out.
func substituteUnloadedItems(
	w *Workout,
	policy Policy,
	reg *registry.Registry,
	equipment []string,
	seedToken string,
) []string {
	var repairs []string
	for _, bi := range w.mainBlocks() {
		for ii, item := range w.Blocks[bi].Items {
			if mainLoadedRatio(*w, reg) >= policy.RequireLoadedRatio {
				return repairs
			}
			mv, ok := reg.Get(item.RegistryID)
			if !ok || mv.Loaded() {
				continue
			}
			candidates := reg.Query(registry.Criteria{
				Categories:         policy.AllowedCategories,
				Patterns:           mv.Patterns,
				Equipment:          equipment,
				ExcludeBannedMains: true,
				Seed:               fmt.Sprintf("%s:loadedfix:%d:%d", seedToken, bi, ii),
			})
			for _, candidate := range candidates {
				if !candidate.Loaded() || !satisfiesPolicy(candidate, policy) {
					continue
				}
				repairs = append(repairs, fmt.Sprintf(
					"substituted loaded %q for %q in block %d", candidate.Name, mv.Name, bi))
				w.Blocks[bi].Items[ii].ExerciseName = candidate.Name
				w.Blocks[bi].Items[ii].RegistryID = candidate.ID
				break
			}
		}
	}
	return repairs
}

// cloneWorkout deep-copies the blocks and meta slices so that pipeline stages
// never mutate their input.
func cloneWorkout(w Workout) Workout {
	out := w
	out.Blocks = make([]Block, len(w.Blocks))
	for i, b := range w.Blocks {
		nb := b
		nb.Items = slices.Clone(b.Items)
		out.Blocks[i] = nb
	}
	out.Meta.SelectionTrace = slices.Clone(w.Meta.SelectionTrace)
	out.Meta.PolicyRepairs = slices.Clone(w.Meta.PolicyRepairs)
	out.Meta.CriticIssues = slices.Clone(w.Meta.CriticIssues)
	return out
}
