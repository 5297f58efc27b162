package generation

import (
	"log/slog"
	"slices"

	"github.com/noble-hunt/AXLE-sub000/internal/errors"
	"github.com/noble-hunt/AXLE-sub000/internal/registry"
)

// SelectionCriteria guides the composer when filling a main block.
type SelectionCriteria struct {
	Categories []registry.Category
	Patterns   []string
	// Items is how many movements to put in the block.
	Items int
	// RequiredGroups lists pattern groups that must each contribute at least
	// one of the selected movements. Selection picks a representative per
	// group before filling the remaining slots.
	RequiredGroups [][]string
	// RequireLoaded demands that at least half of the selected movements
	// carry an external load.
	RequireLoaded bool
}

// MainBlockSpec describes one main block of a pattern pack.
type MainBlockSpec struct {
	// Pattern is the block's primary movement pattern, used for trace
	// labels and finisher reuse.
	Pattern   string
	Minutes   int
	Kind      BlockKind
	Structure Structure
	Criteria  SelectionCriteria
}

// Pack is a duration/intensity-aware template for one style: how long warmup
// and cooldown run, how hard the session must be, and what the main blocks
// look like.
type Pack struct {
	Name            string
	WarmupMinutes   int
	CooldownMinutes int
	// HardnessFloor is the minimum acceptable hardness score in [0,1].
	HardnessFloor float64
	// RequiredPatternGroups lists pattern groups that each need at least one
	// matching main-block movement.
	RequiredPatternGroups [][]string
	MainBlocks            []MainBlockSpec
	// ToleranceRatio is the acceptable deviation between requested and
	// composed duration for this style.
	ToleranceRatio float64
	// Cardio switches the sanitizer to the aerobic hardness formula.
	Cardio bool
}

// toleranceMinutes converts the pack tolerance into whole minutes for a
// target duration, with a floor of one minute.
func (p Pack) toleranceMinutes(target int) int {
	return max(1, int(float64(target)*p.ToleranceRatio))
}

// ResolvePack returns the pattern pack for a style, budget-compressed and
// branched on duration, intensity, equipment, and constraints where the
// style calls for it. An unsupported style is a hard configuration error
// surfaced before any composition work starts.
func ResolvePack(style Style, durationMinutes, intensity int, equipment, constraints []string) (Pack, error) {
	var pack Pack
	switch style {
	case StyleOlympic:
		pack = olympicPack(durationMinutes)
	case StyleEndurance:
		pack = endurancePack(durationMinutes, intensity, equipment, constraints)
	case StyleCrossFit, StylePowerlifting, StyleStrength, StyleHIIT:
		static, ok := staticPacks[style]
		if !ok {
			return Pack{}, errors.Wrap(ErrUnsupportedStyle, "resolve pack",
				slog.String("style", string(style)))
		}
		pack = static
	default:
		return Pack{}, errors.Wrap(ErrUnsupportedStyle, "resolve pack",
			slog.String("style", string(style)))
	}

	return compressForBudget(pack, durationMinutes), nil
}

// compressForBudget shaves up to two minutes off warmup and cooldown when the
// total budget barely covers them.
func compressForBudget(pack Pack, durationMinutes int) Pack {
	const (
		squeeze     = 10
		maxShave    = 2
		minWarmup   = 3
		minCooldown = 2
	)
	if durationMinutes > pack.WarmupMinutes+pack.CooldownMinutes+squeeze {
		return pack
	}
	pack.WarmupMinutes = max(minWarmup, pack.WarmupMinutes-maxShave)
	pack.CooldownMinutes = max(minCooldown, pack.CooldownMinutes-maxShave)
	return pack
}

//nolint:gochecknoglobals // immutable pack table loaded once.
var staticPacks = map[Style]Pack{
	StyleCrossFit: {
		Name:            "crossfit_mixed",
		WarmupMinutes:   8,
		CooldownMinutes: 5,
		HardnessFloor:   0.55,
		ToleranceRatio:  0.08,
		MainBlocks: []MainBlockSpec{
			{
				Pattern: registry.PatternSquat,
				Minutes: 15,
				Kind:    BlockStrength,
				Structure: Structure{
					Kind:            StructureEvery,
					Rounds:          7,
					IntervalMinutes: 2,
				},
				Criteria: SelectionCriteria{
					Categories: []registry.Category{
						registry.CategoryPowerlifting, registry.CategoryOlympic,
					},
					Patterns:      []string{registry.PatternSquat, registry.PatternHinge, registry.PatternPush},
					Items:         1,
					RequireLoaded: true,
				},
			},
			{
				Pattern: registry.PatternBurpee,
				Minutes: 14,
				Kind:    BlockConditioning,
				Structure: Structure{
					Kind:   StructureAMRAP,
					Rounds: 0,
				},
				Criteria: SelectionCriteria{
					Categories: []registry.Category{
						registry.CategoryGymnastics, registry.CategoryAccessory,
						registry.CategoryMonostructural,
					},
					Items: 3,
				},
			},
		},
	},
	StylePowerlifting: {
		Name:            "powerlifting_main_accessory",
		WarmupMinutes:   7,
		CooldownMinutes: 4,
		HardnessFloor:   0.6,
		ToleranceRatio:  0.1,
		MainBlocks: []MainBlockSpec{
			{
				Pattern:   registry.PatternSquat,
				Minutes:   18,
				Kind:      BlockStrength,
				Structure: Structure{Kind: StructureSets, Rounds: 5},
				Criteria: SelectionCriteria{
					Categories:    []registry.Category{registry.CategoryPowerlifting},
					Patterns:      []string{registry.PatternSquat, registry.PatternHinge, registry.PatternPush},
					Items:         1,
					RequireLoaded: true,
				},
			},
			{
				Pattern:   registry.PatternPull,
				Minutes:   12,
				Kind:      BlockStrength,
				Structure: Structure{Kind: StructureSets, Rounds: 4},
				Criteria: SelectionCriteria{
					Categories:    []registry.Category{registry.CategoryPowerlifting},
					Items:         2,
					RequireLoaded: true,
				},
			},
		},
	},
	StyleStrength: {
		Name:            "general_strength",
		WarmupMinutes:   6,
		CooldownMinutes: 4,
		HardnessFloor:   0.55,
		ToleranceRatio:  0.1,
		MainBlocks: []MainBlockSpec{
			{
				Pattern:   registry.PatternSquat,
				Minutes:   16,
				Kind:      BlockStrength,
				Structure: Structure{Kind: StructureSets, Rounds: 4},
				Criteria: SelectionCriteria{
					Categories: []registry.Category{
						registry.CategoryPowerlifting, registry.CategoryAccessory,
					},
					Items:         2,
					RequireLoaded: true,
				},
			},
			{
				Pattern:   registry.PatternCore,
				Minutes:   10,
				Kind:      BlockCore,
				Structure: Structure{Kind: StructureEMOM, Rounds: 10},
				Criteria: SelectionCriteria{
					Categories: []registry.Category{
						registry.CategoryCore, registry.CategoryAccessory,
					},
					Items: 2,
				},
			},
		},
	},
	StyleHIIT: {
		Name:            "hiit_circuit",
		WarmupMinutes:   6,
		CooldownMinutes: 4,
		HardnessFloor:   0.5,
		ToleranceRatio:  0.08,
		MainBlocks: []MainBlockSpec{
			{
				Pattern:   registry.PatternBurpee,
				Minutes:   20,
				Kind:      BlockConditioning,
				Structure: Structure{Kind: StructureEMOM, Rounds: 20},
				Criteria: SelectionCriteria{
					Categories: []registry.Category{
						registry.CategoryGymnastics, registry.CategoryAccessory,
						registry.CategoryMonostructural, registry.CategoryCore,
					},
					Items: 4,
				},
			},
		},
	},
}

// olympicMainBudgetSplit is the minimum main-block budget that warrants two
// dedicated blocks (snatch, then clean and jerk) instead of one alternating
// block.
const olympicMainBudgetSplit = 24

// olympicPack branches on the remaining main-block budget: enough time gets a
// dedicated snatch block and a dedicated clean-and-jerk block; a short
// session gets a single alternating block whose criteria force both pattern
// groups.
func olympicPack(durationMinutes int) Pack {
	const (
		warmup   = 8
		cooldown = 6
	)
	pack := Pack{
		Name:            "olympic_split",
		WarmupMinutes:   warmup,
		CooldownMinutes: cooldown,
		HardnessFloor:   0.6,
		ToleranceRatio:  0.1,
		RequiredPatternGroups: [][]string{
			{registry.PatternOlympicSnatch},
			{registry.PatternOlympicClean, registry.PatternOlympicJerk},
		},
	}

	// Block minutes are derived from the round count so the structure and the
	// duration agree from the start.
	mainBudget := durationMinutes - warmup - cooldown
	if mainBudget >= olympicMainBudgetSplit {
		snatchRounds := mainBudget / 2 / 2
		cleanRounds := (mainBudget - mainBudget/2) / 2
		pack.MainBlocks = []MainBlockSpec{
			{
				Pattern:   registry.PatternOlympicSnatch,
				Minutes:   snatchRounds * 2,
				Kind:      BlockStrength,
				Structure: Structure{Kind: StructureEvery, Rounds: snatchRounds, IntervalMinutes: 2},
				Criteria: SelectionCriteria{
					Categories:    []registry.Category{registry.CategoryOlympic},
					Patterns:      []string{registry.PatternOlympicSnatch},
					Items:         1,
					RequireLoaded: true,
				},
			},
			{
				Pattern:   registry.PatternOlympicClean,
				Minutes:   cleanRounds * 2,
				Kind:      BlockStrength,
				Structure: Structure{Kind: StructureEvery, Rounds: cleanRounds, IntervalMinutes: 2},
				Criteria: SelectionCriteria{
					Categories:    []registry.Category{registry.CategoryOlympic},
					Patterns:      []string{registry.PatternOlympicClean, registry.PatternOlympicJerk},
					Items:         1,
					RequireLoaded: true,
				},
			},
		}
		return pack
	}

	// Short session: one alternating block whose selection must cover both
	// pattern groups, one movement each.
	pack.Name = "olympic_alternating"
	rounds := max(5, mainBudget/2)
	pack.MainBlocks = []MainBlockSpec{
		{
			Pattern:   registry.PatternOlympicSnatch,
			Minutes:   rounds * 2,
			Kind:      BlockStrength,
			Structure: Structure{Kind: StructureEvery, Rounds: rounds, IntervalMinutes: 2},
			Criteria: SelectionCriteria{
				Categories: []registry.Category{registry.CategoryOlympic},
				Patterns: []string{
					registry.PatternOlympicSnatch,
					registry.PatternOlympicClean,
					registry.PatternOlympicJerk,
				},
				Items:          2,
				RequiredGroups: pack.RequiredPatternGroups,
				RequireLoaded:  true,
			},
		},
	}
	return pack
}

// enduranceModality picks the cyclical modality from available equipment in
// preference order, falling back to jump rope.
func enduranceModality(equipment, constraints []string) (string, []string) {
	type modality struct {
		id      string
		pattern string
		needs   string
	}
	preferences := []modality{
		{id: "row", pattern: registry.PatternMonoRow, needs: registry.EquipmentRower},
		{id: "bike_erg", pattern: registry.PatternMonoBike, needs: registry.EquipmentBike},
		{id: "run", pattern: registry.PatternMonoRun, needs: ""},
		{id: "ski_erg", pattern: registry.PatternMonoSki, needs: registry.EquipmentSkiErg},
		{id: "double_under", pattern: registry.PatternMonoJumpRope, needs: registry.EquipmentJumpRope},
	}
	for _, m := range preferences {
		if m.id == "run" && slices.Contains(constraints, "no_running") {
			continue
		}
		if m.needs != "" && !slices.Contains(equipment, m.needs) {
			continue
		}
		return m.id, []string{m.pattern}
	}
	return "double_under", []string{registry.PatternMonoJumpRope}
}

// endurancePack picks a single cyclical modality and shapes the session by
// intensity: steady state up to 6, cruise intervals at 7, a fixed VO2 piece
// at 8 and above. Pure-cardio sessions use a lower hardness floor since no
// loaded movements are expected.
func endurancePack(durationMinutes, intensity int, equipment, constraints []string) Pack {
	const (
		warmup        = 6
		cooldown      = 5
		restFloorMin  = 2
		vo2Rounds     = 10
		cruiseCutover = 7
	)
	modalityID, patterns := enduranceModality(equipment, constraints)

	pack := Pack{
		Name:            "endurance_" + modalityID,
		WarmupMinutes:   warmup,
		CooldownMinutes: cooldown,
		HardnessFloor:   0.3,
		ToleranceRatio:  0.05,
		Cardio:          true,
	}

	budget := max(10, durationMinutes-warmup-cooldown)
	criteria := SelectionCriteria{
		Categories: []registry.Category{registry.CategoryMonostructural},
		Patterns:   patterns,
		Items:      1,
	}

	switch {
	case intensity < cruiseCutover:
		pack.MainBlocks = []MainBlockSpec{{
			Pattern:   patterns[0],
			Minutes:   budget,
			Kind:      BlockConditioning,
			Structure: Structure{Kind: StructureSteady},
			Criteria:  criteria,
		}}
	case intensity == cruiseCutover:
		work := max(1, budget/3)
		rest := max(restFloorMin, budget/9)
		rounds := max(2, budget/(work+rest))
		pack.MainBlocks = []MainBlockSpec{{
			Pattern: patterns[0],
			Minutes: rounds * (work + rest),
			Kind:    BlockConditioning,
			Structure: Structure{
				Kind:        StructureInterval,
				Rounds:      rounds,
				WorkSeconds: work * 60,
				RestSeconds: rest * 60,
			},
			Criteria: criteria,
		}}
	default:
		// The canonical VO2 piece is 10 x 1:00 on / 1:00 off; short budgets
		// shrink the round count so the block still fits the session.
		rounds := min(vo2Rounds, max(3, budget/2))
		pack.MainBlocks = []MainBlockSpec{{
			Pattern: patterns[0],
			Minutes: rounds * 2,
			Kind:    BlockConditioning,
			Structure: Structure{
				Kind:        StructureInterval,
				Rounds:      rounds,
				WorkSeconds: 60,
				RestSeconds: 60,
			},
			Criteria: criteria,
		}}
	}
	return pack
}
