package generation

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/noble-hunt/AXLE-sub000/internal/errors"
	"github.com/noble-hunt/AXLE-sub000/internal/registry"
)

// constraintExclusions maps request constraint tokens to the pattern tags
// they forbid. Unknown tokens are ignored rather than rejected so that
// clients can send forward-compatible constraints.
//
//nolint:gochecknoglobals // immutable lookup table.
var constraintExclusions = map[string][]string{
	"no_running":  {registry.PatternMonoRun},
	"no_jumping":  {registry.PatternJump, registry.PatternMonoJumpRope},
	"no_overhead": {registry.PatternPressOverhead, registry.PatternOlympicSnatch, registry.PatternOlympicJerk},
	"knee_injury": {registry.PatternSquat, registry.PatternLunge, registry.PatternJump},
	"back_injury": {registry.PatternHinge, registry.PatternOlympicClean, registry.PatternOlympicSnatch},
}

// excludedPatterns flattens the request constraints into pattern exclusions.
func excludedPatterns(constraints []string) []string {
	var out []string
	for _, c := range constraints {
		out = append(out, constraintExclusions[c]...)
	}
	return out
}

// compose builds the initial workout from the resolved pack: a warmup block,
// every main block the pack specifies, and a cooldown block. All registry
// queries derive their shuffle seed from the seed token plus a stable block
// label, so the same token always selects the same movements.
//
// Composition fails with ErrSelectionInfeasible when a query comes back empty
// or a loaded quota cannot be met; it never pads a block with whatever is
// left over.
func compose(reg *registry.Registry, pack Pack, req Request, seed Seed) (Workout, error) {
	excluded := excludedPatterns(req.Constraints)
	trace := make([]string, 0, len(pack.MainBlocks)+2)

	warmup, warmupTrace, err := composeWarmup(reg, pack, req, seed.Token, excluded)
	if err != nil {
		return Workout{}, err
	}
	trace = append(trace, warmupTrace)

	blocks := []Block{warmup}
	for i, spec := range pack.MainBlocks {
		block, blockTrace, err := composeMain(reg, spec, req, seed.Token, i, excluded)
		if err != nil {
			return Workout{}, err
		}
		blocks = append(blocks, block)
		trace = append(trace, blockTrace)
	}

	cooldown, cooldownTrace, err := composeCooldown(reg, pack, req, seed.Token, excluded)
	if err != nil {
		return Workout{}, err
	}
	blocks = append(blocks, cooldown)
	trace = append(trace, cooldownTrace)

	w := Workout{
		Title:           workoutTitle(req.Style, pack),
		Description:     workoutDescription(req, pack),
		Style:           req.Style,
		DurationMinutes: req.DurationMinutes,
		Intensity:       req.Intensity,
		Blocks:          blocks,
		Meta: Meta{
			Style:          req.Style,
			SeedToken:      seed.Token,
			SelectionTrace: trace,
		},
	}
	return w, nil
}

// composeWarmup builds a general warmup: one easy cyclical piece plus two
// unloaded preparatory movements.
func composeWarmup(reg *registry.Registry, pack Pack, req Request, token string, excluded []string) (Block, string, error) {
	mono := reg.Query(registry.Criteria{
		Categories:      []registry.Category{registry.CategoryMonostructural},
		ExcludePatterns: excluded,
		Equipment:       req.Equipment,
		Limit:           1,
		Seed:            token + ":warmup:mono",
	})
	prep := reg.Query(registry.Criteria{
		Categories:      []registry.Category{registry.CategoryGymnastics, registry.CategoryCore},
		ExcludePatterns: excluded,
		Equipment:       req.Equipment,
		Limit:           2,
		Seed:            token + ":warmup:prep",
	})
	if len(mono) == 0 && len(prep) == 0 {
		return Block{}, "", errors.Wrap(ErrSelectionInfeasible, "compose warmup",
			slog.String("style", string(req.Style)))
	}

	items := make([]Item, 0, 3)
	for _, m := range mono {
		items = append(items, Item{
			ExerciseName:    m.Name,
			RegistryID:      m.ID,
			DurationSeconds: (pack.WarmupMinutes / 2) * 60,
			Notes:           "easy pace",
		})
	}
	for _, m := range prep {
		items = append(items, Item{
			ExerciseName: m.Name,
			RegistryID:   m.ID,
			Reps:         10,
		})
	}

	block := Block{
		Kind:        BlockWarmup,
		Structure:   Structure{Kind: StructureSteady},
		TimeMinutes: pack.WarmupMinutes,
		Items:       items,
	}
	return block, traceLine("warmup", items), nil
}

// composeMain fills one main block from its selection criteria. The loaded
// quota demands that at least half of the selected movements carry an
// external load.
func composeMain(reg *registry.Registry, spec MainBlockSpec, req Request, token string, index int, excluded []string) (Block, string, error) {
	label := fmt.Sprintf("main:%d:%s", index, spec.Pattern)
	candidates := reg.Query(registry.Criteria{
		Categories:         spec.Criteria.Categories,
		Patterns:           spec.Criteria.Patterns,
		ExcludePatterns:    excluded,
		Equipment:          req.Equipment,
		ExcludeBannedMains: registry.HasLoadedEquipment(req.Equipment),
		Seed:               token + ":" + label,
	})
	if len(candidates) == 0 {
		return Block{}, "", errors.Wrap(ErrSelectionInfeasible, "compose main block",
			slog.String("block", label),
			slog.String("style", string(req.Style)))
	}

	selected := selectWithLoadedQuota(candidates, spec.Criteria)
	if len(selected) < spec.Criteria.Items {
		return Block{}, "", errors.Wrap(ErrSelectionInfeasible, "compose main block",
			slog.String("block", label),
			slog.Int("wanted", spec.Criteria.Items),
			slog.Int("selected", len(selected)))
	}

	items := make([]Item, 0, len(selected))
	for _, m := range selected {
		items = append(items, prescribe(m, spec, req.Intensity))
	}

	block := Block{
		Kind:        spec.Kind,
		Structure:   spec.Structure,
		TimeMinutes: spec.Minutes,
		Items:       items,
	}
	return block, traceLine(label, items), nil
}

// selectWithLoadedQuota fills a block from the ordered candidates: one
// representative per required pattern group first, then loaded movements until
// at least half the picks carry a load when the criteria require it, then the
// remaining slots in seeded order. A nil result signals an unmet group or
// loaded quota.
func selectWithLoadedQuota(candidates []registry.Movement, criteria SelectionCriteria) []registry.Movement {
	want := criteria.Items
	if want <= 0 {
		want = 1
	}
	selected := make([]registry.Movement, 0, want)

	// Group representatives come first so every required group is covered by
	// construction, not by luck of the shuffle.
	for _, group := range criteria.RequiredGroups {
		before := len(selected)
		for _, m := range candidates {
			if !containsMovement(selected, m.ID) && m.HasAnyPattern(group) {
				selected = append(selected, m)
				break
			}
		}
		if len(selected) == before {
			// No candidate covers this group; the caller turns the shortfall
			// into ErrSelectionInfeasible.
			return nil
		}
	}

	if criteria.RequireLoaded {
		loadedQuota := (want + 1) / 2
		loaded := 0
		for _, m := range selected {
			if m.Loaded() {
				loaded++
			}
		}
		for _, m := range candidates {
			if loaded >= loadedQuota || len(selected) == want {
				break
			}
			if m.Loaded() && !containsMovement(selected, m.ID) {
				selected = append(selected, m)
				loaded++
			}
		}
		if loaded < loadedQuota {
			// Not enough loaded candidates.
			return nil
		}
	}

	for _, m := range candidates {
		if len(selected) == want {
			break
		}
		if !containsMovement(selected, m.ID) {
			selected = append(selected, m)
		}
	}
	return selected
}

func containsMovement(movements []registry.Movement, id string) bool {
	for _, m := range movements {
		if m.ID == id {
			return true
		}
	}
	return false
}

// prescribe turns a selected movement into a concrete prescription for the
// block's structure. Rep counts scale down as intensity rises for loaded
// work and up for conditioning.
func prescribe(m registry.Movement, spec MainBlockSpec, intensity int) Item {
	item := Item{
		ExerciseName: m.Name,
		RegistryID:   m.ID,
	}

	switch spec.Structure.Kind {
	case StructureSets:
		item.Reps = max(3, 8-intensity/3)
		item.PercentOneRM = setsPercent(intensity)
		item.RestSeconds = 120
	case StructureEvery, StructureEMOM:
		if m.Loaded() {
			item.Reps = max(2, 6-intensity/3)
		} else {
			item.Reps = 8 + intensity
		}
	case StructureAMRAP, StructureForTime:
		item.Reps = 10 + intensity
	case StructureInterval, StructureSteady:
		if m.Category == registry.CategoryMonostructural {
			item.Notes = paceNote(intensity)
		} else {
			item.Reps = 10 + intensity
		}
	default:
		item.Reps = 10
	}
	return item
}

// setsPercent maps intensity 1-10 onto a working percentage of 1RM.
func setsPercent(intensity int) float64 {
	const (
		base = 0.6
		step = 0.025
	)
	pct := base + float64(intensity)*step
	return min(0.9, pct)
}

func paceNote(intensity int) string {
	switch {
	case intensity <= 4:
		return "conversational pace"
	case intensity <= 6:
		return "moderate pace"
	case intensity == 7:
		return "comfortably hard"
	default:
		return "near-maximal effort"
	}
}

// composeCooldown builds the cooldown from the recovery catalog.
func composeCooldown(reg *registry.Registry, pack Pack, req Request, token string, excluded []string) (Block, string, error) {
	stretches := reg.Query(registry.Criteria{
		Categories:      []registry.Category{registry.CategoryRecovery},
		ExcludePatterns: excluded,
		Equipment:       req.Equipment,
		Limit:           3,
		Seed:            token + ":cooldown",
	})
	if len(stretches) == 0 {
		return Block{}, "", errors.Wrap(ErrSelectionInfeasible, "compose cooldown")
	}

	per := max(1, pack.CooldownMinutes/len(stretches))
	items := make([]Item, 0, len(stretches))
	for _, m := range stretches {
		items = append(items, Item{
			ExerciseName:    m.Name,
			RegistryID:      m.ID,
			DurationSeconds: per * 60,
		})
	}

	block := Block{
		Kind:        BlockCooldown,
		Structure:   Structure{Kind: StructureSteady},
		TimeMinutes: pack.CooldownMinutes,
		Items:       items,
	}
	return block, traceLine("cooldown", items), nil
}

// traceLine renders one selection-trace entry: the block label plus the
// chosen movement IDs.
func traceLine(label string, items []Item) string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.RegistryID)
	}
	return label + " -> " + strings.Join(ids, ",")
}

//nolint:gochecknoglobals // immutable display-name table.
var styleTitles = map[Style]string{
	StyleCrossFit:     "Mixed Conditioning",
	StyleOlympic:      "Olympic Lifting",
	StylePowerlifting: "Powerlifting",
	StyleStrength:     "Strength",
	StyleHIIT:         "HIIT Circuit",
	StyleEndurance:    "Endurance",
}

func workoutTitle(style Style, pack Pack) string {
	title, ok := styleTitles[style]
	if !ok {
		title = strings.Title(string(style)) //nolint:staticcheck // styles are single ASCII words.
	}
	if pack.Cardio {
		modality := strings.TrimPrefix(pack.Name, "endurance_")
		return title + " " + strings.ReplaceAll(modality, "_", " ")
	}
	return title
}

func workoutDescription(req Request, pack Pack) string {
	return fmt.Sprintf("%d-minute %s session at intensity %d with %d main block(s).",
		req.DurationMinutes, req.Style, req.Intensity, len(pack.MainBlocks))
}
