package generation

import (
	"fmt"

	"github.com/noble-hunt/AXLE-sub000/internal/registry"
)

// fillerLadder is the substitution rotation for banned main-block filler.
// Consecutive replacements walk the ladder so two swapped items in a row
// never end up identical.
//
//nolint:gochecknoglobals // immutable rotation table.
var fillerLadder = []string{
	"loaded_step_over",
	"kettlebell_swing",
	"wall_ball",
	"burpee",
}

// relaxedFloor is the hardness floor applied instead of the pack floor when
// the readiness signal indicates poor recovery.
const relaxedFloor = 0.35

// sanitize enforces movement quality on the composed workout: banned filler
// is rotated out of main blocks when loaded equipment is available, hardness
// is scored against the pack floor, and a too-soft loaded session gets one
// finisher injected before the cooldown followed by a single rescore.
func sanitize(w Workout, pack Pack, req Request, reg *registry.Registry) Workout {
	out := cloneWorkout(w)

	loadedAvailable := registry.HasLoadedEquipment(req.Equipment)
	if loadedAvailable {
		rotateBannedFiller(&out, reg, req.Equipment)
	}
	out.Flags.NoBannedInMains = !hasBannedInMains(out, reg) || !loadedAvailable

	floor := pack.HardnessFloor
	if lowReadiness(req.Health) && floor > relaxedFloor {
		floor = relaxedFloor
		out.Flags.ReadinessModApplied = true
	}

	out.HardnessScore = scoreHardness(out, pack, reg, req.Equipment)
	if out.HardnessScore < floor && loadedAvailable && !pack.Cardio {
		if injectFinisher(&out, reg, req.Equipment) {
			out.HardnessScore = scoreHardness(out, pack, reg, req.Equipment)
		}
	}
	out.Flags.HardnessOk = out.HardnessScore >= floor

	out.Meta.MainLoadedRatio = mainLoadedRatio(out, reg)
	out.VarietyScore = varietyScore(out)
	return out
}

// lowReadiness reports whether the health snapshot warrants easing the
// session.
func lowReadiness(h *HealthSnapshot) bool {
	if h == nil {
		return false
	}
	const sleepThreshold = 60
	return h.StressFlag || (h.SleepScore > 0 && h.SleepScore < sleepThreshold)
}

// rotateBannedFiller replaces banned filler in main blocks with ladder
// substitutes, advancing the ladder on every swap.
func rotateBannedFiller(w *Workout, reg *registry.Registry, equipment []string) {
	rung := 0
	for _, bi := range w.mainBlocks() {
		for ii, item := range w.Blocks[bi].Items {
			mv, ok := reg.Get(item.RegistryID)
			if !ok || !mv.BannedInMainWhenLoaded {
				continue
			}
			sub, next := ladderSubstitute(reg, equipment, rung)
			if sub == nil {
				continue
			}
			rung = next
			w.Blocks[bi].Items[ii].ExerciseName = sub.Name
			w.Blocks[bi].Items[ii].RegistryID = sub.ID
			w.Meta.PolicyRepairs = append(w.Meta.PolicyRepairs, fmt.Sprintf(
				"replaced filler %q with %q in block %d", mv.Name, sub.Name, bi))
		}
	}
}

// ladderSubstitute returns the first performable ladder movement at or after
// the given rung, plus the rung to start from next time.
func ladderSubstitute(reg *registry.Registry, equipment []string, rung int) (*registry.Movement, int) {
	for offset := range fillerLadder {
		idx := (rung + offset) % len(fillerLadder)
		mv, ok := reg.Get(fillerLadder[idx])
		if ok && mv.PerformableWith(equipment) {
			return &mv, idx + 1
		}
	}
	return nil, rung
}

func hasBannedInMains(w Workout, reg *registry.Registry) bool {
	for _, bi := range w.mainBlocks() {
		for _, item := range w.Blocks[bi].Items {
			if mv, ok := reg.Get(item.RegistryID); ok && mv.BannedInMainWhenLoaded {
				return true
			}
		}
	}
	return false
}

// scoreHardness computes the hardness score in [0,1]. Strength-flavoured
// sessions score on loading and structural lifts; cardio sessions score on
// sustained work.
func scoreHardness(w Workout, pack Pack, reg *registry.Registry, equipment []string) float64 {
	if pack.Cardio {
		return cardioHardness(w)
	}
	return strengthHardness(w, reg, equipment)
}

// strengthHardness scores loaded sessions. Loaded ratio carries the most
// weight; structural compounds, olympic lifts, and heavy set work each add a
// fixed bonus, while main blocks padded with bodyweight movements despite
// available load are penalised.
func strengthHardness(w Workout, reg *registry.Registry, equipment []string) float64 {
	const (
		loadedWeight     = 0.4
		structuralBonus  = 0.15
		olympicBonus     = 0.15
		heavySetsBonus   = 0.15
		softBlockPenalty = 0.1
	)

	score := mainLoadedRatio(w, reg) * loadedWeight

	structural, olympic, heavySets := false, false, false
	for _, bi := range w.mainBlocks() {
		block := w.Blocks[bi]
		if block.Structure.Kind == StructureSets {
			heavySets = true
		}
		bodyweight := 0
		for _, item := range block.Items {
			mv, ok := reg.Get(item.RegistryID)
			if !ok {
				continue
			}
			if mv.Loaded() && mv.HasAnyPattern([]string{registry.PatternSquat, registry.PatternHinge}) {
				structural = true
			}
			if mv.Category == registry.CategoryOlympic {
				olympic = true
			}
			if !mv.Loaded() {
				bodyweight++
			}
		}
		if bodyweight >= 2 && registry.HasLoadedEquipment(equipment) {
			score -= softBlockPenalty
		}
	}

	if structural {
		score += structuralBonus
	}
	if olympic {
		score += olympicBonus
	}
	if heavySets {
		score += heavySetsBonus
	}
	return clamp01(score)
}

// cardioHardness scores aerobic sessions on sustained main-block minutes,
// with a bonus for interval structures.
func cardioHardness(w Workout) float64 {
	const (
		fullCreditMinutes = 40.0
		intervalBonus     = 0.2
	)
	minutes := 0
	interval := false
	for _, bi := range w.mainBlocks() {
		minutes += w.Blocks[bi].TimeMinutes
		if w.Blocks[bi].Structure.Kind == StructureInterval {
			interval = true
		}
	}
	score := float64(minutes) / fullCreditMinutes
	if interval {
		score += intervalBonus
	}
	return clamp01(score)
}

// finisherPreference orders the implements a finisher should reach for.
//
//nolint:gochecknoglobals // immutable preference order.
var finisherPreference = []string{
	registry.EquipmentBarbell,
	registry.EquipmentDumbbell,
	registry.EquipmentKettlebell,
}

// injectFinisher appends a short loaded AMRAP before the cooldown, reusing
// the first two loaded main movements where possible and otherwise pulling a
// loaded accessory movement with the preferred implement.
func injectFinisher(w *Workout, reg *registry.Registry, equipment []string) bool {
	items := reuseLoadedMains(w, reg, 2)
	if len(items) == 0 {
		mv := preferredLoadedMovement(reg, equipment, w.Meta.SeedToken)
		if mv == nil {
			return false
		}
		items = []Item{{ExerciseName: mv.Name, RegistryID: mv.ID, Reps: 10}}
	}

	const finisherMinutes = 5
	finisher := Block{
		Kind:        BlockConditioning,
		Structure:   Structure{Kind: StructureAMRAP},
		TimeMinutes: finisherMinutes,
		Items:       items,
		Notes:       "finisher",
	}

	// Borrow the finisher's minutes from the longest main block so the total
	// duration stays on budget.
	mains := w.mainBlocks()
	donor := largestMain(w.Blocks, mains)
	if donor < 0 || w.Blocks[donor].TimeMinutes-finisherMinutes < minMainMinutes {
		return false
	}
	w.Blocks[donor] = w.Blocks[donor].Retime(w.Blocks[donor].TimeMinutes - finisherMinutes)

	// Insert before the trailing cooldown block.
	insertAt := len(w.Blocks)
	if insertAt > 0 && w.Blocks[insertAt-1].Kind == BlockCooldown {
		insertAt--
	}
	w.Blocks = append(w.Blocks[:insertAt], append([]Block{finisher}, w.Blocks[insertAt:]...)...)
	w.Meta.PolicyRepairs = append(w.Meta.PolicyRepairs, "injected loaded finisher")
	return true
}

// reuseLoadedMains copies up to n loaded prescriptions from the main blocks.
func reuseLoadedMains(w *Workout, reg *registry.Registry, n int) []Item {
	var items []Item
	for _, bi := range w.mainBlocks() {
		for _, item := range w.Blocks[bi].Items {
			if len(items) == n {
				return items
			}
			mv, ok := reg.Get(item.RegistryID)
			if !ok || !mv.Loaded() || containsItem(items, item.RegistryID) {
				continue
			}
			items = append(items, Item{
				ExerciseName: item.ExerciseName,
				RegistryID:   item.RegistryID,
				Reps:         max(6, item.Reps),
			})
		}
	}
	return items
}

func containsItem(items []Item, registryID string) bool {
	for _, it := range items {
		if it.RegistryID == registryID {
			return true
		}
	}
	return false
}

// preferredLoadedMovement finds a loaded accessory or powerlifting movement
// using the highest-preference implement that is actually available.
func preferredLoadedMovement(reg *registry.Registry, equipment []string, seedToken string) *registry.Movement {
	for _, implement := range finisherPreference {
		candidates := reg.Query(registry.Criteria{
			Categories: []registry.Category{
				registry.CategoryAccessory, registry.CategoryPowerlifting,
			},
			Equipment:          equipment,
			ExcludeBannedMains: true,
			Seed:               seedToken + ":finisher:" + implement,
		})
		for _, mv := range candidates {
			if mv.Loaded() && containsEquipment(mv, implement) {
				return &mv
			}
		}
	}
	return nil
}

func containsEquipment(mv registry.Movement, implement string) bool {
	for _, eq := range mv.Equipment {
		if eq == implement {
			return true
		}
	}
	return false
}

// varietyScore measures how many distinct movements appear relative to total
// prescriptions.
func varietyScore(w Workout) float64 {
	seen := map[string]struct{}{}
	total := 0
	for _, b := range w.Blocks {
		for _, item := range b.Items {
			total++
			seen[item.RegistryID] = struct{}{}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(len(seen)) / float64(total)
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}
