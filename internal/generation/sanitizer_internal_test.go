package generation

import (
	"testing"

	"github.com/noble-hunt/AXLE-sub000/internal/registry"
)

func loadedGym() []string {
	return []string{
		registry.EquipmentBarbell, registry.EquipmentDumbbell,
		registry.EquipmentKettlebell, registry.EquipmentMedicineBall,
		registry.EquipmentBox,
	}
}

func workoutWithItems(kind BlockKind, items ...Item) Workout {
	return Workout{
		Title:           "Test Session",
		Style:           StyleCrossFit,
		DurationMinutes: 40,
		Intensity:       5,
		Blocks: []Block{
			{Kind: BlockWarmup, Structure: Structure{Kind: StructureSteady}, TimeMinutes: 6,
				Items: []Item{{ExerciseName: "Run", RegistryID: "run", DurationSeconds: 360}}},
			{Kind: kind, Structure: Structure{Kind: StructureAMRAP}, TimeMinutes: 28, Items: items},
			{Kind: BlockCooldown, Structure: Structure{Kind: StructureSteady}, TimeMinutes: 6,
				Items: []Item{{ExerciseName: "Couch Stretch", RegistryID: "couch_stretch", DurationSeconds: 120}}},
		},
	}
}

func TestSanitize_rotatesBannedFiller(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	w := workoutWithItems(BlockConditioning,
		Item{ExerciseName: "Air Squat", RegistryID: "air_squat", Reps: 15},
		Item{ExerciseName: "Jumping Jack", RegistryID: "jumping_jack", Reps: 20},
		Item{ExerciseName: "Mountain Climber", RegistryID: "mountain_climber", Reps: 20},
	)
	pack := Pack{HardnessFloor: 0.1}
	req := Request{Style: StyleCrossFit, Equipment: loadedGym()}

	got := sanitize(w, pack, req, reg)

	var replaced []string
	for _, item := range got.Blocks[1].Items {
		mv, ok := reg.Get(item.RegistryID)
		if !ok {
			t.Fatalf("unknown movement %q after sanitize", item.RegistryID)
		}
		if mv.BannedInMainWhenLoaded {
			t.Errorf("banned filler %q survived sanitisation", mv.ID)
		}
		replaced = append(replaced, item.RegistryID)
	}

	// Consecutive substitutions walk the ladder, so neighbours never match.
	for i := 1; i < len(replaced); i++ {
		if replaced[i] == replaced[i-1] {
			t.Errorf("consecutive substitutes identical: %q at positions %d and %d", replaced[i], i-1, i)
		}
	}
	if !got.Flags.NoBannedInMains {
		t.Error("no_banned_in_mains flag is false after substitution")
	}
	if len(got.Meta.PolicyRepairs) != 3 {
		t.Errorf("want 3 repair notes, got %d: %v", len(got.Meta.PolicyRepairs), got.Meta.PolicyRepairs)
	}
}

func TestSanitize_keepsFillerWithoutLoad(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	w := workoutWithItems(BlockConditioning,
		Item{ExerciseName: "Air Squat", RegistryID: "air_squat", Reps: 15},
	)
	pack := Pack{HardnessFloor: 0.1}
	req := Request{Style: StyleHIIT, Equipment: []string{}}

	got := sanitize(w, pack, req, reg)

	if got.Blocks[1].Items[0].RegistryID != "air_squat" {
		t.Errorf("bodyweight session rewrote filler to %q", got.Blocks[1].Items[0].RegistryID)
	}
	if !got.Flags.NoBannedInMains {
		t.Error("filler without available load should not trip the flag")
	}
}

func TestSanitize_relaxesFloorOnLowReadiness(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	// A deliberately soft session: one unloaded movement.
	w := workoutWithItems(BlockConditioning,
		Item{ExerciseName: "Sit-Up", RegistryID: "sit_up", Reps: 20},
	)
	pack := Pack{HardnessFloor: 0.6, Cardio: true}
	req := Request{
		Style:     StyleEndurance,
		Equipment: []string{},
		Health:    &HealthSnapshot{SleepScore: 45},
	}

	got := sanitize(w, pack, req, reg)

	if !got.Flags.ReadinessModApplied {
		t.Error("readiness flag not set for low sleep score")
	}
	// 28 cardio minutes score 0.7, which clears the relaxed floor but not
	// necessarily the original one; the flag must reflect the relaxed check.
	if !got.Flags.HardnessOk {
		t.Errorf("hardness %.2f should clear the relaxed floor %.2f", got.HardnessScore, relaxedFloor)
	}
}

func TestSanitize_injectsFinisherForSoftLoadedSession(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	w := workoutWithItems(BlockConditioning,
		Item{ExerciseName: "Push-Up", RegistryID: "push_up", Reps: 15},
		Item{ExerciseName: "Sit-Up", RegistryID: "sit_up", Reps: 20},
	)
	w.Blocks[1].TimeMinutes = 28
	pack := Pack{HardnessFloor: 0.5}
	req := Request{Style: StyleCrossFit, Equipment: loadedGym()}

	got := sanitize(w, pack, req, reg)

	finisher := -1
	for i, b := range got.Blocks {
		if b.Notes == "finisher" {
			finisher = i
		}
	}
	if finisher == -1 {
		t.Fatal("no finisher injected into a soft loaded session")
	}
	if got.Blocks[finisher+1].Kind != BlockCooldown {
		t.Error("finisher not placed directly before the cooldown")
	}
	for _, item := range got.Blocks[finisher].Items {
		mv, ok := reg.Get(item.RegistryID)
		if !ok || !mv.Loaded() {
			t.Errorf("finisher item %q is not a loaded movement", item.RegistryID)
		}
	}
	if got.TotalMinutes() != w.TotalMinutes() {
		t.Errorf("finisher changed the total duration: %d -> %d", w.TotalMinutes(), got.TotalMinutes())
	}
}

func TestCardioHardness(t *testing.T) {
	t.Parallel()

	steady := workoutWithItems(BlockConditioning,
		Item{ExerciseName: "Row", RegistryID: "row", DurationSeconds: 1680},
	)
	steady.Blocks[1].Structure = Structure{Kind: StructureSteady}

	interval := workoutWithItems(BlockConditioning,
		Item{ExerciseName: "Row", RegistryID: "row"},
	)
	interval.Blocks[1].Structure = Structure{
		Kind: StructureInterval, Rounds: 10, WorkSeconds: 60, RestSeconds: 60,
	}

	if s, i := cardioHardness(steady), cardioHardness(interval); i <= s {
		t.Errorf("interval session should score above steady at equal minutes: %.2f vs %.2f", i, s)
	}
}

func TestStrengthHardness_rewardsLoadedStructuralWork(t *testing.T) {
	t.Parallel()

	reg := registry.New()

	soft := workoutWithItems(BlockConditioning,
		Item{ExerciseName: "Push-Up", RegistryID: "push_up", Reps: 15},
		Item{ExerciseName: "Sit-Up", RegistryID: "sit_up", Reps: 20},
	)
	hard := workoutWithItems(BlockStrength,
		Item{ExerciseName: "Back Squat", RegistryID: "back_squat", Reps: 5},
		Item{ExerciseName: "Deadlift", RegistryID: "deadlift", Reps: 5},
	)
	hard.Blocks[1].Structure = Structure{Kind: StructureSets, Rounds: 5}

	softScore := strengthHardness(soft, reg, loadedGym())
	hardScore := strengthHardness(hard, reg, loadedGym())

	if hardScore <= softScore {
		t.Errorf("loaded structural session scored %.2f, soft bodyweight session %.2f", hardScore, softScore)
	}
	if hardScore < 0.6 {
		t.Errorf("heavy barbell session scored only %.2f", hardScore)
	}
	if softScore > 0.2 {
		t.Errorf("bodyweight-only session with load available scored %.2f", softScore)
	}
}
