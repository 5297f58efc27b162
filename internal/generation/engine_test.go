package generation_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/noble-hunt/AXLE-sub000/internal/generation"
	"github.com/noble-hunt/AXLE-sub000/internal/registry"
	"github.com/noble-hunt/AXLE-sub000/internal/testhelpers"
)

func fullGym() []string {
	return []string{
		registry.EquipmentBarbell, registry.EquipmentDumbbell,
		registry.EquipmentKettlebell, registry.EquipmentMedicineBall,
		registry.EquipmentPullUpBar, registry.EquipmentBox,
		registry.EquipmentRower, registry.EquipmentBike,
		registry.EquipmentSkiErg, registry.EquipmentJumpRope,
		registry.EquipmentBench,
	}
}

func newEngine(t *testing.T) *generation.Engine {
	t.Helper()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	return generation.NewEngine(registry.New(), nil, logger)
}

func allStyles() []generation.Style {
	return []generation.Style{
		generation.StyleCrossFit,
		generation.StyleOlympic,
		generation.StylePowerlifting,
		generation.StyleStrength,
		generation.StyleHIIT,
		generation.StyleEndurance,
	}
}

func TestEngine_PreviewDeterminism(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	ctx := context.Background()

	for _, style := range allStyles() {
		t.Run(string(style), func(t *testing.T) {
			req := generation.Request{
				Style:           style,
				DurationMinutes: 60,
				Intensity:       5,
				Equipment:       fullGym(),
			}

			first, err := engine.Preview(ctx, req, "fixed-token")
			if err != nil {
				t.Fatalf("first preview: %v", err)
			}
			second, err := engine.Preview(ctx, req, "fixed-token")
			if err != nil {
				t.Fatalf("second preview: %v", err)
			}

			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("same token produced different workouts (-first +second):\n%s", diff)
			}
		})
	}
}

func TestEngine_GenerateRegenerateRoundTrip(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	ctx := context.Background()

	req := generation.Request{
		Style:           generation.StyleCrossFit,
		DurationMinutes: 45,
		Intensity:       6,
		Equipment:       fullGym(),
	}

	original, seed, err := engine.Generate(ctx, req, generation.SeedContext{UserID: "u1"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if seed.Token == "" {
		t.Fatal("seed token is empty")
	}
	if seed.GeneratorVersion != generation.GeneratorVersion {
		t.Errorf("seed version = %q, want %q", seed.GeneratorVersion, generation.GeneratorVersion)
	}

	replayed, err := engine.Regenerate(ctx, seed)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}

	if diff := cmp.Diff(original, replayed); diff != "" {
		t.Errorf("regeneration diverged from original (-original +replayed):\n%s", diff)
	}
}

func TestEngine_GenerateStructure(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	ctx := context.Background()

	for _, style := range allStyles() {
		for _, duration := range []int{30, 45, 60} {
			t.Run(fmt.Sprintf("%s/%d", style, duration), func(t *testing.T) {
				req := generation.Request{
					Style:           style,
					DurationMinutes: duration,
					Intensity:       5,
					Equipment:       fullGym(),
				}

				w, _, err := engine.Generate(ctx, req, generation.SeedContext{})
				if err != nil {
					t.Fatalf("generate: %v", err)
				}

				if !w.Flags.HasWarmup {
					t.Error("workout has no warmup")
				}
				if !w.Flags.HasCooldown {
					t.Error("workout has no cooldown")
				}
				if !w.Flags.TimeFit {
					t.Errorf("workout missed the time budget: total %d for requested %d",
						w.TotalMinutes(), req.DurationMinutes)
				}
				if !w.Flags.EquipmentOk {
					t.Error("workout prescribes unavailable equipment")
				}
				if !w.Flags.NoBannedInMains {
					t.Error("banned filler survived in a main block with a full gym available")
				}
				if got := abs(w.TotalMinutes() - req.DurationMinutes); got > 6 {
					t.Errorf("total duration %d too far from requested %d", w.TotalMinutes(), req.DurationMinutes)
				}
				if w.Title == "" {
					t.Error("workout title is empty")
				}
				for i, b := range w.Blocks {
					if b.Title() == "" {
						t.Errorf("block %d has empty title", i)
					}
				}
				assertStructureDurations(t, w)
			})
		}
	}
}

// assertStructureDurations checks that every round-encoded block title agrees
// with the block duration: rounds times the per-round length must equal
// TimeMinutes exactly.
func assertStructureDurations(t *testing.T, w generation.Workout) {
	t.Helper()
	for i, b := range w.Blocks {
		var want int
		switch b.Structure.Kind {
		case generation.StructureEMOM:
			want = b.Structure.Rounds
		case generation.StructureEvery:
			want = b.Structure.Rounds * b.Structure.IntervalMinutes
		case generation.StructureInterval:
			want = b.Structure.Rounds * (b.Structure.WorkSeconds + b.Structure.RestSeconds) / 60
		default:
			continue
		}
		if b.TimeMinutes != want {
			t.Errorf("block %d %q: structure implies %d minutes, block says %d",
				i, b.Title(), want, b.TimeMinutes)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestEngine_OlympicSplit(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	ctx := context.Background()

	req := generation.Request{
		Style:           generation.StyleOlympic,
		DurationMinutes: 60,
		Intensity:       6,
		Equipment:       []string{registry.EquipmentBarbell},
	}

	w, _, err := engine.Generate(ctx, req, generation.SeedContext{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var mains []generation.Block
	for _, b := range w.Blocks {
		if b.Kind == generation.BlockStrength {
			mains = append(mains, b)
		}
	}
	if len(mains) != 2 {
		t.Fatalf("want 2 dedicated strength blocks for a 60-minute session, got %d", len(mains))
	}

	reg := registry.New()
	snatch, cleanOrJerk := false, false
	for _, b := range mains {
		for _, item := range b.Items {
			mv, ok := reg.Get(item.RegistryID)
			if !ok {
				t.Fatalf("unknown movement %q in workout", item.RegistryID)
			}
			if mv.HasPattern(registry.PatternOlympicSnatch) {
				snatch = true
			}
			if mv.HasAnyPattern([]string{registry.PatternOlympicClean, registry.PatternOlympicJerk}) {
				cleanOrJerk = true
			}
		}
	}
	if !snatch {
		t.Error("no snatch-pattern movement in the session")
	}
	if !cleanOrJerk {
		t.Error("no clean or jerk movement in the session")
	}
	if !w.Flags.PatternsLocked {
		t.Error("patterns_locked flag is false")
	}
}

func TestEngine_OlympicShortSessionBothGroups(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	ctx := context.Background()
	reg := registry.New()

	req := generation.Request{
		Style:           generation.StyleOlympic,
		DurationMinutes: 30,
		Intensity:       6,
		Equipment:       []string{registry.EquipmentBarbell},
	}

	// The short session has a single alternating block with two slots; both
	// pattern groups must be covered regardless of which token seeds the
	// shuffle.
	for i := range 12 {
		token := fmt.Sprintf("short-session-%d", i)
		w, err := engine.Preview(ctx, req, token)
		if err != nil {
			t.Fatalf("preview %s: %v", token, err)
		}

		snatch, cleanOrJerk := false, false
		for _, b := range w.Blocks {
			for _, item := range b.Items {
				mv, ok := reg.Get(item.RegistryID)
				if !ok {
					continue
				}
				if mv.HasPattern(registry.PatternOlympicSnatch) {
					snatch = true
				}
				if mv.HasAnyPattern([]string{registry.PatternOlympicClean, registry.PatternOlympicJerk}) {
					cleanOrJerk = true
				}
			}
		}
		if !snatch || !cleanOrJerk {
			t.Errorf("token %s: snatch=%t clean/jerk=%t, want both groups covered", token, snatch, cleanOrJerk)
		}
		if !w.Flags.PatternsLocked {
			t.Errorf("token %s: patterns_locked flag is false", token)
		}
	}
}

func TestEngine_IntervalBlocksStayOnBudget(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	ctx := context.Background()

	// Interval structures move in coarse work/rest cycles; the fitter must
	// keep the title honest and fill any leftover deficit instead of
	// stretching the block past what its rounds add up to.
	tests := []struct {
		name      string
		duration  int
		intensity int
	}{
		{name: "cruise short", duration: 30, intensity: 7},
		{name: "cruise long", duration: 45, intensity: 7},
		{name: "vo2", duration: 40, intensity: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := generation.Request{
				Style:           generation.StyleEndurance,
				DurationMinutes: tt.duration,
				Intensity:       tt.intensity,
				Equipment:       []string{registry.EquipmentRower},
			}

			w, err := engine.Preview(ctx, req, "interval-budget")
			if err != nil {
				t.Fatalf("preview: %v", err)
			}
			if !w.Flags.TimeFit {
				t.Errorf("time fit flag false: total %d for requested %d", w.TotalMinutes(), tt.duration)
			}
			assertStructureDurations(t, w)
		})
	}
}

func TestEngine_PowerliftingLoadedRatio(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	ctx := context.Background()

	req := generation.Request{
		Style:           generation.StylePowerlifting,
		DurationMinutes: 60,
		Intensity:       7,
		Equipment:       fullGym(),
		Strict:          true,
	}

	w, _, err := engine.Generate(ctx, req, generation.SeedContext{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if w.Meta.MainLoadedRatio < 0.85 {
		t.Errorf("main loaded ratio %.2f below the powerlifting threshold", w.Meta.MainLoadedRatio)
	}
}

func TestEngine_ReadinessDampening(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	ctx := context.Background()

	req := generation.Request{
		Style:           generation.StyleEndurance,
		DurationMinutes: 45,
		Intensity:       6,
		Equipment:       []string{registry.EquipmentRower},
		Health:          &generation.HealthSnapshot{SleepScore: 40},
	}

	w, _, err := engine.Generate(ctx, req, generation.SeedContext{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !w.Flags.ReadinessModApplied {
		t.Error("readiness modification flag not set for a poor sleep score")
	}
	if w.Intensity != req.Intensity {
		t.Errorf("requested intensity rewritten: got %d, want %d", w.Intensity, req.Intensity)
	}
}

func TestEngine_ConstraintExcludesRunning(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	ctx := context.Background()

	req := generation.Request{
		Style:           generation.StyleEndurance,
		DurationMinutes: 40,
		Intensity:       5,
		Equipment:       []string{registry.EquipmentJumpRope},
		Constraints:     []string{"no_running"},
	}

	w, _, err := engine.Generate(ctx, req, generation.SeedContext{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !w.Flags.InjurySafe {
		t.Error("injury_safe flag is false")
	}

	reg := registry.New()
	for _, b := range w.Blocks {
		for _, item := range b.Items {
			mv, ok := reg.Get(item.RegistryID)
			if ok && mv.HasPattern(registry.PatternMonoRun) {
				t.Errorf("running movement %q selected despite no_running constraint", mv.ID)
			}
		}
	}
}

func TestEngine_RequestValidation(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     generation.Request
		wantErr error
	}{
		{
			name: "unknown style",
			req: generation.Request{
				Style:           "yoga",
				DurationMinutes: 60,
				Intensity:       5,
			},
			wantErr: generation.ErrUnsupportedStyle,
		},
		{
			name: "duration too short",
			req: generation.Request{
				Style:           generation.StyleCrossFit,
				DurationMinutes: 10,
				Intensity:       5,
			},
			wantErr: generation.ErrInvalidRequest,
		},
		{
			name: "duration too long",
			req: generation.Request{
				Style:           generation.StyleCrossFit,
				DurationMinutes: 200,
				Intensity:       5,
			},
			wantErr: generation.ErrInvalidRequest,
		},
		{
			name: "intensity out of range",
			req: generation.Request{
				Style:           generation.StyleCrossFit,
				DurationMinutes: 60,
				Intensity:       11,
			},
			wantErr: generation.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := engine.Generate(ctx, tt.req, generation.SeedContext{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEngine_SelectionInfeasible(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	ctx := context.Background()

	// Powerlifting with no barbell cannot fill its loaded main blocks.
	req := generation.Request{
		Style:           generation.StylePowerlifting,
		DurationMinutes: 60,
		Intensity:       5,
		Equipment:       []string{registry.EquipmentJumpRope},
	}

	_, _, err := engine.Generate(ctx, req, generation.SeedContext{})
	if !errors.Is(err, generation.ErrSelectionInfeasible) {
		t.Errorf("error = %v, want ErrSelectionInfeasible", err)
	}
}

func TestEngine_DifferentTokensDiverge(t *testing.T) {
	t.Parallel()

	engine := newEngine(t)
	ctx := context.Background()

	req := generation.Request{
		Style:           generation.StyleCrossFit,
		DurationMinutes: 60,
		Intensity:       5,
		Equipment:       fullGym(),
	}

	a, err := engine.Preview(ctx, req, "token-a")
	if err != nil {
		t.Fatalf("preview a: %v", err)
	}
	b, err := engine.Preview(ctx, req, "token-b")
	if err != nil {
		t.Fatalf("preview b: %v", err)
	}

	if diff := cmp.Diff(a.Blocks, b.Blocks); diff == "" {
		t.Error("different tokens produced identical block selections")
	}
}
