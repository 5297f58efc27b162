// Package generation composes structured training sessions that satisfy the
// style constraints of the request and are reproducible from a seed.
package generation

import (
	"fmt"
	"time"
)

// Style identifies a supported training style.
type Style string

const (
	StyleCrossFit     Style = "crossfit"
	StyleOlympic      Style = "olympic_weightlifting"
	StylePowerlifting Style = "powerlifting"
	StyleStrength     Style = "strength"
	StyleHIIT         Style = "hiit"
	StyleEndurance    Style = "endurance"
)

// BlockKind classifies a workout block.
type BlockKind string

const (
	BlockWarmup       BlockKind = "warmup"
	BlockStrength     BlockKind = "strength"
	BlockConditioning BlockKind = "conditioning"
	BlockSkill        BlockKind = "skill"
	BlockCore         BlockKind = "core"
	BlockCooldown     BlockKind = "cooldown"
)

// StructureKind is the first-class structural template of a block. Display
// titles are derived from it, never parsed back out of a string.
type StructureKind string

const (
	StructureSteady   StructureKind = "steady"
	StructureEMOM     StructureKind = "emom"
	StructureEvery    StructureKind = "every"
	StructureInterval StructureKind = "interval"
	StructureAMRAP    StructureKind = "amrap"
	StructureForTime  StructureKind = "for_time"
	StructureSets     StructureKind = "sets"
)

// Structure describes how a block is run. Rounds and the block duration must
// stay consistent; Retime is the only sanctioned way to change a block's
// length.
type Structure struct {
	Kind StructureKind `json:"kind"`
	// Rounds is the round count for emom/every/interval/sets structures.
	Rounds int `json:"rounds,omitempty"`
	// IntervalMinutes is the per-round length for "every" structures.
	IntervalMinutes int `json:"interval_minutes,omitempty"`
	// WorkSeconds and RestSeconds shape interval structures.
	WorkSeconds int `json:"work_seconds,omitempty"`
	RestSeconds int `json:"rest_seconds,omitempty"`
}

// Title renders the display title for a block of the given length. The
// embedded numbers always agree with the structure fields.
func (s Structure) Title(timeMinutes int) string {
	switch s.Kind {
	case StructureEMOM:
		return fmt.Sprintf("EMOM %d", s.Rounds)
	case StructureEvery:
		return fmt.Sprintf("Every %d:00 x %d", s.IntervalMinutes, s.Rounds)
	case StructureInterval:
		return fmt.Sprintf("%d x %s on / %s off", s.Rounds,
			formatSeconds(s.WorkSeconds), formatSeconds(s.RestSeconds))
	case StructureAMRAP:
		return fmt.Sprintf("AMRAP %d", timeMinutes)
	case StructureForTime:
		return fmt.Sprintf("For Time (cap %d)", timeMinutes)
	case StructureSets:
		return fmt.Sprintf("%d Working Sets", s.Rounds)
	case StructureSteady:
		return fmt.Sprintf("Steady %d min", timeMinutes)
	default:
		return fmt.Sprintf("Block %d min", timeMinutes)
	}
}

func formatSeconds(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// interval reports whether the structure is round-based and can absorb time
// changes by adjusting its round count.
func (s Structure) interval() bool {
	switch s.Kind {
	case StructureEMOM, StructureEvery, StructureInterval:
		return true
	default:
		return false
	}
}

// Item is one movement prescription inside a block. Scheme fields are
// independent; zero means the field does not apply.
type Item struct {
	ExerciseName string `json:"exercise_name"`
	// RegistryID is a weak back-reference into the movement registry, used
	// for lookups only.
	RegistryID      string  `json:"registry_id,omitempty"`
	Reps            int     `json:"reps,omitempty"`
	DurationSeconds int     `json:"duration_seconds,omitempty"`
	DistanceMeters  int     `json:"distance_meters,omitempty"`
	PercentOneRM    float64 `json:"percent_one_rm,omitempty"`
	RestSeconds     int     `json:"rest_seconds,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

// Block is one ordered segment of a workout.
type Block struct {
	Kind        BlockKind `json:"kind"`
	Structure   Structure `json:"structure"`
	TimeMinutes int       `json:"time_minutes"`
	Items       []Item    `json:"items"`
	Notes       string    `json:"notes,omitempty"`
}

// Title derives the display title from the structure and duration.
func (b Block) Title() string {
	return b.Structure.Title(b.TimeMinutes)
}

// main reports whether the block is a main training block.
func (b Block) main() bool {
	return b.Kind != BlockWarmup && b.Kind != BlockCooldown
}

// Retime returns a copy of the block with a new duration and its structure
// rounds rewritten to match, so title and duration never diverge.
func (b Block) Retime(minutes int) Block {
	out := b
	out.TimeMinutes = minutes
	switch b.Structure.Kind {
	case StructureEMOM:
		out.Structure.Rounds = minutes
	case StructureEvery:
		if b.Structure.IntervalMinutes > 0 {
			out.Structure.Rounds = max(1, minutes/b.Structure.IntervalMinutes)
			out.TimeMinutes = out.Structure.Rounds * b.Structure.IntervalMinutes
		}
	case StructureInterval:
		cycle := b.Structure.WorkSeconds + b.Structure.RestSeconds
		if cycle > 0 {
			out.Structure.Rounds = max(1, minutes*60/cycle)
			out.TimeMinutes = out.Structure.Rounds * cycle / 60
		}
	default:
	}
	return out
}

// AcceptanceFlags summarise which guarantees the returned workout meets.
type AcceptanceFlags struct {
	TimeFit             bool `json:"time_fit"`
	HasWarmup           bool `json:"has_warmup"`
	HasCooldown         bool `json:"has_cooldown"`
	MixedRuleOk         bool `json:"mixed_rule_ok"`
	EquipmentOk         bool `json:"equipment_ok"`
	InjurySafe          bool `json:"injury_safe"`
	ReadinessModApplied bool `json:"readiness_mod_applied"`
	HardnessOk          bool `json:"hardness_ok"`
	PatternsLocked      bool `json:"patterns_locked"`
	NoBannedInMains     bool `json:"no_banned_in_mains"`
}

// Meta carries observability data about how a workout was composed.
type Meta struct {
	Style           Style    `json:"style"`
	SeedToken       string   `json:"seed_token"`
	SelectionTrace  []string `json:"selection_trace,omitempty"`
	PolicyRepairs   []string `json:"policy_repairs,omitempty"`
	MainLoadedRatio float64  `json:"main_loaded_ratio"`
	CriticScore     int      `json:"critic_score,omitempty"`
	CriticIssues    []string `json:"critic_issues,omitempty"`
}

// Workout is the fully composed training session. It is never mutated after
// being handed to persistence or rendering collaborators; pipeline stages
// always return new values.
type Workout struct {
	ID              string          `json:"id,omitempty"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	Style           Style           `json:"style"`
	DurationMinutes int             `json:"duration_minutes"`
	Intensity       int             `json:"intensity"`
	Blocks          []Block         `json:"blocks"`
	HardnessScore   float64         `json:"hardness_score"`
	VarietyScore    float64         `json:"variety_score"`
	Flags           AcceptanceFlags `json:"acceptance_flags"`
	Meta            Meta            `json:"meta"`
}

// TotalMinutes sums the durations of all blocks.
func (w Workout) TotalMinutes() int {
	total := 0
	for _, b := range w.Blocks {
		total += b.TimeMinutes
	}
	return total
}

// mainBlocks returns the indices of the main training blocks in order.
func (w Workout) mainBlocks() []int {
	var idx []int
	for i, b := range w.Blocks {
		if b.main() {
			idx = append(idx, i)
		}
	}
	return idx
}

// HealthSnapshot is an optional readiness signal attached to a request.
type HealthSnapshot struct {
	HRV         float64 `json:"hrv,omitempty"`
	RestingHR   int     `json:"resting_hr,omitempty"`
	SleepScore  int     `json:"sleep_score,omitempty"`
	StressFlag  bool    `json:"stress_flag,omitempty"`
	RecordedAt  string  `json:"recorded_at,omitempty"`
	SourceLabel string  `json:"source_label,omitempty"`
}

// SessionSummary summarises yesterday's session for back-to-back load
// management.
type SessionSummary struct {
	Style           Style `json:"style"`
	Intensity       int   `json:"intensity"`
	DurationMinutes int   `json:"duration_minutes"`
}

// Request is the validated, strongly-typed generation request. It is checked
// once at the pipeline boundary; internal stages never see raw input.
type Request struct {
	Style           Style           `json:"style"`
	DurationMinutes int             `json:"duration_minutes"`
	Intensity       int             `json:"intensity"`
	Equipment       []string        `json:"equipment"`
	Constraints     []string        `json:"constraints,omitempty"`
	Health          *HealthSnapshot `json:"health,omitempty"`
	Yesterday       *SessionSummary `json:"yesterday,omitempty"`
	// Strict selects fail-fast policy enforcement. It is an explicit
	// per-request parameter, not a process-wide mode.
	Strict bool `json:"strict,omitempty"`
}

// SeedContext records when and for whom a seed was minted.
type SeedContext struct {
	Date   string `json:"date"`
	UserID string `json:"user_id,omitempty"`
}

// Seed is the reproducibility token for a workout: a random token plus a full
// snapshot of the inputs that produced it. Persisted alongside the workout so
// regeneration replays the exact same pipeline.
type Seed struct {
	Token            string            `json:"token"`
	GeneratorVersion string            `json:"generator_version"`
	Inputs           Request           `json:"inputs"`
	InputsHash       uint64            `json:"inputs_hash"`
	Context          SeedContext       `json:"context"`
	Choices          map[string]string `json:"choices,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}
