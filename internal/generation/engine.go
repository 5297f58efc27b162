package generation

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/noble-hunt/AXLE-sub000/internal/errors"
	"github.com/noble-hunt/AXLE-sub000/internal/registry"
)

// Duration and intensity bounds accepted at the pipeline boundary.
const (
	minDurationMinutes = 15
	maxDurationMinutes = 120
	minIntensity       = 1
	maxIntensity       = 10
)

// Engine runs the composition pipeline: pack resolution, movement selection,
// time fitting, sanitisation, and policy enforcement, with an optional critic
// pass on fresh generations. Every stage takes a workout and returns a new
// one; the engine owns the ordering.
type Engine struct {
	registry *registry.Registry
	critic   *Critic
	logger   *slog.Logger
	now      Clock
}

// NewEngine builds an engine. A nil critic disables the review pass, which
// is how regeneration and simulation run.
func NewEngine(reg *registry.Registry, critic *Critic, logger *slog.Logger) *Engine {
	return &Engine{
		registry: reg,
		critic:   critic,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the engine clock. Used by tests.
func (e *Engine) WithClock(now Clock) *Engine {
	e.now = now
	return e
}

// supportedStyles is the closed set of styles the engine accepts.
//
//nolint:gochecknoglobals // immutable lookup table.
var supportedStyles = []Style{
	StyleCrossFit, StyleOlympic, StylePowerlifting,
	StyleStrength, StyleHIIT, StyleEndurance,
}

// validateRequest checks the request once at the boundary so internal stages
// can trust their inputs.
func validateRequest(req Request) error {
	if !slices.Contains(supportedStyles, req.Style) {
		return errors.Wrap(ErrUnsupportedStyle, "validate request",
			slog.String("style", string(req.Style)))
	}
	if req.DurationMinutes < minDurationMinutes || req.DurationMinutes > maxDurationMinutes {
		return errors.Wrap(ErrInvalidRequest, "validate request",
			slog.Int("duration_minutes", req.DurationMinutes))
	}
	if req.Intensity < minIntensity || req.Intensity > maxIntensity {
		return errors.Wrap(ErrInvalidRequest, "validate request",
			slog.Int("intensity", req.Intensity))
	}
	return nil
}

// effectiveIntensity dampens the requested intensity on poor readiness or
// after a hard session the day before. The request itself is never mutated;
// the damped value feeds pack resolution and prescriptions.
func effectiveIntensity(req Request) (int, bool) {
	intensity := req.Intensity
	damped := false
	if lowReadiness(req.Health) {
		intensity -= 2
		damped = true
	}
	if req.Yesterday != nil && req.Yesterday.Intensity >= 8 {
		intensity--
		damped = true
	}
	return max(minIntensity, intensity), damped
}

// Generate mints a seed for the request and runs the full pipeline including
// the critic pass.
func (e *Engine) Generate(ctx context.Context, req Request, sctx SeedContext) (Workout, Seed, error) {
	if err := validateRequest(req); err != nil {
		return Workout{}, Seed{}, err
	}
	seed, err := makeSeed(req, sctx, e.now)
	if err != nil {
		return Workout{}, Seed{}, err
	}

	w, err := e.runPipeline(ctx, req, seed)
	if err != nil {
		return Workout{}, Seed{}, err
	}

	w = e.reviewWithCritic(ctx, w, req)
	if err := validateWorkout(w); err != nil {
		return Workout{}, Seed{}, err
	}
	return w, seed, nil
}

// Regenerate replays the pipeline from a stored seed. The critic is skipped
// so the result is a pure function of the seed.
func (e *Engine) Regenerate(ctx context.Context, seed Seed) (Workout, error) {
	if err := validateRequest(seed.Inputs); err != nil {
		return Workout{}, err
	}
	if seed.GeneratorVersion != GeneratorVersion {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "regenerating seed from different generator version",
			slog.String("seed_version", seed.GeneratorVersion),
			slog.String("current_version", GeneratorVersion))
	}
	w, err := e.runPipeline(ctx, seed.Inputs, seed)
	if err != nil {
		return Workout{}, err
	}
	if err := validateWorkout(w); err != nil {
		return Workout{}, err
	}
	return w, nil
}

// Preview runs the pipeline with a caller-supplied token instead of a minted
// seed, for dry runs that must be reproducible without persistence.
func (e *Engine) Preview(ctx context.Context, req Request, token string) (Workout, error) {
	if err := validateRequest(req); err != nil {
		return Workout{}, err
	}
	seed := Seed{
		Token:            token,
		GeneratorVersion: GeneratorVersion,
		Inputs:           req,
	}
	w, err := e.runPipeline(ctx, req, seed)
	if err != nil {
		return Workout{}, err
	}
	if err := validateWorkout(w); err != nil {
		return Workout{}, err
	}
	return w, nil
}

// runPipeline executes the deterministic stages in order.
func (e *Engine) runPipeline(ctx context.Context, req Request, seed Seed) (Workout, error) {
	intensity, damped := effectiveIntensity(req)
	effectiveReq := req
	effectiveReq.Intensity = intensity
	if effectiveReq.Equipment == nil {
		// Nil equipment means bodyweight only, not unconstrained.
		effectiveReq.Equipment = []string{}
	}

	pack, err := ResolvePack(req.Style, req.DurationMinutes, intensity, effectiveReq.Equipment, req.Constraints)
	if err != nil {
		return Workout{}, err
	}

	w, err := compose(e.registry, pack, effectiveReq, seed)
	if err != nil {
		return Workout{}, err
	}
	w.Intensity = req.Intensity

	w, err = fitToBudget(w, pack, req.Strict)
	if err != nil {
		return Workout{}, err
	}

	w = sanitize(w, pack, effectiveReq, e.registry)
	if damped {
		w.Flags.ReadinessModApplied = true
	}

	w, err = e.applyPolicy(ctx, w, effectiveReq, pack)
	if err != nil {
		return Workout{}, err
	}

	w = e.setFlags(w, effectiveReq, pack)
	return w, nil
}

// applyPolicy enforces the style policy with at most one auto-fix pass.
// Strict requests fail on an unfixed violation; lenient ones record it and
// return the best available workout.
func (e *Engine) applyPolicy(ctx context.Context, w Workout, req Request, pack Pack) (Workout, error) {
	policy, ok := PolicyFor(req.Style)
	if !ok {
		return w, nil
	}

	violation := enforcePolicy(w, policy, e.registry, req.Equipment)
	if violation == nil {
		return w, nil
	}

	fixed, repairs, remaining := autoFixPolicy(w, violation, policy, e.registry, req.Equipment, w.Meta.SeedToken)
	fixed.Meta.PolicyRepairs = append(fixed.Meta.PolicyRepairs, repairs...)

	if remaining == nil {
		e.logger.LogAttrs(ctx, slog.LevelInfo, "policy violation auto-fixed",
			slog.String("kind", string(violation.Kind)),
			slog.Int("repairs", len(repairs)))
		return fixed, nil
	}

	if req.Strict {
		return Workout{}, errors.Wrap(ErrPolicyViolation, "apply style policy",
			slog.String("kind", string(remaining.Kind)),
			slog.String("reason", remaining.Reason),
			slog.String("style", string(req.Style)))
	}

	e.logger.LogAttrs(ctx, slog.LevelWarn, "policy violation not fully repaired",
		slog.String("kind", string(remaining.Kind)),
		slog.String("reason", remaining.Reason))
	fixed.Meta.PolicyRepairs = append(fixed.Meta.PolicyRepairs,
		"unresolved: "+remaining.Reason)
	return fixed, nil
}

// setFlags fills the acceptance flags not already set by earlier stages.
func (e *Engine) setFlags(w Workout, req Request, pack Pack) Workout {
	out := w
	if len(out.Blocks) > 0 {
		out.Flags.HasWarmup = out.Blocks[0].Kind == BlockWarmup
		out.Flags.HasCooldown = out.Blocks[len(out.Blocks)-1].Kind == BlockCooldown
	}
	out.Flags.EquipmentOk = equipmentOk(out, e.registry, req.Equipment)
	out.Flags.InjurySafe = injurySafe(out, e.registry, req.Constraints)
	out.Flags.MixedRuleOk = mixedRuleOk(out, req.Style)
	out.Flags.PatternsLocked = patternsLocked(out, e.registry, pack)
	return out
}

func equipmentOk(w Workout, reg *registry.Registry, equipment []string) bool {
	for _, b := range w.Blocks {
		for _, item := range b.Items {
			mv, ok := reg.Get(item.RegistryID)
			if ok && !mv.PerformableWith(equipment) {
				return false
			}
		}
	}
	return true
}

func injurySafe(w Workout, reg *registry.Registry, constraints []string) bool {
	excluded := excludedPatterns(constraints)
	if len(excluded) == 0 {
		return true
	}
	for _, b := range w.Blocks {
		for _, item := range b.Items {
			mv, ok := reg.Get(item.RegistryID)
			if ok && mv.HasAnyPattern(excluded) {
				return false
			}
		}
	}
	return true
}

// mixedRuleOk checks the strength-before-conditioning ordering for mixed
// sessions. Single-focus styles pass trivially.
func mixedRuleOk(w Workout, style Style) bool {
	if style != StyleCrossFit {
		return true
	}
	lastStrength, firstConditioning := -1, -1
	for i, b := range w.Blocks {
		switch b.Kind {
		case BlockStrength:
			lastStrength = i
		case BlockConditioning:
			if firstConditioning == -1 {
				firstConditioning = i
			}
		default:
		}
	}
	if lastStrength == -1 || firstConditioning == -1 {
		return true
	}
	return lastStrength < firstConditioning
}

func patternsLocked(w Workout, reg *registry.Registry, pack Pack) bool {
	for _, group := range pack.RequiredPatternGroups {
		if !hasPatternHit(w, reg, group) {
			return false
		}
	}
	return true
}

// reviewWithCritic runs the advisory critic pass. Outages and malformed
// responses degrade to a default passing score; a below-threshold score with
// a valid patch gets exactly one repair attempt, kept only if the patched
// workout still validates.
func (e *Engine) reviewWithCritic(ctx context.Context, w Workout, req Request) Workout {
	if e.critic == nil {
		return w
	}

	review, err := e.critic.Review(ctx, w)
	if err != nil {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "critic unavailable, using default score",
			slog.String("error", err.Error()))
		out := cloneWorkout(w)
		out.Meta.CriticScore = passingScore
		out.Meta.CriticIssues = append(out.Meta.CriticIssues, "critic unavailable")
		return out
	}

	out := cloneWorkout(w)
	out.Meta.CriticScore = review.Score
	out.Meta.CriticIssues = append(out.Meta.CriticIssues, review.Issues...)

	if review.Score >= passingScore {
		return out
	}

	patched, changed := applyPatch(out, review.Patch)
	if !changed {
		return out
	}
	if err := validateWorkout(patched); err != nil {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "critic patch rejected",
			slog.String("error", err.Error()))
		return out
	}
	if policy, ok := PolicyFor(req.Style); ok {
		if v := enforcePolicy(patched, policy, e.registry, req.Equipment); v != nil {
			e.logger.LogAttrs(ctx, slog.LevelWarn, "critic patch violates style policy",
				slog.String("kind", string(v.Kind)))
			return out
		}
	}
	patched.Meta.PolicyRepairs = append(patched.Meta.PolicyRepairs, "critic patch applied")
	return patched
}

// validateWorkout is the structural schema check every returned workout must
// pass: non-empty title, at least one block, and every block populated with
// positive durations.
func validateWorkout(w Workout) error {
	if w.Title == "" {
		return errors.Wrap(ErrSchemaInvalid, "validate workout", slog.String("field", "title"))
	}
	if len(w.Blocks) == 0 {
		return errors.Wrap(ErrSchemaInvalid, "validate workout", slog.String("field", "blocks"))
	}
	for i, b := range w.Blocks {
		if b.TimeMinutes <= 0 {
			return errors.Wrap(ErrSchemaInvalid, "validate workout",
				slog.Int("block", i), slog.String("field", "time_minutes"))
		}
		if len(b.Items) == 0 {
			return errors.Wrap(ErrSchemaInvalid, "validate workout",
				slog.Int("block", i), slog.String("field", "items"))
		}
		for j, item := range b.Items {
			if item.ExerciseName == "" {
				return errors.Wrap(ErrSchemaInvalid, "validate workout",
					slog.Int("block", i), slog.Int("item", j), slog.String("field", "exercise_name"))
			}
		}
	}
	return nil
}
