package generation

import "github.com/noble-hunt/AXLE-sub000/internal/errors"

// Pipeline error taxonomy. Callers match with errors.Is; the wrapped
// annotations carry the offending style, item, and numeric deltas.
var (
	// ErrUnsupportedStyle is a configuration error: no pack and no dynamic
	// builder exists for the requested style. Rejected before composition.
	ErrUnsupportedStyle = errors.NewSentinel("unsupported style")
	// ErrInvalidRequest covers out-of-range durations and intensities.
	ErrInvalidRequest = errors.NewSentinel("invalid generation request")
	// ErrSelectionInfeasible means a registry query found no candidates or a
	// block requiring loaded movements could not fill its quota.
	ErrSelectionInfeasible = errors.NewSentinel("movement selection infeasible")
	// ErrBudgetInfeasible means the required pattern groups cannot fit inside
	// the time budget even after fitting. Only surfaced in strict mode.
	ErrBudgetInfeasible = errors.NewSentinel("time budget infeasible")
	// ErrPolicyViolation is an unfixable style-policy violation in strict
	// mode.
	ErrPolicyViolation = errors.NewSentinel("style policy violation")
	// ErrSchemaInvalid means the final workout failed structural validation.
	// It is never attached to a returned workout.
	ErrSchemaInvalid = errors.NewSentinel("workout failed structural validation")
	// ErrNotFound is returned by the repository for missing workouts/seeds.
	ErrNotFound = errors.NewSentinel("not found")
)
