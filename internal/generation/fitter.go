package generation

import (
	"log/slog"

	"github.com/noble-hunt/AXLE-sub000/internal/errors"
)

// minMainMinutes is the smallest useful main block; anything scaled below it
// gets dropped rather than kept as a stub.
const minMainMinutes = 4

// fitToBudget rescales the workout so its total duration lands within the
// pack tolerance of the requested duration. Warmup and cooldown are fixed by
// the pack; only main blocks absorb the difference. Main blocks are scaled
// proportionally, re-timed through Retime so structure rounds stay honest,
// and the residual of integer rounding is settled one minute at a time
// against the largest block. A deficit the structure grain cannot absorb is
// filled with a bounded finisher block instead.
//
// In strict mode an unreachable budget is an error; otherwise the closest
// achievable plan is returned with TimeFit left false.
func fitToBudget(w Workout, pack Pack, strict bool) (Workout, error) {
	out := cloneWorkout(w)

	fixed := 0
	var mains []int
	for i, b := range out.Blocks {
		if b.main() {
			mains = append(mains, i)
		} else {
			fixed += b.TimeMinutes
		}
	}

	targetMain := out.DurationMinutes - fixed
	if targetMain < minMainMinutes || len(mains) == 0 {
		if strict {
			return Workout{}, errors.Wrap(ErrBudgetInfeasible, "fit to budget",
				slog.Int("duration_minutes", out.DurationMinutes),
				slog.Int("fixed_minutes", fixed))
		}
		out.Flags.TimeFit = false
		return out, nil
	}

	currentMain := 0
	for _, i := range mains {
		currentMain += out.Blocks[i].TimeMinutes
	}
	if currentMain == 0 {
		if strict {
			return Workout{}, errors.Wrap(ErrBudgetInfeasible, "fit to budget",
				slog.Int("duration_minutes", out.DurationMinutes))
		}
		out.Flags.TimeFit = false
		return out, nil
	}

	// Proportional pass.
	if currentMain != targetMain {
		scale := float64(targetMain) / float64(currentMain)
		for _, i := range mains {
			scaled := int(float64(out.Blocks[i].TimeMinutes)*scale + 0.5)
			out.Blocks[i] = out.Blocks[i].Retime(max(minMainMinutes, scaled))
		}
	}

	// Drop blocks that collapsed below the useful minimum when more than one
	// main block remains.
	out.Blocks, mains = dropStubMains(out.Blocks)

	// Settle the integer residual one minute at a time on the largest block.
	tolerance := pack.toleranceMinutes(out.DurationMinutes)
	for range maxResidualPasses {
		delta := out.DurationMinutes - out.TotalMinutes()
		if abs(delta) <= tolerance {
			break
		}
		i := largestMain(out.Blocks, mains)
		if i < 0 {
			break
		}
		step := 1
		if delta < 0 {
			step = -1
		}
		next := out.Blocks[i].TimeMinutes + step
		if next < minMainMinutes {
			break
		}
		retimed := out.Blocks[i].Retime(next)
		if retimed.TimeMinutes == out.Blocks[i].TimeMinutes {
			// Structure granularity (e.g. 2-minute intervals) cannot absorb a
			// single minute; nudge by the structure's own grain instead.
			retimed = out.Blocks[i].Retime(next + step)
			if retimed.TimeMinutes == out.Blocks[i].TimeMinutes {
				break
			}
		}
		out.Blocks[i] = retimed
	}

	// When the structure grain leaves the session under budget, append a
	// bounded finisher that reuses the leading main movements.
	if delta := out.DurationMinutes - out.TotalMinutes(); delta > tolerance {
		out.Blocks = appendFinisher(out.Blocks, min(delta, maxFinisherMinutes))
	}

	delta := out.DurationMinutes - out.TotalMinutes()
	out.Flags.TimeFit = abs(delta) <= tolerance
	if !out.Flags.TimeFit && strict {
		return Workout{}, errors.Wrap(ErrBudgetInfeasible, "fit to budget",
			slog.Int("duration_minutes", out.DurationMinutes),
			slog.Int("total_minutes", out.TotalMinutes()),
			slog.Int("tolerance_minutes", tolerance))
	}
	return out, nil
}

const maxResidualPasses = 12

// maxFinisherMinutes bounds how much deficit a fallback finisher may absorb.
const maxFinisherMinutes = 8

// appendFinisher inserts a short AMRAP before the cooldown, reusing the first
// two main-block movements. The blocks are returned unchanged when there is
// nothing to reuse.
func appendFinisher(blocks []Block, minutes int) []Block {
	if minutes <= 0 {
		return blocks
	}

	var items []Item
	for _, b := range blocks {
		if !b.main() {
			continue
		}
		for _, item := range b.Items {
			if len(items) == 2 {
				break
			}
			reps := item.Reps
			if reps == 0 {
				reps = 10
			}
			items = append(items, Item{
				ExerciseName: item.ExerciseName,
				RegistryID:   item.RegistryID,
				Reps:         reps,
			})
		}
		if len(items) == 2 {
			break
		}
	}
	if len(items) == 0 {
		return blocks
	}

	finisher := Block{
		Kind:        BlockConditioning,
		Structure:   Structure{Kind: StructureAMRAP},
		TimeMinutes: minutes,
		Items:       items,
		Notes:       "finisher",
	}
	insertAt := len(blocks)
	if insertAt > 0 && blocks[insertAt-1].Kind == BlockCooldown {
		insertAt--
	}
	return append(blocks[:insertAt], append([]Block{finisher}, blocks[insertAt:]...)...)
}

// dropStubMains removes main blocks at the minimum length when at least one
// other main block survives, then recomputes the main index list.
func dropStubMains(blocks []Block) ([]Block, []int) {
	mainCount := 0
	for _, b := range blocks {
		if b.main() {
			mainCount++
		}
	}

	kept := blocks[:0]
	for _, b := range blocks {
		if b.main() && b.TimeMinutes <= minMainMinutes && mainCount > 1 {
			mainCount--
			continue
		}
		kept = append(kept, b)
	}

	var mains []int
	for i, b := range kept {
		if b.main() {
			mains = append(mains, i)
		}
	}
	return kept, mains
}

// largestMain returns the index of the longest main block, or -1.
func largestMain(blocks []Block, mains []int) int {
	best, bestMinutes := -1, 0
	for _, i := range mains {
		if blocks[i].TimeMinutes > bestMinutes {
			best, bestMinutes = i, blocks[i].TimeMinutes
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
