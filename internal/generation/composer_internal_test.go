package generation

import (
	"testing"

	"github.com/noble-hunt/AXLE-sub000/internal/registry"
)

func olympicCandidates() []registry.Movement {
	barbell := []string{registry.EquipmentBarbell}
	return []registry.Movement{
		{ID: "squat_snatch", Name: "Squat Snatch", Category: registry.CategoryOlympic,
			Patterns: []string{registry.PatternOlympicSnatch}, Equipment: barbell},
		{ID: "power_snatch", Name: "Power Snatch", Category: registry.CategoryOlympic,
			Patterns: []string{registry.PatternOlympicSnatch}, Equipment: barbell},
		{ID: "power_clean", Name: "Power Clean", Category: registry.CategoryOlympic,
			Patterns: []string{registry.PatternOlympicClean}, Equipment: barbell},
	}
}

func TestSelectWithLoadedQuota_requiredGroups(t *testing.T) {
	t.Parallel()

	// Two snatch variants lead the seeded order; without group awareness both
	// slots would go to the same pattern group.
	criteria := SelectionCriteria{
		Items: 2,
		RequiredGroups: [][]string{
			{registry.PatternOlympicSnatch},
			{registry.PatternOlympicClean, registry.PatternOlympicJerk},
		},
		RequireLoaded: true,
	}

	selected := selectWithLoadedQuota(olympicCandidates(), criteria)
	if len(selected) != 2 {
		t.Fatalf("selected %d movements, want 2", len(selected))
	}

	snatch, cleanOrJerk := false, false
	for _, m := range selected {
		if m.HasPattern(registry.PatternOlympicSnatch) {
			snatch = true
		}
		if m.HasAnyPattern([]string{registry.PatternOlympicClean, registry.PatternOlympicJerk}) {
			cleanOrJerk = true
		}
	}
	if !snatch || !cleanOrJerk {
		t.Errorf("selection does not cover both groups: snatch=%t clean/jerk=%t", snatch, cleanOrJerk)
	}
}

func TestSelectWithLoadedQuota_missingGroupIsShortfall(t *testing.T) {
	t.Parallel()

	candidates := olympicCandidates()[:2] // snatch variants only
	criteria := SelectionCriteria{
		Items: 2,
		RequiredGroups: [][]string{
			{registry.PatternOlympicSnatch},
			{registry.PatternOlympicClean, registry.PatternOlympicJerk},
		},
		RequireLoaded: true,
	}

	if selected := selectWithLoadedQuota(candidates, criteria); len(selected) >= criteria.Items {
		t.Errorf("selection filled %d slots despite an uncoverable group", len(selected))
	}
}

func TestSelectWithLoadedQuota_loadedShortfall(t *testing.T) {
	t.Parallel()

	candidates := []registry.Movement{
		{ID: "push_up", Name: "Push-Up", Category: registry.CategoryGymnastics,
			Patterns: []string{registry.PatternPush}},
		{ID: "air_squat_hold", Name: "Squat Hold", Category: registry.CategoryGymnastics,
			Patterns: []string{registry.PatternSquat}},
	}
	criteria := SelectionCriteria{Items: 2, RequireLoaded: true}

	if selected := selectWithLoadedQuota(candidates, criteria); len(selected) >= criteria.Items {
		t.Errorf("selection filled %d slots without any loaded candidate", len(selected))
	}
}
