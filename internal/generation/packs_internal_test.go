package generation

import (
	"testing"

	"github.com/noble-hunt/AXLE-sub000/internal/registry"
)

func TestOlympicPack_branchesOnBudget(t *testing.T) {
	t.Parallel()

	t.Run("long session gets dedicated blocks", func(t *testing.T) {
		t.Parallel()
		pack := olympicPack(60)
		if len(pack.MainBlocks) != 2 {
			t.Fatalf("want 2 main blocks, got %d", len(pack.MainBlocks))
		}
		if got := pack.MainBlocks[0].Criteria.Patterns; len(got) != 1 || got[0] != registry.PatternOlympicSnatch {
			t.Errorf("first block patterns = %v, want snatch only", got)
		}
		for i, mb := range pack.MainBlocks {
			if want := mb.Structure.Rounds * mb.Structure.IntervalMinutes; mb.Minutes != want {
				t.Errorf("block %d minutes = %d, structure implies %d", i, mb.Minutes, want)
			}
		}
		budget := 60 - pack.WarmupMinutes - pack.CooldownMinutes
		total := pack.MainBlocks[0].Minutes + pack.MainBlocks[1].Minutes
		if total > budget || total < budget-2*len(pack.MainBlocks) {
			t.Errorf("main minutes = %d, want close to budget %d", total, budget)
		}
	})

	t.Run("short session alternates in one block", func(t *testing.T) {
		t.Parallel()
		pack := olympicPack(30)
		if len(pack.MainBlocks) != 1 {
			t.Fatalf("want 1 main block, got %d", len(pack.MainBlocks))
		}
		if got := len(pack.MainBlocks[0].Criteria.Patterns); got != 3 {
			t.Errorf("alternating block should accept all three olympic patterns, got %d", got)
		}
		if pack.MainBlocks[0].Criteria.Items != 2 {
			t.Errorf("alternating block items = %d, want 2", pack.MainBlocks[0].Criteria.Items)
		}
		if got := pack.MainBlocks[0].Criteria.RequiredGroups; len(got) != 2 {
			t.Errorf("alternating block required groups = %v, want both olympic groups", got)
		}
		mb := pack.MainBlocks[0]
		if want := mb.Structure.Rounds * mb.Structure.IntervalMinutes; mb.Minutes != want {
			t.Errorf("alternating block minutes = %d, structure implies %d", mb.Minutes, want)
		}
	})
}

func TestEndurancePack_intensityBranches(t *testing.T) {
	t.Parallel()

	equipment := []string{registry.EquipmentRower}

	tests := []struct {
		name      string
		intensity int
		wantKind  StructureKind
	}{
		{name: "steady below seven", intensity: 5, wantKind: StructureSteady},
		{name: "cruise at seven", intensity: 7, wantKind: StructureInterval},
		{name: "vo2 at eight", intensity: 8, wantKind: StructureInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pack := endurancePack(60, tt.intensity, equipment, nil)
			if len(pack.MainBlocks) != 1 {
				t.Fatalf("want 1 main block, got %d", len(pack.MainBlocks))
			}
			if got := pack.MainBlocks[0].Structure.Kind; got != tt.wantKind {
				t.Errorf("structure kind = %s, want %s", got, tt.wantKind)
			}
		})
	}
}

func TestEndurancePack_vo2Shape(t *testing.T) {
	t.Parallel()

	pack := endurancePack(60, 9, []string{registry.EquipmentBike}, nil)
	s := pack.MainBlocks[0].Structure
	if s.WorkSeconds != 60 || s.RestSeconds != 60 {
		t.Errorf("vo2 intervals = %d/%d seconds, want 60/60", s.WorkSeconds, s.RestSeconds)
	}
	if s.Rounds > 10 {
		t.Errorf("vo2 rounds = %d, want at most 10", s.Rounds)
	}
}

func TestEnduranceModality_preferenceOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		equipment   []string
		constraints []string
		want        string
	}{
		{
			name:      "rower wins when available",
			equipment: []string{registry.EquipmentBike, registry.EquipmentRower},
			want:      "row",
		},
		{
			name:      "bike before running",
			equipment: []string{registry.EquipmentBike},
			want:      "bike_erg",
		},
		{
			name:      "running needs no equipment",
			equipment: []string{},
			want:      "run",
		},
		{
			name:        "no running falls through to ski erg",
			equipment:   []string{registry.EquipmentSkiErg},
			constraints: []string{"no_running"},
			want:        "ski_erg",
		},
		{
			name:        "jump rope is the last resort",
			equipment:   []string{},
			constraints: []string{"no_running"},
			want:        "double_under",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, _ := enduranceModality(tt.equipment, tt.constraints)
			if got != tt.want {
				t.Errorf("modality = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompressForBudget(t *testing.T) {
	t.Parallel()

	pack := Pack{WarmupMinutes: 8, CooldownMinutes: 6}

	roomy := compressForBudget(pack, 60)
	if roomy.WarmupMinutes != 8 || roomy.CooldownMinutes != 6 {
		t.Errorf("roomy budget was compressed: %d/%d", roomy.WarmupMinutes, roomy.CooldownMinutes)
	}

	tight := compressForBudget(pack, 20)
	if tight.WarmupMinutes != 6 || tight.CooldownMinutes != 4 {
		t.Errorf("tight budget compression = %d/%d, want 6/4", tight.WarmupMinutes, tight.CooldownMinutes)
	}
}

func TestResolvePack_unsupportedStyle(t *testing.T) {
	t.Parallel()

	if _, err := ResolvePack("pilates", 60, 5, nil, nil); err == nil {
		t.Error("expected an error for an unsupported style")
	}
}
