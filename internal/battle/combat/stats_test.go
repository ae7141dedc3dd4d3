package combat

import (
	"testing"

	"Ironmarch/internal/battle/entity"
)

func TestComputeStatsPerTerrain(t *testing.T) {
	tests := []struct {
		terrain          entity.Terrain
		wantAttack       float64
		wantDefense      float64
		wantBreakthrough float64
	}{
		{entity.TerrainPlain, 60, 220, 30},
		{entity.TerrainForest, 48, 253, 24},
		{entity.TerrainHills, 45, 264, 22.5},
		{entity.TerrainMountain, 36, 286, 15},
		{entity.TerrainOcean, 6, 22, 0},
	}

	for _, tt := range tests {
		t.Run(tt.terrain.String(), func(t *testing.T) {
			attack, defense, breakthrough := ComputeStats(10, tt.terrain)
			if !almostEqual(attack, tt.wantAttack) {
				t.Errorf("attack = %v, want %v", attack, tt.wantAttack)
			}
			if !almostEqual(defense, tt.wantDefense) {
				t.Errorf("defense = %v, want %v", defense, tt.wantDefense)
			}
			if !almostEqual(breakthrough, tt.wantBreakthrough) {
				t.Errorf("breakthrough = %v, want %v", breakthrough, tt.wantBreakthrough)
			}
		})
	}
}

func TestComputeStatsScalesWithEquipment(t *testing.T) {
	a1, d1, b1 := ComputeStats(100, entity.TerrainPlain)
	a2, d2, b2 := ComputeStats(50, entity.TerrainPlain)
	if !almostEqual(a1, 2*a2) || !almostEqual(d1, 2*d2) || !almostEqual(b1, 2*b2) {
		t.Errorf("stats do not scale linearly: (%v %v %v) vs (%v %v %v)", a1, d1, b1, a2, d2, b2)
	}
}

func TestOrganizationPerUnit(t *testing.T) {
	if got := OrganizationPerUnit(); !almostEqual(got, 10) {
		t.Errorf("OrganizationPerUnit() = %v, want 10", got)
	}
}
