package combat

import (
	"Ironmarch/internal/battle/entity"
	"Ironmarch/internal/shared/gameconfig/military"
)

// OrganizationPerUnit is the cohesion ceiling one infantry equipment unit
// contributes, from the equipment table.
func OrganizationPerUnit() float64 {
	return military.EquipmentConf.OrganizationPerUnit(int8(entity.EquipmentInfantry))
}

// ComputeStats derives attack/defense/breakthrough from a live equipment
// count and the terrain: stat = max(0, count * base * (1 + modifier)).
// Stats are recomputed every tick so combat power degrades with losses.
func ComputeStats(equipment float64, terrain entity.Terrain) (attack, defense, breakthrough float64) {
	base, ok := military.EquipmentConf.Stats(int8(entity.EquipmentInfantry))
	if !ok {
		return 0, 0, 0
	}
	mod, ok := military.TerrainConf.Modifier(terrain.String())
	if !ok {
		mod = military.TerrainModifier{}
	}

	attack = clampNonNegative(equipment * base.Attack * (1 + mod.Attack))
	defense = clampNonNegative(equipment * base.Defense * (1 + mod.Defense))
	breakthrough = clampNonNegative(equipment * base.Breakthrough * (1 + mod.Breakthrough))
	return attack, defense, breakthrough
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
