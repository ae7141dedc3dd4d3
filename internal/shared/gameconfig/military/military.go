package military

import (
	"fmt"
	"path/filepath"
	"runtime"

	"Ironmarch/internal/shared/config"
)

const (
	equipmentFile = "Equipment.json"
	terrainFile   = "Terrain.json"
)

// EquipmentStats is the per-unit contribution of one piece of equipment.
type EquipmentStats struct {
	Type         int8    `json:"type" mapstructure:"type"`
	Name         string  `json:"name" mapstructure:"name"`
	Attack       float64 `json:"attack" mapstructure:"attack"`
	Defense      float64 `json:"defense" mapstructure:"defense"`
	Breakthrough float64 `json:"breakthrough" mapstructure:"breakthrough"`
	// Organization is the cohesion ceiling one unit contributes.
	Organization float64 `json:"organization" mapstructure:"organization"`
}

// TerrainModifier holds additive percentage modifiers, -1.0 == -100%.
type TerrainModifier struct {
	Terrain      string  `json:"terrain" mapstructure:"terrain"`
	Attack       float64 `json:"attack" mapstructure:"attack"`
	Defense      float64 `json:"defense" mapstructure:"defense"`
	Breakthrough float64 `json:"breakthrough" mapstructure:"breakthrough"`
	MarchSpeed   float64 `json:"march_speed" mapstructure:"march_speed"`
}

type equipmentConf struct {
	Title string           `json:"title"`
	Cfg   []EquipmentStats `json:"cfg"`

	byType map[int8]EquipmentStats
}

type terrainConf struct {
	Title string            `json:"title"`
	Cfg   []TerrainModifier `json:"cfg"`

	byName map[string]TerrainModifier
}

var (
	EquipmentConf = &equipmentConf{}
	TerrainConf   = &terrainConf{}
)

// Load reads both tables once at startup. The lookup maps are built here and
// never mutated afterwards.
func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load military config failed: runtime.Caller(0) error")
	}
	baseDir := filepath.Dir(file)

	config.Load(filepath.Join(baseDir, equipmentFile), EquipmentConf)
	config.Load(filepath.Join(baseDir, terrainFile), TerrainConf)

	EquipmentConf.byType = make(map[int8]EquipmentStats, len(EquipmentConf.Cfg))
	for _, c := range EquipmentConf.Cfg {
		if c.Organization <= 0 {
			panic(fmt.Sprintf("military config: equipment %q has non-positive organization", c.Name))
		}
		EquipmentConf.byType[c.Type] = c
	}

	TerrainConf.byName = make(map[string]TerrainModifier, len(TerrainConf.Cfg))
	for _, c := range TerrainConf.Cfg {
		TerrainConf.byName[c.Terrain] = c
	}
}

func (c *equipmentConf) Stats(equipType int8) (EquipmentStats, bool) {
	s, ok := c.byType[equipType]
	return s, ok
}

// OrganizationPerUnit returns the cohesion one equipment unit contributes,
// or 0 for an unknown type.
func (c *equipmentConf) OrganizationPerUnit(equipType int8) float64 {
	s, ok := c.byType[equipType]
	if !ok {
		return 0
	}
	return s.Organization
}

func (c *terrainConf) Modifier(terrain string) (TerrainModifier, bool) {
	m, ok := c.byName[terrain]
	return m, ok
}
