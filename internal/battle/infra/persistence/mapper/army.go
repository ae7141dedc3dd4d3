package mapper

import (
	"Ironmarch/internal/battle/entity"
	"Ironmarch/internal/battle/infra/persistence/model"
)

func ArmyModelToEntity(m *model.Army) *entity.Army {
	a := &entity.Army{
		ID:           entity.ArmyID(m.ID),
		Name:         m.Name,
		Faction:      entity.FactionID(m.FactionID),
		Location:     entity.RegionID(m.Location),
		Manpower:     m.Manpower,
		Organization: m.Organization,
		Status:       entity.ArmyStatus(m.Status),
		Destination:  entity.RegionID(m.Destination),
	}
	a.SetEquipmentCount(entity.EquipmentInfantry, m.InfantryEquipment)
	if m.ArrivalAt != nil {
		a.ArrivalAt = *m.ArrivalAt
	}
	return a
}

func ArmyEntityToModel(a *entity.Army) *model.Army {
	m := &model.Army{
		ID:                int64(a.ID),
		Name:              a.Name,
		FactionID:         int64(a.Faction),
		Location:          int64(a.Location),
		Manpower:          a.Manpower,
		InfantryEquipment: a.EquipmentCount(entity.EquipmentInfantry),
		Organization:      a.Organization,
		Status:            int8(a.Status),
		Destination:       int64(a.Destination),
	}
	if !a.ArrivalAt.IsZero() {
		t := a.ArrivalAt
		m.ArrivalAt = &t
	}
	return m
}

func RegionModelToEntity(m *model.Region) *entity.Region {
	return &entity.Region{
		ID:      entity.RegionID(m.ID),
		Terrain: entity.Terrain(m.Terrain),
		Owner:   entity.FactionID(m.OwnerFactionID),
		Channel: m.Channel,
	}
}
