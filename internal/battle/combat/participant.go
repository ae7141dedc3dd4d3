package combat

import (
	"Ironmarch/internal/battle/entity"
)

// Participant wraps one army for the duration of a single encounter. It is
// simulation-local and never persisted directly; settlement copies the final
// numbers back onto the army.
type Participant struct {
	Army *entity.Army

	// InitialOrganization is snapshotted at battle start and used only for
	// the rout-threshold test.
	InitialOrganization float64

	Organization float64
	Manpower     float64
	Equipment    float64

	Attack       float64
	Defense      float64
	Breakthrough float64

	Routed bool
}

func NewParticipant(a *entity.Army) *Participant {
	org := a.Organization
	return &Participant{
		Army:                a,
		InitialOrganization: org,
		Organization:        org,
		Manpower:            float64(a.Manpower),
		Equipment:           float64(a.EquipmentCount(entity.EquipmentInfantry)),
	}
}

// Alive reports whether the participant still takes part in the encounter.
// Once routed or zeroed it receives no damage and mounts no counter-rounds.
func (p *Participant) Alive() bool {
	return p != nil && !p.Routed && p.Organization > 0
}

// Refresh recomputes combat stats from the current, attrited equipment count.
func (p *Participant) Refresh(terrain entity.Terrain) {
	p.Attack, p.Defense, p.Breakthrough = ComputeStats(p.Equipment, terrain)
}

// ApplyLosses subtracts one round's damage with the bounding rules: nothing
// goes negative, organization stays under the equipment ceiling, and
// equipment never exceeds manpower (excess destruction is discarded, no
// manpower is created).
func (p *Participant) ApplyLosses(orgDamage, casualties, equipmentLoss float64) {
	p.Organization = clampNonNegative(p.Organization - orgDamage)
	p.Manpower = clampNonNegative(p.Manpower - casualties)
	p.Equipment = clampNonNegative(p.Equipment - equipmentLoss)

	if p.Equipment > p.Manpower {
		p.Equipment = p.Manpower
	}
	if ceiling := p.Equipment * OrganizationPerUnit(); p.Organization > ceiling {
		p.Organization = ceiling
	}
}

// RoutThreshold is the organization level at which the participant breaks.
func (p *Participant) RoutThreshold() float64 {
	return p.InitialOrganization * routThresholdPct
}

// Rout forces the retreat penalty: 30% of current equipment destroyed,
// manpower reduced by the organization deficit below the threshold converted
// via the per-unit organization value, then organization zeroed and the
// participant removed from further ticks.
func (p *Participant) Rout() {
	perUnit := OrganizationPerUnit()

	deficit := clampNonNegative(p.RoutThreshold() - p.Organization)
	casualties := 0.0
	if perUnit > 0 {
		casualties = deficit / perUnit
	}

	p.Equipment = clampNonNegative(p.Equipment * (1 - routEquipmentPenalty))
	p.Manpower = clampNonNegative(p.Manpower - casualties)
	if p.Equipment > p.Manpower {
		p.Equipment = p.Manpower
	}
	p.Organization = 0
	p.Routed = true
}
