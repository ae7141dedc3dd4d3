package combat

import (
	"Ironmarch/internal/battle/entity"
)

const (
	directRatio  = 1.0
	partialRatio = 0.5

	directOrgDamagePct  = 0.30
	partialOrgDamagePct = 0.15
	grindOrgDamagePct   = 0.20

	directEquipmentFactor  = 1.5
	partialEquipmentFactor = 1.7

	// Flat per-tick equipment wear in a grind, taken from the opposing
	// side's manpower regardless of the damage roll.
	grindAttritionPct = 0.05

	defenseSoften = 3000.0

	routThresholdPct     = 0.20
	routEquipmentPenalty = 0.30

	epsilon = 1e-6
)

const (
	TierBreakthrough = "breakthrough"
	TierPartial      = "partial"
	TierGrind        = "grind"
)

type Side int8

const (
	SideNone Side = iota
	SideAttacker
	SideDefenders
)

// Outcome is the engine's verdict for one encounter. BetterPositioned is
// only meaningful on a tick-cap stalemate, where it names the side with more
// remaining organization for reporting purposes.
type Outcome struct {
	Winner           Side
	Reason           string
	Ticks            int
	Log              []entity.TickRecord
	BetterPositioned Side
}

// Engine runs the tick-based simulation for one attacker against the
// defenders of a single cell. One tick is one simulated hour. The loop runs
// to completion without yielding; the cap is the only bound on runtime.
type Engine struct {
	tickCap int
}

func NewEngine(tickCap int) *Engine {
	if tickCap <= 0 {
		tickCap = 168
	}
	return &Engine{tickCap: tickCap}
}

func (e *Engine) Resolve(attacker *Participant, defenders []*Participant, terrain entity.Terrain) *Outcome {
	out := &Outcome{}

	for tick := 1; tick <= e.tickCap; tick++ {
		living := livingOf(defenders)
		if !attacker.Alive() || len(living) == 0 {
			break
		}

		attacker.Refresh(terrain)
		for _, d := range living {
			d.Refresh(terrain)
		}

		var combinedDefense, combinedOrg, combinedManpower float64
		for _, d := range living {
			combinedDefense += d.Defense
			combinedOrg += d.Organization
			combinedManpower += d.Manpower
		}

		rec := entity.TickRecord{Tick: tick}
		perUnit := OrganizationPerUnit()

		// Attacker round against the aggregate defender.
		ratio := attacker.Breakthrough / maxFloat(combinedDefense, epsilon)
		tier, losses := attackRound(ratio, attacker.Attack, combinedDefense, combinedOrg, combinedManpower, perUnit)
		Distribute(losses, living)
		rec.Ratio = ratio
		rec.Tier = tier
		rec.DefenderOrgDamage = losses.Organization

		// Defender counter-rounds, one per living defender against the
		// single attacker. Stats are recomputed after the attacker round
		// so this tick's losses already degrade the reply.
		for _, d := range living {
			if !d.Alive() || !attacker.Alive() {
				continue
			}
			d.Refresh(terrain)
			counterRatio := d.Breakthrough / maxFloat(attacker.Defense, epsilon)
			_, counter := attackRound(counterRatio, d.Attack, attacker.Defense, attacker.Organization, attacker.Manpower, perUnit)
			attacker.ApplyLosses(counter.Organization, counter.Casualties, counter.Equipment)
			rec.AttackerOrgDamage += counter.Organization
		}

		// Rout check for every participant still in the fight.
		for _, p := range append([]*Participant{attacker}, defenders...) {
			if p.Routed {
				continue
			}
			if p.Organization <= p.RoutThreshold() {
				p.Rout()
				rec.Routed = append(rec.Routed, p.Army.ID)
			}
		}

		out.Ticks = tick
		out.Log = append(out.Log, rec)

		if !attacker.Alive() {
			out.Winner = SideDefenders
			out.Reason = entity.ReasonAttackerRouted
			return out
		}
		if len(livingOf(defenders)) == 0 {
			out.Winner = SideAttacker
			out.Reason = entity.ReasonDefendersRouted
			return out
		}
	}

	// Degenerate openings: one side already routed or zeroed before any
	// tick could run.
	if out.Ticks == 0 {
		if !attacker.Alive() {
			out.Winner = SideDefenders
			out.Reason = entity.ReasonAttackerRouted
			return out
		}
		if len(livingOf(defenders)) == 0 {
			out.Winner = SideAttacker
			out.Reason = entity.ReasonDefendersRouted
			return out
		}
	}

	out.Winner = SideNone
	out.Reason = entity.ReasonTickCap
	out.BetterPositioned = betterPositioned(attacker, defenders)
	return out
}

// attackRound applies the three damage tiers for one round against a target
// aggregate and returns the tier name with the aggregate losses.
func attackRound(ratio, attack, targetDefense, targetOrg, targetManpower, perUnit float64) (string, Losses) {
	if perUnit <= 0 {
		perUnit = 1
	}

	switch {
	case ratio >= directRatio:
		orgDamage := targetOrg * directOrgDamagePct
		casualties := orgDamage / perUnit
		return TierBreakthrough, Losses{
			Organization: orgDamage,
			Casualties:   casualties,
			Equipment:    casualties * directEquipmentFactor,
		}
	case ratio >= partialRatio:
		orgDamage := targetOrg * partialOrgDamagePct
		casualties := orgDamage / perUnit
		return TierPartial, Losses{
			Organization: orgDamage,
			Casualties:   casualties,
			Equipment:    casualties * partialEquipmentFactor,
		}
	default:
		baseDamage := attack * maxFloat(0, 1-targetDefense/defenseSoften)
		orgDamage := baseDamage * grindOrgDamagePct
		return TierGrind, Losses{
			Organization: orgDamage,
			Casualties:   orgDamage / perUnit,
			Equipment:    targetManpower * grindAttritionPct,
		}
	}
}

func livingOf(defenders []*Participant) []*Participant {
	living := make([]*Participant, 0, len(defenders))
	for _, d := range defenders {
		if d.Alive() {
			living = append(living, d)
		}
	}
	return living
}

func betterPositioned(attacker *Participant, defenders []*Participant) Side {
	var defenderOrg float64
	for _, d := range defenders {
		defenderOrg += d.Organization
	}
	if attacker.Organization > defenderOrg {
		return SideAttacker
	}
	return SideDefenders
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
