package combat

import (
	"math"
	"testing"

	"Ironmarch/internal/battle/entity"
)

const floatTolerance = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= floatTolerance
}

func TestAttackRoundTiers(t *testing.T) {
	tests := []struct {
		name           string
		ratio          float64
		attack         float64
		targetDefense  float64
		targetOrg      float64
		targetManpower float64
		wantTier       string
		wantOrg        float64
		wantCasualties float64
		wantEquipment  float64
	}{
		{
			name:           "breakthrough at ratio 1.0",
			ratio:          1.0,
			attack:         5000,
			targetDefense:  5000,
			targetOrg:      1000,
			targetManpower: 500,
			wantTier:       TierBreakthrough,
			wantOrg:        300,
			wantCasualties: 30,
			wantEquipment:  45,
		},
		{
			name:           "partial at ratio 0.7",
			ratio:          0.7,
			attack:         5000,
			targetDefense:  5000,
			targetOrg:      1000,
			targetManpower: 500,
			wantTier:       TierPartial,
			wantOrg:        150,
			wantCasualties: 15,
			wantEquipment:  25.5,
		},
		{
			name:           "grind below ratio 0.5",
			ratio:          0.3,
			attack:         1000,
			targetDefense:  1500,
			targetOrg:      1000,
			targetManpower: 400,
			wantTier:       TierGrind,
			wantOrg:        100,
			wantCasualties: 10,
			wantEquipment:  20,
		},
		{
			name:           "grind against hardened defense does no damage",
			ratio:          0.1,
			attack:         1000,
			targetDefense:  4000,
			targetOrg:      1000,
			targetManpower: 400,
			wantTier:       TierGrind,
			wantOrg:        0,
			wantCasualties: 0,
			wantEquipment:  20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, losses := attackRound(tt.ratio, tt.attack, tt.targetDefense, tt.targetOrg, tt.targetManpower, 10)
			if tier != tt.wantTier {
				t.Fatalf("tier = %s, want %s", tier, tt.wantTier)
			}
			if !almostEqual(losses.Organization, tt.wantOrg) {
				t.Errorf("organization loss = %v, want %v", losses.Organization, tt.wantOrg)
			}
			if !almostEqual(losses.Casualties, tt.wantCasualties) {
				t.Errorf("casualties = %v, want %v", losses.Casualties, tt.wantCasualties)
			}
			if !almostEqual(losses.Equipment, tt.wantEquipment) {
				t.Errorf("equipment loss = %v, want %v", losses.Equipment, tt.wantEquipment)
			}
		})
	}
}

func TestDistributeProportionalToOrganization(t *testing.T) {
	d1 := &Participant{Organization: 600, Manpower: 1000, Equipment: 500, InitialOrganization: 600}
	d2 := &Participant{Organization: 400, Manpower: 1000, Equipment: 500, InitialOrganization: 400}

	Distribute(Losses{Organization: 300, Casualties: 30, Equipment: 45}, []*Participant{d1, d2})

	if !almostEqual(d1.Organization, 420) {
		t.Errorf("d1 organization = %v, want 420", d1.Organization)
	}
	if !almostEqual(d2.Organization, 280) {
		t.Errorf("d2 organization = %v, want 280", d2.Organization)
	}
	if !almostEqual(d1.Manpower, 982) {
		t.Errorf("d1 manpower = %v, want 982", d1.Manpower)
	}
	if !almostEqual(d2.Manpower, 988) {
		t.Errorf("d2 manpower = %v, want 988", d2.Manpower)
	}
}

func TestDistributeSkipsRoutedMembers(t *testing.T) {
	alive := &Participant{Organization: 500, Manpower: 800, Equipment: 400, InitialOrganization: 500}
	routed := &Participant{Organization: 0, Manpower: 800, Equipment: 400, Routed: true}

	Distribute(Losses{Organization: 100, Casualties: 10, Equipment: 15}, []*Participant{alive, routed})

	if !almostEqual(alive.Organization, 400) {
		t.Errorf("alive organization = %v, want 400", alive.Organization)
	}
	if !almostEqual(routed.Manpower, 800) {
		t.Errorf("routed member took casualties: manpower = %v", routed.Manpower)
	}
}

func newTestArmy(id entity.ArmyID, faction entity.FactionID, manpower, equipment int, org float64) *entity.Army {
	a := &entity.Army{
		ID:           id,
		Faction:      faction,
		Manpower:     manpower,
		Organization: org,
		Status:       entity.StatusGarrisoned,
	}
	a.SetEquipmentCount(entity.EquipmentInfantry, equipment)
	return a
}

func TestResolveAttackerOverwhelms(t *testing.T) {
	attacker := NewParticipant(newTestArmy(1, 10, 1200, 1000, 9000))
	defender := NewParticipant(newTestArmy(2, 20, 100, 50, 500))

	out := NewEngine(0).Resolve(attacker, []*Participant{defender}, entity.TerrainPlain)

	if out.Winner != SideAttacker {
		t.Fatalf("winner = %v, want attacker", out.Winner)
	}
	if out.Reason != entity.ReasonDefendersRouted {
		t.Errorf("reason = %q, want %q", out.Reason, entity.ReasonDefendersRouted)
	}
	if !defender.Routed || defender.Organization != 0 {
		t.Errorf("defender not routed: routed=%v org=%v", defender.Routed, defender.Organization)
	}
	if !attacker.Alive() {
		t.Error("attacker should survive the encounter")
	}
	if out.Ticks < 1 || len(out.Log) != out.Ticks {
		t.Errorf("log has %d records for %d ticks", len(out.Log), out.Ticks)
	}
}

func TestResolveAttackerRouted(t *testing.T) {
	attacker := NewParticipant(newTestArmy(1, 10, 100, 50, 500))
	defender := NewParticipant(newTestArmy(2, 20, 1200, 1000, 9000))

	out := NewEngine(0).Resolve(attacker, []*Participant{defender}, entity.TerrainPlain)

	if out.Winner != SideDefenders {
		t.Fatalf("winner = %v, want defenders", out.Winner)
	}
	if out.Reason != entity.ReasonAttackerRouted {
		t.Errorf("reason = %q, want %q", out.Reason, entity.ReasonAttackerRouted)
	}
	if !attacker.Routed {
		t.Error("attacker should be routed")
	}
	if defender.Routed {
		t.Error("defender should still stand")
	}
}

func TestResolveStalemateAtTickCap(t *testing.T) {
	// Matched sides whose defense exceeds the grind soften point deal no
	// organization damage, only slow equipment attrition. Neither routs
	// within a short cap.
	attacker := NewParticipant(newTestArmy(1, 10, 200, 200, 2000))
	defender := NewParticipant(newTestArmy(2, 20, 200, 200, 2000))

	out := NewEngine(5).Resolve(attacker, []*Participant{defender}, entity.TerrainPlain)

	if out.Winner != SideNone {
		t.Fatalf("winner = %v, want none", out.Winner)
	}
	if out.Reason != entity.ReasonTickCap {
		t.Errorf("reason = %q, want %q", out.Reason, entity.ReasonTickCap)
	}
	if out.Ticks != 5 {
		t.Errorf("ticks = %d, want 5", out.Ticks)
	}

	// Five ticks of 5% attrition against 200 manpower: 10 equipment per
	// tick, organization follows the shrinking ceiling.
	if !almostEqual(attacker.Equipment, 150) || !almostEqual(defender.Equipment, 150) {
		t.Errorf("equipment = %v / %v, want 150 / 150", attacker.Equipment, defender.Equipment)
	}
	if !almostEqual(attacker.Organization, 1500) || !almostEqual(defender.Organization, 1500) {
		t.Errorf("organization = %v / %v, want 1500 / 1500", attacker.Organization, defender.Organization)
	}
	if attacker.Routed || defender.Routed {
		t.Error("no side should rout before the cap")
	}
	if out.BetterPositioned == SideNone {
		t.Error("stalemate should still name the better positioned side")
	}
}

func TestResolveDegenerateOpenings(t *testing.T) {
	t.Run("zeroed attacker loses without a tick", func(t *testing.T) {
		attacker := NewParticipant(newTestArmy(1, 10, 0, 0, 0))
		defender := NewParticipant(newTestArmy(2, 20, 100, 50, 500))

		out := NewEngine(0).Resolve(attacker, []*Participant{defender}, entity.TerrainPlain)
		if out.Winner != SideDefenders || out.Ticks != 0 {
			t.Fatalf("winner = %v ticks = %d, want defenders at tick 0", out.Winner, out.Ticks)
		}
	})

	t.Run("zeroed garrison loses without a tick", func(t *testing.T) {
		attacker := NewParticipant(newTestArmy(1, 10, 100, 50, 500))
		defender := NewParticipant(newTestArmy(2, 20, 0, 0, 0))

		out := NewEngine(0).Resolve(attacker, []*Participant{defender}, entity.TerrainPlain)
		if out.Winner != SideAttacker || out.Ticks != 0 {
			t.Fatalf("winner = %v ticks = %d, want attacker at tick 0", out.Winner, out.Ticks)
		}
	})
}
