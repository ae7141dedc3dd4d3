package combat

import (
	"testing"

	"Ironmarch/internal/battle/entity"
)

func TestApplyLossesBounds(t *testing.T) {
	t.Run("nothing goes negative", func(t *testing.T) {
		p := &Participant{Organization: 100, Manpower: 50, Equipment: 40}
		p.ApplyLosses(1e9, 1e9, 1e9)
		if p.Organization != 0 || p.Manpower != 0 || p.Equipment != 0 {
			t.Fatalf("got org=%v mp=%v eq=%v, want zeros", p.Organization, p.Manpower, p.Equipment)
		}
	})

	t.Run("equipment capped at manpower", func(t *testing.T) {
		p := &Participant{Organization: 500, Manpower: 100, Equipment: 80}
		p.ApplyLosses(0, 50, 0)
		if !almostEqual(p.Manpower, 50) {
			t.Errorf("manpower = %v, want 50", p.Manpower)
		}
		if !almostEqual(p.Equipment, 50) {
			t.Errorf("equipment = %v, want 50 (capped at manpower)", p.Equipment)
		}
	})

	t.Run("organization capped at equipment ceiling", func(t *testing.T) {
		p := &Participant{Organization: 600, Manpower: 100, Equipment: 80}
		p.ApplyLosses(0, 0, 30)
		if !almostEqual(p.Equipment, 50) {
			t.Errorf("equipment = %v, want 50", p.Equipment)
		}
		if !almostEqual(p.Organization, 500) {
			t.Errorf("organization = %v, want 500 (equipment ceiling)", p.Organization)
		}
	})
}

func TestRoutPenalty(t *testing.T) {
	p := &Participant{
		InitialOrganization: 1000,
		Organization:        100,
		Manpower:            150,
		Equipment:           100,
	}

	p.Rout()

	// Threshold 200, deficit 100, one casualty per 10 organization.
	if !almostEqual(p.Manpower, 140) {
		t.Errorf("manpower = %v, want 140", p.Manpower)
	}
	if !almostEqual(p.Equipment, 70) {
		t.Errorf("equipment = %v, want 70 (30%% destroyed)", p.Equipment)
	}
	if p.Organization != 0 {
		t.Errorf("organization = %v, want 0", p.Organization)
	}
	if !p.Routed || p.Alive() {
		t.Error("routed participant must be out of the fight")
	}
}

func TestAliveSemantics(t *testing.T) {
	tests := []struct {
		name string
		p    *Participant
		want bool
	}{
		{"nil participant", nil, false},
		{"standing", &Participant{Organization: 10}, true},
		{"zero organization", &Participant{Organization: 0}, false},
		{"routed", &Participant{Organization: 10, Routed: true}, false},
	}
	for _, tt := range tests {
		if got := tt.p.Alive(); got != tt.want {
			t.Errorf("%s: Alive() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNewParticipantSnapshot(t *testing.T) {
	a := &entity.Army{ID: 1, Manpower: 300, Organization: 1200}
	a.SetEquipmentCount(entity.EquipmentInfantry, 150)

	p := NewParticipant(a)

	if p.InitialOrganization != 1200 || p.Organization != 1200 {
		t.Errorf("organization snapshot = %v/%v, want 1200/1200", p.InitialOrganization, p.Organization)
	}
	if p.Manpower != 300 || p.Equipment != 150 {
		t.Errorf("manpower/equipment = %v/%v, want 300/150", p.Manpower, p.Equipment)
	}
	if !almostEqual(p.RoutThreshold(), 240) {
		t.Errorf("rout threshold = %v, want 240", p.RoutThreshold())
	}
}
