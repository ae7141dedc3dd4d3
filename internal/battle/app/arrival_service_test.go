package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"Ironmarch/internal/battle/combat"
	"Ironmarch/internal/battle/entity"
)

func marchingArmy(id entity.ArmyID, faction entity.FactionID, manpower, equipment int, org float64, dest entity.RegionID) *entity.Army {
	a := testArmy(id, faction, manpower, equipment, org)
	a.BeginMarch(dest, time.Now())
	return a
}

func newArrivalService(armies *fakeArmyRepo, regions *fakeRegionRepo, archive *fakeArchive, notifier *fakeNotifier) *ArrivalService {
	settlement := newTestSettlement(armies, regions, archive, notifier)
	return NewArrivalService(armies, regions, combat.NewEngine(0), settlement)
}

func TestHandleArrivalPeacefulOccupation(t *testing.T) {
	mover := marchingArmy(1, 10, 500, 300, 2000, 7)
	armies := newFakeArmyRepo(mover)
	regions := newFakeRegionRepo(&entity.Region{ID: 7, Terrain: entity.TerrainPlain, Owner: 0})
	archive := &fakeArchive{}
	svc := newArrivalService(armies, regions, archive, &fakeNotifier{})

	report, err := svc.HandleArrival(context.Background(), 1)
	if err != nil {
		t.Fatalf("HandleArrival: %v", err)
	}
	if report != nil {
		t.Fatal("peaceful occupation must not produce a battle report")
	}
	if mover.Status != entity.StatusGarrisoned || mover.Location != 7 {
		t.Errorf("mover status=%v location=%v, want garrisoned at 7", mover.Status, mover.Location)
	}
	if mover.HasMarchOrders() {
		t.Error("march orders must be cleared on arrival")
	}
	if got := regions.regions[7].Owner; got != 10 {
		t.Errorf("region owner = %v, want 10", got)
	}
	if len(archive.saved) != 0 {
		t.Error("no report should be archived")
	}
}

func TestHandleArrivalFriendlyGarrisonNoCombat(t *testing.T) {
	mover := marchingArmy(1, 10, 500, 300, 2000, 7)
	friend := testArmy(2, 10, 400, 200, 1500)
	friend.Location = 7
	armies := newFakeArmyRepo(mover, friend)
	regions := newFakeRegionRepo(&entity.Region{ID: 7, Terrain: entity.TerrainPlain, Owner: 10})
	svc := newArrivalService(armies, regions, &fakeArchive{}, &fakeNotifier{})

	report, err := svc.HandleArrival(context.Background(), 1)
	if err != nil || report != nil {
		t.Fatalf("got report=%v err=%v, want peaceful arrival", report, err)
	}
	if regions.ownerChanges != 0 {
		t.Error("no ownership change among friends")
	}
	if friend.Status != entity.StatusGarrisoned {
		t.Errorf("friend status = %v, want garrisoned", friend.Status)
	}
}

func TestHandleArrivalStaleTrigger(t *testing.T) {
	a := testArmy(1, 10, 500, 300, 2000)
	a.Location = 3
	armies := newFakeArmyRepo(a)
	svc := newArrivalService(armies, newFakeRegionRepo(), &fakeArchive{}, &fakeNotifier{})

	report, err := svc.HandleArrival(context.Background(), 1)
	if err != nil || report != nil {
		t.Fatalf("got report=%v err=%v, want nil/nil", report, err)
	}
	if a.Status != entity.StatusGarrisoned || a.Location != 3 {
		t.Errorf("army status=%v location=%v, want garrisoned at 3", a.Status, a.Location)
	}
	if len(armies.saved) != 1 {
		t.Errorf("defensive reset should persist once, saved %d times", len(armies.saved))
	}
}

func TestHandleArrivalMissingArmy(t *testing.T) {
	svc := newArrivalService(newFakeArmyRepo(), newFakeRegionRepo(), &fakeArchive{}, &fakeNotifier{})

	_, err := svc.HandleArrival(context.Background(), 99)
	if !errors.Is(err, entity.ErrArmyNotFound) {
		t.Fatalf("err = %v, want ErrArmyNotFound", err)
	}
}

func TestHandleArrivalMissingRegion(t *testing.T) {
	mover := marchingArmy(1, 10, 500, 300, 2000, 7)
	svc := newArrivalService(newFakeArmyRepo(mover), newFakeRegionRepo(), &fakeArchive{}, &fakeNotifier{})

	_, err := svc.HandleArrival(context.Background(), 1)
	if !errors.Is(err, entity.ErrRegionNotFound) {
		t.Fatalf("err = %v, want ErrRegionNotFound", err)
	}
	if mover.Status != entity.StatusMarching {
		t.Errorf("army must stay untouched on load failure, status = %v", mover.Status)
	}
}

func TestHostileClassification(t *testing.T) {
	region := func(owner entity.FactionID) *entity.Region {
		return &entity.Region{ID: 1, Owner: owner}
	}
	army := func(faction entity.FactionID) *entity.Army {
		return &entity.Army{ID: 1, Faction: faction}
	}

	tests := []struct {
		name     string
		mover    entity.FactionID
		defender entity.FactionID
		owner    entity.FactionID
		want     bool
	}{
		{"unowned cell, same faction", 10, 10, 0, true},
		{"unowned cell, both factionless", 0, 0, 0, true},
		{"owned cell, different factions", 10, 20, 20, true},
		{"owned cell, same faction", 10, 10, 10, false},
		{"factionless mover on owned cell", 0, 10, 10, true},
		{"factionless defender on owned cell", 10, 0, 20, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hostileTo(army(tt.mover), army(tt.defender), region(tt.owner))
			if got != tt.want {
				t.Errorf("hostileTo = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandleArrivalCombatConquest(t *testing.T) {
	mover := marchingArmy(1, 10, 1200, 1000, 9000, 7)
	garrison := testArmy(2, 20, 100, 50, 500)
	garrison.Location = 7
	armies := newFakeArmyRepo(mover, garrison)
	regions := newFakeRegionRepo(&entity.Region{ID: 7, Terrain: entity.TerrainPlain, Owner: 20, Channel: "world"})
	archive := &fakeArchive{}
	notifier := &fakeNotifier{}
	svc := newArrivalService(armies, regions, archive, notifier)

	report, err := svc.HandleArrival(context.Background(), 1)
	if err != nil {
		t.Fatalf("HandleArrival: %v", err)
	}
	if report == nil {
		t.Fatal("combat arrival must produce a report")
	}
	if report.Reason != entity.ReasonDefendersRouted {
		t.Errorf("reason = %q, want %q", report.Reason, entity.ReasonDefendersRouted)
	}
	if report.WinnerID == nil || *report.WinnerID != 1 {
		t.Errorf("winner = %v, want army 1", report.WinnerID)
	}
	if mover.Status != entity.StatusOccupying || mover.Location != 7 {
		t.Errorf("attacker status=%v location=%v, want occupying at 7", mover.Status, mover.Location)
	}
	if garrison.Status != entity.StatusRetreating {
		t.Errorf("garrison status = %v, want retreating", garrison.Status)
	}
	if got := regions.regions[7].Owner; got != 10 {
		t.Errorf("region owner = %v, want 10", got)
	}
	if report.PriorOwner != 20 || report.NewOwner != 10 {
		t.Errorf("ownership in report = %v -> %v, want 20 -> 10", report.PriorOwner, report.NewOwner)
	}
	if len(archive.saved) != 1 {
		t.Fatalf("archived %d reports, want 1", len(archive.saved))
	}
	if len(notifier.published) != 1 || notifier.published[0].channel != "world" {
		t.Errorf("published = %+v, want one message on channel world", notifier.published)
	}
}

func TestHandleArrivalDefendersHold(t *testing.T) {
	mover := marchingArmy(1, 10, 100, 50, 500, 7)
	garrison := testArmy(2, 20, 1200, 1000, 9000)
	garrison.Location = 7
	armies := newFakeArmyRepo(mover, garrison)
	regions := newFakeRegionRepo(&entity.Region{ID: 7, Terrain: entity.TerrainPlain, Owner: 20})
	svc := newArrivalService(armies, regions, &fakeArchive{}, &fakeNotifier{})

	report, err := svc.HandleArrival(context.Background(), 1)
	if err != nil {
		t.Fatalf("HandleArrival: %v", err)
	}
	if report.Reason != entity.ReasonAttackerRouted {
		t.Errorf("reason = %q, want %q", report.Reason, entity.ReasonAttackerRouted)
	}
	if mover.Status != entity.StatusRetreating {
		t.Errorf("attacker status = %v, want retreating", mover.Status)
	}
	if garrison.Status != entity.StatusDefending {
		t.Errorf("garrison status = %v, want defending", garrison.Status)
	}
	if got := regions.regions[7].Owner; got != 20 {
		t.Errorf("region owner = %v, want unchanged 20", got)
	}
}
