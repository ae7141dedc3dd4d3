package app

import (
	"context"

	"go.uber.org/zap"

	"Ironmarch/internal/battle/app/port"
	"Ironmarch/internal/battle/combat"
	"Ironmarch/internal/battle/entity"
	"Ironmarch/internal/battle/errs"
	"Ironmarch/internal/shared/logs"
)

const OpHandleArrival = "app.arrival.HandleArrival"

// ArrivalService is the single entry point the movement scheduler calls when
// an army's travel timer elapses. It tolerates duplicate and stale triggers.
type ArrivalService struct {
	armies  port.ArmyRepository
	regions port.RegionRepository

	engine     *combat.Engine
	settlement *Settlement
}

func NewArrivalService(armies port.ArmyRepository, regions port.RegionRepository, engine *combat.Engine, settlement *Settlement) *ArrivalService {
	return &ArrivalService{
		armies:     armies,
		regions:    regions,
		engine:     engine,
		settlement: settlement,
	}
}

// HandleArrival resolves one army's arrival at its destination: either a
// combat encounter against the hostile garrison, or a peaceful relocation
// with an ownership transfer when the cell belonged to someone else.
//
// A nil report with a nil error means the arrival resolved without combat.
func (s *ArrivalService) HandleArrival(ctx context.Context, armyID entity.ArmyID) (*entity.BattleReport, error) {
	a, err := s.armies.GetArmy(ctx, armyID)
	if err != nil {
		// Missing record: nothing is mutated, the operator gets a log line.
		logs.Error("arrival: load army failed", zap.Int64("army_id", int64(armyID)), zap.Error(err))
		return nil, errs.Wrap(OpHandleArrival, kindFor(err), err, map[string]any{"army_id": armyID})
	}

	if a.Status != entity.StatusMarching || !a.HasMarchOrders() {
		// Duplicate or stale trigger. Reset defensively, start no combat.
		logs.Warn("arrival: stale trigger, resetting army to garrison",
			zap.Int64("army_id", int64(armyID)),
			zap.String("status", a.Status.String()),
		)
		a.ResetToGarrison()
		if err := s.armies.SaveArmy(ctx, a); err != nil {
			return nil, errs.Wrap(OpHandleArrival, errs.KindInfra, err, map[string]any{"army_id": armyID})
		}
		return nil, nil
	}

	dest := a.Destination
	region, err := s.regions.GetRegion(ctx, dest)
	if err != nil {
		logs.Error("arrival: load destination failed",
			zap.Int64("army_id", int64(armyID)),
			zap.Int64("region_id", int64(dest)),
			zap.Error(err),
		)
		return nil, errs.Wrap(OpHandleArrival, kindFor(err), err, map[string]any{"region_id": dest})
	}

	garrison, err := s.armies.GarrisonedAt(ctx, dest)
	if err != nil {
		return nil, errs.Wrap(OpHandleArrival, errs.KindInfra, err, map[string]any{"region_id": dest})
	}

	hostiles := make([]*entity.Army, 0, len(garrison))
	for _, g := range garrison {
		if g.ID == a.ID {
			continue
		}
		if hostileTo(a, g, region) {
			hostiles = append(hostiles, g)
		}
	}

	if len(hostiles) == 0 {
		return nil, s.relocate(ctx, a, region)
	}
	return s.fight(ctx, a, hostiles, region)
}

// hostileTo classifies one garrisoned defender against the arriving army:
// everyone fights over an unowned cell, factions fight each other, and a
// factionless army is hostile to every owned cell.
func hostileTo(mover, defender *entity.Army, region *entity.Region) bool {
	if region.Owner == 0 {
		return true
	}
	if mover.Faction != 0 && mover.Faction != defender.Faction {
		return true
	}
	if mover.Faction == 0 {
		return true
	}
	return false
}

func (s *ArrivalService) relocate(ctx context.Context, a *entity.Army, region *entity.Region) error {
	a.Relocate(region.ID)
	if err := s.armies.SaveArmy(ctx, a); err != nil {
		return errs.Wrap(OpHandleArrival, errs.KindInfra, err, map[string]any{"army_id": a.ID})
	}

	// Occupation by unopposed entry.
	if a.Faction != 0 && region.Owner != a.Faction {
		if err := s.regions.SetOwner(ctx, region.ID, a.Faction); err != nil {
			return errs.Wrap(OpHandleArrival, errs.KindInfra, err, map[string]any{"region_id": region.ID})
		}
		logs.Info("region occupied without contest",
			zap.Int64("region_id", int64(region.ID)),
			zap.Int64("old_owner", int64(region.Owner)),
			zap.Int64("new_owner", int64(a.Faction)),
		)
	}

	logs.Info("army arrived peacefully",
		zap.Int64("army_id", int64(a.ID)),
		zap.Int64("region_id", int64(region.ID)),
	)
	return nil
}

func (s *ArrivalService) fight(ctx context.Context, a *entity.Army, hostiles []*entity.Army, region *entity.Region) (*entity.BattleReport, error) {
	attacker := combat.NewParticipant(a)
	defenders := make([]*combat.Participant, 0, len(hostiles))
	for _, h := range hostiles {
		defenders = append(defenders, combat.NewParticipant(h))
	}

	// The garrison may have moved away between classification and here
	// (a concurrent relocation). Abort instead of fighting ghosts.
	if len(defenders) == 0 {
		a.ResetToGarrison()
		if err := s.armies.SaveArmy(ctx, a); err != nil {
			return nil, errs.Wrap(OpHandleArrival, errs.KindInfra, err, map[string]any{"army_id": a.ID})
		}
		return nil, nil
	}

	fighting := append([]*entity.Army{a}, hostiles...)
	for _, f := range fighting {
		f.Status = entity.StatusFighting
	}
	if err := s.armies.SaveArmies(ctx, fighting); err != nil {
		return nil, errs.Wrap(OpHandleArrival, errs.KindInfra, err, map[string]any{"region_id": region.ID})
	}

	logs.Info("combat started",
		zap.Int64("attacker", int64(a.ID)),
		zap.Int("defenders", len(defenders)),
		zap.Int64("region_id", int64(region.ID)),
		zap.String("terrain", region.Terrain.String()),
	)

	outcome := s.engine.Resolve(attacker, defenders, region.Terrain)
	return s.settlement.Settle(ctx, region, attacker, defenders, outcome)
}
