package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"Ironmarch/internal/battle/app/port"
	"Ironmarch/internal/battle/entity"
	"Ironmarch/internal/battle/errs"
	"Ironmarch/internal/shared/gameconfig/military"
	"Ironmarch/internal/shared/logs"
)

const (
	OpDispatch = "app.march.Dispatch"
	OpRegroup  = "app.march.Regroup"
)

// MarchService issues march orders and the post-battle regroup transition.
type MarchService struct {
	armies    port.ArmyRepository
	regions   port.RegionRepository
	scheduler port.MarchScheduler

	baseMarchMinutes int
	now              func() time.Time
}

func NewMarchService(armies port.ArmyRepository, regions port.RegionRepository, scheduler port.MarchScheduler, baseMarchMinutes int) *MarchService {
	if baseMarchMinutes <= 0 {
		baseMarchMinutes = 90
	}
	return &MarchService{
		armies:           armies,
		regions:          regions,
		scheduler:        scheduler,
		baseMarchMinutes: baseMarchMinutes,
		now:              time.Now,
	}
}

// Dispatch validates the order, computes the travel time from the
// destination terrain and registers the arrival timer. The returned time is
// the expected arrival.
func (s *MarchService) Dispatch(ctx context.Context, armyID entity.ArmyID, dest entity.RegionID) (time.Time, error) {
	a, err := s.armies.GetArmy(ctx, armyID)
	if err != nil {
		return time.Time{}, errs.Wrap(OpDispatch, kindFor(err), err, map[string]any{"army_id": armyID})
	}

	switch a.Status {
	case entity.StatusGarrisoned, entity.StatusDefending, entity.StatusOccupying, entity.StatusIdle:
	default:
		return time.Time{}, entity.ErrArmyBusy
	}

	region, err := s.regions.GetRegion(ctx, dest)
	if err != nil {
		return time.Time{}, errs.Wrap(OpDispatch, kindFor(err), err, map[string]any{"region_id": dest})
	}

	duration, err := s.TravelDuration(region.Terrain)
	if err != nil {
		return time.Time{}, err
	}

	arrival := s.now().Add(duration)
	a.BeginMarch(dest, arrival)
	if err := s.armies.SaveArmy(ctx, a); err != nil {
		return time.Time{}, errs.Wrap(OpDispatch, errs.KindInfra, err, map[string]any{"army_id": armyID})
	}
	s.scheduler.Schedule(a.ID, arrival)

	logs.Info("army dispatched",
		zap.Int64("army_id", int64(a.ID)),
		zap.Int64("dest", int64(dest)),
		zap.Time("arrival", arrival),
	)
	return arrival, nil
}

// TravelDuration applies the terrain march-speed modifier to the base march
// time. A non-positive effective speed means impassable terrain and is
// rejected before dispatch.
func (s *MarchService) TravelDuration(terrain entity.Terrain) (time.Duration, error) {
	mod, ok := military.TerrainConf.Modifier(terrain.String())
	if !ok {
		return 0, entity.ErrImpassableTerrain
	}
	speed := 1 + mod.MarchSpeed
	if speed <= 0 {
		return 0, entity.ErrImpassableTerrain
	}
	minutes := float64(s.baseMarchMinutes) / speed
	return time.Duration(minutes * float64(time.Minute)), nil
}

// Regroup completes the post-battle transition: a retreating or stalled army
// returns to garrison.
func (s *MarchService) Regroup(ctx context.Context, armyID entity.ArmyID) error {
	a, err := s.armies.GetArmy(ctx, armyID)
	if err != nil {
		return errs.Wrap(OpRegroup, kindFor(err), err, map[string]any{"army_id": armyID})
	}

	switch a.Status {
	case entity.StatusRetreating, entity.StatusStalemate:
	default:
		return entity.ErrNotRegroupable
	}

	a.Status = entity.StatusGarrisoned
	if err := s.armies.SaveArmy(ctx, a); err != nil {
		return errs.Wrap(OpRegroup, errs.KindInfra, err, map[string]any{"army_id": armyID})
	}
	return nil
}
