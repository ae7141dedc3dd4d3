package port

import (
	"context"
	"time"

	"Ironmarch/internal/battle/entity"
)

// ArmyRepository is the army store contract. The store guarantees a single
// writer per record while a settlement is in flight.
type ArmyRepository interface {
	GetArmy(ctx context.Context, id entity.ArmyID) (*entity.Army, error)
	// GarrisonedAt lists armies currently garrisoned in the region.
	GarrisonedAt(ctx context.Context, region entity.RegionID) ([]*entity.Army, error)
	SaveArmy(ctx context.Context, a *entity.Army) error
	// SaveArmies persists every army or none of them.
	SaveArmies(ctx context.Context, armies []*entity.Army) error
}

type RegionRepository interface {
	GetRegion(ctx context.Context, id entity.RegionID) (*entity.Region, error)
	SetOwner(ctx context.Context, id entity.RegionID, owner entity.FactionID) error
}

// ReportArchive stores immutable battle reports.
type ReportArchive interface {
	Save(ctx context.Context, r *entity.BattleReport) error
	RecentByRegion(ctx context.Context, region entity.RegionID, limit int) ([]*entity.BattleReport, error)
}

// Notifier hands a structured report to the notification collaborator.
// Formatting to human-readable text happens on the other side.
type Notifier interface {
	Publish(ctx context.Context, channel string, report *entity.BattleReport) error
}

// MarchScheduler fires exactly one arrival callback per scheduled army at or
// after the given time. Durability across restarts is the scheduler's
// responsibility, not this service's.
type MarchScheduler interface {
	Schedule(id entity.ArmyID, at time.Time)
	Cancel(id entity.ArmyID)
}
