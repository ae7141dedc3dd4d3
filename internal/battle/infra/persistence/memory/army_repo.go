package memory

import (
	"context"
	"sync"

	"Ironmarch/internal/battle/entity"
)

// ArmyRepo is an in-memory army store used by tests and local development.
// It copies on read and write so callers never share record memory with the
// store, mirroring how the database-backed repo behaves.
type ArmyRepo struct {
	mu     sync.RWMutex
	armies map[entity.ArmyID]*entity.Army
}

func NewArmyRepo(seed ...*entity.Army) *ArmyRepo {
	r := &ArmyRepo{armies: make(map[entity.ArmyID]*entity.Army, len(seed))}
	for _, a := range seed {
		r.armies[a.ID] = cloneArmy(a)
	}
	return r
}

func (r *ArmyRepo) GetArmy(ctx context.Context, id entity.ArmyID) (*entity.Army, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.armies[id]
	if !ok {
		return nil, entity.ErrArmyNotFound
	}
	return cloneArmy(a), nil
}

func (r *ArmyRepo) GarrisonedAt(ctx context.Context, region entity.RegionID) ([]*entity.Army, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Army
	for _, a := range r.armies {
		if a.Location == region && a.Status == entity.StatusGarrisoned {
			out = append(out, cloneArmy(a))
		}
	}
	return out, nil
}

func (r *ArmyRepo) SaveArmy(ctx context.Context, a *entity.Army) error {
	_ = ctx
	if a == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.armies[a.ID] = cloneArmy(a)
	return nil
}

func (r *ArmyRepo) SaveArmies(ctx context.Context, armies []*entity.Army) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range armies {
		if a != nil {
			r.armies[a.ID] = cloneArmy(a)
		}
	}
	return nil
}

func cloneArmy(a *entity.Army) *entity.Army {
	c := *a
	c.Equipment = make(map[entity.EquipmentType]int, len(a.Equipment))
	for k, v := range a.Equipment {
		c.Equipment[k] = v
	}
	return &c
}
