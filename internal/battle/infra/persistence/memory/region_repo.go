package memory

import (
	"context"
	"sync"

	"Ironmarch/internal/battle/entity"
)

type RegionRepo struct {
	mu      sync.RWMutex
	regions map[entity.RegionID]*entity.Region
}

func NewRegionRepo(seed ...*entity.Region) *RegionRepo {
	r := &RegionRepo{regions: make(map[entity.RegionID]*entity.Region, len(seed))}
	for _, reg := range seed {
		c := *reg
		r.regions[reg.ID] = &c
	}
	return r
}

func (r *RegionRepo) GetRegion(ctx context.Context, id entity.RegionID) (*entity.Region, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.regions[id]
	if !ok {
		return nil, entity.ErrRegionNotFound
	}
	c := *reg
	return &c, nil
}

func (r *RegionRepo) SetOwner(ctx context.Context, id entity.RegionID, owner entity.FactionID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.regions[id]
	if !ok {
		return entity.ErrRegionNotFound
	}
	reg.Owner = owner
	return nil
}
