package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"Ironmarch/internal/battle/entity"
	"Ironmarch/internal/battle/errs"
	"Ironmarch/internal/battle/infra/persistence/mapper"
	"Ironmarch/internal/battle/infra/persistence/model"
)

type RegionRepo struct {
	db *gorm.DB
}

func NewRegionRepo(db *gorm.DB) *RegionRepo {
	return &RegionRepo{db: db}
}

const OpGetRegion = "repo.region.GetRegion"

func (r *RegionRepo) GetRegion(ctx context.Context, id entity.RegionID) (*entity.Region, error) {
	var m model.Region
	err := r.db.WithContext(ctx).Where("id = ?", int64(id)).First(&m).Error

	switch {
	case err == nil:
		return mapper.RegionModelToEntity(&m), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, entity.ErrRegionNotFound
	default:
		return nil, errs.Wrap(OpGetRegion, errs.KindInfra, err, map[string]any{"region_id": id})
	}
}

const OpSetOwner = "repo.region.SetOwner"

func (r *RegionRepo) SetOwner(ctx context.Context, id entity.RegionID, owner entity.FactionID) error {
	res := r.db.WithContext(ctx).
		Model(&model.Region{}).
		Where("id = ?", int64(id)).
		Update("owner_faction_id", int64(owner))
	if res.Error != nil {
		return errs.Wrap(OpSetOwner, errs.KindInfra, res.Error, map[string]any{"region_id": id})
	}
	return nil
}
