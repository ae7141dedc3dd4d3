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

type ArmyRepo struct {
	db *gorm.DB
}

func NewArmyRepo(db *gorm.DB) *ArmyRepo {
	return &ArmyRepo{db: db}
}

func (r *ArmyRepo) WithTx(tx *gorm.DB) *ArmyRepo {
	return &ArmyRepo{db: tx}
}

const OpGetArmy = "repo.army.GetArmy"

func (r *ArmyRepo) GetArmy(ctx context.Context, id entity.ArmyID) (*entity.Army, error) {
	var m model.Army
	err := r.db.WithContext(ctx).Where("id = ?", int64(id)).First(&m).Error

	switch {
	case err == nil:
		return mapper.ArmyModelToEntity(&m), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, entity.ErrArmyNotFound
	default:
		return nil, errs.Wrap(OpGetArmy, errs.KindInfra, err, map[string]any{"army_id": id})
	}
}

const OpGarrisonedAt = "repo.army.GarrisonedAt"

func (r *ArmyRepo) GarrisonedAt(ctx context.Context, region entity.RegionID) ([]*entity.Army, error) {
	var ms []model.Army
	err := r.db.WithContext(ctx).
		Where("location = ? AND status = ?", int64(region), int8(entity.StatusGarrisoned)).
		Find(&ms).Error
	if err != nil {
		return nil, errs.Wrap(OpGarrisonedAt, errs.KindInfra, err, map[string]any{"region_id": region})
	}

	armies := make([]*entity.Army, 0, len(ms))
	for i := range ms {
		armies = append(armies, mapper.ArmyModelToEntity(&ms[i]))
	}
	return armies, nil
}

const OpMarching = "repo.army.Marching"

// Marching lists armies persisted mid-march. Used at boot to re-arm arrival
// timers lost on restart.
func (r *ArmyRepo) Marching(ctx context.Context) ([]*entity.Army, error) {
	var ms []model.Army
	err := r.db.WithContext(ctx).
		Where("status = ?", int8(entity.StatusMarching)).
		Find(&ms).Error
	if err != nil {
		return nil, errs.Wrap(OpMarching, errs.KindInfra, err, nil)
	}

	armies := make([]*entity.Army, 0, len(ms))
	for i := range ms {
		armies = append(armies, mapper.ArmyModelToEntity(&ms[i]))
	}
	return armies, nil
}

const OpSaveArmy = "repo.army.SaveArmy"

func (r *ArmyRepo) SaveArmy(ctx context.Context, a *entity.Army) error {
	if a == nil {
		return nil
	}
	m := mapper.ArmyEntityToModel(a)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return errs.Wrap(OpSaveArmy, errs.KindInfra, err, map[string]any{"army_id": a.ID})
	}
	return nil
}

const OpSaveArmies = "repo.army.SaveArmies"

// SaveArmies writes every army in one transaction: the settlement of an
// encounter either lands completely or not at all.
func (r *ArmyRepo) SaveArmies(ctx context.Context, armies []*entity.Army) error {
	if len(armies) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := r.WithTx(tx)
		for _, a := range armies {
			if err := txRepo.SaveArmy(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errs.Wrap(OpSaveArmies, errs.KindInfra, err, map[string]any{"count": len(armies)})
	}
	return nil
}
