package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"Ironmarch/internal/battle/entity"
	"Ironmarch/internal/battle/errs"
)

const defaultReportCollectionName = "battle_report"

const (
	OpSaveReport     = "repo.report.Save"
	OpRecentByRegion = "repo.report.RecentByRegion"
)

// ReportRepo archives immutable battle reports. Reports are inserted once
// and never replaced.
type ReportRepo struct {
	coll *mongo.Collection
}

func NewReportRepo(db *mongo.Database) *ReportRepo {
	if db == nil {
		return &ReportRepo{}
	}
	return &ReportRepo{coll: db.Collection(defaultReportCollectionName)}
}

func (r *ReportRepo) Save(ctx context.Context, report *entity.BattleReport) error {
	if report == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errs.Wrap(OpSaveReport, errs.KindInfra, errors.New("mongodb report collection is nil"), nil)
	}

	if _, err := r.coll.InsertOne(ctx, report); err != nil {
		return errs.Wrap(OpSaveReport, errs.KindInfra, err, map[string]any{"report_id": report.ID})
	}
	return nil
}

func (r *ReportRepo) RecentByRegion(ctx context.Context, region entity.RegionID, limit int) ([]*entity.BattleReport, error) {
	if r == nil || r.coll == nil {
		return nil, errs.Wrap(OpRecentByRegion, errs.KindInfra, errors.New("mongodb report collection is nil"), nil)
	}
	if limit <= 0 {
		limit = 20
	}

	cur, err := r.coll.Find(ctx,
		bson.M{"region": int64(region)},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, errs.Wrap(OpRecentByRegion, errs.KindInfra, err, map[string]any{"region_id": region})
	}
	defer func() {
		_ = cur.Close(ctx)
	}()

	var reports []*entity.BattleReport
	if err := cur.All(ctx, &reports); err != nil {
		return nil, errs.Wrap(OpRecentByRegion, errs.KindInfra, err, map[string]any{"region_id": region})
	}
	return reports, nil
}
