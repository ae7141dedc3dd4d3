package app

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"Ironmarch/internal/battle/app/port"
	"Ironmarch/internal/battle/combat"
	"Ironmarch/internal/battle/entity"
	"Ironmarch/internal/battle/errs"
	"Ironmarch/internal/shared/logs"
	"Ironmarch/internal/shared/utils"
)

const OpSettle = "app.settlement.Settle"

// Settlement persists the final state of every participant, transfers
// territorial ownership when warranted and emits the immutable report.
// Persistence failures are surfaced to the caller, which owns retry policy;
// a failed notification is only logged since the report is already archived.
type Settlement struct {
	armies   port.ArmyRepository
	regions  port.RegionRepository
	archive  port.ReportArchive
	notifier port.Notifier

	newID func() (int64, error)
	now   func() time.Time
}

func NewSettlement(armies port.ArmyRepository, regions port.RegionRepository, archive port.ReportArchive, notifier port.Notifier) *Settlement {
	return &Settlement{
		armies:   armies,
		regions:  regions,
		archive:  archive,
		notifier: notifier,
		newID:    utils.NextSnowflakeID,
		now:      time.Now,
	}
}

func (s *Settlement) Settle(ctx context.Context, region *entity.Region, attacker *combat.Participant, defenders []*combat.Participant, outcome *combat.Outcome) (*entity.BattleReport, error) {
	report := &entity.BattleReport{
		Region:     region.ID,
		Terrain:    region.Terrain.String(),
		Reason:     outcome.Reason,
		PriorOwner: region.Owner,
		NewOwner:   region.Owner,
		Ticks:      outcome.Ticks,
		Log:        outcome.Log,
		CreatedAt:  s.now(),
	}

	transfer := false
	switch outcome.Winner {
	case combat.SideAttacker:
		attacker.Army.Relocate(region.ID)
		if attacker.Army.Faction != 0 && attacker.Army.Faction != region.Owner {
			transfer = true
			attacker.Army.Status = entity.StatusOccupying
			report.NewOwner = attacker.Army.Faction
		}
		for _, d := range defenders {
			d.Army.Status = entity.StatusRetreating
			d.Army.ClearMarchOrders()
		}
		winner := attacker.Army.ID
		report.WinnerID = &winner

	case combat.SideDefenders:
		attacker.Army.Status = entity.StatusRetreating
		attacker.Army.ClearMarchOrders()
		var best *combat.Participant
		for _, d := range defenders {
			if d.Routed {
				d.Army.Status = entity.StatusRetreating
				continue
			}
			d.Army.Status = entity.StatusDefending
			if best == nil || d.Organization > best.Organization {
				best = d
			}
		}
		if best != nil {
			winner := best.Army.ID
			report.WinnerID = &winner
		}

	default:
		// Tick cap exhausted: both sides hold, status is stalemate for
		// everyone regardless of who looked better positioned.
		attacker.Army.Status = entity.StatusStalemate
		attacker.Army.ClearMarchOrders()
		for _, d := range defenders {
			if d.Routed {
				d.Army.Status = entity.StatusRetreating
				continue
			}
			d.Army.Status = entity.StatusStalemate
		}
	}

	report.Attacker = finalize(attacker)
	report.Defenders = make([]entity.ParticipantSummary, 0, len(defenders))
	all := make([]*entity.Army, 0, len(defenders)+1)
	all = append(all, attacker.Army)
	for _, d := range defenders {
		report.Defenders = append(report.Defenders, finalize(d))
		all = append(all, d.Army)
	}

	if err := s.armies.SaveArmies(ctx, all); err != nil {
		return nil, errs.Wrap(OpSettle, errs.KindInfra, err, map[string]any{"region_id": region.ID})
	}
	if transfer {
		if err := s.regions.SetOwner(ctx, region.ID, attacker.Army.Faction); err != nil {
			return nil, errs.Wrap(OpSettle, errs.KindInfra, err, map[string]any{"region_id": region.ID})
		}
		logs.Info("region conquered",
			zap.Int64("region_id", int64(region.ID)),
			zap.Int64("old_owner", int64(report.PriorOwner)),
			zap.Int64("new_owner", int64(report.NewOwner)),
		)
	}

	id, err := s.newID()
	if err != nil {
		return nil, errs.Wrap(OpSettle, errs.KindUnknown, err, nil)
	}
	report.ID = id
	if err := s.archive.Save(ctx, report); err != nil {
		return nil, errs.Wrap(OpSettle, errs.KindInfra, err, map[string]any{"report_id": id})
	}

	if err := s.notifier.Publish(ctx, region.Channel, report); err != nil {
		logs.Warn("battle report publish failed",
			zap.Int64("report_id", id),
			zap.String("channel", region.Channel),
			zap.Error(err),
		)
	}
	return report, nil
}

// finalize rounds the simulation floats back to integer record fields and
// re-applies the bounding rules after rounding.
func finalize(p *combat.Participant) entity.ParticipantSummary {
	a := p.Army

	manpower := int(math.Round(p.Manpower))
	equipment := int(math.Round(p.Equipment))
	organization := math.Round(p.Organization)
	if manpower < 0 {
		manpower = 0
	}
	if equipment > manpower {
		equipment = manpower
	}
	if ceiling := float64(equipment) * combat.OrganizationPerUnit(); organization > ceiling {
		organization = ceiling
	}
	if organization < 0 {
		organization = 0
	}

	initialEquipment := a.EquipmentCount(entity.EquipmentInfantry)
	initialManpower := a.Manpower

	a.Manpower = manpower
	a.SetEquipmentCount(entity.EquipmentInfantry, equipment)
	a.Organization = organization

	return entity.ParticipantSummary{
		ArmyID:              a.ID,
		Name:                a.Name,
		Faction:             a.Faction,
		InitialManpower:     initialManpower,
		FinalManpower:       manpower,
		InitialOrganization: p.InitialOrganization,
		FinalOrganization:   organization,
		InitialEquipment:    initialEquipment,
		FinalEquipment:      equipment,
		FinalStatus:         a.Status,
	}
}
