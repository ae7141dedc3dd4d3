package actors

import (
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"Ironmarch/internal/battle/app"
	"Ironmarch/internal/battle/entity"
)

const arrivalTimeout = 30 * time.Second

// RegionActor serializes every encounter that resolves inside one region.
// Two armies arriving at the same cell are settled one after the other, so
// the garrison snapshot each settlement reads is never mid-battle state.
type RegionActor struct {
	regionID entity.RegionID
	arrivals *app.ArrivalService
}

func NewRegionActor(regionID entity.RegionID, arrivals *app.ArrivalService) *RegionActor {
	return &RegionActor{
		regionID: regionID,
		arrivals: arrivals,
	}
}

func (p *RegionActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *Arrive:
		if msg == nil {
			ctx.Respond(&ArriveResult{Err: entity.ErrArmyNotFound})
			return
		}
		callCtx, cancel := context.WithTimeout(context.Background(), arrivalTimeout)
		defer cancel()

		report, err := p.arrivals.HandleArrival(callCtx, msg.ArmyID)
		ctx.Respond(&ArriveResult{Report: report, Err: err})
	default:
		return
	}
}
