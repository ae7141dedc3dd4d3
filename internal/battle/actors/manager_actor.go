package actors

import (
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"Ironmarch/internal/battle/app"
	"Ironmarch/internal/battle/app/port"
	"Ironmarch/internal/battle/entity"
)

const routeLookupTimeout = 5 * time.Second

// ManagerActor routes each arrival to the actor owning the destination
// region, spawning region actors on first use.
type ManagerActor struct {
	armies       port.ArmyRepository
	arrivals     *app.ArrivalService
	regionActors map[entity.RegionID]*actor.PID
}

func NewManagerActor(armies port.ArmyRepository, arrivals *app.ArrivalService) *ManagerActor {
	return &ManagerActor{
		armies:       armies,
		arrivals:     arrivals,
		regionActors: make(map[entity.RegionID]*actor.PID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	req, ok := ctx.Message().(*Arrive)
	if !ok {
		return
	}
	if req == nil {
		ctx.Respond(&ArriveResult{Err: entity.ErrArmyNotFound})
		return
	}

	lookupCtx, cancel := context.WithTimeout(context.Background(), routeLookupTimeout)
	defer cancel()

	a, err := m.armies.GetArmy(lookupCtx, req.ArmyID)
	if err != nil {
		ctx.Respond(&ArriveResult{Err: err})
		return
	}

	// Stale triggers carry no destination. The region actor for the army's
	// current location still handles them, the service resets the army.
	dest := a.Destination
	if dest == 0 {
		dest = a.Location
	}
	ctx.Forward(m.getOrSpawn(ctx, dest))
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context, regionID entity.RegionID) *actor.PID {
	if pid, ok := m.regionActors[regionID]; ok && pid != nil {
		return pid
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewRegionActor(regionID, m.arrivals)
	})
	pid := ctx.Spawn(props)
	m.regionActors[regionID] = pid
	return pid
}
