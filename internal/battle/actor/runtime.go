package actor

import (
	"context"
	"errors"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"

	"Ironmarch/internal/battle/actors"
	"Ironmarch/internal/battle/app"
	"Ironmarch/internal/battle/app/port"
	"Ironmarch/internal/battle/entity"
	"Ironmarch/internal/battle/errs"
)

const defaultAskTimeout = 35 * time.Second

const OpArrive = "actor.runtime.HandleArrival"

// Runtime owns the actor system that serializes combat per region. Callers
// treat it as a synchronous arrival resolver.
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	manager *protoactor.PID
	timeout time.Duration
}

func NewRuntime(armies port.ArmyRepository, arrivals *app.ArrivalService, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	managerProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(armies, arrivals)
	})
	manager := root.Spawn(managerProps)

	return &Runtime{
		system:  system,
		root:    root,
		manager: manager,
		timeout: askTimeout,
	}
}

func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.manager != nil {
		r.root.Stop(r.manager)
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

// HandleArrival resolves one army's arrival through the destination region's
// actor and waits for the settlement result.
func (r *Runtime) HandleArrival(ctx context.Context, id entity.ArmyID) (*entity.BattleReport, error) {
	future := r.root.RequestFuture(r.manager, &actors.Arrive{ArmyID: id}, r.timeoutFromContext(ctx))
	res, err := future.Result()
	if err != nil {
		return nil, errs.Wrap(OpArrive, errs.KindDependency, err, map[string]any{"army_id": id})
	}

	result, ok := res.(*actors.ArriveResult)
	if !ok || result == nil {
		return nil, errs.Wrap(OpArrive, errs.KindDependency, errors.New("unexpected arrival response"), map[string]any{"army_id": id})
	}
	return result.Report, result.Err
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}
