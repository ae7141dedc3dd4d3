package schedule

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"Ironmarch/internal/battle/entity"
	"Ironmarch/internal/shared/logs"
)

// ArrivalFunc is invoked once when an army's march timer elapses.
type ArrivalFunc func(ctx context.Context, id entity.ArmyID)

// MarchTimers keeps one timer per marching army. Scheduling an army that
// already has a pending timer replaces it, so re-dispatch never double fires.
// Timers live in memory only. On boot the caller re-seeds them from armies
// persisted with march orders.
type MarchTimers struct {
	mu      sync.Mutex
	pending map[entity.ArmyID]*timerEntry
	onFire  ArrivalFunc
	closed  bool
}

type timerEntry struct {
	timer    *time.Timer
	expireAt time.Time
}

func NewMarchTimers(onFire ArrivalFunc) *MarchTimers {
	return &MarchTimers{
		pending: make(map[entity.ArmyID]*timerEntry),
		onFire:  onFire,
	}
}

func (m *MarchTimers) Schedule(id entity.ArmyID, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	if e, ok := m.pending[id]; ok {
		e.timer.Stop()
	}

	d := time.Until(at)
	if d < 0 {
		d = 0
	}
	m.pending[id] = &timerEntry{
		expireAt: at,
		timer: time.AfterFunc(d, func() {
			m.fire(id)
		}),
	}
	logs.Debug("march timer armed",
		zap.Int64("army_id", int64(id)),
		zap.Time("arrival_at", at),
	)
}

func (m *MarchTimers) Cancel(id entity.ArmyID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.pending[id]; ok {
		e.timer.Stop()
		delete(m.pending, id)
	}
}

// Stop cancels every pending timer. Further Schedule calls are ignored.
func (m *MarchTimers) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	for id, e := range m.pending {
		e.timer.Stop()
		delete(m.pending, id)
	}
}

func (m *MarchTimers) fire(id entity.ArmyID) {
	m.mu.Lock()
	_, ok := m.pending[id]
	if ok {
		delete(m.pending, id)
	}
	onFire := m.onFire
	closed := m.closed
	m.mu.Unlock()

	if !ok || closed || onFire == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	onFire(ctx, id)
}

// Pending reports whether the army still has an armed timer.
func (m *MarchTimers) Pending(id entity.ArmyID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.pending[id]
	return ok
}
