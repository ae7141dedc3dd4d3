package actors

import "Ironmarch/internal/battle/entity"

// Arrive asks the region actor to resolve one army's arrival.
type Arrive struct {
	ArmyID entity.ArmyID
}

// ArriveResult carries the settlement outcome back to the caller. Report is
// nil when the arrival resolved without combat.
type ArriveResult struct {
	Report *entity.BattleReport
	Err    error
}
