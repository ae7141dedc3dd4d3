package entity

import "errors"

var (
	ErrArmyNotFound   = errors.New("army not found")
	ErrRegionNotFound = errors.New("region not found")

	// ErrArmyBusy rejects a dispatch while the army is marching, fighting
	// or otherwise unable to receive new orders.
	ErrArmyBusy = errors.New("army cannot take march orders in its current status")

	// ErrImpassableTerrain rejects a march whose effective speed is not
	// positive (ocean cells for land forces).
	ErrImpassableTerrain = errors.New("destination terrain is impassable")

	// ErrNotRegroupable is returned when regroup is requested for an army
	// that is neither retreating nor stuck in a stalemate.
	ErrNotRegroupable = errors.New("army is not retreating or stalled")
)
