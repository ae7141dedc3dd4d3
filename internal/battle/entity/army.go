package entity

import "time"

type ArmyID int64
type RegionID int64

// FactionID 0 means factionless / unowned.
type FactionID int64

type EquipmentType int8

const (
	EquipmentInfantry EquipmentType = 1
)

type ArmyStatus int8

const (
	StatusGarrisoned ArmyStatus = iota
	StatusMarching
	StatusFighting
	StatusDefending
	StatusOccupying
	StatusRetreating
	StatusStalemate
	StatusIdle
)

func (s ArmyStatus) String() string {
	switch s {
	case StatusGarrisoned:
		return "garrisoned"
	case StatusMarching:
		return "marching"
	case StatusFighting:
		return "fighting"
	case StatusDefending:
		return "defending"
	case StatusOccupying:
		return "occupying"
	case StatusRetreating:
		return "retreating"
	case StatusStalemate:
		return "stalemate"
	case StatusIdle:
		return "idle"
	}
	return "unknown"
}

// Army is a mobile military unit. An army is in at most one live combat
// encounter at any instant; Destination and ArrivalAt are set and cleared
// together.
type Army struct {
	ID           ArmyID
	Name         string
	Faction      FactionID
	Location     RegionID
	Manpower     int
	Equipment    map[EquipmentType]int
	Organization float64
	Status       ArmyStatus

	Destination RegionID
	ArrivalAt   time.Time
}

func (a *Army) EquipmentCount(t EquipmentType) int {
	if a == nil || a.Equipment == nil {
		return 0
	}
	return a.Equipment[t]
}

func (a *Army) SetEquipmentCount(t EquipmentType, n int) {
	if a.Equipment == nil {
		a.Equipment = make(map[EquipmentType]int, 1)
	}
	if n < 0 {
		n = 0
	}
	a.Equipment[t] = n
}

// HasMarchOrders reports whether both march fields are set.
func (a *Army) HasMarchOrders() bool {
	return a != nil && a.Destination != 0 && !a.ArrivalAt.IsZero()
}

func (a *Army) BeginMarch(dest RegionID, arrival time.Time) {
	a.Status = StatusMarching
	a.Destination = dest
	a.ArrivalAt = arrival
}

func (a *Army) ClearMarchOrders() {
	a.Destination = 0
	a.ArrivalAt = time.Time{}
}

// ResetToGarrison is the defensive fallback for stale or duplicate arrival
// triggers: back to garrison at the current location, march orders cleared.
func (a *Army) ResetToGarrison() {
	a.Status = StatusGarrisoned
	a.ClearMarchOrders()
}

// Relocate moves the army to dest as its new garrison.
func (a *Army) Relocate(dest RegionID) {
	a.Location = dest
	a.Status = StatusGarrisoned
	a.ClearMarchOrders()
}
