package entity

import "time"

// Battle result reasons, stable strings stored in the report archive.
const (
	ReasonAttackerRouted  = "attacker routed"
	ReasonDefendersRouted = "defenders routed"
	ReasonTickCap         = "stalemate: tick cap reached"
)

// TickRecord is one line of the per-tick combat log.
type TickRecord struct {
	Tick int `json:"tick" bson:"tick"`
	// Ratio is attacker breakthrough over combined defender defense.
	Ratio float64 `json:"ratio" bson:"ratio"`
	// Tier is the damage tier the attacker round fell into.
	Tier              string   `json:"tier" bson:"tier"`
	DefenderOrgDamage float64  `json:"defender_org_damage" bson:"defender_org_damage"`
	AttackerOrgDamage float64  `json:"attacker_org_damage" bson:"attacker_org_damage"`
	Routed            []ArmyID `json:"routed,omitempty" bson:"routed,omitempty"`
}

// ParticipantSummary captures one army's numbers at battle start and end.
type ParticipantSummary struct {
	ArmyID              ArmyID     `json:"army_id" bson:"army_id"`
	Name                string     `json:"name" bson:"name"`
	Faction             FactionID  `json:"faction" bson:"faction"`
	InitialManpower     int        `json:"initial_manpower" bson:"initial_manpower"`
	FinalManpower       int        `json:"final_manpower" bson:"final_manpower"`
	InitialOrganization float64    `json:"initial_organization" bson:"initial_organization"`
	FinalOrganization   float64    `json:"final_organization" bson:"final_organization"`
	InitialEquipment    int        `json:"initial_equipment" bson:"initial_equipment"`
	FinalEquipment      int        `json:"final_equipment" bson:"final_equipment"`
	FinalStatus         ArmyStatus `json:"final_status" bson:"final_status"`
}

// BattleReport is produced exactly once per encounter and never mutated
// afterwards. Formatting to human-readable text is an external concern.
type BattleReport struct {
	ID        int64                `json:"id" bson:"_id"`
	Region    RegionID             `json:"region" bson:"region"`
	Terrain   string               `json:"terrain" bson:"terrain"`
	Attacker  ParticipantSummary   `json:"attacker" bson:"attacker"`
	Defenders []ParticipantSummary `json:"defenders" bson:"defenders"`

	// WinnerID is unset on a stalemate. On a defender win it names the
	// defender with the most remaining organization.
	WinnerID *ArmyID `json:"winner_id,omitempty" bson:"winner_id,omitempty"`
	Reason   string  `json:"reason" bson:"reason"`

	// PriorOwner / NewOwner record an ownership transfer; equal values
	// mean the cell did not change hands.
	PriorOwner FactionID `json:"prior_owner" bson:"prior_owner"`
	NewOwner   FactionID `json:"new_owner" bson:"new_owner"`

	Ticks     int          `json:"ticks" bson:"ticks"`
	Log       []TickRecord `json:"log" bson:"log"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
}
