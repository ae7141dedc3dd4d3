package combat

// Losses is an aggregate damage triple computed for one round.
type Losses struct {
	Organization float64
	Casualties   float64
	Equipment    float64
}

// Distribute splits aggregate losses across a group in proportion to each
// member's share of the group's total current organization, then applies
// them with the participant's bounding rules. Members that are not alive
// receive nothing.
func Distribute(total Losses, group []*Participant) {
	var totalOrg float64
	for _, m := range group {
		if m.Alive() {
			totalOrg += m.Organization
		}
	}
	if totalOrg <= 0 {
		return
	}

	for _, m := range group {
		if !m.Alive() {
			continue
		}
		share := m.Organization / totalOrg
		m.ApplyLosses(
			total.Organization*share,
			total.Casualties*share,
			total.Equipment*share,
		)
	}
}
