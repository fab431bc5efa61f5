package models

// GeopoliticalMatch records one attack between two territories. Scores
// and winner stay nil until the attack is resolved. DefenderID is empty
// when the target territory is neutral.
type GeopoliticalMatch struct {
	ID                  string      `json:"id"`
	AttackerID          string      `json:"attacker_id"`
	DefenderID          string      `json:"defender_id,omitempty"`
	AttackerTerritoryID string      `json:"attacker_territory_id"`
	DefenderTerritoryID string      `json:"defender_territory_id"`
	HomeScore           *int        `json:"home_score,omitempty"`
	AwayScore           *int        `json:"away_score,omitempty"`
	WinnerID            *string     `json:"winner_id,omitempty"`
	Date                string      `json:"date"`
	Time                string      `json:"time"`
	Status              MatchStatus `json:"status"`
	Game                string      `json:"game"`
}

// Clone returns a copy with its own score and winner pointers.
func (m GeopoliticalMatch) Clone() GeopoliticalMatch {
	out := m
	if m.HomeScore != nil {
		v := *m.HomeScore
		out.HomeScore = &v
	}
	if m.AwayScore != nil {
		v := *m.AwayScore
		out.AwayScore = &v
	}
	if m.WinnerID != nil {
		v := *m.WinnerID
		out.WinnerID = &v
	}
	return out
}
