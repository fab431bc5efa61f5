package models

// Team is an embedded competitor snapshot. The cumulative counters are a
// display cache only: standings are always recomputed from the match
// history, never read back from these fields.
type Team struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Game         string   `json:"game"`
	Players      []string `json:"players"`
	Points       int      `json:"points"`
	Wins         int      `json:"wins"`
	Draws        int      `json:"draws"`
	Losses       int      `json:"losses"`
	GoalsFor     int      `json:"goals_for"`
	GoalsAgainst int      `json:"goals_against"`
}

// Clone returns a copy with its own players slice.
func (t Team) Clone() Team {
	out := t
	out.Players = append([]string(nil), t.Players...)
	return out
}

// HasSinglePlayer reports whether the team is a one-player snapshot for
// the given display name.
func (t Team) HasSinglePlayer(name string) bool {
	return len(t.Players) == 1 && t.Players[0] == name
}
