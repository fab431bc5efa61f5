package models

// MatchStatus is the two-state match lifecycle. Completed is terminal:
// nothing in the API reopens a finalized match.
type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchCompleted MatchStatus = "completed"
)

// Match is a fixture between two embedded team snapshots. The snapshots
// are copies, not references: editing a roster later does not rewrite
// history.
type Match struct {
	ID        string      `json:"id"`
	HomeTeam  Team        `json:"home_team"`
	AwayTeam  Team        `json:"away_team"`
	HomeScore int         `json:"home_score"`
	AwayScore int         `json:"away_score"`
	Date      string      `json:"date"`
	Time      string      `json:"time"`
	Status    MatchStatus `json:"status"`
	Game      string      `json:"game"`
}

// Clone returns a copy with cloned team snapshots.
func (m Match) Clone() Match {
	out := m
	out.HomeTeam = m.HomeTeam.Clone()
	out.AwayTeam = m.AwayTeam.Clone()
	return out
}
