package models

// Standing is one computed row of a ranking table. CompetitorID is a
// team id for team tournaments and a player name for player-only ones.
type Standing struct {
	CompetitorID   string `json:"competitor_id"`
	CompetitorName string `json:"competitor_name"`
	Played         int    `json:"played"`
	Points         int    `json:"points"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
}
