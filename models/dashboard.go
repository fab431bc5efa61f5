package models

// TournamentSummary is a per-tournament dashboard row.
type TournamentSummary struct {
	TournamentID     string           `json:"tournament_id"`
	Name             string           `json:"name"`
	Game             string           `json:"game"`
	Status           TournamentStatus `json:"status"`
	Type             TournamentType   `json:"type"`
	PlayersCount     int              `json:"players_count"`
	MatchesCompleted int              `json:"matches_completed"`
	MatchesPending   int              `json:"matches_pending"`
	Leader           *Standing        `json:"leader,omitempty"`
}

// DashboardStats aggregates every stored tournament.
type DashboardStats struct {
	TournamentsTotal     int                 `json:"tournaments_total"`
	UpcomingTournaments  int                 `json:"upcoming_tournaments"`
	OngoingTournaments   int                 `json:"ongoing_tournaments"`
	CompletedTournaments int                 `json:"completed_tournaments"`
	MatchesTotal         int                 `json:"matches_total"`
	AttacksResolved      int                 `json:"attacks_resolved"`
	Tournaments          []TournamentSummary `json:"tournaments"`
}
