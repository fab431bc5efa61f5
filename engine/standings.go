package engine

import (
	"sort"

	"github.com/fbessa/tournament-server/models"
)

const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

// ComputeStandings ranks the tournament's competitors from its completed
// matches. The competitor unit depends on the tournament shape: with an
// explicit team list there is one row per team, otherwise rows are
// aggregated per registered player name across the one-player team
// snapshots embedded in each match.
//
// All counters are recomputed from scratch on every call. The cached
// counters stored on Team are ignored, so standings stay correct after
// any edit to the match history. The input tournament is not mutated.
func ComputeStandings(t *models.Tournament) []models.Standing {
	if len(t.Teams) > 0 {
		return teamStandings(t)
	}
	return playerStandings(t)
}

func teamStandings(t *models.Tournament) []models.Standing {
	rows := make([]models.Standing, len(t.Teams))
	index := make(map[string]*models.Standing, len(t.Teams))
	byPlayer := make(map[string]*models.Standing)
	for i, team := range t.Teams {
		rows[i] = models.Standing{CompetitorID: team.ID, CompetitorName: team.Name}
		index[team.ID] = &rows[i]
		if len(team.Players) == 1 {
			byPlayer[team.Players[0]] = &rows[i]
		}
	}

	for _, m := range t.Matches {
		if m.Status != models.MatchCompleted {
			continue
		}
		// A side that matches no team at all is skipped; the other side
		// still collects its stats.
		applyResult(teamRow(index, byPlayer, m.HomeTeam), m.HomeScore, m.AwayScore)
		applyResult(teamRow(index, byPlayer, m.AwayTeam), m.AwayScore, m.HomeScore)
	}

	finalize(rows)
	sortStandings(rows)
	return rows
}

// teamRow resolves a match side to a team row. Matches embed snapshot
// copies with their own ids, so a miss on the id falls back to the
// side's single player: a one-player snapshot credits that player's
// registered team.
func teamRow(index, byPlayer map[string]*models.Standing, side models.Team) *models.Standing {
	if row, ok := index[side.ID]; ok {
		return row
	}
	if len(side.Players) == 1 {
		return byPlayer[side.Players[0]]
	}
	return nil
}

func playerStandings(t *models.Tournament) []models.Standing {
	rows := make([]models.Standing, len(t.Players))
	index := make(map[string]*models.Standing, len(t.Players))
	for i, name := range t.Players {
		rows[i] = models.Standing{CompetitorID: name, CompetitorName: name}
		index[name] = &rows[i]
	}

	for _, m := range t.Matches {
		if m.Status != models.MatchCompleted {
			continue
		}
		applyResult(playerRow(index, m.HomeTeam), m.HomeScore, m.AwayScore)
		applyResult(playerRow(index, m.AwayTeam), m.AwayScore, m.HomeScore)
	}

	finalize(rows)
	sortStandings(rows)
	return rows
}

// playerRow resolves a match side to a registered player's row. Sides
// that are not one-player snapshots of a rostered player yield nil and
// are ignored.
func playerRow(index map[string]*models.Standing, side models.Team) *models.Standing {
	if len(side.Players) != 1 {
		return nil
	}
	return index[side.Players[0]]
}

func applyResult(row *models.Standing, scored, conceded int) {
	if row == nil {
		return
	}
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		row.Wins++
	case scored < conceded:
		row.Losses++
	default:
		row.Draws++
	}
}

func finalize(rows []models.Standing) {
	for i := range rows {
		rows[i].Points = rows[i].Wins*pointsPerWin + rows[i].Draws*pointsPerDraw
		rows[i].GoalDifference = rows[i].GoalsFor - rows[i].GoalsAgainst
	}
}

// sortStandings orders by points, then goal difference, then goals for,
// all descending. The sort is stable so full ties keep registration
// order.
func sortStandings(rows []models.Standing) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})
}
