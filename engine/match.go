package engine

import (
	"strings"

	"github.com/fbessa/tournament-server/models"
)

// CreateMatch appends a new pending fixture between two sides of the
// roster and returns the updated tournament. Each side becomes a fresh
// zero-stat team snapshot embedded in the match: a single player's name,
// or a synthesized "Team A & B" label for multi-player sides. An
// upcoming tournament implicitly becomes ongoing when its first fixture
// is scheduled.
//
// The input tournament is never mutated; on error it is returned
// unchanged by the caller's reference.
func CreateMatch(t *models.Tournament, homeNames, awayNames []string, date, timeOfDay string) (*models.Tournament, error) {
	if len(homeNames) == 0 || len(awayNames) == 0 {
		return nil, ErrMatchRosterEmpty
	}
	if rostersOverlap(homeNames, awayNames) {
		return nil, ErrMatchRosterOverlap
	}
	if date == "" || timeOfDay == "" {
		return nil, ErrMatchDateRequired
	}
	for _, name := range append(append([]string(nil), homeNames...), awayNames...) {
		if !t.HasPlayer(name) {
			return nil, ErrUnknownPlayer
		}
	}

	out := t.Clone()
	out.Matches = append(out.Matches, models.Match{
		ID:       newID(),
		HomeTeam: newTeamSnapshot(homeNames, t.Game),
		AwayTeam: newTeamSnapshot(awayNames, t.Game),
		Date:     date,
		Time:     timeOfDay,
		Status:   models.MatchPending,
		Game:     t.Game,
	})
	if out.Status == models.StatusUpcoming {
		out.Status = models.StatusOngoing
	}
	return out, nil
}

// FinalizeMatch records the final score of a pending match and marks it
// completed. Completed is terminal: a finalized match no longer counts
// as pending and cannot be found again by this operation.
func FinalizeMatch(t *models.Tournament, matchID string, homeScore, awayScore *int) (*models.Tournament, error) {
	if err := validateScores(homeScore, awayScore); err != nil {
		return nil, err
	}

	out := t.Clone()
	match := out.FindMatch(matchID)
	if match == nil || match.Status != models.MatchPending {
		return nil, ErrMatchNotFound
	}

	match.HomeScore = *homeScore
	match.AwayScore = *awayScore
	match.Status = models.MatchCompleted
	return out, nil
}

func validateScores(home, away *int) error {
	if home == nil || away == nil {
		return ErrScoreRequired
	}
	if *home < 0 || *away < 0 {
		return ErrScoreNegative
	}
	return nil
}

func rostersOverlap(home, away []string) bool {
	seen := make(map[string]bool, len(home))
	for _, name := range home {
		seen[name] = true
	}
	for _, name := range away {
		if seen[name] {
			return true
		}
	}
	return false
}

func newTeamSnapshot(names []string, game string) models.Team {
	name := names[0]
	if len(names) > 1 {
		name = "Team " + strings.Join(names, " & ")
	}
	return models.Team{
		ID:      newID(),
		Name:    name,
		Game:    game,
		Players: append([]string(nil), names...),
	}
}
