package engine

import (
	"github.com/fbessa/tournament-server/models"
)

// GenerateSchedule creates a single round-robin of pending fixtures:
// every registered player plays every other player once. Fixtures for
// pairs that already have a match (pending or completed) are skipped so
// the generator can be re-run after late registrations without
// duplicating games.
//
// Only standard tournaments have a fixture schedule; geopolitical games
// are driven by attacks instead.
func GenerateSchedule(t *models.Tournament, date, timeOfDay string) (*models.Tournament, error) {
	if t.Type == models.TypeGeopolitical {
		return nil, ErrScheduleNotSupported
	}
	if len(t.Players) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	if date == "" || timeOfDay == "" {
		return nil, ErrMatchDateRequired
	}

	paired := make(map[string]bool)
	for _, m := range t.Matches {
		if len(m.HomeTeam.Players) == 1 && len(m.AwayTeam.Players) == 1 {
			paired[pairKey(m.HomeTeam.Players[0], m.AwayTeam.Players[0])] = true
		}
	}

	out := t.Clone()
	for i := 0; i < len(t.Players); i++ {
		for j := i + 1; j < len(t.Players); j++ {
			if paired[pairKey(t.Players[i], t.Players[j])] {
				continue
			}
			out.Matches = append(out.Matches, models.Match{
				ID:       newID(),
				HomeTeam: newTeamSnapshot([]string{t.Players[i]}, t.Game),
				AwayTeam: newTeamSnapshot([]string{t.Players[j]}, t.Game),
				Date:     date,
				Time:     timeOfDay,
				Status:   models.MatchPending,
				Game:     t.Game,
			})
		}
	}
	if len(out.Matches) > 0 && out.Status == models.StatusUpcoming {
		out.Status = models.StatusOngoing
	}
	return out, nil
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}
