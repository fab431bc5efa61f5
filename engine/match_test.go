package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/fbessa/tournament-server/models"
)

func intPtr(v int) *int { return &v }

func TestCreateMatch(t *testing.T) {
	tour := playerTournament("A", "B", "C")
	tour.Status = models.StatusUpcoming

	updated, err := CreateMatch(tour, []string{"A"}, []string{"B"}, "2026-09-10", "19:30")
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if len(updated.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(updated.Matches))
	}
	m := updated.Matches[0]
	if m.Status != models.MatchPending {
		t.Fatalf("expected pending match, got %s", m.Status)
	}
	if m.HomeTeam.Name != "A" || m.AwayTeam.Name != "B" {
		t.Fatalf("expected snapshots named after players, got %q vs %q", m.HomeTeam.Name, m.AwayTeam.Name)
	}
	if m.HomeTeam.Points != 0 || m.HomeTeam.Wins != 0 {
		t.Fatalf("snapshot must start with zero stats: %+v", m.HomeTeam)
	}
	if updated.Status != models.StatusOngoing {
		t.Fatalf("first fixture should flip the tournament to ongoing, got %s", updated.Status)
	}
	if len(tour.Matches) != 0 || tour.Status != models.StatusUpcoming {
		t.Fatalf("input tournament was mutated")
	}
}

func TestCreateMatchMultiPlayerSide(t *testing.T) {
	tour := playerTournament("A", "B", "C", "D")

	updated, err := CreateMatch(tour, []string{"A", "B"}, []string{"C", "D"}, "2026-09-10", "19:30")
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if got := updated.Matches[0].HomeTeam.Name; got != "Team A & B" {
		t.Fatalf("expected synthesized team label, got %q", got)
	}
}

func TestCreateMatchValidation(t *testing.T) {
	tour := playerTournament("A", "B")
	tests := []struct {
		name      string
		home      []string
		away      []string
		date      string
		timeOfDay string
		err       error
	}{
		{"empty home roster", nil, []string{"B"}, "2026-09-10", "19:30", ErrMatchRosterEmpty},
		{"empty away roster", []string{"A"}, nil, "2026-09-10", "19:30", ErrMatchRosterEmpty},
		{"overlapping rosters", []string{"A"}, []string{"A"}, "2026-09-10", "19:30", ErrMatchRosterOverlap},
		{"missing date", []string{"A"}, []string{"B"}, "", "19:30", ErrMatchDateRequired},
		{"missing time", []string{"A"}, []string{"B"}, "2026-09-10", "", ErrMatchDateRequired},
		{"unknown player", []string{"A"}, []string{"Z"}, "2026-09-10", "19:30", ErrUnknownPlayer},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CreateMatch(tour, tc.home, tc.away, tc.date, tc.timeOfDay)
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestFinalizeMatch(t *testing.T) {
	tour := playerTournament("A", "B", "C")
	tour, err := CreateMatch(tour, []string{"A"}, []string{"B"}, "2026-09-10", "19:30")
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	tour, err = CreateMatch(tour, []string{"B"}, []string{"C"}, "2026-09-11", "19:30")
	if err != nil {
		t.Fatalf("create second match: %v", err)
	}
	before := tour.Clone()
	target := tour.Matches[0].ID

	updated, err := FinalizeMatch(tour, target, intPtr(3), intPtr(1))
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	m := updated.FindMatch(target)
	if m.Status != models.MatchCompleted || m.HomeScore != 3 || m.AwayScore != 1 {
		t.Fatalf("unexpected finalized match: %+v", m)
	}
	if other := updated.Matches[1]; other.Status != models.MatchPending {
		t.Fatalf("other matches must stay untouched, got %+v", other)
	}
	if !reflect.DeepEqual(tour, before) {
		t.Fatalf("input tournament was mutated")
	}
}

func TestFinalizeMatchValidation(t *testing.T) {
	tour := playerTournament("A", "B")
	tour, err := CreateMatch(tour, []string{"A"}, []string{"B"}, "2026-09-10", "19:30")
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	matchID := tour.Matches[0].ID

	tests := []struct {
		name    string
		matchID string
		home    *int
		away    *int
		err     error
	}{
		{"missing home score", matchID, nil, intPtr(1), ErrScoreRequired},
		{"missing away score", matchID, intPtr(1), nil, ErrScoreRequired},
		{"negative score", matchID, intPtr(-1), intPtr(0), ErrScoreNegative},
		{"unknown match", "nope", intPtr(1), intPtr(0), ErrMatchNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FinalizeMatch(tour, tc.matchID, tc.home, tc.away)
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestFinalizeMatchIsTerminal(t *testing.T) {
	tour := playerTournament("A", "B")
	tour, err := CreateMatch(tour, []string{"A"}, []string{"B"}, "2026-09-10", "19:30")
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	matchID := tour.Matches[0].ID

	tour, err = FinalizeMatch(tour, matchID, intPtr(2), intPtr(2))
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if _, err := FinalizeMatch(tour, matchID, intPtr(1), intPtr(0)); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("completed match must not be finalizable again, got %v", err)
	}
}
