package services

import (
	"context"
	"errors"
	"testing"

	"github.com/fbessa/tournament-server/engine"
	"github.com/fbessa/tournament-server/live"
	"github.com/fbessa/tournament-server/models"
	"github.com/fbessa/tournament-server/repositories"
)

func intPtr(v int) *int { return &v }

func seedTournament(t *testing.T, repo repositories.TournamentRepository, input engine.NewTournamentInput) *models.Tournament {
	t.Helper()
	tournament, err := engine.NewTournament(input)
	if err != nil {
		t.Fatalf("NewTournament: %v", err)
	}
	if err := repo.Upsert(context.Background(), tournament); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	return tournament
}

func TestMatchServiceCreateAndFinalize(t *testing.T) {
	repo := repositories.NewMemoryTournamentRepository()
	hub := &recordingBroadcaster{}
	svc := NewMatchService(repo, hub)
	ctx := context.Background()

	tournament := seedTournament(t, repo, standardInput())

	updated, err := svc.Create(ctx, tournament.ID, CreateMatchInput{
		HomePlayers: []string{"Alice"},
		AwayPlayers: []string{"Bob"},
		Date:        "2026-02-02",
		Time:        "19:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(updated.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(updated.Matches))
	}
	matchID := updated.Matches[0].ID

	final, err := svc.Finalize(ctx, tournament.ID, matchID, FinalizeMatchInput{
		HomeScore: intPtr(3),
		AwayScore: intPtr(1),
	})
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	match := final.FindMatch(matchID)
	if match.Status != models.MatchCompleted || match.HomeScore != 3 || match.AwayScore != 1 {
		t.Fatalf("unexpected finalized match: %+v", match)
	}

	// One match event plus one standings event, both into the same room.
	if len(hub.messages) != 2 {
		t.Fatalf("expected 2 broadcasts, got %d", len(hub.messages))
	}
	first, ok := hub.messages[0].(live.Event)
	if !ok || first.Type != live.EventMatchFinalized {
		t.Fatalf("unexpected first event: %+v", hub.messages[0])
	}
	second, ok := hub.messages[1].(live.Event)
	if !ok || second.Type != live.EventStandingsUpdated {
		t.Fatalf("unexpected second event: %+v", hub.messages[1])
	}
	if hub.rooms[0] != live.RoomID(tournament.ID) {
		t.Fatalf("unexpected room %s", hub.rooms[0])
	}
}

func TestMatchServiceFinalizeRejectionsDoNotPersist(t *testing.T) {
	repo := repositories.NewMemoryTournamentRepository()
	svc := NewMatchService(repo, nil)
	ctx := context.Background()

	tournament := seedTournament(t, repo, standardInput())
	created, err := svc.Create(ctx, tournament.ID, CreateMatchInput{
		HomePlayers: []string{"Alice"},
		AwayPlayers: []string{"Bob"},
		Date:        "2026-02-02",
		Time:        "19:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	matchID := created.Matches[0].ID

	tests := []struct {
		name  string
		match string
		input FinalizeMatchInput
		want  error
	}{
		{"missing scores", matchID, FinalizeMatchInput{}, engine.ErrScoreRequired},
		{"negative score", matchID, FinalizeMatchInput{HomeScore: intPtr(-1), AwayScore: intPtr(0)}, engine.ErrScoreNegative},
		{"unknown match", "nope", FinalizeMatchInput{HomeScore: intPtr(1), AwayScore: intPtr(0)}, engine.ErrMatchNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Finalize(ctx, tournament.ID, tc.match, tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	// Every rejection left the stored match untouched.
	stored, err := repo.GetByID(ctx, tournament.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.FindMatch(matchID).Status != models.MatchPending {
		t.Fatal("rejected finalize must not change the stored match")
	}
}

func TestMatchServiceGenerateSchedule(t *testing.T) {
	repo := repositories.NewMemoryTournamentRepository()
	svc := NewMatchService(repo, nil)
	ctx := context.Background()

	input := standardInput()
	input.ScheduleType = models.ScheduleAutomatic
	input.Players = []string{"Alice", "Bob", "Carol"}
	tournament := seedTournament(t, repo, input)

	updated, err := svc.GenerateSchedule(ctx, tournament.ID, "2026-02-02", "18:00")
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}
	if len(updated.Matches) != 3 {
		t.Fatalf("expected 3 fixtures for 3 players, got %d", len(updated.Matches))
	}
}

func TestMatchServiceStandings(t *testing.T) {
	repo := repositories.NewMemoryTournamentRepository()
	svc := NewMatchService(repo, nil)
	ctx := context.Background()

	tournament := seedTournament(t, repo, standardInput())
	created, err := svc.Create(ctx, tournament.ID, CreateMatchInput{
		HomePlayers: []string{"Alice"},
		AwayPlayers: []string{"Bob"},
		Date:        "2026-02-02",
		Time:        "19:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Finalize(ctx, tournament.ID, created.Matches[0].ID, FinalizeMatchInput{
		HomeScore: intPtr(2),
		AwayScore: intPtr(0),
	}); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	standings, err := svc.Standings(ctx, tournament.ID)
	if err != nil {
		t.Fatalf("Standings: %v", err)
	}
	if len(standings) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(standings))
	}
	if standings[0].CompetitorName != "Alice" || standings[0].Points != 3 {
		t.Fatalf("unexpected leader: %+v", standings[0])
	}
}

func TestMatchServiceUnknownTournament(t *testing.T) {
	svc := NewMatchService(repositories.NewMemoryTournamentRepository(), nil)

	_, err := svc.Standings(context.Background(), "missing")
	if !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("expected ErrTournamentNotFound, got %v", err)
	}
}
