package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fbessa/tournament-server/engine"
	"github.com/fbessa/tournament-server/models"
	"github.com/fbessa/tournament-server/repositories"
)

// recordingBroadcaster captures room broadcasts for assertions.
type recordingBroadcaster struct {
	rooms    []string
	messages []interface{}
}

func (b *recordingBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	b.rooms = append(b.rooms, roomID)
	b.messages = append(b.messages, message)
}

func newTournamentService(repo repositories.TournamentRepository) TournamentService {
	return NewTournamentService(repo, nil, nil, nil)
}

func standardInput() engine.NewTournamentInput {
	return engine.NewTournamentInput{
		Name:       "Winter League",
		Game:       "FIFA 24",
		StartDate:  "2026-02-01",
		MaxPlayers: 8,
		Players:    []string{"Alice", "Bob"},
	}
}

func TestTournamentServiceCreateAndGet(t *testing.T) {
	repo := repositories.NewMemoryTournamentRepository()
	svc := newTournamentService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, standardInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Winter League" || len(got.Players) != 2 {
		t.Fatalf("unexpected tournament: %+v", got)
	}
}

func TestTournamentServiceCreateRejectsInvalidInput(t *testing.T) {
	repo := repositories.NewMemoryTournamentRepository()
	svc := newTournamentService(repo)
	ctx := context.Background()

	input := standardInput()
	input.Name = "  "
	if _, err := svc.Create(ctx, input); !errors.Is(err, engine.ErrTournamentNameRequired) {
		t.Fatalf("expected ErrTournamentNameRequired, got %v", err)
	}

	// Nothing was persisted.
	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty store, got %d tournaments", len(all))
	}
}

func TestTournamentServiceGetByIDNotFound(t *testing.T) {
	svc := newTournamentService(repositories.NewMemoryTournamentRepository())

	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("expected ErrTournamentNotFound, got %v", err)
	}
}

func TestTournamentServiceAddPlayer(t *testing.T) {
	repo := repositories.NewMemoryTournamentRepository()
	svc := newTournamentService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, standardInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.AddPlayer(ctx, created.ID, "Carol")
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if len(updated.Players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(updated.Players))
	}

	// The change survived the round trip.
	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.HasPlayer("Carol") {
		t.Fatal("expected Carol on the stored roster")
	}

	if _, err := svc.AddPlayer(ctx, created.ID, "Carol"); !errors.Is(err, engine.ErrDuplicatePlayer) {
		t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
	}
}

func TestTournamentServiceAddPlayerRosterFullDoesNotPersist(t *testing.T) {
	repo := repositories.NewMemoryTournamentRepository()
	svc := newTournamentService(repo)
	ctx := context.Background()

	input := standardInput()
	input.MaxPlayers = 2
	created, err := svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.AddPlayer(ctx, created.ID, "Carol"); !errors.Is(err, engine.ErrRosterFull) {
		t.Fatalf("expected ErrRosterFull, got %v", err)
	}
	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Players) != 2 {
		t.Fatalf("rejected add must not change the roster, got %d players", len(got.Players))
	}
}

func TestTournamentServiceFinishBroadcastsAndIsOneWay(t *testing.T) {
	repo := repositories.NewMemoryTournamentRepository()
	hub := &recordingBroadcaster{}
	svc := NewTournamentService(repo, nil, hub, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, standardInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	finished, err := svc.Finish(ctx, created.ID)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if finished.Status != models.StatusCompleted {
		t.Fatalf("expected completed status, got %s", finished.Status)
	}
	if len(hub.rooms) != 1 {
		t.Fatalf("expected 1 broadcast, got %d", len(hub.rooms))
	}

	if _, err := svc.Finish(ctx, created.ID); !errors.Is(err, ErrTournamentCompleted) {
		t.Fatalf("expected ErrTournamentCompleted, got %v", err)
	}
}

func TestTournamentServiceDelete(t *testing.T) {
	repo := repositories.NewMemoryTournamentRepository()
	svc := newTournamentService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, standardInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("expected ErrTournamentNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("expected ErrTournamentNotFound on second delete, got %v", err)
	}
}

func TestTournamentServiceUploadLogoDisabled(t *testing.T) {
	svc := newTournamentService(repositories.NewMemoryTournamentRepository())

	_, err := svc.UploadLogo(context.Background(), "any", "image/png", nil)
	if !errors.Is(err, ErrUploadsDisabled) {
		t.Fatalf("expected ErrUploadsDisabled, got %v", err)
	}
}

func TestTournamentServiceAutoStartByDate(t *testing.T) {
	repo := repositories.NewMemoryTournamentRepository()
	svc := newTournamentService(repo)
	ctx := context.Background()

	past := standardInput()
	past.Name = "Started Yesterday"
	past.StartDate = "2026-01-01"
	startedT, err := svc.Create(ctx, past)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	future := standardInput()
	future.Name = "Starts Next Year"
	future.StartDate = "2027-01-01"
	futureT, err := svc.Create(ctx, future)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	started, err := svc.AutoStartByDate(ctx, now)
	if err != nil {
		t.Fatalf("AutoStartByDate: %v", err)
	}
	if started != 1 {
		t.Fatalf("expected 1 tournament started, got %d", started)
	}

	got, _ := svc.GetByID(ctx, startedT.ID)
	if got.Status != models.StatusOngoing {
		t.Fatalf("expected ongoing, got %s", got.Status)
	}
	got, _ = svc.GetByID(ctx, futureT.ID)
	if got.Status != models.StatusUpcoming {
		t.Fatalf("future tournament must stay upcoming, got %s", got.Status)
	}
}
