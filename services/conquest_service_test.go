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

func geopoliticalInput() engine.NewTournamentInput {
	return engine.NewTournamentInput{
		Name:       "Conquest of Spring",
		Game:       "FIFA 24",
		StartDate:  "2026-03-01",
		MaxPlayers: 4,
		Type:       models.TypeGeopolitical,
		Players:    []string{"Alice", "Bob"},
		Territories: []engine.TerritoryInput{
			{Name: "North", Connections: []string{"Middle"}},
			{Name: "South", Connections: []string{"Middle"}},
			{Name: "Middle", Connections: []string{"North", "South"}},
		},
	}
}

func territoryByName(t *testing.T, tournament *models.Tournament, name string) *models.Territory {
	t.Helper()
	for i := range tournament.Territories {
		if tournament.Territories[i].Name == name {
			return &tournament.Territories[i]
		}
	}
	t.Fatalf("territory %q not found", name)
	return nil
}

func TestConquestServiceDeclareAndResolve(t *testing.T) {
	repo := repositories.NewMemoryTournamentRepository()
	hub := &recordingBroadcaster{}
	svc := NewConquestService(repo, nil, hub)
	ctx := context.Background()

	tournament := seedTournament(t, repo, geopoliticalInput())
	north := territoryByName(t, tournament, "North")
	middle := territoryByName(t, tournament, "Middle")

	attack, err := svc.DeclareAttack(ctx, tournament.ID, DeclareAttackInput{
		AttackerTerritoryID: north.ID,
		DefenderTerritoryID: middle.ID,
	})
	if err != nil {
		t.Fatalf("DeclareAttack: %v", err)
	}
	if attack.AttackerID != "Alice" || attack.DefenderID != "" {
		t.Fatalf("unexpected attack: %+v", attack)
	}
	if len(hub.messages) != 1 {
		t.Fatalf("expected 1 broadcast after declare, got %d", len(hub.messages))
	}

	updated, err := svc.ResolveAttack(ctx, tournament.ID, attack.ID, FinalizeMatchInput{
		HomeScore: intPtr(4),
		AwayScore: intPtr(2),
	})
	if err != nil {
		t.Fatalf("ResolveAttack: %v", err)
	}
	if got := updated.FindTerritory(middle.ID).OwnerID; got != "Alice" {
		t.Fatalf("expected Alice to own the target, got %q", got)
	}
	if updated.CurrentTurn != "Bob" {
		t.Fatalf("expected turn to pass to Bob, got %q", updated.CurrentTurn)
	}

	// Conquered event plus turn event.
	if len(hub.messages) != 3 {
		t.Fatalf("expected 3 broadcasts total, got %d", len(hub.messages))
	}
	conquered := hub.messages[1].(live.Event)
	if conquered.Type != live.EventTerritoryConquered {
		t.Fatalf("unexpected event type %s", conquered.Type)
	}
	turn := hub.messages[2].(live.Event)
	if turn.Type != live.EventTurnAdvanced {
		t.Fatalf("unexpected event type %s", turn.Type)
	}

	// The transfer survived the round trip.
	stored, err := repo.GetByID(ctx, tournament.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.FindTerritory(middle.ID).OwnerID != "Alice" {
		t.Fatal("expected the conquest to be persisted")
	}
}

func TestConquestServiceDeclareRejectionsDoNotPersist(t *testing.T) {
	repo := repositories.NewMemoryTournamentRepository()
	svc := NewConquestService(repo, nil, nil)
	ctx := context.Background()

	tournament := seedTournament(t, repo, geopoliticalInput())
	north := territoryByName(t, tournament, "North")
	south := territoryByName(t, tournament, "South")

	tests := []struct {
		name  string
		input DeclareAttackInput
		want  error
	}{
		{"not adjacent", DeclareAttackInput{AttackerTerritoryID: north.ID, DefenderTerritoryID: south.ID}, engine.ErrTerritoriesNotAdjacent},
		{"not your turn", DeclareAttackInput{AttackerTerritoryID: south.ID, DefenderTerritoryID: territoryByName(t, tournament, "Middle").ID}, engine.ErrNotYourTurn},
		{"unknown territory", DeclareAttackInput{AttackerTerritoryID: "nope", DefenderTerritoryID: south.ID}, engine.ErrTerritoryNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.DeclareAttack(ctx, tournament.ID, tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	stored, err := repo.GetByID(ctx, tournament.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(stored.GeopoliticalMatches) != 0 {
		t.Fatalf("rejected attacks must not be persisted, found %d", len(stored.GeopoliticalMatches))
	}
}

func TestConquestServiceResolveDrawRejected(t *testing.T) {
	repo := repositories.NewMemoryTournamentRepository()
	svc := NewConquestService(repo, nil, nil)
	ctx := context.Background()

	tournament := seedTournament(t, repo, geopoliticalInput())
	north := territoryByName(t, tournament, "North")
	middle := territoryByName(t, tournament, "Middle")

	attack, err := svc.DeclareAttack(ctx, tournament.ID, DeclareAttackInput{
		AttackerTerritoryID: north.ID,
		DefenderTerritoryID: middle.ID,
	})
	if err != nil {
		t.Fatalf("DeclareAttack: %v", err)
	}

	if _, err := svc.ResolveAttack(ctx, tournament.ID, attack.ID, FinalizeMatchInput{
		HomeScore: intPtr(2),
		AwayScore: intPtr(2),
	}); !errors.Is(err, engine.ErrConquestDraw) {
		t.Fatalf("expected ErrConquestDraw, got %v", err)
	}

	// The attack is still pending and ownership unchanged.
	stored, err := repo.GetByID(ctx, tournament.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.FindGeopoliticalMatch(attack.ID).Status != models.MatchPending {
		t.Fatal("draw must leave the attack pending")
	}
	if stored.FindTerritory(middle.ID).OwnerID != "" {
		t.Fatal("draw must not transfer the territory")
	}
	if stored.CurrentTurn != "Alice" {
		t.Fatal("draw must not advance the turn")
	}
}

func TestConquestServiceMap(t *testing.T) {
	repo := repositories.NewMemoryTournamentRepository()
	svc := NewConquestService(repo, nil, nil)
	ctx := context.Background()

	tournament := seedTournament(t, repo, geopoliticalInput())

	view, err := svc.Map(ctx, tournament.ID)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(view.Territories) != 3 {
		t.Fatalf("expected 3 territories, got %d", len(view.Territories))
	}
	if view.CurrentTurn != "Alice" {
		t.Fatalf("expected Alice to open, got %q", view.CurrentTurn)
	}

	standard := seedTournament(t, repo, standardInput())
	if _, err := svc.Map(ctx, standard.ID); !errors.Is(err, engine.ErrNotGeopolitical) {
		t.Fatalf("expected ErrNotGeopolitical, got %v", err)
	}
}
