package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fbessa/tournament-server/engine"
	"github.com/fbessa/tournament-server/live"
	"github.com/fbessa/tournament-server/models"
	"github.com/fbessa/tournament-server/repositories"
	"github.com/fbessa/tournament-server/storage"
)

type DeclareAttackInput struct {
	AttackerTerritoryID string `json:"attacker_territory_id"`
	DefenderTerritoryID string `json:"defender_territory_id"`
}

// MapView is the conquest board as rendered by clients: the territories
// with resolved flag URLs plus whose turn it is.
type MapView struct {
	TournamentID string             `json:"tournament_id"`
	Territories  []models.Territory `json:"territories"`
	CurrentTurn  string             `json:"current_turn"`
	TurnOrder    []string           `json:"turn_order"`
}

type ConquestService interface {
	DeclareAttack(ctx context.Context, tournamentID string, input DeclareAttackInput) (*models.GeopoliticalMatch, error)
	ResolveAttack(ctx context.Context, tournamentID, conquestID string, input FinalizeMatchInput) (*models.Tournament, error)
	Map(ctx context.Context, tournamentID string) (*MapView, error)
}

type conquestService struct {
	repo     repositories.TournamentRepository
	uploader storage.FileUploader
	hub      Broadcaster
}

func NewConquestService(repo repositories.TournamentRepository, uploader storage.FileUploader, hub Broadcaster) ConquestService {
	if hub == nil {
		hub = NoopBroadcaster()
	}
	return &conquestService{repo: repo, uploader: uploader, hub: hub}
}

func (s *conquestService) DeclareAttack(ctx context.Context, tournamentID string, input DeclareAttackInput) (*models.GeopoliticalMatch, error) {
	tournament, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	updated, attack, err := engine.DeclareAttack(tournament, input.AttackerTerritoryID, input.DefenderTerritoryID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save tournament %s: %w", tournamentID, err)
	}

	s.hub.BroadcastToRoom(live.RoomID(tournamentID), live.Event{
		Type:         live.EventAttackDeclared,
		TournamentID: tournamentID,
		Payload:      attack,
	})
	return attack, nil
}

func (s *conquestService) ResolveAttack(ctx context.Context, tournamentID, conquestID string, input FinalizeMatchInput) (*models.Tournament, error) {
	tournament, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	updated, err := engine.ResolveAttack(tournament, conquestID, input.HomeScore, input.AwayScore)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save tournament %s: %w", tournamentID, err)
	}

	room := live.RoomID(tournamentID)
	resolved := updated.FindGeopoliticalMatch(conquestID)
	s.hub.BroadcastToRoom(room, live.Event{
		Type:         live.EventTerritoryConquered,
		TournamentID: tournamentID,
		Payload:      resolved,
	})
	s.hub.BroadcastToRoom(room, live.Event{
		Type:         live.EventTurnAdvanced,
		TournamentID: tournamentID,
		Payload:      map[string]string{"current_turn": updated.CurrentTurn},
	})
	return updated, nil
}

func (s *conquestService) Map(ctx context.Context, tournamentID string) (*MapView, error) {
	tournament, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Type != models.TypeGeopolitical {
		return nil, engine.ErrNotGeopolitical
	}

	populateTournamentURLs(tournament, s.uploader)
	return &MapView{
		TournamentID: tournament.ID,
		Territories:  tournament.Territories,
		CurrentTurn:  tournament.CurrentTurn,
		TurnOrder:    tournament.TurnOrder,
	}, nil
}

func (s *conquestService) load(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", id, err)
	}
	return tournament, nil
}
