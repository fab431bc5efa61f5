package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fbessa/tournament-server/engine"
	"github.com/fbessa/tournament-server/live"
	"github.com/fbessa/tournament-server/models"
	"github.com/fbessa/tournament-server/repositories"
)

type CreateMatchInput struct {
	HomePlayers []string `json:"home_players"`
	AwayPlayers []string `json:"away_players"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
}

type FinalizeMatchInput struct {
	HomeScore *int `json:"home_score"`
	AwayScore *int `json:"away_score"`
}

type MatchService interface {
	Create(ctx context.Context, tournamentID string, input CreateMatchInput) (*models.Tournament, error)
	GenerateSchedule(ctx context.Context, tournamentID, date, timeOfDay string) (*models.Tournament, error)
	Finalize(ctx context.Context, tournamentID, matchID string, input FinalizeMatchInput) (*models.Tournament, error)
	Standings(ctx context.Context, tournamentID string) ([]models.Standing, error)
}

type matchService struct {
	repo repositories.TournamentRepository
	hub  Broadcaster
}

func NewMatchService(repo repositories.TournamentRepository, hub Broadcaster) MatchService {
	if hub == nil {
		hub = NoopBroadcaster()
	}
	return &matchService{repo: repo, hub: hub}
}

func (s *matchService) Create(ctx context.Context, tournamentID string, input CreateMatchInput) (*models.Tournament, error) {
	tournament, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	updated, err := engine.CreateMatch(tournament, input.HomePlayers, input.AwayPlayers, input.Date, input.Time)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save tournament %s: %w", tournamentID, err)
	}
	return updated, nil
}

func (s *matchService) GenerateSchedule(ctx context.Context, tournamentID, date, timeOfDay string) (*models.Tournament, error) {
	tournament, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	updated, err := engine.GenerateSchedule(tournament, date, timeOfDay)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save tournament %s: %w", tournamentID, err)
	}

	s.hub.BroadcastToRoom(live.RoomID(tournamentID), live.Event{
		Type:         live.EventScheduleGenerated,
		TournamentID: tournamentID,
		Payload:      updated.Matches,
	})
	return updated, nil
}

func (s *matchService) Finalize(ctx context.Context, tournamentID, matchID string, input FinalizeMatchInput) (*models.Tournament, error) {
	tournament, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	updated, err := engine.FinalizeMatch(tournament, matchID, input.HomeScore, input.AwayScore)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save tournament %s: %w", tournamentID, err)
	}

	room := live.RoomID(tournamentID)
	s.hub.BroadcastToRoom(room, live.Event{
		Type:         live.EventMatchFinalized,
		TournamentID: tournamentID,
		Payload:      updated.FindMatch(matchID),
	})
	s.hub.BroadcastToRoom(room, live.Event{
		Type:         live.EventStandingsUpdated,
		TournamentID: tournamentID,
		Payload:      engine.ComputeStandings(updated),
	})
	return updated, nil
}

func (s *matchService) Standings(ctx context.Context, tournamentID string) ([]models.Standing, error) {
	tournament, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return engine.ComputeStandings(tournament), nil
}

func (s *matchService) load(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", id, err)
	}
	return tournament, nil
}
