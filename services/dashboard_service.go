package services

import (
	"context"

	"github.com/fbessa/tournament-server/engine"
	"github.com/fbessa/tournament-server/models"
	"github.com/fbessa/tournament-server/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	repo repositories.TournamentRepository
}

func NewDashboardService(repo repositories.TournamentRepository) DashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	tournaments, err := s.repo.List(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}

	// Summaries are independent per tournament, so standings are
	// recomputed concurrently. Each goroutine writes only its own slot.
	summaries := make([]models.TournamentSummary, len(tournaments))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range tournaments {
		i := i
		g.Go(func() error {
			summaries[i] = summarize(&tournaments[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}

	stats := models.DashboardStats{
		TournamentsTotal: len(tournaments),
		Tournaments:      summaries,
	}
	for i := range tournaments {
		t := &tournaments[i]
		switch t.Status {
		case models.StatusUpcoming:
			stats.UpcomingTournaments++
		case models.StatusOngoing:
			stats.OngoingTournaments++
		case models.StatusCompleted:
			stats.CompletedTournaments++
		}
		stats.MatchesTotal += len(t.Matches)
		for _, gm := range t.GeopoliticalMatches {
			if gm.Status == models.MatchCompleted {
				stats.AttacksResolved++
			}
		}
	}
	return stats, nil
}

func summarize(t *models.Tournament) models.TournamentSummary {
	summary := models.TournamentSummary{
		TournamentID: t.ID,
		Name:         t.Name,
		Game:         t.Game,
		Status:       t.Status,
		Type:         t.Type,
		PlayersCount: len(t.Players),
	}
	for _, m := range t.Matches {
		if m.Status == models.MatchCompleted {
			summary.MatchesCompleted++
		} else {
			summary.MatchesPending++
		}
	}
	if standings := engine.ComputeStandings(t); len(standings) > 0 {
		leader := standings[0]
		summary.Leader = &leader
	}
	return summary
}
