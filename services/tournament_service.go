package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fbessa/tournament-server/engine"
	"github.com/fbessa/tournament-server/live"
	"github.com/fbessa/tournament-server/models"
	"github.com/fbessa/tournament-server/repositories"
	"github.com/fbessa/tournament-server/storage"
)

type TournamentService interface {
	Create(ctx context.Context, input engine.NewTournamentInput) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	AddPlayer(ctx context.Context, id, name string) (*models.Tournament, error)
	Finish(ctx context.Context, id string) (*models.Tournament, error)
	Delete(ctx context.Context, id string) error
	UploadLogo(ctx context.Context, id, contentType string, file io.Reader) (*models.Tournament, error)
	UploadTerritoryFlag(ctx context.Context, id, territoryID, contentType string, file io.Reader) (*models.Tournament, error)
	AutoStartByDate(ctx context.Context, now time.Time) (int, error)
}

type tournamentService struct {
	repo     repositories.TournamentRepository
	uploader storage.FileUploader
	hub      Broadcaster
	logger   *slog.Logger
}

func NewTournamentService(
	repo repositories.TournamentRepository,
	uploader storage.FileUploader,
	hub Broadcaster,
	logger *slog.Logger,
) TournamentService {
	if hub == nil {
		hub = NoopBroadcaster()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		repo:     repo,
		uploader: uploader,
		hub:      hub,
		logger:   logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, input engine.NewTournamentInput) (*models.Tournament, error) {
	tournament, err := engine.NewTournament(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to save tournament: %w", err)
	}
	populateTournamentURLs(tournament, s.uploader)
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tournaments {
		populateTournamentURLs(&tournaments[i], s.uploader)
	}
	return tournaments, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	populateTournamentURLs(tournament, s.uploader)
	return tournament, nil
}

func (s *tournamentService) AddPlayer(ctx context.Context, id, name string) (*models.Tournament, error) {
	tournament, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := engine.AddPlayer(tournament, name)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save tournament %s: %w", id, err)
	}
	populateTournamentURLs(updated, s.uploader)
	return updated, nil
}

func (s *tournamentService) Finish(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if tournament.Status == models.StatusCompleted {
		return nil, ErrTournamentCompleted
	}

	updated := engine.FinishTournament(tournament)
	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save tournament %s: %w", id, err)
	}

	s.hub.BroadcastToRoom(live.RoomID(id), live.Event{
		Type:         live.EventTournamentFinished,
		TournamentID: id,
		Payload:      engine.ComputeStandings(updated),
	})
	populateTournamentURLs(updated, s.uploader)
	return updated, nil
}

func (s *tournamentService) Delete(ctx context.Context, id string) error {
	tournament, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}

	// Stored objects are cleaned up best-effort after the record is gone.
	if s.uploader != nil {
		if tournament.LogoKey != nil && *tournament.LogoKey != "" {
			if err := s.uploader.Delete(ctx, *tournament.LogoKey); err != nil {
				s.logger.WarnContext(ctx, "failed to delete tournament logo",
					slog.String("tournament_id", id), slog.Any("error", err))
			}
		}
		for _, tr := range tournament.Territories {
			if tr.FlagKey == nil || *tr.FlagKey == "" {
				continue
			}
			if err := s.uploader.Delete(ctx, *tr.FlagKey); err != nil {
				s.logger.WarnContext(ctx, "failed to delete territory flag",
					slog.String("tournament_id", id),
					slog.String("territory_id", tr.ID), slog.Any("error", err))
			}
		}
	}
	return nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, id, contentType string, file io.Reader) (*models.Tournament, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}
	tournament, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tournaments/%s/logo%s", id, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileUploadFailed, err)
	}

	oldKey := tournament.LogoKey
	updated := tournament.Clone()
	updated.LogoKey = &result.Key
	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save tournament %s: %w", id, err)
	}

	if oldKey != nil && *oldKey != "" && *oldKey != result.Key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous logo",
				slog.String("tournament_id", id), slog.Any("error", err))
		}
	}

	populateTournamentURLs(updated, s.uploader)
	return updated, nil
}

func (s *tournamentService) UploadTerritoryFlag(ctx context.Context, id, territoryID, contentType string, file io.Reader) (*models.Tournament, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}
	tournament, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if tournament.Type != models.TypeGeopolitical {
		return nil, engine.ErrNotGeopolitical
	}
	if tournament.FindTerritory(territoryID) == nil {
		return nil, engine.ErrTerritoryNotFound
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tournaments/%s/territories/%s/flag%s", id, territoryID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileUploadFailed, err)
	}

	updated := tournament.Clone()
	territory := updated.FindTerritory(territoryID)
	oldKey := territory.FlagKey
	territory.FlagKey = &result.Key
	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save tournament %s: %w", id, err)
	}

	if oldKey != nil && *oldKey != "" && *oldKey != result.Key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous flag",
				slog.String("tournament_id", id),
				slog.String("territory_id", territoryID), slog.Any("error", err))
		}
	}

	populateTournamentURLs(updated, s.uploader)
	return updated, nil
}

// AutoStartByDate flips upcoming tournaments whose start date has
// passed to ongoing. Called periodically from the scheduler goroutine.
func (s *tournamentService) AutoStartByDate(ctx context.Context, now time.Time) (int, error) {
	tournaments, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	today := now.Format("2006-01-02")
	started := 0
	for i := range tournaments {
		t := &tournaments[i]
		if t.Status != models.StatusUpcoming || t.StartDate == "" || t.StartDate > today {
			continue
		}
		updated := t.Clone()
		updated.Status = models.StatusOngoing
		if err := s.repo.Upsert(ctx, updated); err != nil {
			s.logger.ErrorContext(ctx, "failed to auto-start tournament",
				slog.String("tournament_id", t.ID), slog.Any("error", err))
			continue
		}
		started++
	}
	return started, nil
}

func (s *tournamentService) load(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", id, err)
	}
	return tournament, nil
}
