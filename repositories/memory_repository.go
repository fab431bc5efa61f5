package repositories

import (
	"context"
	"sync"

	"github.com/fbessa/tournament-server/models"
)

// memoryTournamentRepository keeps tournaments in process memory with
// the same whole-record semantics as the Postgres store. Used by tests
// and as the fallback when no DATABASE_URL is configured.
type memoryTournamentRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*models.Tournament
}

func NewMemoryTournamentRepository() TournamentRepository {
	return &memoryTournamentRepository{
		byID: make(map[string]*models.Tournament),
	}
}

func (r *memoryTournamentRepository) List(_ context.Context) ([]models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tournaments := make([]models.Tournament, 0, len(r.order))
	for _, id := range r.order {
		tournaments = append(tournaments, *r.byID[id].Clone())
	}
	return tournaments, nil
}

func (r *memoryTournamentRepository) GetByID(_ context.Context, id string) (*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return t.Clone(), nil
}

func (r *memoryTournamentRepository) Upsert(_ context.Context, tournament *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[tournament.ID]; !ok {
		r.order = append(r.order, tournament.ID)
	}
	// Store a copy so later caller mutations cannot leak into the store.
	r.byID[tournament.ID] = tournament.Clone()
	return nil
}

func (r *memoryTournamentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrTournamentNotFound
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
