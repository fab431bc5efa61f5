package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fbessa/tournament-server/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

// TournamentRepository is the entity store. Tournaments are persisted as
// whole documents: Upsert always replaces the full record, so the last
// writer wins and no partial-field update is ever observable. There is
// no version column and no migration path; a structural change to the
// Tournament shape invalidates previously stored documents.
type TournamentRepository interface {
	List(ctx context.Context) ([]models.Tournament, error)
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	Upsert(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	query := `SELECT data FROM tournaments ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var raw []byte
		if scanErr := rows.Scan(&raw); scanErr != nil {
			return nil, scanErr
		}
		var t models.Tournament
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("failed to decode stored tournament: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `SELECT data FROM tournaments WHERE id = $1`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	var t models.Tournament
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("failed to decode stored tournament %s: %w", id, err)
	}
	return &t, nil
}

// Upsert replaces the stored document or inserts it if the id is new.
// The whole record is overwritten: concurrent writers race with
// last-writer-wins semantics, matching the single-user design.
func (r *postgresTournamentRepository) Upsert(ctx context.Context, tournament *models.Tournament) error {
	raw, err := json.Marshal(tournament)
	if err != nil {
		return fmt.Errorf("failed to encode tournament %s: %w", tournament.ID, err)
	}

	query := `
		INSERT INTO tournaments (id, data)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`

	if _, err := r.db.ExecContext(ctx, query, tournament.ID, raw); err != nil {
		return fmt.Errorf("failed to upsert tournament %s: %w", tournament.ID, err)
	}
	return nil
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tournaments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
