package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"survivorpool/database"
	"survivorpool/domain/entities"
)

// TeamRepository implements the TeamRepository interface
type TeamRepository struct {
	q Queryable
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *database.DB) *TeamRepository {
	return &TeamRepository{q: db.Pool}
}

// newTeamRepository creates a team repository bound to a transaction
func newTeamRepository(tx Queryable) *TeamRepository {
	return &TeamRepository{q: tx}
}

func scanTeam(row pgx.Row) (*entities.Team, error) {
	var t entities.Team
	err := row.Scan(&t.ID, &t.Name, &t.Conference)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID retrieves a team by id
func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*entities.Team, error) {
	team, err := scanTeam(r.q.QueryRow(ctx, `SELECT id, name, conference FROM teams WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	return team, nil
}

// GetByIDs retrieves several teams at once, keyed by id
func (r *TeamRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*entities.Team, error) {
	teams := make(map[int64]*entities.Team, len(ids))
	if len(ids) == 0 {
		return teams, nil
	}

	rows, err := r.q.Query(ctx, `SELECT id, name, conference FROM teams WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t entities.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Conference); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams[t.ID] = &t
	}
	return teams, rows.Err()
}

// GetByName retrieves a team by name
func (r *TeamRepository) GetByName(ctx context.Context, name string) (*entities.Team, error) {
	team, err := scanTeam(r.q.QueryRow(ctx, `SELECT id, name, conference FROM teams WHERE name = $1`, name))
	if err != nil {
		return nil, fmt.Errorf("failed to get team %s: %w", name, err)
	}
	return team, nil
}

// Create creates a new team
func (r *TeamRepository) Create(ctx context.Context, name, conference string) (*entities.Team, error) {
	query := `
		INSERT INTO teams (name, conference)
		VALUES ($1, $2)
		RETURNING id, name, conference`

	team, err := scanTeam(r.q.QueryRow(ctx, query, name, conference))
	if err != nil {
		return nil, fmt.Errorf("failed to create team %s: %w", name, err)
	}
	return team, nil
}

// GetAll returns every team ordered by name
func (r *TeamRepository) GetAll(ctx context.Context) ([]*entities.Team, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, conference FROM teams ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []*entities.Team
	for rows.Next() {
		var t entities.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Conference); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, &t)
	}
	return teams, rows.Err()
}
