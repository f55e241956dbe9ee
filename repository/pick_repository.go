package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"survivorpool/database"
	"survivorpool/domain/entities"
)

// PickRepository implements the PickRepository interface
type PickRepository struct {
	q Queryable
}

// NewPickRepository creates a new pick repository
func NewPickRepository(db *database.DB) *PickRepository {
	return &PickRepository{q: db.Pool}
}

// newPickRepository creates a pick repository bound to a transaction
func newPickRepository(tx Queryable) *PickRepository {
	return &PickRepository{q: tx}
}

const pickColumns = `id, user_id, week_id, team_id, is_correct, created_at`

func scanPick(row pgx.Row) (*entities.Pick, error) {
	var p entities.Pick
	err := row.Scan(&p.ID, &p.UserID, &p.WeekID, &p.TeamID, &p.IsCorrect, &p.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPicks(rows pgx.Rows) ([]*entities.Pick, error) {
	defer rows.Close()
	var picks []*entities.Pick
	for rows.Next() {
		var p entities.Pick
		if err := rows.Scan(&p.ID, &p.UserID, &p.WeekID, &p.TeamID, &p.IsCorrect, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		picks = append(picks, &p)
	}
	return picks, rows.Err()
}

// GetByUserAndWeek returns the user's pick for a week
func (r *PickRepository) GetByUserAndWeek(ctx context.Context, userID, weekID int64) (*entities.Pick, error) {
	query := fmt.Sprintf(`SELECT %s FROM picks WHERE user_id = $1 AND week_id = $2`, pickColumns)
	pick, err := scanPick(r.q.QueryRow(ctx, query, userID, weekID))
	if err != nil {
		return nil, fmt.Errorf("failed to get pick for user %d week %d: %w", userID, weekID, err)
	}
	return pick, nil
}

// GetByWeek returns every pick made for a week
func (r *PickRepository) GetByWeek(ctx context.Context, weekID int64) ([]*entities.Pick, error) {
	query := fmt.Sprintf(`SELECT %s FROM picks WHERE week_id = $1 ORDER BY id ASC`, pickColumns)
	rows, err := r.q.Query(ctx, query, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks for week %d: %w", weekID, err)
	}
	return scanPicks(rows)
}

// GetByUser returns a user's picks across all weeks ordered by week number
func (r *PickRepository) GetByUser(ctx context.Context, userID int64) ([]*entities.Pick, error) {
	query := `
		SELECT p.id, p.user_id, p.week_id, p.team_id, p.is_correct, p.created_at
		FROM picks p
		JOIN weeks w ON w.id = p.week_id
		WHERE p.user_id = $1
		ORDER BY w.week_number ASC`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks for user %d: %w", userID, err)
	}
	return scanPicks(rows)
}

// Upsert creates the pick or overwrites the existing one for the same
// (user, week) pair. The unique constraint arbitrates concurrent inserts:
// whichever submission lands second becomes an update, so a user can never
// end up holding two picks for a week. Overwriting clears any stored result.
func (r *PickRepository) Upsert(ctx context.Context, pick *entities.Pick) error {
	query := `
		INSERT INTO picks (user_id, week_id, team_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT picks_user_week_unique
		DO UPDATE SET team_id = EXCLUDED.team_id, created_at = EXCLUDED.created_at, is_correct = NULL
		RETURNING id`

	err := r.q.QueryRow(ctx, query, pick.UserID, pick.WeekID, pick.TeamID, pick.CreatedAt).Scan(&pick.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert pick for user %d week %d: %w", pick.UserID, pick.WeekID, err)
	}
	return nil
}

// UpdateResult records whether a pick was correct
func (r *PickRepository) UpdateResult(ctx context.Context, pickID int64, isCorrect bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE picks SET is_correct = $2 WHERE id = $1`, pickID, isCorrect)
	if err != nil {
		return fmt.Errorf("failed to update result for pick %d: %w", pickID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pick %d not found", pickID)
	}
	return nil
}

// UsedTeamIDs returns the teams the user has picked in other weeks of the
// given phase. Playoff and regular-season picks never block each other.
func (r *PickRepository) UsedTeamIDs(ctx context.Context, userID int64, playoff bool, excludingWeekID int64) ([]int64, error) {
	query := `
		SELECT DISTINCT p.team_id
		FROM picks p
		JOIN weeks w ON w.id = p.week_id
		WHERE p.user_id = $1 AND w.is_playoff_week = $2 AND p.week_id != $3`

	rows, err := r.q.Query(ctx, query, userID, playoff, excludingWeekID)
	if err != nil {
		return nil, fmt.Errorf("failed to query used teams for user %d: %w", userID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan team id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UserIDsWithPick returns the ids of users holding a pick for the week
func (r *PickRepository) UserIDsWithPick(ctx context.Context, weekID int64) ([]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT user_id FROM picks WHERE week_id = $1`, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to query picked users for week %d: %w", weekID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
