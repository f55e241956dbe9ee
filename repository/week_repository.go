package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"survivorpool/database"
	"survivorpool/domain/entities"
)

// WeekRepository implements the WeekRepository interface
type WeekRepository struct {
	q Queryable
}

// NewWeekRepository creates a new week repository
func NewWeekRepository(db *database.DB) *WeekRepository {
	return &WeekRepository{q: db.Pool}
}

// newWeekRepository creates a week repository bound to a transaction
func newWeekRepository(tx Queryable) *WeekRepository {
	return &WeekRepository{q: tx}
}

const weekColumns = `id, week_number, start_date, deadline, is_active, is_complete, is_playoff_week, round_name`

func scanWeek(row pgx.Row) (*entities.Week, error) {
	var w entities.Week
	err := row.Scan(
		&w.ID,
		&w.WeekNumber,
		&w.StartDate,
		&w.Deadline,
		&w.IsActive,
		&w.IsComplete,
		&w.IsPlayoffWeek,
		&w.RoundName,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// GetByID retrieves a week by id
func (r *WeekRepository) GetByID(ctx context.Context, id int64) (*entities.Week, error) {
	query := fmt.Sprintf(`SELECT %s FROM weeks WHERE id = $1`, weekColumns)
	week, err := scanWeek(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get week %d: %w", id, err)
	}
	return week, nil
}

// GetByNumber retrieves a week by its week number
func (r *WeekRepository) GetByNumber(ctx context.Context, weekNumber int) (*entities.Week, error) {
	query := fmt.Sprintf(`SELECT %s FROM weeks WHERE week_number = $1`, weekColumns)
	week, err := scanWeek(r.q.QueryRow(ctx, query, weekNumber))
	if err != nil {
		return nil, fmt.Errorf("failed to get week number %d: %w", weekNumber, err)
	}
	return week, nil
}

// GetActive returns the currently active week
func (r *WeekRepository) GetActive(ctx context.Context) (*entities.Week, error) {
	query := fmt.Sprintf(`SELECT %s FROM weeks WHERE is_active = true`, weekColumns)
	week, err := scanWeek(r.q.QueryRow(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("failed to get active week: %w", err)
	}
	return week, nil
}

// ListIncomplete returns weeks whose results are not yet finalized
func (r *WeekRepository) ListIncomplete(ctx context.Context) ([]*entities.Week, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM weeks
		WHERE is_complete = false
		ORDER BY week_number ASC`, weekColumns)

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query incomplete weeks: %w", err)
	}
	defer rows.Close()

	var weeks []*entities.Week
	for rows.Next() {
		var w entities.Week
		if err := rows.Scan(
			&w.ID,
			&w.WeekNumber,
			&w.StartDate,
			&w.Deadline,
			&w.IsActive,
			&w.IsComplete,
			&w.IsPlayoffWeek,
			&w.RoundName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan week: %w", err)
		}
		weeks = append(weeks, &w)
	}
	return weeks, rows.Err()
}

// Create creates a new week and fills in its generated id
func (r *WeekRepository) Create(ctx context.Context, week *entities.Week) error {
	query := `
		INSERT INTO weeks (week_number, start_date, deadline, is_active, is_complete, is_playoff_week, round_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.q.QueryRow(ctx, query,
		week.WeekNumber,
		week.StartDate,
		week.Deadline,
		week.IsActive,
		week.IsComplete,
		week.IsPlayoffWeek,
		week.RoundName,
	).Scan(&week.ID)
	if err != nil {
		return fmt.Errorf("failed to create week %d: %w", week.WeekNumber, err)
	}
	return nil
}

// SetActive clears the previous active week and marks the given week active
// in one statement, so no interleaving can observe two active weeks
func (r *WeekRepository) SetActive(ctx context.Context, weekID int64) error {
	query := `UPDATE weeks SET is_active = (id = $1)`

	tag, err := r.q.Exec(ctx, query, weekID)
	if err != nil {
		return fmt.Errorf("failed to set active week %d: %w", weekID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("week %d not found", weekID)
	}
	return nil
}

// MarkComplete flags a week's results as finalized
func (r *WeekRepository) MarkComplete(ctx context.Context, weekID int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE weeks SET is_complete = true WHERE id = $1`, weekID)
	if err != nil {
		return fmt.Errorf("failed to mark week %d complete: %w", weekID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("week %d not found", weekID)
	}
	return nil
}
