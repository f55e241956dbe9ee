package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"survivorpool/database"
	"survivorpool/domain/entities"
)

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q Queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepository creates a user repository bound to a transaction
func newUserRepository(tx Queryable) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `id, username, email, lives_remaining, is_eliminated, cumulative_spread, has_paid, created_at, updated_at`

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.LivesRemaining,
		&u.IsEliminated,
		&u.CumulativeSpread,
		&u.HasPaid,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) scanUsers(rows pgx.Rows) ([]*entities.User, error) {
	defer rows.Close()
	var users []*entities.User
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.Email,
			&u.LivesRemaining,
			&u.IsEliminated,
			&u.CumulativeSpread,
			&u.HasPaid,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1`, userColumns)
	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", username, err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	user, err := scanUser(r.q.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// Create creates a new user with the given starting lives
func (r *UserRepository) Create(ctx context.Context, username, email string, startingLives int) (*entities.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (username, email, lives_remaining)
		VALUES ($1, $2, $3)
		RETURNING %s`, userColumns)

	user, err := scanUser(r.q.QueryRow(ctx, query, username, email, startingLives))
	if err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", username, err)
	}
	return user, nil
}

// GetActive returns non-eliminated users in standings order
func (r *UserRepository) GetActive(ctx context.Context) ([]*entities.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE is_eliminated = false
		ORDER BY lives_remaining DESC, cumulative_spread ASC, username ASC`, userColumns)

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active users: %w", err)
	}
	return r.scanUsers(rows)
}

// GetEliminated returns eliminated users ordered by username
func (r *UserRepository) GetEliminated(ctx context.Context) ([]*entities.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE is_eliminated = true
		ORDER BY username ASC`, userColumns)

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query eliminated users: %w", err)
	}
	return r.scanUsers(rows)
}

// GetAll returns every user ordered by username
func (r *UserRepository) GetAll(ctx context.Context) ([]*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY username ASC`, userColumns)

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	return r.scanUsers(rows)
}

// UpdateLives sets a user's lives and elimination flag atomically
func (r *UserRepository) UpdateLives(ctx context.Context, userID int64, lives int, eliminated bool) error {
	query := `
		UPDATE users
		SET lives_remaining = $2, is_eliminated = $3, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, userID, lives, eliminated)
	if err != nil {
		return fmt.Errorf("failed to update lives for user %d: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}
	return nil
}

// UpdateCumulativeSpread stores a freshly recomputed cumulative spread
func (r *UserRepository) UpdateCumulativeSpread(ctx context.Context, userID int64, spread float64) error {
	query := `
		UPDATE users
		SET cumulative_spread = $2, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, userID, spread)
	if err != nil {
		return fmt.Errorf("failed to update cumulative spread for user %d: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}
	return nil
}

// SetPaid updates the user's entry-fee payment flag
func (r *UserRepository) SetPaid(ctx context.Context, userID int64, hasPaid bool) error {
	query := `
		UPDATE users
		SET has_paid = $2, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, userID, hasPaid)
	if err != nil {
		return fmt.Errorf("failed to update payment flag for user %d: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}
	return nil
}
