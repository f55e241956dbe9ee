package entities

import "time"

// User represents a pool entrant. Elimination is a status flag, never a
// deletion: eliminated users stay on the roster for display and history.
type User struct {
	ID               int64     `db:"id"`
	Username         string    `db:"username"`
	Email            string    `db:"email"`
	LivesRemaining   int       `db:"lives_remaining"`
	IsEliminated     bool      `db:"is_eliminated"`
	CumulativeSpread float64   `db:"cumulative_spread"`
	HasPaid          bool      `db:"has_paid"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// IsActive reports whether the user is still alive in the pool
func (u *User) IsActive() bool {
	return !u.IsEliminated
}

// OnLastLife reports whether the user would be eliminated by one more loss
func (u *User) OnLastLife() bool {
	return !u.IsEliminated && u.LivesRemaining == 1
}
