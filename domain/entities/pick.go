package entities

import "time"

// Pick is the single selection a user holds for a week. At most one pick per
// (user, week) ever exists; the storage layer enforces the uniqueness.
// IsCorrect stays nil until the week's results are processed, and doubles as
// the "already applied" marker that keeps result processing idempotent.
type Pick struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	WeekID    int64     `db:"week_id"`
	TeamID    int64     `db:"team_id"`
	IsCorrect *bool     `db:"is_correct"`
	CreatedAt time.Time `db:"created_at"`
}

// Resolved reports whether the pick's result has been recorded
func (p *Pick) Resolved() bool {
	return p.IsCorrect != nil
}

// Correct reports whether the pick has been resolved as a win
func (p *Pick) Correct() bool {
	return p.IsCorrect != nil && *p.IsCorrect
}

// Incorrect reports whether the pick has been resolved as a loss
func (p *Pick) Incorrect() bool {
	return p.IsCorrect != nil && !*p.IsCorrect
}
