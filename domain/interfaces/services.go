package interfaces

import (
	"context"

	"survivorpool/domain/entities"
)

// EligibilityService computes which teams a user may legally pick in a week
type EligibilityService interface {
	// EligibleTeams returns the teams the user may pick for the week,
	// ordered by name. An empty result is valid.
	EligibleTeams(ctx context.Context, userID, weekID int64) ([]*entities.Team, error)

	// CheckTeam validates a single team against every eligibility rule for
	// the user and week, returning a typed error naming the violated rule
	CheckTeam(ctx context.Context, user *entities.User, week *entities.Week, teamID int64) error
}

// PickService is the authoritative write path for the pick ledger
type PickService interface {
	// SubmitPick creates or updates the user's pick for the week after all
	// precondition checks, and recomputes the user's cumulative spread
	SubmitPick(ctx context.Context, userID, weekID, teamID int64) (*entities.Pick, error)

	// GetPick returns the user's pick for the week, nil when absent
	GetPick(ctx context.Context, userID, weekID int64) (*entities.Pick, error)
}

// ResultService processes a completed week's game outcomes
type ResultService interface {
	// ProcessWeekResults marks every pick in the week correct or incorrect,
	// deducts lives, flags eliminations, applies the revival rule, and marks
	// the week complete. Safe to re-invoke: already-resolved picks are
	// never re-applied.
	ProcessWeekResults(ctx context.Context, weekID int64) error
}

// AutopickService synthesizes picks for users who missed the deadline
type AutopickService interface {
	// ProcessAutopicks fills a pick for every active user without one,
	// using the best-available-team heuristic. Idempotent: users holding
	// any pick are skipped.
	ProcessAutopicks(ctx context.Context, weekID int64) (*entities.AutopickReport, error)
}

// StandingsService derives cumulative spreads and pool rankings
type StandingsService interface {
	// RecalculateUser recomputes and stores the user's cumulative spread
	// from every pick they have made
	RecalculateUser(ctx context.Context, userID int64) (float64, error)

	// Standings returns active users ranked by lives then spread, plus the
	// eliminated list
	Standings(ctx context.Context) (*entities.Standings, error)
}

// RosterService manages pool entrants outside of weekly play
type RosterService interface {
	// Register creates a new entrant with the configured starting lives
	Register(ctx context.Context, username, email string) (*entities.User, error)

	// PickHistory returns the user's season pick history with tallies
	PickHistory(ctx context.Context, userID int64) (*entities.PickSummary, error)

	// UsersWithoutPick lists active users lacking a pick for the week
	UsersWithoutPick(ctx context.Context, weekID int64) ([]*entities.User, error)

	// SetPaid updates an entrant's payment flag
	SetPaid(ctx context.Context, userID int64, paid bool) error

	// PaymentSummary aggregates entry-fee collection across the roster
	PaymentSummary(ctx context.Context) (*entities.PaymentSummary, error)
}

// WeekService manages week lifecycle operations
type WeekService interface {
	// CreateWeek creates a week after validating its number is unused
	CreateWeek(ctx context.Context, week *entities.Week) (*entities.Week, error)

	// SetActiveWeek atomically moves the active flag to the given week
	SetActiveWeek(ctx context.Context, weekID int64) error

	// RecordGameResults sets home_team_won on the given games of a week
	RecordGameResults(ctx context.Context, weekID int64, results map[int64]bool) error

	// CurrentWeek returns the active week, nil when none is set
	CurrentWeek(ctx context.Context) (*entities.Week, error)
}
