package interfaces

import (
	"context"

	"survivorpool/domain/entities"
	"survivorpool/domain/events"
)

// UserRepository defines the interface for roster data access
type UserRepository interface {
	// GetByID retrieves a user by id, nil when absent
	GetByID(ctx context.Context, id int64) (*entities.User, error)

	// GetByUsername retrieves a user by username, nil when absent
	GetByUsername(ctx context.Context, username string) (*entities.User, error)

	// GetByEmail retrieves a user by email, nil when absent
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// Create creates a new user with the given starting lives
	Create(ctx context.Context, username, email string, startingLives int) (*entities.User, error)

	// GetActive returns non-eliminated users ordered by lives remaining
	// descending, then cumulative spread ascending
	GetActive(ctx context.Context) ([]*entities.User, error)

	// GetEliminated returns eliminated users ordered by username
	GetEliminated(ctx context.Context) ([]*entities.User, error)

	// GetAll returns every user ordered by username
	GetAll(ctx context.Context) ([]*entities.User, error)

	// UpdateLives sets a user's lives and elimination flag atomically
	UpdateLives(ctx context.Context, userID int64, lives int, eliminated bool) error

	// UpdateCumulativeSpread stores a freshly recomputed cumulative spread
	UpdateCumulativeSpread(ctx context.Context, userID int64, spread float64) error

	// SetPaid updates the user's entry-fee payment flag
	SetPaid(ctx context.Context, userID int64, hasPaid bool) error
}

// TeamRepository defines the interface for team reference data access
type TeamRepository interface {
	// GetByID retrieves a team by id, nil when absent
	GetByID(ctx context.Context, id int64) (*entities.Team, error)

	// GetByIDs retrieves several teams at once, keyed by id
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*entities.Team, error)

	// GetByName retrieves a team by name, nil when absent
	GetByName(ctx context.Context, name string) (*entities.Team, error)

	// Create creates a new team
	Create(ctx context.Context, name, conference string) (*entities.Team, error)

	// GetAll returns every team ordered by name
	GetAll(ctx context.Context) ([]*entities.Team, error)
}

// WeekRepository defines the interface for week data access
type WeekRepository interface {
	// GetByID retrieves a week by id, nil when absent
	GetByID(ctx context.Context, id int64) (*entities.Week, error)

	// GetByNumber retrieves a week by its week number, nil when absent
	GetByNumber(ctx context.Context, weekNumber int) (*entities.Week, error)

	// GetActive returns the currently active week, nil when none is set
	GetActive(ctx context.Context) (*entities.Week, error)

	// ListIncomplete returns weeks whose results are not yet finalized,
	// ordered by week number
	ListIncomplete(ctx context.Context) ([]*entities.Week, error)

	// Create creates a new week and fills in its generated id
	Create(ctx context.Context, week *entities.Week) error

	// SetActive atomically clears the previous active week and marks the
	// given week active in a single statement
	SetActive(ctx context.Context, weekID int64) error

	// MarkComplete flags a week's results as finalized
	MarkComplete(ctx context.Context, weekID int64) error
}

// GameRepository defines the interface for game data access
type GameRepository interface {
	// Create creates a new game and fills in its generated id
	Create(ctx context.Context, game *entities.Game) error

	// GetByID retrieves a game by id, nil when absent
	GetByID(ctx context.Context, id int64) (*entities.Game, error)

	// GetByWeek returns every game scheduled in a week
	GetByWeek(ctx context.Context, weekID int64) ([]*entities.Game, error)

	// GetByTeamAndWeek finds the game a tracked team plays in a week,
	// nil when the team has no game that week
	GetByTeamAndWeek(ctx context.Context, teamID, weekID int64) (*entities.Game, error)

	// SetResult records the winner of a game
	SetResult(ctx context.Context, gameID int64, homeTeamWon bool) error

	// PlayoffLoserNames returns the names of teams that have lost any
	// completed playoff-week game (the CFP-eliminated set)
	PlayoffLoserNames(ctx context.Context) ([]string, error)
}

// PickRepository defines the interface for pick ledger data access
type PickRepository interface {
	// GetByUserAndWeek returns the user's pick for a week, nil when absent
	GetByUserAndWeek(ctx context.Context, userID, weekID int64) (*entities.Pick, error)

	// GetByWeek returns every pick made for a week
	GetByWeek(ctx context.Context, weekID int64) ([]*entities.Pick, error)

	// GetByUser returns a user's picks across all weeks ordered by week number
	GetByUser(ctx context.Context, userID int64) ([]*entities.Pick, error)

	// Upsert creates the pick or, when one already exists for the
	// (user, week) pair, overwrites its team and timestamp. The storage
	// layer's uniqueness constraint makes concurrent submissions safe.
	Upsert(ctx context.Context, pick *entities.Pick) error

	// UpdateResult records whether a pick was correct
	UpdateResult(ctx context.Context, pickID int64, isCorrect bool) error

	// UsedTeamIDs returns the teams the user has picked in other weeks of
	// the given phase (playoff or regular season), excluding the week
	// currently being evaluated
	UsedTeamIDs(ctx context.Context, userID int64, playoff bool, excludingWeekID int64) ([]int64, error)

	// UserIDsWithPick returns the ids of users holding a pick for the week
	UserIDsWithPick(ctx context.Context, weekID int64) ([]int64, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event) error
}
