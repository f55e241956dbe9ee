package testhelpers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"survivorpool/domain/entities"
	"survivorpool/domain/events"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, username, email string, startingLives int) (*entities.User, error) {
	args := m.Called(ctx, username, email, startingLives)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetActive(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetEliminated(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLives(ctx context.Context, userID int64, lives int, eliminated bool) error {
	args := m.Called(ctx, userID, lives, eliminated)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateCumulativeSpread(ctx context.Context, userID int64, spread float64) error {
	args := m.Called(ctx, userID, spread)
	return args.Error(0)
}

func (m *MockUserRepository) SetPaid(ctx context.Context, userID int64, hasPaid bool) error {
	args := m.Called(ctx, userID, hasPaid)
	return args.Error(0)
}

// MockTeamRepository is a mock implementation of TeamRepository
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id int64) (*entities.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*entities.Team, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByName(ctx context.Context, name string) (*entities.Team, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) Create(ctx context.Context, name, conference string) (*entities.Team, error) {
	args := m.Called(ctx, name, conference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) GetAll(ctx context.Context) ([]*entities.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Team), args.Error(1)
}

// MockWeekRepository is a mock implementation of WeekRepository
type MockWeekRepository struct {
	mock.Mock
}

func (m *MockWeekRepository) GetByID(ctx context.Context, id int64) (*entities.Week, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Week), args.Error(1)
}

func (m *MockWeekRepository) GetByNumber(ctx context.Context, weekNumber int) (*entities.Week, error) {
	args := m.Called(ctx, weekNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Week), args.Error(1)
}

func (m *MockWeekRepository) GetActive(ctx context.Context) (*entities.Week, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Week), args.Error(1)
}

func (m *MockWeekRepository) ListIncomplete(ctx context.Context) ([]*entities.Week, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Week), args.Error(1)
}

func (m *MockWeekRepository) Create(ctx context.Context, week *entities.Week) error {
	args := m.Called(ctx, week)
	return args.Error(0)
}

func (m *MockWeekRepository) SetActive(ctx context.Context, weekID int64) error {
	args := m.Called(ctx, weekID)
	return args.Error(0)
}

func (m *MockWeekRepository) MarkComplete(ctx context.Context, weekID int64) error {
	args := m.Called(ctx, weekID)
	return args.Error(0)
}

// MockGameRepository is a mock implementation of GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, game *entities.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) GetByID(ctx context.Context, id int64) (*entities.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Game), args.Error(1)
}

func (m *MockGameRepository) GetByWeek(ctx context.Context, weekID int64) ([]*entities.Game, error) {
	args := m.Called(ctx, weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Game), args.Error(1)
}

func (m *MockGameRepository) GetByTeamAndWeek(ctx context.Context, teamID, weekID int64) (*entities.Game, error) {
	args := m.Called(ctx, teamID, weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Game), args.Error(1)
}

func (m *MockGameRepository) SetResult(ctx context.Context, gameID int64, homeTeamWon bool) error {
	args := m.Called(ctx, gameID, homeTeamWon)
	return args.Error(0)
}

func (m *MockGameRepository) PlayoffLoserNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockPickRepository is a mock implementation of PickRepository
type MockPickRepository struct {
	mock.Mock
}

func (m *MockPickRepository) GetByUserAndWeek(ctx context.Context, userID, weekID int64) (*entities.Pick, error) {
	args := m.Called(ctx, userID, weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Pick), args.Error(1)
}

func (m *MockPickRepository) GetByWeek(ctx context.Context, weekID int64) ([]*entities.Pick, error) {
	args := m.Called(ctx, weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Pick), args.Error(1)
}

func (m *MockPickRepository) GetByUser(ctx context.Context, userID int64) ([]*entities.Pick, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Pick), args.Error(1)
}

func (m *MockPickRepository) Upsert(ctx context.Context, pick *entities.Pick) error {
	args := m.Called(ctx, pick)
	return args.Error(0)
}

func (m *MockPickRepository) UpdateResult(ctx context.Context, pickID int64, isCorrect bool) error {
	args := m.Called(ctx, pickID, isCorrect)
	return args.Error(0)
}

func (m *MockPickRepository) UsedTeamIDs(ctx context.Context, userID int64, playoff bool, excludingWeekID int64) ([]int64, error) {
	args := m.Called(ctx, userID, playoff, excludingWeekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockPickRepository) UserIDsWithPick(ctx context.Context, weekID int64) ([]int64, error) {
	args := m.Called(ctx, weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
