package services

import (
	"context"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"survivorpool/config"
	"survivorpool/domain/entities"
	"survivorpool/domain/testhelpers"
)

type autopickMocks struct {
	userRepo  *testhelpers.MockUserRepository
	teamRepo  *testhelpers.MockTeamRepository
	weekRepo  *testhelpers.MockWeekRepository
	gameRepo  *testhelpers.MockGameRepository
	pickRepo  *testhelpers.MockPickRepository
	standings *testhelpers.MockStandingsService
	publisher *testhelpers.MockEventPublisher
	clock     *clock.Mock
}

func newAutopickMocks() *autopickMocks {
	mockClock := clock.NewMock()
	mockClock.Set(deadline.Add(time.Minute)) // Past the deadline, before kickoffs
	return &autopickMocks{
		userRepo:  new(testhelpers.MockUserRepository),
		teamRepo:  new(testhelpers.MockTeamRepository),
		weekRepo:  new(testhelpers.MockWeekRepository),
		gameRepo:  new(testhelpers.MockGameRepository),
		pickRepo:  new(testhelpers.MockPickRepository),
		standings: new(testhelpers.MockStandingsService),
		publisher: new(testhelpers.MockEventPublisher),
		clock:     mockClock,
	}
}

func (m *autopickMocks) service() *autopickService {
	return NewAutopickService(
		m.userRepo, m.teamRepo, m.weekRepo, m.gameRepo, m.pickRepo,
		m.standings, m.publisher, NewWeekLocker(), m.clock,
	).(*autopickService)
}

func TestAutopickService_ProcessAutopicks_PicksBiggestFavoriteUnderCap(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	m := newAutopickMocks()

	week := testWeek(10, 5)
	alice := testUser(1, "alice", 2)

	// Favorites of 3, 9, 16 and 17 points. 17 sits over the cap, so the
	// 16-point favorite is the best available.
	games := []*entities.Game{
		trackedGame(1, 10, 1, 2, -3),
		trackedGame(2, 10, 3, 4, -9),
		trackedGame(3, 10, 5, 6, -16),
		trackedGame(4, 10, 7, 8, -17),
	}
	teams := teamMap(
		&entities.Team{ID: 1, Name: "Alabama"}, &entities.Team{ID: 2, Name: "Buffalo"},
		&entities.Team{ID: 3, Name: "Colgate"}, &entities.Team{ID: 4, Name: "Drake"},
		&entities.Team{ID: 5, Name: "Elon"}, &entities.Team{ID: 6, Name: "Furman"},
		&entities.Team{ID: 7, Name: "Georgia"}, &entities.Team{ID: 8, Name: "Harvard"},
	)

	m.weekRepo.On("GetByID", ctx, int64(10)).Return(week, nil)
	m.userRepo.On("GetActive", ctx).Return([]*entities.User{alice}, nil)
	m.pickRepo.On("UserIDsWithPick", ctx, int64(10)).Return([]int64{}, nil)
	m.gameRepo.On("GetByWeek", ctx, int64(10)).Return(games, nil)
	m.teamRepo.On("GetByIDs", ctx, mock.AnythingOfType("[]int64")).Return(teams, nil)
	m.pickRepo.On("UsedTeamIDs", ctx, int64(1), false, int64(10)).Return([]int64{}, nil)
	m.pickRepo.On("Upsert", ctx, mock.MatchedBy(func(p *entities.Pick) bool {
		return p.UserID == 1 && p.TeamID == 5
	})).Return(nil)
	m.standings.On("RecalculateUser", ctx, int64(1)).Return(16.0, nil)
	m.publisher.On("Publish", mock.Anything).Return(nil)

	report, err := m.service().ProcessAutopicks(ctx, 10)
	require.NoError(t, err)
	require.True(t, report.Processed)
	require.Len(t, report.Made, 1)
	assert.Equal(t, "Elon", report.Made[0].TeamName)
	assert.Equal(t, -16.0, report.Made[0].Spread)
	assert.Empty(t, report.Failed)
	m.pickRepo.AssertExpectations(t)
}

func TestAutopickService_ProcessAutopicks_FallsBackToSmallestUnderdog(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	m := newAutopickMocks()

	week := testWeek(10, 5)
	alice := testUser(1, "alice", 2)

	// Every available side is an underdog (the favorites are already used).
	// The 2-point dog beats the 7-point dog.
	games := []*entities.Game{
		trackedGame(1, 10, 1, 2, -2),
		trackedGame(2, 10, 3, 4, -7),
	}
	teams := teamMap(
		&entities.Team{ID: 1, Name: "Alabama"}, &entities.Team{ID: 2, Name: "Buffalo"},
		&entities.Team{ID: 3, Name: "Colgate"}, &entities.Team{ID: 4, Name: "Drake"},
	)

	m.weekRepo.On("GetByID", ctx, int64(10)).Return(week, nil)
	m.userRepo.On("GetActive", ctx).Return([]*entities.User{alice}, nil)
	m.pickRepo.On("UserIDsWithPick", ctx, int64(10)).Return([]int64{}, nil)
	m.gameRepo.On("GetByWeek", ctx, int64(10)).Return(games, nil)
	m.teamRepo.On("GetByIDs", ctx, mock.AnythingOfType("[]int64")).Return(teams, nil)
	m.pickRepo.On("UsedTeamIDs", ctx, int64(1), false, int64(10)).Return([]int64{1, 3}, nil)
	m.pickRepo.On("Upsert", ctx, mock.MatchedBy(func(p *entities.Pick) bool {
		return p.TeamID == 2
	})).Return(nil)
	m.standings.On("RecalculateUser", ctx, int64(1)).Return(-2.0, nil)
	m.publisher.On("Publish", mock.Anything).Return(nil)

	report, err := m.service().ProcessAutopicks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, report.Made, 1)
	assert.Equal(t, "Buffalo", report.Made[0].TeamName)
	assert.Contains(t, report.Made[0].Description, "underdog by 2.0")
}

func TestAutopickService_ProcessAutopicks_RefusesBeforeDeadline(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	m := newAutopickMocks()
	m.clock.Set(deadline.Add(-time.Hour))

	m.weekRepo.On("GetByID", ctx, int64(10)).Return(testWeek(10, 5), nil)

	report, err := m.service().ProcessAutopicks(ctx, 10)
	require.NoError(t, err)
	assert.False(t, report.Processed)
	assert.NotEmpty(t, report.Reason)
	m.pickRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestAutopickService_ProcessAutopicks_SkipsUsersWithPick(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	m := newAutopickMocks()

	alice := testUser(1, "alice", 2)

	m.weekRepo.On("GetByID", ctx, int64(10)).Return(testWeek(10, 5), nil)
	m.userRepo.On("GetActive", ctx).Return([]*entities.User{alice}, nil)
	m.pickRepo.On("UserIDsWithPick", ctx, int64(10)).Return([]int64{1}, nil)
	m.publisher.On("Publish", mock.Anything).Return(nil)

	report, err := m.service().ProcessAutopicks(ctx, 10)
	require.NoError(t, err)
	assert.True(t, report.Processed)
	assert.Empty(t, report.Made)
	m.pickRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestAutopickService_ProcessAutopicks_ReportsUnfillableUser(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	m := newAutopickMocks()

	week := testWeek(10, 5)
	alice := testUser(1, "alice", 2)

	// The only game has both sides already used
	games := []*entities.Game{trackedGame(1, 10, 1, 2, -3)}
	teams := teamMap(
		&entities.Team{ID: 1, Name: "Alabama"},
		&entities.Team{ID: 2, Name: "Buffalo"},
	)

	m.weekRepo.On("GetByID", ctx, int64(10)).Return(week, nil)
	m.userRepo.On("GetActive", ctx).Return([]*entities.User{alice}, nil)
	m.pickRepo.On("UserIDsWithPick", ctx, int64(10)).Return([]int64{}, nil)
	m.gameRepo.On("GetByWeek", ctx, int64(10)).Return(games, nil)
	m.teamRepo.On("GetByIDs", ctx, mock.AnythingOfType("[]int64")).Return(teams, nil)
	m.pickRepo.On("UsedTeamIDs", ctx, int64(1), false, int64(10)).Return([]int64{1, 2}, nil)
	m.publisher.On("Publish", mock.Anything).Return(nil)

	report, err := m.service().ProcessAutopicks(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, report.Made)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "alice", report.Failed[0].Username)
	// An unfillable autopick carries no life penalty
	m.userRepo.AssertNotCalled(t, "UpdateLives", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAutopickService_ProcessAutopicks_TieBreaksOnTeamName(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	m := newAutopickMocks()

	week := testWeek(10, 5)
	alice := testUser(1, "alice", 2)

	// Two 10-point favorites: the alphabetically first name wins
	games := []*entities.Game{
		trackedGame(1, 10, 3, 4, -10),
		trackedGame(2, 10, 1, 2, -10),
	}
	teams := teamMap(
		&entities.Team{ID: 1, Name: "Alabama"}, &entities.Team{ID: 2, Name: "Buffalo"},
		&entities.Team{ID: 3, Name: "Colgate"}, &entities.Team{ID: 4, Name: "Drake"},
	)

	m.weekRepo.On("GetByID", ctx, int64(10)).Return(week, nil)
	m.userRepo.On("GetActive", ctx).Return([]*entities.User{alice}, nil)
	m.pickRepo.On("UserIDsWithPick", ctx, int64(10)).Return([]int64{}, nil)
	m.gameRepo.On("GetByWeek", ctx, int64(10)).Return(games, nil)
	m.teamRepo.On("GetByIDs", ctx, mock.AnythingOfType("[]int64")).Return(teams, nil)
	m.pickRepo.On("UsedTeamIDs", ctx, int64(1), false, int64(10)).Return([]int64{}, nil)
	m.pickRepo.On("Upsert", ctx, mock.MatchedBy(func(p *entities.Pick) bool {
		return p.TeamID == 1
	})).Return(nil)
	m.standings.On("RecalculateUser", ctx, int64(1)).Return(10.0, nil)
	m.publisher.On("Publish", mock.Anything).Return(nil)

	report, err := m.service().ProcessAutopicks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, report.Made, 1)
	assert.Equal(t, "Alabama", report.Made[0].TeamName)
}

func TestAutopickService_ProcessAutopicks_UnderdogBeatsPickem(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	m := newAutopickMocks()

	week := testWeek(10, 5)
	alice := testUser(1, "alice", 2)

	// A pick'em game and a 2-point game whose favorite is already used.
	// A pick'em side is never auto-picked, so the 2-point dog gets the nod.
	games := []*entities.Game{
		trackedGame(1, 10, 1, 2, 0),
		trackedGame(2, 10, 3, 4, -2),
	}
	teams := teamMap(
		&entities.Team{ID: 1, Name: "Alabama"}, &entities.Team{ID: 2, Name: "Buffalo"},
		&entities.Team{ID: 3, Name: "Colgate"}, &entities.Team{ID: 4, Name: "Drake"},
	)

	m.weekRepo.On("GetByID", ctx, int64(10)).Return(week, nil)
	m.userRepo.On("GetActive", ctx).Return([]*entities.User{alice}, nil)
	m.pickRepo.On("UserIDsWithPick", ctx, int64(10)).Return([]int64{}, nil)
	m.gameRepo.On("GetByWeek", ctx, int64(10)).Return(games, nil)
	m.teamRepo.On("GetByIDs", ctx, mock.AnythingOfType("[]int64")).Return(teams, nil)
	m.pickRepo.On("UsedTeamIDs", ctx, int64(1), false, int64(10)).Return([]int64{3}, nil)
	m.pickRepo.On("Upsert", ctx, mock.MatchedBy(func(p *entities.Pick) bool {
		return p.TeamID == 4
	})).Return(nil)
	m.standings.On("RecalculateUser", ctx, int64(1)).Return(-2.0, nil)
	m.publisher.On("Publish", mock.Anything).Return(nil)

	report, err := m.service().ProcessAutopicks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, report.Made, 1)
	assert.Equal(t, "Drake", report.Made[0].TeamName)
	assert.Contains(t, report.Made[0].Description, "underdog by 2.0")
}

func TestAutopickService_ProcessAutopicks_PickemOnlySlateUnfillable(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	m := newAutopickMocks()

	week := testWeek(10, 5)
	alice := testUser(1, "alice", 2)

	// Both remaining sides are pick'ems, so no pick can be synthesized
	games := []*entities.Game{trackedGame(1, 10, 1, 2, 0)}
	teams := teamMap(
		&entities.Team{ID: 1, Name: "Alabama"},
		&entities.Team{ID: 2, Name: "Buffalo"},
	)

	m.weekRepo.On("GetByID", ctx, int64(10)).Return(week, nil)
	m.userRepo.On("GetActive", ctx).Return([]*entities.User{alice}, nil)
	m.pickRepo.On("UserIDsWithPick", ctx, int64(10)).Return([]int64{}, nil)
	m.gameRepo.On("GetByWeek", ctx, int64(10)).Return(games, nil)
	m.teamRepo.On("GetByIDs", ctx, mock.AnythingOfType("[]int64")).Return(teams, nil)
	m.pickRepo.On("UsedTeamIDs", ctx, int64(1), false, int64(10)).Return([]int64{}, nil)
	m.publisher.On("Publish", mock.Anything).Return(nil)

	report, err := m.service().ProcessAutopicks(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, report.Made)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "alice", report.Failed[0].Username)
	m.pickRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
