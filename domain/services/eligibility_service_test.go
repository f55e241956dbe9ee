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

type eligibilityMocks struct {
	userRepo *testhelpers.MockUserRepository
	teamRepo *testhelpers.MockTeamRepository
	weekRepo *testhelpers.MockWeekRepository
	gameRepo *testhelpers.MockGameRepository
	pickRepo *testhelpers.MockPickRepository
	clock    *clock.Mock
}

func newEligibilityMocks() *eligibilityMocks {
	mockClock := clock.NewMock()
	mockClock.Set(deadline.Add(-time.Hour))
	return &eligibilityMocks{
		userRepo: new(testhelpers.MockUserRepository),
		teamRepo: new(testhelpers.MockTeamRepository),
		weekRepo: new(testhelpers.MockWeekRepository),
		gameRepo: new(testhelpers.MockGameRepository),
		pickRepo: new(testhelpers.MockPickRepository),
		clock:    mockClock,
	}
}

func (m *eligibilityMocks) service() *eligibilityService {
	return NewEligibilityService(m.userRepo, m.teamRepo, m.weekRepo, m.gameRepo, m.pickRepo, m.clock).(*eligibilityService)
}

func TestEligibilityService_EligibleTeams_SpreadCapInclusive(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	m := newEligibilityMocks()

	user := testUser(1, "alice", 2)
	week := testWeek(10, 5)

	// Alabama favored by exactly the 16-point cap, Colgate by half a point
	// more. Underdogs on either side stay pickable.
	games := []*entities.Game{
		trackedGame(1, 10, 1, 2, -16),
		trackedGame(2, 10, 3, 4, -16.5),
	}
	teams := teamMap(
		&entities.Team{ID: 1, Name: "Alabama"},
		&entities.Team{ID: 2, Name: "Buffalo"},
		&entities.Team{ID: 3, Name: "Colgate"},
		&entities.Team{ID: 4, Name: "Drake"},
	)

	m.userRepo.On("GetByID", ctx, int64(1)).Return(user, nil)
	m.weekRepo.On("GetByID", ctx, int64(10)).Return(week, nil)
	m.gameRepo.On("GetByWeek", ctx, int64(10)).Return(games, nil)
	m.teamRepo.On("GetByIDs", ctx, mock.AnythingOfType("[]int64")).Return(teams, nil)
	m.pickRepo.On("UsedTeamIDs", ctx, int64(1), false, int64(10)).Return([]int64{}, nil)

	eligible, err := m.service().EligibleTeams(ctx, 1, 10)
	require.NoError(t, err)

	names := make([]string, 0, len(eligible))
	for _, team := range eligible {
		names = append(names, team.Name)
	}
	assert.Equal(t, []string{"Alabama", "Buffalo", "Drake"}, names)
}

func TestEligibilityService_EligibleTeams_ExcludesUsedTeams(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	m := newEligibilityMocks()

	user := testUser(1, "alice", 2)
	week := testWeek(10, 5)
	games := []*entities.Game{trackedGame(1, 10, 1, 2, -3)}
	teams := teamMap(
		&entities.Team{ID: 1, Name: "Alabama"},
		&entities.Team{ID: 2, Name: "Buffalo"},
	)

	m.userRepo.On("GetByID", ctx, int64(1)).Return(user, nil)
	m.weekRepo.On("GetByID", ctx, int64(10)).Return(week, nil)
	m.gameRepo.On("GetByWeek", ctx, int64(10)).Return(games, nil)
	m.teamRepo.On("GetByIDs", ctx, mock.AnythingOfType("[]int64")).Return(teams, nil)
	m.pickRepo.On("UsedTeamIDs", ctx, int64(1), false, int64(10)).Return([]int64{1}, nil)

	eligible, err := m.service().EligibleTeams(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, "Buffalo", eligible[0].Name)
}

func TestEligibilityService_EligibleTeams_ExcludesStartedGames(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	m := newEligibilityMocks()
	m.clock.Set(saturday.Add(time.Minute)) // After the early kickoff

	user := testUser(1, "alice", 2)
	week := testWeek(10, 5)

	lateGame := trackedGame(2, 10, 3, 4, -3)
	lateGame.GameTime = tsp(saturday.Add(3 * time.Hour))
	games := []*entities.Game{trackedGame(1, 10, 1, 2, -3), lateGame}
	teams := teamMap(
		&entities.Team{ID: 1, Name: "Alabama"},
		&entities.Team{ID: 2, Name: "Buffalo"},
		&entities.Team{ID: 3, Name: "Colgate"},
		&entities.Team{ID: 4, Name: "Drake"},
	)

	m.userRepo.On("GetByID", ctx, int64(1)).Return(user, nil)
	m.weekRepo.On("GetByID", ctx, int64(10)).Return(week, nil)
	m.gameRepo.On("GetByWeek", ctx, int64(10)).Return(games, nil)
	m.teamRepo.On("GetByIDs", ctx, mock.AnythingOfType("[]int64")).Return(teams, nil)
	m.pickRepo.On("UsedTeamIDs", ctx, int64(1), false, int64(10)).Return([]int64{}, nil)

	eligible, err := m.service().EligibleTeams(ctx, 1, 10)
	require.NoError(t, err)

	names := make([]string, 0, len(eligible))
	for _, team := range eligible {
		names = append(names, team.Name)
	}
	assert.Equal(t, []string{"Colgate", "Drake"}, names)
}

func TestEligibilityService_EligibleTeams_PlayoffExcludesCFPLosers(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	m := newEligibilityMocks()

	user := testUser(1, "alice", 2)
	week := playoffWeek(20, 16, "CFP Quarterfinals")
	games := []*entities.Game{trackedGame(1, 20, 1, 2, -3)}
	teams := teamMap(
		&entities.Team{ID: 1, Name: "Alabama"},
		&entities.Team{ID: 2, Name: "Buffalo"},
	)

	m.userRepo.On("GetByID", ctx, int64(1)).Return(user, nil)
	m.weekRepo.On("GetByID", ctx, int64(20)).Return(week, nil)
	m.gameRepo.On("GetByWeek", ctx, int64(20)).Return(games, nil)
	m.gameRepo.On("PlayoffLoserNames", ctx).Return([]string{"Buffalo"}, nil)
	m.teamRepo.On("GetByIDs", ctx, mock.AnythingOfType("[]int64")).Return(teams, nil)
	m.pickRepo.On("UsedTeamIDs", ctx, int64(1), true, int64(20)).Return([]int64{}, nil)

	eligible, err := m.service().EligibleTeams(ctx, 1, 20)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, "Alabama", eligible[0].Name)
}

func TestEligibilityService_EligibleTeams_PhaseIsolation(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	m := newEligibilityMocks()

	user := testUser(1, "alice", 2)
	week := playoffWeek(20, 16, "CFP Round 1")
	games := []*entities.Game{trackedGame(1, 20, 1, 2, -3)}
	teams := teamMap(
		&entities.Team{ID: 1, Name: "Alabama"},
		&entities.Team{ID: 2, Name: "Buffalo"},
	)

	m.userRepo.On("GetByID", ctx, int64(1)).Return(user, nil)
	m.weekRepo.On("GetByID", ctx, int64(20)).Return(week, nil)
	m.gameRepo.On("GetByWeek", ctx, int64(20)).Return(games, nil)
	m.gameRepo.On("PlayoffLoserNames", ctx).Return([]string{}, nil)
	m.teamRepo.On("GetByIDs", ctx, mock.AnythingOfType("[]int64")).Return(teams, nil)

	// Regular-season usage of both teams does not block playoff picks: only
	// playoff-phase picks are consulted
	m.pickRepo.On("UsedTeamIDs", ctx, int64(1), true, int64(20)).Return([]int64{}, nil)

	eligible, err := m.service().EligibleTeams(ctx, 1, 20)
	require.NoError(t, err)
	assert.Len(t, eligible, 2)
	m.pickRepo.AssertCalled(t, "UsedTeamIDs", ctx, int64(1), true, int64(20))
}

func TestEligibilityService_CheckTeam_Reasons(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	user := testUser(1, "alice", 2)
	week := testWeek(10, 5)
	team := &entities.Team{ID: 3, Name: "Colgate"}

	tests := []struct {
		name   string
		setup  func(m *eligibilityMocks)
		reason entities.EligibilityReason
	}{
		{
			name: "spread cap",
			setup: func(m *eligibilityMocks) {
				m.gameRepo.On("GetByTeamAndWeek", ctx, int64(3), int64(10)).Return(trackedGame(1, 10, 3, 4, -16.5), nil)
				m.pickRepo.On("UsedTeamIDs", ctx, int64(1), false, int64(10)).Return([]int64{}, nil)
			},
			reason: entities.ReasonSpreadCap,
		},
		{
			name: "already used",
			setup: func(m *eligibilityMocks) {
				m.gameRepo.On("GetByTeamAndWeek", ctx, int64(3), int64(10)).Return(trackedGame(1, 10, 3, 4, -3), nil)
				m.pickRepo.On("UsedTeamIDs", ctx, int64(1), false, int64(10)).Return([]int64{3}, nil)
			},
			reason: entities.ReasonTeamUsedInPhase,
		},
		{
			name: "game started",
			setup: func(m *eligibilityMocks) {
				m.clock.Set(saturday.Add(time.Minute))
				m.gameRepo.On("GetByTeamAndWeek", ctx, int64(3), int64(10)).Return(trackedGame(1, 10, 3, 4, -3), nil)
				m.pickRepo.On("UsedTeamIDs", ctx, int64(1), false, int64(10)).Return([]int64{}, nil)
			},
			reason: entities.ReasonGameStarted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newEligibilityMocks()
			m.teamRepo.On("GetByID", ctx, int64(3)).Return(team, nil)
			tt.setup(m)

			err := m.service().CheckTeam(ctx, user, week, 3)
			require.Error(t, err)

			var eligErr *entities.EligibilityError
			require.ErrorAs(t, err, &eligErr)
			assert.Equal(t, tt.reason, eligErr.Reason)
			assert.Equal(t, "Colgate", eligErr.TeamName)
		})
	}
}

func TestEligibilityService_CheckTeam_NoGameThatWeek(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	m := newEligibilityMocks()

	m.teamRepo.On("GetByID", ctx, int64(3)).Return(&entities.Team{ID: 3, Name: "Colgate"}, nil)
	m.gameRepo.On("GetByTeamAndWeek", ctx, int64(3), int64(10)).Return(nil, nil)

	err := m.service().CheckTeam(ctx, testUser(1, "alice", 2), testWeek(10, 5), 3)

	var valErr *entities.ValidationError
	require.ErrorAs(t, err, &valErr)
}
