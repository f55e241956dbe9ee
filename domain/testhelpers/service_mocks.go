package testhelpers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"survivorpool/domain/entities"
)

// MockEligibilityService is a mock implementation of EligibilityService
type MockEligibilityService struct {
	mock.Mock
}

func (m *MockEligibilityService) EligibleTeams(ctx context.Context, userID, weekID int64) ([]*entities.Team, error) {
	args := m.Called(ctx, userID, weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Team), args.Error(1)
}

func (m *MockEligibilityService) CheckTeam(ctx context.Context, user *entities.User, week *entities.Week, teamID int64) error {
	args := m.Called(ctx, user, week, teamID)
	return args.Error(0)
}

// MockStandingsService is a mock implementation of StandingsService
type MockStandingsService struct {
	mock.Mock
}

func (m *MockStandingsService) RecalculateUser(ctx context.Context, userID int64) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockStandingsService) Standings(ctx context.Context) (*entities.Standings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Standings), args.Error(1)
}
