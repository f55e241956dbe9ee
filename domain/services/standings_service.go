package services

import (
	"context"
	"fmt"

	"survivorpool/domain/entities"
	"survivorpool/domain/interfaces"
)

type standingsService struct {
	userRepo interfaces.UserRepository
	gameRepo interfaces.GameRepository
	pickRepo interfaces.PickRepository
}

// NewStandingsService creates a new standings service
func NewStandingsService(
	userRepo interfaces.UserRepository,
	gameRepo interfaces.GameRepository,
	pickRepo interfaces.PickRepository,
) interfaces.StandingsService {
	return &standingsService{
		userRepo: userRepo,
		gameRepo: gameRepo,
		pickRepo: pickRepo,
	}
}

// RecalculateUser rebuilds the user's cumulative spread from scratch. Each
// pick contributes its points of favoritism: a favorite adds the points it
// was favored by, an underdog subtracts the points it was getting. Smaller
// totals rank higher, so picking underdogs pays off in the tiebreak.
func (s *standingsService) RecalculateUser(ctx context.Context, userID int64) (float64, error) {
	picks, err := s.pickRepo.GetByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get picks for user %d: %w", userID, err)
	}

	var total float64
	for _, pick := range picks {
		game, err := s.gameRepo.GetByTeamAndWeek(ctx, pick.TeamID, pick.WeekID)
		if err != nil {
			return 0, fmt.Errorf("failed to get game for pick %d: %w", pick.ID, err)
		}
		if game == nil {
			continue
		}
		if fav, ok := game.FavoritismFor(pick.TeamID); ok {
			total += fav
		}
	}

	if err := s.userRepo.UpdateCumulativeSpread(ctx, userID, total); err != nil {
		return 0, fmt.Errorf("failed to store cumulative spread: %w", err)
	}
	return total, nil
}

// Standings returns the ranked pool: active users by lives remaining
// descending then cumulative spread ascending, followed by the eliminated
// list. The repository queries carry the ordering.
func (s *standingsService) Standings(ctx context.Context) (*entities.Standings, error) {
	active, err := s.userRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active users: %w", err)
	}
	eliminated, err := s.userRepo.GetEliminated(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get eliminated users: %w", err)
	}
	return &entities.Standings{Active: active, Eliminated: eliminated}, nil
}
