package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"survivorpool/config"
	"survivorpool/domain/entities"
	"survivorpool/domain/interfaces"
)

type rosterService struct {
	config   *config.Config
	userRepo interfaces.UserRepository
	teamRepo interfaces.TeamRepository
	weekRepo interfaces.WeekRepository
	gameRepo interfaces.GameRepository
	pickRepo interfaces.PickRepository
}

// NewRosterService creates a new roster service
func NewRosterService(
	userRepo interfaces.UserRepository,
	teamRepo interfaces.TeamRepository,
	weekRepo interfaces.WeekRepository,
	gameRepo interfaces.GameRepository,
	pickRepo interfaces.PickRepository,
) interfaces.RosterService {
	return &rosterService{
		config:   config.Get(),
		userRepo: userRepo,
		teamRepo: teamRepo,
		weekRepo: weekRepo,
		gameRepo: gameRepo,
		pickRepo: pickRepo,
	}
}

// Register creates a new entrant with the configured starting lives.
// Username and email must both be unused.
func (s *rosterService) Register(ctx context.Context, username, email string) (*entities.User, error) {
	if username == "" || email == "" {
		return nil, &entities.ValidationError{Message: "username and email are required"}
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, &entities.ValidationError{Message: fmt.Sprintf("username %s is already taken", username)}
	}

	existing, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, &entities.ValidationError{Message: fmt.Sprintf("email %s is already registered", email)}
	}

	user, err := s.userRepo.Create(ctx, username, email, s.config.StartingLives)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user":  username,
		"lives": s.config.StartingLives,
	}).Info("user registered")

	return user, nil
}

// PickHistory returns the user's season picks with the teams they chose, the
// spread each carried, and win/loss tallies
func (s *rosterService) PickHistory(ctx context.Context, userID int64) (*entities.PickSummary, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, &entities.NotFoundError{Resource: "user", ID: userID}
	}

	picks, err := s.pickRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get picks: %w", err)
	}

	summary := &entities.PickSummary{}
	for _, pick := range picks {
		detail := &entities.PickDetail{Pick: pick}

		if detail.Week, err = s.weekRepo.GetByID(ctx, pick.WeekID); err != nil {
			return nil, fmt.Errorf("failed to get week %d: %w", pick.WeekID, err)
		}
		if detail.Team, err = s.teamRepo.GetByID(ctx, pick.TeamID); err != nil {
			return nil, fmt.Errorf("failed to get team %d: %w", pick.TeamID, err)
		}

		game, err := s.gameRepo.GetByTeamAndWeek(ctx, pick.TeamID, pick.WeekID)
		if err != nil {
			return nil, fmt.Errorf("failed to get game for pick %d: %w", pick.ID, err)
		}
		if game != nil {
			if spread, ok := game.SpreadFor(pick.TeamID); ok {
				detail.Spread = &spread
			}
		}

		switch {
		case pick.Correct():
			summary.Correct++
		case pick.Incorrect():
			summary.Incorrect++
		default:
			summary.Pending++
		}
		summary.Picks = append(summary.Picks, detail)
	}
	return summary, nil
}

// UsersWithoutPick lists active users lacking a pick for the week
func (s *rosterService) UsersWithoutPick(ctx context.Context, weekID int64) ([]*entities.User, error) {
	active, err := s.userRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active users: %w", err)
	}
	withPick, err := s.pickRepo.UserIDsWithPick(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to get picked users: %w", err)
	}
	picked := make(map[int64]bool, len(withPick))
	for _, id := range withPick {
		picked[id] = true
	}

	missing := make([]*entities.User, 0)
	for _, u := range active {
		if !picked[u.ID] {
			missing = append(missing, u)
		}
	}
	return missing, nil
}

// SetPaid updates an entrant's entry-fee payment flag
func (s *rosterService) SetPaid(ctx context.Context, userID int64, paid bool) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return &entities.NotFoundError{Resource: "user", ID: userID}
	}
	if err := s.userRepo.SetPaid(ctx, userID, paid); err != nil {
		return fmt.Errorf("failed to update payment flag: %w", err)
	}
	return nil
}

// PaymentSummary aggregates entry-fee collection across the full roster,
// eliminated entrants included: buy-ins are owed regardless of survival
func (s *rosterService) PaymentSummary(ctx context.Context) (*entities.PaymentSummary, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	summary := &entities.PaymentSummary{EntryFee: s.config.EntryFee}
	for _, u := range users {
		if u.HasPaid {
			summary.PaidCount++
		} else {
			summary.UnpaidCount++
		}
		if u.IsActive() {
			summary.TotalActive++
		}
	}
	summary.TotalCollected = int64(summary.PaidCount) * s.config.EntryFee
	return summary, nil
}
