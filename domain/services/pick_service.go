package services

import (
	"context"
	"fmt"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/sirupsen/logrus"

	"survivorpool/config"
	"survivorpool/domain/entities"
	"survivorpool/domain/events"
	"survivorpool/domain/interfaces"
)

type pickService struct {
	config      *config.Config
	userRepo    interfaces.UserRepository
	teamRepo    interfaces.TeamRepository
	weekRepo    interfaces.WeekRepository
	gameRepo    interfaces.GameRepository
	pickRepo    interfaces.PickRepository
	eligibility interfaces.EligibilityService
	standings   interfaces.StandingsService
	publisher   interfaces.EventPublisher
	clock       clock.Clock
}

// NewPickService creates a new pick service
func NewPickService(
	userRepo interfaces.UserRepository,
	teamRepo interfaces.TeamRepository,
	weekRepo interfaces.WeekRepository,
	gameRepo interfaces.GameRepository,
	pickRepo interfaces.PickRepository,
	eligibility interfaces.EligibilityService,
	standings interfaces.StandingsService,
	publisher interfaces.EventPublisher,
	clk clock.Clock,
) interfaces.PickService {
	return &pickService{
		config:      config.Get(),
		userRepo:    userRepo,
		teamRepo:    teamRepo,
		weekRepo:    weekRepo,
		gameRepo:    gameRepo,
		pickRepo:    pickRepo,
		eligibility: eligibility,
		standings:   standings,
		publisher:   publisher,
		clock:       clk,
	}
}

// SubmitPick runs the full precondition chain before writing the pick. An
// existing pick for the week is overwritten in place, so a user changing
// their mind before the deadline never holds two picks.
func (s *pickService) SubmitPick(ctx context.Context, userID, weekID, teamID int64) (*entities.Pick, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, &entities.NotFoundError{Resource: "user", ID: userID}
	}
	if user.IsEliminated {
		return nil, &entities.StateError{Message: fmt.Sprintf("%s has been eliminated from the pool", user.Username)}
	}

	week, err := s.weekRepo.GetByID(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to get week: %w", err)
	}
	if week == nil {
		return nil, &entities.NotFoundError{Resource: "week", ID: weekID}
	}

	now := s.clock.Now()
	if week.DeadlinePassed(now) {
		return nil, &entities.EligibilityError{Reason: entities.ReasonDeadlinePassed}
	}

	// An existing pick whose game has kicked off is locked even though the
	// week deadline has not passed
	existing, err := s.pickRepo.GetByUserAndWeek(ctx, userID, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing pick: %w", err)
	}
	if existing != nil {
		locked, name, err := s.pickLocked(ctx, existing, weekID, now)
		if err != nil {
			return nil, err
		}
		if locked {
			return nil, &entities.AlreadyLockedError{TeamName: name}
		}
	}

	if err := s.eligibility.CheckTeam(ctx, user, week, teamID); err != nil {
		return nil, err
	}

	pick := &entities.Pick{
		UserID:    userID,
		WeekID:    weekID,
		TeamID:    teamID,
		CreatedAt: now.In(s.config.Location()),
	}
	if err := s.pickRepo.Upsert(ctx, pick); err != nil {
		return nil, fmt.Errorf("failed to save pick: %w", err)
	}

	if _, err := s.standings.RecalculateUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to recalculate cumulative spread: %w", err)
	}

	if err := s.publisher.Publish(events.PickSubmittedEvent{
		UserID: userID,
		WeekID: weekID,
		TeamID: teamID,
	}); err != nil {
		logrus.WithError(err).Warn("failed to publish pick submitted event")
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"week_id": weekID,
		"team_id": teamID,
	}).Info("pick submitted")

	return pick, nil
}

// GetPick returns the user's pick for the week, nil when absent
func (s *pickService) GetPick(ctx context.Context, userID, weekID int64) (*entities.Pick, error) {
	pick, err := s.pickRepo.GetByUserAndWeek(ctx, userID, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pick: %w", err)
	}
	return pick, nil
}

// pickLocked reports whether the existing pick's game has started, along
// with the picked team's name for the error message
func (s *pickService) pickLocked(ctx context.Context, pick *entities.Pick, weekID int64, now time.Time) (bool, string, error) {
	game, err := s.gameRepo.GetByTeamAndWeek(ctx, pick.TeamID, weekID)
	if err != nil {
		return false, "", fmt.Errorf("failed to get game for existing pick: %w", err)
	}
	if game == nil || !game.HasStarted(now) {
		return false, "", nil
	}

	name := fmt.Sprintf("team %d", pick.TeamID)
	if team, err := s.teamRepo.GetByID(ctx, pick.TeamID); err == nil && team != nil {
		name = team.Name
	}
	return true, name, nil
}
