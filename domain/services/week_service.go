package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"survivorpool/domain/entities"
	"survivorpool/domain/events"
	"survivorpool/domain/interfaces"
)

type weekService struct {
	weekRepo  interfaces.WeekRepository
	gameRepo  interfaces.GameRepository
	publisher interfaces.EventPublisher
}

// NewWeekService creates a new week service
func NewWeekService(
	weekRepo interfaces.WeekRepository,
	gameRepo interfaces.GameRepository,
	publisher interfaces.EventPublisher,
) interfaces.WeekService {
	return &weekService{
		weekRepo:  weekRepo,
		gameRepo:  gameRepo,
		publisher: publisher,
	}
}

// CreateWeek creates a week after validating its number is unused and its
// deadline does not precede its start date
func (s *weekService) CreateWeek(ctx context.Context, week *entities.Week) (*entities.Week, error) {
	if week.WeekNumber <= 0 {
		return nil, &entities.ValidationError{Message: "week number must be positive"}
	}
	if week.Deadline.Before(week.StartDate) {
		return nil, &entities.ValidationError{Message: "deadline cannot precede start date"}
	}

	existing, err := s.weekRepo.GetByNumber(ctx, week.WeekNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check week number: %w", err)
	}
	if existing != nil {
		return nil, &entities.ValidationError{Message: fmt.Sprintf("week %d already exists", week.WeekNumber)}
	}

	if err := s.weekRepo.Create(ctx, week); err != nil {
		return nil, fmt.Errorf("failed to create week: %w", err)
	}

	logrus.WithField("week", week.DisplayName()).Info("week created")
	return week, nil
}

// SetActiveWeek atomically moves the active flag to the given week
func (s *weekService) SetActiveWeek(ctx context.Context, weekID int64) error {
	week, err := s.weekRepo.GetByID(ctx, weekID)
	if err != nil {
		return fmt.Errorf("failed to get week: %w", err)
	}
	if week == nil {
		return &entities.NotFoundError{Resource: "week", ID: weekID}
	}

	if err := s.weekRepo.SetActive(ctx, weekID); err != nil {
		return fmt.Errorf("failed to set active week: %w", err)
	}

	if err := s.publisher.Publish(events.WeekActivatedEvent{
		WeekID:     weekID,
		WeekNumber: week.WeekNumber,
	}); err != nil {
		logrus.WithError(err).Warn("failed to publish week activated event")
	}

	logrus.WithField("week", week.DisplayName()).Info("active week changed")
	return nil
}

// RecordGameResults sets the winner on each listed game of the week. The map
// keys are game ids, the values whether the home team won.
func (s *weekService) RecordGameResults(ctx context.Context, weekID int64, results map[int64]bool) error {
	week, err := s.weekRepo.GetByID(ctx, weekID)
	if err != nil {
		return fmt.Errorf("failed to get week: %w", err)
	}
	if week == nil {
		return &entities.NotFoundError{Resource: "week", ID: weekID}
	}

	games, err := s.gameRepo.GetByWeek(ctx, weekID)
	if err != nil {
		return fmt.Errorf("failed to get games: %w", err)
	}
	inWeek := make(map[int64]bool, len(games))
	for _, g := range games {
		inWeek[g.ID] = true
	}

	for gameID, homeWon := range results {
		if !inWeek[gameID] {
			return &entities.ValidationError{Message: fmt.Sprintf("game %d is not in week %d", gameID, weekID)}
		}
		if err := s.gameRepo.SetResult(ctx, gameID, homeWon); err != nil {
			return fmt.Errorf("failed to record result for game %d: %w", gameID, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"week":    week.DisplayName(),
		"results": len(results),
	}).Info("game results recorded")
	return nil
}

// CurrentWeek returns the active week, nil when none is set
func (s *weekService) CurrentWeek(ctx context.Context) (*entities.Week, error) {
	week, err := s.weekRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active week: %w", err)
	}
	return week, nil
}
