package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"survivorpool/domain/entities"
	"survivorpool/domain/events"
	"survivorpool/domain/interfaces"
)

type resultService struct {
	userRepo  interfaces.UserRepository
	weekRepo  interfaces.WeekRepository
	gameRepo  interfaces.GameRepository
	pickRepo  interfaces.PickRepository
	standings interfaces.StandingsService
	publisher interfaces.EventPublisher
	locker    *WeekLocker
}

// NewResultService creates a new result service
func NewResultService(
	userRepo interfaces.UserRepository,
	weekRepo interfaces.WeekRepository,
	gameRepo interfaces.GameRepository,
	pickRepo interfaces.PickRepository,
	standings interfaces.StandingsService,
	publisher interfaces.EventPublisher,
	locker *WeekLocker,
) interfaces.ResultService {
	return &resultService{
		userRepo:  userRepo,
		weekRepo:  weekRepo,
		gameRepo:  gameRepo,
		pickRepo:  pickRepo,
		standings: standings,
		publisher: publisher,
		locker:    locker,
	}
}

// ProcessWeekResults resolves every pick in the week against recorded game
// outcomes. A pick whose result is already stored is never applied again, so
// re-running the pass over a week with games still pending can only resolve
// the newly completed ones.
//
// Lives are deducted one per incorrect pick and never go below zero. If the
// pass would wipe out the entire remaining field while every survivor was on
// their last life, the revival rule restores each of them to one life
// instead of ending the pool. After the resolution pass every picking user's
// cumulative spread is recomputed from their full pick history.
func (s *resultService) ProcessWeekResults(ctx context.Context, weekID int64) error {
	unlock := s.locker.Lock(weekID)
	defer unlock()

	week, err := s.weekRepo.GetByID(ctx, weekID)
	if err != nil {
		return fmt.Errorf("failed to get week: %w", err)
	}
	if week == nil {
		return &entities.NotFoundError{Resource: "week", ID: weekID}
	}
	if week.IsComplete {
		return &entities.StateError{Message: fmt.Sprintf("%s has already been processed", week.DisplayName())}
	}

	games, err := s.gameRepo.GetByWeek(ctx, weekID)
	if err != nil {
		return fmt.Errorf("failed to get games: %w", err)
	}
	picks, err := s.pickRepo.GetByWeek(ctx, weekID)
	if err != nil {
		return fmt.Errorf("failed to get picks: %w", err)
	}

	allUsers, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to get users: %w", err)
	}
	usersByID := make(map[int64]*entities.User, len(allUsers))
	var activeBefore, lastLifeBefore []*entities.User
	for _, u := range allUsers {
		usersByID[u.ID] = u
		if u.IsActive() {
			activeBefore = append(activeBefore, u)
			if u.OnLastLife() {
				lastLifeBefore = append(lastLifeBefore, u)
			}
		}
	}

	var correct, incorrect, pending int
	var eliminated []int64

	for _, pick := range picks {
		if pick.Resolved() {
			if pick.Correct() {
				correct++
			} else {
				incorrect++
			}
			continue
		}

		game := gameForTeam(games, pick.TeamID)
		if game == nil || !game.HasResult() {
			pending++
			continue
		}

		won, ok := game.WonBy(pick.TeamID)
		if !ok {
			pending++
			continue
		}

		if err := s.pickRepo.UpdateResult(ctx, pick.ID, won); err != nil {
			return fmt.Errorf("failed to record pick result: %w", err)
		}

		if won {
			correct++
			continue
		}
		incorrect++

		user := usersByID[pick.UserID]
		if user == nil || user.IsEliminated {
			continue
		}
		user.LivesRemaining--
		if user.LivesRemaining < 0 {
			user.LivesRemaining = 0
		}
		if user.LivesRemaining == 0 {
			user.IsEliminated = true
			eliminated = append(eliminated, user.ID)
		}
		if err := s.userRepo.UpdateLives(ctx, user.ID, user.LivesRemaining, user.IsEliminated); err != nil {
			return fmt.Errorf("failed to update lives for user %d: %w", user.ID, err)
		}
	}

	recalculated := make(map[int64]bool, len(picks))
	for _, pick := range picks {
		if recalculated[pick.UserID] {
			continue
		}
		recalculated[pick.UserID] = true
		if _, err := s.standings.RecalculateUser(ctx, pick.UserID); err != nil {
			return fmt.Errorf("failed to recalculate cumulative spread for user %d: %w", pick.UserID, err)
		}
	}

	revived := s.applyRevival(ctx, weekID, activeBefore, lastLifeBefore)
	if revived {
		eliminated = nil
	}

	for _, userID := range eliminated {
		if err := s.publisher.Publish(events.UserEliminatedEvent{UserID: userID, WeekID: weekID}); err != nil {
			logrus.WithError(err).Warn("failed to publish user eliminated event")
		}
	}

	if pending == 0 && allGamesFinal(games) {
		if err := s.weekRepo.MarkComplete(ctx, weekID); err != nil {
			return fmt.Errorf("failed to mark week complete: %w", err)
		}
	}

	if err := s.publisher.Publish(events.WeekResultsProcessedEvent{
		WeekID:          weekID,
		WeekNumber:      week.WeekNumber,
		CorrectPicks:    correct,
		IncorrectPicks:  incorrect,
		PendingPicks:    pending,
		EliminatedUsers: eliminated,
		RevivalApplied:  revived,
	}); err != nil {
		logrus.WithError(err).Warn("failed to publish week results event")
	}

	logrus.WithFields(logrus.Fields{
		"week":      week.DisplayName(),
		"correct":   correct,
		"incorrect": incorrect,
		"pending":   pending,
		"revived":   revived,
	}).Info("week results processed")

	return nil
}

// applyRevival checks for the full-field wipeout and, when it happens,
// restores every revived user to one life. The rule only fires when every
// active user entered the pass on their last life and all of them now sit at
// zero; a single survivor blocks it.
func (s *resultService) applyRevival(ctx context.Context, weekID int64, activeBefore, lastLifeBefore []*entities.User) bool {
	if len(lastLifeBefore) == 0 || len(lastLifeBefore) != len(activeBefore) {
		return false
	}
	for _, u := range lastLifeBefore {
		if u.LivesRemaining != 0 {
			return false
		}
	}

	var userIDs []int64
	for _, u := range lastLifeBefore {
		u.LivesRemaining = 1
		u.IsEliminated = false
		if err := s.userRepo.UpdateLives(ctx, u.ID, 1, false); err != nil {
			logrus.WithError(err).WithField("user_id", u.ID).Error("failed to revive user")
			continue
		}
		userIDs = append(userIDs, u.ID)
	}

	logrus.WithFields(logrus.Fields{
		"week_id": weekID,
		"users":   len(userIDs),
	}).Warn("entire field eliminated at once, reviving all users with one life")

	if err := s.publisher.Publish(events.FieldRevivedEvent{WeekID: weekID, UserIDs: userIDs}); err != nil {
		logrus.WithError(err).Warn("failed to publish field revived event")
	}
	return true
}

// gameForTeam finds the week's game the tracked team plays in
func gameForTeam(games []*entities.Game, teamID int64) *entities.Game {
	for _, g := range games {
		if g.Involves(teamID) {
			return g
		}
	}
	return nil
}

// allGamesFinal reports whether every game in the week has a recorded result
func allGamesFinal(games []*entities.Game) bool {
	for _, g := range games {
		if !g.HasResult() {
			return false
		}
	}
	return true
}
