package application

import (
	"context"
	"fmt"

	"github.com/itbasis/go-clock"

	"survivorpool/domain/entities"
	"survivorpool/domain/interfaces"
	"survivorpool/domain/services"
)

// PoolService is the external surface of the pool. Every operation runs
// inside its own unit of work, so a failure midway leaves nothing half
// applied.
type PoolService struct {
	uowFactory UnitOfWorkFactory
	publisher  interfaces.EventPublisher
	locker     *services.WeekLocker
	clock      clock.Clock
}

// NewPoolService creates a new pool service
func NewPoolService(
	uowFactory UnitOfWorkFactory,
	publisher interfaces.EventPublisher,
	clk clock.Clock,
) *PoolService {
	return &PoolService{
		uowFactory: uowFactory,
		publisher:  publisher,
		locker:     services.NewWeekLocker(),
		clock:      clk,
	}
}

// withUow runs fn inside a fresh transaction, committing on success
func (s *PoolService) withUow(ctx context.Context, fn func(uow UnitOfWork) error) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := fn(uow); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *PoolService) eligibility(uow UnitOfWork) interfaces.EligibilityService {
	return services.NewEligibilityService(
		uow.UserRepository(),
		uow.TeamRepository(),
		uow.WeekRepository(),
		uow.GameRepository(),
		uow.PickRepository(),
		s.clock,
	)
}

func (s *PoolService) standings(uow UnitOfWork) interfaces.StandingsService {
	return services.NewStandingsService(
		uow.UserRepository(),
		uow.GameRepository(),
		uow.PickRepository(),
	)
}

func (s *PoolService) picks(uow UnitOfWork) interfaces.PickService {
	return services.NewPickService(
		uow.UserRepository(),
		uow.TeamRepository(),
		uow.WeekRepository(),
		uow.GameRepository(),
		uow.PickRepository(),
		s.eligibility(uow),
		s.standings(uow),
		s.publisher,
		s.clock,
	)
}

// EligibleTeams returns the teams the user may pick for the week
func (s *PoolService) EligibleTeams(ctx context.Context, userID, weekID int64) ([]*entities.Team, error) {
	var teams []*entities.Team
	err := s.withUow(ctx, func(uow UnitOfWork) error {
		var err error
		teams, err = s.eligibility(uow).EligibleTeams(ctx, userID, weekID)
		return err
	})
	return teams, err
}

// SubmitPick creates or updates the user's pick for the week
func (s *PoolService) SubmitPick(ctx context.Context, userID, weekID, teamID int64) (*entities.Pick, error) {
	var pick *entities.Pick
	err := s.withUow(ctx, func(uow UnitOfWork) error {
		var err error
		pick, err = s.picks(uow).SubmitPick(ctx, userID, weekID, teamID)
		return err
	})
	return pick, err
}

// GetPick returns the user's pick for the week, nil when absent
func (s *PoolService) GetPick(ctx context.Context, userID, weekID int64) (*entities.Pick, error) {
	var pick *entities.Pick
	err := s.withUow(ctx, func(uow UnitOfWork) error {
		var err error
		pick, err = s.picks(uow).GetPick(ctx, userID, weekID)
		return err
	})
	return pick, err
}

// ProcessWeekResults resolves every pick in the week against game outcomes
func (s *PoolService) ProcessWeekResults(ctx context.Context, weekID int64) error {
	return s.withUow(ctx, func(uow UnitOfWork) error {
		svc := services.NewResultService(
			uow.UserRepository(),
			uow.WeekRepository(),
			uow.GameRepository(),
			uow.PickRepository(),
			s.standings(uow),
			s.publisher,
			s.locker,
		)
		return svc.ProcessWeekResults(ctx, weekID)
	})
}

// ProcessAutopicks fills picks for active users who missed the deadline
func (s *PoolService) ProcessAutopicks(ctx context.Context, weekID int64) (*entities.AutopickReport, error) {
	var report *entities.AutopickReport
	err := s.withUow(ctx, func(uow UnitOfWork) error {
		svc := services.NewAutopickService(
			uow.UserRepository(),
			uow.TeamRepository(),
			uow.WeekRepository(),
			uow.GameRepository(),
			uow.PickRepository(),
			s.standings(uow),
			s.publisher,
			s.locker,
			s.clock,
		)
		var err error
		report, err = svc.ProcessAutopicks(ctx, weekID)
		return err
	})
	return report, err
}

// Standings returns the ranked pool
func (s *PoolService) Standings(ctx context.Context) (*entities.Standings, error) {
	var standings *entities.Standings
	err := s.withUow(ctx, func(uow UnitOfWork) error {
		var err error
		standings, err = s.standings(uow).Standings(ctx)
		return err
	})
	return standings, err
}

// RecalculateUser recomputes and stores the user's cumulative spread
func (s *PoolService) RecalculateUser(ctx context.Context, userID int64) (float64, error) {
	var total float64
	err := s.withUow(ctx, func(uow UnitOfWork) error {
		var err error
		total, err = s.standings(uow).RecalculateUser(ctx, userID)
		return err
	})
	return total, err
}

func (s *PoolService) roster(uow UnitOfWork) interfaces.RosterService {
	return services.NewRosterService(
		uow.UserRepository(),
		uow.TeamRepository(),
		uow.WeekRepository(),
		uow.GameRepository(),
		uow.PickRepository(),
	)
}

// Register creates a new entrant with the configured starting lives
func (s *PoolService) Register(ctx context.Context, username, email string) (*entities.User, error) {
	var user *entities.User
	err := s.withUow(ctx, func(uow UnitOfWork) error {
		var err error
		user, err = s.roster(uow).Register(ctx, username, email)
		return err
	})
	return user, err
}

// PickHistory returns the user's season pick history with tallies
func (s *PoolService) PickHistory(ctx context.Context, userID int64) (*entities.PickSummary, error) {
	var summary *entities.PickSummary
	err := s.withUow(ctx, func(uow UnitOfWork) error {
		var err error
		summary, err = s.roster(uow).PickHistory(ctx, userID)
		return err
	})
	return summary, err
}

// UsersWithoutPick lists active users lacking a pick for the week
func (s *PoolService) UsersWithoutPick(ctx context.Context, weekID int64) ([]*entities.User, error) {
	var users []*entities.User
	err := s.withUow(ctx, func(uow UnitOfWork) error {
		var err error
		users, err = s.roster(uow).UsersWithoutPick(ctx, weekID)
		return err
	})
	return users, err
}

// SetPaid updates an entrant's entry-fee payment flag
func (s *PoolService) SetPaid(ctx context.Context, userID int64, paid bool) error {
	return s.withUow(ctx, func(uow UnitOfWork) error {
		return s.roster(uow).SetPaid(ctx, userID, paid)
	})
}

// PaymentSummary aggregates entry-fee collection across the roster
func (s *PoolService) PaymentSummary(ctx context.Context) (*entities.PaymentSummary, error) {
	var summary *entities.PaymentSummary
	err := s.withUow(ctx, func(uow UnitOfWork) error {
		var err error
		summary, err = s.roster(uow).PaymentSummary(ctx)
		return err
	})
	return summary, err
}

func (s *PoolService) weeks(uow UnitOfWork) interfaces.WeekService {
	return services.NewWeekService(uow.WeekRepository(), uow.GameRepository(), s.publisher)
}

// CreateWeek creates a week after validating its number is unused
func (s *PoolService) CreateWeek(ctx context.Context, week *entities.Week) (*entities.Week, error) {
	var created *entities.Week
	err := s.withUow(ctx, func(uow UnitOfWork) error {
		var err error
		created, err = s.weeks(uow).CreateWeek(ctx, week)
		return err
	})
	return created, err
}

// SetActiveWeek atomically moves the active flag to the given week
func (s *PoolService) SetActiveWeek(ctx context.Context, weekID int64) error {
	return s.withUow(ctx, func(uow UnitOfWork) error {
		return s.weeks(uow).SetActiveWeek(ctx, weekID)
	})
}

// RecordGameResults sets the winner on each listed game of a week
func (s *PoolService) RecordGameResults(ctx context.Context, weekID int64, results map[int64]bool) error {
	return s.withUow(ctx, func(uow UnitOfWork) error {
		return s.weeks(uow).RecordGameResults(ctx, weekID, results)
	})
}

// CurrentWeek returns the active week, nil when none is set
func (s *PoolService) CurrentWeek(ctx context.Context) (*entities.Week, error) {
	var week *entities.Week
	err := s.withUow(ctx, func(uow UnitOfWork) error {
		var err error
		week, err = s.weeks(uow).CurrentWeek(ctx)
		return err
	})
	return week, err
}

// IncompleteWeeksPastDeadline returns incomplete weeks whose deadline has
// passed, the set the autopick sweep walks
func (s *PoolService) IncompleteWeeksPastDeadline(ctx context.Context) ([]*entities.Week, error) {
	var due []*entities.Week
	err := s.withUow(ctx, func(uow UnitOfWork) error {
		weeks, err := uow.WeekRepository().ListIncomplete(ctx)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		for _, w := range weeks {
			if w.DeadlinePassed(now) {
				due = append(due, w)
			}
		}
		return nil
	})
	return due, err
}
