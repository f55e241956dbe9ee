package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/sirupsen/logrus"

	"survivorpool/config"
	"survivorpool/domain/entities"
	"survivorpool/domain/events"
	"survivorpool/domain/interfaces"
)

type autopickService struct {
	config    *config.Config
	userRepo  interfaces.UserRepository
	teamRepo  interfaces.TeamRepository
	weekRepo  interfaces.WeekRepository
	gameRepo  interfaces.GameRepository
	pickRepo  interfaces.PickRepository
	standings interfaces.StandingsService
	publisher interfaces.EventPublisher
	locker    *WeekLocker
	clock     clock.Clock
}

// NewAutopickService creates a new autopick service
func NewAutopickService(
	userRepo interfaces.UserRepository,
	teamRepo interfaces.TeamRepository,
	weekRepo interfaces.WeekRepository,
	gameRepo interfaces.GameRepository,
	pickRepo interfaces.PickRepository,
	standings interfaces.StandingsService,
	publisher interfaces.EventPublisher,
	locker *WeekLocker,
	clk clock.Clock,
) interfaces.AutopickService {
	return &autopickService{
		config:    config.Get(),
		userRepo:  userRepo,
		teamRepo:  teamRepo,
		weekRepo:  weekRepo,
		gameRepo:  gameRepo,
		pickRepo:  pickRepo,
		standings: standings,
		publisher: publisher,
		locker:    locker,
		clock:     clk,
	}
}

// candidate is one pickable team side during an autopick pass
type candidate struct {
	teamID     int64
	teamName   string
	spread     float64
	favoritism float64
}

// ProcessAutopicks fills a pick for every active user missing one. The pass
// refuses to run before the week deadline, and skips users who already hold
// a pick, so repeated invocations never overwrite anything.
//
// Team choice prefers the strongest favorite within the spread cap; when no
// favorite is available it falls back to the smallest underdog.
func (s *autopickService) ProcessAutopicks(ctx context.Context, weekID int64) (*entities.AutopickReport, error) {
	unlock := s.locker.Lock(weekID)
	defer unlock()

	week, err := s.weekRepo.GetByID(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to get week: %w", err)
	}
	if week == nil {
		return nil, &entities.NotFoundError{Resource: "week", ID: weekID}
	}

	now := s.clock.Now()
	if !week.DeadlinePassed(now) {
		return &entities.AutopickReport{
			Processed: false,
			Reason:    fmt.Sprintf("deadline for %s has not passed", week.DisplayName()),
		}, nil
	}

	missing, err := s.usersMissingPick(ctx, weekID)
	if err != nil {
		return nil, err
	}
	report := &entities.AutopickReport{Processed: true}
	if len(missing) == 0 {
		return report, nil
	}

	games, err := s.gameRepo.GetByWeek(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}

	var cfpLosers map[string]bool
	if week.IsPlayoffWeek {
		names, err := s.gameRepo.PlayoffLoserNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get playoff losers: %w", err)
		}
		cfpLosers = make(map[string]bool, len(names))
		for _, name := range names {
			cfpLosers[name] = true
		}
	}

	teamNames, err := s.teamNames(ctx, games)
	if err != nil {
		return nil, err
	}

	for _, user := range missing {
		usedIDs, err := s.pickRepo.UsedTeamIDs(ctx, user.ID, week.IsPlayoffWeek, weekID)
		if err != nil {
			return nil, fmt.Errorf("failed to get used teams for user %d: %w", user.ID, err)
		}
		used := make(map[int64]bool, len(usedIDs))
		for _, id := range usedIDs {
			used[id] = true
		}

		pick := bestCandidate(s.candidates(games, used, cfpLosers, teamNames, now), s.config.MaxFavoriteSpread)
		if pick == nil {
			report.Failed = append(report.Failed, entities.AutopickFailure{
				UserID:   user.ID,
				Username: user.Username,
				Reason:   "no eligible team available",
			})
			logrus.WithFields(logrus.Fields{
				"user": user.Username,
				"week": week.DisplayName(),
			}).Warn("no eligible team for autopick")
			continue
		}

		if err := s.fillPick(ctx, user, weekID, pick, now); err != nil {
			return report, err
		}
		report.Made = append(report.Made, entities.AutopickResult{
			UserID:      user.ID,
			Username:    user.Username,
			TeamID:      pick.teamID,
			TeamName:    pick.teamName,
			Spread:      pick.spread,
			Description: describeCandidate(pick),
		})
	}

	if err := s.publisher.Publish(events.AutopicksProcessedEvent{
		WeekID: weekID,
		Made:   len(report.Made),
		Failed: len(report.Failed),
	}); err != nil {
		logrus.WithError(err).Warn("failed to publish autopicks event")
	}

	logrus.WithFields(logrus.Fields{
		"week":   week.DisplayName(),
		"made":   len(report.Made),
		"failed": len(report.Failed),
	}).Info("autopicks processed")

	return report, nil
}

// usersMissingPick returns the active users holding no pick for the week
func (s *autopickService) usersMissingPick(ctx context.Context, weekID int64) ([]*entities.User, error) {
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

	var missing []*entities.User
	for _, u := range active {
		if !picked[u.ID] {
			missing = append(missing, u)
		}
	}
	return missing, nil
}

// teamNames loads the names of every tracked team appearing in the games
func (s *autopickService) teamNames(ctx context.Context, games []*entities.Game) (map[int64]string, error) {
	var ids []int64
	for _, g := range games {
		if g.HomeTeamID != nil {
			ids = append(ids, *g.HomeTeamID)
		}
		if g.AwayTeamID != nil {
			ids = append(ids, *g.AwayTeamID)
		}
	}
	teams, err := s.teamRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	names := make(map[int64]string, len(teams))
	for id, t := range teams {
		names[id] = t.Name
	}
	return names, nil
}

// candidates collects every pickable team side for one user: tracked teams
// whose game has not started, not used this phase, not CFP-eliminated
func (s *autopickService) candidates(games []*entities.Game, used map[int64]bool, cfpLosers map[string]bool, names map[int64]string, now time.Time) []candidate {
	var out []candidate
	for _, g := range games {
		if g.HasStarted(now) {
			continue
		}
		for _, ref := range []entities.TeamRef{g.HomeRef(), g.AwayRef()} {
			teamID, known := ref.ID()
			if !known || used[teamID] {
				continue
			}
			name := names[teamID]
			if cfpLosers != nil && cfpLosers[name] {
				continue
			}
			spread, _ := g.SpreadFor(teamID)
			fav, _ := g.FavoritismFor(teamID)
			out = append(out, candidate{teamID: teamID, teamName: name, spread: spread, favoritism: fav})
		}
	}
	return out
}

// bestCandidate applies the pick heuristic: the strongest favorite within
// the cap, falling back to the smallest underdog. Pick'em sides are neither
// favorites nor underdogs and are never chosen. Ties break on team name so
// the choice is deterministic.
func bestCandidate(cands []candidate, cap float64) *candidate {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].favoritism != cands[j].favoritism {
			return cands[i].favoritism > cands[j].favoritism
		}
		return cands[i].teamName < cands[j].teamName
	})

	var fallback *candidate
	for i := range cands {
		c := &cands[i]
		if c.favoritism > cap {
			continue
		}
		if c.favoritism > 0 {
			return c
		}
		if c.favoritism < 0 && fallback == nil {
			fallback = c
		}
	}
	return fallback
}

// fillPick writes the synthesized pick and updates the user's running spread
func (s *autopickService) fillPick(ctx context.Context, user *entities.User, weekID int64, c *candidate, now time.Time) error {
	pick := &entities.Pick{
		UserID:    user.ID,
		WeekID:    weekID,
		TeamID:    c.teamID,
		CreatedAt: now.UTC(),
	}
	if err := s.pickRepo.Upsert(ctx, pick); err != nil {
		return fmt.Errorf("failed to save autopick for user %d: %w", user.ID, err)
	}
	if _, err := s.standings.RecalculateUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to recalculate cumulative spread: %w", err)
	}
	if err := s.publisher.Publish(events.PickSubmittedEvent{
		UserID:   user.ID,
		WeekID:   weekID,
		TeamID:   c.teamID,
		AutoPick: true,
	}); err != nil {
		logrus.WithError(err).Warn("failed to publish pick submitted event")
	}
	return nil
}

// describeCandidate renders the pick rationale for the report
func describeCandidate(c *candidate) string {
	if c.favoritism > 0 {
		return fmt.Sprintf("%s (favored by %.1f)", c.teamName, c.favoritism)
	}
	return fmt.Sprintf("%s (underdog by %.1f)", c.teamName, -c.favoritism)
}
