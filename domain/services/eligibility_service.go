package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/itbasis/go-clock"

	"survivorpool/config"
	"survivorpool/domain/entities"
	"survivorpool/domain/interfaces"
)

type eligibilityService struct {
	config   *config.Config
	userRepo interfaces.UserRepository
	teamRepo interfaces.TeamRepository
	weekRepo interfaces.WeekRepository
	gameRepo interfaces.GameRepository
	pickRepo interfaces.PickRepository
	clock    clock.Clock
}

// NewEligibilityService creates a new eligibility service
func NewEligibilityService(
	userRepo interfaces.UserRepository,
	teamRepo interfaces.TeamRepository,
	weekRepo interfaces.WeekRepository,
	gameRepo interfaces.GameRepository,
	pickRepo interfaces.PickRepository,
	clk clock.Clock,
) interfaces.EligibilityService {
	return &eligibilityService{
		config:   config.Get(),
		userRepo: userRepo,
		teamRepo: teamRepo,
		weekRepo: weekRepo,
		gameRepo: gameRepo,
		pickRepo: pickRepo,
		clock:    clk,
	}
}

// EligibleTeams computes the set of teams the user may pick for the week:
// tracked teams playing this week, not used in another week of the same
// phase, not CFP-eliminated during playoff weeks, not favored beyond the
// spread cap, and whose game has not kicked off.
func (s *eligibilityService) EligibleTeams(ctx context.Context, userID, weekID int64) ([]*entities.Team, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, &entities.NotFoundError{Resource: "user", ID: userID}
	}

	week, err := s.weekRepo.GetByID(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to get week: %w", err)
	}
	if week == nil {
		return nil, &entities.NotFoundError{Resource: "week", ID: weekID}
	}

	games, err := s.gameRepo.GetByWeek(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to get games for week %d: %w", weekID, err)
	}

	teamsByID, err := s.teamRepo.GetByIDs(ctx, trackedSides(games))
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}

	rules, err := s.loadRules(ctx, user, week)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	seen := make(map[int64]bool)
	var teams []*entities.Team

	for _, game := range games {
		for _, ref := range []entities.TeamRef{game.HomeRef(), game.AwayRef()} {
			teamID, known := ref.ID()
			if !known || seen[teamID] {
				continue
			}
			team := teamsByID[teamID]
			if team == nil {
				continue
			}
			if rules.check(game, team, now) == nil {
				seen[teamID] = true
				teams = append(teams, team)
			}
		}
	}

	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}

// CheckTeam validates a single team against every eligibility rule for the
// user and week. A nil error means the team is pickable right now.
func (s *eligibilityService) CheckTeam(ctx context.Context, user *entities.User, week *entities.Week, teamID int64) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to get team %d: %w", teamID, err)
	}
	if team == nil {
		return &entities.NotFoundError{Resource: "team", ID: teamID}
	}

	game, err := s.gameRepo.GetByTeamAndWeek(ctx, teamID, week.ID)
	if err != nil {
		return fmt.Errorf("failed to find game for team %d in week %d: %w", teamID, week.ID, err)
	}
	if game == nil {
		return &entities.ValidationError{Message: fmt.Sprintf("%s has no game in %s", team.Name, week.DisplayName())}
	}

	rules, err := s.loadRules(ctx, user, week)
	if err != nil {
		return err
	}

	return rules.check(game, team, s.clock.Now())
}

// weekRules is the per-(user, week) context the rule checks run against
type weekRules struct {
	usedTeams     map[int64]bool
	cfpEliminated map[string]bool
	playoff       bool
	spreadCap     float64
}

// loadRules gathers the user's phase-scoped used teams and, for playoff
// weeks, the CFP-eliminated name set
func (s *eligibilityService) loadRules(ctx context.Context, user *entities.User, week *entities.Week) (*weekRules, error) {
	usedIDs, err := s.pickRepo.UsedTeamIDs(ctx, user.ID, week.IsPlayoffWeek, week.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get used teams for user %d: %w", user.ID, err)
	}
	used := make(map[int64]bool, len(usedIDs))
	for _, id := range usedIDs {
		used[id] = true
	}

	eliminated := make(map[string]bool)
	if week.IsPlayoffWeek {
		names, err := s.gameRepo.PlayoffLoserNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get playoff losers: %w", err)
		}
		for _, name := range names {
			eliminated[name] = true
		}
	}

	return &weekRules{
		usedTeams:     used,
		cfpEliminated: eliminated,
		playoff:       week.IsPlayoffWeek,
		spreadCap:     s.config.MaxFavoriteSpread,
	}, nil
}

// check applies the eligibility rules to the team's side of the game at the
// given evaluation instant
func (r *weekRules) check(game *entities.Game, team *entities.Team, now time.Time) error {
	if game.HasStarted(now) {
		return &entities.EligibilityError{TeamName: team.Name, Reason: entities.ReasonGameStarted}
	}
	if r.usedTeams[team.ID] {
		return &entities.EligibilityError{TeamName: team.Name, Reason: entities.ReasonTeamUsedInPhase}
	}
	if r.playoff && r.cfpEliminated[team.Name] {
		return &entities.EligibilityError{TeamName: team.Name, Reason: entities.ReasonCFPEliminated}
	}
	spread, ok := game.SpreadFor(team.ID)
	if !ok {
		return &entities.ValidationError{Message: fmt.Sprintf("%s is not in game %d", team.Name, game.ID)}
	}
	// The cap is inclusive: a team favored by exactly the cap is pickable
	if spread < -r.spreadCap {
		return &entities.EligibilityError{TeamName: team.Name, Reason: entities.ReasonSpreadCap}
	}
	return nil
}

// trackedSides collects the tracked team ids appearing on either side of
// the games
func trackedSides(games []*entities.Game) []int64 {
	var ids []int64
	for _, g := range games {
		if g.HomeTeamID != nil {
			ids = append(ids, *g.HomeTeamID)
		}
		if g.AwayTeamID != nil {
			ids = append(ids, *g.AwayTeamID)
		}
	}
	return ids
}
