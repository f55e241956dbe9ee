package entities

import "time"

// TeamRef is a tagged reference to one side of a game: either a tracked team
// (by id) or an untracked opponent known only by name. Consumers must go
// through ID()/RawName() so both cases are handled explicitly.
type TeamRef struct {
	teamID *int64
	name   string
}

// KnownTeam builds a reference to a tracked team
func KnownTeam(id int64) TeamRef {
	return TeamRef{teamID: &id}
}

// UnknownTeam builds a reference to an untracked opponent
func UnknownTeam(name string) TeamRef {
	return TeamRef{name: name}
}

// ID returns the tracked team id and true, or 0 and false for an
// untracked opponent
func (r TeamRef) ID() (int64, bool) {
	if r.teamID == nil {
		return 0, false
	}
	return *r.teamID, true
}

// RawName returns the untracked opponent's name; empty for tracked teams
func (r TeamRef) RawName() string {
	return r.name
}

// Game represents a single matchup within a week. The spread is always stated
// from the home side: negative means the home team is favored by that many
// points.
type Game struct {
	ID             int64      `db:"id"`
	WeekID         int64      `db:"week_id"`
	HomeTeamID     *int64     `db:"home_team_id"`
	AwayTeamID     *int64     `db:"away_team_id"`
	HomeTeamName   *string    `db:"home_team_name"`
	AwayTeamName   *string    `db:"away_team_name"`
	HomeTeamSpread float64    `db:"home_team_spread"`
	GameTime       *time.Time `db:"game_time"`
	HomeTeamWon    *bool      `db:"home_team_won"`
}

// HomeRef returns a tagged reference to the home side
func (g *Game) HomeRef() TeamRef {
	if g.HomeTeamID != nil {
		return KnownTeam(*g.HomeTeamID)
	}
	if g.HomeTeamName != nil {
		return UnknownTeam(*g.HomeTeamName)
	}
	return UnknownTeam("")
}

// AwayRef returns a tagged reference to the away side
func (g *Game) AwayRef() TeamRef {
	if g.AwayTeamID != nil {
		return KnownTeam(*g.AwayTeamID)
	}
	if g.AwayTeamName != nil {
		return UnknownTeam(*g.AwayTeamName)
	}
	return UnknownTeam("")
}

// Involves reports whether the tracked team plays in this game
func (g *Game) Involves(teamID int64) bool {
	if g.HomeTeamID != nil && *g.HomeTeamID == teamID {
		return true
	}
	if g.AwayTeamID != nil && *g.AwayTeamID == teamID {
		return true
	}
	return false
}

// SpreadFor returns the signed spread from the given team's perspective
// (negative = favored). The second return is false when the team does not
// play in this game.
func (g *Game) SpreadFor(teamID int64) (float64, bool) {
	if g.HomeTeamID != nil && *g.HomeTeamID == teamID {
		return g.HomeTeamSpread, true
	}
	if g.AwayTeamID != nil && *g.AwayTeamID == teamID {
		return -g.HomeTeamSpread, true
	}
	return 0, false
}

// FavoritismFor converts the team's spread to points of favoritism: positive
// when the team is favored, negative when it is the underdog.
func (g *Game) FavoritismFor(teamID int64) (float64, bool) {
	spread, ok := g.SpreadFor(teamID)
	if !ok {
		return 0, false
	}
	return -spread, true
}

// HasResult reports whether the game's winner has been recorded
func (g *Game) HasResult() bool {
	return g.HomeTeamWon != nil
}

// WonBy reports whether the tracked team won. The second return is false when
// the game has no recorded result or the team does not play in it.
func (g *Game) WonBy(teamID int64) (bool, bool) {
	if g.HomeTeamWon == nil || !g.Involves(teamID) {
		return false, false
	}
	if g.HomeTeamID != nil && *g.HomeTeamID == teamID {
		return *g.HomeTeamWon, true
	}
	return !*g.HomeTeamWon, true
}

// LoserRef returns the losing side of a completed game. The second return is
// false when no result has been recorded.
func (g *Game) LoserRef() (TeamRef, bool) {
	if g.HomeTeamWon == nil {
		return TeamRef{}, false
	}
	if *g.HomeTeamWon {
		return g.AwayRef(), true
	}
	return g.HomeRef(), true
}

// HasStarted reports whether kickoff has passed. A game with no scheduled
// time never locks on its own.
func (g *Game) HasStarted(now time.Time) bool {
	return g.GameTime != nil && now.After(*g.GameTime)
}
