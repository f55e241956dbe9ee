package services

import (
	"time"

	"survivorpool/domain/entities"
)

// Shared fixtures for service tests. Kickoffs hang off a fixed Saturday so
// the mock clock can sit before or after any of them deterministically.

var (
	saturday = time.Date(2025, 11, 1, 17, 0, 0, 0, time.UTC)
	deadline = saturday.Add(-4 * time.Hour)
)

func i64(v int64) *int64        { return &v }
func str(v string) *string      { return &v }
func boolp(v bool) *bool        { return &v }
func tsp(v time.Time) *time.Time { return &v }

func testUser(id int64, username string, lives int) *entities.User {
	return &entities.User{
		ID:             id,
		Username:       username,
		Email:          username + "@example.com",
		LivesRemaining: lives,
	}
}

func testWeek(id int64, number int) *entities.Week {
	return &entities.Week{
		ID:         id,
		WeekNumber: number,
		StartDate:  saturday.Add(-24 * time.Hour),
		Deadline:   deadline,
	}
}

func playoffWeek(id int64, number int, round string) *entities.Week {
	w := testWeek(id, number)
	w.IsPlayoffWeek = true
	w.RoundName = str(round)
	return w
}

// trackedGame builds a game between two tracked teams with the home side's
// spread, kicking off at the fixture Saturday
func trackedGame(id, weekID, homeID, awayID int64, homeSpread float64) *entities.Game {
	return &entities.Game{
		ID:             id,
		WeekID:         weekID,
		HomeTeamID:     i64(homeID),
		AwayTeamID:     i64(awayID),
		HomeTeamSpread: homeSpread,
		GameTime:       tsp(saturday),
	}
}

// mixedGame builds a game between a tracked home team and an untracked
// opponent known only by name
func mixedGame(id, weekID, homeID int64, awayName string, homeSpread float64) *entities.Game {
	return &entities.Game{
		ID:             id,
		WeekID:         weekID,
		HomeTeamID:     i64(homeID),
		AwayTeamName:   str(awayName),
		HomeTeamSpread: homeSpread,
		GameTime:       tsp(saturday),
	}
}

func teamMap(teams ...*entities.Team) map[int64]*entities.Team {
	m := make(map[int64]*entities.Team, len(teams))
	for _, t := range teams {
		m[t.ID] = t
	}
	return m
}
