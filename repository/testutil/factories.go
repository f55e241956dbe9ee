package testutil

import (
	"time"

	"survivorpool/domain/entities"
)

// CreateTestWeek creates a week with a deadline 4 hours before the Saturday
// slate starting at the given instant
func CreateTestWeek(number int, kickoff time.Time) *entities.Week {
	return &entities.Week{
		WeekNumber: number,
		StartDate:  kickoff.Add(-24 * time.Hour),
		Deadline:   kickoff.Add(-4 * time.Hour),
	}
}

// CreateTestPlayoffWeek creates a playoff week with the given round name
func CreateTestPlayoffWeek(number int, kickoff time.Time, round string) *entities.Week {
	week := CreateTestWeek(number, kickoff)
	week.IsPlayoffWeek = true
	week.RoundName = &round
	return week
}

// CreateTestGame creates a game between two tracked teams
func CreateTestGame(weekID, homeTeamID, awayTeamID int64, homeSpread float64, kickoff time.Time) *entities.Game {
	return &entities.Game{
		WeekID:         weekID,
		HomeTeamID:     &homeTeamID,
		AwayTeamID:     &awayTeamID,
		HomeTeamSpread: homeSpread,
		GameTime:       &kickoff,
	}
}

// CreateTestGameVsUntracked creates a game where the away opponent is not a
// tracked team
func CreateTestGameVsUntracked(weekID, homeTeamID int64, awayName string, homeSpread float64, kickoff time.Time) *entities.Game {
	return &entities.Game{
		WeekID:         weekID,
		HomeTeamID:     &homeTeamID,
		AwayTeamName:   &awayName,
		HomeTeamSpread: homeSpread,
		GameTime:       &kickoff,
	}
}
