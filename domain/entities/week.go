package entities

import (
	"fmt"
	"time"
)

// Week represents one slate of the season. Exactly one week should be active
// at a time; WeekRepository.SetActive swaps the flag atomically.
type Week struct {
	ID            int64      `db:"id"`
	WeekNumber    int        `db:"week_number"`
	StartDate     time.Time  `db:"start_date"`
	Deadline      time.Time  `db:"deadline"`
	IsActive      bool       `db:"is_active"`
	IsComplete    bool       `db:"is_complete"`
	IsPlayoffWeek bool       `db:"is_playoff_week"`
	RoundName     *string    `db:"round_name"`
}

// roundShortLabels maps special round names to their navigation labels
var roundShortLabels = map[string]string{
	"Conference Championship Week": "CCW",
	"CFP Round 1":                  "R1",
	"CFP Quarterfinals":            "QF",
	"CFP Semifinals":               "SF",
	"CFP Championship":             "F",
}

// DeadlinePassed reports whether picks for the week are locked as of now
func (w *Week) DeadlinePassed(now time.Time) bool {
	return now.After(w.Deadline)
}

// DisplayName returns the full name for the week: the custom round name when
// set ("CFP Quarterfinals"), otherwise "Week N".
func (w *Week) DisplayName() string {
	if w.RoundName != nil && *w.RoundName != "" {
		return *w.RoundName
	}
	return fmt.Sprintf("Week %d", w.WeekNumber)
}

// ShortLabel returns the compact label used in week navigation:
// "W5", "CCW", "QF" and so on.
func (w *Week) ShortLabel() string {
	if w.RoundName != nil && *w.RoundName != "" {
		if label, ok := roundShortLabels[*w.RoundName]; ok {
			return label
		}
	}
	return fmt.Sprintf("W%d", w.WeekNumber)
}
