package entities

import "fmt"

// EligibilityReason identifies which pool rule made a team unpickable.
// Participants care about the difference, so every refusal names its rule.
type EligibilityReason string

const (
	ReasonTeamUsedInPhase EligibilityReason = "team_used_in_phase"
	ReasonCFPEliminated   EligibilityReason = "cfp_eliminated"
	ReasonSpreadCap       EligibilityReason = "spread_cap"
	ReasonGameStarted     EligibilityReason = "game_started"
	ReasonDeadlinePassed  EligibilityReason = "deadline_passed"
)

// NotFoundError reports a missing user, team, week or game
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ValidationError reports malformed input, such as a team not playing in the
// requested week
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// EligibilityError reports a team that cannot be picked, and why
type EligibilityError struct {
	TeamName string
	Reason   EligibilityReason
}

func (e *EligibilityError) Error() string {
	switch e.Reason {
	case ReasonTeamUsedInPhase:
		return fmt.Sprintf("%s has already been used in a previous week of this phase", e.TeamName)
	case ReasonCFPEliminated:
		return fmt.Sprintf("%s has been eliminated from the playoff", e.TeamName)
	case ReasonSpreadCap:
		return fmt.Sprintf("%s is favored by too many points to be picked", e.TeamName)
	case ReasonGameStarted:
		return fmt.Sprintf("%s's game has already started", e.TeamName)
	case ReasonDeadlinePassed:
		return "the deadline for this week has passed"
	default:
		return fmt.Sprintf("%s is not eligible", e.TeamName)
	}
}

// AlreadyLockedError reports an existing pick whose game has kicked off; a
// locked pick cannot be changed regardless of the week deadline
type AlreadyLockedError struct {
	TeamName string
}

func (e *AlreadyLockedError) Error() string {
	return fmt.Sprintf("pick is locked: %s's game has already started", e.TeamName)
}

// StateError reports an operation attempted in an invalid state, such as an
// eliminated user submitting a pick or reprocessing a complete week
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}
