package entities

// AutopickResult records one synthesized pick made on behalf of a user who
// missed the deadline
type AutopickResult struct {
	UserID      int64
	Username    string
	TeamID      int64
	TeamName    string
	Spread      float64
	Description string
}

// AutopickFailure records a user the engine could not fill a pick for.
// An unfillable autopick carries no life penalty.
type AutopickFailure struct {
	UserID   int64
	Username string
	Reason   string
}

// AutopickReport is the outcome of one autopick pass over a week. Processed
// is false when the pass was refused outright (deadline not yet reached).
type AutopickReport struct {
	Processed bool
	Reason    string
	Made      []AutopickResult
	Failed    []AutopickFailure
}
