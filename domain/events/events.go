package events

// EventType represents different types of events in the system
type EventType string

const (
	EventTypePickSubmitted        EventType = "pick_submitted"
	EventTypeWeekResultsProcessed EventType = "week_results_processed"
	EventTypeUserEliminated       EventType = "user_eliminated"
	EventTypeFieldRevived         EventType = "field_revived"
	EventTypeAutopicksProcessed   EventType = "autopicks_processed"
	EventTypeWeekActivated        EventType = "week_activated"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// PickSubmittedEvent represents a pick created or updated for a week
type PickSubmittedEvent struct {
	UserID   int64
	WeekID   int64
	TeamID   int64
	AutoPick bool
}

func (e PickSubmittedEvent) Type() EventType {
	return EventTypePickSubmitted
}

// WeekResultsProcessedEvent represents a completed result pass over a week
type WeekResultsProcessedEvent struct {
	WeekID          int64
	WeekNumber      int
	CorrectPicks    int
	IncorrectPicks  int
	PendingPicks    int
	EliminatedUsers []int64
	RevivalApplied  bool
}

func (e WeekResultsProcessedEvent) Type() EventType {
	return EventTypeWeekResultsProcessed
}

// UserEliminatedEvent represents a user running out of lives
type UserEliminatedEvent struct {
	UserID int64
	WeekID int64
}

func (e UserEliminatedEvent) Type() EventType {
	return EventTypeUserEliminated
}

// FieldRevivedEvent represents the catastrophe rule firing: the entire
// remaining field lost on their last life and was restored to one life each
type FieldRevivedEvent struct {
	WeekID  int64
	UserIDs []int64
}

func (e FieldRevivedEvent) Type() EventType {
	return EventTypeFieldRevived
}

// AutopicksProcessedEvent represents an autopick pass over a week
type AutopicksProcessedEvent struct {
	WeekID int64
	Made   int
	Failed int
}

func (e AutopicksProcessedEvent) Type() EventType {
	return EventTypeAutopicksProcessed
}

// WeekActivatedEvent represents the active-week flag moving to a new week
type WeekActivatedEvent struct {
	WeekID     int64
	WeekNumber int
}

func (e WeekActivatedEvent) Type() EventType {
	return EventTypeWeekActivated
}
