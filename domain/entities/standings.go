package entities

// Standings is the ranked view of the pool. Active users are ordered by lives
// remaining descending, then cumulative spread ascending (a smaller spread
// total rewards underdog picks).
type Standings struct {
	Active     []*User
	Eliminated []*User
}

// PickDetail pairs a pick with its team and the signed spread the team
// carried, for history and results views. Spread is nil when no game for the
// picked team could be found.
type PickDetail struct {
	Pick   *Pick
	Week   *Week
	Team   *Team
	Spread *float64
}

// PickSummary is a user's season pick history with win/loss tallies
type PickSummary struct {
	Picks     []*PickDetail
	Correct   int
	Incorrect int
	Pending   int
}

// PaymentSummary aggregates entry-fee collection across the roster
type PaymentSummary struct {
	PaidCount      int
	UnpaidCount    int
	TotalActive    int
	EntryFee       int64
	TotalCollected int64
}
