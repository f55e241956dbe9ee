package entities

// Team is a static reference entity for a tracked college football team
type Team struct {
	ID         int64  `db:"id"`
	Name       string `db:"name"`
	Conference string `db:"conference"`
}
