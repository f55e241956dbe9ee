package application

import (
	"context"

	"survivorpool/domain/interfaces"
)

// UnitOfWork bundles the repositories behind a single database transaction
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() interfaces.UserRepository
	TeamRepository() interfaces.TeamRepository
	WeekRepository() interfaces.WeekRepository
	GameRepository() interfaces.GameRepository
	PickRepository() interfaces.PickRepository
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
