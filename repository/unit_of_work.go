package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"survivorpool/application"
	"survivorpool/database"
	"survivorpool/domain/interfaces"
)

// unitOfWork implements the application.UnitOfWork interface
type unitOfWork struct {
	db       *database.DB
	tx       pgx.Tx
	ctx      context.Context
	userRepo interfaces.UserRepository
	teamRepo interfaces.TeamRepository
	weekRepo interfaces.WeekRepository
	gameRepo interfaces.GameRepository
	pickRepo interfaces.PickRepository
}

type unitOfWorkFactory struct {
	db *database.DB
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) application.UnitOfWorkFactory {
	return &unitOfWorkFactory{db: db}
}

// Create creates a new UnitOfWork instance
func (f *unitOfWorkFactory) Create() application.UnitOfWork {
	return &unitOfWork{db: f.db}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Bind every repository to the transaction
	u.userRepo = newUserRepository(tx)
	u.teamRepo = newTeamRepository(tx)
	u.weekRepo = newWeekRepository(tx)
	u.gameRepo = newGameRepository(tx)
	u.pickRepo = newPickRepository(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	u.tx = nil
	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	u.tx = nil
	return nil
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() interfaces.UserRepository {
	return u.userRepo
}

// TeamRepository returns the team repository for this unit of work
func (u *unitOfWork) TeamRepository() interfaces.TeamRepository {
	return u.teamRepo
}

// WeekRepository returns the week repository for this unit of work
func (u *unitOfWork) WeekRepository() interfaces.WeekRepository {
	return u.weekRepo
}

// GameRepository returns the game repository for this unit of work
func (u *unitOfWork) GameRepository() interfaces.GameRepository {
	return u.gameRepo
}

// PickRepository returns the pick repository for this unit of work
func (u *unitOfWork) PickRepository() interfaces.PickRepository {
	return u.pickRepo
}
