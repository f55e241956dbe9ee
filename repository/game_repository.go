package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"survivorpool/database"
	"survivorpool/domain/entities"
)

// GameRepository implements the GameRepository interface
type GameRepository struct {
	q Queryable
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{q: db.Pool}
}

// newGameRepository creates a game repository bound to a transaction
func newGameRepository(tx Queryable) *GameRepository {
	return &GameRepository{q: tx}
}

const gameColumns = `id, week_id, home_team_id, away_team_id, home_team_name, away_team_name, home_team_spread, game_time, home_team_won`

func scanGame(row pgx.Row) (*entities.Game, error) {
	var g entities.Game
	err := row.Scan(
		&g.ID,
		&g.WeekID,
		&g.HomeTeamID,
		&g.AwayTeamID,
		&g.HomeTeamName,
		&g.AwayTeamName,
		&g.HomeTeamSpread,
		&g.GameTime,
		&g.HomeTeamWon,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Create creates a new game and fills in its generated id
func (r *GameRepository) Create(ctx context.Context, game *entities.Game) error {
	query := `
		INSERT INTO games (week_id, home_team_id, away_team_id, home_team_name, away_team_name, home_team_spread, game_time, home_team_won)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := r.q.QueryRow(ctx, query,
		game.WeekID,
		game.HomeTeamID,
		game.AwayTeamID,
		game.HomeTeamName,
		game.AwayTeamName,
		game.HomeTeamSpread,
		game.GameTime,
		game.HomeTeamWon,
	).Scan(&game.ID)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

// GetByID retrieves a game by id
func (r *GameRepository) GetByID(ctx context.Context, id int64) (*entities.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games WHERE id = $1`, gameColumns)
	game, err := scanGame(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}
	return game, nil
}

// GetByWeek returns every game scheduled in a week
func (r *GameRepository) GetByWeek(ctx context.Context, weekID int64) ([]*entities.Game, error) {
	query := fmt.Sprintf(`SELECT %s FROM games WHERE week_id = $1 ORDER BY game_time ASC NULLS LAST, id ASC`, gameColumns)

	rows, err := r.q.Query(ctx, query, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to query games for week %d: %w", weekID, err)
	}
	defer rows.Close()

	var games []*entities.Game
	for rows.Next() {
		var g entities.Game
		if err := rows.Scan(
			&g.ID,
			&g.WeekID,
			&g.HomeTeamID,
			&g.AwayTeamID,
			&g.HomeTeamName,
			&g.AwayTeamName,
			&g.HomeTeamSpread,
			&g.GameTime,
			&g.HomeTeamWon,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, &g)
	}
	return games, rows.Err()
}

// GetByTeamAndWeek finds the game a tracked team plays in a week
func (r *GameRepository) GetByTeamAndWeek(ctx context.Context, teamID, weekID int64) (*entities.Game, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM games
		WHERE week_id = $2 AND (home_team_id = $1 OR away_team_id = $1)`, gameColumns)

	game, err := scanGame(r.q.QueryRow(ctx, query, teamID, weekID))
	if err != nil {
		return nil, fmt.Errorf("failed to get game for team %d in week %d: %w", teamID, weekID, err)
	}
	return game, nil
}

// SetResult records the winner of a game
func (r *GameRepository) SetResult(ctx context.Context, gameID int64, homeTeamWon bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE games SET home_team_won = $2 WHERE id = $1`, gameID, homeTeamWon)
	if err != nil {
		return fmt.Errorf("failed to set result for game %d: %w", gameID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %d not found", gameID)
	}
	return nil
}

// PlayoffLoserNames returns the names of teams that have lost any completed
// playoff-week game. Sides backed by a tracked team resolve to the team's
// name, untracked sides fall back to the name stored on the game row.
func (r *GameRepository) PlayoffLoserNames(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT
			CASE WHEN g.home_team_won
				THEN COALESCE(at.name, g.away_team_name)
				ELSE COALESCE(ht.name, g.home_team_name)
			END AS loser
		FROM games g
		JOIN weeks w ON w.id = g.week_id
		LEFT JOIN teams ht ON ht.id = g.home_team_id
		LEFT JOIN teams at ON at.id = g.away_team_id
		WHERE w.is_playoff_week = true AND g.home_team_won IS NOT NULL`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query playoff losers: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name *string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan loser name: %w", err)
		}
		if name != nil && *name != "" {
			names = append(names, *name)
		}
	}
	return names, rows.Err()
}
