// Package database owns the Postgres connection pool and the durable
// move log. The pool is a package-level handle; callers nil-check it so
// the server runs fine without a database (moves simply go unrecorded).
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/belatro/belatro-server/internal/models"
)

// DB is the shared connection pool. Nil until Connect succeeds.
var DB *pgxpool.Pool

// Connect opens and pings a pgx pool from the given DSN and installs it
// as the package pool.
func Connect(ctx context.Context, dsn string) error {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping postgres: %w", err)
	}
	DB = pool
	return nil
}

// Close releases the pool.
func Close() {
	if DB != nil {
		DB.Close()
		DB = nil
	}
}

// RecordMatchMove appends one move to the match_moves log.
func RecordMatchMove(ctx context.Context, move models.MatchMove) error {
	if DB == nil {
		return nil
	}
	_, err := DB.Exec(ctx,
		`INSERT INTO match_moves (match_id, player_id, move_type, detail, played_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		move.MatchID, move.PlayerID, string(move.Type), move.Detail, move.PlayedAt,
	)
	return err
}

// RecordMatchResult stores the final standing of a completed match.
func RecordMatchResult(ctx context.Context, matchID, winner string, teamAPoints, teamBPoints int) error {
	if DB == nil {
		return nil
	}
	_, err := DB.Exec(ctx,
		`INSERT INTO match_results (match_id, winner, team_a_points, team_b_points)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (match_id) DO UPDATE
		 SET winner = EXCLUDED.winner,
		     team_a_points = EXCLUDED.team_a_points,
		     team_b_points = EXCLUDED.team_b_points`,
		matchID, winner, teamAPoints, teamBPoints,
	)
	return err
}
