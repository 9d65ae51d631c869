// Package store persists match state between moves. Games serialize to
// JSON; a store hands back an independent copy on every load, so callers
// mutate freely and write back explicitly.
package store

import (
	"context"
	"errors"

	"github.com/belatro/belatro-server/engine"
)

// ErrNotFound is returned when no game exists under the requested ID.
var ErrNotFound = errors.New("store: game not found")

// MatchStore loads and saves games keyed by game ID.
type MatchStore interface {
	Load(ctx context.Context, id string) (*engine.Game, error)
	Save(ctx context.Context, g *engine.Game) error
	Delete(ctx context.Context, id string) error
}
