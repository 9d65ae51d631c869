// Package models holds persistence-facing record types shared by the
// service and database layers.
package models

import "time"

// MoveType classifies a recorded match move.
type MoveType string

const (
	MoveTypeBid      MoveType = "BID"
	MoveTypePlayCard MoveType = "PLAY_CARD"
	MoveTypeEndTrick MoveType = "END_TRICK"
	MoveTypeEndHand  MoveType = "END_HAND"
)

// MatchMove is one entry in the append-only move log of a match.
type MatchMove struct {
	MatchID  string    `json:"matchId"`
	PlayerID string    `json:"playerId"`
	Type     MoveType  `json:"type"`
	Detail   string    `json:"detail"`
	PlayedAt time.Time `json:"playedAt"`
}
