package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents one connected participant in a race room.
// A player belongs to exactly one room for its whole lifetime.
type Player struct {
	ID       PlayerID
	Name     string // display name, immutable after creation
	RoomKey  RoomKey
	Typed    string // characters entered for the current/most recent test
	JoinedAt time.Time
}
