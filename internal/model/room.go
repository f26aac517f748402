package model

import "time"

// RoomKey is the identifier players use to join a room
type RoomKey string

// Room represents one race session: its members, the shared challenge
// text, and the timing state of the current test.
type Room struct {
	Key RoomKey

	// Players in insertion order; order determines player number.
	Players []PlayerID

	// Host is the member allowed to start tests. Empty when the room
	// has no members.
	Host PlayerID

	// Chars is the space-joined challenge text players type against.
	Chars string

	// TestStartedAt is set while a test is running, nil when idle.
	TestStartedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPlayer reports whether the player is a member of the room
func (r *Room) HasPlayer(id PlayerID) bool {
	for _, p := range r.Players {
		if p == id {
			return true
		}
	}
	return false
}

// RemovePlayer drops the player from the member list, preserving order.
// Returns false if the player was not a member.
func (r *Room) RemovePlayer(id PlayerID) bool {
	for i, p := range r.Players {
		if p == id {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return true
		}
	}
	return false
}

// TestRunning reports whether a test is currently in progress
func (r *Room) TestRunning() bool {
	return r.TestStartedAt != nil
}

// Elapsed returns the time since the current test started, or zero and
// false when no test is running.
func (r *Room) Elapsed(now time.Time) (time.Duration, bool) {
	if r.TestStartedAt == nil {
		return 0, false
	}
	return now.Sub(*r.TestStartedAt), true
}
