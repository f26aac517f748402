package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHasPlayer(t *testing.T) {
	room := &Room{Players: []PlayerID{"100001", "100002"}}

	assert.True(t, room.HasPlayer("100001"))
	assert.False(t, room.HasPlayer("100003"))
}

func TestRemovePlayerPreservesOrder(t *testing.T) {
	room := &Room{Players: []PlayerID{"100001", "100002", "100003"}}

	assert.True(t, room.RemovePlayer("100002"))
	assert.Equal(t, []PlayerID{"100001", "100003"}, room.Players)
}

func TestRemovePlayerNotMember(t *testing.T) {
	room := &Room{Players: []PlayerID{"100001"}}

	assert.False(t, room.RemovePlayer("100002"))
	assert.Len(t, room.Players, 1)
}

func TestElapsed(t *testing.T) {
	started := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	room := &Room{TestStartedAt: &started}

	elapsed, running := room.Elapsed(started.Add(15 * time.Second))
	assert.True(t, running)
	assert.Equal(t, 15*time.Second, elapsed)
}

func TestElapsedNoTest(t *testing.T) {
	room := &Room{}

	elapsed, running := room.Elapsed(time.Now())
	assert.False(t, running)
	assert.Zero(t, elapsed)
}
