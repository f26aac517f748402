package redis

import (
	"fmt"

	"github.com/fwhittle/typerace-go/internal/model"
)

// Key prefix for all race-related data
const keyPrefix = "typerace"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// roomKey returns the Redis key for a Room
func roomKey(key model.RoomKey) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, key)
}

// wordListKey returns the Redis key for the word list set
func wordListKey() string {
	return fmt.Sprintf("%s:words", keyPrefix)
}
