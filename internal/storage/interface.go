package storage

import (
	"context"

	"github.com/fwhittle/typerace-go/internal/model"
)

// Storage defines the interface for room and player persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error
	PlayerExists(ctx context.Context, id model.PlayerID) (bool, error)

	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, key model.RoomKey) (*model.Room, error)
	DeleteRoom(ctx context.Context, key model.RoomKey) error
	RoomExists(ctx context.Context, key model.RoomKey) (bool, error)

	// Word list operations
	GetWordList(ctx context.Context) ([]string, error)
	SaveWordList(ctx context.Context, words []string) error
}
