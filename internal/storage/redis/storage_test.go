package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/fwhittle/typerace-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.PlayerTTL = time.Hour
	cfg.RoomTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:       "123456",
		Name:     "Alice",
		RoomKey:  "654321",
		Typed:    "the cat ",
		JoinedAt: time.Now().UTC(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "123456")
	s.Require().NoError(err)
	s.Equal(player.Name, retrieved.Name)
	s.Equal(player.RoomKey, retrieved.RoomKey)
	s.Equal(player.Typed, retrieved.Typed)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "000000")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "123456", Name: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "123456")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "123456")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestPlayerExists() {
	player := &model.Player{ID: "123456", Name: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	exists, err := s.storage.PlayerExists(s.ctx, "123456")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.PlayerExists(s.ctx, "000000")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestPlayerTTL() {
	player := &model.Player{ID: "123456", Name: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	ttl := s.mini.TTL(playerKey(player.ID))
	s.True(ttl > 0, "Player should have TTL")
}

// Room tests

func (s *StorageSuite) TestSaveAndGetRoom() {
	started := time.Now().UTC()
	room := &model.Room{
		Key:           "654321",
		Players:       []model.PlayerID{"123456", "234567"},
		Host:          "123456",
		Chars:         "the cat sat ",
		TestStartedAt: &started,
	}

	err := s.storage.SaveRoom(s.ctx, room)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "654321")
	s.Require().NoError(err)
	s.Equal(room.Players, retrieved.Players)
	s.Equal(room.Host, retrieved.Host)
	s.Equal(room.Chars, retrieved.Chars)
	s.Require().NotNil(retrieved.TestStartedAt)
	s.True(started.Equal(*retrieved.TestStartedAt))
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "000000")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestDeleteRoom() {
	room := &model.Room{Key: "654321"}
	_ = s.storage.SaveRoom(s.ctx, room)

	err := s.storage.DeleteRoom(s.ctx, "654321")
	s.Require().NoError(err)

	_, err = s.storage.GetRoom(s.ctx, "654321")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestRoomExists() {
	room := &model.Room{Key: "654321"}
	_ = s.storage.SaveRoom(s.ctx, room)

	exists, err := s.storage.RoomExists(s.ctx, "654321")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.RoomExists(s.ctx, "000000")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestRoomTTL() {
	room := &model.Room{Key: "654321"}
	_ = s.storage.SaveRoom(s.ctx, room)

	ttl := s.mini.TTL(roomKey(room.Key))
	s.True(ttl > 0, "Room should have TTL")
}

// Word list tests

func (s *StorageSuite) TestSaveAndGetWordList() {
	words := []string{"cat", "dog", "bird"}

	err := s.storage.SaveWordList(s.ctx, words)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetWordList(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch(words, retrieved) // Order may differ (SET)
}

func (s *StorageSuite) TestGetWordListNotLoaded() {
	_, err := s.storage.GetWordList(s.ctx)
	s.ErrorIs(err, model.ErrWordsNotLoaded)
}

func (s *StorageSuite) TestSaveWordListReplacesExisting() {
	words1 := []string{"cat", "dog"}
	words2 := []string{"bird", "fish", "horse"}

	_ = s.storage.SaveWordList(s.ctx, words1)
	_ = s.storage.SaveWordList(s.ctx, words2)

	retrieved, err := s.storage.GetWordList(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch(words2, retrieved)
}

func (s *StorageSuite) TestWordListNoTTL() {
	_ = s.storage.SaveWordList(s.ctx, []string{"cat"})

	ttl := s.mini.TTL(wordListKey())
	s.Equal(time.Duration(0), ttl, "Word list should not have TTL")
}
