package room

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fwhittle/typerace-go/internal/dependencies/clock"
	"github.com/fwhittle/typerace-go/internal/dependencies/random"
	"github.com/fwhittle/typerace-go/internal/model"
	"github.com/fwhittle/typerace-go/internal/services/room/notify"
	"github.com/fwhittle/typerace-go/internal/services/scoring"
	"github.com/fwhittle/typerace-go/internal/services/words"
	"github.com/fwhittle/typerace-go/internal/storage"
)

const (
	// IDLength is the length of generated room keys and player IDs
	IDLength = 6
	// IDAlphabet is the characters used in room keys and player IDs
	IDAlphabet = "0123456789"
)

// Config holds race timing and challenge-text settings
type Config struct {
	// TestDuration is how long a test runs before the server ends it
	TestDuration time.Duration
	// ChallengeWords is the number of words in a generated challenge text
	ChallengeWords int
}

// DefaultConfig returns the default race configuration
func DefaultConfig() Config {
	return Config{
		TestDuration:   30 * time.Second,
		ChallengeWords: 200,
	}
}

// Controller manages the room/player state machine: membership, host
// election, test lifecycle and event notification.
//
// A single mutex serializes every state mutation, so each operation
// runs to completion before the next one observes anything. The
// deferred test-end timer takes the same mutex and is, from the state
// machine's perspective, just another incoming operation.
type Controller struct {
	storage  storage.Storage
	words    *words.Service
	clock    clock.Clock
	random   random.Random
	notifier *notify.Notifier
	logger   *slog.Logger
	cfg      Config

	mu     sync.Mutex
	timers map[model.RoomKey]clock.Timer
}

// NewController creates a new room controller
func NewController(
	storage storage.Storage,
	words *words.Service,
	clk clock.Clock,
	random random.Random,
	logger *slog.Logger,
	cfg Config,
) *Controller {
	return &Controller{
		storage:  storage,
		words:    words,
		clock:    clk,
		random:   random,
		notifier: notify.New(logger),
		logger:   logger.With(slog.String("component", "room")),
		cfg:      cfg,
		timers:   make(map[model.RoomKey]clock.Timer),
	}
}

// CreateRoom allocates a new room with a fresh challenge text and adds
// the named player as its first member, making them host.
func (c *Controller) CreateRoom(ctx context.Context, playerName string) (*model.Room, *model.Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key, err := c.generateRoomKey(ctx)
	if err != nil {
		return nil, nil, err
	}

	chars, err := c.words.Generate(c.cfg.ChallengeWords)
	if err != nil {
		return nil, nil, err
	}

	now := c.clock.Now()
	room := &model.Room{
		Key:       key,
		Players:   []model.PlayerID{},
		Chars:     chars,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, nil, err
	}

	c.logger.Info("room created", slog.String("room", string(key)))

	player, err := c.addPlayer(ctx, room, playerName)
	if err != nil {
		return nil, nil, err
	}

	return room, player, nil
}

// JoinRoom adds a new player to an existing room
func (c *Controller) JoinRoom(ctx context.Context, key model.RoomKey, playerName string) (*model.Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.storage.GetRoom(ctx, key)
	if err != nil {
		return nil, err
	}

	return c.addPlayer(ctx, room, playerName)
}

// addPlayer creates a player bound to the room and links it in. The
// first member of a room becomes host. Adding an ID that is already a
// member is a no-op and fires no notification. Caller must hold mu.
func (c *Controller) addPlayer(ctx context.Context, room *model.Room, name string) (*model.Player, error) {
	id, err := c.generatePlayerID(ctx)
	if err != nil {
		return nil, err
	}

	player := &model.Player{
		ID:       id,
		Name:     name,
		RoomKey:  room.Key,
		JoinedAt: c.clock.Now(),
	}
	if err := c.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	if room.HasPlayer(id) {
		return player, nil
	}

	room.Players = append(room.Players, id)
	if len(room.Players) == 1 {
		c.logger.Info("making player host",
			slog.String("room", string(room.Key)),
			slog.String("player", string(id)))
		room.Host = id
	}
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.notifier.Publish(room.Key, model.EventPlayersUpdate)
	return player, nil
}

// ExitRoom removes a player from its registry and room. Removal is
// best-effort: an unknown player is logged and reported as success.
// If the departing player was host, a new host is elected uniformly at
// random from the remaining members, or cleared if none remain.
func (c *Controller) ExitRoom(ctx context.Context, playerID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	player, err := c.storage.GetPlayer(ctx, playerID)
	if err != nil {
		c.logger.Warn("exit for unknown player", slog.String("player", string(playerID)))
		return nil
	}

	if err := c.storage.DeletePlayer(ctx, playerID); err != nil {
		return err
	}

	room, err := c.storage.GetRoom(ctx, player.RoomKey)
	if err != nil {
		c.logger.Warn("exiting player's room is gone",
			slog.String("player", string(playerID)),
			slog.String("room", string(player.RoomKey)))
		return nil
	}

	if !room.RemovePlayer(playerID) {
		c.logger.Warn("player not linked to room",
			slog.String("player", string(playerID)),
			slog.String("room", string(room.Key)))
		return nil
	}

	if room.Host == playerID {
		if len(room.Players) > 0 {
			room.Host = room.Players[c.random.Intn(len(room.Players))]
			c.logger.Info("passing host",
				slog.String("room", string(room.Key)),
				slog.String("player", string(room.Host)))
		} else {
			c.logger.Info("room has no host left", slog.String("room", string(room.Key)))
			room.Host = ""
		}
	}
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	c.notifier.Publish(room.Key, model.EventPlayersUpdate)
	return nil
}

// StartTest begins a timed test in the room. Only the host may start
// one, and only while no test is running. The server ends the test
// itself after the configured duration; nothing on the request surface
// cancels the timer once scheduled.
func (c *Controller) StartTest(ctx context.Context, key model.RoomKey, playerID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.storage.GetRoom(ctx, key)
	if err != nil {
		return err
	}

	if room.Host != playerID {
		return model.ErrNotHost
	}
	if room.TestRunning() {
		return model.ErrTestRunning
	}

	now := c.clock.Now()
	room.TestStartedAt = &now
	room.UpdatedAt = now
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	c.logger.Info("test started", slog.String("room", string(key)))
	c.timers[key] = c.clock.AfterFunc(c.cfg.TestDuration, func() {
		c.endTest(key)
	})

	c.notifier.Publish(key, model.EventTestStart)
	return nil
}

// endTest is the deferred timer callback: it clears the running test
// and then fires TEST_END. The clearing happens first, so rosters
// built for the TEST_END event see no elapsed time.
func (c *Controller) endTest(key model.RoomKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx := context.Background()
	delete(c.timers, key)

	room, err := c.storage.GetRoom(ctx, key)
	if err != nil {
		c.logger.Warn("test ended for missing room", slog.String("room", string(key)))
		return
	}

	c.logger.Info("test ended", slog.String("room", string(key)))
	room.TestStartedAt = nil
	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		c.logger.Error("saving room at test end", slog.String("error", err.Error()))
		return
	}

	c.notifier.Publish(key, model.EventTestEnd)
}

// StopTest ends a running test early, cancelling the pending timer.
// No endpoint exposes this yet; it exists so an early-finish feature
// can be added without racing the timer.
func (c *Controller) StopTest(ctx context.Context, key model.RoomKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.storage.GetRoom(ctx, key)
	if err != nil {
		return err
	}
	if !room.TestRunning() {
		return model.ErrTestNotRunning
	}

	if t, ok := c.timers[key]; ok {
		t.Stop()
		delete(c.timers, key)
	}

	room.TestStartedAt = nil
	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	c.notifier.Publish(key, model.EventTestEnd)
	return nil
}

// SubmitTyped records a player's typed progress for the running test
// and regenerates the room's challenge text. Regenerating on every
// accepted submission is how the shared text is continuously extended
// while a test runs; clients resync via the WORDS_UPDATE event.
func (c *Controller) SubmitTyped(ctx context.Context, key model.RoomKey, playerID model.PlayerID, typed string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	player, err := c.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}

	room, err := c.storage.GetRoom(ctx, player.RoomKey)
	if err != nil {
		return err
	}
	if !room.TestRunning() {
		return model.ErrTestNotRunning
	}

	player.Typed = typed
	if err := c.storage.SavePlayer(ctx, player); err != nil {
		return err
	}

	chars, err := c.words.Generate(c.cfg.ChallengeWords)
	if err != nil {
		return err
	}
	room.Chars = chars
	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	c.notifier.Publish(room.Key, model.EventWordsUpdate)
	return nil
}

// GetRoom retrieves a room by key
func (c *Controller) GetRoom(ctx context.Context, key model.RoomKey) (*model.Room, error) {
	return c.storage.GetRoom(ctx, key)
}

// GetPlayer retrieves a player by ID
func (c *Controller) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return c.storage.GetPlayer(ctx, id)
}

// DeleteRoom removes a room from the registry. Players linked to the
// room are not touched; nothing on the request surface invokes this.
func (c *Controller) DeleteRoom(ctx context.Context, key model.RoomKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storage.DeleteRoom(ctx, key)
}

// Standing is one player's entry in a roster snapshot
type Standing struct {
	ID   model.PlayerID
	Name string
	WPM  float64
	Acc  float64
}

// Update is the payload delivered for a room event: the roster for
// player-list and test-end events, the challenge text for test-start
// and words events.
type Update struct {
	Players []Standing
	Chars   string
}

// Roster returns the current standings for every member of the room.
// WPM is zero whenever no test is running for the room.
func (c *Controller) Roster(ctx context.Context, key model.RoomKey) ([]Standing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster(ctx, key)
}

func (c *Controller) roster(ctx context.Context, key model.RoomKey) ([]Standing, error) {
	room, err := c.storage.GetRoom(ctx, key)
	if err != nil {
		return nil, err
	}

	elapsed, _ := room.Elapsed(c.clock.Now())

	standings := make([]Standing, 0, len(room.Players))
	for _, id := range room.Players {
		player, err := c.storage.GetPlayer(ctx, id)
		if err != nil {
			// Registry and membership can only diverge through a bug;
			// skip rather than fail the whole roster.
			c.logger.Error("room member missing from registry",
				slog.String("room", string(key)),
				slog.String("player", string(id)))
			continue
		}
		standings = append(standings, Standing{
			ID:   player.ID,
			Name: player.Name,
			WPM:  scoring.WPM(player.Typed, room.Chars, elapsed),
			Acc:  scoring.Accuracy(player.Typed, room.Chars),
		})
	}
	return standings, nil
}

// AwaitUpdate blocks until the next event fires on the room, then
// returns the event tag and a snapshot payload. It registers a
// one-shot subscription and unregisters it on every exit path,
// including the caller's context ending (the long-poll connection
// dropping).
func (c *Controller) AwaitUpdate(ctx context.Context, key model.RoomKey, playerID model.PlayerID) (model.EventType, *Update, error) {
	c.mu.Lock()
	exists, err := c.storage.RoomExists(ctx, key)
	if err != nil {
		c.mu.Unlock()
		return "", nil, err
	}
	if !exists {
		c.mu.Unlock()
		return "", nil, model.ErrRoomNotFound
	}
	sub := c.notifier.Subscribe(key)
	c.mu.Unlock()

	defer c.notifier.Unsubscribe(sub)

	select {
	case event := <-sub.Events():
		update, err := c.snapshot(ctx, key, event)
		if err != nil {
			return "", nil, err
		}
		return event, update, nil
	case <-ctx.Done():
		return "", nil, ctx.Err()
	}
}

// snapshot builds the event payload from current room state
func (c *Controller) snapshot(ctx context.Context, key model.RoomKey, event model.EventType) (*Update, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch event {
	case model.EventPlayersUpdate, model.EventTestEnd:
		standings, err := c.roster(ctx, key)
		if err != nil {
			return nil, err
		}
		return &Update{Players: standings}, nil

	case model.EventTestStart, model.EventWordsUpdate:
		room, err := c.storage.GetRoom(ctx, key)
		if err != nil {
			return nil, err
		}
		return &Update{Chars: room.Chars}, nil

	default:
		return &Update{}, nil
	}
}

// generateRoomKey produces a numeric room key unique among live rooms.
// Caller must hold mu so generation and insertion cannot interleave
// with another allocation.
func (c *Controller) generateRoomKey(ctx context.Context) (model.RoomKey, error) {
	for {
		key := model.RoomKey(c.random.String(IDLength, IDAlphabet))
		exists, err := c.storage.RoomExists(ctx, key)
		if err != nil {
			return "", err
		}
		if !exists {
			return key, nil
		}
	}
}

// generatePlayerID produces a numeric player ID unique among live
// players. Caller must hold mu.
func (c *Controller) generatePlayerID(ctx context.Context) (model.PlayerID, error) {
	for {
		id := model.PlayerID(c.random.String(IDLength, IDAlphabet))
		exists, err := c.storage.PlayerExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
}
