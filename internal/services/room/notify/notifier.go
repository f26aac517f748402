package notify

import (
	"log/slog"
	"sync"

	"github.com/fwhittle/typerace-go/internal/model"
)

// Subscription is a one-shot registration for the next event on a
// room. The subscribing side owns its lifecycle: it must call
// Notifier.Unsubscribe once it has received an event or given up.
type Subscription struct {
	key model.RoomKey
	ch  chan model.EventType
}

// Events returns the channel the next event is delivered on
func (s *Subscription) Events() <-chan model.EventType {
	return s.ch
}

// Notifier fans discrete room events out to whichever requests are
// currently awaiting an update on that room.
type Notifier struct {
	mu     sync.Mutex
	subs   map[model.RoomKey][]*Subscription
	logger *slog.Logger
}

// New creates a new Notifier
func New(logger *slog.Logger) *Notifier {
	return &Notifier{
		subs:   make(map[model.RoomKey][]*Subscription),
		logger: logger.With(slog.String("component", "notify")),
	}
}

// Subscribe registers a subscription for the next event on the room
func (n *Notifier) Subscribe(key model.RoomKey) *Subscription {
	sub := &Subscription{
		key: key,
		// Buffer of one so Publish never blocks on a subscriber that
		// has not reached its receive yet.
		ch: make(chan model.EventType, 1),
	}

	n.mu.Lock()
	n.subs[key] = append(n.subs[key], sub)
	n.mu.Unlock()

	return sub
}

// Unsubscribe removes a subscription. Safe to call for a subscription
// that was already removed.
func (n *Notifier) Unsubscribe(sub *Subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()

	subs := n.subs[sub.key]
	for i, s := range subs {
		if s == sub {
			n.subs[sub.key] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(n.subs[sub.key]) == 0 {
		delete(n.subs, sub.key)
	}
}

// Publish delivers the event to every current subscription on the
// room. Delivery is non-blocking; a subscription that already holds an
// undelivered event keeps the first one.
func (n *Notifier) Publish(key model.RoomKey, event model.EventType) {
	n.mu.Lock()
	subs := make([]*Subscription, len(n.subs[key]))
	copy(subs, n.subs[key])
	n.mu.Unlock()

	n.logger.Debug("publishing event",
		slog.String("room", string(key)),
		slog.String("event", string(event)),
		slog.Int("subscribers", len(subs)))

	for _, sub := range subs {
		select {
		case sub.ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of pending subscriptions on a room
func (n *Notifier) SubscriberCount(key model.RoomKey) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs[key])
}
