package model

// EventType identifies what changed in a room. Delivered to long-poll
// subscribers along with an event-specific payload.
type EventType string

const (
	// EventTestStart fires when the host starts a test
	EventTestStart EventType = "TEST_START"
	// EventTestEnd fires when the test timer expires
	EventTestEnd EventType = "TEST_END"
	// EventWordsUpdate fires when the challenge text is regenerated
	EventWordsUpdate EventType = "WORDS_UPDATE"
	// EventPlayersUpdate fires when the member list changes
	EventPlayersUpdate EventType = "PLAYERS_UPDATE"
)
