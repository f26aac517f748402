package response

import (
	"github.com/fwhittle/typerace-go/internal/services/room"
)

// OK is the response for operations with no result payload
type OK struct {
	Success bool `json:"success"`
}

// CreateRoom is the response for a successful room creation
type CreateRoom struct {
	Success  bool   `json:"success"`
	RoomKey  string `json:"roomKey"`
	PlayerID string `json:"playerId"`
}

// Join is the response for a successful room join
type Join struct {
	Success  bool   `json:"success"`
	PlayerID string `json:"playerId"`
	RoomKey  string `json:"roomKey"`
}

// PlayerStanding is one player's entry in an update payload
type PlayerStanding struct {
	Name string  `json:"name"`
	ID   string  `json:"id"`
	WPM  float64 `json:"wpm"`
	Acc  float64 `json:"acc"`
}

// UpdateData is the event-specific payload of an update response:
// players for PLAYERS_UPDATE and TEST_END, chars for TEST_START and
// WORDS_UPDATE.
type UpdateData struct {
	Players []PlayerStanding `json:"players,omitempty"`
	Chars   string           `json:"chars,omitempty"`
}

// Update is the response resolving a long-poll request
type Update struct {
	Success bool       `json:"success"`
	Event   string     `json:"event"`
	Data    UpdateData `json:"data"`
}

// UpdateFromSnapshot converts a controller update snapshot
func UpdateFromSnapshot(event string, u *room.Update) Update {
	data := UpdateData{Chars: u.Chars}
	if u.Players != nil {
		data.Players = make([]PlayerStanding, len(u.Players))
		for i, s := range u.Players {
			data.Players[i] = PlayerStanding{
				Name: s.Name,
				ID:   string(s.ID),
				WPM:  s.WPM,
				Acc:  s.Acc,
			}
		}
	}
	return Update{
		Success: true,
		Event:   event,
		Data:    data,
	}
}
