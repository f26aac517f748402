package request

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	PlayerName string `json:"playerName"`
}

// JoinRequest is the request body for joining an existing room
type JoinRequest struct {
	RoomKey    string `json:"roomKey"`
	PlayerName string `json:"playerName"`
}

// ExitRequest is the request body for leaving a room
type ExitRequest struct {
	PlayerID string `json:"playerId"`
}

// StartRequest is the request body for starting a test
type StartRequest struct {
	RoomKey  string `json:"roomKey"`
	PlayerID string `json:"playerId"`
}

// TestDataRequest is the request body for submitting typed progress
type TestDataRequest struct {
	RoomKey  string  `json:"roomKey"`
	PlayerID string  `json:"playerId"`
	Typed    *string `json:"typed"`
}
