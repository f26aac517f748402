package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fwhittle/typerace-go/internal/api/apierr"
	"github.com/fwhittle/typerace-go/internal/api/request"
	"github.com/fwhittle/typerace-go/internal/api/response"
	"github.com/fwhittle/typerace-go/internal/model"
	"github.com/fwhittle/typerace-go/internal/services/room"
)

// RoomHandler handles all race endpoints
type RoomHandler struct {
	controller *room.Controller
	logger     *slog.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(controller *room.Controller, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{
		controller: controller,
		logger:     logger.With(slog.String("component", "handler")),
	}
}

// CreateRoom handles POST /api/post/createRoom
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerName == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("No player name provided."))
		return
	}

	newRoom, player, err := h.controller.CreateRoom(r.Context(), req.PlayerName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CreateRoom{
		Success:  true,
		RoomKey:  string(newRoom.Key),
		PlayerID: string(player.ID),
	})
}

// Join handles POST /api/post/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoomKey == "" || req.PlayerName == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid parameters provided."))
		return
	}

	player, err := h.controller.JoinRoom(r.Context(), model.RoomKey(req.RoomKey), req.PlayerName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Join{
		Success:  true,
		PlayerID: string(player.ID),
		RoomKey:  string(player.RoomKey),
	})
}

// Exit handles POST /api/post/exit. Always succeeds, even when the
// player is already gone.
func (h *RoomHandler) Exit(w http.ResponseWriter, r *http.Request) {
	var req request.ExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("No player ID provided."))
		return
	}

	if err := h.controller.ExitRoom(r.Context(), model.PlayerID(req.PlayerID)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OK{Success: true})
}

// Start handles POST /api/post/start
func (h *RoomHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoomKey == "" || req.PlayerID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid parameters provided."))
		return
	}

	err := h.controller.StartTest(r.Context(), model.RoomKey(req.RoomKey), model.PlayerID(req.PlayerID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OK{Success: true})
}

// TestData handles POST /api/post/testData
func (h *RoomHandler) TestData(w http.ResponseWriter, r *http.Request) {
	var req request.TestDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoomKey == "" || req.PlayerID == "" || req.Typed == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid parameters provided."))
		return
	}

	err := h.controller.SubmitTyped(r.Context(), model.RoomKey(req.RoomKey), model.PlayerID(req.PlayerID), *req.Typed)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OK{Success: true})
}

// Update handles GET /api/get/update. The response is suspended until
// the next event fires on the room; the subscription is torn down when
// the client drops the connection.
func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	roomKey := r.URL.Query().Get("roomKey")
	playerID := r.URL.Query().Get("playerId")
	if roomKey == "" || playerID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid parameters provided."))
		return
	}

	event, update, err := h.controller.AwaitUpdate(r.Context(), model.RoomKey(roomKey), model.PlayerID(playerID))
	if err != nil {
		if errors.Is(err, r.Context().Err()) && r.Context().Err() != nil {
			// Client went away while we were waiting; nobody is
			// listening for this response anymore.
			h.logger.Debug("long-poll abandoned", slog.String("room", roomKey))
			return
		}
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UpdateFromSnapshot(string(event), update))
}
