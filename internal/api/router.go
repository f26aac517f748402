package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fwhittle/typerace-go/internal/api/handler"
	apimiddleware "github.com/fwhittle/typerace-go/internal/api/middleware"
	"github.com/fwhittle/typerace-go/internal/middleware"
	"github.com/fwhittle/typerace-go/internal/services/room"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	RoomController *room.Controller
}

// NewRouter creates a new API router with all routes configured.
// Path shapes match the protocol the clients already speak.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.RoomController, cfg.Logger)

	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)
	loggingMiddleware := middleware.Logging(cfg.Logger)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Long-poll update channel
	api.HandleFunc("/get/update", roomHandler.Update).Methods(http.MethodGet)

	// Room and test operations
	api.HandleFunc("/post/createRoom", roomHandler.CreateRoom).Methods(http.MethodPost)
	api.HandleFunc("/post/join", roomHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/post/exit", roomHandler.Exit).Methods(http.MethodPost)
	api.HandleFunc("/post/start", roomHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/post/testData", roomHandler.TestData).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
