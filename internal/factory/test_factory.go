package factory

import (
	"log/slog"

	"github.com/fwhittle/typerace-go/internal/dependencies/clock"
	"github.com/fwhittle/typerace-go/internal/dependencies/random"
	"github.com/fwhittle/typerace-go/internal/services/room"
	"github.com/fwhittle/typerace-go/internal/storage"
)

// NewForTesting creates an App with injected dependencies, letting
// tests substitute a mock clock or deterministic random source.
func NewForTesting(store storage.Storage, clk clock.Clock, rnd random.Random, roomCfg room.Config, logger *slog.Logger) *App {
	if roomCfg.TestDuration == 0 {
		roomCfg = room.DefaultConfig()
	}
	return newWithDependencies(store, clk, rnd, roomCfg, logger)
}
