package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Room errors
	ErrRoomNotFound = errors.New("room not found")
	ErrNotHost      = errors.New("player is not the host")

	// Test errors
	ErrTestRunning    = errors.New("test already running")
	ErrTestNotRunning = errors.New("test not running")

	// Word list errors
	ErrWordsNotLoaded = errors.New("word list not loaded")
)
