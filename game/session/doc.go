// Package session provides session management for the tile merge game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - File persistence of game state
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session owns its own engine instance, configuration and timestamps.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. Lookups are
// case-insensitive.
//
// Rendering and Scores:
//
// Every engine the manager creates or loads gets an actuator that forwards
// snapshots to the Broadcaster set with SetBroadcaster, and a best score store
// from the score.Provider set with SetScoreProvider, keyed by config name.
//
// Usage:
//
//	manager := session.NewManagerWithPersistence(persistence)
//	manager.SetBroadcaster(hub)
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sessionID)
//
// Persistence:
//
// FilePersistence stores one JSON file per session holding the engine's
// GameState and a copy of its configuration. Loading rebuilds the engine and
// restores the state with SetState, so a tampered file is rejected rather
// than producing an inconsistent board.
package session
