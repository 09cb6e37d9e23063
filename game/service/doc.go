// Package service provides the business logic layer for the tile merge game.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration loading and listing
//   - Move processing with event extraction
//   - Session lifecycle management
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and persistence.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transports (HTTP, WebSocket, MCP) and
// the game engine. Each session owns its own engine, so sessions never share
// board state, scores or random sources.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, info.ID, "left", false)
//
// Moves:
//
// Directions are parsed with engine.ParseDirection, so "left", "a", "h" and
// "3" all name the same move. An unknown direction returns an error wrapping
// engine.ErrInvalidDirection. A move that changes nothing is not an error: the
// result reports Success false with a no_move event.
package service
