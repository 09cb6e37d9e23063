// Package engine provides the core rules of the tile merge game.
//
// The engine package implements:
//   - Move resolution: traversal order, farthest-position search, merging
//   - Tile spawning (a 2, or a 4 with the configured probability)
//   - Win and game-over detection, including continuing after a win
//   - Game state snapshots and persistence
//   - Configuration validation
//
// Core Types:
//
// GameEngine owns a board.Board and the session scalars (score, won, over,
// keepPlaying). After every command that changes the game it hands a Snapshot
// to its Actuator and records the best score in its ScoreStore. Both
// collaborators are interfaces; the engine itself performs no I/O.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultConfig(),
//		engine.WithActuator(renderer),
//		engine.WithSeed(42))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	moved := gameEngine.Move(engine.Left)
//	snapshot := gameEngine.Snapshot()
//
// Game Rules:
//
// Tiles slide as far as possible in the chosen direction. Two tiles of equal
// value that collide merge into one tile of double value, and the merged value
// is added to the score. A tile takes part in at most one merge per move. Each
// move that changes the board spawns one new tile. The game is won when a tile
// reaches the win value and over when no move can change the board.
package engine
