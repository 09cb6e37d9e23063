// Package mcp exposes the tile merge game to AI agents over the Model
// Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a REST request against
// the api package's server, and the JSON response is rendered as text an
// agent can read (score line, ASCII board, events, per-step traces).
//
// Tools:
//   - create_session, list_sessions, get_session
//   - game_state: board, score, best score and the directions that would change the board
//   - move, bulk_move: slide tiles; both accept an intent string that is ignored
//   - restart_game, continue_playing
//   - list_configs, game_instructions
//   - describe_cell: one cell's tile, its neighbours, and which of them it can merge with
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
