// Package api provides the HTTP REST API for the tile merge game.
//
// Endpoints:
//
// Sessions:
//   - POST   /api/sessions               - Create a session ({"config_id": "mini"})
//   - GET    /api/sessions               - List sessions (?sort=created|accessed|score&order=asc|desc&limit=N)
//   - GET    /api/sessions/unified       - Sessions with snapshots (?sessionIds=a,b or ?configName=classic)
//   - GET    /api/sessions/{id}          - Get a session
//   - DELETE /api/sessions/{id}          - Delete a session
//
// Game:
//   - GET  /api/sessions/{id}/state      - Current snapshot
//   - POST /api/sessions/{id}/move       - {"direction": "left", "reset": false}
//   - POST /api/sessions/{id}/bulk-move  - {"moves": ["left", "up"], "reset": false}
//   - POST /api/sessions/{id}/restart    - New game, best score kept (alias: /reset)
//   - POST /api/sessions/{id}/continue   - Keep playing after reaching the win tile
//
// Configuration:
//   - GET  /api/configs                  - List configurations
//   - GET  /api/configs/{name}           - Get one configuration
//   - POST /api/configs                  - Save a configuration
//
// WebSocket:
//   - GET /ws?session={id}
//
// The socket first receives the current snapshot, then every snapshot the
// session renders. Clients may send {"command": "move", "direction": "up"},
// {"command": "restart"} or {"command": "continue"}; failures come back as
// {"event": "error", "data": "..."} to the sending client only.
//
// Errors are returned as {"error": "message"}. Unknown directions and
// corrupt state map to 400, missing sessions or configs to 404.
//
// Move responses carry the snapshot plus score_gained, merges, spawned tile
// and a list of events. Bulk move responses add per-step detail and, when
// the sequence ended early, stop_reason_code (invalid_move, game_over, won),
// stopped_reason and the 1-based stopped_on_move.
package api
