// Package websocket provides the live view transport for the tile merge game.
//
// A Hub owns every connection and runs a single event loop, so its client
// map is never shared between goroutines. Each client has a read pump and a
// write pump.
//
// Message Protocol:
//
// The server pushes JSON messages:
//
//	{"session_id": "ab12", "event": "snapshot", "snapshot": {...}}
//
// Batched messages in one frame are separated by newlines. Clients may send
// commands:
//
//	{"command": "move", "direction": "left"}
//	{"command": "restart"}
//	{"command": "continue"}
//
// Commands go to the CommandHandler set with SetCommandHandler. Failures are
// answered to the sending client only, with event "error".
//
// Session Integration:
//
// The Hub implements session.Broadcaster. Every snapshot an engine renders is
// queued with BroadcastSnapshot, which never blocks; when the queue is full
// the snapshot is dropped and logged.
//
// Usage:
//
//	hub := websocket.NewHub()
//	hub.SetCommandHandler(handler)
//	go hub.Run()
//	sessions.SetBroadcaster(hub)
package websocket
