package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/tile-merge-game/game/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Events pushed to clients
const (
	EventSnapshot = "snapshot"
	EventError    = "error"
)

// Inbound command names
const (
	CommandMove     = "move"
	CommandRestart  = "restart"
	CommandContinue = "continue"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is what the server pushes to clients
type Message struct {
	SessionID string           `json:"session_id"`
	Event     string           `json:"event,omitempty"`
	Snapshot  *engine.Snapshot `json:"snapshot,omitempty"`
	Data      interface{}      `json:"data,omitempty"`
}

// Command is what clients may send: {"command":"move","direction":"left"}
type Command struct {
	Command   string `json:"command"`
	Direction string `json:"direction,omitempty"`
}

// CommandHandler executes a client command against a session. Resulting
// snapshots reach clients through the session's actuator, so the handler
// only reports failure.
type CommandHandler func(ctx context.Context, sessionID string, cmd Command) error

// Client represents a WebSocket client
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

type directMessage struct {
	client  *Client
	message *Message
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	// Registered clients by session ID
	sessions map[string]map[*Client]bool

	// Messages for every client of a session
	broadcast chan *Message

	// Replies for a single client
	direct chan *directMessage

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	handler CommandHandler
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, engine.WebSocketBufferSize),
		direct:     make(chan *directMessage, engine.WebSocketBufferSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// SetCommandHandler sets the handler for inbound client commands. Must be
// called before clients connect.
func (h *Hub) SetCommandHandler(handler CommandHandler) {
	h.handler = handler
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case dm := <-h.direct:
			h.sendDirect(dm)
		}
	}
}

// ServeWS upgrades the request and attaches the connection to sessionID.
// If initial is non-nil it is the first message the client receives.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string, initial *engine.Snapshot) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, engine.WebSocketBufferSize),
		sessionID: sessionID,
	}

	if initial != nil {
		if data, err := json.Marshal(&Message{SessionID: sessionID, Event: EventSnapshot, Snapshot: initial}); err == nil {
			client.send <- data
		}
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// BroadcastSnapshot queues a snapshot for every client of a session. It never
// blocks: when the queue is full the snapshot is dropped.
func (h *Hub) BroadcastSnapshot(sessionID string, snapshot *engine.Snapshot) {
	h.enqueue(&Message{
		SessionID: sessionID,
		Event:     EventSnapshot,
		Snapshot:  snapshot,
	})
}

// BroadcastEvent queues a named event for every client of a session
func (h *Hub) BroadcastEvent(sessionID, event string, snapshot *engine.Snapshot) {
	h.enqueue(&Message{
		SessionID: sessionID,
		Event:     event,
		Snapshot:  snapshot,
	})
}

func (h *Hub) enqueue(message *Message) {
	select {
	case h.broadcast <- message:
	default:
		log.Warn().Str("session", message.SessionID).Str("event", message.Event).Msg("broadcast queue full, dropping message")
	}
}

// reply queues a message for one client
func (h *Hub) reply(client *Client, message *Message) {
	select {
	case h.direct <- &directMessage{client: client, message: message}:
	default:
		log.Warn().Str("session", client.sessionID).Msg("reply queue full, dropping message")
	}
}

// registerClient adds a client to a session
func (h *Hub) registerClient(client *Client) {
	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true

	log.Debug().Str("session", client.sessionID).Int("clients", len(h.sessions[client.sessionID])).Msg("client registered")
}

// unregisterClient removes a client from a session
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.sessions[client.sessionID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			if len(clients) == 0 {
				delete(h.sessions, client.sessionID)
			}

			log.Debug().Str("session", client.sessionID).Int("clients", len(clients)).Msg("client unregistered")
		}
	}
}

// broadcastMessage sends a message to all clients in a session
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Error().Err(err).Str("session", message.SessionID).Msg("failed to marshal broadcast message")
		return
	}

	if clients, ok := h.sessions[message.SessionID]; ok {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				h.unregisterClient(client)
			}
		}
	}
}

// sendDirect delivers a reply if the client is still registered
func (h *Hub) sendDirect(dm *directMessage) {
	clients, ok := h.sessions[dm.client.sessionID]
	if !ok || !clients[dm.client] {
		return
	}

	data, err := json.Marshal(dm.message)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal reply")
		return
	}

	select {
	case dm.client.send <- data:
	default:
		h.unregisterClient(dm.client)
	}
}

// handleCommand parses and dispatches one inbound frame
func (c *Client) handleCommand(raw []byte) {
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		c.hub.reply(c, &Message{SessionID: c.sessionID, Event: EventError, Data: "invalid command: " + err.Error()})
		return
	}

	switch cmd.Command {
	case CommandMove, CommandRestart, CommandContinue:
	default:
		c.hub.reply(c, &Message{SessionID: c.sessionID, Event: EventError, Data: "unknown command: " + cmd.Command})
		return
	}

	if c.hub.handler == nil {
		c.hub.reply(c, &Message{SessionID: c.sessionID, Event: EventError, Data: "commands are not accepted"})
		return
	}

	if err := c.hub.handler(context.Background(), c.sessionID, cmd); err != nil {
		c.hub.reply(c, &Message{SessionID: c.sessionID, Event: EventError, Data: err.Error()})
	}
}

// readPump pumps commands from the WebSocket connection to the handler
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("session", c.sessionID).Msg("websocket error")
			}
			break
		}
		c.handleCommand(data)
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
