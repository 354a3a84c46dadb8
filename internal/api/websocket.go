package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/Koine/core/morph"
	verseref "github.com/FocuswithJustin/Koine/core/ref"
	"github.com/FocuswithJustin/Koine/core/strongs"
	"github.com/FocuswithJustin/Koine/internal/logging"
)

var (
	// GlobalHub is the shared WebSocket hub for the parse console and for
	// broadcasting job progress updates.
	GlobalHub *Hub

	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true // API usage from any origin
		},
	}
)

const maxConsoleMessageSize = 4096

// ConsoleRequest is a message sent by a parse console client. Kind selects
// the operation: "morph" (default), "reference" or "strongs".
type ConsoleRequest struct {
	Kind  string `json:"kind,omitempty"`
	Input string `json:"input"`
}

// ConsoleReply is the server's answer to a ConsoleRequest.
type ConsoleReply struct {
	Type       string            `json:"type"` // "result" or "error"
	Kind       string            `json:"kind"`
	Input      string            `json:"input"`
	Normalized string            `json:"normalized,omitempty"`
	Morphology *morph.Morphology `json:"morphology,omitempty"`
	Error      string            `json:"error,omitempty"`
	Timestamp  string            `json:"timestamp"`
}

// JobEvent is broadcast to all connected clients when a job changes state.
type JobEvent struct {
	Type      string    `json:"type"` // "job"
	JobID     string    `json:"job_id"`
	Status    JobStatus `json:"status"`
	Progress  int       `json:"progress"`
	Timestamp string    `json:"timestamp"`
}

// Client represents a WebSocket client connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains active WebSocket connections and broadcasts messages.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop to handle client registration and broadcasting.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logging.WebSocketEvent("client_connected", h.clientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			logging.WebSocketEvent("client_disconnected", h.clientCount())

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client channel full, disconnect
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues a message for delivery to all connected clients.
func (h *Hub) Broadcast(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error("failed to marshal broadcast message", "error", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logging.Warn("broadcast channel full, dropping message")
	}
}

// broadcastJobEvent notifies all connected clients of a job state change.
func broadcastJobEvent(jobID string, status JobStatus, progress int) {
	if GlobalHub == nil {
		return
	}

	GlobalHub.Broadcast(JobEvent{
		Type:      "job",
		JobID:     jobID,
		Status:    status,
		Progress:  progress,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// evalConsoleRequest runs one parse-console request and builds the reply.
func evalConsoleRequest(req ConsoleRequest) ConsoleReply {
	reply := ConsoleReply{
		Type:      "result",
		Kind:      req.Kind,
		Input:     req.Input,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if reply.Kind == "" {
		reply.Kind = "morph"
	}

	switch reply.Kind {
	case "morph":
		m, err := morph.Parse(req.Input)
		if err != nil {
			reply.Type = "error"
			reply.Error = "not a recognizable morphological code"
			return reply
		}
		reply.Morphology = &m
		reply.Normalized = strings.ToUpper(strings.TrimSpace(req.Input))
	case "reference":
		normalized, err := verseref.Normalize(req.Input)
		if err != nil {
			reply.Type = "error"
			reply.Error = "not a recognizable verse reference"
			return reply
		}
		reply.Normalized = normalized
	case "strongs":
		normalized, err := strongs.Normalize(req.Input)
		if err != nil {
			reply.Type = "error"
			reply.Error = "not a valid Strong's number"
			return reply
		}
		reply.Normalized = normalized
	default:
		reply.Type = "error"
		reply.Error = "unknown kind: " + reply.Kind
	}

	return reply
}

// readPump reads console requests from the WebSocket connection and
// answers each one on the client's send channel.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxConsoleMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Error("websocket unexpected close", "error", err)
			}
			break
		}

		var req ConsoleRequest
		reply := ConsoleReply{Type: "error", Error: "invalid JSON message",
			Timestamp: time.Now().UTC().Format(time.RFC3339)}
		if err := json.Unmarshal(data, &req); err == nil {
			reply = evalConsoleRequest(req)
		}

		out, err := json.Marshal(reply)
		if err != nil {
			continue
		}
		select {
		case c.send <- out:
		default:
			return
		}
	}
}

// writePump writes messages to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleWebSocket upgrades HTTP connections to WebSocket and registers clients.
func handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if GlobalHub == nil {
		http.Error(w, "WebSocket hub not initialized", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  GlobalHub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
