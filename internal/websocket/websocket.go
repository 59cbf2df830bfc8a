package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/abrezinsky/derbybracket/internal/logger"
	"github.com/abrezinsky/derbybracket/internal/models"
	"github.com/abrezinsky/derbybracket/internal/services"
)

// MessageSnapshot carries the full tournament sent to a client on connect
const MessageSnapshot = "snapshot"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// TournamentSource loads the tournament a client subscribes to
type TournamentSource interface {
	Get(ctx context.Context, id string) (*models.Tournament, error)
}

// outbound is a message addressed to the subscribers of one tournament, or
// to everyone when tournamentID is empty
type outbound struct {
	tournamentID string
	message      models.WSMessage
}

// Hub maintains the set of active clients and broadcasts messages to the clients
type Hub struct {
	log        logger.Logger
	clients    map[*Client]bool
	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	source     TournamentSource
	onCount    func(int)
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub          *Hub
	conn         *websocket.Conn
	send         chan models.WSMessage
	tournamentID string
}

// New creates a new Hub instance with injected dependencies
func New(log logger.Logger, source TournamentSource) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan outbound),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		source:     source,
	}
}

// SetClientCountHook registers a function called with the client count
// whenever a client connects or disconnects
func (h *Hub) SetClientCountHook(fn func(int)) {
	h.onCount = fn
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// Start begins the hub's main loop in a goroutine
func (h *Hub) Start() {
	go h.run()
}

// run handles client registration/unregistration and message broadcasting
func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug("Client connected", "total_clients", count, "tournament_id", client.tournamentID)
			h.countChanged(count)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug("Client disconnected", "total_clients", count)
			h.countChanged(count)

		case out := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				if !client.subscribed(out.tournamentID) {
					continue
				}
				select {
				case client.send <- out.message:
				default:
					// Client's send channel is full, unregister
					go func(c *Client) {
						h.unregister <- c
					}(client)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

func (h *Hub) countChanged(n int) {
	if h.onCount != nil {
		h.onCount(n)
	}
}

// subscribed reports whether the client wants messages about tournamentID
func (c *Client) subscribed(tournamentID string) bool {
	return c.tournamentID == "" || tournamentID == "" || c.tournamentID == tournamentID
}

// BroadcastMessage sends a message to all connected clients
func (h *Hub) BroadcastMessage(msgType string, payload interface{}) {
	h.BroadcastTo("", msgType, payload)
}

// BroadcastTo sends a message to the clients following one tournament
func (h *Hub) BroadcastTo(tournamentID, msgType string, payload interface{}) {
	h.broadcast <- outbound{
		tournamentID: tournamentID,
		message:      models.WSMessage{Type: msgType, Payload: payload},
	}
}

// EventPayload is the body of a bracket event message
type EventPayload struct {
	TournamentID string          `json:"tournament_id"`
	Round        int             `json:"round"`
	Game         *int            `json:"game,omitempty"`
	Team         *int            `json:"team,omitempty"`
	Score        *float64        `json:"score,omitempty"`
	Data         json.RawMessage `json:"data,omitempty"`
}

// Publish implements services.Publisher
func (h *Hub) Publish(ctx context.Context, tournamentID string, events []models.Event) {
	for _, e := range events {
		p := EventPayload{
			TournamentID: tournamentID,
			Round:        e.Round,
			Game:         e.Game,
			Team:         e.Team,
			Score:        e.Score,
		}
		if e.Payload != "" {
			p.Data = json.RawMessage(e.Payload)
		}
		h.BroadcastTo(tournamentID, e.Type, p)
	}
}

// readPump pumps messages from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("WebSocket error", "error", err)
			}
			break
		}

		// Clients only listen; anything they send is logged and dropped
		var msg models.WSMessage
		if err := json.Unmarshal(message, &msg); err == nil {
			c.hub.log.Debug("Received message", "type", msg.Type)
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
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
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}

			msgBytes, _ := json.Marshal(message)
			w.Write(msgBytes)

			if err := w.Close(); err != nil {
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

// ServeWs handles websocket requests from clients. A "tournament" query
// parameter limits the client to that tournament's events and queues its
// current state as the first message.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	tournamentID := r.URL.Query().Get("tournament")

	var snapshot *models.Tournament
	if tournamentID != "" && h.source != nil {
		t, err := h.source.Get(r.Context(), tournamentID)
		if err != nil {
			http.Error(w, "tournament not found", http.StatusNotFound)
			return
		}
		snapshot = t
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("WebSocket upgrade error", "error", err)
		return
	}

	client := &Client{
		hub:          h,
		conn:         conn,
		send:         make(chan models.WSMessage, 256),
		tournamentID: tournamentID,
	}
	if snapshot != nil {
		client.send <- models.WSMessage{Type: MessageSnapshot, Payload: snapshot}
	}
	h.register <- client

	// Allow collection of memory referenced by the caller by doing all work in new goroutines
	go client.writePump()
	go client.readPump()
}

var _ services.Publisher = (*Hub)(nil)
