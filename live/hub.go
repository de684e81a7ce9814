// Package live pushes booking changes to connected dashboards over
// WebSocket, so the booking grid updates without polling.
package live

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"silpa/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Event is one booking-ledger change pushed to every connected client.
type Event struct {
	Action string `json:"action"` // booked, cancelled, reset, room-status, dates
	RoomID string `json:"roomId,omitempty"`
	Date   string `json:"date,omitempty"`
	Slot   string `json:"slot,omitempty"`
}

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	quit       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.Send <- data:
				default:
					close(c.Send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()

		case <-h.quit:
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.quit)
}

// Publish fans an event out to every connected client. Safe to call from any
// handler goroutine; drops the event when nobody is listening.
func (h *Hub) Publish(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("live: marshal event: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
	}
}

var defaultHub = NewHub()

// Start launches the shared hub used by the booking handlers.
func Start() {
	go defaultHub.Run()
}

func Publish(ev Event) {
	defaultHub.Publish(ev)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades /ws/updates connections. Auth comes from the token query
// parameter because browsers cannot set headers on websocket dials.
func ServeWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, err := middleware.ValidateJWT("Bearer " + r.URL.Query().Get("token")); err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("live: upgrade: %v", err)
		return
	}

	client := &Client{Conn: conn, Send: make(chan []byte, 16)}
	defaultHub.register <- client

	go func() {
		for data := range client.Send {
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				break
			}
		}
		conn.Close()
	}()

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				defaultHub.unregister <- client
				return
			}
		}
	}()
}
