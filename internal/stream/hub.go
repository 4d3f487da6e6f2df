package stream

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"mini-weather/internal/game"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	readLimit  = 1 << 16

	// sendBuffer frames may queue per viewer before new ones are dropped.
	sendBuffer = 8
)

var upgrader = websocket.Upgrader{
	// Viewers are local tools; origin checks would only get in the way.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans frames out to every connected viewer and collects their
// commands for the simulation loop.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	hello   []byte

	commands chan Command
	dropped  int
}

// NewHub greets every viewer with summary before any frame.
func NewHub(summary game.WorldSummary) (*Hub, error) {
	hello, err := json.Marshal(Message{Type: TypeWorld, World: &summary})
	if err != nil {
		return nil, fmt.Errorf("encoding world summary: %w", err)
	}
	return &Hub{
		clients:  make(map[*client]struct{}),
		hello:    hello,
		commands: make(chan Command, 64),
	}, nil
}

// Commands delivers viewer requests in arrival order.
func (h *Hub) Commands() <-chan Command { return h.commands }

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped counts frames skipped because a viewer fell behind.
func (h *Hub) Dropped() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Broadcast queues f for every viewer. Slow viewers miss frames rather
// than stalling the simulation.
func (h *Hub) Broadcast(f game.Frame) error {
	data, err := json.Marshal(Message{Type: TypeFrame, Frame: &f})
	if err != nil {
		return fmt.Errorf("encoding frame %d: %w", f.Index, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.dropped++
		}
	}
	return nil
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		close(c.send)
		delete(h.clients, c)
	}
	h.mu.Unlock()
}

// ServeHTTP upgrades the request and streams frames until either side hangs up.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	c.send <- h.hello
	h.register(c)

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) readLoop(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var cmd Command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("read:", err)
			}
			return
		}
		if err := cmd.Validate(); err != nil {
			log.Printf("viewer %s: %v", c.conn.RemoteAddr(), err)
			continue
		}
		select {
		case h.commands <- cmd:
		default:
			log.Printf("command queue full, dropping %q", cmd.Type)
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Println("write:", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
