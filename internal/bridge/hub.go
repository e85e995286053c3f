// internal/bridge/hub.go
package bridge

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"tg-tower-defense/internal/app"
	"tg-tower-defense/internal/event"
)

const (
	clientQueue  = 64
	commandQueue = 128
	writeTimeout = 5 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

// Hub раздаёт события симуляции websocket-клиентам и собирает их команды.
// OnEvent и Drain вызываются из горутины симуляции, остальное потокобезопасно.
type Hub struct {
	upgrader websocket.Upgrader
	clock    interface{ Now() time.Duration }
	mu       sync.Mutex
	clients  map[*client]struct{}
	commands chan Command
	dropped  int
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:  make(map[*client]struct{}),
		commands: make(chan Command, commandQueue),
	}
}

// Attach subscribes the hub to every event of the game.
func (h *Hub) Attach(g *app.Game) {
	h.clock = g.Scheduler
	g.EventDispatcher.SubscribeAll(h)
}

// OnEvent реализует интерфейс event.Listener.
func (h *Hub) OnEvent(e event.Event) {
	data, err := EncodeEvent(e, h.now())
	if err != nil {
		log.Printf("Hub: failed to encode %s: %v", e.Type(), err)
		return
	}
	h.broadcast(data)
}

// BroadcastSnapshot sends the full session state to every client.
func (h *Hub) BroadcastSnapshot(s app.Snapshot) {
	data, err := encode(SnapshotType, s, s.Now)
	if err != nil {
		log.Printf("Hub: failed to encode snapshot: %v", err)
		return
	}
	h.broadcast(data)
}

// Drain applies every queued command to the game.
func (h *Hub) Drain(g *app.Game) int {
	n := 0
	for {
		select {
		case c := <-h.commands:
			if err := c.Apply(g); err != nil {
				log.Printf("Hub: command %s failed: %v", c.Op, err)
			}
			n++
		default:
			return n
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped returns how many frames were skipped for slow clients.
func (h *Hub) Dropped() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Hub: upgrade error: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, clientQueue)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) readLoop(c *client) {
	defer h.drop(c)
	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		cmd, err := DecodeCommand(data, messageType == websocket.BinaryMessage)
		if err != nil {
			log.Printf("Hub: %v", err)
			continue
		}
		select {
		case h.commands <- cmd:
		default:
			log.Printf("Hub: command queue full, dropping %s", cmd.Op)
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			h.drop(c)
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
}

// broadcast не блокирует симуляцию: медленный клиент теряет кадры.
func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.dropped++
		}
	}
}

func (h *Hub) now() time.Duration {
	if h.clock == nil {
		return 0
	}
	return h.clock.Now()
}
