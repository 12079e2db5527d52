package chat

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

// connection is one live listener on one request.
type connection struct {
	personID  int64
	requestID int64
	conn      *websocket.Conn
	send      chan []byte
}

// Hub fans out request events to connected participants.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[int64]map[*connection]struct{}
	wg     sync.WaitGroup
	closed bool
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[int64]map[*connection]struct{})}
}

// register adds c and reserves its writer in wg. It refuses once Close has
// started, so Close never waits on a connection it did not see.
func (h *Hub) register(c *connection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	room, ok := h.rooms[c.requestID]
	if !ok {
		room = make(map[*connection]struct{})
		h.rooms[c.requestID] = room
	}
	room[c] = struct{}{}
	h.wg.Add(1)
	return true
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[c.requestID]
	if !ok {
		return
	}
	if _, ok := room[c]; !ok {
		return
	}
	delete(room, c)
	close(c.send)
	if len(room) == 0 {
		delete(h.rooms, c.requestID)
	}
}

// Publish sends event to every connection listening on requestID.
// Slow listeners miss the event.
func (h *Hub) Publish(requestID int64, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[requestID] {
		select {
		case c.send <- data:
		default:
		}
	}
}

// Listeners returns the number of open connections on requestID.
func (h *Hub) Listeners(requestID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[requestID])
}

// Serve runs the connection until the peer disconnects. It blocks.
func (h *Hub) Serve(conn *websocket.Conn, personID, requestID int64) {
	c := &connection{
		personID:  personID,
		requestID: requestID,
		conn:      conn,
		send:      make(chan []byte, 64),
	}
	if !h.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	go func() {
		defer h.wg.Done()
		h.writePump(c)
	}()
	h.readPump(c)
}

// Close disconnects every listener and waits for their writers to exit.
// Connections arriving afterwards are turned away.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	conns := make([]*connection, 0)
	for _, room := range h.rooms {
		for c := range room {
			conns = append(conns, c)
		}
	}
	h.mu.Unlock()
	for _, c := range conns {
		_ = c.conn.Close()
	}
	h.wg.Wait()
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("chat: ws read person_id=%d request_id=%d error=%v", c.personID, c.requestID, err)
			}
			return
		}

		var in struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &in); err != nil {
			h.reply(c, NewErrorEvent("INVALID_JSON", "Failed to parse message"))
			continue
		}
		switch in.Type {
		case "ping":
			h.reply(c, &Event{Type: EventPong})
		default:
			h.reply(c, NewErrorEvent("UNKNOWN_TYPE", "Unknown message type: "+in.Type))
		}
	}
}

func (h *Hub) reply(c *connection, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.rooms[c.requestID][c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
