package display

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/restaurant-floor/services"
	"github.com/yeremiapane/restaurant-floor/utils"
)

// EventSnapshot is sent once to a client right after it connects.
const EventSnapshot = "snapshot"

const writeWait = 2 * time.Second

type Message struct {
	ID    string      `json:"id"`
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type client struct {
	id      string
	staffID uint
}

// Hub keeps the connected floor screens and pushes every engine event to them.
type Hub struct {
	clients map[*websocket.Conn]client
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]client)}
}

// Register adds a connection and returns the id assigned to it.
func (h *Hub) Register(conn *websocket.Conn, staffID uint) string {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	id := uuid.NewString()
	h.clients[conn] = client{id: id, staffID: staffID}
	utils.InfoLogger.WithFields(logrus.Fields{"client": id, "staff_id": staffID}).Info("Floor display connected")
	return id
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.remove(conn)
}

func (h *Hub) remove(conn *websocket.Conn) {
	c, ok := h.clients[conn]
	if !ok {
		return
	}
	delete(h.clients, conn)
	conn.Close()
	utils.InfoLogger.WithField("client", c.id).Info("Floor display disconnected")
}

// Clients is the number of connected displays.
func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Notify implements services.Subscriber.
func (h *Hub) Notify(event services.Event) {
	h.Broadcast(string(event.Type), event)
}

func (h *Hub) Broadcast(event string, data interface{}) {
	payload, err := encode(event, data)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling %s message: %v", event, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn, c := range h.clients {
		if err := write(conn, payload); err != nil {
			utils.ErrorLogger.Printf("Error sending %s to client %s: %v", event, c.id, err)
			h.remove(conn)
		}
	}
}

// Send delivers one message to a single connection, e.g. the initial snapshot.
func (h *Hub) Send(conn *websocket.Conn, event string, data interface{}) error {
	payload, err := encode(event, data)
	if err != nil {
		return err
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return write(conn, payload)
}

func encode(event string, data interface{}) ([]byte, error) {
	return json.Marshal(Message{ID: uuid.NewString(), Event: event, Data: data})
}

func write(conn *websocket.Conn, payload []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}
