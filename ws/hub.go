package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub diffuse aux clients connectés les signaux de changement de la liste de
// cours (création, suppression), pour que le tableau de bord se rafraîchisse
// sans polling.
type Hub struct {
	Clients map[*websocket.Conn]*Client
	Mutex   sync.RWMutex
}

var H = Hub{
	Clients: make(map[*websocket.Conn]*Client),
}

// Register ajoute le client et démarre sa pompe d'écriture. La lecture reste
// au handler : un seul lecteur par connexion, gorilla ne supporte pas les
// lectures concurrentes.
func (h *Hub) Register(conn *websocket.Conn) *Client {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.Clients[conn] = client

	go h.writePump(client)
	return client
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if client, ok := h.Clients[conn]; ok {
		close(client.Send)
		delete(h.Clients, conn)
	}
}

func (h *Hub) Broadcast(data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	for _, client := range h.Clients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

func (h *Hub) GetStats() map[string]int {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()
	return map[string]int{"clients": len(h.Clients)}
}

// BroadcastCourseListChanged signale aux clients que la liste des cours a
// changé.
func BroadcastCourseListChanged() {
	H.Broadcast([]byte(`{"type": "course_list_changed"}`))
}

func (h *Hub) writePump(client *Client) {
	defer func() {
		client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
		client.Conn.Close()
	}()
	for msg := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
