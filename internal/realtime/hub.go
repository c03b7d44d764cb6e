package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"jobfinder/internal/common"
	"jobfinder/internal/security"
)

type TokenParser interface {
	Parse(token string) (*security.Claims, error)
}

// Hub is the presence channel: clients connect over websocket, an optional
// token joins them to their per-user channel, and the server pushes JSON
// events there. A bad or missing token leaves the connection anonymous, it
// is never rejected.
type Hub struct {
	tokens   TokenParser
	upgrader websocket.Upgrader

	mu    sync.Mutex
	users map[common.UUID]map[*websocket.Conn]struct{}
}

func NewHub(tokens TokenParser) *Hub {
	return &Hub{
		tokens: tokens,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		users: make(map[common.UUID]map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	var userID common.UUID
	if token := r.URL.Query().Get("token"); token != "" && h.tokens != nil {
		if claims, err := h.tokens.Parse(token); err == nil {
			if parsed, err := common.ParseUUID(claims.UserID); err == nil {
				userID = parsed
			}
		}
	}
	if userID != "" {
		h.join(userID, conn)
	}
	go h.readLoop(userID, conn)
}

// Publish sends an event to every open connection of the user. Send errors
// drop the connection; delivery is best-effort.
func (h *Hub) Publish(userID common.UUID, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.users[userID] {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.users[userID], conn)
		}
	}
}

func (h *Hub) Connected(userID common.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.users[userID])
}

func (h *Hub) join(userID common.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.users[userID] == nil {
		h.users[userID] = make(map[*websocket.Conn]struct{})
	}
	h.users[userID][conn] = struct{}{}
}

func (h *Hub) readLoop(userID common.UUID, conn *websocket.Conn) {
	defer func() {
		conn.Close()
		if userID != "" {
			h.mu.Lock()
			delete(h.users[userID], conn)
			h.mu.Unlock()
		}
	}()
	// no inbound protocol; drain until the peer goes away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
