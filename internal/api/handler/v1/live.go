package v1

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/techforum/engagement-api/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type liveClient struct {
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// LiveHandler keeps one websocket per user and pushes server-side events
// to that user's screen. One connection per user: a newer connection
// replaces the older one.
type LiveHandler struct {
	clients      map[uint]*liveClient
	clientsMutex sync.RWMutex
	register     chan *liveClient
	unregister   chan *liveClient
}

func NewLiveHandler() *LiveHandler {
	return &LiveHandler{
		clients:    make(map[uint]*liveClient),
		register:   make(chan *liveClient),
		unregister: make(chan *liveClient),
	}
}

func (h *LiveHandler) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMutex.Lock()
			if old, ok := h.clients[client.userID]; ok {
				close(old.send)
			}
			h.clients[client.userID] = client
			h.clientsMutex.Unlock()
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			if current, ok := h.clients[client.userID]; ok && current == client {
				delete(h.clients, client.userID)
				close(client.send)
			}
			h.clientsMutex.Unlock()
		}
	}
}

// Notify pushes an event to the user's live connection if one exists.
// Disconnected users just miss the event; the claim itself is already
// durable.
func (h *LiveHandler) Notify(userID uint, event domain.ClaimEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		zap.L().Warn("marshal live event", zap.Error(err))
		return
	}

	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()

	client, ok := h.clients[userID]
	if !ok {
		return
	}

	select {
	case client.send <- payload:
	default:
		// Slow consumer; drop rather than block the caller.
	}
}

// HandleWebSocket godoc
// @Summary      Open the live notification channel
// @Description  Upgrades to a websocket that receives events such as prize_claimed for the authenticated user.
// @Tags         live
// @Produce      json
// @Success      101  {string}  string  "Switching Protocols to WebSocket"
// @Failure      401  {object}  response.Err
// @Router       /live [get]
// @Security     BearerAuth
func (h *LiveHandler) HandleWebSocket(c *gin.Context) {
	user, respErr := getUserFromContext(c)
	if respErr != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &liveClient{
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: user.ID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *liveClient) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump only drains control frames; clients never send data here.
func (c *liveClient) readPump(h *LiveHandler) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("websocket closed", zap.Error(err))
			}
			break
		}
	}
}
