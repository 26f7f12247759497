package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"reliefconnect-ai-be/internal/dto"
	"reliefconnect-ai-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Hub fans adjudication decisions out to connected support dashboards.
// Every client receives every alert; there is no per-user targeting.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out, nil when single-instance.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"user_id": client.UserID})
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast pushes a decision alert to every connected client and, when
// Redis is configured, to the other instances of this service.
func (h *Hub) Broadcast(alert dto.DecisionMadeMessage) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "decision_alert",
		"data": alert,
	})

	h.broadcastLocal(data)

	if h.rdb != nil {
		h.rdb.Publish(context.Background(), "alert_events", data)
	}
}

func (h *Hub) broadcastLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer; drop the connection rather than block the hub.
			close(client.Send)
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "alert_events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.broadcastLocal([]byte(msg.Payload))
	}
}
