package handler

import (
	"os"

	"reliefconnect-ai-be/internal/pkg/logger"
	internalWS "reliefconnect-ai-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AlertHandler exposes the live adjudication alert feed.
type AlertHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewAlertHandler(hub *internalWS.Hub, log logger.ILogger) *AlertHandler {
	return &AlertHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs handles websocket requests from the peer. The token comes from
// the "token" query param (browser) or the Authorization header (tooling).
func (h *AlertHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		h.logger.Warn("AlertHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("AlertHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, conn, userID)
			h.logger.Info("AlertHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the alert feed routes.
func (h *AlertHandler) RegisterRoutes(router fiber.Router) {
	alerts := router.Group("/alerts/v1")
	alerts.Get("/ws", h.ServeWs)
}
