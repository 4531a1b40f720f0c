package handlers

import (
	"errors"
	"fmt"
	"log"

	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	config "github.com/omerfman/yeni-nesil-sinif/configs"
	"github.com/omerfman/yeni-nesil-sinif/websocket"
)

type WsHandler struct {
	hub *websocket.Hub
}

func NewWsHandler(hub *websocket.Hub) *WsHandler {
	return &WsHandler{hub: hub}
}

// ServeWs attaches a client to the notification hub. Browsers cannot set an
// Authorization header on the upgrade request, so the first frame carries
// the JWT instead.
func (h *WsHandler) ServeWs(c *websocketcontrib.Conn) {
	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		_ = c.WriteJSON(map[string]string{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		_ = c.WriteJSON(map[string]string{"error": "Invalid token"})
		c.Close()
		return
	}
	userID, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		_ = c.WriteJSON(map[string]string{"error": "Invalid user ID"})
		c.Close()
		return
	}

	client := &websocket.Client{UserID: userID, Conn: c}
	h.hub.Register(client)
	defer func() {
		h.hub.Unregister(client)
		c.Close()
	}()

	// Drain until the peer hangs up; pushes flow the other way.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			log.Printf("WebSocket client %s disconnected: %v", userID, err)
			return
		}
	}
}

func parseToken(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
