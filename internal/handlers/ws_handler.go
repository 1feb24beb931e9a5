package handlers

import (
	"log/slog"

	"github.com/communitypulse/backend/internal/config"
	"github.com/communitypulse/backend/internal/models"
	"github.com/communitypulse/backend/internal/realtime"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WSUpgrade rejects plain HTTP requests on the websocket route.
func WSUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// WSHandler authenticates the connection with the same JWT used for HTTP
// (passed as a query parameter) and registers it with the hub. Staff
// connections receive moderation broadcasts; every connection receives
// its own user-targeted events.
func WSHandler(cfg *config.Config, db *gorm.DB, hub *realtime.Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, role, err := authenticateSocket(cfg, db, conn.Query("token"))
		if err != nil {
			_ = conn.WriteJSON(realtime.Envelope{Event: "error", Data: "authentication failed"})
			_ = conn.Close()
			return
		}

		hub.Register(conn, userID, role)
		slog.Info("websocket connected", "user_id", userID.String(), "role", role)

		defer func() {
			hub.Unregister(conn)
			slog.Info("websocket disconnected", "user_id", userID.String())
			_ = conn.Close()
		}()

		// Inbound frames are ignored; the loop exists to detect closure.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}

func authenticateSocket(cfg *config.Config, db *gorm.DB, tokenString string) (uuid.UUID, string, error) {
	if tokenString == "" {
		return uuid.Nil, "", jwt.ErrTokenMalformed
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return uuid.Nil, "", jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", jwt.ErrTokenInvalidClaims
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", err
	}

	// The role comes from the DB, not the token, so stale tokens never
	// grant moderation broadcasts.
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return uuid.Nil, "", err
	}
	return user.ID, user.Role, nil
}
