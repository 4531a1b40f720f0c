package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/omerfman/yeni-nesil-sinif/handlers"
	"github.com/omerfman/yeni-nesil-sinif/middleware"
)

func NotificationRoutes(app *fiber.App, ws *handlers.WsHandler) {
	api := app.Group("/api/v1")

	notifs := api.Group("/notifications", middleware.Protected())
	notifs.Get("", handlers.GetMyNotifications)
	notifs.Patch("/:notificationId/read", handlers.MarkNotificationRead)
	notifs.Post("/read-all", handlers.MarkAllNotificationsRead)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws/notifications", websocket.New(ws.ServeWs))
}
