package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thepalians/reviewflow/handlers"
	"github.com/thepalians/reviewflow/middleware"
	"github.com/thepalians/reviewflow/websocket"
)

func MessagingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin/messages", middleware.Protected(), middleware.AdminRequired())
	admin.Post("", handlers.SendMessage)
	admin.Get("/with/:userId", handlers.ListMessagesWithUser)

	messages := api.Group("/messages", middleware.Protected())
	messages.Put("/:messageId/read", handlers.MarkMessageRead)

	notificationsGroup := api.Group("/notifications", middleware.Protected())
	notificationsGroup.Get("", handlers.ListMyNotifications)
	notificationsGroup.Put("/:notificationId/read", handlers.MarkNotificationRead)

	app.Use("/ws/:userId", websocket.Upgrade)
	app.Get("/ws/:userId", websocket.ServeWS())
}
