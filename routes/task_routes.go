package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thepalians/reviewflow/handlers"
	"github.com/thepalians/reviewflow/middleware"
)

func TaskRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	tasks := api.Group("/admin/tasks", middleware.Protected(), middleware.AdminRequired())

	tasks.Get("", handlers.ListTasks)
	tasks.Get("/:taskId", handlers.GetTask)
	tasks.Post("/assign", handlers.AssignTask)
	tasks.Post("/bulk-assign", handlers.BulkAssignTasks)
	tasks.Post("/:taskId/refund/approve", handlers.ApproveRefund)
	tasks.Post("/:taskId/refund/reject", handlers.RejectRefund)
}
