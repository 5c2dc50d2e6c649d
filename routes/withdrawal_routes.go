package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thepalians/reviewflow/handlers"
	"github.com/thepalians/reviewflow/middleware"
)

func WithdrawalRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// user-facing: open a request against their own wallet
	wallet := api.Group("/wallet", middleware.Protected())
	wallet.Post("/withdrawals", handlers.RequestWithdrawal)

	admin := api.Group("/admin/withdrawals", middleware.Protected(), middleware.AdminRequired())
	admin.Get("", handlers.ListWithdrawals)
	admin.Post("/:requestId/approve", handlers.ApproveWithdrawal)
	admin.Post("/:requestId/complete", handlers.CompleteWithdrawal)
	admin.Post("/:requestId/reject", handlers.RejectWithdrawal)
}
