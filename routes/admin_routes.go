package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thepalians/reviewflow/handlers"
	"github.com/thepalians/reviewflow/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/dashboard-analytics", handlers.GetDashboardAnalytics)
	admin.Get("/logs", handlers.ListAdminLogs)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Put("/:userId/status", handlers.ToggleUserStatus)
	users.Get("/:userId/wallet", handlers.GetUserWallet)

	suspicious := admin.Group("/suspicious-activities")
	suspicious.Get("", handlers.ListSuspiciousActivities)
	suspicious.Post("/:activityId/review", handlers.MarkActivityReviewed)
	suspicious.Post("/:activityId/dismiss", handlers.DismissActivity)
	suspicious.Post("/:activityId/penalty", handlers.AddPenalty)

	sellers := admin.Group("/sellers")
	sellers.Get("", handlers.ListSellers)
	sellers.Post("", handlers.CreateSeller)

	reviewRequests := admin.Group("/review-requests")
	reviewRequests.Get("", handlers.ListReviewRequests)
	reviewRequests.Post("", handlers.CreateReviewRequest)
	reviewRequests.Post("/:requestId/close", handlers.CloseReviewRequest)

	reports := admin.Group("/reports")
	reports.Get("/tasks", handlers.GenerateTaskReport)
	reports.Get("/withdrawals", handlers.GenerateWithdrawalReport)
	reports.Get("/ledger", handlers.GenerateLedgerReport)
	reports.Get("/gst", handlers.GenerateGSTReport)
}
