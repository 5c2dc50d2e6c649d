package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thepalians/reviewflow/handlers"
	"github.com/thepalians/reviewflow/middleware"
)

func FAQRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// the chatbot reads the live FAQ base without authentication
	api.Get("/faqs", handlers.ListFAQs)

	admin := api.Group("/admin/faqs", middleware.Protected(), middleware.AdminRequired())
	admin.Post("", handlers.CreateFAQ)
	admin.Put("/:faqId", handlers.UpdateFAQ)
	admin.Delete("/:faqId", handlers.DeleteFAQ)

	unanswered := api.Group("/admin/unanswered-questions", middleware.Protected(), middleware.AdminRequired())
	unanswered.Get("", handlers.ListUnansweredQuestions)
	unanswered.Post("/:questionId/promote", handlers.PromoteUnanswered)
	unanswered.Delete("/:questionId", handlers.DeleteUnanswered)
}
