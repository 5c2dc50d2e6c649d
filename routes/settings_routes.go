package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thepalians/reviewflow/handlers"
	"github.com/thepalians/reviewflow/middleware"
)

func SettingsRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	settings := api.Group("/admin/settings", middleware.Protected(), middleware.AdminRequired())
	settings.Get("", handlers.GetSystemSettings)
	settings.Put("", handlers.UpdateSystemSettings)

	flags := api.Group("/admin/feature-flags", middleware.Protected(), middleware.AdminRequired())
	flags.Get("", handlers.ListFeatureFlags)
	flags.Post("", handlers.UpsertFeatureFlag)
	flags.Patch("/:key/toggle", handlers.ToggleFeatureFlag)
	flags.Delete("/:key", handlers.DeleteFeatureFlag)
}
