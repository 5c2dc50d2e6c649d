package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thepalians/reviewflow/services"
)

func GetSystemSettings(c *fiber.Ctx) error {
	s := services.GetSettings()
	return c.JSON(fiber.Map{
		"platform_name":               s.PlatformName,
		"support_email":               s.SupportEmail,
		"task_step_names":             s.TaskStepNames,
		"referral_commission_percent": s.ReferralCommissionPercent,
		"task_completion_points":      s.TaskCompletionPoints,
		"min_withdrawal_amount":       s.MinWithdrawalAmount,
	})
}

type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" validate:"required,min=1"`
}

// UpdateSystemSettings writes key/value rows and drops the typed settings
// cache. Invalid values are rejected at next load and fall back to defaults,
// but unknown keys are refused here.
func UpdateSystemSettings(c *fiber.Ctx) error {
	var req UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	known := map[string]bool{
		"platform_name":               true,
		"support_email":               true,
		"task_step_names":             true,
		"referral_commission_percent": true,
		"task_completion_points":      true,
		"min_withdrawal_amount":       true,
	}
	for key := range req.Settings {
		if !known[key] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown setting key: " + key})
		}
	}

	for key, value := range req.Settings {
		if err := services.UpsertSetting(key, value); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update settings"})
		}
	}

	return GetSystemSettings(c)
}
