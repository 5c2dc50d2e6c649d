package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/middleware"
	"github.com/thepalians/reviewflow/models"
	"gorm.io/gorm"
)

type FeatureFlagRequest struct {
	Key         string `json:"key" validate:"required,min=2"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description"`
}

func ListFeatureFlags(c *fiber.Ctx) error {
	var flags []models.FeatureFlag
	database.DB.Order("key asc").Find(&flags)
	return c.JSON(flags)
}

func UpsertFeatureFlag(c *fiber.Ctx) error {
	var req FeatureFlagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	adminID := middleware.UserID(c)

	var flag models.FeatureFlag
	err := database.DB.Where("key = ?", req.Key).First(&flag).Error
	if err == gorm.ErrRecordNotFound {
		flag = models.FeatureFlag{
			Key:         req.Key,
			Enabled:     req.Enabled,
			Description: req.Description,
			UpdatedBy:   &adminID,
		}
		if err := database.DB.Create(&flag).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create feature flag"})
		}
		return c.Status(fiber.StatusCreated).JSON(flag)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	flag.Enabled = req.Enabled
	flag.Description = req.Description
	flag.UpdatedBy = &adminID
	database.DB.Save(&flag)

	return c.JSON(flag)
}

func ToggleFeatureFlag(c *fiber.Ctx) error {
	key := c.Params("key")
	adminID := middleware.UserID(c)

	var flag models.FeatureFlag
	if err := database.DB.Where("key = ?", key).First(&flag).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Feature flag not found"})
	}

	flag.Enabled = !flag.Enabled
	flag.UpdatedBy = &adminID
	database.DB.Save(&flag)

	return c.JSON(flag)
}

func DeleteFeatureFlag(c *fiber.Ctx) error {
	key := c.Params("key")
	result := database.DB.Delete(&models.FeatureFlag{}, "key = ?", key)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete feature flag"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Feature flag not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
