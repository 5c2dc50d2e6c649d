package handlers

import (
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/middleware"
	"github.com/thepalians/reviewflow/models"
	"github.com/thepalians/reviewflow/notifications"
	"gorm.io/gorm"
)

func ListSuspiciousActivities(c *fiber.Ctx) error {
	page, limit, offset := pageParams(c, 10)

	query := database.DB.Model(&models.SuspiciousActivity{})
	countQuery := database.DB.Model(&models.SuspiciousActivity{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
		countQuery = countQuery.Where("status = ?", status)
	}
	if severity := c.Query("severity"); severity != "" {
		query = query.Where("severity = ?", severity)
		countQuery = countQuery.Where("severity = ?", severity)
	}

	var total int64
	var activities []models.SuspiciousActivity
	countQuery.Count(&total)
	query.Order("created_at desc").Offset(offset).Limit(limit).Preload("User").Find(&activities)

	return c.JSON(fiber.Map{
		"data": activities,
		"meta": fiber.Map{
			"total":     total,
			"page":      page,
			"last_page": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

type ReviewActivityRequest struct {
	AdminNote string `json:"admin_note"`
}

// reviewActivity moves a reviewable activity into the target status. An
// activity already actioned for a penalty stays put.
func reviewActivity(c *fiber.Ctx, targetStatus string) error {
	activityID, err := uuid.Parse(c.Params("activityId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid activity id"})
	}

	var req ReviewActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	now := time.Now()
	res := database.DB.Model(&models.SuspiciousActivity{}).
		Where("id = ? AND status != ?", activityID, models.ActivityStatusActioned).
		Updates(map[string]interface{}{
			"status":      targetStatus,
			"admin_note":  req.AdminNote,
			"reviewed_by": middleware.UserID(c),
			"reviewed_at": now,
		})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update activity"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Activity already actioned or not found"})
	}

	return c.JSON(fiber.Map{"message": "Activity updated"})
}

func MarkActivityReviewed(c *fiber.Ctx) error {
	return reviewActivity(c, models.ActivityStatusReviewed)
}

func DismissActivity(c *fiber.Ctx) error {
	return reviewActivity(c, models.ActivityStatusDismissed)
}

type AddPenaltyRequest struct {
	PenaltyType string `json:"penalty_type" validate:"required"`
	Reason      string `json:"reason" validate:"required"`
	AdminNote   string `json:"admin_note"`
}

// AddPenalty records a penalty against the activity's user and moves the
// activity to actioned. Recording only; enforcement is read elsewhere.
func AddPenalty(c *fiber.Ctx) error {
	activityID, err := uuid.Parse(c.Params("activityId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid activity id"})
	}

	var req AddPenaltyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var activity models.SuspiciousActivity
	if err := database.DB.First(&activity, "id = ?", activityID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Activity not found"})
	}

	adminID := middleware.UserID(c)
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.SuspiciousActivity{}).
			Where("id = ? AND status != ?", activityID, models.ActivityStatusActioned).
			Updates(map[string]interface{}{
				"status":      models.ActivityStatusActioned,
				"admin_note":  req.AdminNote,
				"reviewed_by": adminID,
				"reviewed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "Activity already actioned")
		}

		penalty := models.UserPenalty{
			UserID:      activity.UserID,
			ActivityID:  &activityID,
			PenaltyType: req.PenaltyType,
			Reason:      req.Reason,
			IssuedBy:    adminID,
		}
		return tx.Create(&penalty).Error
	})
	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record penalty"})
	}

	go notifications.CreateNotification(activity.UserID, "penalty_issued", "Account Penalty",
		"A penalty has been recorded on your account: "+req.Reason, nil)

	return c.JSON(fiber.Map{"message": "Penalty recorded"})
}
