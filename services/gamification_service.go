package services

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
	"gorm.io/gorm"
)

const pointReasonTaskCompletion = "task_completion"

// AwardTaskCompletionPoints gives the assignee the configured points for a
// settled task, at most once per (user, task). The unique index on
// point_transactions makes a duplicate award a no-op.
func AwardTaskCompletionPoints(userID, taskID uuid.UUID) error {
	points := GetSettings().TaskCompletionPoints
	if points <= 0 {
		return nil
	}

	txn := models.PointTransaction{
		UserID: userID,
		TaskID: taskID,
		Reason: pointReasonTaskCompletion,
		Points: points,
	}
	if err := database.DB.Create(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}

	log.Printf("✅ Awarded %d points to user %s for task %s", points, userID, taskID)
	return nil
}
