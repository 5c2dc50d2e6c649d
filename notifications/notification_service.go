package notifications

import (
	"log"

	"github.com/google/uuid"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
	"github.com/thepalians/reviewflow/websocket"
)

// CreateNotification stores an in-app notification and pushes it to the
// user's websocket connection if one is open. The push is best-effort; the
// stored row is the source of truth.
func CreateNotification(userID uuid.UUID, notifType, title, body string, link *string) (*models.Notification, error) {
	notification := models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Link:   link,
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		return nil, err
	}

	if err := websocket.Push(userID, &notification); err != nil {
		log.Printf("Websocket push to %s skipped: %v", userID, err)
	}

	return &notification, nil
}
