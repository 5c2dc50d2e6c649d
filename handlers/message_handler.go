package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/middleware"
	"github.com/thepalians/reviewflow/models"
	"github.com/thepalians/reviewflow/notifications"
)

type SendMessageRequest struct {
	RecipientID string  `json:"recipient_id" validate:"required,uuid"`
	Subject     *string `json:"subject,omitempty"`
	Body        string  `json:"body" validate:"required"`
}

func SendMessage(c *fiber.Ctx) error {
	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	recipientID, _ := uuid.Parse(req.RecipientID)
	var recipient models.User
	if err := database.DB.First(&recipient, "id = ?", recipientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Recipient not found"})
	}

	message := models.Message{
		SenderID:    middleware.UserID(c),
		RecipientID: recipientID,
		Subject:     req.Subject,
		Body:        req.Body,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send message"})
	}

	title := "New Message"
	if req.Subject != nil && *req.Subject != "" {
		title = *req.Subject
	}
	go notifications.CreateNotification(recipientID, "message", title, req.Body, nil)

	return c.Status(fiber.StatusCreated).JSON(message)
}

func ListMessagesWithUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var messages []models.Message
	database.DB.
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at asc").
		Preload("Sender").
		Find(&messages)

	return c.JSON(messages)
}

func MarkMessageRead(c *fiber.Ctx) error {
	messageID := c.Params("messageId")

	now := time.Now()
	result := database.DB.Model(&models.Message{}).
		Where("id = ? AND read_at IS NULL", messageID).
		Update("read_at", now)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark message read"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found or already read"})
	}

	return c.JSON(fiber.Map{"message": "Marked as read"})
}

func ListMyNotifications(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var items []models.Notification
	database.DB.Where("user_id = ?", userID).Order("created_at desc").Limit(50).Find(&items)
	return c.JSON(items)
}

func MarkNotificationRead(c *fiber.Ctx) error {
	notificationID := c.Params("notificationId")
	userID := middleware.UserID(c)

	now := time.Now()
	result := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", notificationID, userID).
		Update("read_at", now)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark notification read"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found or already read"})
	}

	return c.JSON(fiber.Map{"message": "Marked as read"})
}
