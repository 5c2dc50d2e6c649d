package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
	"gorm.io/gorm"
)

type FAQRequest struct {
	Question  string `json:"question" validate:"required"`
	Answer    string `json:"answer" validate:"required"`
	Category  string `json:"category"`
	Keywords  string `json:"keywords"`
	IsActive  *bool  `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

func CreateFAQ(c *fiber.Ctx) error {
	var req FAQRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	faq := models.ChatbotFAQ{
		Question:  req.Question,
		Answer:    req.Answer,
		Category:  req.Category,
		Keywords:  req.Keywords,
		IsActive:  true,
		SortOrder: req.SortOrder,
	}
	if req.IsActive != nil {
		faq.IsActive = *req.IsActive
	}

	if err := database.DB.Create(&faq).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create FAQ entry"})
	}
	return c.Status(fiber.StatusCreated).JSON(faq)
}

func ListFAQs(c *fiber.Ctx) error {
	query := database.DB.Model(&models.ChatbotFAQ{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var faqs []models.ChatbotFAQ
	query.Order("sort_order asc, created_at desc").Find(&faqs)
	return c.JSON(faqs)
}

func UpdateFAQ(c *fiber.Ctx) error {
	faqID := c.Params("faqId")
	var faq models.ChatbotFAQ
	if err := database.DB.First(&faq, "id = ?", faqID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "FAQ entry not found"})
	}

	var req FAQRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	faq.Question = req.Question
	faq.Answer = req.Answer
	faq.Category = req.Category
	faq.Keywords = req.Keywords
	faq.SortOrder = req.SortOrder
	if req.IsActive != nil {
		faq.IsActive = *req.IsActive
	}
	database.DB.Save(&faq)

	return c.JSON(faq)
}

func DeleteFAQ(c *fiber.Ctx) error {
	faqID := c.Params("faqId")
	result := database.DB.Delete(&models.ChatbotFAQ{}, "id = ?", faqID)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete FAQ entry"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "FAQ entry not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func ListUnansweredQuestions(c *fiber.Ctx) error {
	query := database.DB.Model(&models.ChatbotUnanswered{})
	if !c.QueryBool("include_resolved") {
		query = query.Where("resolved = ?", false)
	}

	var questions []models.ChatbotUnanswered
	query.Order("asked_count desc, created_at desc").Find(&questions)
	return c.JSON(questions)
}

type PromoteRequest struct {
	Answer   string `json:"answer" validate:"required"`
	Category string `json:"category"`
	Keywords string `json:"keywords"`
}

// PromoteUnanswered turns a logged unanswered question into a live FAQ entry
// and marks the log row resolved.
func PromoteUnanswered(c *fiber.Ctx) error {
	questionID := c.Params("questionId")

	var req PromoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var question models.ChatbotUnanswered
	if err := database.DB.First(&question, "id = ?", questionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	var faq models.ChatbotFAQ
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		faq = models.ChatbotFAQ{
			Question: question.Question,
			Answer:   req.Answer,
			Category: req.Category,
			Keywords: req.Keywords,
			IsActive: true,
		}
		if err := tx.Create(&faq).Error; err != nil {
			return err
		}
		return tx.Model(&question).Update("resolved", true).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to promote question"})
	}

	return c.Status(fiber.StatusCreated).JSON(faq)
}

func DeleteUnanswered(c *fiber.Ctx) error {
	questionID := c.Params("questionId")
	result := database.DB.Delete(&models.ChatbotUnanswered{}, "id = ?", questionID)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete question"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
