package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
)

func faqApp() *fiber.App {
	return testApp(func(app *fiber.App) {
		app.Get("/faqs", ListFAQs)
		app.Post("/faqs", CreateFAQ)
		app.Put("/faqs/:faqId", UpdateFAQ)
		app.Delete("/faqs/:faqId", DeleteFAQ)
		app.Get("/unanswered", ListUnansweredQuestions)
		app.Post("/unanswered/:questionId/promote", PromoteUnanswered)
		app.Delete("/unanswered/:questionId", DeleteUnanswered)
	})
}

func TestCreateAndListFAQs(t *testing.T) {
	setupHandlerDB(t)
	app := faqApp()

	resp, err := app.Test(jsonRequest("POST", "/faqs", fiber.Map{
		"question": "How do I withdraw my earnings?",
		"answer":   "Open your wallet and request a withdrawal.",
		"category": "wallet",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/faqs", fiber.Map{"question": "No answer given"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// an entry created as inactive must stay inactive
	resp, err = app.Test(jsonRequest("POST", "/faqs", fiber.Map{
		"question":  "Draft entry",
		"answer":    "Not published yet.",
		"category":  "drafts",
		"is_active": false,
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var draft models.ChatbotFAQ
	require.NoError(t, database.DB.First(&draft, "category = ?", "drafts").Error)
	assert.False(t, draft.IsActive)

	resp, err = app.Test(httptest.NewRequest("GET", "/faqs?category=wallet", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var faqs []models.ChatbotFAQ
	decodeBody(t, resp, &faqs)
	require.Len(t, faqs, 1)
	assert.True(t, faqs[0].IsActive)
}

func TestPromoteUnansweredQuestion(t *testing.T) {
	setupHandlerDB(t)
	app := faqApp()

	question := models.ChatbotUnanswered{Question: "Can I change my payment method?", AskedCount: 3}
	require.NoError(t, database.DB.Create(&question).Error)

	resp, err := app.Test(jsonRequest("POST", "/unanswered/"+question.ID.String()+"/promote", fiber.Map{
		"answer":   "Yes, from your profile settings.",
		"category": "account",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var faq models.ChatbotFAQ
	require.NoError(t, database.DB.First(&faq, "question = ?", question.Question).Error)
	assert.Equal(t, "Yes, from your profile settings.", faq.Answer)
	assert.True(t, faq.IsActive)

	var resolved models.ChatbotUnanswered
	require.NoError(t, database.DB.First(&resolved, "id = ?", question.ID).Error)
	assert.True(t, resolved.Resolved)

	// resolved questions drop out of the default list
	resp, err = app.Test(httptest.NewRequest("GET", "/unanswered", nil))
	require.NoError(t, err)
	var remaining []models.ChatbotUnanswered
	decodeBody(t, resp, &remaining)
	assert.Empty(t, remaining)
}

func TestPromoteUnknownQuestion(t *testing.T) {
	setupHandlerDB(t)
	app := faqApp()

	resp, err := app.Test(jsonRequest("POST", "/unanswered/3f2c8a1e-0000-0000-0000-000000000000/promote", fiber.Map{
		"answer": "x",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
