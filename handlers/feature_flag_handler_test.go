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

func featureFlagApp() *fiber.App {
	return testApp(func(app *fiber.App) {
		app.Get("/feature-flags", ListFeatureFlags)
		app.Post("/feature-flags", UpsertFeatureFlag)
		app.Patch("/feature-flags/:key/toggle", ToggleFeatureFlag)
		app.Delete("/feature-flags/:key", DeleteFeatureFlag)
	})
}

func TestUpsertFeatureFlagCreatesThenUpdates(t *testing.T) {
	setupHandlerDB(t)
	app := featureFlagApp()

	resp, err := app.Test(jsonRequest("POST", "/feature-flags", fiber.Map{
		"key":         "withdrawals_enabled",
		"enabled":     true,
		"description": "Master switch for the withdrawal flow",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.FeatureFlag
	decodeBody(t, resp, &created)
	assert.True(t, created.Enabled)
	require.NotNil(t, created.UpdatedBy)
	assert.Equal(t, testAdminID, *created.UpdatedBy)

	resp, err = app.Test(jsonRequest("POST", "/feature-flags", fiber.Map{
		"key":     "withdrawals_enabled",
		"enabled": false,
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	database.DB.Model(&models.FeatureFlag{}).Count(&count)
	assert.EqualValues(t, 1, count)

	var flag models.FeatureFlag
	require.NoError(t, database.DB.First(&flag, "key = ?", "withdrawals_enabled").Error)
	assert.False(t, flag.Enabled)
}

func TestUpsertFeatureFlagValidatesKey(t *testing.T) {
	setupHandlerDB(t)
	app := featureFlagApp()

	resp, err := app.Test(jsonRequest("POST", "/feature-flags", fiber.Map{"enabled": true}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestToggleFeatureFlag(t *testing.T) {
	setupHandlerDB(t)
	app := featureFlagApp()

	require.NoError(t, database.DB.Create(&models.FeatureFlag{Key: "chatbot", Enabled: false}).Error)

	resp, err := app.Test(httptest.NewRequest("PATCH", "/feature-flags/chatbot/toggle", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var flag models.FeatureFlag
	require.NoError(t, database.DB.First(&flag, "key = ?", "chatbot").Error)
	assert.True(t, flag.Enabled)

	resp, err = app.Test(httptest.NewRequest("PATCH", "/feature-flags/missing/toggle", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteFeatureFlag(t *testing.T) {
	setupHandlerDB(t)
	app := featureFlagApp()

	require.NoError(t, database.DB.Create(&models.FeatureFlag{Key: "chatbot"}).Error)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/feature-flags/chatbot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/feature-flags/chatbot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
