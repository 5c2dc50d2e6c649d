package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
	"github.com/thepalians/reviewflow/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testAdminID = uuid.New()

// testApp wires the handlers behind a stub auth layer that plants verified
// admin claims the way the JWT middleware would.
func testApp(register func(app *fiber.App)) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": testAdminID.String(),
			"role":    "admin",
		})
		c.Locals("user", token)
		return c.Next()
	})
	register(app)
	return app
}

func setupHandlerDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Seller{},
		&models.ReviewRequest{},
		&models.Task{},
		&models.TaskStep{},
		&models.TaskRejection{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.WithdrawalRequest{},
		&models.SuspiciousActivity{},
		&models.UserPenalty{},
		&models.Referral{},
		&models.ReferralEarning{},
		&models.PointTransaction{},
		&models.Notification{},
		&models.ChatbotFAQ{},
		&models.ChatbotUnanswered{},
		&models.FeatureFlag{},
		&models.SystemSetting{},
		&models.OutboxEffect{},
		&models.AdminLog{},
	))

	database.DB = db
	services.InvalidateSettings()
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}
