package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
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
		&models.Message{},
		&models.ChatbotFAQ{},
		&models.ChatbotUnanswered{},
		&models.FeatureFlag{},
		&models.SystemSetting{},
		&models.GSTSetting{},
		&models.OutboxEffect{},
		&models.AdminLog{},
	))

	database.DB = db
	InvalidateSettings()
}

func createTestUser(t *testing.T, active bool) models.User {
	t.Helper()
	user := models.User{
		FullName: "Test User " + uuid.NewString()[:8],
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
		Role:     "user",
		IsActive: active,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createTestSeller(t *testing.T) models.Seller {
	t.Helper()
	seller := models.Seller{
		Name:   "Test Seller",
		Email:  uuid.NewString() + "@seller.com",
		Status: "active",
	}
	require.NoError(t, database.DB.Create(&seller).Error)
	return seller
}

func assignTestTask(t *testing.T, userID, sellerID uuid.UUID, commission float64) *models.Task {
	t.Helper()
	task, err := AssignTask(uuid.New(), AssignTaskInput{
		UserID:      userID,
		SellerID:    &sellerID,
		ProductLink: "https://example.com/product/1",
		BrandName:   "Acme",
		Commission:  commission,
	})
	require.NoError(t, err)
	return task
}

func fundWallet(t *testing.T, userID uuid.UUID, amount float64) {
	t.Helper()
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		_, err := CreditWallet(tx, userID, amount, models.TxnTypeBonus, "test funding", nil, nil)
		return err
	})
	require.NoError(t, err)
}

func walletBalance(t *testing.T, userID uuid.UUID) float64 {
	t.Helper()
	var wallet models.Wallet
	require.NoError(t, database.DB.First(&wallet, "user_id = ?", userID).Error)
	return wallet.Balance
}
