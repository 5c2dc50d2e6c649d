package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thepalians/reviewflow/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestGenerateUniqueReferralCode(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:referral_codes?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	taken := "TAKEN123"
	existing := models.User{FullName: "Existing", Email: "existing@example.com", Password: "x", ReferralCode: &taken}
	require.NoError(t, db.Create(&existing).Error)

	code, err := GenerateUniqueReferralCode(db)
	require.NoError(t, err)

	assert.Len(t, code, referralCodeLength)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(referralCodeAlphabet, r), "unexpected character %q", r)
	}
}
