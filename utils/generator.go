package utils

import (
	"errors"
	"math/rand"

	"github.com/thepalians/reviewflow/models"
	"gorm.io/gorm"
)

const (
	referralCodeLength   = 8
	referralCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referralCodeRetries  = 20
)

func randomReferralCode() string {
	b := make([]byte, referralCodeLength)
	for i := range b {
		b[i] = referralCodeAlphabet[rand.Intn(len(referralCodeAlphabet))]
	}
	return string(b)
}

// GenerateUniqueReferralCode draws random codes until one is not yet taken in
// the users table. The retry cap only trips when the code space is nearly
// exhausted.
func GenerateUniqueReferralCode(tx *gorm.DB) (string, error) {
	for i := 0; i < referralCodeRetries; i++ {
		code := randomReferralCode()

		var count int64
		if err := tx.Model(&models.User{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique referral code")
}
