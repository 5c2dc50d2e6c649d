package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
	"gorm.io/gorm"
)

// CreditReferralCommission pays the referrer of fromUserID a commission for
// the given task. Idempotent per (task, fromUser): the ReferralEarning unique
// index rejects a second attempt, which is treated as already-done.
func CreditReferralCommission(fromUserID, taskID uuid.UUID, amount float64) error {
	var referral models.Referral
	err := database.DB.Where("referred_user_id = ?", fromUserID).First(&referral).Error
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if amount <= 0 {
		return nil
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		earning := models.ReferralEarning{
			ReferrerID: referral.ReferrerID,
			FromUserID: fromUserID,
			TaskID:     taskID,
			Amount:     amount,
		}
		if err := tx.Create(&earning).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil
			}
			return err
		}

		refType := "referral_earning"
		desc := fmt.Sprintf("Referral commission for task %s", taskID)
		_, err := CreditWallet(tx, referral.ReferrerID, amount, models.TxnTypeReferral, desc, &earning.ID, &refType)
		return err
	})
}
