package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
	"gorm.io/gorm"
)

var (
	ErrWithdrawalProcessed   = errors.New("withdrawal request already processed")
	ErrBelowMinWithdrawal    = errors.New("amount is below the minimum withdrawal")
	ErrRejectReasonRequired  = errors.New("a rejection reason is required")
	ErrWithdrawalNotApproved = errors.New("withdrawal must be approved before completion")
)

// RequestWithdrawal debits the wallet up front and opens a pending request.
// The debit and its pending ledger hold commit together with the request row.
func RequestWithdrawal(userID uuid.UUID, amount float64, paymentMethod, paymentDetails string) (*models.WithdrawalRequest, error) {
	if amount < GetSettings().MinWithdrawalAmount {
		return nil, ErrBelowMinWithdrawal
	}

	request := models.WithdrawalRequest{
		UserID:         userID,
		Amount:         amount,
		PaymentMethod:  paymentMethod,
		PaymentDetails: paymentDetails,
		Status:         models.WithdrawalStatusPending,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		desc := fmt.Sprintf("Withdrawal request via %s", paymentMethod)
		txn, err := DebitWallet(tx, userID, amount, models.TxnTypeWithdrawal, desc, nil, nil)
		if err != nil {
			return err
		}

		request.WalletTransactionID = &txn.ID
		if err := tx.Create(&request).Error; err != nil {
			return err
		}

		return EnqueueEffect(tx, EffectNotifyUser, NotifyUserPayload{
			UserID: userID,
			Type:   "withdrawal_requested",
			Title:  "Withdrawal Requested",
			Body:   fmt.Sprintf("Your withdrawal request for %.2f has been received and is pending review.", amount),
		})
	})
	if err != nil {
		return nil, err
	}

	DispatchPendingEffects()
	return &request, nil
}

// ApproveWithdrawal signals intent to pay. No money moves here; the paired
// ledger hold flips to completed and the request waits for CompleteWithdrawal.
// Only a pending request can be approved.
func ApproveWithdrawal(adminID, requestID uuid.UUID, note string) error {
	var request models.WithdrawalRequest
	if err := database.DB.First(&request, "id = ?", requestID).Error; err != nil {
		return err
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.WithdrawalRequest{}).
			Where("id = ? AND status = ?", requestID, models.WithdrawalStatusPending).
			Updates(map[string]interface{}{
				"status":       models.WithdrawalStatusApproved,
				"admin_note":   note,
				"processed_by": adminID,
				"processed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrWithdrawalProcessed
		}

		if request.WalletTransactionID != nil {
			if err := tx.Model(&models.WalletTransaction{}).
				Where("id = ?", *request.WalletTransactionID).
				Update("status", models.TxnStatusCompleted).Error; err != nil {
				return err
			}
		}

		return EnqueueEffect(tx, EffectNotifyUser, NotifyUserPayload{
			UserID: request.UserID,
			Type:   "withdrawal_approved",
			Title:  "Withdrawal Approved",
			Body:   fmt.Sprintf("Your withdrawal request for %.2f has been approved and will be paid out shortly.", request.Amount),
		})
	})
	if err != nil {
		return err
	}

	DispatchPendingEffects()
	return nil
}

// CompleteWithdrawal marks the money as having left the platform: the
// request closes and the wallet's total_withdrawn grows by the amount.
// Only an approved request can be completed.
func CompleteWithdrawal(adminID, requestID uuid.UUID, note string) error {
	var request models.WithdrawalRequest
	if err := database.DB.First(&request, "id = ?", requestID).Error; err != nil {
		return err
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.WithdrawalRequest{}).
			Where("id = ? AND status = ?", requestID, models.WithdrawalStatusApproved).
			Updates(map[string]interface{}{
				"status":       models.WithdrawalStatusCompleted,
				"admin_note":   note,
				"processed_by": adminID,
				"processed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrWithdrawalNotApproved
		}

		if err := tx.Model(&models.Wallet{}).
			Where("user_id = ?", request.UserID).
			Update("total_withdrawn", gorm.Expr("total_withdrawn + ?", request.Amount)).Error; err != nil {
			return err
		}

		if request.WalletTransactionID != nil {
			desc := fmt.Sprintf("Withdrawal paid out via %s", request.PaymentMethod)
			if err := tx.Model(&models.WalletTransaction{}).
				Where("id = ?", *request.WalletTransactionID).
				Update("description", desc).Error; err != nil {
				return err
			}
		}

		return EnqueueEffect(tx, EffectNotifyUser, NotifyUserPayload{
			UserID: request.UserID,
			Type:   "withdrawal_completed",
			Title:  "Payment Sent",
			Body:   fmt.Sprintf("Your withdrawal of %.2f has been paid out via %s.", request.Amount, request.PaymentMethod),
		})
	})
	if err != nil {
		return err
	}

	DispatchPendingEffects()
	return nil
}

// RejectWithdrawal refunds the held amount to the wallet with a compensating
// credit ledger entry and fails the original hold. Only a pending request can
// be rejected.
func RejectWithdrawal(adminID, requestID uuid.UUID, reason string) error {
	if reason == "" {
		return ErrRejectReasonRequired
	}

	var request models.WithdrawalRequest
	if err := database.DB.First(&request, "id = ?", requestID).Error; err != nil {
		return err
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.WithdrawalRequest{}).
			Where("id = ? AND status = ?", requestID, models.WithdrawalStatusPending).
			Updates(map[string]interface{}{
				"status":       models.WithdrawalStatusRejected,
				"admin_note":   reason,
				"processed_by": adminID,
				"processed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrWithdrawalProcessed
		}

		if request.WalletTransactionID != nil {
			if err := tx.Model(&models.WalletTransaction{}).
				Where("id = ?", *request.WalletTransactionID).
				Update("status", models.TxnStatusFailed).Error; err != nil {
				return err
			}
		}

		refType := "withdrawal_request"
		desc := fmt.Sprintf("Wallet refund for rejected withdrawal %s", requestID)
		if _, err := CreditWallet(tx, request.UserID, request.Amount, models.TxnTypeCredit, desc, &requestID, &refType); err != nil {
			return err
		}

		return EnqueueEffect(tx, EffectNotifyUser, NotifyUserPayload{
			UserID: request.UserID,
			Type:   "withdrawal_rejected",
			Title:  "Withdrawal Rejected",
			Body:   fmt.Sprintf("Your withdrawal request for %.2f was rejected: %s. The amount has been returned to your wallet.", request.Amount, reason),
		})
	})
	if err != nil {
		return err
	}

	DispatchPendingEffects()
	return nil
}
