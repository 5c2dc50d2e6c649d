package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/thepalians/reviewflow/models"
	"gorm.io/gorm"
)

var ErrInsufficientBalance = errors.New("insufficient wallet balance")

// CreditWallet adds amount to the user's wallet, creating the wallet row on
// first credit, and appends the paired ledger transaction. Must run inside
// the caller's transaction so the balance change and its ledger entry commit
// together.
func CreditWallet(tx *gorm.DB, userID uuid.UUID, amount float64, txnType, description string, refID *uuid.UUID, refType *string) (*models.WalletTransaction, error) {
	res := tx.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		wallet := models.Wallet{UserID: userID, Balance: amount}
		if err := tx.Create(&wallet).Error; err != nil {
			return nil, err
		}
	}

	var wallet models.Wallet
	if err := tx.First(&wallet, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}

	txn := models.WalletTransaction{
		UserID:        userID,
		Type:          txnType,
		Amount:        amount,
		BalanceAfter:  wallet.Balance,
		Description:   description,
		ReferenceID:   refID,
		ReferenceType: refType,
		Status:        models.TxnStatusCompleted,
	}
	if err := tx.Create(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

// DebitWallet removes amount from the user's wallet and appends a pending
// ledger transaction. The balance check rides on the conditional UPDATE, so
// two concurrent debits cannot both succeed against the same funds.
func DebitWallet(tx *gorm.DB, userID uuid.UUID, amount float64, txnType, description string, refID *uuid.UUID, refType *string) (*models.WalletTransaction, error) {
	res := tx.Model(&models.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInsufficientBalance
	}

	var wallet models.Wallet
	if err := tx.First(&wallet, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}

	txn := models.WalletTransaction{
		UserID:        userID,
		Type:          txnType,
		Amount:        amount,
		BalanceAfter:  wallet.Balance,
		Description:   description,
		ReferenceID:   refID,
		ReferenceType: refType,
		Status:        models.TxnStatusPending,
	}
	if err := tx.Create(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}
