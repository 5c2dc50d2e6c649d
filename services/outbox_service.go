package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
	"github.com/thepalians/reviewflow/notifications"
	"gorm.io/gorm"
)

const (
	EffectNotifyUser         = "notify_user"
	EffectEmailUser          = "email_user"
	EffectReferralCommission = "referral_commission"
	EffectTaskPoints         = "task_points"
	EffectAdminLog           = "admin_log"

	maxEffectAttempts = 5

	// staleEffectAge is how long a claimed row may sit in processing before
	// the claim is considered dead and the row goes back to the queue.
	staleEffectAge = 5 * time.Minute
)

type NotifyUserPayload struct {
	UserID uuid.UUID `json:"user_id"`
	Type   string    `json:"type"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	Link   *string   `json:"link,omitempty"`
}

type EmailUserPayload struct {
	UserID  uuid.UUID `json:"user_id"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
}

type ReferralCommissionPayload struct {
	UserID uuid.UUID `json:"user_id"`
	TaskID uuid.UUID `json:"task_id"`
	Amount float64   `json:"amount"`
}

type TaskPointsPayload struct {
	UserID uuid.UUID `json:"user_id"`
	TaskID uuid.UUID `json:"task_id"`
}

type AdminLogPayload struct {
	AdminID    uuid.UUID  `json:"admin_id"`
	Action     string     `json:"action"`
	EntityType string     `json:"entity_type"`
	EntityID   *uuid.UUID `json:"entity_id,omitempty"`
	Detail     string     `json:"detail"`
}

// EnqueueEffect writes an outbox row inside the caller's transaction, so the
// effect is recorded if and only if the state change it belongs to commits.
func EnqueueEffect(tx *gorm.DB, effectType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", effectType, err)
	}
	effect := models.OutboxEffect{
		EffectType: effectType,
		Payload:    body,
		Status:     models.EffectStatusPending,
	}
	return tx.Create(&effect).Error
}

// DispatchPendingEffects drains pending outbox rows. Every effect is handled
// in isolation: one failure is recorded on its row and never stops the rest.
// Called synchronously after each settlement commit and again by cron as the
// retry path.
func DispatchPendingEffects() {
	var effects []models.OutboxEffect
	err := database.DB.
		Where("status = ? AND attempts < ?", models.EffectStatusPending, maxEffectAttempts).
		Order("created_at asc").
		Limit(100).
		Find(&effects).Error
	if err != nil {
		log.Printf("🔥 Failed to load pending effects: %v", err)
		return
	}

	for i := range effects {
		effect := &effects[i]

		// Claim the row; a concurrent dispatcher loses the race and skips it.
		res := database.DB.Model(&models.OutboxEffect{}).
			Where("id = ? AND status = ?", effect.ID, models.EffectStatusPending).
			Update("status", models.EffectStatusProcessing)
		if res.Error != nil || res.RowsAffected == 0 {
			continue
		}

		if err := dispatchEffect(effect); err != nil {
			log.Printf("🔥 Effect %s (%s) failed: %v", effect.ID, effect.EffectType, err)
			failEffect(effect, err)
			continue
		}

		now := time.Now()
		database.DB.Model(effect).Updates(map[string]interface{}{
			"status":       models.EffectStatusDone,
			"attempts":     gorm.Expr("attempts + 1"),
			"completed_at": &now,
		})
	}
}

// RequeueStaleEffects returns long-claimed processing rows to pending. A
// dispatcher that dies between claiming a row and recording the outcome
// leaves it in processing, where nothing would ever pick it up again.
func RequeueStaleEffects() {
	cutoff := time.Now().Add(-staleEffectAge)
	res := database.DB.Model(&models.OutboxEffect{}).
		Where("status = ? AND updated_at < ?", models.EffectStatusProcessing, cutoff).
		Update("status", models.EffectStatusPending)
	if res.Error != nil {
		log.Printf("🔥 Failed to requeue stale effects: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Requeued %d stale effects", res.RowsAffected)
	}
}

func failEffect(effect *models.OutboxEffect, cause error) {
	status := models.EffectStatusPending
	if effect.Attempts+1 >= maxEffectAttempts {
		status = models.EffectStatusFailed
	}
	msg := cause.Error()
	database.DB.Model(effect).Updates(map[string]interface{}{
		"status":     status,
		"attempts":   gorm.Expr("attempts + 1"),
		"last_error": &msg,
	})
}

func dispatchEffect(effect *models.OutboxEffect) error {
	switch effect.EffectType {
	case EffectNotifyUser:
		var p NotifyUserPayload
		if err := json.Unmarshal(effect.Payload, &p); err != nil {
			return err
		}
		_, err := notifications.CreateNotification(p.UserID, p.Type, p.Title, p.Body, p.Link)
		return err

	case EffectEmailUser:
		var p EmailUserPayload
		if err := json.Unmarshal(effect.Payload, &p); err != nil {
			return err
		}
		var user models.User
		if err := database.DB.First(&user, "id = ?", p.UserID).Error; err != nil {
			return err
		}
		return notifications.DeliverEmail(user.FullName, user.Email, p.Subject, p.Body)

	case EffectReferralCommission:
		var p ReferralCommissionPayload
		if err := json.Unmarshal(effect.Payload, &p); err != nil {
			return err
		}
		return CreditReferralCommission(p.UserID, p.TaskID, p.Amount)

	case EffectTaskPoints:
		var p TaskPointsPayload
		if err := json.Unmarshal(effect.Payload, &p); err != nil {
			return err
		}
		return AwardTaskCompletionPoints(p.UserID, p.TaskID)

	case EffectAdminLog:
		var p AdminLogPayload
		if err := json.Unmarshal(effect.Payload, &p); err != nil {
			return err
		}
		entry := models.AdminLog{
			AdminID:    p.AdminID,
			Action:     p.Action,
			EntityType: p.EntityType,
			EntityID:   p.EntityID,
			Detail:     p.Detail,
		}
		return database.DB.Create(&entry).Error

	default:
		return fmt.Errorf("unknown effect type %q", effect.EffectType)
	}
}
