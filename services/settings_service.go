package services

import (
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
	"gorm.io/gorm"
)

// Settings is the typed view over the system_settings key/value table. Each
// field is parsed and validated once at load time; handlers and services
// never see raw setting strings.
type Settings struct {
	PlatformName              string
	SupportEmail              string
	TaskStepNames             []string
	ReferralCommissionPercent float64
	TaskCompletionPoints      int
	MinWithdrawalAmount       float64
}

const (
	settingKeyPlatformName     = "platform_name"
	settingKeySupportEmail     = "support_email"
	settingKeyTaskStepNames    = "task_step_names"
	settingKeyReferralPercent  = "referral_commission_percent"
	settingKeyCompletionPoints = "task_completion_points"
	settingKeyMinWithdrawal    = "min_withdrawal_amount"
)

var (
	settingsCache *Settings
	settingsMu    sync.RWMutex
)

func defaultSettings() *Settings {
	return &Settings{
		PlatformName:              "ReviewFlow",
		SupportEmail:              "support@reviewflow.app",
		TaskStepNames:             []string{"Order Placed", "Delivered", "Review Submitted", "Refund Request"},
		ReferralCommissionPercent: 5,
		TaskCompletionPoints:      10,
		MinWithdrawalAmount:       100,
	}
}

// GetSettings returns the cached settings, loading them from the database on
// first use. InvalidateSettings drops the cache after an admin write.
func GetSettings() *Settings {
	settingsMu.RLock()
	cached := settingsCache
	settingsMu.RUnlock()
	if cached != nil {
		return cached
	}

	loaded := loadSettings(database.DB)

	settingsMu.Lock()
	settingsCache = loaded
	settingsMu.Unlock()
	return loaded
}

func InvalidateSettings() {
	settingsMu.Lock()
	settingsCache = nil
	settingsMu.Unlock()
}

func loadSettings(db *gorm.DB) *Settings {
	s := defaultSettings()

	var rows []models.SystemSetting
	if err := db.Find(&rows).Error; err != nil {
		log.Printf("🔥 Failed to load system settings, using defaults: %v", err)
		return s
	}

	for _, row := range rows {
		switch row.Key {
		case settingKeyPlatformName:
			if row.Value != "" {
				s.PlatformName = row.Value
			}
		case settingKeySupportEmail:
			if strings.Contains(row.Value, "@") {
				s.SupportEmail = row.Value
			}
		case settingKeyTaskStepNames:
			names := strings.Split(row.Value, ",")
			if len(names) == 4 {
				for i := range names {
					names[i] = strings.TrimSpace(names[i])
				}
				s.TaskStepNames = names
			} else {
				log.Printf("Invalid %s setting %q, expected 4 comma-separated names", row.Key, row.Value)
			}
		case settingKeyReferralPercent:
			if v, err := strconv.ParseFloat(row.Value, 64); err == nil && v >= 0 && v <= 100 {
				s.ReferralCommissionPercent = v
			} else {
				log.Printf("Invalid %s setting %q", row.Key, row.Value)
			}
		case settingKeyCompletionPoints:
			if v, err := strconv.Atoi(row.Value); err == nil && v >= 0 {
				s.TaskCompletionPoints = v
			} else {
				log.Printf("Invalid %s setting %q", row.Key, row.Value)
			}
		case settingKeyMinWithdrawal:
			if v, err := strconv.ParseFloat(row.Value, 64); err == nil && v >= 0 {
				s.MinWithdrawalAmount = v
			} else {
				log.Printf("Invalid %s setting %q", row.Key, row.Value)
			}
		}
	}

	return s
}

// UpsertSetting writes one key/value row and drops the settings cache.
func UpsertSetting(key, value string) error {
	var existing models.SystemSetting
	err := database.DB.Where("key = ?", key).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		err = database.DB.Create(&models.SystemSetting{Key: key, Value: value}).Error
	} else if err == nil {
		err = database.DB.Model(&existing).Update("value", value).Error
	}
	if err != nil {
		return err
	}

	InvalidateSettings()
	return nil
}
