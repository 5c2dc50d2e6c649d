package jobs

import (
	"log"

	"github.com/thepalians/reviewflow/database"
	"github.com/thepalians/reviewflow/models"
	"github.com/thepalians/reviewflow/services"
)

// RetryPendingEffects is the cron-side retry path for outbox rows a request
// failed to dispatch inline (email outage, notification failure, restart
// between commit and dispatch). Rows stuck in processing from a dead
// dispatcher are requeued first so they rejoin the pending pool.
func RetryPendingEffects() {
	services.RequeueStaleEffects()

	var pending int64
	database.DB.Model(&models.OutboxEffect{}).
		Where("status = ?", models.EffectStatusPending).
		Count(&pending)
	if pending == 0 {
		return
	}

	log.Printf("Running job: RetryPendingEffects, %d pending...", pending)
	services.DispatchPendingEffects()
}
