package workers

import (
	"context"
	"time"

	"concierge_backend/internal/logger"
	"concierge_backend/internal/services"

	"gorm.io/gorm"
)

// SubscriptionWorker periodically cancels ACTIVE subscriptions whose paid
// period has lapsed. It is a safety net for missed webhook deliveries.
type SubscriptionWorker struct {
	db                  *gorm.DB
	subscriptionService services.SubscriptionService
	interval            time.Duration
}

func NewSubscriptionWorker(db *gorm.DB, subscriptionService services.SubscriptionService) *SubscriptionWorker {
	return &SubscriptionWorker{
		db:                  db,
		subscriptionService: subscriptionService,
		interval:            6 * time.Hour,
	}
}

// Start runs the sweep loop until ctx is cancelled. One sweep fires
// immediately on startup.
func (w *SubscriptionWorker) Start(ctx context.Context) {
	logger.Info("subscription worker started", "interval", w.interval.String())

	w.sweep()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("subscription worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *SubscriptionWorker) sweep() {
	expired, err := w.subscriptionService.ExpireLapsed(w.db, time.Now())
	if err != nil {
		logger.Error("subscription sweep failed", "error", err)
		return
	}
	if expired > 0 {
		logger.Info("subscription sweep done", "expired", expired)
	}
}
