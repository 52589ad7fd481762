package worker

import (
	"context"
	"log"
	"time"

	"github.com/smartleadhq/smart-leads/internal/infra/http/middleware"
	"github.com/smartleadhq/smart-leads/internal/usecase"
)

const defaultTickInterval = 5 * time.Minute

// SyncWorker is the internal recurring trigger for the CRM sync cycle. It
// shares the SyncLeadsUseCase instance with the cron endpoint.
type SyncWorker struct {
	uc           *usecase.SyncLeadsUseCase
	tickInterval time.Duration
}

func NewSyncWorker(uc *usecase.SyncLeadsUseCase, tickInterval time.Duration) *SyncWorker {
	if tickInterval <= 0 {
		tickInterval = defaultTickInterval
	}
	return &SyncWorker{
		uc:           uc,
		tickInterval: tickInterval,
	}
}

func (w *SyncWorker) Interval() time.Duration {
	return w.tickInterval
}

func (w *SyncWorker) Start(ctx context.Context) {
	log.Printf("🕒 CRM sync worker started (every %s)", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	// Drain whatever is already eligible before the first tick.
	w.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ CRM sync worker stopped")
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *SyncWorker) runCycle(ctx context.Context) {
	output, err := w.uc.Execute(ctx)
	if err != nil {
		log.Printf("❌ [SYNC] background cycle failed: %v", err)
		return
	}

	middleware.RecordSyncCycle(output.SyncedCount)

	if output.SyncedCount > 0 || !output.Success {
		log.Printf("🔄 [SYNC] %s", output.Message)
	}
}
