package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/smartleadhq/smart-leads/internal/entity"
)

type SyncLeadsOutput struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	SyncedCount int    `json:"syncedCount"`
}

// SyncLeadsUseCase runs the select-forward-mark cycle over verified unsynced
// leads. The periodic worker and the cron endpoint share one instance; the
// mutex keeps their cycles from interleaving over the same selection.
type SyncLeadsUseCase struct {
	mu   sync.Mutex
	Repo entity.LeadRepositoryInterface
	Sink CRMSink
}

func NewSyncLeadsUseCase(repo entity.LeadRepositoryInterface, sink CRMSink) *SyncLeadsUseCase {
	return &SyncLeadsUseCase{
		Repo: repo,
		Sink: sink,
	}
}

func (uc *SyncLeadsUseCase) Execute(ctx context.Context) (*SyncLeadsOutput, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	leads, err := uc.Repo.FindUnsyncedVerified(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodePersistenceFailure,
			Message: "failed to query leads to sync: " + err.Error(),
		}
	}

	log.Printf("🔄 [SYNC] Found %d verified lead(s) to sync", len(leads))

	if len(leads) == 0 {
		return &SyncLeadsOutput{
			Success:     true,
			Message:     "No leads to sync",
			SyncedCount: 0,
		}, nil
	}

	synced := 0
	failed := 0
	for _, lead := range leads {
		// Forward-then-mark, per record. A failure here leaves the lead
		// unsynced so the next cycle retries it.
		if err := uc.Sink.Forward(ctx, lead); err != nil {
			log.Printf("❌ [SYNC] forward failed for lead %s (%s): %v", lead.ID, lead.Name, err)
			failed++
			continue
		}

		now := time.Now()
		claimed, err := uc.Repo.MarkSynced(ctx, lead.ID, now)
		if err != nil {
			// The lead reached the sink but is still unsynced; the next
			// cycle will forward it again.
			log.Printf("❌ [SYNC] failed to mark lead %s as synced: %v", lead.ID, err)
			failed++
			continue
		}
		if !claimed {
			log.Printf("⚠️ [SYNC] lead %s was already synced by a competing cycle", lead.ID)
			continue
		}

		lead.Synced = true
		lead.SyncedAt = &now
		synced++
	}

	out := &SyncLeadsOutput{
		Success:     failed == 0,
		SyncedCount: synced,
	}
	if failed > 0 {
		out.Message = fmt.Sprintf("Synced %d lead(s), %d failed and will be retried", synced, failed)
	} else {
		out.Message = fmt.Sprintf("Successfully synced %d lead(s)", synced)
	}

	return out, nil
}
