package crm

import (
	"context"
	"log"
	"time"

	"github.com/smartleadhq/smart-leads/internal/entity"
	"github.com/smartleadhq/smart-leads/internal/infra/queue"
)

// Sink is the downstream CRM boundary: one verified lead in, one
// acknowledgment out. The handoff is a log line plus a durable queue event
// that the notification worker consumes.
type Sink struct {
	Producer queue.QueueProducerInterface
}

func NewSink(producer queue.QueueProducerInterface) *Sink {
	return &Sink{Producer: producer}
}

func (s *Sink) Forward(ctx context.Context, lead *entity.Lead) error {
	log.Printf("[CRM Sync] Sending verified lead [%s] to Sales Team...", lead.Name)

	if s.Producer == nil {
		return nil
	}

	return s.Producer.PublishLeadSynced(ctx, queue.LeadSyncedPayload{
		LeadID:            lead.ID,
		Name:              lead.Name,
		MostLikelyCountry: lead.MostLikelyCountry,
		ConfidenceScore:   lead.ConfidenceScore,
		ForwardedAt:       time.Now(),
	})
}
