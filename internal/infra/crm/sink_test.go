package crm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/smartleadhq/smart-leads/internal/entity"
	"github.com/smartleadhq/smart-leads/internal/infra/crm"
	"github.com/smartleadhq/smart-leads/internal/infra/queue"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishLeadSynced(ctx context.Context, payload queue.LeadSyncedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func TestForward_PublishesLeadSyncedEvent(t *testing.T) {
	producer := new(MockProducer)
	sink := crm.NewSink(producer)

	lead, _ := entity.NewLead("Ahmed", "NG", 0.82)
	producer.On("PublishLeadSynced", mock.Anything, mock.MatchedBy(func(p queue.LeadSyncedPayload) bool {
		return p.LeadID == lead.ID &&
			p.Name == "Ahmed" &&
			p.MostLikelyCountry == "NG" &&
			p.ConfidenceScore == 82 &&
			!p.ForwardedAt.IsZero()
	})).Return(nil)

	assert.NoError(t, sink.Forward(context.Background(), lead))
	producer.AssertExpectations(t)
}

func TestForward_PublishFailureIsSinkFailure(t *testing.T) {
	producer := new(MockProducer)
	sink := crm.NewSink(producer)

	lead, _ := entity.NewLead("Ahmed", "NG", 0.82)
	producer.On("PublishLeadSynced", mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	assert.Error(t, sink.Forward(context.Background(), lead))
}

func TestForward_NilProducerIsLogOnly(t *testing.T) {
	sink := crm.NewSink(nil)

	lead, _ := entity.NewLead("Ahmed", "NG", 0.82)
	assert.NoError(t, sink.Forward(context.Background(), lead))
}
