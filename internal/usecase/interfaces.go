package usecase

import (
	"context"

	"github.com/smartleadhq/smart-leads/internal/entity"
	"github.com/smartleadhq/smart-leads/internal/infra/integration/nationalize"
)

// NationalityGateway is the external oracle returning a probability
// distribution over countries for a name. One attempt per lookup; retry
// policy, if any, belongs to the caller.
type NationalityGateway interface {
	Lookup(ctx context.Context, name string) ([]nationalize.CountryProbability, error)
}

// CRMSink receives one verified lead at a time during a sync cycle.
type CRMSink interface {
	Forward(ctx context.Context, lead *entity.Lead) error
}
