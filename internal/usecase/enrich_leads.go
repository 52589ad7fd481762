package usecase

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/smartleadhq/smart-leads/internal/entity"
)

type EnrichLeadsInput struct {
	Names []string `json:"names"`
}

type EnrichLeadsOutput struct {
	Count int            `json:"count"`
	Leads []*entity.Lead `json:"data"`
}

type EnrichLeadsUseCase struct {
	Repo   entity.LeadRepositoryInterface
	Oracle NationalityGateway
}

func NewEnrichLeadsUseCase(repo entity.LeadRepositoryInterface, oracle NationalityGateway) *EnrichLeadsUseCase {
	return &EnrichLeadsUseCase{
		Repo:   repo,
		Oracle: oracle,
	}
}

// Execute enriches a batch of names. Every unique trimmed name yields exactly
// one lead: oracle failures and empty results become degraded leads instead of
// failing the batch. Only a malformed batch or a save failure aborts.
func (uc *EnrichLeadsUseCase) Execute(ctx context.Context, input EnrichLeadsInput) (*EnrichLeadsOutput, error) {
	names := normalizeNames(input.Names)
	if len(names) == 0 {
		return nil, &DomainError{
			Code:    CodeInvalidInput,
			Message: "please provide an array of names",
		}
	}

	// One lookup per unique name, all in flight at once. Each goroutine owns
	// its slot in the results slice, so no locking within the batch.
	results := make([]*entity.Lead, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			results[i] = uc.enrichOne(ctx, name)
		}(i, name)
	}
	wg.Wait()

	// Best-effort persistence: earlier saves survive a later failure.
	saved := make([]*entity.Lead, 0, len(results))
	for _, lead := range results {
		if err := uc.Repo.Create(ctx, lead); err != nil {
			log.Printf("❌ [ENRICH] failed to save lead %q: %v", lead.Name, err)
			return nil, &TechnicalError{
				Code:    CodePersistenceFailure,
				Message: "failed to save lead " + lead.Name + ": " + err.Error(),
			}
		}
		saved = append(saved, lead)
	}

	return &EnrichLeadsOutput{
		Count: len(saved),
		Leads: saved,
	}, nil
}

func (uc *EnrichLeadsUseCase) enrichOne(ctx context.Context, name string) *entity.Lead {
	countries, err := uc.Oracle.Lookup(ctx, name)
	if err != nil {
		log.Printf("⚠️ [ENRICH] oracle lookup failed for %q: %v", name, err)
		return entity.NewDegradedLead(name, entity.CountryError)
	}

	if len(countries) == 0 {
		return entity.NewDegradedLead(name, entity.CountryUnknown)
	}

	// First occurrence wins on equal top probabilities.
	top := countries[0]
	for _, c := range countries[1:] {
		if c.Probability > top.Probability {
			top = c
		}
	}

	lead, err := entity.NewLead(name, top.CountryID, top.Probability)
	if err != nil {
		// Oracle returned an out-of-range candidate; degrade rather than abort.
		log.Printf("⚠️ [ENRICH] invalid oracle candidate for %q: %v", name, err)
		return entity.NewDegradedLead(name, entity.CountryError)
	}

	return lead
}

// normalizeNames trims, drops empties and dedupes by exact string equality,
// keeping the first occurrence. Case is preserved as-is.
func normalizeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	unique := make([]string, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}
	return unique
}
