package entity

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	// IMPORTANTE: no usecase or infra imports here!
)

const (
	StatusVerified = "Verified"
	StatusToCheck  = "To Check"
)

// Sentinel countries for leads the oracle could not resolve.
const (
	CountryUnknown = "Unknown"
	CountryError   = "Error"
)

// VerifiedThreshold is the minimum top-country probability for a Verified lead.
const VerifiedThreshold = 0.6

type Lead struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	MostLikelyCountry string     `json:"mostLikelyCountry"`
	Probability       float64    `json:"probability"`
	ConfidenceScore   int        `json:"confidenceScore"`
	Status            string     `json:"status"` // Verified, To Check
	Synced            bool       `json:"synced"`
	SyncedAt          *time.Time `json:"syncedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	Find(ctx context.Context, status string) ([]*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindUnsyncedVerified(ctx context.Context) ([]*Lead, error)

	// MarkSynced flips synced=true only if the lead is still unsynced and
	// reports whether this caller won the claim.
	MarkSynced(ctx context.Context, id string, at time.Time) (bool, error)
}

// Factory
func NewLead(name, country string, probability float64) (*Lead, error) {
	lead := &Lead{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(name),
		MostLikelyCountry: country,
		Probability:       probability,
		ConfidenceScore:   int(math.Round(probability * 100)),
		Status:            StatusToCheck,
		Synced:            false,
		CreatedAt:         time.Now(),
	}

	if probability >= VerifiedThreshold {
		lead.Status = StatusVerified
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

// NewDegradedLead builds the placeholder lead for a name the oracle failed on
// (CountryError) or returned no candidates for (CountryUnknown).
func NewDegradedLead(name, sentinel string) *Lead {
	return &Lead{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(name),
		MostLikelyCountry: sentinel,
		Probability:       0,
		ConfidenceScore:   0,
		Status:            StatusToCheck,
		Synced:            false,
		CreatedAt:         time.Now(),
	}
}

func (l *Lead) Validate() error {
	if l.Name == "" {
		return errors.New("name is required")
	}
	if l.MostLikelyCountry == "" {
		return errors.New("most likely country is required")
	}
	if l.Probability < 0 || l.Probability > 1 {
		return errors.New("probability must be between 0 and 1")
	}
	if l.ConfidenceScore < 0 || l.ConfidenceScore > 100 {
		return errors.New("confidence score must be between 0 and 100")
	}
	if l.Status != StatusVerified && l.Status != StatusToCheck {
		return errors.New("status must be Verified or To Check")
	}
	return nil
}
