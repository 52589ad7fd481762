package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/smartleadhq/smart-leads/internal/entity"
)

var ErrLeadNotFound = errors.New("lead not found")

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, name, most_likely_country, probability, confidence_score, status, synced, synced_at, created_at`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.MostLikelyCountry,
		lead.Probability,
		lead.ConfidenceScore,
		lead.Status,
		lead.Synced,
		lead.SyncedAt,
		lead.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}

	return nil
}

// Find returns leads newest-first, optionally filtered by exact status.
func (r *LeadRepository) Find(ctx context.Context, status string) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads`
	args := []interface{}{}

	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lead: %w", err)
	}

	return lead, nil
}

// FindUnsyncedVerified is the sync cycle's sole selection predicate.
func (r *LeadRepository) FindUnsyncedVerified(ctx context.Context) ([]*entity.Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM leads
		WHERE status = $1 AND synced = FALSE
		ORDER BY created_at ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, entity.StatusVerified)
	if err != nil {
		return nil, fmt.Errorf("failed to query unsynced leads: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// MarkSynced flips synced exactly once: the WHERE synced = FALSE guard makes
// the update a claim, so a competing cycle racing the same lead loses here
// instead of double-marking.
func (r *LeadRepository) MarkSynced(ctx context.Context, id string, at time.Time) (bool, error) {
	query := `
		UPDATE leads
		SET synced = TRUE, synced_at = $2
		WHERE id = $1 AND synced = FALSE
	`

	res, err := r.DB.ExecContext(ctx, query, id, at)
	if err != nil {
		return false, fmt.Errorf("failed to mark lead as synced: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var syncedAt sql.NullTime

	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.MostLikelyCountry,
		&lead.Probability,
		&lead.ConfidenceScore,
		&lead.Status,
		&lead.Synced,
		&syncedAt,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if syncedAt.Valid {
		lead.SyncedAt = &syncedAt.Time
	}

	return &lead, nil
}

func scanLeads(rows *sql.Rows) ([]*entity.Lead, error) {
	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}
