// Package numerator provides document auto-numbering.
// Numbers are monotonic per (tenant, prefix, year): every call does an
// atomic upsert-increment on the sequence table, with no in-memory state to
// lose on restart. Numbers are drawn before the document transaction opens,
// so a create that fails afterwards leaves a gap in the sequence.
package numerator

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"yardbook/internal/core/id"
)

// Generator produces document numbers.
type Generator interface {
	// NextNumber generates the next document number for the tenant.
	// Pattern: PREFIX-YEAR-XXXXX (e.g., ACH-2026-00012).
	NextNumber(ctx context.Context, tenantID id.ID, prefix string, period time.Time) (string, error)
}

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Config holds numbering configuration.
type Config struct {
	// PadWidth is the minimum number width (default 5)
	PadWidth int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{PadWidth: 5}
}

// Service provides document numbering backed by the doc_sequences table.
type Service struct {
	querier Querier
	cfg     Config
}

// New creates a new numerator service.
func New(querier Querier, cfg Config) *Service {
	if cfg.PadWidth <= 0 {
		cfg.PadWidth = 5
	}
	return &Service{querier: querier, cfg: cfg}
}

const nextValSQL = `
	INSERT INTO doc_sequences (tenant_id, seq_key, current_val)
	VALUES ($1, $2, 1)
	ON CONFLICT (tenant_id, seq_key)
	DO UPDATE SET current_val = doc_sequences.current_val + 1
	RETURNING current_val
`

// NextNumber implements Generator.
func (s *Service) NextNumber(ctx context.Context, tenantID id.ID, prefix string, period time.Time) (string, error) {
	if s == nil || s.querier == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}
	if prefix == "" {
		return "", fmt.Errorf("numerator prefix is required")
	}

	year := period.Year()
	key := fmt.Sprintf("%s_%d", prefix, year)

	var current int64
	if err := s.querier.QueryRow(ctx, nextValSQL, tenantID, key).Scan(&current); err != nil {
		return "", fmt.Errorf("next sequence value for %s: %w", key, err)
	}

	return fmt.Sprintf("%s-%d-%0*d", prefix, year, s.cfg.PadWidth, current), nil
}

// Ensure interface compliance.
var _ Generator = (*Service)(nil)
