// Package reconcile links cash and expense records back to the business
// documents that produced them. Two mechanisms coexist: the explicit
// source_document_id written by new code, and legacy text matching on the
// reference token embedded in free-text fields for rows recorded before the
// link column existed.
package reconcile

import (
	"context"
	"sort"
	"strings"

	"yardbook/internal/core/id"
	"yardbook/internal/domain/cash"
)

// Repository reads expense records for reconciliation.
type Repository interface {
	// SearchExpenses returns a coarse candidate set: every expense record of
	// the tenant whose name or notes contains the token, case-insensitive.
	// The exact layout match happens in Go.
	SearchExpenses(ctx context.Context, tenantID id.ID, token string) ([]cash.ExpenseRecord, error)

	// ListBySourceDocument returns records explicitly linked to a document.
	ListBySourceDocument(ctx context.Context, tenantID, docID id.ID) ([]cash.ExpenseRecord, error)
}

// Service answers "which payments belong to this ticket" queries.
// It only reads, never writes.
type Service struct {
	repo Repository
}

// NewService creates a reconciliation service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// LinkedPayments returns payment records matching the reference token,
// ordered by date ascending.
func (s *Service) LinkedPayments(ctx context.Context, tenantID id.ID, token string) ([]cash.ExpenseRecord, error) {
	return s.linked(ctx, tenantID, token, cash.KindPayment)
}

// LinkedCollections returns collection records matching the reference token,
// ordered by date ascending.
func (s *Service) LinkedCollections(ctx context.Context, tenantID id.ID, token string) ([]cash.ExpenseRecord, error) {
	return s.linked(ctx, tenantID, token, cash.KindCollection)
}

func (s *Service) linked(ctx context.Context, tenantID id.ID, token string, kind cash.ExpenseKind) ([]cash.ExpenseRecord, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}

	candidates, err := s.repo.SearchExpenses(ctx, tenantID, token)
	if err != nil {
		return nil, err
	}

	matched := make([]cash.ExpenseRecord, 0, len(candidates))
	for _, rec := range candidates {
		if rec.Kind != kind {
			continue
		}
		if MatchesReference(rec, token) {
			matched = append(matched, rec)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date)
	})

	return matched, nil
}

// RecordsForDocument returns expense records explicitly linked to the
// document through source_document_id. Rows written before the link column
// existed are only reachable through the token search.
func (s *Service) RecordsForDocument(ctx context.Context, tenantID, docID id.ID) ([]cash.ExpenseRecord, error) {
	records, err := s.repo.ListBySourceDocument(ctx, tenantID, docID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	return records, nil
}

// MatchesReference reports whether a record's free text carries the
// reference token. The yard's clerks have written the reference in a
// handful of layouts over the years ("Bon: 123", "bon 123", bare "123"),
// so the match is a case-insensitive substring check over name and notes.
func MatchesReference(rec cash.ExpenseRecord, token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return false
	}

	for _, field := range []string{rec.Name, rec.Notes} {
		if strings.Contains(strings.ToLower(field), token) {
			return true
		}
	}
	return false
}
