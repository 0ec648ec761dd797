package reconcile

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yardbook/internal/core/id"
	"yardbook/internal/core/types"
	"yardbook/internal/domain/cash"
)

type fakeRepo struct {
	records []cash.ExpenseRecord
}

func (f *fakeRepo) SearchExpenses(ctx context.Context, tenantID id.ID, token string) ([]cash.ExpenseRecord, error) {
	lower := strings.ToLower(token)
	var out []cash.ExpenseRecord
	for _, rec := range f.records {
		if rec.TenantID != tenantID {
			continue
		}
		if strings.Contains(strings.ToLower(rec.Name), lower) ||
			strings.Contains(strings.ToLower(rec.Notes), lower) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBySourceDocument(ctx context.Context, tenantID, docID id.ID) ([]cash.ExpenseRecord, error) {
	var out []cash.ExpenseRecord
	for _, rec := range f.records {
		if rec.TenantID == tenantID && rec.SourceDocumentID != nil && *rec.SourceDocumentID == docID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func record(tenantID id.ID, name string, kind cash.ExpenseKind, date time.Time) cash.ExpenseRecord {
	return cash.ExpenseRecord{
		ID:       id.New(),
		TenantID: tenantID,
		Date:     date,
		Name:     name,
		Amount:   types.MustMoney("10.00"),
		Kind:     kind,
	}
}

func TestMatchesReference_Layouts(t *testing.T) {
	tests := []struct {
		name  string
		notes string
		token string
		want  bool
	}{
		{"Bon: 7431", "", "7431", true},
		{"bon 7431", "", "7431", true},
		{"BON:7431 avans", "", "7431", true},
		{"7431", "", "7431", true},
		{"plata fier", "bon: 7431", "7431", true}, // token in notes
		{"Bon: 431", "", "7431", false},
		{"Bon: 7431", "", "", false},
	}

	for _, tt := range tests {
		rec := cash.ExpenseRecord{Name: tt.name, Notes: tt.notes}
		assert.Equal(t, tt.want, MatchesReference(rec, tt.token),
			"name=%q notes=%q token=%q", tt.name, tt.notes, tt.token)
	}
}

func TestLinkedPayments_FiltersKindAndOrdersByDate(t *testing.T) {
	tenantID := id.New()
	d1 := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 3)
	d3 := d1.AddDate(0, 0, 7)

	repo := &fakeRepo{records: []cash.ExpenseRecord{
		record(tenantID, "Bon: 7431 rest", cash.KindPayment, d3),
		record(tenantID, "bon 7431 avans", cash.KindPayment, d1),
		record(tenantID, "Bon: 7431", cash.KindCollection, d2), // wrong kind
		record(tenantID, "Bon: 9999", cash.KindPayment, d2),    // wrong token
		record(id.New(), "Bon: 7431", cash.KindPayment, d2),    // other tenant
	}}
	svc := NewService(repo)

	got, err := svc.LinkedPayments(context.Background(), tenantID, "7431")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, d1, got[0].Date, "ascending by date")
	assert.Equal(t, d3, got[1].Date)
}

func TestLinkedCollections_EmptyTokenReturnsNothing(t *testing.T) {
	tenantID := id.New()
	repo := &fakeRepo{records: []cash.ExpenseRecord{
		record(tenantID, "Bon: 7431", cash.KindCollection, time.Now()),
	}}
	svc := NewService(repo)

	got, err := svc.LinkedCollections(context.Background(), tenantID, "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecordsForDocument_ExplicitLinkOnly(t *testing.T) {
	tenantID := id.New()
	docID := id.New()
	d1 := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	linked1 := record(tenantID, "Bon: 7431", cash.KindPayment, d2)
	linked1.SourceDocumentID = &docID
	linked2 := record(tenantID, "Bon: 7431 avans", cash.KindPayment, d1)
	linked2.SourceDocumentID = &docID
	legacy := record(tenantID, "Bon: 7431", cash.KindPayment, d1) // no FK, legacy row

	repo := &fakeRepo{records: []cash.ExpenseRecord{linked1, linked2, legacy}}
	svc := NewService(repo)

	got, err := svc.RecordsForDocument(context.Background(), tenantID, docID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, d1, got[0].Date)
	assert.Equal(t, d2, got[1].Date)
}
