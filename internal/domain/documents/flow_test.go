package documents_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/id"
	"yardbook/internal/core/types"
	"yardbook/internal/domain"
	"yardbook/internal/domain/cash"
	"yardbook/internal/domain/catalogs/partner"
	"yardbook/internal/domain/documents"
	"yardbook/internal/domain/documents/acquisition"
	"yardbook/internal/domain/documents/sale"
	"yardbook/internal/domain/ledger"
)

// The fixtures below drive both document services against one shared
// in-memory ledger, the way the real services share one stock table.

type memLedger struct {
	balances map[string]types.Quantity
}

func (m *memLedger) Adjust(ctx context.Context, key ledger.Key, delta types.Quantity) (ledger.StockEntry, error) {
	m.balances[key.String()] += delta
	return ledger.StockEntry{Quantity: m.balances[key.String()]}, nil
}

func (m *memLedger) GetQuantity(ctx context.Context, key ledger.Key) (types.Quantity, error) {
	return m.balances[key.String()], nil
}

type memPayments struct {
	recorded []cash.DocumentPayment
}

func (m *memPayments) RecordDocumentPayment(ctx context.Context, p cash.DocumentPayment) error {
	m.recorded = append(m.recorded, p)
	return nil
}

type memPartners struct{}

func (memPartners) GetByID(ctx context.Context, partnerID id.ID) (*partner.Partner, error) {
	return nil, apperror.NewNotFound("partner", partnerID.String())
}

type memNumerator struct {
	next int
}

func (m *memNumerator) NextNumber(ctx context.Context, tenantID id.ID, prefix string, period time.Time) (string, error) {
	m.next++
	return fmt.Sprintf("%s-%d-%05d", prefix, period.Year(), m.next), nil
}

type memTx struct{}

func (memTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memAcqRepo struct {
	docs  map[id.ID]*acquisition.Document
	lines map[id.ID][]acquisition.Line
}

func (r *memAcqRepo) Create(ctx context.Context, doc *acquisition.Document) error {
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memAcqRepo) GetByID(ctx context.Context, docID id.ID) (*acquisition.Document, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("acquisition", docID.String())
	}
	cp := *doc
	return &cp, nil
}

func (r *memAcqRepo) Update(ctx context.Context, doc *acquisition.Document) error {
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memAcqRepo) Delete(ctx context.Context, docID id.ID) error {
	delete(r.docs, docID)
	return nil
}

func (r *memAcqRepo) GetLines(ctx context.Context, docID id.ID) ([]acquisition.Line, error) {
	return r.lines[docID], nil
}

func (r *memAcqRepo) SaveLines(ctx context.Context, docID id.ID, lines []acquisition.Line) error {
	r.lines[docID] = append([]acquisition.Line(nil), lines...)
	return nil
}

func (r *memAcqRepo) DeleteLines(ctx context.Context, docID id.ID) error {
	delete(r.lines, docID)
	return nil
}

func (r *memAcqRepo) List(ctx context.Context, tenantID id.ID, filter acquisition.ListFilter) (domain.ListResult[*acquisition.Document], error) {
	return domain.ListResult[*acquisition.Document]{}, nil
}

type memSaleRepo struct {
	docs  map[id.ID]*sale.Document
	lines map[id.ID][]sale.Line
}

func (r *memSaleRepo) Create(ctx context.Context, doc *sale.Document) error {
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memSaleRepo) GetByID(ctx context.Context, docID id.ID) (*sale.Document, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("sale", docID.String())
	}
	cp := *doc
	return &cp, nil
}

func (r *memSaleRepo) Update(ctx context.Context, doc *sale.Document) error {
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memSaleRepo) Delete(ctx context.Context, docID id.ID) error {
	delete(r.docs, docID)
	return nil
}

func (r *memSaleRepo) GetLines(ctx context.Context, docID id.ID) ([]sale.Line, error) {
	return r.lines[docID], nil
}

func (r *memSaleRepo) SaveLines(ctx context.Context, docID id.ID, lines []sale.Line) error {
	r.lines[docID] = append([]sale.Line(nil), lines...)
	return nil
}

func (r *memSaleRepo) DeleteLines(ctx context.Context, docID id.ID) error {
	delete(r.lines, docID)
	return nil
}

func (r *memSaleRepo) List(ctx context.Context, tenantID id.ID, filter sale.ListFilter) (domain.ListResult[*sale.Document], error) {
	return domain.ListResult[*sale.Document]{}, nil
}

// TestCopperFlow walks a material through the full document lifecycle:
// buy 100 kg at 10% impurity, sell 50 kg gross with 2 kg impurity,
// then void the sale.
func TestCopperFlow(t *testing.T) {
	ctx := context.Background()
	led := &memLedger{balances: make(map[string]types.Quantity)}
	payments := &memPayments{}
	gen := &memNumerator{}

	acqSvc := acquisition.NewService(
		&memAcqRepo{docs: make(map[id.ID]*acquisition.Document), lines: make(map[id.ID][]acquisition.Line)},
		led, payments, memPartners{}, gen, memTx{},
		documents.DefaultAcquisitionPolicy(),
	)
	saleSvc := sale.NewService(
		&memSaleRepo{docs: make(map[id.ID]*sale.Document), lines: make(map[id.ID][]sale.Line)},
		led, payments, gen, memTx{},
		documents.DefaultSalePolicy(),
	)

	tenantID := id.New()
	copperID := id.New()
	yard := ledger.YardKey(tenantID, copperID)

	// Acquisition: 100 kg gross at 10% impurity posts 90 kg.
	acq := acquisition.New(tenantID, id.New(), ledger.LocationYard)
	acq.AddLine(copperID, types.NewQuantityFromFloat64(100), decimal.NewFromInt(10), types.MustMoney("5.00"), "")
	require.NoError(t, acqSvc.Create(ctx, acq))

	q, _ := led.GetQuantity(ctx, yard)
	assert.Equal(t, types.NewQuantityFromFloat64(90), q)

	// Sale: 50 kg gross minus 2 kg impurity draws 48 kg.
	sl := sale.New(tenantID, id.New())
	sl.AddLine(copperID, types.NewQuantityFromFloat64(50), types.NewQuantityFromFloat64(2), types.MustMoney("6.00"))
	require.NoError(t, saleSvc.Create(ctx, sl))

	q, _ = led.GetQuantity(ctx, yard)
	assert.Equal(t, types.NewQuantityFromFloat64(42), q)

	// Voiding the sale puts the 48 kg back; the acquisition's 90 kg stands.
	require.NoError(t, saleSvc.Delete(ctx, sl.ID))

	q, _ = led.GetQuantity(ctx, yard)
	assert.Equal(t, types.NewQuantityFromFloat64(90), q)

	// Deleting the acquisition does not take its stock back out.
	require.NoError(t, acqSvc.Delete(ctx, acq.ID))

	q, _ = led.GetQuantity(ctx, yard)
	assert.Equal(t, types.NewQuantityFromFloat64(90), q)
}

func TestEmitPayment(t *testing.T) {
	tests := []struct {
		prev, next      documents.PaymentStatus
		partialPositive bool
		want            bool
	}{
		{documents.PaymentUnpaid, documents.PaymentPaid, false, true},
		{documents.PaymentUnpaid, documents.PaymentPartial, true, true},
		{documents.PaymentUnpaid, documents.PaymentUnpaid, false, false},
		{documents.PaymentPaid, documents.PaymentPaid, false, false},
		{documents.PaymentPartial, documents.PaymentPartial, true, true},
		{documents.PaymentPartial, documents.PaymentPartial, false, false},
		{documents.PaymentPartial, documents.PaymentPaid, false, false},
	}

	for _, tt := range tests {
		got := documents.EmitPayment(tt.prev, tt.next, tt.partialPositive)
		assert.Equal(t, tt.want, got, "%s -> %s partial=%v", tt.prev, tt.next, tt.partialPositive)
	}
}
