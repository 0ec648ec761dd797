package acquisition

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
	"yardbook/internal/domain/ledger"
)

// --- fakes ---

type fakeLedger struct {
	balances map[string]types.Quantity
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{balances: make(map[string]types.Quantity)}
}

func (f *fakeLedger) Adjust(ctx context.Context, key ledger.Key, delta types.Quantity) (ledger.StockEntry, error) {
	f.balances[key.String()] += delta
	return ledger.StockEntry{
		TenantID:   key.TenantID,
		MaterialID: key.MaterialID,
		Location:   key.Location,
		ContractID: key.ContractID,
		Quantity:   f.balances[key.String()],
	}, nil
}

func (f *fakeLedger) GetQuantity(ctx context.Context, key ledger.Key) (types.Quantity, error) {
	return f.balances[key.String()], nil
}

type fakePayments struct {
	recorded []cash.DocumentPayment
}

func (f *fakePayments) RecordDocumentPayment(ctx context.Context, p cash.DocumentPayment) error {
	f.recorded = append(f.recorded, p)
	return nil
}

type fakePartners struct {
	partners map[id.ID]*partner.Partner
}

func (f *fakePartners) GetByID(ctx context.Context, partnerID id.ID) (*partner.Partner, error) {
	if p, ok := f.partners[partnerID]; ok {
		return p, nil
	}
	return nil, apperror.NewNotFound("partner", partnerID.String())
}

type fakeNumerator struct {
	next int
}

func (f *fakeNumerator) NextNumber(ctx context.Context, tenantID id.ID, prefix string, period time.Time) (string, error) {
	f.next++
	return fmt.Sprintf("%s-%d-%05d", prefix, period.Year(), f.next), nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	docs  map[id.ID]*Document
	lines map[id.ID][]Line
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[id.ID]*Document), lines: make(map[id.ID][]Line)}
}

func (f *fakeRepo) Create(ctx context.Context, doc *Document) error {
	cp := *doc
	f.docs[doc.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, docID id.ID) (*Document, error) {
	doc, ok := f.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("acquisition", docID.String())
	}
	cp := *doc
	return &cp, nil
}

func (f *fakeRepo) Update(ctx context.Context, doc *Document) error {
	if _, ok := f.docs[doc.ID]; !ok {
		return apperror.NewNotFound("acquisition", doc.ID.String())
	}
	cp := *doc
	f.docs[doc.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, docID id.ID) error {
	delete(f.docs, docID)
	return nil
}

func (f *fakeRepo) GetLines(ctx context.Context, docID id.ID) ([]Line, error) {
	return f.lines[docID], nil
}

func (f *fakeRepo) SaveLines(ctx context.Context, docID id.ID, lines []Line) error {
	f.lines[docID] = append([]Line(nil), lines...)
	return nil
}

func (f *fakeRepo) DeleteLines(ctx context.Context, docID id.ID) error {
	delete(f.lines, docID)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, tenantID id.ID, filter ListFilter) (domain.ListResult[*Document], error) {
	var items []*Document
	for _, doc := range f.docs {
		if doc.TenantID == tenantID {
			items = append(items, doc)
		}
	}
	return domain.ListResult[*Document]{Items: items, TotalCount: int64(len(items))}, nil
}

type fixture struct {
	svc      *Service
	repo     *fakeRepo
	ledger   *fakeLedger
	payments *fakePayments
	partners *fakePartners
}

func newFixture(policy documents.ReversalPolicy) *fixture {
	repo := newFakeRepo()
	led := newFakeLedger()
	pay := &fakePayments{}
	par := &fakePartners{partners: make(map[id.ID]*partner.Partner)}
	svc := NewService(repo, led, pay, par, &fakeNumerator{}, fakeTxManager{}, policy)
	return &fixture{svc: svc, repo: repo, ledger: led, payments: pay, partners: par}
}

// --- tests ---

func TestLineNetQuantity(t *testing.T) {
	line := Line{
		GrossQuantity:   types.NewQuantityFromFloat64(100),
		ImpurityPercent: decimal.NewFromInt(10),
	}
	assert.Equal(t, types.NewQuantityFromFloat64(90), line.NetQuantity())

	line.ImpurityPercent = decimal.Zero
	assert.Equal(t, types.NewQuantityFromFloat64(100), line.NetQuantity())

	line.ImpurityPercent = decimal.NewFromInt(100)
	assert.True(t, line.NetQuantity().IsZero())
}

func TestCreate_PostsNetPerLine(t *testing.T) {
	f := newFixture(documents.DefaultAcquisitionPolicy())
	ctx := context.Background()
	tenantID := id.New()
	copperID := id.New()
	brassID := id.New()

	doc := New(tenantID, id.New(), ledger.LocationYard)
	doc.Date = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	doc.AddLine(copperID, types.NewQuantityFromFloat64(100), decimal.NewFromInt(10), types.MustMoney("5.00"), "")
	doc.AddLine(brassID, types.NewQuantityFromFloat64(40), decimal.Zero, types.MustMoney("2.00"), "")

	require.NoError(t, f.svc.Create(ctx, doc))

	assert.Equal(t, "ACH-2026-00001", doc.Number)

	copper, _ := f.ledger.GetQuantity(ctx, ledger.YardKey(tenantID, copperID))
	assert.Equal(t, types.NewQuantityFromFloat64(90), copper)
	brass, _ := f.ledger.GetQuantity(ctx, ledger.YardKey(tenantID, brassID))
	assert.Equal(t, types.NewQuantityFromFloat64(40), brass)
}

func TestCreate_ContractLocationPostsContractStock(t *testing.T) {
	f := newFixture(documents.DefaultAcquisitionPolicy())
	ctx := context.Background()
	tenantID := id.New()
	materialID := id.New()
	contractID := id.New()

	doc := New(tenantID, id.New(), ledger.LocationContract)
	doc.ContractID = &contractID
	doc.AddLine(materialID, types.NewQuantityFromFloat64(50), decimal.Zero, types.MustMoney("1.00"), "")

	require.NoError(t, f.svc.Create(ctx, doc))

	contract, _ := f.ledger.GetQuantity(ctx, ledger.ContractKey(tenantID, materialID, contractID))
	assert.Equal(t, types.NewQuantityFromFloat64(50), contract)
	yard, _ := f.ledger.GetQuantity(ctx, ledger.YardKey(tenantID, materialID))
	assert.True(t, yard.IsZero())
}

func TestCreate_UnpaidEmitsNoPayment(t *testing.T) {
	f := newFixture(documents.DefaultAcquisitionPolicy())

	doc := New(id.New(), id.New(), ledger.LocationYard)
	doc.AddLine(id.New(), types.NewQuantityFromFloat64(10), decimal.Zero, types.MustMoney("3.00"), "")

	require.NoError(t, f.svc.Create(context.Background(), doc))
	assert.Empty(t, f.payments.recorded)
}

func TestCreate_PaidEmitsPaymentWithTotal(t *testing.T) {
	f := newFixture(documents.DefaultAcquisitionPolicy())

	doc := New(id.New(), id.New(), ledger.LocationYard)
	doc.ReceiptNumber = "7431"
	doc.PaymentStatus = documents.PaymentPaid
	doc.AddLine(id.New(), types.NewQuantityFromFloat64(100), decimal.NewFromInt(10), types.MustMoney("5.00"), "")

	require.NoError(t, f.svc.Create(context.Background(), doc))

	require.Len(t, f.payments.recorded, 1)
	p := f.payments.recorded[0]
	assert.Equal(t, cash.KindPayment, p.Kind)
	assert.Equal(t, cash.SourceAcquisition, p.SourceType)
	assert.Equal(t, doc.ID, p.SourceDocumentID)
	assert.Equal(t, "7431", p.Reference)
	assert.True(t, p.Amount.Equal(types.MustMoney("450.00")), "90 kg x 5.00, got %s", p.Amount)
}

func TestCreate_PartialEmitsInstallmentAmount(t *testing.T) {
	f := newFixture(documents.DefaultAcquisitionPolicy())

	doc := New(id.New(), id.New(), ledger.LocationYard)
	doc.PaymentStatus = documents.PaymentPartial
	doc.PartialAmount = types.MustMoney("120.00")
	doc.AddLine(id.New(), types.NewQuantityFromFloat64(100), decimal.Zero, types.MustMoney("5.00"), "")

	require.NoError(t, f.svc.Create(context.Background(), doc))

	require.Len(t, f.payments.recorded, 1)
	assert.True(t, f.payments.recorded[0].Amount.Equal(types.MustMoney("120.00")))
}

func TestCreate_AttributionContract(t *testing.T) {
	f := newFixture(documents.DefaultAcquisitionPolicy())
	contractID := id.New()

	doc := New(id.New(), id.New(), ledger.LocationContract)
	doc.ContractID = &contractID
	doc.PaymentStatus = documents.PaymentPaid
	doc.AddLine(id.New(), types.NewQuantityFromFloat64(10), decimal.Zero, types.MustMoney("1.00"), "")

	require.NoError(t, f.svc.Create(context.Background(), doc))

	require.Len(t, f.payments.recorded, 1)
	assert.Equal(t, cash.AttributionContract, f.payments.recorded[0].AttributionType)
	require.NotNil(t, f.payments.recorded[0].AttributionID)
	assert.Equal(t, contractID, *f.payments.recorded[0].AttributionID)
}

func TestCreate_AttributionFieldOfficeSupplier(t *testing.T) {
	f := newFixture(documents.DefaultAcquisitionPolicy())
	supplierID := id.New()
	f.partners.partners[supplierID] = &partner.Partner{Name: "North yard", Kind: partner.KindSupplier, FieldOffice: true}

	doc := New(id.New(), supplierID, ledger.LocationYard)
	doc.PaymentStatus = documents.PaymentPaid
	doc.AddLine(id.New(), types.NewQuantityFromFloat64(10), decimal.Zero, types.MustMoney("1.00"), "")

	require.NoError(t, f.svc.Create(context.Background(), doc))

	require.Len(t, f.payments.recorded, 1)
	assert.Equal(t, cash.AttributionSupplier, f.payments.recorded[0].AttributionType)
	require.NotNil(t, f.payments.recorded[0].AttributionID)
	assert.Equal(t, supplierID, *f.payments.recorded[0].AttributionID)
}

func TestCreate_SupplierLookupFailureDegradesToNoAttribution(t *testing.T) {
	f := newFixture(documents.DefaultAcquisitionPolicy())

	doc := New(id.New(), id.New(), ledger.LocationYard) // supplier unknown to the fake
	doc.PaymentStatus = documents.PaymentPaid
	doc.AddLine(id.New(), types.NewQuantityFromFloat64(10), decimal.Zero, types.MustMoney("1.00"), "")

	require.NoError(t, f.svc.Create(context.Background(), doc))

	require.Len(t, f.payments.recorded, 1)
	assert.Equal(t, cash.AttributionNone, f.payments.recorded[0].AttributionType)
	assert.Nil(t, f.payments.recorded[0].AttributionID)
}

func TestDelete_DoesNotReverseStock(t *testing.T) {
	f := newFixture(documents.DefaultAcquisitionPolicy())
	ctx := context.Background()
	tenantID := id.New()
	materialID := id.New()

	doc := New(tenantID, id.New(), ledger.LocationYard)
	doc.AddLine(materialID, types.NewQuantityFromFloat64(100), decimal.NewFromInt(10), types.MustMoney("5.00"), "")
	require.NoError(t, f.svc.Create(ctx, doc))

	require.NoError(t, f.svc.Delete(ctx, doc.ID))

	// The posted stock stays put; only the rows are gone.
	q, _ := f.ledger.GetQuantity(ctx, ledger.YardKey(tenantID, materialID))
	assert.Equal(t, types.NewQuantityFromFloat64(90), q)
	_, err := f.svc.GetByID(ctx, doc.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdate_ResavingPaidDocumentDoesNotDuplicatePayment(t *testing.T) {
	f := newFixture(documents.DefaultAcquisitionPolicy())
	ctx := context.Background()

	doc := New(id.New(), id.New(), ledger.LocationYard)
	doc.PaymentStatus = documents.PaymentPaid
	doc.AddLine(id.New(), types.NewQuantityFromFloat64(10), decimal.Zero, types.MustMoney("1.00"), "")
	require.NoError(t, f.svc.Create(ctx, doc))
	require.Len(t, f.payments.recorded, 1)

	doc.Comment = "corrected plate"
	require.NoError(t, f.svc.Update(ctx, doc))

	assert.Len(t, f.payments.recorded, 1)
}

func TestUpdate_UnpaidToPaidEmitsPayment(t *testing.T) {
	f := newFixture(documents.DefaultAcquisitionPolicy())
	ctx := context.Background()

	doc := New(id.New(), id.New(), ledger.LocationYard)
	doc.AddLine(id.New(), types.NewQuantityFromFloat64(10), decimal.Zero, types.MustMoney("1.00"), "")
	require.NoError(t, f.svc.Create(ctx, doc))
	require.Empty(t, f.payments.recorded)

	doc.PaymentStatus = documents.PaymentPaid
	require.NoError(t, f.svc.Update(ctx, doc))

	assert.Len(t, f.payments.recorded, 1)
}

func TestUpdate_DefaultPolicyPostsOnTopOfOldLines(t *testing.T) {
	f := newFixture(documents.DefaultAcquisitionPolicy())
	ctx := context.Background()
	tenantID := id.New()
	materialID := id.New()

	doc := New(tenantID, id.New(), ledger.LocationYard)
	doc.AddLine(materialID, types.NewQuantityFromFloat64(100), decimal.Zero, types.MustMoney("1.00"), "")
	require.NoError(t, f.svc.Create(ctx, doc))

	require.NoError(t, f.svc.Update(ctx, doc))

	// Historical behavior: the edit compounds, it does not replace.
	q, _ := f.ledger.GetQuantity(ctx, ledger.YardKey(tenantID, materialID))
	assert.Equal(t, types.NewQuantityFromFloat64(200), q)
}

func TestUpdate_ReverseOnUpdateReplacesPostedStock(t *testing.T) {
	f := newFixture(documents.ReversalPolicy{ReverseOnUpdate: true})
	ctx := context.Background()
	tenantID := id.New()
	materialID := id.New()

	doc := New(tenantID, id.New(), ledger.LocationYard)
	doc.AddLine(materialID, types.NewQuantityFromFloat64(100), decimal.Zero, types.MustMoney("1.00"), "")
	require.NoError(t, f.svc.Create(ctx, doc))

	doc.Lines = doc.Lines[:0]
	doc.AddLine(materialID, types.NewQuantityFromFloat64(60), decimal.Zero, types.MustMoney("1.00"), "")
	require.NoError(t, f.svc.Update(ctx, doc))

	q, _ := f.ledger.GetQuantity(ctx, ledger.YardKey(tenantID, materialID))
	assert.Equal(t, types.NewQuantityFromFloat64(60), q)
}

func TestValidate_Gaps(t *testing.T) {
	f := newFixture(documents.DefaultAcquisitionPolicy())
	ctx := context.Background()

	// no lines
	doc := New(id.New(), id.New(), ledger.LocationYard)
	assert.Error(t, f.svc.Create(ctx, doc))

	// contract location without a contract
	doc = New(id.New(), id.New(), ledger.LocationContract)
	doc.AddLine(id.New(), types.NewQuantityFromFloat64(1), decimal.Zero, types.MustMoney("1.00"), "")
	assert.Error(t, f.svc.Create(ctx, doc))

	// impurity over 100 percent
	doc = New(id.New(), id.New(), ledger.LocationYard)
	doc.AddLine(id.New(), types.NewQuantityFromFloat64(1), decimal.NewFromInt(101), types.MustMoney("1.00"), "")
	assert.Error(t, f.svc.Create(ctx, doc))
}
