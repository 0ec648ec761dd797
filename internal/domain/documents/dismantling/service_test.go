package dismantling

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/id"
	"yardbook/internal/core/types"
	"yardbook/internal/domain"
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
	docs    map[id.ID]*Document
	outputs map[id.ID][]Output
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[id.ID]*Document), outputs: make(map[id.ID][]Output)}
}

func (f *fakeRepo) Create(ctx context.Context, doc *Document) error {
	cp := *doc
	f.docs[doc.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, docID id.ID) (*Document, error) {
	doc, ok := f.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("dismantling", docID.String())
	}
	cp := *doc
	return &cp, nil
}

func (f *fakeRepo) Delete(ctx context.Context, docID id.ID) error {
	delete(f.docs, docID)
	return nil
}

func (f *fakeRepo) GetOutputs(ctx context.Context, docID id.ID) ([]Output, error) {
	return f.outputs[docID], nil
}

func (f *fakeRepo) SaveOutputs(ctx context.Context, docID id.ID, outputs []Output) error {
	f.outputs[docID] = append([]Output(nil), outputs...)
	return nil
}

func (f *fakeRepo) DeleteOutputs(ctx context.Context, docID id.ID) error {
	delete(f.outputs, docID)
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

func newService(led *fakeLedger, policy documents.ReversalPolicy) *Service {
	return NewService(newFakeRepo(), led, &fakeNumerator{}, fakeTxManager{}, policy)
}

// --- tests ---

func TestCreate_MovesSourceIntoOutputs(t *testing.T) {
	led := newFakeLedger()
	svc := newService(led, documents.DefaultDismantlingPolicy())
	ctx := context.Background()
	tenantID := id.New()
	cableID := id.New()
	copperID := id.New()
	plasticID := id.New()

	_, err := led.Adjust(ctx, ledger.YardKey(tenantID, cableID), types.NewQuantityFromFloat64(100))
	require.NoError(t, err)

	doc := New(tenantID, cableID, types.NewQuantityFromFloat64(100))
	doc.Date = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	doc.AddOutput(copperID, types.NewQuantityFromFloat64(60))
	doc.AddOutput(plasticID, types.NewQuantityFromFloat64(30))

	require.NoError(t, svc.Create(ctx, doc))

	assert.Equal(t, "DEZ-2026-00001", doc.Number)

	cable, _ := led.GetQuantity(ctx, ledger.YardKey(tenantID, cableID))
	assert.True(t, cable.IsZero())
	copper, _ := led.GetQuantity(ctx, ledger.YardKey(tenantID, copperID))
	assert.Equal(t, types.NewQuantityFromFloat64(60), copper)
	plastic, _ := led.GetQuantity(ctx, ledger.YardKey(tenantID, plasticID))
	assert.Equal(t, types.NewQuantityFromFloat64(30), plastic)
}

func TestCreate_OutputsMayExceedSource(t *testing.T) {
	// Mass balance is reported, never enforced: clerks weigh outputs on a
	// different scale and totals routinely disagree with the source.
	led := newFakeLedger()
	svc := newService(led, documents.DefaultDismantlingPolicy())
	ctx := context.Background()
	tenantID := id.New()
	sourceID := id.New()
	outID := id.New()

	doc := New(tenantID, sourceID, types.NewQuantityFromFloat64(10))
	doc.AddOutput(outID, types.NewQuantityFromFloat64(25))

	require.NoError(t, svc.Create(ctx, doc))
	assert.Equal(t, types.NewQuantityFromFloat64(25), doc.TotalOutputQuantity())

	out, _ := led.GetQuantity(ctx, ledger.YardKey(tenantID, outID))
	assert.Equal(t, types.NewQuantityFromFloat64(25), out)
}

func TestCreate_InsufficientSourceStockProceeds(t *testing.T) {
	// The pre-check is soft: the physical dismantling already happened,
	// so a shortfall is logged and the source balance goes negative.
	led := newFakeLedger()
	svc := newService(led, documents.DefaultDismantlingPolicy())
	ctx := context.Background()
	tenantID := id.New()
	sourceID := id.New()

	doc := New(tenantID, sourceID, types.NewQuantityFromFloat64(40))
	doc.AddOutput(id.New(), types.NewQuantityFromFloat64(35))

	require.NoError(t, svc.Create(ctx, doc))

	source, _ := led.GetQuantity(ctx, ledger.YardKey(tenantID, sourceID))
	assert.Equal(t, types.NewQuantityFromFloat64(-40), source)
}

func TestCreate_ContractLocationKeepsContractKey(t *testing.T) {
	led := newFakeLedger()
	svc := newService(led, documents.DefaultDismantlingPolicy())
	ctx := context.Background()
	tenantID := id.New()
	sourceID := id.New()
	outID := id.New()
	contractID := id.New()

	doc := New(tenantID, sourceID, types.NewQuantityFromFloat64(10))
	doc.Location = ledger.LocationContract
	doc.ContractID = &contractID
	doc.AddOutput(outID, types.NewQuantityFromFloat64(8))

	require.NoError(t, svc.Create(ctx, doc))

	source, _ := led.GetQuantity(ctx, ledger.ContractKey(tenantID, sourceID, contractID))
	assert.Equal(t, types.NewQuantityFromFloat64(-10), source)
	out, _ := led.GetQuantity(ctx, ledger.ContractKey(tenantID, outID, contractID))
	assert.Equal(t, types.NewQuantityFromFloat64(8), out)
}

func TestDelete_DoesNotReverseStock(t *testing.T) {
	led := newFakeLedger()
	svc := newService(led, documents.DefaultDismantlingPolicy())
	ctx := context.Background()
	tenantID := id.New()
	sourceID := id.New()
	outID := id.New()

	_, err := led.Adjust(ctx, ledger.YardKey(tenantID, sourceID), types.NewQuantityFromFloat64(100))
	require.NoError(t, err)

	doc := New(tenantID, sourceID, types.NewQuantityFromFloat64(100))
	doc.AddOutput(outID, types.NewQuantityFromFloat64(90))
	require.NoError(t, svc.Create(ctx, doc))

	require.NoError(t, svc.Delete(ctx, doc.ID))

	// Both sides of the split stay posted after the rows are gone.
	source, _ := led.GetQuantity(ctx, ledger.YardKey(tenantID, sourceID))
	assert.True(t, source.IsZero())
	out, _ := led.GetQuantity(ctx, ledger.YardKey(tenantID, outID))
	assert.Equal(t, types.NewQuantityFromFloat64(90), out)

	_, err = svc.GetByID(ctx, doc.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDelete_ReverseOnDeleteBacksOutBothSides(t *testing.T) {
	led := newFakeLedger()
	svc := newService(led, documents.ReversalPolicy{ReverseOnDelete: true})
	ctx := context.Background()
	tenantID := id.New()
	sourceID := id.New()
	outID := id.New()

	_, err := led.Adjust(ctx, ledger.YardKey(tenantID, sourceID), types.NewQuantityFromFloat64(100))
	require.NoError(t, err)

	doc := New(tenantID, sourceID, types.NewQuantityFromFloat64(100))
	doc.AddOutput(outID, types.NewQuantityFromFloat64(90))
	require.NoError(t, svc.Create(ctx, doc))
	require.NoError(t, svc.Delete(ctx, doc.ID))

	source, _ := led.GetQuantity(ctx, ledger.YardKey(tenantID, sourceID))
	assert.Equal(t, types.NewQuantityFromFloat64(100), source)
	out, _ := led.GetQuantity(ctx, ledger.YardKey(tenantID, outID))
	assert.True(t, out.IsZero())
}

func TestValidate_Gaps(t *testing.T) {
	svc := newService(newFakeLedger(), documents.DefaultDismantlingPolicy())
	ctx := context.Background()

	doc := New(id.New(), id.New(), types.NewQuantityFromFloat64(10))
	assert.Error(t, svc.Create(ctx, doc), "no outputs")

	doc = New(id.New(), id.New(), 0)
	doc.AddOutput(id.New(), types.NewQuantityFromFloat64(5))
	assert.Error(t, svc.Create(ctx, doc), "zero source quantity")

	doc = New(id.New(), id.New(), types.NewQuantityFromFloat64(10))
	doc.AddOutput(id.New(), 0)
	assert.Error(t, svc.Create(ctx, doc), "zero output quantity")
}
