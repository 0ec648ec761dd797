package cash

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/id"
	"yardbook/internal/core/types"
)

// fakeRepo keeps everything in memory and computes the aggregates the same
// way the SQL does.
type fakeRepo struct {
	registers    map[id.ID]*CashRegister
	transactions []*CashTransaction
	expenses     []*ExpenseRecord
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{registers: make(map[id.ID]*CashRegister)}
}

func (f *fakeRepo) CreateRegister(ctx context.Context, reg *CashRegister) error {
	f.registers[reg.ID] = reg
	return nil
}

func (f *fakeRepo) GetRegister(ctx context.Context, registerID id.ID) (*CashRegister, error) {
	reg, ok := f.registers[registerID]
	if !ok {
		return nil, apperror.NewNotFound("cash register", registerID.String())
	}
	return reg, nil
}

func (f *fakeRepo) ListRegisters(ctx context.Context, tenantID id.ID) ([]*CashRegister, error) {
	var out []*CashRegister
	for _, reg := range f.registers {
		if reg.TenantID == tenantID {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateTransaction(ctx context.Context, tx *CashTransaction) error {
	f.transactions = append(f.transactions, tx)
	return nil
}

func (f *fakeRepo) NetBefore(ctx context.Context, registerID id.ID, day time.Time) (types.Money, error) {
	net := types.Zero()
	for _, tx := range f.transactions {
		if tx.RegisterID != registerID || !tx.Date.Before(day) {
			continue
		}
		if tx.Type == TransactionIncome {
			net = net.Add(tx.Amount)
		} else {
			net = net.Sub(tx.Amount)
		}
	}
	return net, nil
}

func (f *fakeRepo) DayTotals(ctx context.Context, registerID id.ID, day time.Time) (types.Money, types.Money, error) {
	income, expense := types.Zero(), types.Zero()
	end := day.Add(24 * time.Hour)
	for _, tx := range f.transactions {
		if tx.RegisterID != registerID || tx.Date.Before(day) || !tx.Date.Before(end) {
			continue
		}
		if tx.Type == TransactionIncome {
			income = income.Add(tx.Amount)
		} else {
			expense = expense.Add(tx.Amount)
		}
	}
	return income, expense, nil
}

func (f *fakeRepo) CreateExpense(ctx context.Context, rec *ExpenseRecord) error {
	f.expenses = append(f.expenses, rec)
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRecordDocumentPayment_WithRegister(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	tenantID := id.New()

	reg := NewRegister(tenantID, "Till", RegisterCash, types.MustMoney("100.00"))
	require.NoError(t, repo.CreateRegister(ctx, reg))

	docID := id.New()
	err := svc.RecordDocumentPayment(ctx, DocumentPayment{
		TenantID:         tenantID,
		Date:             day(2026, 4, 1),
		Kind:             KindPayment,
		Amount:           types.MustMoney("450.00"),
		Reference:        "7431",
		SourceType:       SourceAcquisition,
		SourceDocumentID: docID,
		RegisterID:       &reg.ID,
	})
	require.NoError(t, err)

	require.Len(t, repo.expenses, 1)
	rec := repo.expenses[0]
	assert.Equal(t, "Bon: 7431", rec.Name)
	assert.Equal(t, "cash", rec.PaymentMethod)
	require.NotNil(t, rec.SourceDocumentID)
	assert.Equal(t, docID, *rec.SourceDocumentID)

	require.Len(t, repo.transactions, 1)
	assert.Equal(t, TransactionExpense, repo.transactions[0].Type)
	assert.Equal(t, reg.ID, repo.transactions[0].RegisterID)
}

func TestRecordDocumentPayment_CollectionIsIncome(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	tenantID := id.New()

	reg := NewRegister(tenantID, "Till", RegisterCash, types.Zero())
	require.NoError(t, repo.CreateRegister(ctx, reg))

	err := svc.RecordDocumentPayment(ctx, DocumentPayment{
		TenantID:         tenantID,
		Date:             day(2026, 4, 1),
		Kind:             KindCollection,
		Amount:           types.MustMoney("288.00"),
		Reference:        "9154",
		SourceType:       SourceSale,
		SourceDocumentID: id.New(),
		RegisterID:       &reg.ID,
	})
	require.NoError(t, err)

	require.Len(t, repo.transactions, 1)
	assert.Equal(t, TransactionIncome, repo.transactions[0].Type)
	assert.Equal(t, KindCollection, repo.expenses[0].Kind)
}

func TestRecordDocumentPayment_MissingRegisterDegrades(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	missing := id.New()

	err := svc.RecordDocumentPayment(context.Background(), DocumentPayment{
		TenantID:         id.New(),
		Date:             day(2026, 4, 1),
		Kind:             KindPayment,
		Amount:           types.MustMoney("50.00"),
		SourceType:       SourceAcquisition,
		SourceDocumentID: id.New(),
		RegisterID:       &missing,
	})
	require.NoError(t, err, "a stale register reference must not abort the mutation")

	// The expense record is still written, just without a payment method,
	// and no register movement happens.
	require.Len(t, repo.expenses, 1)
	assert.Empty(t, repo.expenses[0].PaymentMethod)
	assert.Empty(t, repo.transactions)
}

func TestRecordDocumentPayment_NoReferenceKeepsBareName(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	err := svc.RecordDocumentPayment(context.Background(), DocumentPayment{
		TenantID:         id.New(),
		Date:             day(2026, 4, 1),
		Kind:             KindPayment,
		Amount:           types.MustMoney("10.00"),
		SourceType:       SourceAcquisition,
		SourceDocumentID: id.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Bon", repo.expenses[0].Name)
}

func TestRecordDocumentPayment_Validation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	err := svc.RecordDocumentPayment(ctx, DocumentPayment{
		TenantID:         id.New(),
		Date:             day(2026, 4, 1),
		Kind:             KindPayment,
		Amount:           types.Zero(),
		SourceDocumentID: id.New(),
	})
	assert.Error(t, err, "zero amount")

	err = svc.RecordDocumentPayment(ctx, DocumentPayment{
		TenantID: id.New(),
		Date:     day(2026, 4, 1),
		Kind:     KindPayment,
		Amount:   types.MustMoney("10.00"),
	})
	assert.Error(t, err, "missing source document")
}

func TestRecordManualTransaction_UnknownRegister(t *testing.T) {
	svc := NewService(newFakeRepo())

	tx := NewTransaction(id.New(), id.New(), day(2026, 4, 1), TransactionIncome, types.MustMoney("10.00"))
	err := svc.RecordManualTransaction(context.Background(), tx)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDailySummary_OpeningAndClosing(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	tenantID := id.New()

	reg := NewRegister(tenantID, "Till", RegisterCash, types.MustMoney("100.00"))
	require.NoError(t, repo.CreateRegister(ctx, reg))

	// two days before: +200
	require.NoError(t, repo.CreateTransaction(ctx, NewTransaction(tenantID, reg.ID, day(2026, 3, 30), TransactionIncome, types.MustMoney("200.00"))))
	// the day itself: +50, -30
	require.NoError(t, repo.CreateTransaction(ctx, NewTransaction(tenantID, reg.ID, day(2026, 4, 1).Add(9*time.Hour), TransactionIncome, types.MustMoney("50.00"))))
	require.NoError(t, repo.CreateTransaction(ctx, NewTransaction(tenantID, reg.ID, day(2026, 4, 1).Add(15*time.Hour), TransactionExpense, types.MustMoney("30.00"))))

	balances, err := svc.DailySummary(ctx, tenantID, day(2026, 4, 1))
	require.NoError(t, err)
	require.Len(t, balances, 1)

	b := balances[0]
	assert.True(t, b.Opening.Equal(types.MustMoney("300.00")), "opening: initial 100 + net 200, got %s", b.Opening)
	assert.True(t, b.Income.Equal(types.MustMoney("50.00")))
	assert.True(t, b.Expense.Equal(types.MustMoney("30.00")))
	assert.True(t, b.Closing.Equal(types.MustMoney("320.00")))
}

func TestDailySummary_ClosingEqualsNextOpening(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	tenantID := id.New()

	reg := NewRegister(tenantID, "Bank", RegisterBank, types.MustMoney("1000.00"))
	require.NoError(t, repo.CreateRegister(ctx, reg))
	require.NoError(t, repo.CreateTransaction(ctx, NewTransaction(tenantID, reg.ID, day(2026, 4, 1).Add(10*time.Hour), TransactionExpense, types.MustMoney("250.00"))))

	today, err := svc.DailySummary(ctx, tenantID, day(2026, 4, 1))
	require.NoError(t, err)
	// several empty days in between change nothing
	later, err := svc.DailySummary(ctx, tenantID, day(2026, 4, 5))
	require.NoError(t, err)

	require.Len(t, today, 1)
	require.Len(t, later, 1)
	assert.True(t, today[0].Closing.Equal(later[0].Opening),
		"closing %s must carry forward to opening %s", today[0].Closing, later[0].Opening)
}

func TestDailySummary_IdempotentRead(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	tenantID := id.New()

	reg := NewRegister(tenantID, "Till", RegisterCash, types.MustMoney("10.00"))
	require.NoError(t, repo.CreateRegister(ctx, reg))
	require.NoError(t, repo.CreateTransaction(ctx, NewTransaction(tenantID, reg.ID, day(2026, 4, 1).Add(time.Hour), TransactionIncome, types.MustMoney("5.00"))))

	first, err := svc.DailySummary(ctx, tenantID, day(2026, 4, 1))
	require.NoError(t, err)
	second, err := svc.DailySummary(ctx, tenantID, day(2026, 4, 1))
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.True(t, first[0].Closing.Equal(second[0].Closing))
	assert.Len(t, repo.transactions, 1, "a summary is a read, it must not write")
}
