// Package cash provides the cash & expense subledger: registers, their
// transaction streams, expense/collection records, and daily balances
// derived by folding the stream onto the register's initial balance.
package cash

import (
	"context"
	"time"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/entity"
	"yardbook/internal/core/id"
	"yardbook/internal/core/types"
)

// RegisterType distinguishes the physical till from bank accounts.
type RegisterType string

const (
	RegisterCash RegisterType = "cash"
	RegisterBank RegisterType = "bank"
)

// CashRegister is one till or bank account.
type CashRegister struct {
	entity.BaseCatalog

	Name           string       `db:"name" json:"name"`
	Type           RegisterType `db:"type" json:"type"`
	InitialBalance types.Money  `db:"initial_balance" json:"initialBalance"`
}

// NewRegister creates a new cash register.
func NewRegister(tenantID id.ID, name string, typ RegisterType, initial types.Money) *CashRegister {
	return &CashRegister{
		BaseCatalog:    entity.NewBaseCatalog(tenantID),
		Name:           name,
		Type:           typ,
		InitialBalance: initial,
	}
}

// Validate implements entity.Validatable.
func (r *CashRegister) Validate(ctx context.Context) error {
	if r.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if r.Type != RegisterCash && r.Type != RegisterBank {
		return apperror.NewValidation("unknown register type").
			WithDetail("field", "type").
			WithDetail("value", string(r.Type))
	}
	return nil
}

// TransactionType is the direction of a register movement.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// SourceType names what produced a subledger record.
type SourceType string

const (
	SourceManual      SourceType = "manual"
	SourceAcquisition SourceType = "acquisition"
	SourceSale        SourceType = "sale"
	SourceExpense     SourceType = "expense"
)

// CashTransaction is one movement on a register.
type CashTransaction struct {
	ID         id.ID           `db:"id" json:"id"`
	TenantID   id.ID           `db:"tenant_id" json:"tenantId"`
	RegisterID id.ID           `db:"register_id" json:"registerId"`
	Date       time.Time       `db:"date" json:"date"`
	Type       TransactionType `db:"type" json:"type"`
	Amount     types.Money     `db:"amount" json:"amount"`
	SourceType SourceType      `db:"source_type" json:"sourceType"`

	// SourceDocumentID links the movement to the document that produced it.
	// Nil for manual movements.
	SourceDocumentID *id.ID `db:"source_document_id" json:"sourceDocumentId,omitempty"`

	Notes     string    `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewTransaction creates a register movement.
func NewTransaction(tenantID, registerID id.ID, date time.Time, typ TransactionType, amount types.Money) *CashTransaction {
	return &CashTransaction{
		ID:         id.New(),
		TenantID:   tenantID,
		RegisterID: registerID,
		Date:       date,
		Type:       typ,
		Amount:     amount,
		SourceType: SourceManual,
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate checks transaction invariants.
func (t *CashTransaction) Validate(ctx context.Context) error {
	if id.IsNil(t.RegisterID) {
		return apperror.NewValidation("register is required").WithDetail("field", "registerId")
	}
	if t.Type != TransactionIncome && t.Type != TransactionExpense {
		return apperror.NewValidation("unknown transaction type").
			WithDetail("field", "type").
			WithDetail("value", string(t.Type))
	}
	if !t.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").WithDetail("field", "amount")
	}
	return nil
}

// ExpenseKind is the money direction of an expense record.
type ExpenseKind string

const (
	// KindPayment is money out (acquisitions, running costs).
	KindPayment ExpenseKind = "payment"
	// KindCollection is money in (sales).
	KindCollection ExpenseKind = "collection"
)

// AttributionType names who a payment is attributed to.
type AttributionType string

const (
	AttributionNone     AttributionType = ""
	AttributionContract AttributionType = "contract"
	AttributionSupplier AttributionType = "supplier"
)

// ExpenseRecord is one payment or collection. The free-text Name historically
// embedded the document reference ("Bon: 1234"); SourceDocumentID is the
// explicit link, with the text kept for legacy-data reconciliation.
type ExpenseRecord struct {
	ID       id.ID       `db:"id" json:"id"`
	TenantID id.ID       `db:"tenant_id" json:"tenantId"`
	Date     time.Time   `db:"date" json:"date"`
	Name     string      `db:"name" json:"name"`
	Notes    string      `db:"notes" json:"notes,omitempty"`
	Amount   types.Money `db:"amount" json:"amount"`
	Kind     ExpenseKind `db:"kind" json:"kind"`

	// PaymentMethod is empty when no register was involved or the register
	// lookup came back empty (lookup failures degrade, they do not abort).
	PaymentMethod string `db:"payment_method" json:"paymentMethod,omitempty"`

	AttributionType AttributionType `db:"attribution_type" json:"attributionType,omitempty"`
	AttributionID   *id.ID          `db:"attribution_id" json:"attributionId,omitempty"`
	CategoryID      *id.ID          `db:"category_id" json:"categoryId,omitempty"`

	SourceType       SourceType `db:"source_type" json:"sourceType"`
	SourceDocumentID *id.ID     `db:"source_document_id" json:"sourceDocumentId,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// DocumentPayment describes the cash side effect a document mutator requests.
type DocumentPayment struct {
	TenantID         id.ID
	Date             time.Time
	Kind             ExpenseKind
	Amount           types.Money
	Reference        string // receipt/scale number embedded in the record name
	SourceType       SourceType
	SourceDocumentID id.ID
	RegisterID       *id.ID // nil when no register was selected
	AttributionType  AttributionType
	AttributionID    *id.ID
}

// DailyBalance is one register's row in the daily cash summary.
type DailyBalance struct {
	Register *CashRegister `json:"register"`
	Opening  types.Money   `json:"opening"`
	Income   types.Money   `json:"income"`
	Expense  types.Money   `json:"expense"`
	Closing  types.Money   `json:"closing"`
}
