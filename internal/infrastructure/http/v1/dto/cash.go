package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"yardbook/internal/core/id"
	"yardbook/internal/domain/cash"
)

// CreateCashRegisterRequest for creating a cash register.
type CreateCashRegisterRequest struct {
	Name           string          `json:"name" binding:"required"`
	Type           string          `json:"type" binding:"required,oneof=cash bank"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// ToEntity converts the request to a domain register.
func (r CreateCashRegisterRequest) ToEntity(tenantID id.ID) *cash.CashRegister {
	return cash.NewRegister(tenantID, r.Name, cash.RegisterType(r.Type), r.InitialBalance)
}

// CashRegisterResponse is the API shape of a cash register.
type CashRegisterResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// FromCashRegister converts a domain register to the API shape.
func FromCashRegister(reg *cash.CashRegister) CashRegisterResponse {
	return CashRegisterResponse{
		ID:             reg.ID.String(),
		Name:           reg.Name,
		Type:           string(reg.Type),
		InitialBalance: reg.InitialBalance,
	}
}

// CreateCashTransactionRequest for recording a manual register movement.
type CreateCashTransactionRequest struct {
	RegisterID string          `json:"registerId" binding:"required,uuid"`
	Date       time.Time       `json:"date" binding:"required"`
	Type       string          `json:"type" binding:"required,oneof=income expense"`
	Amount     decimal.Decimal `json:"amount"`
	Notes      string          `json:"notes"`
}

// ToEntity converts the request to a domain transaction.
func (r CreateCashTransactionRequest) ToEntity(tenantID id.ID) *cash.CashTransaction {
	registerID, _ := id.Parse(r.RegisterID)
	tx := cash.NewTransaction(tenantID, registerID, r.Date, cash.TransactionType(r.Type), r.Amount)
	tx.Notes = r.Notes
	return tx
}

// DailyBalanceResponse is one register's row in the daily summary.
type DailyBalanceResponse struct {
	Register CashRegisterResponse `json:"register"`
	Opening  decimal.Decimal      `json:"opening"`
	Income   decimal.Decimal      `json:"income"`
	Expense  decimal.Decimal      `json:"expense"`
	Closing  decimal.Decimal      `json:"closing"`
}

// FromDailyBalances converts the daily summary to the API shape.
func FromDailyBalances(balances []cash.DailyBalance) []DailyBalanceResponse {
	out := make([]DailyBalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, DailyBalanceResponse{
			Register: FromCashRegister(b.Register),
			Opening:  b.Opening,
			Income:   b.Income,
			Expense:  b.Expense,
			Closing:  b.Closing,
		})
	}
	return out
}

// ExpenseRecordResponse is the API shape of an expense record.
type ExpenseRecordResponse struct {
	ID               string          `json:"id"`
	Date             time.Time       `json:"date"`
	Name             string          `json:"name"`
	Notes            string          `json:"notes,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Kind             string          `json:"kind"`
	PaymentMethod    string          `json:"paymentMethod,omitempty"`
	AttributionType  string          `json:"attributionType,omitempty"`
	AttributionID    *string         `json:"attributionId,omitempty"`
	SourceType       string          `json:"sourceType"`
	SourceDocumentID *string         `json:"sourceDocumentId,omitempty"`
}

// FromExpenseRecords converts expense records to the API shape.
func FromExpenseRecords(records []cash.ExpenseRecord) []ExpenseRecordResponse {
	out := make([]ExpenseRecordResponse, 0, len(records))
	for _, rec := range records {
		resp := ExpenseRecordResponse{
			ID:              rec.ID.String(),
			Date:            rec.Date,
			Name:            rec.Name,
			Notes:           rec.Notes,
			Amount:          rec.Amount,
			Kind:            string(rec.Kind),
			PaymentMethod:   rec.PaymentMethod,
			AttributionType: string(rec.AttributionType),
			SourceType:      string(rec.SourceType),
		}
		if rec.AttributionID != nil {
			s := rec.AttributionID.String()
			resp.AttributionID = &s
		}
		if rec.SourceDocumentID != nil {
			s := rec.SourceDocumentID.String()
			resp.SourceDocumentID = &s
		}
		out = append(out, resp)
	}
	return out
}
