// Package documents provides shared pieces of the transaction mutators:
// the stock reversal policy and the interfaces mutators consume.
package documents

import (
	"context"

	"yardbook/internal/core/types"
	"yardbook/internal/domain/cash"
	"yardbook/internal/domain/ledger"
)

// ReversalPolicy states whether a document type's ledger effect is undone
// when the document is deleted or edited. The legacy system had this
// hard-wired and inconsistent (sales reversed on delete, acquisitions and
// dismantlings did not); making it a policy keeps the behavior explicit
// and testable per document type.
type ReversalPolicy struct {
	// ReverseOnDelete undoes the ledger effect of the stored lines before
	// the document is removed.
	ReverseOnDelete bool

	// ReverseOnUpdate undoes the ledger effect of the previously stored
	// lines before the replacement lines are applied. Off by default for
	// every document type: edits historically compounded on top of the
	// already-posted stock.
	ReverseOnUpdate bool
}

// DefaultAcquisitionPolicy: deletes and edits leave posted stock in place.
func DefaultAcquisitionPolicy() ReversalPolicy {
	return ReversalPolicy{}
}

// DefaultSalePolicy: deleting a sale restores yard stock.
func DefaultSalePolicy() ReversalPolicy {
	return ReversalPolicy{ReverseOnDelete: true}
}

// DefaultDismantlingPolicy: deletes leave both sides of the split in place.
func DefaultDismantlingPolicy() ReversalPolicy {
	return ReversalPolicy{}
}

// StockLedger is the slice of the ledger service the mutators use.
type StockLedger interface {
	Adjust(ctx context.Context, key ledger.Key, delta types.Quantity) (ledger.StockEntry, error)
	GetQuantity(ctx context.Context, key ledger.Key) (types.Quantity, error)
}

// PaymentRecorder records the cash side effect of a document.
type PaymentRecorder interface {
	RecordDocumentPayment(ctx context.Context, p cash.DocumentPayment) error
}

// PaymentStatus is the settlement state of an acquisition or sale.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// Valid reports whether the status is one of the known values.
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentUnpaid, PaymentPartial, PaymentPaid:
		return true
	}
	return false
}

// EmitPayment decides whether saving a document with status transition
// prev -> next (and the given partial amount) produces a new expense and
// register movement. Re-saving an already-paid document must not duplicate
// the payment; supplying a fresh positive partial amount records another
// installment.
func EmitPayment(prev, next PaymentStatus, partialPositive bool) bool {
	if prev == PaymentUnpaid && next != PaymentUnpaid {
		return true
	}
	return next == PaymentPartial && partialPositive
}
