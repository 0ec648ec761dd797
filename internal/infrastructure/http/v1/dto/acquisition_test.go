package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yardbook/internal/core/id"
	"yardbook/internal/domain/documents/acquisition"
	"yardbook/internal/domain/documents/sale"
	"yardbook/internal/domain/ledger"
)

// The repository owns version and updated_at: Update matches the stored row
// with WHERE version = <loaded version>. If ApplyTo bumped the version the
// predicate could never match and every PUT would fail with a spurious
// concurrent-modification error.
func TestUpdateAcquisitionRequest_ApplyTo_KeepsVersion(t *testing.T) {
	doc := acquisition.New(id.New(), id.New(), ledger.LocationYard)
	doc.SetVersion(3)

	comment := "corrected receipt"
	req := UpdateAcquisitionRequest{Comment: &comment}
	req.ApplyTo(doc)

	assert.Equal(t, 3, doc.Version)
	assert.Equal(t, "corrected receipt", doc.Comment)
}

func TestUpdateSaleRequest_ApplyTo_KeepsVersion(t *testing.T) {
	doc := sale.New(id.New(), id.New())
	doc.SetVersion(7)

	scale := "SC-2"
	req := UpdateSaleRequest{ScaleNumber: &scale}
	req.ApplyTo(doc)

	assert.Equal(t, 7, doc.Version)
	assert.Equal(t, "SC-2", doc.ScaleNumber)
}
