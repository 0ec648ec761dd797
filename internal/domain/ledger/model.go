// Package ledger provides the stock ledger: one quantity balance per
// (tenant, material, location, contract) key.
package ledger

import (
	"fmt"
	"time"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/id"
	"yardbook/internal/core/types"
)

// LocationType identifies where stock is held.
type LocationType string

const (
	// LocationYard is the operator's own warehouse stock.
	LocationYard LocationType = "yard"
	// LocationContract is stock earmarked to a specific contract.
	LocationContract LocationType = "contract"
	// LocationWEEE is waste-electronics stock.
	LocationWEEE LocationType = "weee"
)

// Valid reports whether the location type is one of the known values.
func (l LocationType) Valid() bool {
	switch l {
	case LocationYard, LocationContract, LocationWEEE:
		return true
	}
	return false
}

// Key identifies one stock balance.
// ContractID is meaningful only when Location is LocationContract; for the
// other locations it must be nil. The nil case is a distinct key, not an
// equality match against NULL, so repositories branch on it explicitly.
type Key struct {
	TenantID   id.ID
	MaterialID id.ID
	Location   LocationType
	ContractID *id.ID
}

// YardKey returns the key for the tenant's own warehouse stock.
func YardKey(tenantID, materialID id.ID) Key {
	return Key{TenantID: tenantID, MaterialID: materialID, Location: LocationYard}
}

// ContractKey returns the key for stock earmarked to a contract.
func ContractKey(tenantID, materialID, contractID id.ID) Key {
	return Key{TenantID: tenantID, MaterialID: materialID, Location: LocationContract, ContractID: &contractID}
}

// WEEEKey returns the key for waste-electronics stock.
func WEEEKey(tenantID, materialID id.ID) Key {
	return Key{TenantID: tenantID, MaterialID: materialID, Location: LocationWEEE}
}

// Validate checks key invariants.
func (k Key) Validate() error {
	if id.IsNil(k.TenantID) {
		return apperror.NewValidation("tenant is required").WithDetail("field", "tenantId")
	}
	if id.IsNil(k.MaterialID) {
		return apperror.NewValidation("material is required").WithDetail("field", "materialId")
	}
	if !k.Location.Valid() {
		return apperror.NewValidation("unknown location type").
			WithDetail("field", "location").
			WithDetail("value", string(k.Location))
	}
	if k.Location == LocationContract {
		if k.ContractID == nil || id.IsNil(*k.ContractID) {
			return apperror.NewValidation("contract is required for contract stock").
				WithDetail("field", "contractId")
		}
	} else if k.ContractID != nil {
		return apperror.NewValidation("contract must be empty for non-contract stock").
			WithDetail("field", "contractId").
			WithDetail("location", string(k.Location))
	}
	return nil
}

// String returns a loggable key representation.
func (k Key) String() string {
	if k.ContractID != nil {
		return fmt.Sprintf("%s/%s@%s[%s]", k.TenantID, k.MaterialID, k.Location, *k.ContractID)
	}
	return fmt.Sprintf("%s/%s@%s", k.TenantID, k.MaterialID, k.Location)
}

// StockEntry is one balance row. Created lazily on first adjustment,
// never deleted; the quantity may go negative.
type StockEntry struct {
	TenantID   id.ID          `db:"tenant_id" json:"tenantId"`
	MaterialID id.ID          `db:"material_id" json:"materialId"`
	Location   LocationType   `db:"location_type" json:"location"`
	ContractID *id.ID         `db:"contract_id" json:"contractId,omitempty"`
	Quantity   types.Quantity `db:"quantity" json:"quantity"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updatedAt"`
}

// Key returns the entry's ledger key.
func (e StockEntry) Key() Key {
	return Key{
		TenantID:   e.TenantID,
		MaterialID: e.MaterialID,
		Location:   e.Location,
		ContractID: e.ContractID,
	}
}
