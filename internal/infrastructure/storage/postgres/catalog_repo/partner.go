package catalog_repo

import (
	"yardbook/internal/domain/catalogs/partner"
	"yardbook/internal/infrastructure/storage/postgres"
)

const partnersTable = "cat_partners"

// Compile-time check that PartnerRepo implements partner.Repository.
var _ partner.Repository = (*PartnerRepo)(nil)

// PartnerRepo implements partner.Repository.
type PartnerRepo struct {
	*BaseCatalogRepo[*partner.Partner]
}

// NewPartnerRepo creates a new partner repository.
func NewPartnerRepo(txm *postgres.TxManager) *PartnerRepo {
	return &PartnerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			partnersTable,
			postgres.ExtractDBColumns[partner.Partner](),
			[]string{"name", "tax_code"},
			func() *partner.Partner { return &partner.Partner{} },
		),
	}
}
