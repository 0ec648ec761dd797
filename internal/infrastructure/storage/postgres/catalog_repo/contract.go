package catalog_repo

import (
	"yardbook/internal/domain/catalogs/contract"
	"yardbook/internal/infrastructure/storage/postgres"
)

const contractsTable = "cat_contracts"

// Compile-time check that ContractRepo implements contract.Repository.
var _ contract.Repository = (*ContractRepo)(nil)

// ContractRepo implements contract.Repository.
type ContractRepo struct {
	*BaseCatalogRepo[*contract.Contract]
}

// NewContractRepo creates a new contract repository.
func NewContractRepo(txm *postgres.TxManager) *ContractRepo {
	return &ContractRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			contractsTable,
			postgres.ExtractDBColumns[contract.Contract](),
			[]string{"name"},
			func() *contract.Contract { return &contract.Contract{} },
		),
	}
}
