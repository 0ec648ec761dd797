package catalog_repo

import (
	"yardbook/internal/domain/catalogs/material"
	"yardbook/internal/infrastructure/storage/postgres"
)

const materialsTable = "cat_materials"

// Compile-time check that MaterialRepo implements material.Repository.
var _ material.Repository = (*MaterialRepo)(nil)

// MaterialRepo implements material.Repository.
type MaterialRepo struct {
	*BaseCatalogRepo[*material.Material]
}

// NewMaterialRepo creates a new material repository.
func NewMaterialRepo(txm *postgres.TxManager) *MaterialRepo {
	return &MaterialRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			materialsTable,
			postgres.ExtractDBColumns[material.Material](),
			[]string{"name", "category"},
			func() *material.Material { return &material.Material{} },
		),
	}
}
