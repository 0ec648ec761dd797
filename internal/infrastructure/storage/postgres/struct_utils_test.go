package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"yardbook/internal/core/entity"
	"yardbook/internal/core/id"
)

type MockCatalog struct {
	entity.BaseCatalog
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

type MockDocument struct {
	entity.Document
	SupplierID id.ID  `db:"supplier_id" json:"supplierId"`
	Lines      []int  `db:"-" json:"lines"`
	Untagged   string `json:"untagged"`
}

func TestExtractDBColumns_EmbeddedFields(t *testing.T) {
	cols := ExtractDBColumns[MockCatalog]()

	expected := []string{"id", "tenant_id", "deletion_mark", "version", "code", "name"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
}

func TestExtractDBColumns_SkipsUntaggedAndIgnored(t *testing.T) {
	cols := ExtractDBColumns[MockDocument]()

	assert.Contains(t, cols, "supplier_id")
	assert.Contains(t, cols, "number")
	assert.Contains(t, cols, "created_at")
	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "lines")
	assert.NotContains(t, cols, "untagged")
}

func TestStructToMap(t *testing.T) {
	cat := MockCatalog{
		BaseCatalog: entity.BaseCatalog{
			BaseEntity: entity.BaseEntity{
				ID:           id.New(),
				TenantID:     id.New(),
				DeletionMark: true,
				Version:      5,
			},
		},
		Code: "CU",
		Name: "Copper",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, cat.TenantID, m["tenant_id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "CU", m["code"])
	assert.Equal(t, "Copper", m["name"])
}

func TestStructToMap_PointerAndNonStruct(t *testing.T) {
	cat := &MockCatalog{Code: "AL"}
	m := StructToMap(cat)
	assert.Equal(t, "AL", m["code"])

	assert.Nil(t, StructToMap(42))
}

func TestStructToMap_CachedAcrossCalls(t *testing.T) {
	doc := MockDocument{SupplierID: id.New()}
	doc.Date = time.Now().UTC()

	first := StructToMap(doc)
	second := StructToMap(doc)
	assert.Equal(t, first, second)
}
