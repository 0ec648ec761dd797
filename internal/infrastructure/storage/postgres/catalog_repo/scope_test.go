package catalog_repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yardbook/internal/core/id"
	"yardbook/internal/core/tenant"
)

func TestCatalogGetByIDQueryScopesToTenant(t *testing.T) {
	repo := &BaseCatalogRepo[struct{}]{
		tableName:  "cat_materials",
		selectCols: []string{"id", "tenant_id", "name"},
	}

	tenantID := id.New()
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	sql, args, err := repo.getByIDQuery(ctx, id.New()).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "tenant_id =")
	assert.Contains(t, args, tenantID)
}
