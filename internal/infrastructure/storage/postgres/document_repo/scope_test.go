package document_repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yardbook/internal/core/id"
	"yardbook/internal/core/tenant"
)

// Isolation in the shared database is logical: a foreign UUID must not reach
// another tenant's row, so every by-id predicate carries the tenant from
// context.
func TestByIDQueriesScopeToTenant(t *testing.T) {
	repo := &BaseDocumentRepo[struct{}]{
		tableName:  "doc_acquisitions",
		selectCols: []string{"id", "tenant_id", "number"},
	}

	tenantID := id.New()
	ctx := tenant.WithTenantID(context.Background(), tenantID)
	docID := id.New()

	sql, args, err := repo.getByIDQuery(ctx, docID).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "tenant_id =")
	assert.Contains(t, sql, "deletion_mark =")
	assert.Contains(t, args, tenantID)

	sql, args, err = repo.deleteQuery(ctx, docID).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "tenant_id =")
	assert.Contains(t, args, tenantID)

	sql, args, err = repo.updateQuery(ctx, docID, 3, map[string]any{"comment": "x"}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "tenant_id =")
	assert.Contains(t, sql, "version =")
	assert.Contains(t, args, tenantID)
}

// Without a tenant in context the scope is the nil id, which no stored row
// carries.
func TestTenantScopeWithoutTenant(t *testing.T) {
	scope := tenantScope(context.Background())
	assert.Equal(t, id.Nil(), scope["tenant_id"])
}

// A soft-deleted document is gone from the API: it cannot be fetched and the
// delete predicate will not match it a second time.
func TestDeleteQueryExcludesAlreadyDeleted(t *testing.T) {
	repo := &BaseDocumentRepo[struct{}]{
		tableName:  "doc_sales",
		selectCols: []string{"id", "tenant_id", "number"},
	}

	ctx := tenant.WithTenantID(context.Background(), id.New())

	sql, args, err := repo.deleteQuery(ctx, id.New()).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "deletion_mark =")
	assert.Contains(t, args, false)
}
