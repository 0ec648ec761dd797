package cash_repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yardbook/internal/core/id"
	"yardbook/internal/core/tenant"
)

// Register lookups are scoped to the calling tenant; a soft-deleted register
// reads as missing, which the payment side effect degrades on.
func TestGetRegisterQueryScopesToTenant(t *testing.T) {
	repo := NewCashRepo(nil)

	tenantID := id.New()
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	sql, args, err := repo.getRegisterQuery(ctx, id.New()).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "tenant_id =")
	assert.Contains(t, sql, "deletion_mark =")
	assert.Contains(t, args, tenantID)
}
