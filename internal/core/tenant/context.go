// Package tenant provides tenant identity propagation.
// All rows in the shared database carry a tenant_id column; the id travels
// through context from the HTTP layer down to the repositories.
package tenant

import (
	"context"

	"yardbook/internal/core/id"
)

type tenantKey struct{}

// WithTenantID adds the tenant id to context.
func WithTenantID(ctx context.Context, tenantID id.ID) context.Context {
	return context.WithValue(ctx, tenantKey{}, tenantID)
}

// GetTenantID returns the tenant id from context, or id.Nil() if absent.
func GetTenantID(ctx context.Context) id.ID {
	if v, ok := ctx.Value(tenantKey{}).(id.ID); ok {
		return v
	}
	return id.Nil()
}

// HasTenant reports whether a tenant id is present in context.
func HasTenant(ctx context.Context) bool {
	return !id.IsNil(GetTenantID(ctx))
}
