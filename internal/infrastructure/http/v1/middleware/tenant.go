package middleware

import (
	"github.com/gin-gonic/gin"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/id"
	"yardbook/internal/core/tenant"
)

// HeaderTenantID identifies the yard operator the request acts for.
const HeaderTenantID = "X-Tenant-ID"

// Tenant middleware extracts the tenant id from the request header and puts
// it into the request context. Requests without a valid tenant are rejected
// before any handler runs.
func Tenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderTenantID)
		if raw == "" {
			_ = c.Error(apperror.NewValidation("missing " + HeaderTenantID + " header"))
			c.Abort()
			return
		}

		tenantID, err := id.Parse(raw)
		if err != nil || id.IsNil(tenantID) {
			_ = c.Error(apperror.NewValidation("invalid " + HeaderTenantID + " header").
				WithDetail("value", raw))
			c.Abort()
			return
		}

		ctx := tenant.WithTenantID(c.Request.Context(), tenantID)
		c.Request = c.Request.WithContext(ctx)
		c.Set("tenant_id", tenantID.String())

		c.Next()
	}
}
