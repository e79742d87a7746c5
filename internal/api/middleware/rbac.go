package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/platform-api/internal/core/domain"
)

// RBAC enforces role-based access control. SUPER_ADMIN is implicitly allowed
// wherever ADMIN is, so routes only ever name ADMIN. A failing check yields
// 403, never 401: the caller is authenticated, just not entitled, and its
// session must survive.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles)+1)
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
		if r == domain.RoleAdmin {
			allowed[domain.RoleSuperAdmin] = struct{}{}
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
