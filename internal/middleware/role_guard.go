package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole は AuthJWT の後ろで使う。contextのroleが roles のどれかなら通す。
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}
			return next(c)
		}
	}
}

func AdminOnly() echo.MiddlewareFunc {
	return RequireRole(RoleAdmin)
}
