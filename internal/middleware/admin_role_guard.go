package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ADMINロールのみ許可する。AuthJWTの後に挟むこと。
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role != "ADMIN" {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}
			return next(c)
		}
	}
}
