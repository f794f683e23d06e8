package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// LIFF reads the LINE user id set by the LIFF frontend, from the X-Line-Uid
// header or the uid cookie, and rejects requests without one.
func LIFF() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := c.Request().Header.Get(UIDHeader)
			if uid == "" {
				if ck, err := c.Cookie(UIDCookie); err == nil {
					uid = ck.Value
				}
			}
			if uid == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "LIFF required: missing UID"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}
