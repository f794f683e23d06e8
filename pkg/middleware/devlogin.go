package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	UIDCookie     = "LINE_UID"
	UIDHeader     = "X-Line-Uid"
	DefaultDevUID = "U_DEV_DEFAULT"
)

// DevLogin trusts the uid cookie or ?uid= and falls back to a shared
// development user. Never enable it in front of real farmers.
func DevLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := ""
			if ck, err := c.Cookie(UIDCookie); err == nil {
				uid = ck.Value
			}
			if uid == "" {
				uid = c.QueryParam("uid")
				if uid == "" {
					uid = DefaultDevUID
				}
				c.SetCookie(&http.Cookie{Name: UIDCookie, Value: uid, Path: "/"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}

// Auth picks LIFF or DevLogin.
func Auth(liff bool) echo.MiddlewareFunc {
	if liff {
		return LIFF()
	}
	return DevLogin()
}
