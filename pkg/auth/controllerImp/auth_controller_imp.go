package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"cropwater/pkg/auth/controller"
	fieldsvc "cropwater/pkg/field/service"
	"cropwater/pkg/middleware"
)

type authCtrl struct{ fields fieldsvc.FieldService }

func NewAuthController(fields fieldsvc.FieldService) controller.AuthController {
	return &authCtrl{fields: fields}
}

// DevLogin sets the farmer cookie for local testing without LINE.
func (h *authCtrl) DevLogin(c echo.Context) error {
	uid := strings.TrimSpace(c.QueryParam("uid"))
	if uid == "" {
		uid = middleware.DefaultDevUID
	}
	c.SetCookie(&http.Cookie{Name: middleware.UIDCookie, Value: uid, Path: "/", HttpOnly: true})
	return c.JSON(http.StatusOK, map[string]string{"uid": uid})
}

type whoAmI struct {
	UID    string `json:"uid"`
	Fields int    `json:"fields"`
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	fs, err := h.fields.ListFields(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, whoAmI{UID: uid, Fields: len(fs)})
}
