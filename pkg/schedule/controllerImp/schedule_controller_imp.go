package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cropwater/entities"
	"cropwater/pkg/apierr"
	fieldsvc "cropwater/pkg/field/service"
	"cropwater/pkg/schedule/service"
)

type SchedCtrl struct {
	svc    service.ScheduleService
	fields fieldsvc.FieldService
}

func New(svc service.ScheduleService, fields fieldsvc.FieldService) *SchedCtrl {
	return &SchedCtrl{svc: svc, fields: fields}
}

func (h *SchedCtrl) List(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	fid, err := apierr.ParamID(c, "id")
	if err != nil {
		return apierr.JSON(c, err)
	}
	if _, err := h.fields.GetFieldByID(fid, uid); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "field not found"})
	}
	out, err := h.svc.List(fid, c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return apierr.JSON(c, err)
	}
	if out == nil {
		out = []entities.IrrigationTask{}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SchedCtrl) Patch(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	tid, err := apierr.ParamID(c, "task_id")
	if err != nil {
		return apierr.JSON(c, err)
	}
	var body struct {
		Status    string   `json:"status"`
		AppliedMM *float64 `json:"applied_mm"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	t, err := h.svc.Patch(tid, uid, body.Status, body.AppliedMM)
	if err != nil {
		return apierr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, t)
}
