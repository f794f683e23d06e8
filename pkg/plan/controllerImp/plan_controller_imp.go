package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cropwater/entities"
	"cropwater/pkg/apierr"
	fieldsvc "cropwater/pkg/field/service"
	"cropwater/pkg/plan/service"
)

type PlanCtrl struct {
	svc    service.PlanService
	fields fieldsvc.FieldService
}

func NewPlanCtrl(svc service.PlanService, fields fieldsvc.FieldService) *PlanCtrl {
	return &PlanCtrl{svc: svc, fields: fields}
}

type CalItem struct {
	TaskID      uint     `json:"task_id"`
	DayNum      int      `json:"day_num"`
	Stage       string   `json:"stage"`
	AmountMM    float64  `json:"amount_mm"`
	LitersPerHa float64  `json:"amount_liters_per_ha"`
	LitersField float64  `json:"liters_field"`
	AppliedMM   *float64 `json:"applied_mm,omitempty"`
	Status      string   `json:"status"`
}

// calendar groups tasks by "YYYY-MM-DD".
func calendar(tasks []entities.IrrigationTask) map[string][]CalItem {
	cal := map[string][]CalItem{}
	for _, t := range tasks {
		cal[t.Date] = append(cal[t.Date], CalItem{
			TaskID: t.TaskID, DayNum: t.DayNum, Stage: t.Stage, AmountMM: t.AmountMM,
			LitersPerHa: t.LitersPerHa, LitersField: t.LitersField, AppliedMM: t.AppliedMM, Status: t.Status,
		})
	}
	return cal
}

func (h *PlanCtrl) field(c echo.Context) (*entities.Field, error) {
	uid, _ := c.Get("uid").(string)
	fid, err := apierr.ParamID(c, "id")
	if err != nil {
		return nil, err
	}
	f, err := h.fields.GetFieldByID(fid, uid)
	if err != nil {
		return nil, apierr.ErrNotFound
	}
	return f, nil
}

func respond(c echo.Context, status int, f *entities.Field, out *service.Outcome) error {
	var resp map[string]any
	if c.QueryParam("format") == "calendar" {
		resp = map[string]any{
			"field_id": f.FieldID,
			"plan_id":  out.Plan.PlanID,
			"run_id":   out.Plan.RunID,
			"version":  out.Plan.Version,
			"calendar": calendar(out.Tasks),
			"articles": out.Plan.Articles,
		}
	} else {
		resp = map[string]any{"plan": out.Plan, "tasks": out.Tasks}
	}
	if out.Replan != nil {
		resp["replan"] = out.Replan
	}
	if c.Request().Method == http.MethodPost {
		resp["changed"] = out.Changed
	}
	if c.QueryParam("trace") == "1" && out.Trace != nil {
		resp["trace"] = out.Trace
	}
	return c.JSON(status, resp)
}

func (h *PlanCtrl) Generate(c echo.Context) error {
	f, err := h.field(c)
	if err != nil {
		return apierr.JSON(c, err)
	}
	out, err := h.svc.Generate(c.Request().Context(), f)
	if err != nil {
		return apierr.JSON(c, err)
	}
	return respond(c, http.StatusCreated, f, out)
}

func (h *PlanCtrl) Replan(c echo.Context) error {
	f, err := h.field(c)
	if err != nil {
		return apierr.JSON(c, err)
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.Replan(c.Request().Context(), f, body.Reason)
	if err != nil {
		return apierr.JSON(c, err)
	}
	return respond(c, http.StatusOK, f, out)
}

// List returns every plan version, or the latest plan's calendar with
// ?format=calendar.
func (h *PlanCtrl) List(c echo.Context) error {
	f, err := h.field(c)
	if err != nil {
		return apierr.JSON(c, err)
	}
	if c.QueryParam("format") == "calendar" {
		out, err := h.svc.Latest(f.FieldID)
		if err != nil {
			return apierr.JSON(c, err)
		}
		return respond(c, http.StatusOK, f, out)
	}
	ps, err := h.svc.List(f.FieldID)
	if err != nil {
		return apierr.JSON(c, err)
	}
	if ps == nil {
		ps = []entities.Plan{}
	}
	return c.JSON(http.StatusOK, ps)
}

func (h *PlanCtrl) History(c echo.Context) error {
	f, err := h.field(c)
	if err != nil {
		return apierr.JSON(c, err)
	}
	logs, err := h.svc.History(f.FieldID)
	if err != nil {
		return apierr.JSON(c, err)
	}
	if logs == nil {
		logs = []entities.ReplanLog{}
	}
	return c.JSON(http.StatusOK, logs)
}
