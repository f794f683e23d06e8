package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"cropwater/database"
	"cropwater/pkg/ai"
	"cropwater/pkg/middleware"
	"cropwater/pkg/reference"
	"cropwater/pkg/waterbalance"

	advCtrlImp "cropwater/pkg/advisory/controllerImp"
	advRepoImp "cropwater/pkg/advisory/repositoryImp"
	advSvcImp "cropwater/pkg/advisory/serviceImp"
	authCtrlImp "cropwater/pkg/auth/controllerImp"
	extractCtrlImp "cropwater/pkg/extract/controllerImp"
	fieldCtrlImp "cropwater/pkg/field/controllerImp"
	fieldRepoImp "cropwater/pkg/field/repositoryImp"
	fieldSvcImp "cropwater/pkg/field/serviceImp"
	healthCtrlImp "cropwater/pkg/health/controllerImp"
	planCtrlImp "cropwater/pkg/plan/controllerImp"
	planRepoImp "cropwater/pkg/plan/repositoryImp"
	planSvcImp "cropwater/pkg/plan/serviceImp"
	schedCtrlImp "cropwater/pkg/schedule/controllerImp"
	schedRepoImp "cropwater/pkg/schedule/repositoryImp"
	schedSvcImp "cropwater/pkg/schedule/serviceImp"
	simCtrlImp "cropwater/pkg/simulate/controllerImp"
	weatherCtrlImp "cropwater/pkg/weather/controllerImp"
	weatherRepoImp "cropwater/pkg/weather/repositoryImp"
	weatherSvcImp "cropwater/pkg/weather/serviceImp"
)

func newServer(t *testing.T, liff bool) *echo.Echo {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	tables := reference.Defaults()
	sim := waterbalance.NewSimulator(tables, "Rice", "Red Soil")
	llm := ai.NewMock()

	fSvc := fieldSvcImp.NewFieldService(fieldRepoImp.New(db), tables)
	wSvc := weatherSvcImp.NewWeatherService(weatherRepoImp.New(db))
	sRepo := schedRepoImp.New(db)
	advSvc := advSvcImp.New(advRepoImp.New(db))
	pSvc := planSvcImp.NewPlanService(sim, llm, planRepoImp.New(db), sRepo, wSvc, advSvc, time.UTC)

	return New(
		echo.New(),
		middleware.Auth(liff),
		fieldCtrlImp.New(fSvc),
		planCtrlImp.NewPlanCtrl(pSvc, fSvc),
		weatherCtrlImp.New(wSvc, fSvc, time.UTC),
		schedCtrlImp.New(schedSvcImp.NewScheduleService(sRepo), fSvc),
		simCtrlImp.New(sim, time.UTC),
		extractCtrlImp.New(llm, tables),
		authCtrlImp.NewAuthController(fSvc),
		advCtrlImp.New(advSvc, nil, 1<<20),
		healthCtrlImp.NewHealthCtrl(db, tables),
	)
}

func do(t *testing.T, e *echo.Echo, method, path, body, uid string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if uid != "" {
		req.AddCookie(&http.Cookie{Name: middleware.UIDCookie, Value: uid})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body, err)
	}
}

type task struct {
	TaskID    uint     `json:"task_id"`
	PlanID    uint     `json:"plan_id"`
	Date      string   `json:"date"`
	Status    string   `json:"status"`
	AppliedMM *float64 `json:"applied_mm"`
}

func TestFieldPlanScheduleFlow(t *testing.T) {
	e := newServer(t, false)

	rec := do(t, e, http.MethodPost, "/fields",
		`{"name":"north","crop_type":"நெல்","soil_type":"red soil","planting_date":"2024-01-01","area_acres":2}`, "U1")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create field: %d %s", rec.Code, rec.Body)
	}
	var field struct {
		FieldID  uint   `json:"field_id"`
		CropType string `json:"crop_type"`
		SoilType string `json:"soil_type"`
	}
	decode(t, rec, &field)
	if field.CropType != "Rice" || field.SoilType != "Red Soil" {
		t.Errorf("field = %+v", field)
	}
	base := fmt.Sprintf("/fields/%d", field.FieldID)

	if rec := do(t, e, http.MethodGet, base, "", "U2"); rec.Code != http.StatusNotFound {
		t.Errorf("other farmer sees field: %d", rec.Code)
	}
	rec = do(t, e, http.MethodGet, "/whoami", "", "U1")
	var me struct {
		UID    string `json:"uid"`
		Fields int    `json:"fields"`
	}
	decode(t, rec, &me)
	if me.UID != "U1" || me.Fields != 1 {
		t.Errorf("whoami = %+v", me)
	}
	rec = do(t, e, http.MethodGet, "/fields", "", "U2")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("fields of U2 = %s", rec.Body)
	}
	if rec := do(t, e, http.MethodPost, "/fields", `{"crop_type":"Rice","soil_type":"Red Soil","planting_date":"01/01/2024"}`, "U1"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad planting date: %d", rec.Code)
	}

	rec = do(t, e, http.MethodPost, base+"/plan", "", "U1")
	if rec.Code != http.StatusCreated {
		t.Fatalf("plan: %d %s", rec.Code, rec.Body)
	}
	var gen struct {
		Plan struct {
			PlanID       uint    `json:"plan_id"`
			Version      int     `json:"version"`
			TotalWaterMM float64 `json:"total_water_mm"`
		} `json:"plan"`
		Tasks []task `json:"tasks"`
	}
	decode(t, rec, &gen)
	if gen.Plan.Version != 1 || gen.Plan.TotalWaterMM != 679.6 || len(gen.Tasks) != 55 {
		t.Fatalf("generated = %+v with %d tasks", gen.Plan, len(gen.Tasks))
	}

	rec = do(t, e, http.MethodGet, base+"/plan?format=calendar", "", "U1")
	var cal struct {
		PlanID   uint                             `json:"plan_id"`
		Calendar map[string][]planCtrlImp.CalItem `json:"calendar"`
	}
	decode(t, rec, &cal)
	if cal.PlanID != gen.Plan.PlanID || len(cal.Calendar["2024-01-02"]) != 1 {
		t.Errorf("calendar = %+v", cal)
	}

	rec = do(t, e, http.MethodGet, base+"/schedule?from=2024-01-01&to=2024-01-10", "", "U1")
	var early []task
	decode(t, rec, &early)
	if len(early) == 0 {
		t.Fatal("no tasks in the first ten days")
	}
	for _, tk := range early {
		if tk.Date > "2024-01-10" {
			t.Errorf("task %d dated %s outside the range", tk.TaskID, tk.Date)
		}
	}
	first := early[0].TaskID
	if rec := do(t, e, http.MethodGet, base+"/schedule?from=Jan", "", "U1"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad from: %d", rec.Code)
	}

	patch := fmt.Sprintf("/schedule/%d", first)
	if rec := do(t, e, http.MethodPatch, patch, `{"status":"done"}`, "U2"); rec.Code != http.StatusNotFound {
		t.Errorf("patch by other farmer: %d", rec.Code)
	}
	if rec := do(t, e, http.MethodPatch, patch, `{"status":"notified"}`, "U1"); rec.Code != http.StatusBadRequest {
		t.Errorf("patch to notified: %d", rec.Code)
	}
	rec = do(t, e, http.MethodPatch, patch, `{"status":"done","applied_mm":9.5}`, "U1")
	var patched task
	decode(t, rec, &patched)
	if rec.Code != http.StatusOK || patched.Status != "done" || patched.AppliedMM == nil || *patched.AppliedMM != 9.5 {
		t.Errorf("patch: %d %+v", rec.Code, patched)
	}

	rec = do(t, e, http.MethodPost, base+"/weather", `{"date":"2024-01-01","temp_max":41,"humidity":20}`, "U1")
	if rec.Code != http.StatusCreated {
		t.Fatalf("weather: %d %s", rec.Code, rec.Body)
	}
	if rec := do(t, e, http.MethodPost, base+"/weather", `{"date":"2024-01-02","humidity":140}`, "U1"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad humidity: %d", rec.Code)
	}

	rec = do(t, e, http.MethodPost, base+"/replan", `{"reason":"heat wave"}`, "U1")
	var rep struct {
		Changed bool `json:"changed"`
		Plan    struct {
			Version int `json:"version"`
		} `json:"plan"`
		Replan struct {
			Reason string `json:"reason"`
		} `json:"replan"`
	}
	decode(t, rec, &rep)
	if rec.Code != http.StatusOK || !rep.Changed || rep.Plan.Version != 2 || rep.Replan.Reason != "heat wave" {
		t.Errorf("replan: %d %s", rec.Code, rec.Body)
	}

	// the completed task survives the replan, open v1 tasks do not
	rec = do(t, e, http.MethodGet, base+"/schedule?to=2024-01-10", "", "U1")
	var after []task
	decode(t, rec, &after)
	kept := false
	for _, tk := range after {
		if tk.TaskID == first {
			kept = tk.Status == "done"
		} else if tk.PlanID == gen.Plan.PlanID {
			t.Errorf("open task %d of the old plan still listed", tk.TaskID)
		}
	}
	if !kept {
		t.Error("completed task missing after replan")
	}

	rec = do(t, e, http.MethodGet, base+"/plan", "", "U1")
	var plans []json.RawMessage
	decode(t, rec, &plans)
	if len(plans) != 2 {
		t.Errorf("plan versions = %d", len(plans))
	}

	rec = do(t, e, http.MethodGet, base+"/replans", "", "U1")
	var logs []struct {
		PlanID uint   `json:"plan_id"`
		Reason string `json:"reason"`
	}
	decode(t, rec, &logs)
	if len(logs) != 1 || logs[0].Reason != "heat wave" {
		t.Errorf("replans: %s", rec.Body)
	}
}

func TestStatelessRoutesNeedNoLogin(t *testing.T) {
	e := newServer(t, true)
	if rec := do(t, e, http.MethodPost, "/simulate", `{"crop_type":"Cotton","soil_type":"Black Clayey Soil","planting_date":"2024-06-15"}`, ""); rec.Code != http.StatusOK {
		t.Errorf("simulate: %d %s", rec.Code, rec.Body)
	}
	if rec := do(t, e, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Errorf("health: %d", rec.Code)
	}
	if rec := do(t, e, http.MethodGet, "/fields/1", "", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("fields without LIFF uid: %d", rec.Code)
	}
}
