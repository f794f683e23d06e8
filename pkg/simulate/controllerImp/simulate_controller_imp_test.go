package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"cropwater/pkg/reference"
	"cropwater/pkg/waterbalance"
)

func call(t *testing.T, h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	return rec
}

func newCtrl() *SimCtrl {
	return New(waterbalance.NewSimulator(reference.Defaults(), "Rice", "Red Soil"), time.UTC)
}

const riceReq = `{"crop_type":"Rice","soil_type":"Red Soil","planting_date":"2024-01-01"}`

func TestSimulate(t *testing.T) {
	h := newCtrl()
	rec := call(t, h.Simulate, http.MethodPost, "/simulate?today=2024-02-15", riceReq)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var out simulateResp
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.TotalWaterMM != 679.6 || out.IrrigationCount != 55 || out.TotalWaterLitersAcre != 2750237 {
		t.Errorf("totals = %+v", out.Output)
	}
	if out.Instruction.WaterFrequency != 2 || out.Instruction.CurrentStage != "development" {
		t.Errorf("instruction = %+v", out.Instruction)
	}
	if len(out.Schedule) != 55 || out.Trace != nil {
		t.Errorf("schedule %d, trace %d", len(out.Schedule), len(out.Trace))
	}

	rec = call(t, h.Simulate, http.MethodPost, "/simulate?today=2024-02-15&trace=1", riceReq)
	out = simulateResp{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Trace) != 120 || out.Trace[1].Irrigated != true {
		t.Errorf("trace = %d days", len(out.Trace))
	}
}

func TestSimulateErrors(t *testing.T) {
	h := newCtrl()
	tests := []struct {
		name, target, body string
		want               int
	}{
		{"malformed date", "/simulate", `{"crop_type":"Rice","soil_type":"Red Soil","planting_date":"2024-1-1"}`, http.StatusBadRequest},
		{"malformed today", "/simulate?today=soon", riceReq, http.StatusBadRequest},
		{"polar night", "/simulate", `{"crop_type":"Rice","soil_type":"Red Soil","planting_date":"2024-01-01","location":{"latitude":80}}`, http.StatusUnprocessableEntity},
		{"bad json", "/simulate", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := call(t, h.Simulate, http.MethodPost, tt.target, tt.body); rec.Code != tt.want {
				t.Errorf("status %d, want %d: %s", rec.Code, tt.want, rec.Body)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	rec := call(t, newCtrl().Compare, http.MethodPost, "/simulate/compare",
		`{"crop_type":"rice","soils":["Red Soil","Peat","Black Clayey Soil"],"planting_date":"2024-01-01"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var out struct {
		Crop    string       `json:"crop_type"`
		Results []compareRow `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Crop != "Rice" || len(out.Results) != 3 {
		t.Fatalf("out = %+v", out)
	}
	red, peat, black := out.Results[0], out.Results[1], out.Results[2]
	if red.Soil != "Red Soil" || black.Soil != "Black Clayey Soil" {
		t.Errorf("order = %q, %q, %q", red.Soil, peat.Soil, black.Soil)
	}
	if len(peat.Substitutions) != 1 || peat.Substitutions[0].Requested != "Peat" || peat.TotalWaterMM != red.TotalWaterMM {
		t.Errorf("peat row = %+v", peat)
	}
	if len(red.Substitutions) != 0 || red.IrrigationCount != 55 {
		t.Errorf("red row = %+v", red)
	}
}

func TestGuidanceAndReference(t *testing.T) {
	h := newCtrl()
	rec := call(t, h.Guidance, http.MethodGet, "/guidance?crop=%E0%AE%A8%E0%AF%86%E0%AE%B2%E0%AF%8D&stage=development", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Maintain water level at 1-2 cm") {
		t.Errorf("guidance: %d %s", rec.Code, rec.Body)
	}
	if rec := call(t, h.Guidance, http.MethodGet, "/guidance?crop=Rice&stage=flowering", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad stage: %d", rec.Code)
	}

	rec = call(t, h.Reference, http.MethodGet, "/reference", "")
	var ref struct {
		Crops []string `json:"crops"`
		Soils []string `json:"soils"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &ref); err != nil {
		t.Fatal(err)
	}
	if len(ref.Crops) != 5 || len(ref.Soils) != 4 {
		t.Errorf("reference = %+v", ref)
	}
}
