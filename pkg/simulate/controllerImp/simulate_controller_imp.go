package controllerImp

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"cropwater/pkg/apierr"
	"cropwater/pkg/reference"
	"cropwater/pkg/summary"
	"cropwater/pkg/waterbalance"
)

// SimCtrl serves simulations that are not tied to a stored field.
type SimCtrl struct {
	sim *waterbalance.Simulator
	loc *time.Location
}

func New(sim *waterbalance.Simulator, loc *time.Location) *SimCtrl {
	if loc == nil {
		loc = time.UTC
	}
	return &SimCtrl{sim: sim, loc: loc}
}

type simulateResp struct {
	Crop         string `json:"crop_type"`
	Soil         string `json:"soil_type"`
	PlantingDate string `json:"planting_date"`
	TotalDays    int    `json:"total_days"`
	summary.Output
	Substitutions []waterbalance.Substitution `json:"substitutions,omitempty"`
	Instruction   summary.Instruction         `json:"instruction"`
	Trace         []waterbalance.Day          `json:"trace,omitempty"`
}

// today reads ?today=YYYY-MM-DD, defaulting to the current date in h.loc.
func (h *SimCtrl) today(c echo.Context) (time.Time, error) {
	if v := c.QueryParam("today"); v != "" {
		return waterbalance.ParseDate(v)
	}
	return time.Now().In(h.loc), nil
}

func (h *SimCtrl) Simulate(c echo.Context) error {
	var req waterbalance.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	today, err := h.today(c)
	if err != nil {
		return apierr.JSON(c, err)
	}
	res, err := h.sim.Run(req)
	if err != nil {
		return apierr.JSON(c, err)
	}
	crop, _ := h.sim.Tables().Crop(res.Crop)
	ins, err := summary.BuildInstruction(res, crop, today)
	if err != nil {
		return apierr.JSON(c, err)
	}
	out := simulateResp{
		Crop:          res.Crop,
		Soil:          res.Soil,
		PlantingDate:  res.PlantingDate,
		TotalDays:     res.TotalDays,
		Output:        summary.Summarize(res),
		Substitutions: res.Substitutions,
		Instruction:   ins,
	}
	if c.QueryParam("trace") == "1" {
		out.Trace = res.Days
	}
	return c.JSON(http.StatusOK, out)
}

type compareReq struct {
	Crop         string                      `json:"crop_type"`
	Soils        []string                    `json:"soils"`
	PlantingDate string                      `json:"planting_date"`
	Location     *reference.Location         `json:"location,omitempty"`
	Weather      []waterbalance.DailyWeather `json:"weather,omitempty"`
}

type compareRow struct {
	Soil                 string                      `json:"soil_type"`
	TotalWaterMM         float64                     `json:"total_water_mm"`
	TotalWaterLitersAcre float64                     `json:"total_water_liters_per_acre"`
	IrrigationCount      int                         `json:"irrigation_count"`
	WaterFrequency       int                         `json:"water_frequency"`
	Substitutions        []waterbalance.Substitution `json:"substitutions,omitempty"`
}

// Compare runs one crop on several soils, every loaded soil when none are
// named, and returns the rows in request order.
func (h *SimCtrl) Compare(c echo.Context) error {
	var req compareReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	soils := req.Soils
	if len(soils) == 0 {
		soils = h.sim.Tables().SoilNames()
	}
	if len(soils) > 32 {
		return apierr.JSON(c, fmt.Errorf("%w: at most 32 soils per comparison", apierr.ErrBadRequest))
	}
	reqs := make([]waterbalance.Request, len(soils))
	for i, s := range soils {
		reqs[i] = waterbalance.Request{
			Crop: req.Crop, Soil: s, PlantingDate: req.PlantingDate, Location: req.Location, Weather: req.Weather,
		}
	}
	results, err := waterbalance.RunBatch(c.Request().Context(), h.sim, reqs)
	if err != nil {
		return apierr.JSON(c, err)
	}
	rows := make([]compareRow, len(results))
	for i, res := range results {
		out := summary.Summarize(res)
		rows[i] = compareRow{
			Soil:                 res.Soil,
			TotalWaterMM:         out.TotalWaterMM,
			TotalWaterLitersAcre: out.TotalWaterLitersAcre,
			IrrigationCount:      out.IrrigationCount,
			WaterFrequency:       summary.WaterFrequency(res.Events),
			Substitutions:        res.Substitutions,
		}
	}
	return c.JSON(http.StatusOK, map[string]any{"crop_type": results[0].Crop, "results": rows})
}

func (h *SimCtrl) Guidance(c echo.Context) error {
	stage, ok := reference.ParseStage(strings.TrimSpace(c.QueryParam("stage")))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "stage must be one of initial, development, mid_season, late_season"})
	}
	crop, _ := h.sim.Tables().CanonicalCrop(c.QueryParam("crop"))
	return c.JSON(http.StatusOK, map[string]string{
		"crop":     crop,
		"stage":    string(stage),
		"guidance": summary.Guidance(crop, string(stage)),
	})
}

func (h *SimCtrl) Reference(c echo.Context) error {
	t := h.sim.Tables()
	return c.JSON(http.StatusOK, map[string]any{
		"crops":        t.CropNames(),
		"soils":        t.SoilNames(),
		"crop_aliases": t.CropAliases(),
		"soil_aliases": t.SoilAliases(),
		"location":     t.Location,
	})
}
