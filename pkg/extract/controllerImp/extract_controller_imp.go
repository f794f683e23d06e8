package controllerImp

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"cropwater/pkg/ai"
	"cropwater/pkg/reference"
	"cropwater/pkg/waterbalance"
)

type ExtractCtrl struct {
	llm    ai.Client
	tables *reference.Tables
}

func New(llm ai.Client, t *reference.Tables) *ExtractCtrl { return &ExtractCtrl{llm: llm, tables: t} }

type extractResp struct {
	SoilType     string   `json:"soil_type"`
	CropType     string   `json:"crop_type"`
	PlantingDate string   `json:"planting_date,omitempty"`
	Unrecognized []string `json:"unrecognized,omitempty"`
}

// Extract reads soil and crop from a farmer's message and maps them onto
// table keys. Names the tables cannot resolve are reported, not guessed.
func (h *ExtractCtrl) Extract(c echo.Context) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&body); err != nil || strings.TrimSpace(body.Text) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "text required"})
	}
	info, err := h.llm.ExtractFarmingInfo(c.Request().Context(), body.Text, h.tables.CropAliases(), h.tables.SoilAliases())
	if err != nil {
		log.Printf("[extract] %v", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "extraction failed"})
	}

	var out extractResp
	if info.SoilType != "" {
		if key, ok := h.tables.CanonicalSoil(info.SoilType); ok {
			out.SoilType = key
		} else {
			out.Unrecognized = append(out.Unrecognized, "soil: "+info.SoilType)
		}
	}
	if info.CropType != "" {
		if key, ok := h.tables.CanonicalCrop(info.CropType); ok {
			out.CropType = key
		} else {
			out.Unrecognized = append(out.Unrecognized, "crop: "+info.CropType)
		}
	}
	if info.PlantingDate != "" {
		if _, err := waterbalance.ParseDate(info.PlantingDate); err == nil {
			out.PlantingDate = info.PlantingDate
		} else {
			out.Unrecognized = append(out.Unrecognized, "planting_date: "+info.PlantingDate)
		}
	}
	return c.JSON(http.StatusOK, out)
}
