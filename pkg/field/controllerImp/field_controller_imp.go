package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cropwater/entities"
	"cropwater/pkg/apierr"
	"cropwater/pkg/field/service"
)

type FieldCtrl struct{ svc service.FieldService }

func New(svc service.FieldService) *FieldCtrl { return &FieldCtrl{svc} }

type createReq struct {
	Name         string   `json:"name"`
	CropType     string   `json:"crop_type"`
	SoilType     string   `json:"soil_type"`
	PlantingDate string   `json:"planting_date"`
	AreaAcres    float64  `json:"area_acres"`
	District     string   `json:"district"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Elevation    *float64 `json:"elevation"`
	WaterSource  string   `json:"water_source"`
}

func (h *FieldCtrl) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	f := &entities.Field{
		UserID: uid, Name: req.Name, CropType: req.CropType, SoilType: req.SoilType,
		PlantingDate: req.PlantingDate, AreaAcres: req.AreaAcres, District: req.District,
		Latitude: req.Latitude, Longitude: req.Longitude, Elevation: req.Elevation, WaterSource: req.WaterSource,
	}
	out, err := h.svc.CreateField(f)
	if err != nil {
		return apierr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *FieldCtrl) Get(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	id, err := apierr.ParamID(c, "id")
	if err != nil {
		return apierr.JSON(c, err)
	}
	f, err := h.svc.GetFieldByID(id, uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FieldCtrl) List(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	fs, err := h.svc.ListFields(uid)
	if err != nil {
		return apierr.JSON(c, err)
	}
	if fs == nil {
		fs = []entities.Field{}
	}
	return c.JSON(http.StatusOK, fs)
}
