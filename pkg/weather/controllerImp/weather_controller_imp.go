package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"cropwater/entities"
	"cropwater/pkg/apierr"
	fieldsvc "cropwater/pkg/field/service"
	"cropwater/pkg/weather/service"
)

type WeatherCtrl struct {
	svc    service.WeatherService
	fields fieldsvc.FieldService
	loc    *time.Location
}

func New(svc service.WeatherService, fields fieldsvc.FieldService, loc *time.Location) *WeatherCtrl {
	return &WeatherCtrl{svc: svc, fields: fields, loc: loc}
}

type obsReq struct {
	Date      string   `json:"date"`
	TempMin   *float64 `json:"temp_min"`
	TempMax   *float64 `json:"temp_max"`
	Humidity  *float64 `json:"humidity"`
	WindSpeed *float64 `json:"wind_speed"`
	Rainfall  *float64 `json:"rainfall"`
	Note      string   `json:"note"`
}

func (h *WeatherCtrl) field(c echo.Context) (*entities.Field, error) {
	uid, _ := c.Get("uid").(string)
	id, err := apierr.ParamID(c, "id")
	if err != nil {
		return nil, err
	}
	return h.fields.GetFieldByID(id, uid)
}

func (h *WeatherCtrl) Create(c echo.Context) error {
	f, err := h.field(c)
	if err != nil {
		return apierr.JSON(c, err)
	}
	var req obsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Date == "" {
		req.Date = time.Now().In(h.loc).Format("2006-01-02")
	}
	o := &entities.WeatherObservation{
		FieldID: f.FieldID, Date: req.Date, TempMin: req.TempMin, TempMax: req.TempMax,
		Humidity: req.Humidity, WindSpeed: req.WindSpeed, Rainfall: req.Rainfall, Note: req.Note,
	}
	out, err := h.svc.Record(o)
	if err != nil {
		return apierr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *WeatherCtrl) List(c echo.Context) error {
	f, err := h.field(c)
	if err != nil {
		return apierr.JSON(c, err)
	}
	out, err := h.svc.List(f.FieldID, c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return apierr.JSON(c, err)
	}
	if out == nil {
		out = []entities.WeatherObservation{}
	}
	return c.JSON(http.StatusOK, out)
}
