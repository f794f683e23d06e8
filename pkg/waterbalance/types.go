package waterbalance

import (
	"errors"
	"fmt"

	"cropwater/pkg/reference"
)

// LitersPerAcreDivisor converts per-hectare volumes to per-acre volumes.
const LitersPerAcreDivisor = 2.47105

// litersPerMM is the volume of 1 mm of water over one hectare.
const litersPerMM = 10000.0

var (
	ErrMalformedDate    = errors.New("planting date must be YYYY-MM-DD")
	ErrUnknownReference = errors.New("unknown reference key")
)

// DayError reports the simulated day on which a run failed.
type DayError struct {
	Day  int
	Date string
	Err  error
}

func (e *DayError) Error() string {
	return fmt.Sprintf("day %d (%s): %v", e.Day, e.Date, e.Err)
}

func (e *DayError) Unwrap() error { return e.Err }

// DailyWeather is one observed day. Nil fields fall back to the regional
// defaults. Rainfall is carried for reporting only; the balance ignores it.
type DailyWeather struct {
	Date      string   `json:"date,omitempty"`
	TempMin   *float64 `json:"temp_min,omitempty"`
	TempMax   *float64 `json:"temp_max,omitempty"`
	Humidity  *float64 `json:"humidity,omitempty"`
	WindSpeed *float64 `json:"wind_speed,omitempty"`
	Rainfall  *float64 `json:"rainfall,omitempty"`
}

// Request describes one simulation. Weather[i] is the observation for day
// i+1 counted from the planting date; days beyond it use defaults.
type Request struct {
	Crop         string              `json:"crop_type"`
	Soil         string              `json:"soil_type"`
	PlantingDate string              `json:"planting_date"`
	Location     *reference.Location `json:"location,omitempty"`
	Weather      []DailyWeather      `json:"weather,omitempty"`
}

type Event struct {
	DayNum            int             `json:"day_num"`
	Date              string          `json:"date"`
	AmountMM          float64         `json:"amount_mm"`
	AmountLitersPerHa float64         `json:"amount_liters_per_ha"`
	Stage             reference.Stage `json:"stage"`
}

// Day is the trace of one iteration of the balance.
type Day struct {
	DayNum    int             `json:"day_num"`
	Date      string          `json:"date"`
	Stage     reference.Stage `json:"stage"`
	Kc        float64         `json:"kc"`
	ET0       float64         `json:"et0"`
	ETc       float64         `json:"etc"`
	AWMax     float64         `json:"available_water_max"`
	Storage   float64         `json:"storage"` // after ETc, before any irrigation
	Depletion float64         `json:"depletion"`
	Irrigated bool            `json:"irrigated"`
}

// Substitution records a reference key that was replaced by a default.
type Substitution struct {
	Kind      string `json:"kind"` // crop | soil
	Requested string `json:"requested"`
	Used      string `json:"used"`
}

func (s Substitution) String() string {
	return fmt.Sprintf("%s %q not found, used %q", s.Kind, s.Requested, s.Used)
}

// Result holds unrounded totals; see package summary for the flat output.
type Result struct {
	Crop         string             `json:"crop_type"`
	Soil         string             `json:"soil_type"`
	PlantingDate string             `json:"planting_date"`
	TotalDays    int                `json:"total_days"`
	Location     reference.Location `json:"location"`

	TotalMM               float64 `json:"total_water_mm"`
	TotalLitersPerHa      float64 `json:"total_water_liters_per_ha"`
	TotalLitersPerAcre    float64 `json:"total_water_liters_per_acre"`
	IrrigationCount       int     `json:"irrigation_count"`
	DailyAvgMM            float64 `json:"daily_avg_mm"`
	DailyAvgLitersPerHa   float64 `json:"daily_avg_liters_per_ha"`
	DailyAvgLitersPerAcre float64 `json:"daily_avg_liters_per_acre"`

	Events        []Event        `json:"schedule"`
	Substitutions []Substitution `json:"substitutions,omitempty"`
	Days          []Day          `json:"days,omitempty"`
}
