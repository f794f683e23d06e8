// Package summary turns a simulation result into the rounded record shown to
// farmers and stored with a plan.
package summary

import (
	"math"

	"cropwater/pkg/waterbalance"
)

type Event struct {
	DayNum            int     `json:"day_num"`
	Date              string  `json:"date"`
	AmountMM          float64 `json:"amount_mm"`
	AmountLitersPerHa float64 `json:"amount_liters_per_ha"`
	Stage             string  `json:"stage"`
}

// Output is the flat, rounded result record.
type Output struct {
	TotalWaterMM          float64 `json:"total_water_mm"`
	TotalWaterLitersPerHa float64 `json:"total_water_liters_per_ha"`
	TotalWaterLitersAcre  float64 `json:"total_water_liters_per_acre"`
	IrrigationCount       int     `json:"irrigation_count"`
	DailyAvgMM            float64 `json:"daily_avg_mm"`
	DailyAvgLitersPerHa   float64 `json:"daily_avg_liters_per_ha"`
	DailyAvgLitersAcre    float64 `json:"daily_avg_liters_per_acre"`
	Schedule              []Event `json:"schedule"`
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Summarize rounds millimetres to one decimal and litres to whole numbers.
// Per-acre totals are derived from the already rounded per-hectare total.
func Summarize(res *waterbalance.Result) Output {
	days := float64(res.TotalDays)
	perHa := round(res.TotalMM*10000, 0)
	out := Output{
		TotalWaterMM:          round(res.TotalMM, 1),
		TotalWaterLitersPerHa: perHa,
		TotalWaterLitersAcre:  math.Round(perHa / waterbalance.LitersPerAcreDivisor),
		IrrigationCount:       len(res.Events),
		Schedule:              make([]Event, 0, len(res.Events)),
	}
	if days > 0 {
		avg := res.TotalMM / days
		out.DailyAvgMM = round(avg, 1)
		out.DailyAvgLitersPerHa = round(avg*10000, 0)
		out.DailyAvgLitersAcre = math.Round(avg * 10000 / waterbalance.LitersPerAcreDivisor)
	}
	for _, ev := range res.Events {
		out.Schedule = append(out.Schedule, Event{
			DayNum:            ev.DayNum,
			Date:              ev.Date,
			AmountMM:          round(ev.AmountMM, 1),
			AmountLitersPerHa: round(ev.AmountLitersPerHa, 0),
			Stage:             string(ev.Stage),
		})
	}
	return out
}
