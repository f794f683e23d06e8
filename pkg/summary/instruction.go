package summary

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"cropwater/pkg/growth"
	"cropwater/pkg/reference"
	"cropwater/pkg/waterbalance"
)

// Instruction is the short advice stored with a plan and sent to farmers.
type Instruction struct {
	NextWaterDate     string  `json:"next_water_date,omitempty"`
	WaterFrequency    int     `json:"water_frequency"`
	CurrentStage      string  `json:"current_stage"`
	Guidance          string  `json:"guidance"`
	SimpleInstruction string  `json:"simple_instruction"`
	VolumeNote        string  `json:"volume_note"`
	LitersPerHa       float64 `json:"water_predicted"`
	LitersPerAcre     float64 `json:"water_predicted_acre"`
}

// WaterFrequency is the mean number of days between irrigation events,
// rounded. One event means weekly; none means zero.
func WaterFrequency(events []waterbalance.Event) int {
	switch len(events) {
	case 0:
		return 0
	case 1:
		return 7
	}
	first, err1 := waterbalance.ParseDate(events[0].Date)
	last, err2 := waterbalance.ParseDate(events[len(events)-1].Date)
	if err1 != nil || err2 != nil {
		return 0
	}
	// the mean of consecutive gaps telescopes to (last-first)/(n-1)
	span := last.Sub(first).Hours() / 24
	return int(math.Round(span / float64(len(events)-1)))
}

// DaysSince counts whole calendar days from planting to today. It is negative
// for a future planting date.
func DaysSince(planting string, today time.Time) (int, error) {
	p, err := waterbalance.ParseDate(planting)
	if err != nil {
		return 0, err
	}
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(p).Hours() / 24), nil
}

// BuildInstruction derives the farmer instruction for a finished run, as of
// today.
func BuildInstruction(res *waterbalance.Result, crop reference.CropProfile, today time.Time) (Instruction, error) {
	elapsed, err := DaysSince(res.PlantingDate, today)
	if err != nil {
		return Instruction{}, err
	}
	stage := string(growth.Resolve(crop, elapsed))
	out := Summarize(res)
	in := Instruction{
		WaterFrequency: WaterFrequency(res.Events),
		CurrentStage:   stage,
		Guidance:       Guidance(res.Crop, stage),
		LitersPerHa:    out.TotalWaterLitersPerHa,
		LitersPerAcre:  out.TotalWaterLitersAcre,
	}
	if len(res.Events) > 0 {
		in.NextWaterDate = res.Events[0].Date
	}
	in.SimpleInstruction = fmt.Sprintf("Water your %s every %d days. %s.", res.Crop, in.WaterFrequency, in.Guidance)
	in.VolumeNote = fmt.Sprintf("About %s liters per acre over %d days (%s per irrigation on average).",
		humanize.Comma(int64(in.LitersPerAcre)), res.TotalDays, perEvent(out))
	return in, nil
}

func perEvent(out Output) string {
	if out.IrrigationCount == 0 {
		return "no irrigation"
	}
	var sum float64
	for _, ev := range out.Schedule {
		sum += ev.AmountLitersPerHa
	}
	acre := math.Round(sum / float64(out.IrrigationCount) / waterbalance.LitersPerAcreDivisor)
	return humanize.Comma(int64(acre)) + " L/acre"
}
