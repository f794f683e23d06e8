// Package waterbalance runs the day-by-day root-zone soil moisture balance
// for one crop season and derives the irrigation schedule from it.
package waterbalance

import (
	"fmt"
	"log"
	"math"
	"regexp"
	"time"

	"cropwater/pkg/climate"
	"cropwater/pkg/growth"
	"cropwater/pkg/reference"
)

const dateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Simulator is safe for concurrent use; it only reads its tables.
type Simulator struct {
	tables      *reference.Tables
	defaultCrop string
	defaultSoil string
}

// NewSimulator binds reference tables to the keys used when a request names
// an unknown crop or soil.
func NewSimulator(t *reference.Tables, defaultCrop, defaultSoil string) *Simulator {
	return &Simulator{tables: t, defaultCrop: defaultCrop, defaultSoil: defaultSoil}
}

func (s *Simulator) Tables() *reference.Tables { return s.tables }

// ParseDate accepts only zero-padded calendar dates.
func ParseDate(v string) (time.Time, error) {
	if !datePattern.MatchString(v) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, v)
	}
	d, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrMalformedDate, v, err)
	}
	return d, nil
}

func (s *Simulator) resolve(req Request) (reference.CropProfile, reference.SoilProfile, []Substitution, error) {
	var subs []Substitution

	cropKey, ok := s.tables.CanonicalCrop(req.Crop)
	if !ok {
		subs = append(subs, Substitution{Kind: "crop", Requested: req.Crop, Used: s.defaultCrop})
		cropKey = s.defaultCrop
	}
	crop, ok := s.tables.Crop(cropKey)
	if !ok {
		return crop, reference.SoilProfile{}, nil, fmt.Errorf("%w: crop %q and default %q", ErrUnknownReference, req.Crop, s.defaultCrop)
	}

	soilKey, ok := s.tables.CanonicalSoil(req.Soil)
	if !ok {
		subs = append(subs, Substitution{Kind: "soil", Requested: req.Soil, Used: s.defaultSoil})
		soilKey = s.defaultSoil
	}
	soil, ok := s.tables.Soil(soilKey)
	if !ok {
		return crop, soil, nil, fmt.Errorf("%w: soil %q and default %q", ErrUnknownReference, req.Soil, s.defaultSoil)
	}

	for _, sub := range subs {
		log.Printf("[sim] warning: %s", sub)
	}
	return crop, soil, subs, nil
}

// availableWater is the plant-available water (mm) held over the root depth.
func availableWater(soil reference.SoilProfile, root float64) float64 {
	return (soil.FieldCapacity - soil.WiltingPoint) / 100 * root * 1000
}

func weatherFor(req Request, day int) climate.ET0Input {
	in := climate.ET0Input{
		TempMin:   climate.DefaultTempMin,
		TempMax:   climate.DefaultTempMax,
		WindSpeed: climate.DefaultWindSpeed,
		RHMin:     climate.DefaultRHMin,
		RHMax:     climate.DefaultRHMax,
	}
	if day >= len(req.Weather) {
		return in
	}
	w := req.Weather[day]
	if w.TempMin != nil {
		in.TempMin = *w.TempMin
	}
	if w.TempMax != nil {
		in.TempMax = *w.TempMax
	}
	if w.WindSpeed != nil {
		in.WindSpeed = *w.WindSpeed
	}
	h := climate.DefaultHumidity
	if w.Humidity != nil {
		h = *w.Humidity
	}
	in.RHMin, in.RHMax = climate.HumidityBand(h)
	return in
}

// Run simulates one full season. Storage starts at field capacity for the
// initial root depth, loses ETc each day and is refilled to capacity whenever
// depletion exceeds the stage's critical fraction. Storage is not rescaled
// when the root zone grows at a stage change.
func (s *Simulator) Run(req Request) (*Result, error) {
	start, err := ParseDate(req.PlantingDate)
	if err != nil {
		return nil, err
	}
	crop, soil, subs, err := s.resolve(req)
	if err != nil {
		return nil, err
	}
	loc := s.tables.Location
	if req.Location != nil {
		loc = *req.Location
	}

	total := growth.TotalDays(crop)
	res := &Result{
		Crop:          crop.Name,
		Soil:          soil.Name,
		PlantingDate:  req.PlantingDate,
		TotalDays:     total,
		Location:      loc,
		Events:        []Event{},
		Substitutions: subs,
		Days:          make([]Day, 0, total),
	}

	storage := availableWater(soil, crop.RootDepth.At(reference.StageInitial))
	date := start
	for d := 0; d < total; d++ {
		stage := growth.Resolve(crop, d)
		kc := crop.Kc.At(stage)
		awmax := availableWater(soil, crop.RootDepth.At(stage))
		critical := crop.CriticalDepletion.At(stage)
		day := date.Format(dateLayout)

		in := weatherFor(req, d)
		in.Elevation = loc.Elevation
		in.Latitude = loc.Latitude
		in.DayOfYear = date.YearDay()
		et0, err := climate.ET0(in)
		if err != nil {
			return nil, &DayError{Day: d + 1, Date: day, Err: err}
		}
		etc := et0 * kc

		storage -= etc
		depletion := 1 - storage/awmax
		if math.IsNaN(depletion) || math.IsInf(depletion, 0) || math.IsNaN(etc) || math.IsInf(etc, 0) {
			return nil, &DayError{Day: d + 1, Date: day, Err: &climate.DomainError{
				Step: "water balance", Detail: fmt.Sprintf("etc %v storage %v awmax %v", etc, storage, awmax)}}
		}
		trace := Day{
			DayNum: d + 1, Date: day, Stage: stage, Kc: kc,
			ET0: et0, ETc: etc, AWMax: awmax, Storage: storage, Depletion: depletion,
		}
		if depletion > critical {
			amount := awmax - storage
			res.Events = append(res.Events, Event{
				DayNum:            d + 1,
				Date:              day,
				AmountMM:          amount,
				AmountLitersPerHa: amount * litersPerMM,
				Stage:             stage,
			})
			storage = awmax
			trace.Irrigated = true
		}
		res.Days = append(res.Days, trace)
		res.TotalMM += etc
		date = date.AddDate(0, 0, 1)
	}

	res.IrrigationCount = len(res.Events)
	res.TotalLitersPerHa = res.TotalMM * litersPerMM
	res.TotalLitersPerAcre = res.TotalLitersPerHa / LitersPerAcreDivisor
	res.DailyAvgMM = res.TotalMM / float64(total)
	res.DailyAvgLitersPerHa = res.TotalLitersPerHa / float64(total)
	res.DailyAvgLitersPerAcre = res.TotalLitersPerAcre / float64(total)
	return res, nil
}
