// Package reference holds the read-only soil, crop and location tables the
// water-balance engine consumes. Tables are built once (from CSV, XLSX or the
// built-in defaults) and shared between concurrent simulation runs.
package reference

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

type Stage string

const (
	StageInitial     Stage = "initial"
	StageDevelopment Stage = "development"
	StageMidSeason   Stage = "mid_season"
	StageLateSeason  Stage = "late_season"
)

// Stages lists the growth stages in the order their durations are summed.
var Stages = [4]Stage{StageInitial, StageDevelopment, StageMidSeason, StageLateSeason}

func ParseStage(s string) (Stage, bool) {
	for _, st := range Stages {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// StageValues is a per-stage float table (Kc, root depth, critical depletion).
type StageValues struct {
	Initial     float64 `json:"initial"`
	Development float64 `json:"development"`
	MidSeason   float64 `json:"mid_season"`
	LateSeason  float64 `json:"late_season"`
}

func (v StageValues) At(s Stage) float64 {
	switch s {
	case StageInitial:
		return v.Initial
	case StageDevelopment:
		return v.Development
	case StageMidSeason:
		return v.MidSeason
	default:
		return v.LateSeason
	}
}

// StageDays holds stage durations in days.
type StageDays struct {
	Initial     int `json:"initial"`
	Development int `json:"development"`
	MidSeason   int `json:"mid_season"`
	LateSeason  int `json:"late_season"`
}

func (d StageDays) At(s Stage) int {
	switch s {
	case StageInitial:
		return d.Initial
	case StageDevelopment:
		return d.Development
	case StageMidSeason:
		return d.MidSeason
	default:
		return d.LateSeason
	}
}

func (d StageDays) Total() int { return d.Initial + d.Development + d.MidSeason + d.LateSeason }

type Texture struct {
	Sand int `json:"sand"`
	Silt int `json:"silt"`
	Clay int `json:"clay"`
}

type SoilProfile struct {
	Name                 string  `json:"soil_type"`
	WaterHoldingCapacity float64 `json:"water_holding_capacity"`
	FieldCapacity        float64 `json:"field_capacity"` // volumetric %
	WiltingPoint         float64 `json:"wilting_point"`  // volumetric %
	InfiltrationRate     float64 `json:"infiltration_rate"`
	BulkDensity          float64 `json:"bulk_density"`
	Texture              Texture `json:"texture"`
}

type CropProfile struct {
	Name              string      `json:"crop"`
	Kc                StageValues `json:"kc_values"`
	Durations         StageDays   `json:"growth_stages"`
	RootDepth         StageValues `json:"root_depth"` // meters
	CriticalDepletion StageValues `json:"critical_depletion"`
	WaterSensitivity  float64     `json:"water_sensitivity"`
	TypicalYield      float64     `json:"typical_yield"`
	GrowingSeasons    []string    `json:"growing_seasons"`
}

type RainfallPattern struct {
	Annual        float64 `json:"annual"`
	MonsoonMonths []int   `json:"monsoon_months"`
	DryMonths     []int   `json:"dry_months"`
}

type TemperaturePattern struct {
	AnnualMin     float64 `json:"annual_min"`
	AnnualMax     float64 `json:"annual_max"`
	HottestMonths []int   `json:"hottest_months"`
	CoolestMonths []int   `json:"coolest_months"`
}

type Location struct {
	Latitude    float64            `json:"latitude"`
	Longitude   float64            `json:"longitude"`
	Elevation   float64            `json:"elevation"`
	ReferenceET float64            `json:"reference_et"`
	Rainfall    RainfallPattern    `json:"rainfall_pattern"`
	Temperature TemperaturePattern `json:"temperature"`
}

// Tables is the full reference data set. It must not be mutated after it is
// handed to a simulator.
type Tables struct {
	Soils    map[string]SoilProfile
	Crops    map[string]CropProfile
	Location Location
}

var ErrInvalidTable = errors.New("invalid reference table")

func (t *Tables) Crop(name string) (CropProfile, bool) {
	c, ok := t.Crops[name]
	return c, ok
}

func (t *Tables) Soil(name string) (SoilProfile, bool) {
	s, ok := t.Soils[name]
	return s, ok
}

func (t *Tables) CropNames() []string { return sortedKeys(t.Crops) }

func (t *Tables) SoilNames() []string { return sortedKeys(t.Soils) }

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Validate checks the physical ranges the simulator relies on.
func (t *Tables) Validate() error {
	if len(t.Crops) == 0 {
		return fmt.Errorf("%w: no crops loaded", ErrInvalidTable)
	}
	if len(t.Soils) == 0 {
		return fmt.Errorf("%w: no soils loaded", ErrInvalidTable)
	}
	for _, name := range t.CropNames() {
		if err := t.Crops[name].validate(); err != nil {
			return fmt.Errorf("%w: crop %q: %v", ErrInvalidTable, name, err)
		}
	}
	for _, name := range t.SoilNames() {
		s := t.Soils[name]
		if !finite(s.FieldCapacity) || !finite(s.WiltingPoint) {
			return fmt.Errorf("%w: soil %q: field capacity and wilting point must be finite", ErrInvalidTable, name)
		}
		if s.FieldCapacity <= s.WiltingPoint {
			return fmt.Errorf("%w: soil %q: field capacity %.1f must exceed wilting point %.1f",
				ErrInvalidTable, name, s.FieldCapacity, s.WiltingPoint)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (c CropProfile) validate() error {
	for _, st := range Stages {
		if c.Durations.At(st) <= 0 {
			return fmt.Errorf("%s duration must be positive", st)
		}
		if !finite(c.Kc.At(st)) || !finite(c.RootDepth.At(st)) || !finite(c.CriticalDepletion.At(st)) {
			return fmt.Errorf("%s kc, root depth and critical depletion must be finite", st)
		}
		if c.Kc.At(st) < 0 {
			return fmt.Errorf("%s kc must be >= 0", st)
		}
		if c.RootDepth.At(st) <= 0 {
			return fmt.Errorf("%s root depth must be positive", st)
		}
		if d := c.CriticalDepletion.At(st); d < 0 || d > 1 {
			return fmt.Errorf("%s critical depletion %.2f outside [0,1]", st, d)
		}
	}
	return nil
}
