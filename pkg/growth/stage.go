// Package growth maps days since planting onto a crop's growth stages.
package growth

import "cropwater/pkg/reference"

// Boundary is the first day after a stage ends, counted from planting.
type Boundary struct {
	Stage reference.Stage `json:"stage"`
	Start int             `json:"start"`
	End   int             `json:"end"`
}

// Resolve returns the stage a crop is in after elapsed days. The stage
// boundary itself belongs to the next stage; anything past the season is
// late_season.
func Resolve(crop reference.CropProfile, elapsed int) reference.Stage {
	cum := 0
	for _, st := range reference.Stages {
		cum += crop.Durations.At(st)
		if elapsed < cum {
			return st
		}
	}
	return reference.StageLateSeason
}

func TotalDays(crop reference.CropProfile) int { return crop.Durations.Total() }

// Boundaries lists each stage as the half-open range [Start, End) of elapsed
// days.
func Boundaries(crop reference.CropProfile) []Boundary {
	out := make([]Boundary, 0, len(reference.Stages))
	cum := 0
	for _, st := range reference.Stages {
		d := crop.Durations.At(st)
		out = append(out, Boundary{Stage: st, Start: cum, End: cum + d})
		cum += d
	}
	return out
}
