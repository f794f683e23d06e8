// pkg/ai/client.go

package ai

import (
	"context"

	"cropwater/entities"
	"cropwater/pkg/summary"
)

// FarmingInfo is what can be pulled out of a farmer's free-text message.
// Empty strings mean the value was not mentioned.
type FarmingInfo struct {
	SoilType     string `json:"soil_type" jsonschema_description:"Soil type exactly as one of the known soils, or empty if not mentioned"`
	CropType     string `json:"crop_type" jsonschema_description:"Crop exactly as one of the known crops, or empty if not mentioned"`
	PlantingDate string `json:"planting_date" jsonschema_description:"Planting date as YYYY-MM-DD, or empty if not given"`
}

// PlanBrief is the material a plan summary is written from.
type PlanBrief struct {
	Field       *entities.Field
	Output      summary.Output
	Instruction summary.Instruction
	Advisory    string // advisory snippets, may be empty
}

type Client interface {
	// ExtractFarmingInfo reads soil, crop and planting date from text. crops and
	// soils are the names the caller can resolve.
	ExtractFarmingInfo(ctx context.Context, text string, crops, soils []string) (*FarmingInfo, error)

	SummarizePlan(ctx context.Context, b PlanBrief) string
}
