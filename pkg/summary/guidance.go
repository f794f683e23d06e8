package summary

// guidance is farmer-facing depth advice per crop and stage. It is never
// written to after init.
var guidance = map[string]map[string]string{
	"Rice": {
		"initial":     "Keep soil moist but not flooded",
		"development": "Maintain water level at 1-2 cm (about one finger joint)",
		"mid_season":  "Maintain water level at 5-7 cm (up to your middle finger joint)",
		"late_season": "Reduce water to 2-3 cm depth as the crop approaches maturity",
	},
	"Sugarcane": {
		"initial":     "Keep soil moist to support germination",
		"development": "Water to a depth of 3-4 cm when soil appears dry",
		"mid_season":  "Ensure soil is moist to a depth of your finger length",
		"late_season": "Reduce watering as the cane matures and sweetens",
	},
	"Groundnut": {
		"initial":     "Keep soil just moist to aid germination",
		"development": "Water to moisten soil to a depth of 5 cm (first finger joint)",
		"mid_season":  "Ensure soil is moist but not waterlogged during flowering",
		"late_season": "Reduce watering as pods mature (allows pods to develop fully)",
	},
	"Cotton": {
		"initial":     "Maintain soil moisture for seedling establishment",
		"development": "Water to a depth of your first finger joint when soil surface dries",
		"mid_season":  "Ensure consistent moisture during boll formation",
		"late_season": "Reduce irrigation as bolls open to prevent rotting",
	},
	"Banana": {
		"initial":     "Keep soil continuously moist but not waterlogged",
		"development": "Ensure soil is moist to the depth of your hand",
		"mid_season":  "Maintain consistent moisture during fruit development",
		"late_season": "Continue regular watering until harvesting",
	},
	"default": {
		"initial":     "Keep soil moist to support germination",
		"development": "Water to a depth of your first finger joint",
		"mid_season":  "Ensure soil is moist to the depth of your finger",
		"late_season": "Reduce watering as the crop approaches maturity",
	},
}

const fallbackGuidance = "Water as needed based on soil moisture"

// Guidance returns depth advice for a crop at a stage. Unknown crops use the
// generic tier; unknown stages get a generic sentence.
func Guidance(crop, stage string) string {
	byStage, ok := guidance[crop]
	if !ok {
		byStage = guidance["default"]
	}
	if g, ok := byStage[stage]; ok {
		return g
	}
	return fallbackGuidance
}
