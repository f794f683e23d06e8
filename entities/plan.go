package entities

import "time"

type Plan struct {
	PlanID   uint   `gorm:"primaryKey" json:"plan_id"`
	RunID    string `gorm:"uniqueIndex;size:36" json:"run_id"`
	FieldID  uint   `json:"field_id" gorm:"uniqueIndex:idx_field_version"`
	Version  int    `json:"version" gorm:"uniqueIndex:idx_field_version"`
	CropType string `json:"crop_type"`
	SoilType string `json:"soil_type"`

	TotalDays             int     `json:"total_days"`
	TotalWaterMM          float64 `json:"total_water_mm"`
	TotalWaterLitersPerHa float64 `json:"total_water_liters_per_ha"`
	TotalWaterLitersAcre  float64 `json:"total_water_liters_per_acre"`
	IrrigationCount       int     `json:"irrigation_count"`
	DailyAvgMM            float64 `json:"daily_avg_mm"`
	ObservedDays          int     `json:"observed_days"`

	NextWaterDate     string `json:"next_water_date"`
	WaterFrequency    int    `json:"water_frequency"`
	CurrentStage      string `json:"current_stage"`
	SimpleInstruction string `json:"simple_instruction"`
	VolumeNote        string `json:"volume_note"`
	SummaryMD         string `json:"summary_md"`

	Substitutions []Substitution `gorm:"serializer:json" json:"substitutions,omitempty"`
	Articles      []ArticleRef   `gorm:"serializer:json" json:"articles,omitempty"`
	CreatedAt     time.Time
}

// Substitution notes a crop or soil the plan could not find and replaced.
type Substitution struct {
	Kind      string `json:"kind"`
	Requested string `json:"requested"`
	Used      string `json:"used"`
}

type ReplanLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FieldID   uint      `gorm:"index" json:"field_id"`
	PlanID    uint      `json:"plan_id"`
	Reason    string    `json:"reason"`
	DeltaMD   string    `json:"delta_md"`
	CreatedAt time.Time `json:"created_at"`
}

type ArticleRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
