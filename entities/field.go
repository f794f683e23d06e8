package entities

import "time"

type Field struct {
	FieldID      uint     `gorm:"primaryKey" json:"field_id"`
	UserID       string   `json:"user_id" gorm:"index"`
	Name         string   `json:"name"`
	CropType     string   `json:"crop_type"`                    // canonical crop table key
	SoilType     string   `json:"soil_type"`                    // canonical soil table key
	PlantingDate string   `json:"planting_date" gorm:"size:10"` // YYYY-MM-DD
	AreaAcres    float64  `json:"area_acres"`
	District     string   `json:"district"`
	Latitude     *float64 `json:"latitude"` // nil: regional default
	Longitude    *float64 `json:"longitude"`
	Elevation    *float64 `json:"elevation"`
	WaterSource  string   `json:"water_source"` // well|canal|tank|rain

	CreatedAt time.Time
	UpdatedAt time.Time
}
