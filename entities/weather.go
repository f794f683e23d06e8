package entities

import "time"

// WeatherObservation is one day of observed weather at a field.
type WeatherObservation struct {
	ObsID     uint     `gorm:"primaryKey" json:"obs_id"`
	FieldID   uint     `gorm:"uniqueIndex:idx_field_day" json:"field_id"`
	Date      string   `gorm:"uniqueIndex:idx_field_day;size:10" json:"date"` // YYYY-MM-DD
	TempMin   *float64 `json:"temp_min"`
	TempMax   *float64 `json:"temp_max"`
	Humidity  *float64 `json:"humidity"` // daily average %
	WindSpeed *float64 `json:"wind_speed"`
	Rainfall  *float64 `json:"rainfall"`
	Note      string   `json:"note"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
