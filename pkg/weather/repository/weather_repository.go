package repository

import (
	"time"

	"cropwater/entities"
)

type WeatherRepository interface {
	// Upsert replaces any observation already stored for the same field and day.
	Upsert(o *entities.WeatherObservation) error
	ListByField(fieldID uint, from, to string) ([]entities.WeatherObservation, error)
	// CountSince counts observations written after since.
	CountSince(fieldID uint, since time.Time) (int64, error)
}
