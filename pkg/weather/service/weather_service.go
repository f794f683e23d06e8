package service

import (
	"time"

	"cropwater/entities"
	"cropwater/pkg/waterbalance"
)

type WeatherService interface {
	Record(o *entities.WeatherObservation) (*entities.WeatherObservation, error)
	List(fieldID uint, from, to string) ([]entities.WeatherObservation, error)
	// Series lays a field's observations out day by day from its planting date.
	Series(f *entities.Field) ([]waterbalance.DailyWeather, error)
	// ChangedSince counts observations recorded or corrected after since.
	ChangedSince(fieldID uint, since time.Time) (int64, error)
}
