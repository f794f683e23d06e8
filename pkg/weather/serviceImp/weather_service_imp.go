package serviceImp

import (
	"fmt"
	"time"

	"cropwater/entities"
	"cropwater/pkg/apierr"
	"cropwater/pkg/climate"
	"cropwater/pkg/waterbalance"
	repo "cropwater/pkg/weather/repository"
	"cropwater/pkg/weather/service"
)

type weatherSvc struct{ r repo.WeatherRepository }

func NewWeatherService(r repo.WeatherRepository) service.WeatherService { return &weatherSvc{r} }

func (s *weatherSvc) Record(o *entities.WeatherObservation) (*entities.WeatherObservation, error) {
	if err := validate(o); err != nil {
		return nil, err
	}
	if err := s.r.Upsert(o); err != nil {
		return nil, err
	}
	return o, nil
}

func validate(o *entities.WeatherObservation) error {
	if _, err := waterbalance.ParseDate(o.Date); err != nil {
		return err
	}
	// a missing side is simulated with its regional default
	tmin, tmax := climate.DefaultTempMin, climate.DefaultTempMax
	if o.TempMin != nil {
		tmin = *o.TempMin
	}
	if o.TempMax != nil {
		tmax = *o.TempMax
	}
	if tmin > tmax {
		return fmt.Errorf("%w: temp_min %.1f above temp_max %.1f", apierr.ErrBadRequest, tmin, tmax)
	}
	if o.Humidity != nil && (*o.Humidity < 0 || *o.Humidity > 100) {
		return fmt.Errorf("%w: humidity %.1f outside 0..100", apierr.ErrBadRequest, *o.Humidity)
	}
	if o.WindSpeed != nil && *o.WindSpeed < 0 {
		return fmt.Errorf("%w: negative wind speed", apierr.ErrBadRequest)
	}
	if o.Rainfall != nil && *o.Rainfall < 0 {
		return fmt.Errorf("%w: negative rainfall", apierr.ErrBadRequest)
	}
	return nil
}

func (s *weatherSvc) List(fieldID uint, from, to string) ([]entities.WeatherObservation, error) {
	return s.r.ListByField(fieldID, from, to)
}

func (s *weatherSvc) ChangedSince(fieldID uint, since time.Time) (int64, error) {
	return s.r.CountSince(fieldID, since)
}

func (s *weatherSvc) Series(f *entities.Field) ([]waterbalance.DailyWeather, error) {
	obs, err := s.r.ListByField(f.FieldID, f.PlantingDate, "")
	if err != nil {
		return nil, err
	}
	return ToSeries(f.PlantingDate, obs)
}

// ToSeries indexes observations by days since planting. Days without an
// observation are left empty and fall back to defaults in the simulation;
// observations before planting are dropped.
func ToSeries(planting string, obs []entities.WeatherObservation) ([]waterbalance.DailyWeather, error) {
	start, err := waterbalance.ParseDate(planting)
	if err != nil {
		return nil, err
	}
	var out []waterbalance.DailyWeather
	for _, o := range obs {
		d, err := waterbalance.ParseDate(o.Date)
		if err != nil {
			return nil, fmt.Errorf("observation %d: %w", o.ObsID, err)
		}
		idx := int(d.Sub(start).Hours() / 24)
		if idx < 0 {
			continue
		}
		for len(out) <= idx {
			out = append(out, waterbalance.DailyWeather{})
		}
		out[idx] = waterbalance.DailyWeather{
			Date: o.Date, TempMin: o.TempMin, TempMax: o.TempMax,
			Humidity: o.Humidity, WindSpeed: o.WindSpeed, Rainfall: o.Rainfall,
		}
	}
	return out, nil
}
