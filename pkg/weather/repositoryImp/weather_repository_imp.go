package repositoryImp

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cropwater/entities"
	"cropwater/pkg/weather/repository"
)

type weatherRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.WeatherRepository { return &weatherRepo{db} }

func (r *weatherRepo) Upsert(o *entities.WeatherObservation) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "field_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"temp_min", "temp_max", "humidity", "wind_speed", "rainfall", "note", "updated_at"}),
	}).Create(o).Error
}

// ListByField returns observations in date order; empty bounds are open.
func (r *weatherRepo) ListByField(fieldID uint, from, to string) ([]entities.WeatherObservation, error) {
	var out []entities.WeatherObservation
	q := r.db.Where("field_id = ?", fieldID)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}
	if err := q.Order("date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *weatherRepo) CountSince(fieldID uint, since time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&entities.WeatherObservation{}).
		Where("field_id = ? AND updated_at > ?", fieldID, since).
		Count(&n).Error
	return n, err
}
