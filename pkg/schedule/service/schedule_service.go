package service

import (
	"time"

	"cropwater/entities"
)

type ScheduleService interface {
	List(fieldID uint, from, to string) ([]entities.IrrigationTask, error)
	Patch(taskID uint, uid, status string, applied *float64) (*entities.IrrigationTask, error)
	Due(day string) ([]entities.IrrigationTask, error)
	MarkNotified(ids []uint, at time.Time) error
}
