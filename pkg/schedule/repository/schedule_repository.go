package repository

import (
	"time"

	"cropwater/entities"
)

type ScheduleRepository interface {
	List(fieldID uint, from, to string) ([]entities.IrrigationTask, error)
	ListByPlan(planID uint) ([]entities.IrrigationTask, error)
	FindForUser(taskID uint, uid string) (*entities.IrrigationTask, error)
	PatchStatus(taskID uint, status string, applied *float64) error
	// DueOn lists tasks dated day that are still in status.
	DueOn(day, status string) ([]entities.IrrigationTask, error)
	MarkNotified(ids []uint, at time.Time) error
}
