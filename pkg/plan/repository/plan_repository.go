package repository

import "cropwater/entities"

type PlanRepository interface {
	// Save stores a plan with its tasks in one transaction and supersedes
	// the open tasks of the field's older plans. rl may be nil.
	Save(p *entities.Plan, tasks []entities.IrrigationTask, rl *entities.ReplanLog) error
	LatestByField(fieldID uint) (*entities.Plan, error)
	ListByField(fieldID uint) ([]entities.Plan, error)
	ReplanLogs(fieldID uint) ([]entities.ReplanLog, error)
}
