package repositoryImp

import (
	"time"

	"gorm.io/gorm"

	"cropwater/entities"
	"cropwater/pkg/schedule/repository"
)

type schedRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ScheduleRepository { return &schedRepo{db} }

// dates are stored as YYYY-MM-DD so string comparison orders them
func (r *schedRepo) List(fieldID uint, from, to string) ([]entities.IrrigationTask, error) {
	var out []entities.IrrigationTask
	q := r.db.Where("field_id = ? AND status <> ?", fieldID, entities.TaskSuperseded)
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

func (r *schedRepo) ListByPlan(planID uint) ([]entities.IrrigationTask, error) {
	var out []entities.IrrigationTask
	if err := r.db.Where("plan_id = ?", planID).Order("day_num ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *schedRepo) FindForUser(taskID uint, uid string) (*entities.IrrigationTask, error) {
	var t entities.IrrigationTask
	err := r.db.Joins("JOIN fields ON fields.field_id = irrigation_tasks.field_id").
		Where("irrigation_tasks.task_id = ? AND fields.user_id = ?", taskID, uid).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *schedRepo) PatchStatus(taskID uint, status string, applied *float64) error {
	upd := map[string]any{"status": status}
	if applied != nil {
		upd["applied_mm"] = *applied
	}
	return r.db.Model(&entities.IrrigationTask{}).Where("task_id = ?", taskID).Updates(upd).Error
}

func (r *schedRepo) DueOn(day, status string) ([]entities.IrrigationTask, error) {
	var out []entities.IrrigationTask
	if err := r.db.Where("date = ? AND status = ?", day, status).Order("field_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *schedRepo) MarkNotified(ids []uint, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&entities.IrrigationTask{}).
		Where("task_id IN ? AND status = ?", ids, entities.TaskTodo).
		Updates(map[string]any{"status": entities.TaskNotified, "notified_at": at}).Error
}
