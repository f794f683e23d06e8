package repositoryImp

import (
	"gorm.io/gorm"

	"cropwater/entities"
	"cropwater/pkg/plan/repository"
)

type planRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlanRepository { return &planRepo{db} }

func (r *planRepo) Save(p *entities.Plan, tasks []entities.IrrigationTask, rl *entities.ReplanLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		if err := tx.Model(&entities.IrrigationTask{}).
			Where("field_id = ? AND status IN ?", p.FieldID, []string{entities.TaskTodo, entities.TaskNotified}).
			Update("status", entities.TaskSuperseded).Error; err != nil {
			return err
		}
		for i := range tasks {
			tasks[i].PlanID = p.PlanID
		}
		if len(tasks) > 0 {
			if err := tx.CreateInBatches(&tasks, 200).Error; err != nil {
				return err
			}
		}
		if rl != nil {
			rl.PlanID = p.PlanID
			return tx.Create(rl).Error
		}
		return nil
	})
}

func (r *planRepo) LatestByField(fieldID uint) (*entities.Plan, error) {
	var p entities.Plan
	if err := r.db.Where("field_id = ?", fieldID).Order("version DESC").First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *planRepo) ListByField(fieldID uint) ([]entities.Plan, error) {
	var ps []entities.Plan
	if err := r.db.Where("field_id = ?", fieldID).Order("version ASC").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *planRepo) ReplanLogs(fieldID uint) ([]entities.ReplanLog, error) {
	var ls []entities.ReplanLog
	if err := r.db.Where("field_id = ?", fieldID).Order("id ASC").Find(&ls).Error; err != nil {
		return nil, err
	}
	return ls, nil
}
