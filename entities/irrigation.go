package entities

import "time"

const (
	TaskTodo       = "todo"
	TaskNotified   = "notified"
	TaskDone       = "done"
	TaskSkipped    = "skipped"
	TaskSuperseded = "superseded"
)

// IrrigationTask is one scheduled irrigation of a plan.
type IrrigationTask struct {
	TaskID      uint       `gorm:"primaryKey" json:"task_id"`
	FieldID     uint       `gorm:"index" json:"field_id"`
	PlanID      uint       `gorm:"index" json:"plan_id"`
	DayNum      int        `json:"day_num"`
	Date        string     `gorm:"index;size:10" json:"date"`
	Stage       string     `json:"stage"`
	AmountMM    float64    `json:"amount_mm"`
	LitersPerHa float64    `json:"amount_liters_per_ha"`
	LitersField float64    `json:"liters_field"` // for the whole field area
	AppliedMM   *float64   `json:"applied_mm,omitempty"`
	Status      string     `json:"status"` // todo|notified|done|skipped|superseded
	NotifiedAt  *time.Time `json:"notified_at,omitempty"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
