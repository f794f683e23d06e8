package service

import (
	"context"

	"cropwater/entities"
	"cropwater/pkg/waterbalance"
)

// Outcome is a stored plan with its irrigation tasks. Trace holds the daily
// water balance when the plan was computed in this call.
type Outcome struct {
	Plan    *entities.Plan            `json:"plan"`
	Tasks   []entities.IrrigationTask `json:"tasks"`
	Replan  *entities.ReplanLog       `json:"replan,omitempty"`
	Changed bool                      `json:"changed"`
	Trace   []waterbalance.Day        `json:"-"`
}

type PlanService interface {
	Generate(ctx context.Context, f *entities.Field) (*Outcome, error)
	// Replan stores a new version only when observations arrived since the
	// latest plan or the recomputed season differs from it.
	Replan(ctx context.Context, f *entities.Field, reason string) (*Outcome, error)
	List(fieldID uint) ([]entities.Plan, error)
	Latest(fieldID uint) (*Outcome, error)
	History(fieldID uint) ([]entities.ReplanLog, error)
}
