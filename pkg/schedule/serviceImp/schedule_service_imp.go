package serviceImp

import (
	"fmt"
	"time"

	"cropwater/entities"
	"cropwater/pkg/apierr"
	repo "cropwater/pkg/schedule/repository"
	"cropwater/pkg/schedule/service"
	"cropwater/pkg/waterbalance"
)

type schedSvc struct{ r repo.ScheduleRepository }

func NewScheduleService(r repo.ScheduleRepository) service.ScheduleService { return &schedSvc{r} }

func (s *schedSvc) List(fieldID uint, from, to string) ([]entities.IrrigationTask, error) {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := waterbalance.ParseDate(d); err != nil {
			return nil, err
		}
	}
	return s.r.List(fieldID, from, to)
}

// patchable statuses; notified and superseded are set by the system only
var patchable = map[string]bool{entities.TaskTodo: true, entities.TaskDone: true, entities.TaskSkipped: true}

func (s *schedSvc) Patch(taskID uint, uid, status string, applied *float64) (*entities.IrrigationTask, error) {
	if status == "" {
		status = entities.TaskDone
	}
	if !patchable[status] {
		return nil, fmt.Errorf("%w: status %q", apierr.ErrBadRequest, status)
	}
	if applied != nil && *applied < 0 {
		return nil, fmt.Errorf("%w: applied_mm must not be negative", apierr.ErrBadRequest)
	}
	t, err := s.r.FindForUser(taskID, uid)
	if err != nil {
		return nil, err
	}
	if t.Status == entities.TaskSuperseded {
		return nil, fmt.Errorf("%w: task %d belongs to a superseded plan", apierr.ErrBadRequest, taskID)
	}
	if err := s.r.PatchStatus(taskID, status, applied); err != nil {
		return nil, err
	}
	t.Status = status
	if applied != nil {
		t.AppliedMM = applied
	}
	return t, nil
}

func (s *schedSvc) Due(day string) ([]entities.IrrigationTask, error) {
	return s.r.DueOn(day, entities.TaskTodo)
}

func (s *schedSvc) MarkNotified(ids []uint, at time.Time) error {
	return s.r.MarkNotified(ids, at)
}
