// Package reminder notifies farmers of the irrigations scheduled for today.
package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/robfig/cron/v3"

	"cropwater/entities"
	fieldrepo "cropwater/pkg/field/repository"
	schedsvc "cropwater/pkg/schedule/service"
)

type Reminder struct {
	UserID string
	Task   entities.IrrigationTask
	Text   string
}

type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// LogNotifier writes reminders to the process log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, r Reminder) error {
	log.Printf("[reminder] to %s: %s", r.UserID, r.Text)
	return nil
}

type Job struct {
	tasks  schedsvc.ScheduleService
	fields fieldrepo.FieldRepository
	n      Notifier
	loc    *time.Location
	now    func() time.Time
}

func New(tasks schedsvc.ScheduleService, fields fieldrepo.FieldRepository, n Notifier, loc *time.Location) *Job {
	if loc == nil {
		loc = time.UTC
	}
	return &Job{tasks: tasks, fields: fields, n: n, loc: loc, now: time.Now}
}

func message(f *entities.Field, t entities.IrrigationTask) string {
	msg := fmt.Sprintf("Irrigate %s (field #%d, %s) today: %.1f mm", f.Name, f.FieldID, f.CropType, t.AmountMM)
	if t.LitersField > 0 {
		msg += fmt.Sprintf(", about %s liters for %.2f acres", humanize.Comma(int64(t.LitersField)), f.AreaAcres)
	}
	return msg + "."
}

// Run sends one reminder per todo task dated today and marks the delivered
// ones notified. A failed delivery leaves its task todo for the next run.
func (j *Job) Run(ctx context.Context) (int, error) {
	now := j.now().In(j.loc)
	due, err := j.tasks.Due(now.Format("2006-01-02"))
	if err != nil {
		return 0, err
	}
	var sent []uint
	for _, t := range due {
		f, err := j.fields.Get(t.FieldID)
		if err != nil {
			log.Printf("[reminder] task %d: field %d: %v", t.TaskID, t.FieldID, err)
			continue
		}
		if err := j.n.Notify(ctx, Reminder{UserID: f.UserID, Task: t, Text: message(f, t)}); err != nil {
			log.Printf("[reminder] task %d: %v", t.TaskID, err)
			continue
		}
		sent = append(sent, t.TaskID)
	}
	if err := j.tasks.MarkNotified(sent, now); err != nil {
		return 0, err
	}
	return len(sent), nil
}

// Start schedules Run on the cron expression expr in the job's time zone.
func (j *Job) Start(expr string) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(j.loc))
	_, err := c.AddFunc(expr, func() {
		n, err := j.Run(context.Background())
		if err != nil {
			log.Printf("[reminder] run failed: %v", err)
			return
		}
		log.Printf("[reminder] sent %d reminders", n)
	})
	if err != nil {
		return nil, fmt.Errorf("reminder schedule %q: %w", expr, err)
	}
	c.Start()
	return c, nil
}
