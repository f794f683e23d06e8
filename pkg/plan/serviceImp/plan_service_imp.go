package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cropwater/entities"
	"cropwater/pkg/ai"
	planrepo "cropwater/pkg/plan/repository"
	"cropwater/pkg/plan/service"
	"cropwater/pkg/reference"
	schedrepo "cropwater/pkg/schedule/repository"
	"cropwater/pkg/summary"
	"cropwater/pkg/waterbalance"
	weathersvc "cropwater/pkg/weather/service"
)

const maxArticles = 5

type advisor interface {
	Articles(query string, n int) ([]entities.ArticleRef, string, error)
}

type PlanSvc struct {
	sim       *waterbalance.Simulator
	llm       ai.Client
	repoPlan  planrepo.PlanRepository
	repoSched schedrepo.ScheduleRepository
	weather   weathersvc.WeatherService
	adv       advisor
	loc       *time.Location
	now       func() time.Time
}

var _ service.PlanService = (*PlanSvc)(nil)

// NewPlanService wires the plan flow. adv may be nil; loc decides which
// calendar day "today" is for the current stage.
func NewPlanService(sim *waterbalance.Simulator, llm ai.Client, pr planrepo.PlanRepository, sr schedrepo.ScheduleRepository,
	ws weathersvc.WeatherService, adv advisor, loc *time.Location) *PlanSvc {
	if loc == nil {
		loc = time.UTC
	}
	return &PlanSvc{sim: sim, llm: llm, repoPlan: pr, repoSched: sr, weather: ws, adv: adv, loc: loc, now: time.Now}
}

// draft is a computed but not yet stored plan.
type draft struct {
	plan  *entities.Plan
	tasks []entities.IrrigationTask
	trace []waterbalance.Day
}

func (s *PlanSvc) compute(ctx context.Context, f *entities.Field) (*draft, error) {
	series, err := s.weather.Series(f)
	if err != nil {
		return nil, err
	}
	req := waterbalance.Request{
		Crop:         f.CropType,
		Soil:         f.SoilType,
		PlantingDate: f.PlantingDate,
		Weather:      series,
		Location:     fieldLocation(s.sim, f),
	}
	res, err := s.sim.Run(req)
	if err != nil {
		return nil, err
	}
	out := summary.Summarize(res)
	crop, _ := s.sim.Tables().Crop(res.Crop)
	ins, err := summary.BuildInstruction(res, crop, s.now().In(s.loc))
	if err != nil {
		return nil, err
	}

	var refs []entities.ArticleRef
	var advisory string
	if s.adv != nil {
		query := strings.Join([]string{res.Crop, res.Soil, ins.CurrentStage, "irrigation water"}, " ")
		if refs, advisory, err = s.adv.Articles(query, maxArticles); err != nil {
			log.Printf("[plan] advisory search for field %d: %v", f.FieldID, err)
			refs, advisory = nil, ""
		}
	}

	p := &entities.Plan{
		RunID:                 uuid.NewString(),
		FieldID:               f.FieldID,
		CropType:              res.Crop,
		SoilType:              res.Soil,
		TotalDays:             res.TotalDays,
		TotalWaterMM:          out.TotalWaterMM,
		TotalWaterLitersPerHa: out.TotalWaterLitersPerHa,
		TotalWaterLitersAcre:  out.TotalWaterLitersAcre,
		IrrigationCount:       out.IrrigationCount,
		DailyAvgMM:            out.DailyAvgMM,
		ObservedDays:          observedDays(series),
		NextWaterDate:         ins.NextWaterDate,
		WaterFrequency:        ins.WaterFrequency,
		CurrentStage:          ins.CurrentStage,
		SimpleInstruction:     ins.SimpleInstruction,
		VolumeNote:            ins.VolumeNote,
		Articles:              refs,
	}
	for _, sub := range res.Substitutions {
		p.Substitutions = append(p.Substitutions, entities.Substitution{Kind: sub.Kind, Requested: sub.Requested, Used: sub.Used})
	}
	p.SummaryMD = s.llm.SummarizePlan(ctx, ai.PlanBrief{Field: f, Output: out, Instruction: ins, Advisory: advisory})

	return &draft{plan: p, tasks: toTasks(f, out.Schedule), trace: res.Days}, nil
}

// fieldLocation overrides the table location with whatever coordinates the
// field carries; nil when it carries none.
func fieldLocation(sim *waterbalance.Simulator, f *entities.Field) *reference.Location {
	if f.Latitude == nil && f.Longitude == nil && f.Elevation == nil {
		return nil
	}
	loc := sim.Tables().Location
	if f.Latitude != nil {
		loc.Latitude = *f.Latitude
	}
	if f.Longitude != nil {
		loc.Longitude = *f.Longitude
	}
	if f.Elevation != nil {
		loc.Elevation = *f.Elevation
	}
	return &loc
}

func observedDays(series []waterbalance.DailyWeather) int {
	n := 0
	for _, w := range series {
		if w.TempMin != nil || w.TempMax != nil || w.Humidity != nil || w.WindSpeed != nil || w.Rainfall != nil {
			n++
		}
	}
	return n
}

func toTasks(f *entities.Field, events []summary.Event) []entities.IrrigationTask {
	tasks := make([]entities.IrrigationTask, 0, len(events))
	for _, ev := range events {
		tasks = append(tasks, entities.IrrigationTask{
			FieldID:     f.FieldID,
			DayNum:      ev.DayNum,
			Date:        ev.Date,
			Stage:       ev.Stage,
			AmountMM:    ev.AmountMM,
			LitersPerHa: ev.AmountLitersPerHa,
			LitersField: math.Round(ev.AmountLitersPerHa / waterbalance.LitersPerAcreDivisor * f.AreaAcres),
			Status:      entities.TaskTodo,
		})
	}
	return tasks
}

func (s *PlanSvc) nextVersion(fieldID uint) (*entities.Plan, int, error) {
	old, err := s.repoPlan.LatestByField(fieldID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 1, nil
	}
	if err != nil {
		return nil, 0, err
	}
	return old, old.Version + 1, nil
}

func (s *PlanSvc) Generate(ctx context.Context, f *entities.Field) (*service.Outcome, error) {
	_, version, err := s.nextVersion(f.FieldID)
	if err != nil {
		return nil, err
	}
	d, err := s.compute(ctx, f)
	if err != nil {
		return nil, err
	}
	d.plan.Version = version
	if err := s.repoPlan.Save(d.plan, d.tasks, nil); err != nil {
		return nil, err
	}
	log.Printf("[plan] field %d v%d run %s: %.1f mm in %d irrigations", f.FieldID, version, d.plan.RunID,
		d.plan.TotalWaterMM, d.plan.IrrigationCount)
	return &service.Outcome{Plan: d.plan, Tasks: d.tasks, Changed: true, Trace: d.trace}, nil
}

func (s *PlanSvc) Replan(ctx context.Context, f *entities.Field, reason string) (*service.Outcome, error) {
	old, version, err := s.nextVersion(f.FieldID)
	if err != nil {
		return nil, err
	}
	if old == nil {
		return s.Generate(ctx, f)
	}
	fresh, err := s.weather.ChangedSince(f.FieldID, old.CreatedAt)
	if err != nil {
		return nil, err
	}
	d, err := s.compute(ctx, f)
	if err != nil {
		return nil, err
	}
	if fresh == 0 && !differs(old, d.plan) {
		tasks, err := s.repoSched.ListByPlan(old.PlanID)
		if err != nil {
			return nil, err
		}
		return &service.Outcome{Plan: old, Tasks: tasks, Trace: d.trace}, nil
	}

	if reason = strings.TrimSpace(reason); reason == "" {
		reason = fmt.Sprintf("%d weather observations since v%d", fresh, old.Version)
	}
	rl := &entities.ReplanLog{FieldID: f.FieldID, Reason: reason, DeltaMD: delta(old, d.plan)}
	d.plan.Version = version
	if err := s.repoPlan.Save(d.plan, d.tasks, rl); err != nil {
		return nil, err
	}
	log.Printf("[plan] field %d replanned v%d -> v%d: %s", f.FieldID, old.Version, version, reason)
	return &service.Outcome{Plan: d.plan, Tasks: d.tasks, Replan: rl, Changed: true, Trace: d.trace}, nil
}

func differs(a, b *entities.Plan) bool {
	return a.CropType != b.CropType || a.SoilType != b.SoilType ||
		a.TotalWaterMM != b.TotalWaterMM || a.IrrigationCount != b.IrrigationCount
}

func delta(old, p *entities.Plan) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- total water %.1f -> %.1f mm\n", old.TotalWaterMM, p.TotalWaterMM)
	fmt.Fprintf(&sb, "- irrigations %d -> %d\n", old.IrrigationCount, p.IrrigationCount)
	if old.NextWaterDate != p.NextWaterDate {
		fmt.Fprintf(&sb, "- next irrigation %s -> %s\n", orNone(old.NextWaterDate), orNone(p.NextWaterDate))
	}
	if old.CropType != p.CropType || old.SoilType != p.SoilType {
		fmt.Fprintf(&sb, "- %s on %s -> %s on %s\n", old.CropType, old.SoilType, p.CropType, p.SoilType)
	}
	return sb.String()
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func (s *PlanSvc) List(fieldID uint) ([]entities.Plan, error) {
	return s.repoPlan.ListByField(fieldID)
}

func (s *PlanSvc) History(fieldID uint) ([]entities.ReplanLog, error) {
	return s.repoPlan.ReplanLogs(fieldID)
}

func (s *PlanSvc) Latest(fieldID uint) (*service.Outcome, error) {
	p, err := s.repoPlan.LatestByField(fieldID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repoSched.ListByPlan(p.PlanID)
	if err != nil {
		return nil, err
	}
	return &service.Outcome{Plan: p, Tasks: tasks}, nil
}
