package main

import (
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"cropwater/config"
	"cropwater/database"
	"cropwater/router"

	// Auth
	authCtrlImp "cropwater/pkg/auth/controllerImp"
	"cropwater/pkg/middleware"

	// Field
	fieldCtrlImp "cropwater/pkg/field/controllerImp"
	fieldRepoImp "cropwater/pkg/field/repositoryImp"
	fieldSvcImp "cropwater/pkg/field/serviceImp"

	// Weather
	weatherCtrlImp "cropwater/pkg/weather/controllerImp"
	weatherRepoImp "cropwater/pkg/weather/repositoryImp"
	weatherSvcImp "cropwater/pkg/weather/serviceImp"

	// Schedule
	schedCtrlImp "cropwater/pkg/schedule/controllerImp"
	schedRepoImp "cropwater/pkg/schedule/repositoryImp"
	schedSvcImp "cropwater/pkg/schedule/serviceImp"

	// Plan
	planCtrlImp "cropwater/pkg/plan/controllerImp"
	planRepoImp "cropwater/pkg/plan/repositoryImp"
	planSvcImp "cropwater/pkg/plan/serviceImp"

	// Advisory
	advCtrlImp "cropwater/pkg/advisory/controllerImp"
	advRepoImp "cropwater/pkg/advisory/repositoryImp"
	advSvcImp "cropwater/pkg/advisory/serviceImp"

	// Engine/LLM
	"cropwater/pkg/ai"
	extractCtrlImp "cropwater/pkg/extract/controllerImp"
	"cropwater/pkg/reference"
	"cropwater/pkg/reminder"
	simCtrlImp "cropwater/pkg/simulate/controllerImp"
	"cropwater/pkg/waterbalance"

	// Health
	healthCtrlImp "cropwater/pkg/health/controllerImp"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// 1) Config
	cfg := config.Load()
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("[cfg] timezone %q: %v, using UTC", cfg.Timezone, err)
		loc = time.UTC
	}

	// 2) Reference tables + simulator
	tables, err := reference.Load(cfg.Sources())
	if err != nil {
		log.Fatalf("[ref] %v", err)
	}
	sim := waterbalance.NewSimulator(tables, cfg.DefaultCrop, cfg.DefaultSoil)

	// 3) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 4) LLM (mock fallback)
	var llm ai.Client
	if cfg.LLMEndpoint != "" && cfg.LLMAPIKey != "" {
		llm = ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel)
	} else {
		log.Printf("[ai] no LLM configured, using keyword extraction")
		llm = ai.NewMock()
	}

	// 5) Repos/Services
	fRepo := fieldRepoImp.New(db)
	fSvc := fieldSvcImp.NewFieldService(fRepo, tables)
	wSvc := weatherSvcImp.NewWeatherService(weatherRepoImp.New(db))
	sRepo := schedRepoImp.New(db)
	sSvc := schedSvcImp.NewScheduleService(sRepo)
	advSvc := advSvcImp.New(advRepoImp.New(db))
	pSvc := planSvcImp.NewPlanService(sim, llm, planRepoImp.New(db), sRepo, wSvc, advSvc, loc)

	// 6) Reminders
	job := reminder.New(sSvc, fRepo, reminder.LogNotifier{}, loc)
	cr, err := job.Start(cfg.ReminderCron)
	if err != nil {
		log.Fatalf("[reminder] %v", err)
	}
	defer cr.Stop()
	log.Printf("[reminder] scheduled %q (%s)", cfg.ReminderCron, loc)

	// 7) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())

	r := router.New(
		e,
		middleware.Auth(cfg.EnableLIFF),
		fieldCtrlImp.New(fSvc),
		planCtrlImp.NewPlanCtrl(pSvc, fSvc),
		weatherCtrlImp.New(wSvc, fSvc, loc),
		schedCtrlImp.New(sSvc, fSvc),
		simCtrlImp.New(sim, loc),
		extractCtrlImp.New(llm, tables),
		authCtrlImp.NewAuthController(fSvc),
		advCtrlImp.New(advSvc, cfg.AdvisoryAllowedDomains, cfg.AdvisoryMaxBytes),
		healthCtrlImp.NewHealthCtrl(db, tables),
	)

	// 8) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
