package router

import (
	"github.com/labstack/echo/v4"

	advisoryCtrl "cropwater/pkg/advisory/controller"
	authCtrl "cropwater/pkg/auth/controller"
	extractCtrl "cropwater/pkg/extract/controller"
	fieldCtrl "cropwater/pkg/field/controller"
	planCtrl "cropwater/pkg/plan/controller"
	scheduleCtrl "cropwater/pkg/schedule/controller"
	simulateCtrl "cropwater/pkg/simulate/controller"
	weatherCtrl "cropwater/pkg/weather/controller"
)

func New(
	e *echo.Echo,
	auth echo.MiddlewareFunc,
	fields fieldCtrl.FieldController,
	plans planCtrl.PlanController,
	weather weatherCtrl.WeatherController,
	sched scheduleCtrl.ScheduleController,
	sim simulateCtrl.SimulateController,
	extract extractCtrl.ExtractController,
	authC authCtrl.AuthController,
	advisory advisoryCtrl.AdvisoryController,
	health interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", health.Health)

	// stateless, no farmer identity needed
	e.POST("/simulate", sim.Simulate)
	e.POST("/simulate/compare", sim.Compare)
	e.GET("/guidance", sim.Guidance)
	e.GET("/reference", sim.Reference)
	e.POST("/extract", extract.Extract)

	api := e.Group("", auth)
	api.GET("/whoami", authC.WhoAmI)
	api.GET("/devlogin", authC.DevLogin)

	api.POST("/advisory/ingest", advisory.IngestText)
	api.POST("/advisory/ingest/url", advisory.IngestURL)
	api.GET("/advisory/search", advisory.Search)

	api.POST("/fields", fields.Create)
	api.GET("/fields", fields.List)
	api.GET("/fields/:id", fields.Get)

	api.POST("/fields/:id/plan", plans.Generate)
	api.POST("/fields/:id/replan", plans.Replan)
	api.GET("/fields/:id/plan", plans.List)
	api.GET("/fields/:id/replans", plans.History)

	api.POST("/fields/:id/weather", weather.Create)
	api.GET("/fields/:id/weather", weather.List)

	api.GET("/fields/:id/schedule", sched.List)
	api.PATCH("/schedule/:task_id", sched.Patch)
	return e
}
