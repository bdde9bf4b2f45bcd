// Package router assembles the gin engine: middleware chain, public
// routes, then the authenticated /api/v1 surface with admin sub-guards.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/clinicboard/allotment-api/internal/config"
	assistantHandler "github.com/clinicboard/allotment-api/internal/handler/assistant"
	attendanceHandler "github.com/clinicboard/allotment-api/internal/handler/attendance"
	authHandler "github.com/clinicboard/allotment-api/internal/handler/auth"
	availabilityHandler "github.com/clinicboard/allotment-api/internal/handler/availability"
	doctorHandler "github.com/clinicboard/allotment-api/internal/handler/doctor"
	dutyHandler "github.com/clinicboard/allotment-api/internal/handler/duty"
	healthHandler "github.com/clinicboard/allotment-api/internal/handler/health"
	prometheusHandler "github.com/clinicboard/allotment-api/internal/handler/prometheus"
	scheduleHandler "github.com/clinicboard/allotment-api/internal/handler/schedule"
	timeblockHandler "github.com/clinicboard/allotment-api/internal/handler/timeblock"
	"github.com/clinicboard/allotment-api/internal/middleware"
	"github.com/clinicboard/allotment-api/internal/model"
)

// Deps is everything the router wires together.
type Deps struct {
	Config *config.Config
	Log    zerolog.Logger

	Auth         *middleware.AuthMiddleware
	Metrics      *prometheusHandler.Handler
	Health       *healthHandler.Handler
	Login        *authHandler.Handler
	Schedule     *scheduleHandler.Handler
	Availability *availabilityHandler.Handler
	Assistants   *assistantHandler.Handler
	Doctors      *doctorHandler.Handler
	Attendance   *attendanceHandler.Handler
	TimeBlocks   *timeblockHandler.Handler
	Duties       *dutyHandler.Handler
}

func New(d Deps) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Log))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if d.Config.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  rate.Limit(d.Config.RateLimit.RequestsPerSecond),
			Burst: d.Config.RateLimit.Burst,
		})
		r.Use(limiter.RateLimit())
	}
	r.Use(d.Metrics.Middleware())

	r.GET("/metrics", d.Metrics.Handler())

	public := r.Group("/api/v1")
	d.Health.RegisterRoutes(public)
	d.Login.RegisterRoutes(public)

	api := r.Group("/api/v1")
	api.Use(d.Auth.Authenticate())
	{
		d.Schedule.RegisterRoutes(api)
		d.Availability.RegisterRoutes(api)
		d.Attendance.RegisterRoutes(api)
		d.Duties.RegisterRoutes(api)

		admin := api.Group("")
		admin.Use(d.Auth.RequireRole(model.UserRoleAdmin))
		{
			d.Assistants.RegisterRoutes(admin)
			d.Doctors.RegisterRoutes(admin)
			d.TimeBlocks.RegisterRoutes(admin)
		}
	}

	return r
}
