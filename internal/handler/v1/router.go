package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/syncura360/api/internal/config"
	"github.com/syncura360/api/internal/domain"
	"github.com/syncura360/api/internal/middleware"
	"github.com/syncura360/api/pkg/auth"
	"github.com/syncura360/api/pkg/metrics"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Registration *RegistrationHandler
	Staff        *StaffHandler
	Patient      *PatientHandler
	Ward         *WardHandler
	Visit        *VisitHandler
	Catalog      *CatalogHandler
	Schedule     *ScheduleHandler
}

// Register mounts all v1 routes. Clinical write routes are limited to
// doctor/nurse roles plus admins; administration routes to admin roles.
func Register(r *gin.Engine, h Handlers, tokens *auth.TokenManager, m *metrics.Metrics, cfg *config.Config) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.App.Version})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	authLimiter := middleware.AuthRateLimiter(cfg.RateLimit)

	v1 := r.Group("/api/v1")

	v1.POST("/registration", authLimiter, h.Registration.Register)
	v1.POST("/auth/login", authLimiter, h.Auth.Login)
	v1.POST("/auth/refresh", authLimiter, h.Auth.Refresh)

	authed := v1.Group("", middleware.Authenticate(tokens))
	authed.POST("/auth/password", h.Auth.ChangePassword)

	clinical := authed.Group("", middleware.RequireRole(
		domain.RoleDoctor, domain.RoleNurse, domain.RoleAdmin, domain.RoleSuperAdmin,
	))
	{
		clinical.POST("/patients", h.Patient.Create)
		clinical.GET("/patients", h.Patient.List)
		clinical.GET("/patients/:id", h.Patient.Get)
		clinical.PUT("/patients/:id", h.Patient.Update)

		clinical.POST("/visits/admit", h.Visit.Admit)
		clinical.POST("/visits/discharge", h.Visit.Discharge)
		clinical.POST("/visits/room", h.Visit.AssignRoom)
		clinical.DELETE("/visits/room", h.Visit.ReleaseRoom)
		clinical.POST("/visits/services", h.Visit.AddService)
		clinical.POST("/visits/drugs", h.Visit.AddDrug)
		clinical.PUT("/visits/note", h.Visit.SetNote)
		clinical.GET("/visits", h.Visit.ListActive)
		clinical.GET("/visits/:patientId/:admittedAt", h.Visit.Timeline)

		clinical.GET("/rooms", h.Ward.List)
		clinical.GET("/rooms/:name", h.Ward.Get)

		clinical.GET("/staff/doctors", h.Staff.ListDoctors)

		clinical.GET("/drugs", h.Catalog.ListDrugs)
		clinical.GET("/services", h.Catalog.ListServices)

		clinical.GET("/schedules", h.Schedule.Find)
	}

	admin := authed.Group("", middleware.RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin))
	{
		admin.POST("/staff", h.Staff.Create)
		admin.GET("/staff", h.Staff.List)
		admin.GET("/staff/:username", h.Staff.Get)
		admin.PUT("/staff/:username", h.Staff.Update)

		admin.POST("/rooms", h.Ward.Create)
		admin.PUT("/rooms/:name", h.Ward.Update)
		admin.DELETE("/rooms/:name", h.Ward.Delete)

		admin.POST("/drugs", h.Catalog.AddDrug)
		admin.PUT("/drugs/:ndc", h.Catalog.UpdateDrug)
		admin.DELETE("/drugs/:ndc", h.Catalog.RemoveDrug)

		admin.POST("/services", h.Catalog.CreateService)
		admin.PUT("/services/:name", h.Catalog.UpdateService)
		admin.DELETE("/services/:name", h.Catalog.DeleteService)

		admin.POST("/schedules", h.Schedule.Create)
		admin.PUT("/schedules", h.Schedule.Update)
		admin.DELETE("/schedules", h.Schedule.Delete)
	}
}
