package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/bookflow-labs/bookflow-server/internal/agent"
	"github.com/bookflow-labs/bookflow-server/internal/audit"
	"github.com/bookflow-labs/bookflow-server/internal/config"
	"github.com/bookflow-labs/bookflow-server/internal/handlers"
	infraRepo "github.com/bookflow-labs/bookflow-server/internal/infra/repository"
	"github.com/bookflow-labs/bookflow-server/internal/middleware"
	ucSchedule "github.com/bookflow-labs/bookflow-server/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	completion agent.CompletionClient,
	cfg *config.Config,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — SCHEDULING
	// ======================================================
	resolveAvailabilityUC := ucSchedule.NewResolveAvailability(scheduleRepo)

	bookSlotUC := ucSchedule.NewBookSlot(
		scheduleRepo,
		resolveAvailabilityUC,
		auditDispatcher,
	)

	cancelAppointmentUC := ucSchedule.NewCancelAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucSchedule.NewCompleteAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	markNoShowUC := ucSchedule.NewMarkNoShow(
		scheduleRepo,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucSchedule.NewListAppointmentsByDate(
		scheduleRepo,
	)

	// ======================================================
	// CONVERSATIONAL AGENT
	// ======================================================
	sessionStore := agent.NewSessionStore(
		rdb,
		time.Duration(cfg.SessionTTLMins)*time.Minute,
	)

	dispatcher := agent.NewDispatcher(db, resolveAvailabilityUC, bookSlotUC)
	directory := agent.NewGormDirectory(db)

	conversationAgent := agent.NewAgent(
		completion,
		dispatcher,
		sessionStore,
		directory,
		time.Duration(cfg.AgentTurnSecs)*time.Second,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	tenantHandler := handlers.NewTenantHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	staffHandler := handlers.NewStaffHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)

	availabilityHandler := handlers.NewAvailabilityHandler(resolveAvailabilityUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		bookSlotUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		markNoShowUC,
		listAppointmentsByDateUC,
	)

	bossProfileHandler := handlers.NewBossProfileHandler(db, auditDispatcher)
	callLogsHandler := handlers.NewCallLogsHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, resolveAvailabilityUC, bookSlotUC)
	chatHandler := handlers.NewChatHandler(db, conversationAgent)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
			publicAPI.POST("/:slug/chat", chatHandler.Chat)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/tenant", tenantHandler.Get)
			secured.PATCH("/me/tenant", tenantHandler.Update)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)

			secured.GET("/me/staff", staffHandler.List)
			secured.POST("/me/staff", staffHandler.Create)
			secured.PATCH("/me/staff/:id", staffHandler.Update)
			secured.DELETE("/me/staff/:id", staffHandler.Delete)
			secured.POST("/me/staff/:id/reset-password", staffHandler.ResetPassword)

			secured.GET("/me/staff/:id/schedule", scheduleHandler.Get)
			secured.PUT("/me/staff/:id/schedule", scheduleHandler.Update)

			secured.GET("/me/availability", availabilityHandler.Get)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)

			secured.GET("/me/call-logs", callLogsHandler.List)
			secured.GET("/me/dashboard", dashboardHandler.Stats)
			secured.GET("/me/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// BOSS PROFILES (ADMIN ONLY)
			// ------------------------------
			admin := secured.Group("/me/boss-profiles")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("", bossProfileHandler.List)
				admin.POST("", bossProfileHandler.Create)
				admin.PATCH("/:id/deactivate", bossProfileHandler.Deactivate)
				admin.DELETE("/:id", bossProfileHandler.Delete)
			}
		}
	}
}
