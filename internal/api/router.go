package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/middleware"
)

// Handlers bundles everything NewRouter mounts.
type Handlers struct {
	Health         *HealthHandler
	Auth           *AuthHandler
	Users          *UserHandler
	Clients        *ClientHandler
	Matters        *MatterHandler
	Invoices       *InvoiceHandler
	TimeEntries    *TimeEntryHandler
	Tasks          *TaskHandler
	Documents      *DocumentHandler
	Communications *CommunicationHandler
	Calendar       *CalendarHandler
	Conflicts      *ConflictHandler
	Reports        *ReportHandler
	Activities     *ActivityHandler
}

// RouterConfig carries the cross-cutting settings of the HTTP layer.
type RouterConfig struct {
	JWTSecret      string
	AllowedOrigin  string
	RequestTimeout time.Duration
	AuthLimiter    middleware.Limiter

	// Metrics, when set, instruments every route and serves GET /metrics.
	Metrics interface {
		GinMiddleware() gin.HandlerFunc
		Handler() http.Handler
	}
}

// NewRouter builds the gin engine. Everything except health, metrics,
// login and register requires a bearer token.
func NewRouter(cfg RouterConfig, h Handlers, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(logger),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			logger.Error("panic recovered",
				zap.Any("panic", recovered),
				zap.String("route", c.FullPath()),
				zap.String("request_id", middleware.GetRequestID(c)),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, envelope{Message: "Internal server error"})
		}),
		middleware.CORS(cfg.AllowedOrigin),
	)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.GinMiddleware())
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, envelope{Message: "Route not found"})
	})

	api := r.Group("/api")
	api.GET("/health", h.Health.Check)

	authGroup := api.Group("/auth")
	{
		limited := authGroup.Group("")
		if cfg.AuthLimiter != nil {
			limited.Use(middleware.RateLimit(cfg.AuthLimiter, logger))
		}
		limited.POST("/register", h.Auth.Register)
		limited.POST("/login", h.Auth.Login)
		authGroup.GET("/me", middleware.AuthMiddleware(cfg.JWTSecret), h.Auth.Me)
	}

	v1 := api.Group("")
	v1.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	users := v1.Group("/users")
	{
		users.GET("", h.Users.List)
		users.GET("/:id", h.Users.Get)
		users.PUT("/:id", h.Users.Update)
		users.PUT("/:id/password", h.Users.ChangePassword)
	}

	clients := v1.Group("/clients")
	{
		clients.GET("", h.Clients.List)
		clients.POST("", h.Clients.Create)
		clients.GET("/:id", h.Clients.Get)
		clients.PUT("/:id", h.Clients.Update)
		clients.DELETE("/:id", h.Clients.Delete)
		clients.GET("/:id/matters", h.Clients.Matters)
		clients.GET("/:id/billing", h.Clients.Billing)
	}

	matters := v1.Group("/matters")
	{
		matters.GET("", h.Matters.List)
		matters.POST("", h.Matters.Create)
		matters.GET("/:id", h.Matters.Get)
		matters.PUT("/:id", h.Matters.Update)
		matters.DELETE("/:id", h.Matters.Delete)
		matters.GET("/:id/time-entries", h.Matters.TimeEntries)
		matters.GET("/:id/documents", h.Matters.Documents)
		matters.GET("/:id/tasks", h.Matters.Tasks)
		matters.GET("/:id/communications", h.Matters.Communications)
	}

	invoices := v1.Group("/invoices")
	{
		invoices.GET("", h.Invoices.List)
		invoices.POST("", h.Invoices.Create)
		invoices.GET("/:id", h.Invoices.Get)
		invoices.PUT("/:id", h.Invoices.Update)
		invoices.DELETE("/:id", h.Invoices.Delete)
		invoices.POST("/:id/send", h.Invoices.Send)
		invoices.POST("/:id/pay", h.Invoices.Pay)
	}

	entries := v1.Group("/time-entries")
	{
		entries.GET("", h.TimeEntries.List)
		entries.POST("", h.TimeEntries.Create)
		entries.GET("/summary", h.TimeEntries.Summary)
		entries.GET("/:id", h.TimeEntries.Get)
		entries.PUT("/:id", h.TimeEntries.Update)
		entries.DELETE("/:id", h.TimeEntries.Delete)
	}

	tasks := v1.Group("/tasks")
	{
		tasks.GET("", h.Tasks.List)
		tasks.POST("", h.Tasks.Create)
		tasks.GET("/today", h.Tasks.Today)
		tasks.GET("/:id", h.Tasks.Get)
		tasks.PUT("/:id", h.Tasks.Update)
		tasks.DELETE("/:id", h.Tasks.Delete)
	}

	documents := v1.Group("/documents")
	{
		documents.GET("", h.Documents.List)
		documents.POST("", h.Documents.Create)
		documents.GET("/:id", h.Documents.Get)
		documents.DELETE("/:id", h.Documents.Delete)
	}

	comms := v1.Group("/communications")
	{
		comms.GET("", h.Communications.List)
		comms.POST("", h.Communications.Create)
		comms.GET("/:id", h.Communications.Get)
		comms.PUT("/:id", h.Communications.Update)
		comms.DELETE("/:id", h.Communications.Delete)
	}

	events := v1.Group("/calendar-events")
	{
		events.GET("", h.Calendar.List)
		events.POST("", h.Calendar.Create)
		events.GET("/today", h.Calendar.Today)
		events.GET("/:id", h.Calendar.Get)
		events.PUT("/:id", h.Calendar.Update)
		events.DELETE("/:id", h.Calendar.Delete)
	}

	conflicts := v1.Group("/conflicts")
	{
		conflicts.GET("", h.Conflicts.History)
		conflicts.POST("", h.Conflicts.Log)
		conflicts.POST("/check", h.Conflicts.Check)
	}
	v1.GET("/adverse-parties", h.Conflicts.ListAdverseParties)
	v1.POST("/adverse-parties", h.Conflicts.CreateAdverseParty)
	v1.DELETE("/adverse-parties/:id", h.Conflicts.DeleteAdverseParty)
	v1.GET("/contacts", h.Conflicts.ListContacts)
	v1.POST("/contacts", h.Conflicts.CreateContact)
	v1.DELETE("/contacts/:id", h.Conflicts.DeleteContact)

	reports := v1.Group("/reports")
	{
		reports.GET("/revenue", h.Reports.Revenue)
		reports.GET("/utilization", h.Reports.Utilization)
		reports.GET("/aging", h.Reports.Aging)
	}

	activities := v1.Group("/activities")
	{
		activities.GET("", h.Activities.List)
		activities.POST("", h.Activities.Log)
		activities.GET("/recent", h.Activities.Recent)
	}

	return r
}
