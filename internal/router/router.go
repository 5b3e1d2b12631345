package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"medexplain/internal/handler"
	"medexplain/internal/middleware"
	"medexplain/internal/observability/metrics"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health      *handler.HealthHandler
	FAQ         *handler.FAQHandler
	Session     *handler.SessionHandler
	Medication  *handler.MedicationHandler
	Report      *handler.ReportHandler
	Interaction *handler.InteractionHandler
}

// Options configures the global middleware.
type Options struct {
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
	ServiceName    string
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Tracing(opts.ServiceName))
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(opts.Gatherer)))
	}

	v1 := r.Group("/api/v1")
	v1.GET("/faq", h.FAQ.List)

	// Stateless tools
	v1.POST("/medications/extract", h.Medication.Extract)
	v1.POST("/reports/summarize", h.Report.Summarize)
	v1.POST("/interactions/check", h.Interaction.Check)

	// Session-scoped state
	sessions := v1.Group("/sessions")
	sessions.POST("", h.Session.Create)
	sessions.GET("/:id", h.Session.Get)
	sessions.DELETE("/:id", h.Session.Delete)
	sessions.POST("/:id/medications", h.Session.AddMedication)
	sessions.DELETE("/:id/medications/:index", h.Session.RemoveMedication)
	sessions.POST("/:id/medications/extract", h.Medication.ExtractIntoSession)
	sessions.POST("/:id/foods", h.Session.AddFood)
	sessions.DELETE("/:id/foods/:index", h.Session.RemoveFood)
	sessions.POST("/:id/interactions/check", h.Interaction.CheckSession)
	sessions.GET("/:id/interactions/export", h.Interaction.Export)
	sessions.POST("/:id/report", h.Report.SummarizeIntoSession)
	sessions.GET("/:id/report", h.Report.SessionReport)

	return r
}
