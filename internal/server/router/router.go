package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/qclab/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by the router.
type Handlers struct {
	Records  *handlers.RecordHandler
	Reports  *handlers.ReportHandler
	Drafts   *handlers.DraftHandler
	Messages *handlers.MessageHandler
	Metrics  http.Handler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics))
	}

	api := r.Group("/api")
	api.GET("/labels", h.Reports.Labels)
	api.GET("/dashboard", h.Reports.Dashboard)
	api.GET("/templates", h.Reports.Templates)
	api.GET("/templates/:key", h.Reports.Template)
	api.GET("/drafts/new", h.Drafts.NewDraft)
	api.POST("/drafts/parameters", h.Drafts.EditParameters)

	api.GET("/records", h.Records.List)
	api.POST("/records", h.Records.Create)
	api.GET("/records/:id", h.Records.Get)
	api.POST("/records/:id/analysis", h.Records.RequestAnalysis)
	api.GET("/records/:id/analysis", h.Records.GetAnalysis)

	if h.Messages != nil {
		api.POST("/messages", h.Messages.SendMessage)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
