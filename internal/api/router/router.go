package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/juriqh/masar-notes-buddy/config"
	"github.com/juriqh/masar-notes-buddy/internal/api/handler"
	"github.com/juriqh/masar-notes-buddy/internal/api/middleware"
	"github.com/juriqh/masar-notes-buddy/pkg/redis"
)

// ingest is rate limited because each call burns a vision API request.
const (
	ingestRateLimit  = 5
	ingestRateWindow = time.Minute
)

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── Health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Schedule-photo ingestion. Lives outside /api/v1 because the upload
	// automation posts to this fixed path.
	r.POST("/api/process-schedule",
		middleware.RateLimit(rdb, ingestRateLimit, ingestRateWindow),
		h.Ingest.ProcessSchedule,
	)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		schedule := v1.Group("/schedule")
		{
			schedule.GET("/today", h.Schedule.Today)
			schedule.GET("/tomorrow", h.Schedule.Tomorrow)
		}

		notes := v1.Group("/notes")
		{
			notes.GET("", h.Notes.List)
			notes.POST("", h.Notes.Create)
		}

		export := v1.Group("/export")
		{
			export.GET("/xlsx", h.Export.ExportXLSX)
			export.GET("/ics", h.Export.ExportICS)
		}
	}

	return r
}
