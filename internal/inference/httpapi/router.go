package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/modbridge/modbridge-backend/internal/platform/logger"
)

type RouterConfig struct {
	ServiceName      string
	Log              *logger.Logger
	InferenceHandler *InferenceHandler
	HealthHandler    *HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(AttachRequestIDs())
	r.Use(RequestLogger(cfg.Log))
	r.Use(CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Healthz)
		r.GET("/readyz", cfg.HealthHandler.Readyz)
	}

	api := r.Group("/api/v1")
	{
		if cfg.InferenceHandler != nil {
			inference := api.Group("/inference")
			inference.POST("/infer", cfg.InferenceHandler.Infer)
			inference.POST("/batch", cfg.InferenceHandler.Batch)
			inference.POST("/optimize", cfg.InferenceHandler.Optimize)
			inference.POST("/learn", cfg.InferenceHandler.Learn)
			inference.POST("/validate", cfg.InferenceHandler.Validate)
			inference.POST("/compatibility", cfg.InferenceHandler.Compatibility)
			inference.GET("/statistics", cfg.InferenceHandler.Statistics)
		}
	}

	return r
}
