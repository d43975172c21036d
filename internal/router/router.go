package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/passguard/passguard/internal/handler"
	evaluateHandler "github.com/passguard/passguard/internal/handler/evaluate"
	prometheusHandler "github.com/passguard/passguard/internal/handler/prometheus"
	"github.com/passguard/passguard/internal/middleware"
)

// Handler registers its routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	MaxBodyBytes     int64
	CORS             middleware.CORSConfig
}

type Router struct {
	engine    *gin.Engine
	config    Config
	evaluateH Handler
	metricsH  *prometheusHandler.Handler
	h         *handler.Handler
}

func NewRouter(
	config Config,
	evaluateH *evaluateHandler.Handler,
	metricsH *prometheusHandler.Handler,
	h *handler.Handler,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	return &Router{
		engine:    gin.New(),
		config:    config,
		evaluateH: evaluateH,
		metricsH:  metricsH,
		h:         h,
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Setup installs middleware and routes.
func (r *Router) Setup() {
	r.engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		middleware.CORS(r.config.CORS),
		middleware.SizeLimit(r.config.MaxBodyBytes),
	)

	if r.config.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  r.config.RateLimit,
			Burst: r.config.RateBurst,
		})
		r.engine.Use(limiter.RateLimit())
	}

	api := r.engine.Group("/api/v1")
	{
		api.GET("/health", r.h.HealthCheck)
		r.evaluateH.RegisterRoutes(api)
	}

	if r.metricsH != nil {
		r.engine.GET("/metrics", r.metricsH.Handler())
	}
}
