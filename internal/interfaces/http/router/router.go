// Package router wires gin middleware and handler route groups together.
package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/mysticum/wms/internal/infrastructure/auth"
	"github.com/mysticum/wms/internal/infrastructure/config"
	"github.com/mysticum/wms/internal/infrastructure/logger"
	"github.com/mysticum/wms/internal/interfaces/http/middleware"
)

// RouteRegistrar registers a handler's routes on the versioned API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration.
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration.
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g. "v1").
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router around an engine.
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered by Setup.
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes under the versioned API group.
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// EngineConfig carries everything NewEngine needs to assemble the
// middleware chain.
type EngineConfig struct {
	HTTP             config.HTTPConfig
	ServiceName      string
	TelemetryEnabled bool
	JWTService       *auth.JWTService
	Logger           *zap.Logger
}

// NewEngine builds a gin engine with the standard middleware chain:
// request ID, CORS, tracing, request logging, panic recovery and JWT
// authentication.
func NewEngine(cfg EngineConfig) (*gin.Engine, error) {
	engine := gin.New()

	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORSWithConfig(corsConfig))
	if cfg.TelemetryEnabled {
		engine.Use(otelgin.Middleware(cfg.ServiceName))
	}
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.JWTAuthWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: cfg.JWTService,
		SkipPaths: []string{
			"/health",
			"/ready",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: cfg.Logger,
	}))

	return engine, nil
}
