package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	adminhandler "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/handler/admin"
	appointmenthandler "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/handler/appointment"
	audithandler "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/handler/audit"
	authhandler "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/handler/auth"
	cataloghandler "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/handler/catalog"
	clienthandler "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/handler/client"
	healthhandler "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/handler/health"
	reservationhandler "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/handler/reservation"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/middleware"
)

// Handler mounts a resource's routes under a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimitEnabled bool
	LoginRate        rate.Limit
	LoginBurst       int
	CORS             middleware.CORSConfig
	RequestTimeout   time.Duration
}

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	authH        *authhandler.Handler
	clientH      *clienthandler.Handler
	catalogH     *cataloghandler.Handler
	appointmentH *appointmenthandler.Handler
	reservationH *reservationhandler.Handler
	adminH       *adminhandler.Handler
	auditH       *audithandler.Handler
	healthH      *healthhandler.Handler
	config       Config
}

func NewRouter(
	logger zerolog.Logger,
	auth *middleware.AuthMiddleware,
	authH *authhandler.Handler,
	clientH *clienthandler.Handler,
	catalogH *cataloghandler.Handler,
	appointmentH *appointmenthandler.Handler,
	reservationH *reservationhandler.Handler,
	adminH *adminhandler.Handler,
	auditH *audithandler.Handler,
	healthH *healthhandler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.ErrorHandler(logger),
		middleware.Timeout(config.RequestTimeout),
		middleware.CORS(config.CORS),
	)

	return &Router{
		engine:       engine,
		auth:         auth,
		authH:        authH,
		clientH:      clientH,
		catalogH:     catalogH,
		appointmentH: appointmentH,
		reservationH: reservationH,
		adminH:       adminH,
		auditH:       auditH,
		healthH:      healthH,
		config:       config,
	}
}

// Setup mounts all routes: probes and metrics at the root, the login
// endpoint behind a rate limiter, and everything else behind the session
// middleware.
func (r *Router) Setup() {
	r.healthH.RegisterRoutes(r.engine)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	public := api.Group("")
	if r.config.RateLimitEnabled {
		loginLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  r.config.LoginRate,
			Burst: r.config.LoginBurst,
		})
		public.Use(loginLimiter.RateLimit())
	}
	r.authH.RegisterPublicRoutes(public)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.authH.RegisterRoutes(protected)
	r.clientH.RegisterRoutes(protected)
	r.catalogH.RegisterRoutes(protected)
	r.appointmentH.RegisterRoutes(protected)
	r.reservationH.RegisterRoutes(protected)
	r.adminH.RegisterRoutes(protected)
	r.auditH.RegisterRoutes(protected)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
