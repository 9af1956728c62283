package api

import (
	"net"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/teamify/office-api/docs"
	"github.com/teamify/office-api/internal/api/handler"
	"github.com/teamify/office-api/internal/api/middleware"
	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

// Deps carries everything the HTTP layer needs. Services are built in main.
type Deps struct {
	Log zerolog.Logger

	Auth          ports.AuthService
	Passwords     ports.PasswordResetService
	Entitlements  ports.EntitlementService
	Subscriptions ports.SubscriptionService
	Companies     ports.CompanyService
	Newsletter    ports.NewsletterService

	LoginLimiter    ports.RateLimiter
	LoginRateLimit  int
	LoginRateWindow time.Duration

	// TrustedProxies are the ranges whose X-Forwarded-For is believed.
	// Empty means the peer address of the connection is the client IP.
	TrustedProxies []*net.IPNet

	Cookie    middleware.CookieConfig
	WebRoot   string
	Readiness map[string]handler.CheckFunc

	// Metrics registry; nil means the Prometheus default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.IPExtractor = ipExtractor(d.TrustedProxies)

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "office",
		Registerer: registerer,
	}))
	gate := middleware.Gate(middleware.GateConfig{
		Auth:     d.Auth,
		Resolver: d.Entitlements,
		Log:      d.Log,
	})

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Entitlements, d.Cookie)
	passwordHandler := handler.NewPasswordHandler(d.Passwords)
	profileHandler := handler.NewProfileHandler(d.Auth, d.Cookie)
	subscriptionHandler := handler.NewSubscriptionHandler(d.Subscriptions)
	companyHandler := handler.NewCompanyHandler(d.Companies, d.Subscriptions)
	newsletterHandler := handler.NewNewsletterHandler(d.Newsletter)
	pageHandler := handler.NewPageHandler(d.WebRoot)

	session := middleware.Session(d.Auth)
	requireSubscription := middleware.RequireSubscription(d.Entitlements)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login, middleware.LoginRateLimit(d.LoginLimiter, d.LoginRateLimit, d.LoginRateWindow, d.Log))
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/check", authHandler.Check)
	auth.POST("/forgot-password", passwordHandler.Forgot)
	auth.POST("/reset-password", passwordHandler.Reset)

	// --- Session routes ---
	e.PUT("/api/users/profile", profileHandler.Update, session)

	subs := e.Group("/api/subscriptions", session)
	subs.POST("", subscriptionHandler.Create)
	subs.GET("", subscriptionHandler.List)

	companies := e.Group("/api/companies", session)
	companies.POST("", companyHandler.Save, requireSubscription)
	companies.GET("", companyHandler.Get)
	companies.DELETE("/:id", companyHandler.Delete, requireSubscription)

	e.POST("/api/newsletter", newsletterHandler.Subscribe)
	e.GET("/api/admin/newsletter", newsletterHandler.List, session, middleware.RBAC(domain.RoleAdmin))

	// --- Pages (gated by middleware.Gate) ---
	for _, p := range middleware.PublicPages {
		e.GET(p, pageHandler.Serve)
	}
	for _, p := range handler.GatedPages {
		e.GET(p, pageHandler.Serve, gate)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// ipExtractor trusts X-Forwarded-For only from the given ranges. Without
// ranges, forwarding headers are ignored.
func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, r := range trusted {
		opts = append(opts, echo.TrustIPRange(r))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

// requestLogger writes one zerolog line per request. Only the path is logged;
// query strings may carry reset tokens.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
