// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"skybook/internal/audit"
	"skybook/internal/auth"
	"skybook/internal/backend"
	"skybook/internal/bookings"
	"skybook/internal/checkout"
	"skybook/internal/contacts"
	"skybook/internal/flights"
	"skybook/internal/passengers"
	"skybook/internal/payment"
	"skybook/internal/session"
	"skybook/internal/shared/config"
	"skybook/internal/shared/database"
	"skybook/internal/shared/middleware"
	"skybook/internal/wizard"
	"skybook/pkg/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	cache     cache.Service
	backend   *backend.Client
	processor payment.Processor
	sessions  session.Store
	wizard    *wizard.Store
	ledger    audit.Repository
	recorder  audit.Recorder
}

// NewRouter wires the shared components every screen uses. publisher may be
// nil when Kafka is disabled. The cache and ledger are built once so the
// in-process fallbacks are shared by every module.
func NewRouter(cfg *config.Config, db *database.DB, publisher audit.Publisher) *Router {
	c := db.Cache()
	ledger := db.AuditRepository()
	return &Router{
		config:    cfg,
		db:        db,
		cache:     c,
		backend:   backend.NewClient(cfg.Backend),
		processor: payment.NewStripeProcessor(cfg.Payment),
		sessions:  session.NewStore(c, cfg.Redis.SessionTTL),
		wizard:    wizard.NewStore(c, cfg.Redis.WizardTTL),
		ledger:    ledger,
		recorder:  audit.NewLedgerRecorder(ledger, publisher),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	api.Use(middleware.Session(r.sessions, r.config.Session, r.config.Redis.SessionTTL))
	{
		api.GET("/status", r.status)
		r.setupAuthRoutes(api)
		r.setupFlightRoutes(api)
		r.setupPassengerRoutes(api)
		r.setupCheckoutRoutes(api)
		r.setupBookingRoutes(api)
		r.setupContactRoutes(api)
		r.setupAuditRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "skybook-bff",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "skybook-bff",
			"redis":     r.db.Redis != nil,
			"audit_db":  r.db.PostgreSQL != nil,
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// status reports which optional components are active
func (r *Router) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"api_version":  r.config.APIVersion,
		"backend":      r.config.Backend.BaseURL,
		"redis_cache":  r.db.Redis != nil,
		"audit_ledger": r.db.PostgreSQL != nil,
		"rate_limit":   r.config.RateLimit.Enabled,
		"timestamp":    time.Now(),
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authService := auth.NewService(r.backend, r.wizard)
	authController := auth.NewController(authService, r.config.Upload.MaxSize)
	auth.NewRouter(authController).SetupRoutes(rg)
}

func (r *Router) setupFlightRoutes(rg *gin.RouterGroup) {
	policy := flights.NewFallbackPolicy(flights.DefaultStrategies)
	flightService := flights.NewService(r.backend, r.cache, r.wizard, policy, r.config.Redis.CacheTTL)
	flights.SetupFlightRoutes(rg, flights.NewController(flightService))
}

func (r *Router) setupPassengerRoutes(rg *gin.RouterGroup) {
	passengerService := passengers.NewService(r.backend, r.wizard, r.recorder)
	passengers.NewRouter(passengers.NewController(passengerService)).SetupRoutes(rg)
}

func (r *Router) setupCheckoutRoutes(rg *gin.RouterGroup) {
	checkoutService := checkout.NewService(r.backend, r.processor, r.wizard, r.recorder, r.config.Payment)
	checkout.SetupCheckoutRoutes(rg, checkout.NewController(checkoutService))
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingService := bookings.NewService(r.backend, r.cache, r.config.Redis.CacheTTL)
	bookings.NewRouter(bookings.NewController(bookingService)).SetupRoutes(rg)
}

func (r *Router) setupContactRoutes(rg *gin.RouterGroup) {
	contacts.SetupContactRoutes(rg, contacts.NewController(contacts.NewService(r.backend)))
}

func (r *Router) setupAuditRoutes(rg *gin.RouterGroup) {
	auditService := audit.NewService(r.ledger, r.backend)
	audit.SetupAuditRoutes(rg, audit.NewController(auditService))
}
