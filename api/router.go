// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"scamwatch/security-api/dashboard"
	"scamwatch/security-api/db"
	"scamwatch/security-api/middleware"
	"scamwatch/security-api/security"
	"scamwatch/security-api/storage"
	"scamwatch/security-api/store"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	Router    *gin.Engine
	Users     store.UserStore
	Alerts    store.AlertStore
	Reports   store.ReportStore
	Tokens    *security.TokenService
	Dashboard *dashboard.Service
	Uploads   storage.Store

	cacheStore *persist.MemoryStore
}

// NewRouter wires the production dependency graph: SQLite-backed
// stores, the configured attachment storage and the JWT service
func NewRouter() (*API, error) {
	makeLogger()

	conn, err := db.New(viper.GetString("database.path"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}

	var uploads storage.Store
	if viper.GetString("storage.type") == "s3" {
		uploads, err = storage.NewS3()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
		}
	} else {
		uploads, err = storage.NewLocal(viper.GetString("upload.dir"))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage, %w", err)
		}
	}

	tokens := security.NewTokenService(
		viper.GetString("jwt.secret"),
		time.Duration(viper.GetInt("jwt.expiry_days"))*24*time.Hour,
	)

	return New(
		store.NewGormUserStore(conn),
		store.NewGormAlertStore(conn),
		store.NewGormReportStore(conn),
		tokens,
		dashboard.NewService(),
		uploads,
	), nil
}

// New builds the router around already-constructed dependencies. Tests
// pass the in-memory stores here
func New(users store.UserStore, alerts store.AlertStore, reports store.ReportStore, tokens *security.TokenService, dash *dashboard.Service, uploads storage.Store) *API {
	a := &API{
		Users:      users,
		Alerts:     alerts,
		Reports:    reports,
		Tokens:     tokens,
		Dashboard:  dash,
		Uploads:    uploads,
		cacheStore: persist.NewMemoryStore(time.Minute),
	}

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	jwt := middleware.RequireAuth(a.Tokens, a.Users)

	maxUploadSize := viper.GetInt64("upload.max_size")
	if maxUploadSize <= 0 {
		maxUploadSize = 25 << 20
	}

	// Rate limiting guards the unauthenticated writes. Disabled when
	// not configured (tests)
	public := func(c *gin.Context) { c.Next() }
	if rps := viper.GetInt("rate_limit.rps"); rps > 0 {
		public = middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			RequestsPerSecond: rps,
			Burst:             viper.GetInt("rate_limit.burst"),
		})
	}

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates a JWT token
		main.HEAD("/validate", jwt, a.Validate)
	}

	auth := main.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/login		-> Logs in a user and returns a JWT token
		auth.POST("/login", public, a.AuthLogin)

		// POST /api/auth/register	-> Registers a new user
		auth.POST("/register", public, a.AuthRegister)

		// POST /api/auth/logout	-> Stateless logout confirmation
		auth.POST("/logout", jwt, a.AuthLogout)

		// GET /api/auth/profile	-> Returns the caller's profile
		auth.GET("/profile", jwt, a.ProfileGet)

		// PUT /api/auth/profile	-> Partially updates username/email
		auth.PUT("/profile", jwt, a.ProfileUpdate)
	}

	alertsGroup := main.Group("/alerts", jwt, middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/alerts		-> Lists the caller's alerts
		alertsGroup.GET("", a.AlertList)

		// GET /api/alerts/stats	-> Per-type/severity breakdown
		alertsGroup.GET("/stats", a.AlertStats)

		// GET /api/alerts/:id		-> Returns a single alert
		alertsGroup.GET("/:id", a.AlertGet)

		// POST /api/alerts		-> Creates a new alert
		alertsGroup.POST("", a.AlertCreate)

		// PUT /api/alerts/:id		-> Partially updates an alert
		alertsGroup.PUT("/:id", a.AlertUpdate)

		// DELETE /api/alerts/:id	-> Deletes an alert
		alertsGroup.DELETE("/:id", a.AlertDelete)

		// PATCH /api/alerts/:id/resolve -> Marks an alert resolved
		alertsGroup.PATCH("/:id/resolve", a.AlertResolve)
	}

	dashGroup := main.Group("/dashboard", jwt)
	{
		// GET /api/dashboard/stats	-> Snapshot of the dashboard stats
		dashGroup.GET("/stats", a.cacheFor(30), a.DashboardStats)

		// PUT /api/dashboard/stats	-> Overwrites parts of the snapshot
		dashGroup.PUT("/stats", a.DashboardStatsUpdate)

		// GET /api/dashboard/threats	-> Threat history for a period
		dashGroup.GET("/threats", a.cacheFor(30), a.DashboardThreats)

		// GET /api/dashboard/risk-score -> Derived risk score/level/color
		dashGroup.GET("/risk-score", a.cacheFor(30), a.DashboardRiskScore)

		// GET /api/dashboard/resolution-rate -> Resolved percentage
		dashGroup.GET("/resolution-rate", a.cacheFor(30), a.DashboardResolutionRate)
	}

	// Report submission is deliberately unauthenticated, the mobile app
	// submits before the user ever signs in. Don't harden without
	// checking with product first
	reportsGroup := main.Group("/reports", middleware.OptionalAuth(a.Tokens, a.Users))
	{
		// POST /api/reports		-> Submits a scam report (multipart)
		reportsGroup.POST("", public, middleware.BodySizeLimiter(maxUploadSize), a.ReportSubmit)

		// GET /api/reports		-> Lists all reports, newest first
		reportsGroup.GET("", a.ReportList)
	}

	return a
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func (a *API) cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(a.cacheStore, time.Second*time.Duration(sec))
}
