// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "saathi/docs" // swagger docs
	"saathi/internal/cache"
	"saathi/internal/config"
	"saathi/internal/database"
	"saathi/internal/featureflags"
	"saathi/internal/middleware"
	"saathi/internal/models"
	"saathi/internal/observability"
	"saathi/internal/repository"
	"saathi/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const requestTimeout = 5 * time.Second

// Pinger reports whether the primary store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the collaborators a Server is assembled from.
type Dependencies struct {
	Store       Pinger
	Redis       *redis.Client
	Users       repository.UserRepository
	Communities repository.CommunityRepository
	Clock       *service.Clock
}

// Server holds all dependencies and provides handlers
type Server struct {
	config           *config.Config
	db               *mongo.Database
	store            Pinger
	redis            *redis.Client
	app              *fiber.App
	limiter          *middleware.RateLimiter
	promMiddleware   *fiberprometheus.FiberPrometheus
	featureFlags     *featureflags.Manager
	userService      *service.UserService
	communityService *service.CommunityService
}

// NewServer creates a server from already-built repositories.
func NewServer(cfg *config.Config, deps Dependencies) (*Server, error) {
	clock := deps.Clock
	if clock == nil {
		var err error
		clock, err = service.NewClock(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
		}
	}

	flags := featureflags.NewManager(cfg.FeatureFlags)

	return &Server{
		config:           cfg,
		store:            deps.Store,
		redis:            deps.Redis,
		limiter:          middleware.NewRateLimiter(deps.Redis, cfg.Env),
		promMiddleware:   middleware.InitMetrics("saathi-api"),
		featureFlags:     flags,
		userService:      service.NewUserService(deps.Users, clock),
		communityService: service.NewCommunityService(deps.Communities, clock, flags),
	}, nil
}

// NewServerWithDeps wires the gateway, cache and repositories on top of an
// established MongoDB database and an optional Redis client.
func NewServerWithDeps(cfg *config.Config, db *mongo.Database, redisClient *redis.Client) (*Server, error) {
	gateway := database.NewGateway(db)
	store := cache.New(redisClient)

	s, err := NewServer(cfg, Dependencies{
		Store:       gateway,
		Redis:       redisClient,
		Users:       repository.NewUserRepository(gateway, store),
		Communities: repository.NewCommunityRepository(gateway, store),
	})
	if err != nil {
		return nil, err
	}
	s.db = db
	return s, nil
}

// App builds the Fiber application with middleware and routes installed.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}

	app := fiber.New(fiber.Config{
		AppName:      "Saathi API",
		BodyLimit:    1024 * 1024,
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// errorHandler renders errors that escaped a handler. Route errors keep their
// status; anything unclassified is reported as a bad request.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"detail": fe.Message})
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return respondServiceError(c, err)
	}

	observability.Logger.WarnContext(c.UserContext(), "unhandled request error",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panics become errors for the error handler
	app.Use(recover.New())

	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST",
		AllowHeaders: "*",
		// Fiber refuses credentials together with a wildcard origin.
		AllowCredentials: !strings.Contains(origins, "*"),
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Root)
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Saathi Metrics Dashboard",
	}))
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Specific /profile and /save routes are registered before /:username
	users := app.Group("/user")
	users.Post("/signup", s.limiter.Limit("signup", 5, 10*time.Minute), s.Signup)
	users.Post("/login", s.limiter.Limit("login", 10, 5*time.Minute), s.Login)
	users.Get("/profile/:username", s.GetProfile)
	users.Post("/save/profile/:username", s.SaveProfile)
	users.Post("/update/profile/:username", s.UpdateProfile)
	users.Get("/:username", s.GetUser)

	communities := app.Group("/community")
	communities.Post("/create", s.limiter.Limit("create_community", 10, time.Minute), s.CreateCommunity)
	communities.Get("/id/:community_id", s.GetCommunity)
	communities.Get("/user/:username", s.GetUserCommunities)
	communities.Get("/latest", s.GetLatestCommunities)
	communities.Post("/search/skills", s.limiter.Limit("search", 30, time.Minute), s.SearchCommunities)
}

// Root handles GET /
func (s *Server) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Server is live!"})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional: a
// server started without it reports "disabled" and stays ready.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	dbStatus := "healthy"
	if s.store == nil {
		dbStatus = "unavailable"
	} else if err := s.store.Ping(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start builds the app and listens on the configured port.
func (s *Server) Start() error {
	app := s.App()
	observability.Logger.Info("Server starting",
		slog.String("port", s.config.Port),
		slog.Any("feature_flags", s.featureFlags.Raw()),
	)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			observability.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if s.db != nil {
		if err := s.db.Client().Disconnect(ctx); err != nil {
			observability.Logger.Error("error disconnecting mongodb", slog.String("error", err.Error()))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			observability.Logger.Error("error closing redis", slog.String("error", err.Error()))
		}
	}

	observability.Logger.Info("Server shutdown complete")
	return nil
}
