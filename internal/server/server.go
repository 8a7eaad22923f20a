package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "craveconnect/docs" // swagger docs
	"craveconnect/internal/cache"
	"craveconnect/internal/config"
	"craveconnect/internal/database"
	"craveconnect/internal/featureflags"
	"craveconnect/internal/middleware"
	"craveconnect/internal/models"
	"craveconnect/internal/notifications"
	"craveconnect/internal/repository"
	"craveconnect/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	background     chan struct{}
	now            func() time.Time

	userRepo         repository.UserRepository
	recipeRepo       repository.RecipeRepository
	commentRepo      repository.CommentRepository
	chatRepo         repository.ChatRepository
	notificationRepo repository.NotificationRepository
	cookOffRepo      repository.CookOffRepository

	featureFlags *featureflags.Manager
	notifier     *notifications.Notifier
	relay        *notifications.Relay
	dispatcher   *notifications.OutboxDispatcher

	recipeService       *service.RecipeService
	commentService      *service.CommentService
	userService         *service.UserService
	chatService         *service.ChatService
	notificationService *service.NotificationService
	adminService        *service.AdminService
}

// NewServer connects to the database and redis and builds a server on top of them.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Redis is optional; the client is nil when unreachable.
	redisClient := cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg == nil || db == nil {
		return nil, errors.New("server needs a config and a database")
	}

	s := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   middleware.InitMetrics("craveconnect-api"),
		now:              time.Now,
		userRepo:         repository.NewUserRepository(db),
		recipeRepo:       repository.NewRecipeRepository(db),
		commentRepo:      repository.NewCommentRepository(db),
		chatRepo:         repository.NewChatRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
		cookOffRepo:      repository.NewCookOffRepository(db),
		featureFlags:     featureflags.NewManager(cfg.FeatureFlags),
	}

	s.notifier = notifications.NewNotifier(redisClient)
	s.relay = notifications.NewRelay(
		notifications.NewPresenceRegistry(),
		notifications.WithMessageRate(cfg.RelayMessagesPerSecond, cfg.RelayBurst),
	)
	s.dispatcher = notifications.NewOutboxDispatcher(
		s.notificationRepo,
		livePublisher{notifier: s.notifier, flags: s.featureFlags},
		cfg.OutboxPollInterval,
	)

	s.recipeService = service.NewRecipeService(s.recipeRepo, s.dispatcher)
	s.recipeService.SetPremoderation(s.featureFlags.Func(featureflags.RecipePremoderation))
	s.commentService = service.NewCommentService(s.commentRepo, s.dispatcher)
	s.userService = service.NewUserService(s.userRepo, s.recipeRepo, s.dispatcher)
	s.chatService = service.NewChatService(s.chatRepo, s.userRepo)
	s.notificationService = service.NewNotificationService(s.notificationRepo)
	s.adminService = service.NewAdminService(s.userRepo, s.recipeRepo, s.commentRepo, s.chatRepo, s.cookOffRepo)

	return s, nil
}

// livePublisher pushes delivered notifications to live sessions for recipients that have
// the live_notifications flag.
type livePublisher struct {
	notifier *notifications.Notifier
	flags    *featureflags.Manager
}

func (p livePublisher) PublishNotification(ctx context.Context, n *models.Notification) error {
	if !p.flags.Enabled(featureflags.LiveNotifications, n.RecipientID) {
		return nil
	}
	return p.notifier.PublishNotification(ctx, n)
}

// errorHandler renders errors that escaped a handler with the failure envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := models.CodeInternal
		switch fe.Code {
		case fiber.StatusNotFound:
			code = models.CodeNotFound
		case fiber.StatusBadRequest, fiber.StatusUpgradeRequired, fiber.StatusRequestEntityTooLarge:
			code = models.CodeValidation
		case fiber.StatusMethodNotAllowed:
			code = models.CodeValidation
		}
		return c.Status(fe.Code).JSON(models.ErrorResponse{Message: fe.Message, Code: code})
	}
	return respondError(c, err)
}

// App returns the fiber app with middleware and routes installed, building it on first use.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}
	app := fiber.New(fiber.Config{
		AppName:               "CraveConnect API",
		BodyLimit:             4 * 1024 * 1024,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Error reporting; repanics so recover still answers the request.
	if s.config.SentryDSN != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
	}

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.TracingMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before anything that can short-circuit so error responses keep
	// their CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://localhost:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: origins != "*",
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Message: "Too many requests, please try again later.",
				Code:    "RATE_LIMITED",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")
	auth := s.AuthRequired()

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	api.Get("/health", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "CraveConnect Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "register"), s.Register)
	authRoutes.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	authRoutes.Get("/me", auth, s.Me)
	authRoutes.Post("/logout", auth, s.Logout)
	authRoutes.Post("/ws-ticket", auth, s.IssueWSTicket)

	// Recipe routes. Specific paths before /:id.
	recipes := api.Group("/recipes")
	recipes.Get("/", s.GetRecipes)
	recipes.Get("/trending", s.GetTrendingRecipes)
	recipes.Get("/featured", s.GetFeaturedRecipes)
	recipes.Post("/", auth,
		s.RequireCapability(models.CapPublish, "Only chefs can publish recipes"),
		middleware.RateLimit(s.redis, 10, time.Hour, "create_recipe"),
		s.CreateRecipe)
	recipes.Get("/:id/comments", s.GetRecipeComments)
	recipes.Post("/:id/comments", auth, middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	recipes.Delete("/:id/comments/:commentId", auth, s.DeleteComment)
	recipes.Post("/:id/like", auth, s.LikeRecipe)
	recipes.Post("/:id/rate", auth, s.RateRecipe)
	recipes.Get("/:id", s.GetRecipe)
	recipes.Put("/:id", auth, s.UpdateRecipe)
	recipes.Delete("/:id", auth, s.DeleteRecipe)

	// User routes. Specific paths before /:id.
	users := api.Group("/users")
	users.Get("/top-chefs", s.GetTopChefs)
	users.Post("/bookmark/:recipeId", auth, s.ToggleBookmark)
	users.Put("/notifications/:id/read", auth, s.MarkNotificationRead)
	users.Get("/:id/notifications/unread-count", auth, s.GetUnreadCount)
	users.Get("/:id/notifications", auth, s.GetNotifications)
	users.Get("/:id/bookmarks", auth, s.GetBookmarks)
	users.Post("/:id/follow", auth, s.FollowUser)
	users.Get("/:id", s.GetUserProfile)
	users.Put("/:id", auth, s.UpdateUserProfile)

	// Chat routes
	chat := api.Group("/chat", auth)
	chat.Get("/messages", s.GetChatMessages)
	chat.Post("/messages", middleware.RateLimit(
		s.redis, 30, time.Minute, "send_chat"), s.SendChatMessage)
	chat.Delete("/messages/:id", s.DeleteChatMessage)

	// Realtime relay. Anonymous sockets are allowed; a ticket pins the identity.
	api.Get("/ws", RequireUpgrade, s.AuthOptional(), s.RelayHandler())

	// Admin routes
	admin := api.Group("/admin", auth,
		s.RequireCapability(models.CapModerate, "Admin access required"))
	admin.Get("/stats", s.GetAdminStats)
	admin.Get("/feature-flags", s.GetFeatureFlags)
	admin.Get("/users", s.GetAdminUsers)
	admin.Put("/users/:id/role", s.UpdateUserRole)
	admin.Delete("/users/:id", s.DeleteUser)
	admin.Get("/recipes/pending", s.GetPendingRecipes)
	admin.Put("/recipes/:id/approve", s.ApproveRecipe)
	admin.Put("/recipes/:id/feature", s.FeatureRecipe)
	admin.Put("/recipes/:id/trending", s.TrendRecipe)
	admin.Get("/comments", s.GetAdminComments)
	admin.Put("/comments/:id/approve", s.ApproveComment)
	admin.Delete("/comments/:id", s.DeleteAdminComment)
	admin.Post("/cookoff", s.CreateCookOff)
	admin.Get("/cookoff", s.GetCookOffs)
	admin.Post("/cookoff/:id/participants", s.AddCookOffParticipant)
	admin.Post("/cookoff/:id/winner", s.DeclareCookOffWinner)
	admin.Post("/reset-weekly-points", s.ResetWeeklyPoints)
}

// StartBackground starts the outbox dispatcher and the redis subscription that feeds live
// notifications to the relay. Both stop on Shutdown.
func (s *Server) StartBackground() {
	if s.shutdownFn != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel
	s.background = make(chan struct{})

	go func() {
		defer close(s.background)
		s.dispatcher.Run(ctx)
	}()

	if s.redis != nil {
		go func() {
			if err := s.relay.StartWiring(ctx, s.notifier); err != nil && ctx.Err() == nil {
				middleware.Logger.Error("relay wiring failed", slog.String("error", err.Error()))
			}
		}()
	}
}

// Start runs the background workers and serves HTTP until the listener closes.
func (s *Server) Start() error {
	s.StartBackground()
	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return s.App().Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Stop accepting requests first so no new outbox rows are written.
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("http shutdown failed", slog.String("error", err.Error()))
		}
	}

	if s.shutdownFn != nil {
		s.shutdownFn()
		select {
		case <-s.background:
		case <-ctx.Done():
			middleware.Logger.Warn("outbox dispatcher did not stop in time")
		}
	}

	if err := s.relay.Shutdown(ctx); err != nil {
		middleware.Logger.Error("relay shutdown failed", slog.String("error", err.Error()))
	}

	if err := database.Close(s.db); err != nil {
		middleware.Logger.Error("database close failed", slog.String("error", err.Error()))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("redis close failed", slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
