package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/manzafir/manzafir-backend/internal/config"
	"github.com/manzafir/manzafir-backend/internal/delivery/http"
	"github.com/manzafir/manzafir-backend/internal/delivery/http/handler"
	"github.com/manzafir/manzafir-backend/internal/delivery/http/middleware"
	"github.com/manzafir/manzafir-backend/internal/infrastructure/cloudinary"
	"github.com/manzafir/manzafir-backend/internal/infrastructure/database"
	"github.com/manzafir/manzafir-backend/internal/infrastructure/gemini"
	"github.com/manzafir/manzafir-backend/internal/infrastructure/logger"
	"github.com/manzafir/manzafir-backend/internal/infrastructure/server"
	"github.com/manzafir/manzafir-backend/internal/repository/postgres"
	"github.com/manzafir/manzafir-backend/internal/usecase/auth"
	"github.com/manzafir/manzafir-backend/internal/usecase/catalog"
	"github.com/manzafir/manzafir-backend/internal/usecase/match"
	"github.com/manzafir/manzafir-backend/internal/usecase/profile"
	"github.com/manzafir/manzafir-backend/internal/usecase/recommend"
	"github.com/manzafir/manzafir-backend/pkg/identity"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    zerolog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.GeminiClient
	Auth   *auth.SessionAuthUseCase
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.New("manzafir-backend", cfg.Logging.Level)

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis (backs the one-time credential guard)
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize Gemini Client
	geminiClient, err := gemini.NewGeminiClient(cfg.GeminiAPIKey)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Gemini client, continuing without AI features")
	}

	// Initialize identity provider client
	identityClient := identity.NewClient(cfg.Identity.BaseURL, cfg.Identity.Timeout)

	// Image storage is optional; without credentials the upload endpoint
	// answers 503 instead of taking the whole server down.
	var uploader handler.ImageUploader
	if cfg.Cloudinary.Configured() {
		uploader = cloudinary.NewClient(&cfg.Cloudinary)
	} else {
		log.Warn().Msg("cloudinary credentials not set, image uploads disabled")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	actionRepo := postgres.NewMatchActionRepository(db)
	packageRepo := postgres.NewPackageRepository(db)

	// Initialize use cases
	credentialGuard := auth.NewRedisCredentialGuard(redisClient)

	authUseCase := auth.NewSessionAuthUseCase(
		userRepo,
		sessionRepo,
		credentialGuard,
		identityClient,
		cfg.Session.JWTSecret,
		cfg.Session.SessionTTL(),
		log,
	)

	profileUseCase := profile.NewProfileUseCase(
		profileRepo,
		userRepo,
	)

	matchUseCase := match.NewMatchUseCase(
		profileRepo,
		userRepo,
		actionRepo,
		log,
	)

	catalogUseCase := catalog.NewCatalogUseCase(packageRepo)

	recommendUseCase := recommend.NewRecommendUseCase(geminiClient, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase, &cfg.Session, log)
	profileHandler := handler.NewProfileHandler(profileUseCase, log)
	matchHandler := handler.NewMatchHandler(matchUseCase, log)
	packageHandler := handler.NewPackageHandler(catalogUseCase, log)
	recommendationHandler := handler.NewRecommendationHandler(recommendUseCase, log)
	uploadHandler := handler.NewUploadHandler(uploader, log)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase, cfg.Session.CookieName, log)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		profileHandler,
		matchHandler,
		packageHandler,
		recommendationHandler,
		uploadHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, log)

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Gemini: geminiClient,
		Auth:   authUseCase,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Error().Err(err).Msg("error closing redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
