package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/eren/coursemap/docs" // Import generated swagger docs
	appControllers "github.com/eren/coursemap/internal/app/controllers"
	appMigrations "github.com/eren/coursemap/internal/app/migrations"
	appRepos "github.com/eren/coursemap/internal/app/repositories"
	appRoutes "github.com/eren/coursemap/internal/app/routes"
	appServices "github.com/eren/coursemap/internal/app/services"
	"github.com/eren/coursemap/internal/catalog"
	"github.com/eren/coursemap/internal/config"
	"github.com/eren/coursemap/internal/db"
	"github.com/eren/coursemap/internal/degree"
	appMiddleware "github.com/eren/coursemap/internal/middleware"
	pkgAuth "github.com/eren/coursemap/internal/pkg/auth"
	"github.com/eren/coursemap/internal/pkg/helpers"
	"github.com/eren/coursemap/internal/pkg/logger"
	"github.com/eren/coursemap/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           *appServices.AuthService
	RequirementService    *appServices.RequirementService
	PlanService           *appServices.PlanService
	CatalogService        *appServices.CatalogService
	SyncService           *appServices.SyncService
	AuthController        *appControllers.AuthController
	CourseController      *appControllers.CourseController
	PlanController        *appControllers.PlanController
	RequirementController *appControllers.RequirementController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// A .env file in the working directory, when present, is loaded first so it
// can supply the environment overrides.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default requirement document.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Seed the default requirement document (after migrations). Without it
	// every fulfillment evaluation fails, so a seeding error is fatal.
	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default data")
		return nil, err
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	googleVerifier := pkgAuth.NewGoogleTokenVerifier(cfg.Google.ClientID)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		googleVerifier,
		lgr,
	)

	programDefaults := degree.ProgramDefaults{
		ProgramName: cfg.Program.Name,
		Subjects:    cfg.Program.RelevantSubjects,
	}

	deps.RequirementService = appServices.NewRequirementService(deps.Repos.RequirementRepository, programDefaults)
	deps.PlanService = appServices.NewPlanService(deps.Repos.PlanRepository, deps.RequirementService)
	deps.CatalogService = appServices.NewCatalogService(deps.Repos.CourseRepository, deps.RequirementService)

	catalogClient := catalog.NewClient(
		cfg.Catalog.BaseURL,
		cfg.Catalog.APIKey,
		helpers.ParseDuration(cfg.Catalog.Timeout, 30*time.Second),
	)
	deps.SyncService = appServices.NewSyncService(
		catalogClient,
		deps.Repos.CourseRepository,
		deps.Repos.RequirementRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CatalogService, lgr)
	deps.PlanController = appControllers.NewPlanController(deps.PlanService, lgr)
	deps.RequirementController = appControllers.NewRequirementController(deps.RequirementService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.PlanController,
		deps.RequirementController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
