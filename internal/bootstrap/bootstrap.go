package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/mlreyes/panelhub/docs" // Generated swagger docs
	"github.com/mlreyes/panelhub/internal/app/controllers"
	"github.com/mlreyes/panelhub/internal/app/engine"
	appMigrations "github.com/mlreyes/panelhub/internal/app/migrations"
	"github.com/mlreyes/panelhub/internal/app/repositories"
	"github.com/mlreyes/panelhub/internal/app/routes"
	"github.com/mlreyes/panelhub/internal/app/services"
	"github.com/mlreyes/panelhub/internal/config"
	"github.com/mlreyes/panelhub/internal/db"
	"github.com/mlreyes/panelhub/internal/middleware"
	"github.com/mlreyes/panelhub/internal/pkg/auth"
	"github.com/mlreyes/panelhub/internal/pkg/filestorage"
	"github.com/mlreyes/panelhub/internal/pkg/helpers"
	"github.com/mlreyes/panelhub/internal/pkg/logger"
	"github.com/mlreyes/panelhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos              *repositories.Repositories
	Services           *services.Services
	AuthController     *controllers.AuthController
	FacultyController  *controllers.FacultyController
	RequestController  *controllers.RequestController
	WorkflowController *controllers.WorkflowController
	AuthMiddleware     *middleware.AuthMiddleware
	JWTService         *auth.JWTService
	RateTable          *engine.RateTable
	FileStorage        *filestorage.LocalStorage
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
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

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := appMigrations.NewMigrator(dbPool).MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// LoadRateTable builds the engine's rate table: the operator schedule when
// one is configured, the built-in board-approved table otherwise.
func LoadRateTable(cfg *config.Config, lgr zerolog.Logger) (*engine.RateTable, error) {
	if cfg.Engine.RatesPath == "" {
		lgr.Info().Msg("Using built-in rate table")
		return engine.DefaultRateTable(), nil
	}

	rt, err := engine.LoadRateTable(cfg.Engine.RatesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate table from %s: %w", cfg.Engine.RatesPath, err)
	}
	lgr.Info().Str("path", cfg.Engine.RatesPath).Msg("Rate table loaded")
	return rt, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = repositories.NewRepositories(dbPool)

	var err error
	deps.RateTable, err = LoadRateTable(cfg, lgr)
	if err != nil {
		return nil, err
	}

	baseURL := "http://localhost:" + cfg.Server.Port + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 8*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	requestService := services.NewRequestService(
		deps.Repos.RequestRepository,
		deps.Repos.FacultyRepository,
		deps.Repos.DepartmentRepository,
		deps.RateTable,
		cfg.ResetBoundary(),
	)

	deps.Services = &services.Services{
		AuthService:    services.NewAuthService(deps.Repos.UserRepository, deps.JWTService),
		FacultyService: services.NewFacultyService(deps.Repos.FacultyRepository, deps.Repos.DepartmentRepository),
		RequestService: requestService,
		WorkflowService: services.NewWorkflowService(
			requestService,
			deps.Repos.RequestRepository,
			deps.Repos.FacultyRepository,
			deps.Repos.FileRepository,
			deps.FileStorage,
		),
	}

	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = controllers.NewAuthController(deps.Services.AuthService, lgr)
	deps.FacultyController = controllers.NewFacultyController(deps.Services.FacultyService, lgr)
	deps.RequestController = controllers.NewRequestController(deps.Services.RequestService, lgr)
	deps.WorkflowController = controllers.NewWorkflowController(deps.Services.WorkflowService, deps.AuthMiddleware, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	routes.SetupRouter(router,
		deps.AuthController,
		deps.FacultyController,
		deps.RequestController,
		deps.WorkflowController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	return router
}
