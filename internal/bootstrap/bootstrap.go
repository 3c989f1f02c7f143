package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/lecturehub/internal/app/auth"
	appControllers "github.com/yigit/lecturehub/internal/app/controllers"
	appMigrations "github.com/yigit/lecturehub/internal/app/migrations"
	appRepos "github.com/yigit/lecturehub/internal/app/repositories"
	"github.com/yigit/lecturehub/internal/app/repositories/memory"
	"github.com/yigit/lecturehub/internal/app/repositories/postgres"
	appRoutes "github.com/yigit/lecturehub/internal/app/routes"
	appServices "github.com/yigit/lecturehub/internal/app/services"
	"github.com/yigit/lecturehub/internal/config"
	"github.com/yigit/lecturehub/internal/db"
	appMiddleware "github.com/yigit/lecturehub/internal/middleware"
	pkgAuth "github.com/yigit/lecturehub/internal/pkg/auth"
	"github.com/yigit/lecturehub/internal/pkg/helpers"
	"github.com/yigit/lecturehub/internal/pkg/logger"
	"github.com/yigit/lecturehub/internal/pkg/metrics"
	"github.com/yigit/lecturehub/internal/pkg/validation"
	"github.com/yigit/lecturehub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	AuthzService        *appAuth.AuthorizationService
	AuthService         *appServices.AuthService
	AvailabilityService *appServices.AvailabilityService
	CourseService       *appServices.CourseService
	LectureService      *appServices.LectureService
	AuthController      *appControllers.AuthController
	CourseController    *appControllers.CourseController
	LectureController   *appControllers.LectureController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured entity store, applying migrations for PostgreSQL.
// The returned function releases it.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, func(), error) {
	if cfg.UsesMemoryStore() {
		lgr.Warn().Msg("Using the in-memory store; data is lost on restart")
		return memory.NewRepositories(), func() {}, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return postgres.NewRepositories(database), database.Close, nil
}

// SeedDefaults creates the default accounts when seeding is enabled
func SeedDefaults(ctx context.Context, cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) {
	if !cfg.Seed.Enabled {
		return
	}
	err := seed.CreateDefaultData(ctx, repos.Users, seed.Options{
		AdminEmail:         cfg.Seed.AdminEmail,
		AdminPassword:      cfg.Seed.AdminPassword,
		InstructorPassword: cfg.Seed.InstructorPassword,
	}, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// BuildDependencies initializes application services, controllers and middleware.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthzService = appAuth.NewAuthorizationService(repos.Users)

	deps.AuthService = appServices.NewAuthService(repos.Users, deps.JWTService, lgr)
	deps.AvailabilityService = appServices.NewAvailabilityService(repos.Lectures, lgr)
	deps.CourseService = appServices.NewCourseService(repos, lgr)
	deps.LectureService = appServices.NewLectureService(repos, deps.AvailabilityService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.AuthzService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.LectureController = appControllers.NewLectureController(deps.LectureService)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	if err := validation.Register(); err != nil {
		lgr.Error().Err(err).Msg("Failed to register request validation rules")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS())

	if cfg.Metrics.Enabled {
		router.Use(metrics.HTTPMetricsMiddleware())
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	appRoutes.SetupRouter(router, appRoutes.Controllers{
		Auth:    deps.AuthController,
		Course:  deps.CourseController,
		Lecture: deps.LectureController,
	}, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
