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

	appControllers "github.com/ozank/lectern/internal/app/controllers"
	appMigrations "github.com/ozank/lectern/internal/app/migrations"
	appRepos "github.com/ozank/lectern/internal/app/repositories"
	appRoutes "github.com/ozank/lectern/internal/app/routes"
	appServices "github.com/ozank/lectern/internal/app/services"
	"github.com/ozank/lectern/internal/config"
	"github.com/ozank/lectern/internal/db"
	appMiddleware "github.com/ozank/lectern/internal/middleware"
	"github.com/ozank/lectern/internal/pkg/helpers"
	"github.com/ozank/lectern/internal/pkg/logger"
	"github.com/ozank/lectern/internal/pkg/mediastore"
	"github.com/ozank/lectern/internal/pkg/session"
	"github.com/ozank/lectern/internal/pkg/upload"
	"github.com/ozank/lectern/internal/seed"
)

const mebibyte = 1 << 20

// MIME allow-lists per upload surface. Photos and flyers accept images
// only; course materials accept documents, slides and images.
var (
	imageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

	materialTypes = []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-powerpoint",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
		"image/jpeg",
		"image/png",
	}

	pdfTypes = []string{"application/pdf"}
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services              *appServices.Services
	AuthController        *appControllers.AuthController
	ProfileController     *appControllers.ProfileController
	CourseController      *appControllers.CourseController
	MaterialController    *appControllers.MaterialController
	PublicationController *appControllers.PublicationController
	TalkController        *appControllers.TalkController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	Sessions              *session.Manager
	Media                 mediastore.Store
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
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

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
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

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, the media store, services and
// controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	media, err := mediastore.NewOSSStore(mediastore.OSSConfig{
		Endpoint:  cfg.Media.Endpoint,
		AccessKey: cfg.Media.AccessKey,
		SecretKey: cfg.Media.SecretKey,
		Bucket:    cfg.Media.Bucket,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize media store")
		return nil, fmt.Errorf("failed to initialize media store: %w", err)
	}
	deps.Media = media

	sessionStore := session.NewMemoryStore(helpers.ParseDuration(cfg.Session.SweepInterval, 10*time.Minute))
	deps.Sessions = session.NewManager(session.Config{
		MaxAge: helpers.ParseDuration(cfg.Session.MaxAge, 24*time.Hour),
	}, sessionStore)

	uploads := upload.New(media, "")

	limits := appServices.UploadLimits{
		Photo:    upload.Limits{MaxSize: int64(cfg.Upload.PhotoMaxMB) * mebibyte, AllowedTypes: imageTypes},
		Material: upload.Limits{MaxSize: int64(cfg.Upload.FileMaxMB) * mebibyte, AllowedTypes: materialTypes},
		Pdf:      upload.Limits{MaxSize: int64(cfg.Upload.FileMaxMB) * mebibyte, AllowedTypes: pdfTypes},
		Flyer:    upload.Limits{MaxSize: int64(cfg.Upload.PhotoMaxMB) * mebibyte, AllowedTypes: imageTypes},
	}

	deps.Services = appServices.NewServices(deps.Repos, deps.Sessions, uploads, media, limits)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Services.Auth)

	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth, cfg.Session.SecureCookies)
	deps.ProfileController = appControllers.NewProfileController(deps.Services.Profile)
	deps.CourseController = appControllers.NewCourseController(deps.Services.Course)
	deps.MaterialController = appControllers.NewMaterialController(deps.Services.Material)
	deps.PublicationController = appControllers.NewPublicationController(deps.Services.Publication)
	deps.TalkController = appControllers.NewTalkController(deps.Services.Talk)

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

	router := gin.New()
	router.Use(appMiddleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(appMiddleware.CORS(appMiddleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOriginList(),
	}))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProfileController,
		deps.CourseController,
		deps.MaterialController,
		deps.PublicationController,
		deps.TalkController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
