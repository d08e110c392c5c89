// Package bootstrap wires configuration, the database, repositories,
// services, controllers and routes into a runnable application.
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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/quicktech/studentportal/docs" // generated swagger docs
	appControllers "github.com/quicktech/studentportal/internal/app/controllers"
	appMigrations "github.com/quicktech/studentportal/internal/app/migrations"
	appRepos "github.com/quicktech/studentportal/internal/app/repositories"
	appRoutes "github.com/quicktech/studentportal/internal/app/routes"
	appServices "github.com/quicktech/studentportal/internal/app/services"
	"github.com/quicktech/studentportal/internal/config"
	"github.com/quicktech/studentportal/internal/db"
	appMiddleware "github.com/quicktech/studentportal/internal/middleware"
	pkgAuth "github.com/quicktech/studentportal/internal/pkg/auth"
	"github.com/quicktech/studentportal/internal/pkg/cache"
	"github.com/quicktech/studentportal/internal/pkg/email"
	"github.com/quicktech/studentportal/internal/pkg/filestorage"
	"github.com/quicktech/studentportal/internal/pkg/helpers"
	"github.com/quicktech/studentportal/internal/pkg/idcard"
	"github.com/quicktech/studentportal/internal/pkg/logger"
	"github.com/quicktech/studentportal/internal/pkg/proxy"
	"github.com/quicktech/studentportal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos *appRepos.Repositories

	Cache        *cache.Store
	AvatarStore  *filestorage.AvatarStorage
	JWTService   *pkgAuth.JWTService
	EmailService email.EmailService
	Metrics      *appMiddleware.MetricsCollector
	Registry     *prometheus.Registry

	AuthService         *appServices.AuthService
	StudentService      *appServices.StudentService
	ResultService       *appServices.ResultService
	SemesterService     *appServices.SemesterService
	EnrollmentService   *appServices.EnrollmentService
	LectureService      *appServices.LectureService
	AnnouncementService *appServices.AnnouncementService
	CardService         *appServices.CardService
	DashboardService    *appServices.DashboardService

	AuthController         *appControllers.AuthController
	StudentController      *appControllers.StudentController
	ResultController       *appControllers.ResultController
	SemesterController     *appControllers.SemesterController
	EnrollmentController   *appControllers.EnrollmentController
	LectureController      *appControllers.LectureController
	AnnouncementController *appControllers.AnnouncementController
	CardController         *appControllers.CardController
	DashboardController    *appControllers.DashboardController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Forwarders     map[string]*proxy.Forwarder
	Logger         zerolog.Logger
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
// seeds the default catalogue data.
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
		// Missing seed data degrades the catalogue pages, not the whole app.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Cache = cache.New()

	avatarBaseURL := strings.TrimRight(cfg.Server.BaseURL, "/") + "/uploads/avatars"
	var err error
	deps.AvatarStore, err = filestorage.NewAvatarStorage(cfg.Storage.AvatarPath, avatarBaseURL, cfg.Storage.DefaultAvatarURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize avatar storage")
		return nil, fmt.Errorf("failed to initialize avatar storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.Server.BaseURL,
	}, lgr)

	deps.Registry = prometheus.NewRegistry()
	deps.Metrics = appMiddleware.NewMetricsCollector(deps.Registry)

	// Services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.AccountRepository,
		deps.Repos.StudentRepository,
		deps.Repos.TokenRepository,
		deps.Repos.PasswordResetTokenRepository,
		deps.JWTService,
		deps.EmailService,
		lgr,
	)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.AvatarStore, deps.Cache, lgr)
	deps.ResultService = appServices.NewResultService(deps.Repos.ResultRepository, deps.Repos.StudentRepository, deps.Cache, lgr)
	deps.SemesterService = appServices.NewSemesterService(deps.Repos.SemesterRepository, deps.Cache, lgr)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.EnrollmentRepository,
		deps.Repos.SemesterRepository,
		deps.Repos.StudentRepository,
		deps.Cache,
		lgr,
	)
	deps.LectureService = appServices.NewLectureService(deps.Repos.LectureRepository, deps.Cache, lgr)
	deps.AnnouncementService = appServices.NewAnnouncementService(deps.Repos.AnnouncementRepository, lgr)
	deps.CardService = appServices.NewCardService(deps.Repos.StudentRepository, deps.AvatarStore, &idcard.Renderer{}, lgr)
	deps.DashboardService = appServices.NewDashboardService(deps.StudentService, deps.ResultService, deps.AvatarStore, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, lgr)
	deps.ResultController = appControllers.NewResultController(deps.ResultService, lgr)
	deps.SemesterController = appControllers.NewSemesterController(deps.SemesterService, lgr)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService, lgr)
	deps.LectureController = appControllers.NewLectureController(deps.LectureService, lgr)
	deps.AnnouncementController = appControllers.NewAnnouncementController(deps.AnnouncementService, lgr)
	deps.CardController = appControllers.NewCardController(deps.CardService, lgr)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService, lgr)

	// Forwarders, one per configured proxy route
	deps.Forwarders = make(map[string]*proxy.Forwarder, len(cfg.Proxy.Routes))
	for _, route := range cfg.Proxy.Routes {
		fwd, err := proxy.New(route)
		if err != nil {
			lgr.Error().Err(err).Str("prefix", route.Prefix).Msg("Failed to build proxy forwarder")
			return nil, fmt.Errorf("failed to build proxy route %q: %w", route.Prefix, err)
		}
		deps.Forwarders[route.Prefix] = fwd
		lgr.Info().Str("prefix", route.Prefix).Str("target", route.Target).Msg("Proxy route configured")
	}

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
	router.Use(deps.Metrics.Middleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(appMiddleware.Handler(deps.Registry)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.ResultController,
		deps.SemesterController,
		deps.EnrollmentController,
		deps.LectureController,
		deps.AnnouncementController,
		deps.CardController,
		deps.DashboardController,
		deps.AuthMiddleware,
	)

	// Forwarder mounts. Every method under the prefix relays to the target.
	for prefix, fwd := range deps.Forwarders {
		forwarder := fwd
		router.Any(prefix+"/*proxyPath", func(c *gin.Context) {
			forwarder.Forward(c.Writer, c.Request)
		})
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
