package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/controller"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/security"
	"lms_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	department  *repository.DepartmentRepository
	course      *repository.CourseRepository
	lesson      *repository.LessonRepository
	progress    *repository.ProgressRepository
	workshop    *repository.WorkshopRepository
	certificate *repository.CertificateRepository
	notify      *repository.NotificationRepository
	comment     *repository.CommentRepository
	application *repository.InstructorApplicationRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	department  *service.DepartmentService
	course      *service.CourseService
	lesson      *service.LessonService
	progress    *service.ProgressService
	workshop    *service.WorkshopService
	certificate *service.CertificateService
	notify      *service.NotificationService
	comment     *service.CommentService
	application *service.InstructorApplicationService
	storage     *service.StorageService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	department  *controller.DepartmentController
	course      *controller.CourseController
	lesson      *controller.LessonController
	progress    *controller.ProgressController
	workshop    *controller.WorkshopController
	certificate *controller.CertificateController
	notify      *controller.NotificationController
	comment     *controller.CommentController
	application *controller.InstructorApplicationController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新回调入口，由 configwatcher 触发
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("配置已热更新")
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		department:  repository.NewDepartmentRepository(db),
		course:      repository.NewCourseRepository(db),
		lesson:      repository.NewLessonRepository(db),
		progress:    repository.NewProgressRepository(db),
		workshop:    repository.NewWorkshopRepository(db),
		certificate: repository.NewCertificateRepository(db),
		notify:      repository.NewNotificationRepository(db, rdb),
		comment:     repository.NewCommentRepository(db),
		application: repository.NewInstructorApplicationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.notify = service.NewNotificationService(repos.notify)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.department = service.NewDepartmentService(repos.department, repos.user, repos.course, repos.workshop)
	s.progress = service.NewProgressService(repos.progress, s.notify)
	s.course = service.NewCourseService(repos.course, repos.lesson, repos.user, s.progress, s.notify)
	s.lesson = service.NewLessonService(repos.lesson, repos.course, s.storage, s.notify)
	s.workshop = service.NewWorkshopService(repos.workshop, repos.user, s.notify)
	s.certificate = service.NewCertificateService(repos.certificate, repos.workshop, repos.user, s.notify)
	s.comment = service.NewCommentService(repos.comment, repos.workshop)
	s.application = service.NewInstructorApplicationService(repos.application, repos.user, s.notify)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		department:  controller.NewDepartmentController(s.department),
		course:      controller.NewCourseController(s.course),
		lesson:      controller.NewLessonController(s.lesson, s.course),
		progress:    controller.NewProgressController(s.progress),
		workshop:    controller.NewWorkshopController(s.workshop),
		certificate: controller.NewCertificateController(s.certificate),
		notify:      controller.NewNotificationController(s.notify),
		comment:     controller.NewCommentController(s.comment, s.auth),
		application: controller.NewInstructorApplicationController(s.application),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("lms-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
