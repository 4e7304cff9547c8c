package app

import (
	"context"
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/controller"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/configwatcher"
	"exam_prep_backend/pkg/database"
	"exam_prep_backend/pkg/logger"
	"exam_prep_backend/pkg/monitoring"
	"exam_prep_backend/pkg/security"
	"exam_prep_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	origins         *security.OriginList
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user          *repository.UserRepository
	category      *repository.CategoryRepository
	categoryCache *repository.CategoryCache
	question      *repository.QuestionRepository
	course        *repository.CourseRepository
	exam          *repository.ExamRepository
	examAttempt   *repository.ExamAttemptRepository
	enrollment    *repository.EnrollmentRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	category    *service.CategoryService
	question    *service.QuestionService
	selector    *service.SelectorService
	course      *service.CourseService
	exam        *service.ExamService
	examAttempt *service.ExamAttemptService
	enrollment  *service.EnrollmentService
}

type controllers struct {
	auth        *controller.AuthController
	category    *controller.CategoryController
	question    *controller.QuestionController
	course      *controller.CourseController
	exam        *controller.ExamController
	examAttempt *controller.ExamAttemptController
	enrollment  *controller.EnrollmentController
	upload      *controller.UploadController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		category:      repository.NewCategoryRepository(db),
		categoryCache: repository.NewCategoryCache(rdb, time.Duration(cfg.Redis.CategoryTTL)*time.Second),
		question:      repository.NewQuestionRepository(db),
		course:        repository.NewCourseRepository(db),
		exam:          repository.NewExamRepository(db),
		examAttempt:   repository.NewExamAttemptRepository(db),
		enrollment:    repository.NewEnrollmentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.category = service.NewCategoryService(repos.category, repos.categoryCache)
	s.question = service.NewQuestionService(repos.question, repos.category)
	s.selector = service.NewSelectorService(repos.question, repos.category, cfg.Assessment)
	s.course = service.NewCourseService(repos.course, repos.category)
	s.exam = service.NewExamService(repos.exam, repos.question, repos.category, repos.course, s.selector)
	s.examAttempt = service.NewExamAttemptService(repos.examAttempt, repos.exam, repos.question)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		category:    controller.NewCategoryController(s.category),
		question:    controller.NewQuestionController(s.question, s.selector),
		course:      controller.NewCourseController(s.course),
		exam:        controller.NewExamController(s.exam),
		examAttempt: controller.NewExamAttemptController(s.examAttempt),
		enrollment:  controller.NewEnrollmentController(s.enrollment),
		upload:      controller.NewUploadController(s.storage),
		health:      controller.NewHealthController(db, s.auth),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(a.origins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// registerReloadables 配置热更新时同步日志级别、CORS 白名单与组卷默认值
func (a *App) registerReloadables(s *services) {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		logger.SetMode(cfg.Server.Mode)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.origins.Set(cfg.CORS.AllowedOrigins)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		s.selector.SetDefaults(cfg.Assessment)
	})
}

// New 由已建立的数据库连接组装应用，测试中直接使用
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		origins: security.NewOriginList(cfg.CORS.AllowedOrigins),
	}

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db)
	app.registerReloadables(services)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.ForceMigrate || !cfg.Server.IsRelease()
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, category cache disabled", zap.Error(err))
		rdb = nil
	}

	app := New(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		if err := configwatcher.WatchConfig(watchCtx, filepath.Join("configs", "config.yaml"), a.applyConfig); err != nil {
			logger.Log.Warn("Config watcher disabled", zap.Error(err))
		}
	}()

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
	_ = logger.Log.Sync()
}
