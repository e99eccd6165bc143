package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"eduboost_backend/internal/config"
	"eduboost_backend/internal/controller"
	"eduboost_backend/internal/repository"
	"eduboost_backend/internal/repository/inmem"
	"eduboost_backend/internal/service"
	"eduboost_backend/pkg/configwatcher"
	"eduboost_backend/pkg/database"
	"eduboost_backend/pkg/logger"
	"eduboost_backend/pkg/monitoring"
	"eduboost_backend/pkg/security"
	"eduboost_backend/pkg/tracing"

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
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
	overdueGrace    atomic.Int64
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	user       *service.UserService
	module     *service.ModuleService
	progress   *service.ProgressService
	goal       *service.GoalService
	enrollment *service.EnrollmentService
	health     *service.HealthService
}

type controllers struct {
	status     *controller.StatusController
	auth       *controller.AuthController
	user       *controller.UserController
	catalog    *controller.CatalogController
	assessment *controller.AssessmentController
	progress   *controller.ProgressController
	enrollment *controller.EnrollmentController
	goal       *controller.GoalController
	healthPlan *controller.HealthPlanController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// applyConfig 配置文件变更后依次执行热更新回调
func (a *App) applyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func overdueGraceFrom(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Grading.OverdueGraceHours) * time.Hour
}

func gormRepositories(db *gorm.DB) service.Repositories {
	return service.Repositories{
		Users:       repository.NewUserRepository(db),
		Programs:    repository.NewProgramRepository(db),
		Batches:     repository.NewBatchRepository(db),
		Modules:     repository.NewModuleRepository(db),
		Assessments: repository.NewAssessmentRepository(db),
		Templates:   repository.NewAssignmentTemplateRepository(db),
		Enrollments: repository.NewEnrollmentRepository(db),
		Progress:    repository.NewProgressRepository(db),
		Marks:       repository.NewModuleMarksRepository(db),
		Goals:       repository.NewGoalRepository(db),
		HealthPlans: repository.NewHealthPlanRepository(db),
	}
}

func memoryRepositories(store *inmem.Store) service.Repositories {
	return service.Repositories{
		Users:       store.Users,
		Programs:    store.Programs,
		Batches:     store.Batches,
		Modules:     store.Modules,
		Assessments: store.Assessments,
		Templates:   store.Templates,
		Enrollments: store.Enrollments,
		Progress:    store.Progress,
		Marks:       store.Marks,
		Goals:       store.Goals,
		HealthPlans: store.HealthPlans,
	}
}

func thresholdsFrom(cfg *config.Config) service.Thresholds {
	return service.Thresholds{
		Repeat:         cfg.Grading.RepeatThreshold,
		MarksCompleted: cfg.Grading.MarksCompletedThreshold,
	}
}

func (a *App) initServices(repos service.Repositories, cfg *config.Config) *services {
	s := &services{}

	var cache service.CompletionCache
	if a.Redis != nil {
		cache = service.NewRedisCompletionCache(a.Redis, cfg.Grading.CacheTTL())
	}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.Users, cfg)
	s.user = service.NewUserService(repos.Users, s.storage)
	s.module = service.NewModuleService(repos)
	s.progress = service.NewProgressService(repos, cache, thresholdsFrom(cfg))
	s.goal = service.NewGoalService(repos.Goals, repos.Modules)
	s.enrollment = service.NewEnrollmentService(repos, s.progress, s.goal)
	s.health = service.NewHealthService(repos.HealthPlans)

	return s
}

func (a *App) healthChecks() map[string]controller.ComponentCheck {
	checks := map[string]controller.ComponentCheck{}
	if a.DB != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := a.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if a.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return a.Redis.Ping(ctx).Err()
		}
	}
	return checks
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		status:     controller.NewStatusController(a.healthChecks()),
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		catalog:    controller.NewCatalogController(s.module),
		assessment: controller.NewAssessmentController(s.module, s.storage),
		progress:   controller.NewProgressController(s.progress),
		enrollment: controller.NewEnrollmentController(s.enrollment),
		goal:       controller.NewGoalController(s.goal),
		healthPlan: controller.NewHealthPlanController(s.health),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// build 根据已就绪的基础设施组装服务与路由
func (a *App) build(repos service.Repositories) {
	a.services = a.initServices(repos, a.Config)
	controllers := a.initControllers(a.services)

	a.RegisterConfigCallback(func(cfg *config.Config) {
		logger.SetLevel(cfg.Log.Level)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.services.progress.SetThresholds(thresholdsFrom(cfg))
	})
	a.overdueGrace.Store(int64(overdueGraceFrom(a.Config)))
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.overdueGrace.Store(int64(overdueGraceFrom(cfg)))
	})

	router := gin.New()
	router.Use(gin.Recovery())
	if a.Config.Server.Mode == gin.DebugMode {
		router.Use(gin.Logger())
	}
	a.Router = router

	a.setupMiddlewares(router, a.Config)
	a.registerRoutes(router, controllers, repos, a.Config)

	if a.Config.Storage.Type == "local" {
		router.Static("/uploads", a.Config.Storage.LocalPath)
	}
}

// deactivateOverdue 到期超过宽限期的作业自动停用
func (a *App) deactivateOverdue(ctx context.Context) {
	grace := time.Duration(a.overdueGrace.Load())
	if _, err := a.services.module.DeactivateOverdueAssignments(ctx, grace); err != nil {
		logger.Log.Error("deactivate overdue assignments error", zap.Error(err))
	}
}

func (a *App) startBackgroundTasks(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.deactivateOverdue(ctx)
			}
		}
	}()

	if a.Config.ConfigFile == "" {
		return
	}
	go func() {
		err := configwatcher.WatchConfig(ctx, a.Config.ConfigFile, a.applyConfig)
		if err != nil {
			logger.Log.Error("config watcher stopped", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	app := &App{Config: cfg}

	var repos service.Repositories
	if cfg.Database.Driver == config.DriverMemory {
		logger.Log.Warn("Using in-memory storage, data will not survive a restart")
		repos = memoryRepositories(inmem.NewStore())
	} else {
		db, err := database.InitDB(&cfg.Database, cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode)
		if err != nil {
			logger.Log.Fatal("Failed to initialize database", zap.Error(err))
			log.Fatalf("Failed to initialize database: %v", err)
		}
		app.DB = db
		repos = gormRepositories(db)
	}

	if cfg.MigrateOnly {
		return app
	}

	// Redis 只用作完成度缓存，连不上时降级为直接计算
	if cfg.Redis.Host != "" {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, completion cache disabled", zap.Error(err))
		} else {
			app.Redis = rdb
		}
	}

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	gin.SetMode(cfg.Server.Mode)
	app.build(repos)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	a.startBackgroundTasks(ctx)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}

	logger.Log.Info("Server exiting")
}
