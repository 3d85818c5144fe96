package app

import (
	"cohort_backend/internal/config"
	"cohort_backend/internal/controller"
	"cohort_backend/internal/repository"
	"cohort_backend/internal/service"
	"cohort_backend/pkg/configwatcher"
	"cohort_backend/pkg/database"
	"cohort_backend/pkg/logger"
	"cohort_backend/pkg/monitoring"
	"cohort_backend/pkg/security"
	"cohort_backend/pkg/tracing"
	"context"
	"log"
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
	ConfigPath      string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	origins         *security.OriginWhitelist
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	session  *repository.SessionRepository
	cohort   *repository.CohortRepository
	shiftLog *repository.ShiftLogRepository
	meeting  *repository.MeetingRepository
}

type services struct {
	storage    *service.StorageService
	reschedule *service.RescheduleService
	cohort     *service.CohortService
	material   *service.MaterialService
	meeting    *service.MeetingService
}

type controllers struct {
	schedule *controller.ScheduleController
	cohort   *controller.CohortController
	meeting  *controller.MeetingController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		session:  repository.NewSessionRepository(db),
		cohort:   repository.NewCohortRepository(db),
		shiftLog: repository.NewShiftLogRepository(db),
		meeting:  repository.NewMeetingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	// 未启用 Redis 时不加锁
	var locker service.ShiftLocker = repository.NoopShiftLocker{}
	if rdb != nil {
		locker = repository.NewRedisShiftLocker(rdb, cfg.Schedule.LockTTL)
	}

	s.storage = service.NewStorageService(&cfg.Storage)
	s.reschedule = service.NewRescheduleService(repos.session, locker, repos.shiftLog, cfg.Schedule.Location())
	s.cohort = service.NewCohortService(repos.session, repos.cohort, s.reschedule, cfg.Schedule.CreateTableProcedure)
	s.material = service.NewMaterialService(repos.session, s.storage, filepath.Join(cfg.Storage.LocalPath, "temp"), cfg.Storage.ProbeRecordings)
	s.meeting = service.NewMeetingService(cfg.Meeting, repos.meeting, repos.session)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		schedule: controller.NewScheduleController(s.reschedule),
		cohort:   controller.NewCohortController(s.cohort, s.material),
		meeting:  controller.NewMeetingController(s.meeting),
		health:   controller.NewHealthController(db, rdb, a.Config.Storage.ProbeRecordings),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	a.origins = security.NewOriginWhitelist(cfg.CORS.AllowedOrigins)
	router.Use(security.CORS(a.origins))
	router.Use(security.Secure())
	if cfg.RateLimit.MaxRequests > 0 {
		router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))
	}

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// registerConfigCallbacks 热更新只覆盖日志级别、CORS 白名单和会议凭据，其余配置需重启
func (a *App) registerConfigCallbacks() {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		logger.SetMode(cfg.Server.Mode)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.origins.Set(cfg.CORS.AllowedOrigins)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.services.meeting.UpdateConfig(cfg.Meeting)
	})
}

func (a *App) reloadConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func NewApp(cfg *config.Config, configPath string) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, cfg.ForceMigrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	app := &App{
		Config:     cfg,
		ConfigPath: configPath,
		DB:         db,
	}

	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.registerConfigCallbacks()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stopWatching := context.WithCancel(context.Background())
	defer stopWatching()
	if a.ConfigPath != "" {
		if err := configwatcher.WatchConfig(ctx, a.ConfigPath, a.reloadConfig); err != nil {
			logger.Log.Warn("Config watcher disabled", zap.Error(err))
		}
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
