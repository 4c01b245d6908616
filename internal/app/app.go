package app

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnquest_backend/internal/config"
	"learnquest_backend/internal/controller"
	"learnquest_backend/internal/repository"
	"learnquest_backend/internal/service"
	"learnquest_backend/pkg/database"
	"learnquest_backend/pkg/logger"
	"learnquest_backend/pkg/monitoring"
	"learnquest_backend/pkg/pdf"
	"learnquest_backend/pkg/security"
	"learnquest_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user        *repository.UserRepository
	course      *repository.CourseRepository
	module      *repository.ModuleRepository
	question    *repository.QuestionRepository
	attempt     *repository.QuizAttemptRepository
	contest     *repository.ContestRepository
	leaderboard *repository.LeaderboardRepository
}

type services struct {
	auth         *service.AuthService
	content      *service.ContentService
	quiz         *service.QuizService
	contest      *service.ContestService
	gamification *service.GamificationService
	admin        *service.AdminService
	storage      *service.StorageService
}

type controllers struct {
	auth         *controller.AuthController
	content      *controller.ContentController
	quiz         *controller.QuizController
	contest      *controller.ContestController
	gamification *controller.GamificationController
	admin        *controller.AdminController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		course:      repository.NewCourseRepository(db),
		module:      repository.NewModuleRepository(db),
		question:    repository.NewQuestionRepository(db),
		attempt:     repository.NewQuizAttemptRepository(db),
		contest:     repository.NewContestRepository(db),
		leaderboard: repository.NewLeaderboardRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	// one lock set across the grading engines so learner writes serialize
	locks := service.NewKeyMutex()

	s.auth = service.NewAuthService(repos.user, cfg)
	s.content = service.NewContentService(repos.course, repos.module)
	s.quiz = service.NewQuizService(repos.module, repos.question, repos.attempt, repos.user, locks)
	s.contest = service.NewContestService(
		repos.contest,
		repos.question,
		repos.leaderboard,
		repos.user,
		service.NewLeaderboardCache(rdb),
		locks,
	)
	s.gamification = service.NewGamificationService(repos.user, repos.attempt)
	s.admin = &service.AdminService{
		Users:     repos.user,
		Courses:   repos.course,
		Modules:   repos.module,
		Questions: repos.question,
		Attempts:  repos.attempt,
		Contests:  repos.contest,
		Extractor: pdf.NewExtractor(),
		Generator: service.NewQuestionGenerator(rand.New(rand.NewSource(time.Now().UnixNano()))),
		Storage:   s.storage,
		Cfg:       cfg,
	}

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		content:      controller.NewContentController(s.content),
		quiz:         controller.NewQuizController(s.quiz),
		contest:      controller.NewContestController(s.contest),
		gamification: controller.NewGamificationController(s.gamification),
		admin:        controller.NewAdminController(s.admin, s.contest),
		health:       controller.NewHealthController(db),
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

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// the leaderboard cache degrades to direct reads without Redis
		logger.Log.Warn("Redis unavailable, leaderboard caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("learnquest-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

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
