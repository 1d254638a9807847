package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"termcompass/config"
	"termcompass/cron"
	"termcompass/database"
	accountRepo "termcompass/database/repository/account"
	sessionRepo "termcompass/database/repository/session"
	"termcompass/handlers"
	"termcompass/middleware"
	"termcompass/routes"
	"termcompass/services/account"
	"termcompass/services/authform"
	"termcompass/services/authoring"
	"termcompass/services/browse"
	"termcompass/services/catalog"
	"termcompass/services/review"
	"termcompass/services/validation"
	"termcompass/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// memoryStores sweeps every in-process session store in one pass.
type memoryStores []*sessionRepo.MemorySessionRepo

func (m memoryStores) Sweep(now time.Time) int {
	n := 0
	for _, s := range m {
		n += s.Sweep(now)
	}
	return n
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validation.RegisterGinValidations(); err != nil {
		logger.Fatal("main: failed to register validations", zap.Error(err))
	}

	appCtx, stop := context.WithCancel(context.Background())
	defer stop()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("main: failed to load catalog", zap.Error(err))
	}
	logger.Info("main: catalog loaded", zap.Int("sites", len(cat.Sites)), zap.Int("services", len(cat.Services)))

	if err := database.InitDB(appCtx); err != nil {
		logger.Fatal("main: failed to initialize database", zap.Error(err))
	}
	accounts, err := accountRepo.NewMongoAccountRepo(database.Database())
	if err != nil {
		logger.Fatal("main: failed to initialize account repository", zap.Error(err))
	}

	// Session stores. Auth forms hold passwords, so they never leave the process.
	forms := sessionRepo.NewMemorySessionRepo()
	swept := memoryStores{forms}
	formLocks := utils.NewKeyedMutex()
	var redisClients []*redis.Client
	var sessions sessionRepo.SessionRepository
	var sessionLocks utils.Locker
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		// Replicas share these sessions, so events on one are ordered through redis.
		client := utils.GetSessionCacheClient()
		redisClients = append(redisClients, client)
		sessions = sessionRepo.NewRedisSessionRepo(client)
		sessionLocks = utils.NewRedisLocker(client, utils.DefaultLockTTL)
	default:
		mem := sessionRepo.NewMemorySessionRepo()
		swept = append(swept, mem)
		sessions = mem
		sessionLocks = formLocks
	}

	// Review queue. The enqueuer stays an untyped nil when the queue is off so reviews are only logged.
	var queue review.Enqueuer
	if cfg.ReviewQueueEnabled {
		client := asynq.NewClient(utils.QueueRedisOpt())
		defer client.Close()
		queue = client
		redisClients = append(redisClients, utils.GetQueueClient())
		if err := cron.StartReviewWorker(appCtx, utils.QueueRedisOpt(), logger); err != nil {
			logger.Fatal("main: failed to start review worker", zap.Error(err))
		}
	}

	sweeper, err := cron.NewSessionSweeper(cfg.SessionSweepSpec, swept, logger)
	if err != nil {
		logger.Fatal("main: failed to schedule session sweeper", zap.Error(err))
	}
	sweeper.Start()

	utils.StartHealthMonitor(appCtx, redisClients, database.MongoClient)

	// services.
	accountService := account.NewDefaultAccountService(accounts, logger)
	reviewService := review.NewDefaultReviewService(queue, logger)

	browseService := &browse.DefaultBrowseService{
		Sessions:     sessions,
		Catalog:      cat,
		Locks:        sessionLocks,
		TTL:          cfg.SessionTTL,
		SlidesToShow: cfg.CarouselSlidesToShow,
		Overlap:      cfg.CarouselOverlap,
		Logger:       logger,
	}
	if err := browseService.CheckConfig(); err != nil {
		logger.Fatal("main: invalid carousel settings", zap.Error(err))
	}
	authFormService := &authform.DefaultAuthFormService{
		Forms:    forms,
		Accounts: accountService,
		Locks:    formLocks,
		TTL:      cfg.SessionTTL,
		Logger:   logger,
	}
	authoringService := &authoring.DefaultAuthoringService{
		Sessions:    sessions,
		Catalog:     cat,
		Review:      reviewService,
		Locks:       sessionLocks,
		TTL:         cfg.SessionTTL,
		StepAdvance: cfg.WorkflowStepAdvance,
		Logger:      logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		TokenChecker: accountService,
		Catalog:      handlers.NewCatalogHandler(cat),
		Carousel:     handlers.NewCarouselHandler(browseService),
		AuthForm:     handlers.NewAuthFormHandler(authFormService),
		Authoring:    handlers.NewAuthoringHandler(authoringService),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	<-sweeper.Stop().Done()
	stop()
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Warnf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}
