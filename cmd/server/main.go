package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"signalx/internal/broadcast"
	"signalx/internal/config"
	cronrunner "signalx/internal/cron"
	"signalx/internal/db"
	"signalx/internal/handler"
	"signalx/internal/logger"
	gormrepository "signalx/internal/repository/gorm"
	"signalx/internal/service"
)

func main() {
	cfgPath := os.Getenv("SX_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("SX_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.AutoMigrate(dbConn); err != nil {
		log.Fatal("auto-migrate failed", zap.Error(err))
	}
	log.Info("database ready", zap.String("path", cfg.DB.Path))

	store := gormrepository.New(dbConn.Gorm)
	hub := broadcast.NewHub(log)

	signalSvc := &service.SignalService{Repo: store, Publisher: hub, Logger: log}
	strategySvc := &service.StrategyService{Repo: store, Logger: log}
	statsSvc := &service.StatsService{Repo: store, ActiveUsers: cfg.Stats.ActiveUsers}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(handler.CORSMiddleware())
	engine.Use(handler.AuthMiddleware(cfg.Server.AdminToken))
	if cfg.Server.AdminToken == "" {
		log.Warn("admin token unset; API is open to anyone who can reach it")
	}

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	signalHandler := &handler.SignalHandler{Service: signalSvc, Logger: log}
	signalHandler.Register(engine)
	strategyHandler := &handler.StrategyHandler{Service: strategySvc, Logger: log}
	strategyHandler.Register(engine)
	statsHandler := &handler.StatsHandler{Service: statsSvc, Logger: log}
	statsHandler.Register(engine)
	streamHandler := &handler.StreamHandler{
		Hub:              hub,
		Logger:           log,
		SubscriberBuffer: cfg.Stream.SubscriberBuffer,
		WriteTimeout:     cfg.Stream.WriteTimeout,
	}
	streamHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled {
		runner := cronrunner.New(log, ctx)
		_, err := runner.Add(cfg.Cron.StatsSummary, func(ctx context.Context) {
			stats, err := statsSvc.Overview(ctx)
			if err != nil {
				log.Warn("stats summary failed", zap.Error(err))
				return
			}
			log.Info("stats summary",
				zap.Int64("total_signals", stats.TotalSignals),
				zap.Int64("open_trades", stats.OpenTrades),
				zap.Float64("win_rate", stats.WinRate),
				zap.Int64("strategies", stats.StrategiesCount),
				zap.Int("viewers", hub.Subscribers()),
			)
		})
		if err != nil {
			log.Warn("cron register stats summary failed", zap.Error(err))
		}
		runner.Start()
		defer runner.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
