package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/juriqh/masar-notes-buddy/config"
	"github.com/juriqh/masar-notes-buddy/internal/api/handler"
	"github.com/juriqh/masar-notes-buddy/internal/api/router"
	"github.com/juriqh/masar-notes-buddy/internal/repository"
	"github.com/juriqh/masar-notes-buddy/internal/service"
	"github.com/juriqh/masar-notes-buddy/internal/vision"
	"github.com/juriqh/masar-notes-buddy/pkg/database"
	"github.com/juriqh/masar-notes-buddy/pkg/logger"
	"github.com/juriqh/masar-notes-buddy/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	loc, err := time.LoadLocation(cfg.Assist.Timezone)
	if err != nil {
		log.Fatal("load timezone", zap.Error(err))
	}

	db, err := database.NewDB(&cfg.Database, log)
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("unwrap sql.DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, log); err != nil {
		log.Fatal("run migrations", zap.Error(err))
	}

	// Redis is optional: without it the ingest route loses its rate limit.
	rdb, err := redis.NewClient(&cfg.Redis, log)
	if err != nil {
		log.Warn("redis unavailable, continuing without rate limit", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	var model *vision.Client
	if cfg.Gemini.APIKey != "" {
		model = vision.NewClient(&cfg.Gemini, log)
	} else {
		log.Warn("gemini api key not set, schedule ingestion disabled")
	}

	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, model, loc, log)
	h := handler.NewHandler(svc)
	engine := router.Setup(cfg, h, rdb, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("http server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown incomplete", zap.Error(err))
	}
	log.Info("server stopped")
}
