package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/juriqh/masar-notes-buddy/config"
	"github.com/juriqh/masar-notes-buddy/internal/bot"
	"github.com/juriqh/masar-notes-buddy/internal/notifier"
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
	if err := cfg.ValidateDiscord(); err != nil {
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

	// Redis is optional: without it the daily-send markers fall back to the
	// in-process guard, which does not survive restarts.
	rdb, err := redis.NewClient(&cfg.Redis, log)
	if err != nil {
		log.Warn("redis unavailable, send markers are process-local", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	// Without a Gemini key the assistant loses only its free-text fallback.
	var model *vision.Client
	if cfg.Gemini.APIKey != "" {
		model = vision.NewClient(&cfg.Gemini, log)
	} else {
		log.Warn("gemini api key not set, free-text answers disabled")
	}

	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, model, loc, log)

	discord, err := bot.NewDiscord(&cfg.Discord, svc.Assistant, log)
	if err != nil {
		log.Fatal("create discord bot", zap.Error(err))
	}
	if err := discord.Open(); err != nil {
		log.Fatal("connect discord gateway", zap.Error(err))
	}
	defer discord.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := notifier.New(
		svc.Schedule, discord, rdb, loc,
		cfg.Assist.MorningAt, cfg.Assist.EveningAt, cfg.Assist.MorningLookahead,
		log,
	)
	go sched.Run(ctx)

	<-ctx.Done()
	log.Info("bot stopped")
}
