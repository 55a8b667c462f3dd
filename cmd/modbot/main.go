package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/larriantoniy/tg_mod_bot/internal/adapters/redisstore"
	"github.com/larriantoniy/tg_mod_bot/internal/adapters/tg"
	"github.com/larriantoniy/tg_mod_bot/internal/config"
	"github.com/larriantoniy/tg_mod_bot/internal/ports"
	"github.com/larriantoniy/tg_mod_bot/internal/useCases"
)

const (
	envDev  = "dev"
	envProd = "prod"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := setupLogger(cfg.Env)

	tgClient, err := tg.NewClient(cfg.ApiID, cfg.ApiHash, cfg.SessionDir, logger.With("component", "tg"))
	if err != nil {
		logger.Error("tg client init failed", "error", err)
		os.Exit(1)
	}
	defer tgClient.Close()

	var guard ports.GreetGuard
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		guard = redisstore.NewGreetGuard(rdb, cfg.GreetTTL)
	}

	moderator := useCases.NewModerator(logger, tgClient)
	welcomer := useCases.NewWelcomer(logger, tgClient, guard)
	dispatcher := useCases.NewDispatcher(logger, useCases.NewRouter(moderator), welcomer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	events, err := tgClient.Listen(ctx)
	if err != nil {
		logger.Error("listen failed", "error", err)
		os.Exit(1)
	}

	dispatcher.Run(ctx, events)
	logger.Info("exit")
}

func setupLogger(env string) *slog.Logger {
	var level slog.Level
	switch env {
	case envDev:
		level = slog.LevelDebug
	case envProd:
		level = slog.LevelInfo
	default:
		level = slog.LevelInfo
	}

	return slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
	)
}
