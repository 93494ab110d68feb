package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/d60-Lab/channel-engage/config"
	"github.com/d60-Lab/channel-engage/internal/api"
	"github.com/d60-Lab/channel-engage/internal/api/handler"
	"github.com/d60-Lab/channel-engage/internal/lock"
	"github.com/d60-Lab/channel-engage/internal/render"
	"github.com/d60-Lab/channel-engage/internal/repository"
	"github.com/d60-Lab/channel-engage/internal/service"
	"github.com/d60-Lab/channel-engage/internal/telegram"
	"github.com/d60-Lab/channel-engage/pkg/database"
	"github.com/d60-Lab/channel-engage/pkg/logger"
	"github.com/d60-Lab/channel-engage/pkg/tracing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot and the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func serve(parent context.Context, cfg *config.Config) error {
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			Release:     Version,
		}); err != nil {
			return fmt.Errorf("init sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	db, err := database.InitDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()
	if err := database.Migrate(db); err != nil {
		return err
	}
	store := repository.NewStore(db)

	var locker lock.Locker = lock.NewKeyedMutex()
	var pending telegram.PendingStore = telegram.NewMemoryPending(cfg.Telegram.CommentTimeout)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		locker = lock.NewRedisLocker(rdb, cfg.Engagement.LockTTL)
		pending = telegram.NewRedisPending(rdb, cfg.Telegram.CommentTimeout)
		logger.Info("using redis for item locks and comment sessions", zap.String("addr", cfg.Redis.Addr))
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("connect telegram: %w", err)
	}
	botAPI.Debug = cfg.Telegram.Debug

	renderer := render.New(render.Options{
		BotUsername:     cfg.Telegram.BotUsername,
		ChannelUsername: cfg.Telegram.ChannelUsername,
		TrendingMarker:  cfg.Engagement.TrendingMarker,
		CommentWindow:   cfg.Engagement.CommentWindow,
	})
	gateway := telegram.NewGateway(botAPI, cfg.Telegram.ChannelID)
	engine := service.NewEngine(service.Deps{
		Store:     store,
		Locker:    locker,
		Renderer:  renderer,
		Gateway:   gateway,
		Messenger: gateway,
		Pinner:    gateway,
	}, service.Options{
		PromoteThreshold: cfg.Engagement.PromoteThreshold,
		PreviewLength:    cfg.Engagement.PreviewLength,
	})
	library := service.NewLibrary(store.Collections)

	bot := telegram.NewBot(botAPI, engine, library, renderer, pending, telegram.BotOptions{
		ChannelID:      cfg.Telegram.ChannelID,
		Workers:        cfg.Telegram.Workers,
		QueueSize:      cfg.Telegram.QueueSize,
		PollTimeout:    cfg.Telegram.PollTimeout,
		CommentTimeout: cfg.Telegram.CommentTimeout,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.SetupRouter(cfg, handler.NewHandler(engine, library), store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	botDone := make(chan struct{})
	go func() {
		defer close(botDone)
		logger.Info("telegram bot started", zap.String("bot", botAPI.Self.UserName))
		if err := bot.Run(ctx); err != nil {
			errCh <- fmt.Errorf("telegram bot: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case runErr = <-errCh:
		logger.Error("component failed", zap.Error(runErr))
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	select {
	case <-botDone:
	case <-shutdownCtx.Done():
		logger.Warn("telegram bot did not stop in time")
	}
	return runErr
}
