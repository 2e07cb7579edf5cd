package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"pricehistory/internal/app/di"
	"pricehistory/internal/app/router"
	pricehistoryhandler "pricehistory/internal/feature/pricehistory/transport/handler"
	pricehistoryusecase "pricehistory/internal/feature/pricehistory/usecase"
	symbollisthandler "pricehistory/internal/feature/symbollist/transport/handler"
	symbollistusecase "pricehistory/internal/feature/symbollist/usecase"
	"pricehistory/internal/platform/config"
	infradb "pricehistory/internal/platform/db"
	"pricehistory/internal/platform/http/handler"
	infraredis "pricehistory/internal/platform/redis"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadAndValidate(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger, err := newLogger(os.Stdout, cfg.Server.LogLevel)
	if err != nil {
		slog.Error("invalid log level", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Market
	market, err := di.NewMarket(cfg.Market)
	if err != nil {
		return err
	}
	priceH := pricehistoryhandler.NewPriceHistoryHandler(pricehistoryusecase.NewPriceHistoryUsecase(market))

	deps := router.Deps{PriceHistory: priceH, Logger: logger, Ready: map[string]handler.Check{}}

	// Catalogue (optional)
	if cfg.Database.Enabled() {
		db, err := infradb.OpenDB(cfg.Database)
		if err != nil {
			return err
		}
		defer func() {
			if err := infradb.Close(db); err != nil {
				slog.Error("Failed to close database", "error", err)
			}
		}()
		deps.Ready["postgres"] = pingDB(db)

		// Redis
		var rdb *redisv9.Client
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		} else if tmp != nil {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("Failed to close Redis client", "error", err)
				}
			}()
			deps.Ready["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}

		symbolUC := symbollistusecase.NewSymbolUsecase(di.NewSymbolRepository(db, rdb, cfg.Redis))
		if n, err := symbolUC.SeedSymbols(ctx, di.Seeds(cfg.Symbols)); err != nil {
			return err
		} else if n > 0 {
			slog.Info("seeded symbol catalogue", "created", n)
		}
		deps.Symbols = symbollisthandler.NewSymbolHandler(symbolUC)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newLogger builds the JSON logger at the configured level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func pingDB(db *gorm.DB) handler.Check {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
