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

	"parceltrack/cmd"
	httpin "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/out/postgres/migrations"
	redisout "parceltrack/internal/adapters/out/redis"
	"parceltrack/internal/pkg/logger"

	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	flag.Parse()

	configs, err := cmd.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(configs.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err = run(configs, zl); err != nil {
		zl.Fatal("service stopped", zap.Error(err))
	}
}

func run(configs cmd.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := openGorm(configs.Database.DSN())
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	if err = migrations.Up(sqlDB); err != nil {
		return err
	}
	zl.Info("migrations applied")

	redisClient := redisout.NewClient(configs.Redis.Addr)
	defer func() { _ = redisClient.Close() }()
	if err = redisout.Ping(ctx, redisClient); err != nil {
		zl.Warn("redis unavailable, tracking cache and geo index degrade", zap.Error(err))
	}

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, zl)
	defer func() {
		if cerr := app.Close(); cerr != nil {
			zl.Warn("close publisher", zap.Error(cerr))
		}
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := httpin.NewRouter(ctx, app.RouterConfig(), app.CreateServer(), zl)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTP.Port)
		zl.Info("http server listening", zap.String("addr", addr))
		if serr := e.Start(addr); serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
		}
	}()

	select {
	case <-ctx.Done():
		zl.Info("shutting down")
	case err = <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openGorm(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}
