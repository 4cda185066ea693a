// Package server boots and runs the Epicurean backend: config, stores,
// workers, the realtime hub, the gRPC ops endpoint, and the HTTP API with
// graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epicurean/epicurean/app/models"
	"github.com/epicurean/epicurean/app/notifications"
	"github.com/epicurean/epicurean/app/repositories"
	"github.com/epicurean/epicurean/app/routes"
	"github.com/epicurean/epicurean/app/services"
	"github.com/epicurean/epicurean/config"
	"github.com/epicurean/epicurean/pkg/cache"
	"github.com/epicurean/epicurean/pkg/database"
	"github.com/epicurean/epicurean/pkg/grpcserver"
	"github.com/epicurean/epicurean/pkg/kvstore"
	"github.com/epicurean/epicurean/pkg/logger"
	"github.com/epicurean/epicurean/pkg/metrics"
	"github.com/epicurean/epicurean/pkg/middleware"
	"github.com/epicurean/epicurean/pkg/mongodb"
	"github.com/epicurean/epicurean/pkg/queue"
	"github.com/epicurean/epicurean/pkg/reqid"
	"github.com/epicurean/epicurean/pkg/router"
)

const shutdownTimeout = 10 * time.Second

// Start boots every subsystem and serves until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := mongodb.Connect(); err != nil {
		return err
	}
	defer mongodb.Disconnect(context.Background())

	// Request logs fan out to Mongo alongside stdout.
	mongoLog := logger.NewMongoHandler(mongodb.Collection("logs"))
	logger.Attach(mongoLog)
	defer mongoLog.Close()

	if err := database.Connect(); err != nil {
		return err
	}
	if err := database.DB.AutoMigrate(&models.User{}); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, cache and queue degrade", "error", err)
	}

	kv, err := kvstore.Open()
	if err != nil {
		return err
	}

	// Background jobs: Redis-backed when available, in-memory otherwise.
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseDB(database.DB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.StartWorkers(ctx, 4)

	go notifications.Hub.Run()
	dispatcher := notifications.NewDispatcher(notifications.Hub)
	notifications.Subscribe(dispatcher)

	// One process-wide admin watcher raises new-order alerts for every
	// connected admin dashboard.
	watcher := services.NewOrderWatcher(repositories.NewOrderRepository(), dispatcher)
	watcher.Start(ctx, models.Actor{Role: models.RoleAdmin})
	defer watcher.Stop()

	grpcSrv, _, err := grpcserver.Start(config.GRPCPort())
	if err != nil {
		return err
	}
	defer grpcserver.Stop(grpcSrv)

	r := router.New()
	r.Use(
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
		metrics.Middleware(),
	)
	routes.RegisterAPI(r, kv)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: http listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	grpcserver.SetReady(true)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	grpcserver.SetReady(false)
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}
