package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"storefront/config"
	"storefront/controllers"
	"storefront/database"
	"storefront/logging"
	"storefront/metrics"
	"storefront/passwords"
	"storefront/routes"
)

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	codec, err := passwords.New(cfg.PasswordEncoding)
	if err != nil {
		logger.Error("password codec", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Connect(ctx, cfg.MongoURI, cfg.DBName, logger)
	if err != nil {
		logger.Error("MongoDB connection failed", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h := controllers.New(store,
		controllers.WithPasswordCodec(codec),
		controllers.WithQueryTimeout(cfg.QueryTimeout),
	)
	r := routes.NewRouter(routes.Deps{
		Controller:  h,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     metrics.NewCollector(reg),
		Registry:    reg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server running", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error("mongo disconnect", "error", err)
	}
	logger.Info("server stopped")
}
