package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mytheresa/product-form/app/catalog"
	"github.com/mytheresa/product-form/app/config"
	"github.com/mytheresa/product-form/app/middleware"
	"github.com/mytheresa/product-form/app/products"
	"github.com/mytheresa/product-form/models"
	"github.com/mytheresa/product-form/pkg/logging"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	renderer, err := products.NewRenderer()
	if err != nil {
		slog.Error("Failed to initialize page renderer", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	repo := models.NewProductsRepository()
	ctrl := products.NewController(repo, models.NewIDGenerator(), products.Options{
		ConfirmDeletes: cfg.ConfirmDeletes,
		DeleteDelay:    cfg.DeleteDelay,
		Policy:         products.ValidationPolicy{RequirePositivePrice: cfg.RequirePositivePrice},
		Metrics:        products.NewMetrics(registry),
	})

	mux := http.NewServeMux()
	products.NewFormHandler(ctrl, renderer).Register(mux)
	catalog.NewCatalogHandler(repo).Register(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: middleware.Logging(mux),
	}

	go func() {
		slog.Info("Product form server starting",
			"address", srv.Addr,
			"confirm_deletes", cfg.ConfirmDeletes,
			"delete_delay", cfg.DeleteDelay,
			"require_positive_price", cfg.RequirePositivePrice,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				return srv.Shutdown(ctx)
			},
			"pending-deletes": func(ctx context.Context) error {
				ctrl.Shutdown()
				return nil
			},
		},
	)

	exitCode := <-wait
	slog.Info("Product form server stopped", "exit_code", exitCode)
	os.Exit(exitCode)
}
