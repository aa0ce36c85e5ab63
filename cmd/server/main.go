package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/dinelink/dinelink/internal/auth"
	"github.com/dinelink/dinelink/internal/billing"
	"github.com/dinelink/dinelink/internal/config"
	"github.com/dinelink/dinelink/internal/metrics"
	"github.com/dinelink/dinelink/internal/middleware"
	"github.com/dinelink/dinelink/internal/notify"
	"github.com/dinelink/dinelink/internal/service"
	"github.com/dinelink/dinelink/internal/storage/sqlite"
	"github.com/dinelink/dinelink/pkg/api/apiconnect"
	"github.com/dinelink/dinelink/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if cfg.UsingDevSecret() {
		slog.Warn("JWT_SECRET not set, using the development secret", "app_env", cfg.AppEnv)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	notifications := notify.New(store, notify.WithMetrics(m))
	bills := billing.New(store,
		billing.WithNotifier(notifications),
		billing.WithMetrics(m),
		billing.WithConfig(billing.Config{
			ServiceChargeRate: cfg.ServiceChargeRate,
			TaxRate:           cfg.TaxRate,
			Currency:          cfg.DefaultCurrency,
			EnforcePortionSum: cfg.EnforcePortionSum,
		}),
	)

	// Outermost first. Logging runs inside auth so it sees the caller id;
	// rejected tokens still show up in the metrics.
	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireAuth(jwtManager,
			apiconnect.AuthServiceRegisterProcedure,
			apiconnect.AuthServiceLoginProcedure,
		),
		middleware.LoggingInterceptor(),
	)

	logger := slog.Default()
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, logger), interceptors))
	mux.Handle(apiconnect.NewEventServiceHandler(
		service.NewEventService(store, notifications, logger), interceptors))
	mux.Handle(apiconnect.NewBillServiceHandler(
		service.NewBillService(bills), interceptors))
	mux.Handle(apiconnect.NewNotificationServiceHandler(
		service.NewNotificationService(notifications, cfg.NotificationsLimit), interceptors))

	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// h2c serves HTTP/2 without TLS, which gRPC clients of Connect need.
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(newCORS(cfg.CORSOrigins).Handler(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", server.Addr)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newCORS allows browsers to make Connect calls with a bearer token.
func newCORS(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
		MaxAge:         7200,
	})
}
