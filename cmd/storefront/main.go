// Package main boots the storefront HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fairyhunter13/storefront-service/internal/blob"
	"github.com/fairyhunter13/storefront-service/internal/catalog"
	"github.com/fairyhunter13/storefront-service/internal/clock"
	"github.com/fairyhunter13/storefront-service/internal/config"
	httpapi "github.com/fairyhunter13/storefront-service/internal/http"
	"github.com/fairyhunter13/storefront-service/internal/obs"
	"github.com/fairyhunter13/storefront-service/internal/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		obs.Logger.Error("config_invalid", "error", err)
		os.Exit(1)
	}
	obs.InitLogger(cfg.LogLevel)
	obs.Logger.Info("service_starting", "queue_backend", cfg.QueueBackend, "telemetry", cfg.TelemetryEnabled())

	shutdownTelemetry := func(context.Context) error { return nil }
	if cfg.TelemetryEnabled() {
		shutdownTelemetry, err = obs.InitTelemetry(context.Background(), cfg.ServiceName, cfg.TelemetryKey)
		if err != nil {
			obs.Logger.Error("telemetry_init_failed", "error", err)
			os.Exit(1)
		}
	}

	signer, err := blob.NewSigner(cfg.StorageAccountName, cfg.StorageAccountKey, cfg.BlobEndpoint, clock.Real{})
	if err != nil {
		obs.Logger.Error("signer_init_failed", "error", err)
		os.Exit(1)
	}
	signer = signer.WithExpiry(cfg.SignedURLExpiry)

	client := &http.Client{Timeout: cfg.UpstreamTimeout}
	if cfg.TelemetryEnabled() {
		client.Transport = otelhttp.NewTransport(http.DefaultTransport)
	}
	products := blob.NewFetcher(signer, cfg.ProductContainer, client, obs.Logger)
	templates := blob.NewFetcher(signer, cfg.HTMLContainer, client, obs.Logger)
	loader := catalog.NewLoader(products, signer, cfg.ImageContainer, obs.Logger)

	sender, err := newSender(cfg)
	if err != nil {
		obs.Logger.Error("queue_init_failed", "backend", cfg.QueueBackend, "error", err)
		os.Exit(1)
	}
	submitter := queue.NewSubmitter(sender, obs.Logger)

	app := httpapi.NewApp(loader, templates, submitter, obs.Logger)
	handler := httpapi.NewRouter(app, httpapi.RouterOptions{
		Tracing:     cfg.TelemetryEnabled(),
		ServiceName: cfg.ServiceName,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				obs.Logger.Info("shutdown_http_begin")
				return srv.Shutdown(ctx)
			},
			"queue-sender": func(context.Context) error {
				return closeSender(sender)
			},
			"telemetry": shutdownTelemetry,
		},
	)

	exitCode := <-wait
	obs.Logger.Info("service_stopped", "exit_code", exitCode)
	os.Exit(exitCode)
}

// newSender builds the order queue backend selected by QUEUE_BACKEND.
func newSender(cfg config.Config) (queue.Sender, error) {
	switch cfg.QueueBackend {
	case config.BackendAzure:
		s, err := queue.NewAzureSender(cfg.QueueConnectionString, cfg.QueueName)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendKafka:
		producer, err := queue.NewKafkaProducer(cfg.KafkaBrokers)
		if err != nil {
			return nil, err
		}
		return queue.NewKafkaSender(producer, cfg.QueueName), nil
	case config.BackendMemory:
		obs.Logger.Warn("queue_backend_memory", "capacity", cfg.MemoryQueueCapacity, "note", "orders are held in process only")
		return queue.NewMemorySender(cfg.MemoryQueueCapacity), nil
	default:
		return nil, fmt.Errorf("%w: QUEUE_BACKEND=%q", config.ErrInvalid, cfg.QueueBackend)
	}
}

// closeSender closes intake and reports what the in-process backend still
// holds, since those orders are lost on exit.
func closeSender(sender queue.Sender) error {
	if mem, ok := sender.(*queue.MemorySender); ok {
		obs.Logger.Warn("queue_memory_closed", "enqueued", mem.Enqueued(), "held", mem.Len())
	}
	return sender.Close()
}
