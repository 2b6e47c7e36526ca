// Package config provides runtime configuration values for the service.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Queue backends accepted by QUEUE_BACKEND.
const (
	BackendAzure  = "azure"
	BackendKafka  = "kafka"
	BackendMemory = "memory"
)

var (
	// ErrMissing reports required settings that are absent.
	ErrMissing = errors.New("missing required environment variables")
	// ErrInvalid reports settings that are present but unusable.
	ErrInvalid = errors.New("invalid configuration")
)

// Config holds storage, queue, HTTP and telemetry settings.
// It is read once at start and never mutated afterwards.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	LogLevel        string
	ServiceName     string

	StorageAccountName string
	StorageAccountKey  string
	BlobEndpoint       string
	HTMLContainer      string
	ProductContainer   string
	ImageContainer     string
	SignedURLExpiry    time.Duration
	UpstreamTimeout    time.Duration

	QueueBackend          string
	QueueConnectionString string
	QueueName             string
	KafkaBrokers          []string
	MemoryQueueCapacity   int

	TelemetryKey string
}

// TelemetryEnabled reports whether tracing and log forwarding should start.
func (c Config) TelemetryEnabled() bool { return c.TelemetryKey != "" }

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

func durenvh(key string, defHours int) time.Duration {
	h := atoienv(key, defHours)
	if h <= 0 {
		h = defHours
	}
	return time.Duration(h) * time.Hour
}

func splitenv(key string) []string {
	var out []string
	for _, p := range strings.Split(getenv(key, ""), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load collects configuration from the environment and validates that every
// required setting for the selected queue backend is present.
func Load() (Config, error) {
	c := Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8000"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		ServiceName:     getenv("SERVICE_NAME", "storefront"),

		StorageAccountName: os.Getenv("STORAGE_ACCOUNT_NAME"),
		StorageAccountKey:  os.Getenv("STORAGE_ACCOUNT_KEY"),
		BlobEndpoint:       os.Getenv("BLOB_ENDPOINT"),
		HTMLContainer:      os.Getenv("BLOB_CONTAINER_HTML"),
		ProductContainer:   os.Getenv("BLOB_CONTAINER_PRODUCTS"),
		ImageContainer:     os.Getenv("BLOB_CONTAINER_IMAGES"),
		SignedURLExpiry:    durenvh("SIGNED_URL_EXPIRY_HOURS", 24),
		UpstreamTimeout:    durenvs("UPSTREAM_TIMEOUT", 0),

		QueueBackend:          strings.ToLower(getenv("QUEUE_BACKEND", BackendAzure)),
		QueueConnectionString: os.Getenv("AzureWebJobsStorage"),
		QueueName:             os.Getenv("ORDER_QUEUE"),
		KafkaBrokers:          splitenv("KAFKA_BROKERS"),
		MemoryQueueCapacity:   atoienv("MEMORY_QUEUE_CAPACITY", 0),

		TelemetryKey: os.Getenv("APPINSIGHTS_INSTRUMENTATIONKEY"),
	}
	if c.BlobEndpoint == "" && c.StorageAccountName != "" {
		c.BlobEndpoint = fmt.Sprintf("https://%s.blob.core.windows.net", c.StorageAccountName)
	}
	c.BlobEndpoint = strings.TrimRight(c.BlobEndpoint, "/")

	required := map[string]string{
		"STORAGE_ACCOUNT_NAME":    c.StorageAccountName,
		"STORAGE_ACCOUNT_KEY":     c.StorageAccountKey,
		"BLOB_CONTAINER_HTML":     c.HTMLContainer,
		"BLOB_CONTAINER_PRODUCTS": c.ProductContainer,
		"BLOB_CONTAINER_IMAGES":   c.ImageContainer,
		"ORDER_QUEUE":             c.QueueName,
	}
	switch c.QueueBackend {
	case BackendAzure:
		required["AzureWebJobsStorage"] = c.QueueConnectionString
	case BackendKafka:
		required["KAFKA_BROKERS"] = strings.Join(c.KafkaBrokers, ",")
	case BackendMemory:
		if c.MemoryQueueCapacity < 0 {
			return c, fmt.Errorf("%w: MEMORY_QUEUE_CAPACITY must be >= 0", ErrInvalid)
		}
	default:
		return c, fmt.Errorf("%w: unknown QUEUE_BACKEND %q", ErrInvalid, c.QueueBackend)
	}

	var missing []string
	for k, v := range required {
		if v == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return c, fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}
	return c, nil
}
