// Package bootstrap wires configuration, logging and the health provider for
// the bridge binaries.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	shared "github.com/flomentum/health-bridge/pkg"
	"github.com/flomentum/health-bridge/pkg/infrastructure/healthstore"
	"github.com/flomentum/health-bridge/pkg/infrastructure/sentry"
)

// Config holds standard configuration for the bridge.
type Config struct {
	ListenAddr        string
	DBPath            string
	SentryDSN         string
	SentryEnvironment string
	SeedDemoData      bool
}

// Service holds initialized dependencies.
type Service struct {
	Provider shared.HealthProvider
	Logger   *slog.Logger
	Config   *Config
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() *Config {
	addr := os.Getenv("HEALTH_BRIDGE_ADDR")
	if addr == "" {
		addr = shared.DefaultListenAddr
	}
	dbPath := os.Getenv("HEALTH_DB_PATH")
	if dbPath == "" {
		dbPath = "health.db"
	}

	return &Config{
		ListenAddr:        addr,
		DBPath:            dbPath,
		SentryDSN:         os.Getenv("SENTRY_DSN"),
		SentryEnvironment: os.Getenv("SENTRY_ENVIRONMENT"),
		SeedDemoData:      os.Getenv("SEED_DEMO_DATA") == "true",
	}
}

// GetSlogHandlerOptions returns standard handler options with Cloud Logging
// compatible keys.
func GetSlogHandlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: a.Value}
			}
			if a.Key == slog.LevelKey {
				return slog.Attr{Key: "severity", Value: a.Value}
			}
			return a
		},
	}
}

// ComponentHandler wraps a slog.Handler to prepend [component] to the message.
type ComponentHandler struct {
	slog.Handler
	component string
}

// WithGroup implements slog.Handler.
func (h *ComponentHandler) WithGroup(name string) slog.Handler {
	return &ComponentHandler{Handler: h.Handler.WithGroup(name), component: h.component}
}

// WithAttrs implements slog.Handler.
func (h *ComponentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	component := h.component
	for _, a := range attrs {
		if a.Key == "component" {
			component = a.Value.String()
		}
	}
	return &ComponentHandler{Handler: h.Handler.WithAttrs(attrs), component: component}
}

// Handle implements slog.Handler.
func (h *ComponentHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.component != "" {
		prefixed := slog.NewRecord(r.Time, r.Level, fmt.Sprintf("[%s] %s", h.component, r.Message), r.PC)
		r.Attrs(func(a slog.Attr) bool {
			prefixed.AddAttrs(a)
			return true
		})
		r = prefixed
	}
	return h.Handler.Handle(ctx, r)
}

// NewLogger creates a configured logger instance. LOG_LEVEL selects the
// level; JSON goes to stdout.
func NewLogger(serviceName string) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, GetSlogHandlerOptions(level))
	return slog.New(&ComponentHandler{Handler: handler}).With("service", serviceName)
}

// NewService initializes all standard dependencies: logger, Sentry (when a
// DSN is configured) and the SQLite-backed health provider.
func NewService(ctx context.Context, serviceName string) (*Service, error) {
	cfg := LoadConfig()
	logger := NewLogger(serviceName)
	slog.SetDefault(logger)

	logger.Info("Initializing service", "db_path", cfg.DBPath)

	if err := sentry.Init(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		ServerName:  serviceName,
	}, logger); err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}

	store, err := healthstore.Open(cfg.DBPath)
	if err != nil {
		logger.Error("Health store init failed", "error", err)
		return nil, fmt.Errorf("health store init: %w", err)
	}

	if cfg.SeedDemoData {
		if err := store.SeedDemoData(ctx); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
		logger.Info("Demo data seeded")
	}

	return &Service{Provider: store, Logger: logger, Config: cfg}, nil
}
