package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lodestone-labs/relnav/internal/adapter/mcp"
	"github.com/lodestone-labs/relnav/internal/adapter/postgres"
	"github.com/lodestone-labs/relnav/internal/adapter/profiles"
	"github.com/lodestone-labs/relnav/internal/audit"
	"github.com/lodestone-labs/relnav/internal/config"
	"github.com/lodestone-labs/relnav/internal/core/domain"
	"github.com/lodestone-labs/relnav/internal/core/port"
	"github.com/lodestone-labs/relnav/internal/core/service"
	"github.com/lodestone-labs/relnav/internal/telemetry"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses CLI args into config overrides. Only flags the user
// actually set end up non-nil.
func parseFlags(args []string) (config.Overrides, error) {
	fs := flag.NewFlagSet("relnav", flag.ContinueOnError)

	databaseURL := fs.String("database-url", "", "database connection URL (overrides DATABASE_URL)")
	dialect := fs.String("dialect", "", "SQL dialect of the default connection: postgres, mysql, sqlite, sqlserver")
	profilesFile := fs.String("profiles", "", "path to connection profiles YAML")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	maxRows := fs.Int("max-rows", 0, "maximum rows returned per query")
	queryTimeout := fs.Duration("query-timeout", 0, "per-query timeout")
	transport := fs.String("transport", "", `transport: "stdio" or "http"`)
	httpAddr := fs.String("http-addr", "", "listen address for HTTP transport")
	httpBearerToken := fs.String("http-bearer-token", "", "bearer token required for HTTP transport")
	otelEnabled := fs.Bool("otel", false, "enable OpenTelemetry tracing and metrics")
	auditLog := fs.String("audit-log", "", "path to NDJSON audit log file")
	poolMaxConns := fs.Int("pool-max-conns", 0, "maximum pool connections")
	poolMinConns := fs.Int("pool-min-conns", -1, "minimum pool connections")
	poolMaxConnLifetime := fs.Duration("pool-max-conn-lifetime", 0, "maximum connection lifetime")

	if err := fs.Parse(args); err != nil {
		return config.Overrides{}, err
	}

	o := config.Overrides{
		OTelEnabled: *otelEnabled,
		AuditLog:    *auditLog,
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "database-url":
			o.DatabaseURL = databaseURL
		case "dialect":
			o.Dialect = dialect
		case "profiles":
			o.ProfilesFile = profilesFile
		case "log-level":
			o.LogLevel = logLevel
		case "max-rows":
			o.MaxRows = maxRows
		case "query-timeout":
			o.QueryTimeout = queryTimeout
		case "transport":
			o.Transport = transport
		case "http-addr":
			o.HTTPAddr = httpAddr
		case "http-bearer-token":
			o.HTTPBearerToken = httpBearerToken
		case "pool-max-conns":
			v := int32(*poolMaxConns)
			o.PoolMaxConns = &v
		case "pool-min-conns":
			v := int32(*poolMinConns)
			o.PoolMinConns = &v
		case "pool-max-conn-lifetime":
			o.PoolMaxConnLifetime = poolMaxConnLifetime
		}
	})

	return o, nil
}

// redactDSN masks the password in a connection URL for logging.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return "***"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "***")
		}
	}
	return u.String()
}

func run() error {
	overrides, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Logs go to stderr — stdout is reserved for the MCP stdio transport.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	logger.Info("starting relnav",
		slog.String("version", version),
		slog.String("log_level", cfg.LogLevel.String()),
		slog.Int("max_rows", cfg.MaxRows),
		slog.String("query_timeout", cfg.QueryTimeout.String()),
		slog.String("transport", cfg.Transport),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Observability.
	var tracer trace.Tracer
	var inst *telemetry.Instruments
	if cfg.OTelEnabled {
		provider, err := telemetry.Init(ctx, "relnav", version)
		if err != nil {
			return fmt.Errorf("initializing telemetry: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := provider.Shutdown(shutdownCtx); err != nil {
				logger.Warn("telemetry shutdown", slog.String("error.message", err.Error()))
			}
		}()
		tracer = otel.Tracer("github.com/lodestone-labs/relnav")
		inst = telemetry.NewInstruments()
		logger.Info("telemetry enabled")
	} else {
		tracer = telemetry.NoopTracer()
		inst = telemetry.NoopInstruments()
	}

	// Audit log.
	var auditor port.LookupAuditor = audit.NoopAuditor{}
	if cfg.AuditLog != "" {
		fileAuditor, err := audit.NewFileAuditor(cfg.AuditLog)
		if err != nil {
			return fmt.Errorf("opening audit log: %w", err)
		}
		defer func() { _ = fileAuditor.Close() }()
		auditor = fileAuditor
		logger.Info("audit log enabled", slog.String("file", cfg.AuditLog))
	}

	// Connection profiles (optional).
	var registry *profiles.Registry
	if cfg.ProfilesFile != "" {
		registry, err = profiles.LoadFromFile(cfg.ProfilesFile)
		if err != nil {
			return fmt.Errorf("loading profiles: %w", err)
		}
		logger.Info("profiles loaded",
			slog.String("file", cfg.ProfilesFile),
			slog.Int("count", registry.Len()),
		)
	}

	// Adapters and services.
	connector := postgres.NewConnector(cfg.MaxRows, cfg.QueryTimeout, cfg.Schemas, postgres.PoolOptions{
		MaxConns:        cfg.PoolMaxConns,
		MinConns:        cfg.PoolMinConns,
		MaxConnLifetime: cfg.PoolMaxConnLifetime,
	})
	sessions := service.NewSessionManager(connector, domain.NewStatementGuard(), auditor, logger, tracer, inst)
	defer sessions.CloseAll()

	// Open the default session when a database URL is configured.
	if cfg.DatabaseURL != "" {
		dialect, err := domain.ParseDialect(cfg.Dialect)
		if err != nil {
			return err
		}
		sess, err := sessions.Connect(ctx, service.ConnectionSpec{
			Profile: "default",
			URL:     cfg.DatabaseURL,
			Dialect: dialect,
		})
		if err != nil {
			return fmt.Errorf("connecting to database %s: %w", redactDSN(cfg.DatabaseURL), err)
		}
		logger.Info("default session ready",
			slog.String("session_id", sess.ID),
			slog.String("db.url", redactDSN(cfg.DatabaseURL)),
		)
	}

	// MCP server with tool handlers.
	mcpServer := mcp.NewServer(version, sessions, registry, logger, tracer, inst)

	if cfg.Transport == "http" {
		return serveHTTP(ctx, cfg, mcpServer, logger)
	}

	// Run MCP over stdio (stdin/stdout).
	stdioServer := mcpserver.NewStdioServer(mcpServer)

	logger.Info("serving MCP over stdio")
	if err := stdioServer.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("stdio server: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
