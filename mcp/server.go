package mcp

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/claralima1/Planner/client"
	"github.com/claralima1/Planner/mcp/internal/handlers"
)

// Configuration holds all settings for the MCP server
type config struct {
	StudyServiceURL string
	HTTPAddr        string
	UseMirror       bool
	LogLevel        zerolog.Level
	ServerName      string
	ServerVersion   string
	ShutdownTimeout time.Duration
	HTTPReadTimeout time.Duration
	HTTPIdleTimeout time.Duration
}

// loadConfig reads environment variables, then lets args override them.
func loadConfig(args []string) (*config, error) {
	cfg := &config{
		StudyServiceURL: getEnvOrDefault("STUDY_SERVICE_URL", "http://localhost:8080"),
		HTTPAddr:        getEnvOrDefault("MCP_HTTP_ADDR", ":8081"),
		UseMirror:       os.Getenv("MCP_USE_MIRROR") == "true",
		ServerName:      getEnvOrDefault("MCP_SERVER_NAME", "study-mcp-server"),
		ServerVersion:   getEnvOrDefault("MCP_SERVER_VERSION", "0.1.0"),
		ShutdownTimeout: parseDurationOrDefault("SHUTDOWN_TIMEOUT", "10s"),
		HTTPReadTimeout: parseDurationOrDefault("HTTP_READ_TIMEOUT", "5s"),
		HTTPIdleTimeout: parseDurationOrDefault("HTTP_IDLE_TIMEOUT", "120s"),
	}
	cfg.LogLevel = parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info"))

	fs := flag.NewFlagSet("study-mcp-server", flag.ContinueOnError)
	var rawLogLevel string
	fs.StringVar(&cfg.StudyServiceURL, "service-url", cfg.StudyServiceURL, "Base URL of the study service")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "Listen address for the streamable HTTP transport")
	fs.BoolVar(&cfg.UseMirror, "use-mirror", cfg.UseMirror, "Persist list results in the local mirror file")
	fs.StringVar(&rawLogLevel, "log-level", cfg.LogLevel.String(), "Log level: debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if rawLogLevel != "" {
		cfg.LogLevel = parseLogLevel(rawLogLevel)
	}
	return cfg, nil
}

// initLogger initializes the logger with the configured level. Logs go to
// stderr so they never corrupt the stdio transport.
func (c *config) initLogger() {
	zerolog.SetGlobalLevel(c.LogLevel)
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Caller().Logger()
}

// Helper functions
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(envKey, defaultValue string) time.Duration {
	if value := os.Getenv(envKey); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	d, _ := time.ParseDuration(defaultValue)
	return d
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewServer builds an MCP server exposing the study tools backed by c.
func NewServer(c *client.Client, name, version string) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
	)
	if err := handlers.NewStudyHandler(c).RegisterTools(s); err != nil {
		return nil, err
	}
	return s, nil
}

// RunMCPServer starts the MCP server, choosing stdio or streamable HTTP.
func RunMCPServer(args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	cfg.initLogger()

	opts := []client.Option{}
	if cfg.UseMirror {
		if m, err := client.NewFileMirror(); err == nil {
			opts = append(opts, client.WithMirror(m))
		} else {
			log.Warn().Err(err).Msg("local mirror unavailable")
		}
	}
	sdk, err := client.New(cfg.StudyServiceURL, opts...)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to create client")
		return err
	}
	log.Info().Str("study_service_url", cfg.StudyServiceURL).Msg("Client created")

	s, err := NewServer(sdk, cfg.ServerName, cfg.ServerVersion)
	if err != nil {
		return err
	}

	// Auto-detect transport method
	if shouldUseStdio() {
		log.Info().Msg("Starting study MCP server (stdio transport)")
		return server.ServeStdio(s)
	}
	return serveHTTP(s, cfg)
}

func serveHTTP(s *server.MCPServer, cfg *config) error {
	log.Info().Str("addr", cfg.HTTPAddr).Msg("Starting study MCP server (Streamable HTTP)")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      streamSrv,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: 0, // No deadline - required for SSE streaming
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	shutdownComplete := make(chan struct{})
	go func() {
		defer close(shutdownComplete)
		<-ctx.Done()
		log.Info().Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	<-shutdownComplete
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// shouldUseStdio determines whether to use stdio transport based on environment
func shouldUseStdio() bool {
	if os.Getenv("MCP_STDIO") == "true" {
		return true
	}
	if os.Getenv("MCP_HTTP") == "true" {
		return false
	}
	// Auto-detect: Use stdio if stdin is not a terminal (launched by another process)
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
