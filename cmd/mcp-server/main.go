package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/patrickwarner/oxclient/internal/config"
	"github.com/patrickwarner/oxclient/internal/db"
	"github.com/patrickwarner/oxclient/internal/observability"
	"github.com/patrickwarner/oxclient/internal/oxapi"
	"github.com/patrickwarner/oxclient/internal/session"
	"github.com/patrickwarner/oxclient/internal/transport/xmlrpc"
)

func main() {
	// stdout carries the MCP protocol; the logger writes to stderr
	logger, err := observability.InitLoggerWithLevel(zap.InfoLevel, "oxclient-mcp")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCfg := config.Load()
	if appCfg.OxUsername == "" {
		logger.Fatal("OX_USERNAME environment variable is required")
	}

	if appCfg.TracingEnabled {
		shutdown, err := observability.InitTracing(ctx, logger, "oxclient-mcp", appCfg.TempoEndpoint, appCfg.TracingSampleRate)
		if err != nil {
			logger.Warn("tracing disabled", zap.Error(err))
		} else {
			defer shutdown()
		}
	}

	metrics := observability.NewPrometheusRegistry()
	endpoint := appCfg.Endpoint()
	transport := xmlrpc.NewClient(endpoint, appCfg.OxTimeout, logger)
	client := oxapi.NewClient(transport, logger, metrics)

	// A missing Redis only costs a fresh logon.
	var store session.Store
	redisStore, err := db.InitRedis(ctx, appCfg.RedisAddr)
	if err != nil {
		logger.Warn("session store unavailable, logging on directly", zap.Error(err))
	} else {
		defer redisStore.Close()
		store = redisStore
	}
	sessions := session.NewManager(store, appCfg.SessionTTL, logger, metrics)
	creds := session.Credentials{Endpoint: endpoint, Username: appCfg.OxUsername, Password: appCfg.OxPassword}

	resumed, err := sessions.Open(ctx, client, creds)
	if err != nil {
		logger.Fatal("logon failed", zap.String("endpoint", endpoint), zap.Error(err))
	}
	logger.Info("session open", zap.String("endpoint", endpoint), zap.Bool("resumed", resumed))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "oxclient",
		Version: "1.0.0",
	}, nil)
	NewOxServer(client, logger).Register(server)

	logger.Info("MCP server running via stdio")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("server error", zap.Error(err))
	}
	// The session stays in the store for the next process.
}
