// oxctl drives an ad server through its ox XML-RPC API from the command line.
//
// Usage:
//
//	go run ./tools/oxctl <command> [flags] [args]
//
// Commands:
//
//	logon                         open a session, or resume the stored one
//	logoff                        end the session and forget the stored token
//	get <kind> <id>               print one entity as JSON
//	list <kind> [<parent> <id>]   print the children of a parent entity
//	stats -kind -id [-by] ...     print a statistics report as JSON
//	export -kind -id ...          archive daily statistics in ClickHouse
//	report -kind -id [-days]      print a summary of archived statistics
//	sync                          snapshot the entity tree into Postgres
//	tags -zone [-type]            print the invocation code of a zone
//	serve                         run the health/metrics/catalog HTTP API
//
// Connection settings, credentials and stores come from the environment
// (OX_HOST, OX_USERNAME, OX_PASSWORD, REDIS_ADDR, CLICKHOUSE_DSN,
// POSTGRES_DSN, ...). The session token is shared through Redis, so
// consecutive invocations reuse one session.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/patrickwarner/oxclient/internal/config"
	"github.com/patrickwarner/oxclient/internal/observability"
)

type command struct {
	run   func(ctx context.Context, a *app, args []string) error
	usage string
}

var commands = map[string]command{
	"logon":  {runLogon, "logon"},
	"logoff": {runLogoff, "logoff"},
	"get":    {runGet, "get <kind> <id>"},
	"list":   {runList, "list <kind> [<parent-kind> <parent-id>]"},
	"stats":  {runStats, "stats -kind K -id N [-by daily] [-from YYYY-MM-DD] [-to YYYY-MM-DD] [-manager-tz]"},
	"export": {runExport, "export -kind K -id N [-from YYYY-MM-DD] [-to YYYY-MM-DD]"},
	"report": {runReport, "report -kind K -id N [-days 7]"},
	"sync":   {runSync, "sync"},
	"tags":   {runTags, "tags -zone N [-type adjs]"},
	"serve":  {runServe, "serve"},
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger, err := observability.InitLogger(cfg.ServiceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(ctx, logger, cfg.ServiceName, cfg.TempoEndpoint, cfg.TracingSampleRate)
		if err != nil {
			logger.Warn("tracing disabled", zap.Error(err))
		} else {
			defer shutdown()
		}
	}

	a := newApp(cfg, logger, os.Stdout)
	defer a.Close()

	if err := cmd.run(ctx, a, os.Args[2:]); err != nil {
		logger.Error("command failed", zap.String("command", os.Args[1]), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: oxctl <command> [flags] [args]")
	for _, name := range commandNames() {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
}
