// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/Bl4cky99/schemer/internal/auth"
	"github.com/Bl4cky99/schemer/internal/config"
	"github.com/Bl4cky99/schemer/internal/httpx"
	"github.com/Bl4cky99/schemer/internal/records"
	"github.com/Bl4cky99/schemer/internal/render"
)

type httpServer interface {
	ListenAndServe() error
	Shutdown(context.Context) error
}

var (
	loadConfig    = config.Load
	readInput     = records.Read
	newProvider   = auth.FromConfig
	newHTTPServer = func(ctx context.Context, cfg *config.Config, opts ...httpx.Option) (httpServer, error) {
		return httpx.New(ctx, cfg, opts...)
	}
	notifyContext = signal.NotifyContext
	runServer     = cmdServer
	runCheck      = cmdCheck
	runLoad       = cmdLoad
	runExport     = cmdExport
)

const usageHeader = `schemer - declarative record validation

Usage:
	schemer <command> [flags]

Commands:
	serve   Serve load and validate endpoints for the defined schemas
	check   Check a definition file and exit
	load    Load a JSON, YAML or CSV file against one schema
	export  Print schemas as JSON Schema
	version Print version info

Run 'schemer <command> --help' for command-specific flags.
`

func Execute(version, commit, date string) int {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageHeader)
		return 2
	}

	switch os.Args[1] {
	case "-h", "-help", "--help", "help":
		fmt.Fprint(os.Stdout, usageHeader)
		return 0
	case "serve":
		return runServer(version, commit, date, os.Args[2:])
	case "check":
		return runCheck(os.Args[2:])
	case "load":
		return runLoad(os.Args[2:])
	case "export":
		return runExport(os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("schemer %s (commit %s, built %s)\n", version, commit, date)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usageHeader)
		return 2
	}
}

func cmdServer(version, commit, date string, args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Usage: schemer serve [flags]

Flags:
	-c, --config string		Path to definition file (yaml|yml|json) (default "schemer.yaml")
	-a, --addr string		Override server address (e.g. :9000)
	-l, --log-level string 		Log level: debug|info|warn|error (default: "info")
	-p, --pretty			Human-readable logs instead of JSON
	    --version			Print version on startup
`)
	}
	cfgPath := fs.String("config", "schemer.yaml", "")
	fs.StringVar(cfgPath, "c", *cfgPath, "path to definition file")

	addr := fs.String("addr", "", "")
	fs.StringVar(addr, "a", *addr, "override server address")

	logLevel := fs.String("log-level", "info", "")
	fs.StringVar(logLevel, "l", *logLevel, "log level (debug|info|warn|error)")

	pretty := fs.Bool("pretty", false, "")
	fs.BoolVar(pretty, "p", *pretty, "human-readable logs")

	printVersion := fs.Bool("version", false, "")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "%v", err.Error())
		return 2
	}

	log := newLogger(*logLevel, *pretty).With("svc", "schemer", "version", version, "commit", commit)

	if *printVersion {
		log.Info("version", "version", version, "commit", commit, "date", date)
	}

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Error("load config", "path", *cfgPath, "err", err)
		return 1
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	prov, err := newProvider(cfg.Auth)
	if err != nil {
		log.Error("init auth", "err", err)
		return 1
	}

	srv, err := newHTTPServer(ctx, cfg, httpx.WithLogger(log), httpx.WithAuth(prov), httpx.WithRenderer(render.New()))
	if err != nil {
		log.Error("init server", "err", err)
		return 1
	}

	go func() {
		log.Info("server starting", "addr", cfg.Server.Addr, "basePath", cfg.Server.BasePath, "auth", cfg.Auth.Type)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("shutting down...")
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
		return 1
	}
	log.Info("bye")
	return 0
}

func cmdCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Usage: schemer check -c <file>

Flags:
	-c, --config string		Path to definition file (yaml|yml|json) (required)
`)
	}
	cfgPath := fs.String("config", "", "")
	fs.StringVar(cfgPath, "c", *cfgPath, "path to definition file")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "%v", err.Error())
		return 2
	}

	if *cfgPath == "" {
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid definitions: %v\n", err)
		return 1
	}

	names := make([]string, 0, len(cfg.Schemas))
	for _, s := range cfg.Schemas {
		names = append(names, s.Name)
	}
	sort.Strings(names)

	fmt.Fprintf(os.Stdout, "definitions ok: %d schema(s)", len(names))
	if len(names) > 0 {
		fmt.Fprintf(os.Stdout, ": %s", strings.Join(names, ", "))
	}
	fmt.Fprintln(os.Stdout)
	return 0
}

func newLogger(level string, pretty bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if pretty {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
