package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/nightring/internal/config"
	nrmcp "github.com/claude/nightring/internal/mcp"
	"github.com/claude/nightring/internal/server"
	"github.com/claude/nightring/internal/ultrahuman"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	serve := flag.Bool("serve", false, "run the HTTP API instead of the stdio MCP server")
	flag.Parse()

	// Logs go to stderr: in MCP mode stdout carries the protocol stream.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("nightring starting", "version", Version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	client := ultrahuman.NewClient(cfg.Ultrahuman.BaseURL, cfg.Ultrahuman.Token)

	if !*serve {
		runStdio(client, cfg, log)
		return
	}
	runHTTP(client, cfg, log)
}

func runStdio(client *ultrahuman.Client, cfg *config.Config, log *slog.Logger) {
	s := nrmcp.New(client, cfg.Ultrahuman.DefaultEmail, Version, log)
	log.Info("mcp server starting", "transport", "stdio")
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

func runHTTP(client *ultrahuman.Client, cfg *config.Config, log *slog.Logger) {
	srv := server.New(client, cfg.Ultrahuman.DefaultEmail, cfg.Auth.APIKey, log)

	// Start server over tsnet or a plain listener
	var listener net.Listener
	var err error

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "plain (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
