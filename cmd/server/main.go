package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/duiproject/duitrack/internal/api"
	"github.com/duiproject/duitrack/internal/command"
	"github.com/duiproject/duitrack/internal/config"
	"github.com/duiproject/duitrack/internal/snapshot"
	"github.com/duiproject/duitrack/internal/tree"
)

func main() {
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	cfgPath := flag.String("config", "configs/duitrack.yaml", "Path to YAML config")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// ── Load config ──────────────────────────────────────────────────────────
	loader, err := config.NewLoader(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	cfg := loader.Config()
	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "err", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	// ── Node type and command registries ─────────────────────────────────────
	types := tree.DefaultRegistry()
	cmds := command.NewRegistry(configCommands(cfg)...)
	slog.Info("command registry built", "commands", cmds.Len())

	// ── Tree: fresh, or restored from the last snapshot ───────────────────────
	t := tree.NewTree()
	if path := cfg.Snapshot.Path; path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			restored, err := snapshot.Load(path, types)
			if err != nil {
				slog.Error("snapshot restore failed", "path", path, "err", err)
				os.Exit(1)
			}
			t = restored
			slog.Info("tree restored from snapshot", "path", path, "nodes", t.Len())
		}
	}

	handler := api.New(t, types, cmds)

	// ── Hot-reload watcher: rebuild the command registry on config change ─────
	loader.OnChange(func(newCfg *config.Config) {
		if err := config.Validate(newCfg); err != nil {
			slog.Warn("hot-reload skipped: config invalid", "err", err)
			return
		}
		handler.SwapCommands(command.NewRegistry(configCommands(newCfg)...))
		slog.Info("command registry hot-reloaded", "commands", len(newCfg.Commands))
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutMs) * time.Millisecond,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutMs) * time.Millisecond,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down…")

	shutCtx, shutCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutMs)*time.Millisecond)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)

	if path := cfg.Snapshot.Path; path != "" {
		if err := snapshot.Save(path, handler.Tree()); err != nil {
			slog.Error("snapshot save failed", "path", path, "err", err)
		} else {
			slog.Info("tree snapshot written", "path", path, "nodes", handler.Tree().Len())
		}
	}
	slog.Info("goodbye")
}

func configCommands(cfg *config.Config) []command.Command {
	out := make([]command.Command, 0, len(cfg.Commands))
	for _, def := range cfg.Commands {
		out = append(out, command.Command{Name: def.Name, Description: def.Description})
	}
	return out
}
