// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"postdesk/internal/editor"
	"postdesk/internal/handlers"
	"postdesk/internal/middleware"
	"postdesk/internal/router"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard JSON API",
		Long: `Start the HTTP server.

Examples:
  postdesk serve
  postdesk serve --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default APP_HOST:APP_PORT)")
	return cmd
}

func runServe(addr string) error {
	a, err := newApp(context.Background())
	if err != nil {
		return err
	}
	defer a.Close()

	if addr == "" {
		addr = a.cfg.Addr()
	}
	slog.Info("configuration loaded",
		"env", a.cfg.Env,
		"addr", addr,
		"store", a.cfg.StoreBackend,
		"ai_remote", a.summary.Remote(),
	)
	if a.storage == nil {
		slog.Warn("s3 storage not configured, backups disabled")
	} else {
		slog.Info("backups enabled", "bucket", a.storage.Bucket())
	}

	forms := editor.NewManager(a.posts, a.categories, a.summary, a.cfg.FormIdleTTL)
	defer forms.Stop()

	aiLimiter := middleware.NewRateLimiter(a.cfg.AIRateLimit, time.Minute)
	defer aiLimiter.Stop()

	api := handlers.New(handlers.Deps{
		Posts:      a.posts,
		Categories: a.categories,
		Settings:   a.settings,
		Summarizer: a.summary,
		Forms:      forms,
		Registry:   a.registry,
		Backup:     a.backups(),
	})

	// WriteTimeout must cover a summary request that waits on the remote
	// service for the full AI timeout.
	srv := &http.Server{
		Addr:         addr,
		Handler:      router.New(api, aiLimiter),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: a.cfg.AITimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	slog.Info("server stopped gracefully")
	return nil
}
