// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

// Package server wires configuration, storage, services and routes into a
// running HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/hverlin/inkwell/internal/config"
	"codeberg.org/hverlin/inkwell/internal/database"
	"codeberg.org/hverlin/inkwell/internal/handlers"
	"codeberg.org/hverlin/inkwell/internal/i18n"
	"codeberg.org/hverlin/inkwell/internal/repository"
	"codeberg.org/hverlin/inkwell/internal/services/auth"
	"codeberg.org/hverlin/inkwell/internal/services/mailer"
	"codeberg.org/hverlin/inkwell/internal/services/recovery"
	"codeberg.org/hverlin/inkwell/internal/services/session"
	"codeberg.org/hverlin/inkwell/internal/templates"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database (migrations run inside Open)
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// i18n
	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	// Repository and services
	repo := repository.New(db)
	authService := auth.NewService(repo)

	sessions, err := session.NewManager(
		cfg.Session.CookieName,
		cfg.Session.MaxAge,
		cfg.Session.HashKey,
		cfg.Session.BlockKey,
		cfg.CookieSecure(),
	)
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}

	mailService, err := mailer.NewService(&cfg.SMTP, cfg.Contact.Recipient, cfg.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to create mailer: %w", err)
	}
	recoveryService := recovery.NewService(repo, mailService)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	renderer, err := templates.New()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	e.Renderer = renderer
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	setupMiddleware(e, cfg, sessions, repo)

	h := handlers.New(repo, authService, sessions, recoveryService, mailService)
	setupRoutes(e, h)

	return startWithGracefulShutdown(e, cfg)
}

func setupRoutes(e *echo.Echo, h *handlers.Handlers) {
	// Static files
	e.Static("/static", "static")

	// Public routes
	e.GET("/health", h.Health)
	e.GET("/", h.Home)
	e.GET("/about", h.About)
	e.GET("/post/:id", h.ViewPost)
	e.POST("/post/:id", h.AddComment)
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login)
	e.GET("/signup", h.SignupPage)
	e.POST("/signup", h.Signup)
	e.GET("/contact", h.ContactPage)
	e.POST("/contact", h.SubmitContact)
	e.GET("/forgot-password", h.ForgotPasswordPage)
	e.POST("/forgot-password", h.RequestRecovery)
	e.GET("/account-recovery/:token", h.RecoveryPage)
	e.POST("/account-recovery/:token", h.CompleteRecovery)

	// Routes that require an authenticated session
	g := e.Group("", RequireAuth)
	g.GET("/new-post", h.NewPostPage)
	g.POST("/new-post", h.CreatePost)
	g.GET("/edit-post/:id", h.EditPostPage)
	g.POST("/edit-post/:id", h.UpdatePost)
	g.GET("/delete/:id", h.DeletePost)
	g.GET("/logout", h.Logout)
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("Server running", "url", cfg.Server.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
