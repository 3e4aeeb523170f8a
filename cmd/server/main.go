package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/israil64/laptop-galaxy/internal/config"
	"github.com/israil64/laptop-galaxy/internal/handlers"
	"github.com/israil64/laptop-galaxy/internal/storage"
)

func main() {
	// Configure slog as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init storage (strategy selected by config, handlers only ever see
	// the Store interface)
	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}

	// 3. Session Setup (admin panel only; the JSON API is stateless)
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		slog.Error("Failed to create upload dir", "error", err)
		os.Exit(1)
	}

	// 5. Public JSON API (rate limit on the public submission endpoints)
	rateLimiter := handlers.NewRateLimiter(1 * time.Minute)
	api := handlers.APIRoutes(store, rateLimiter)

	// 6. Admin panel
	adminHandler := &handlers.AdminHandler{
		Store:        store,
		SessionStore: sessionStore,
		Templates:    templates,
		UploadDir:    cfg.UploadDir,
	}

	admin := http.NewServeMux()
	admin.HandleFunc("GET /admin/login", adminHandler.LoginGet)
	admin.HandleFunc("POST /admin/login", adminHandler.LoginPost)
	admin.HandleFunc("GET /admin/logout", adminHandler.Logout)
	admin.HandleFunc("GET /admin", adminHandler.AuthMiddleware(adminHandler.Dashboard))
	admin.HandleFunc("POST /admin/laptops", adminHandler.AuthMiddleware(adminHandler.CreateLaptop))
	admin.HandleFunc("POST /admin/laptops/delete", adminHandler.AuthMiddleware(adminHandler.DeleteLaptop))
	admin.HandleFunc("POST /admin/reviews/moderate", adminHandler.AuthMiddleware(adminHandler.ModerateReview))
	admin.HandleFunc("POST /admin/reviews/delete", adminHandler.AuthMiddleware(adminHandler.DeleteReview))
	admin.HandleFunc("POST /admin/messages/delete", adminHandler.AuthMiddleware(adminHandler.DeleteMessage))

	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	mux := http.NewServeMux()

	// Static frontend assets
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// CORS stays off the admin panel; CSRF stays off the JSON API.
	mux.Handle("/api/", handlers.CORSMiddleware(api))
	mux.Handle("/admin", CSRF(admin))
	mux.Handle("/admin/", CSRF(admin))

	// Chain: Logger -> Security Headers -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(mux),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "backend", cfg.Backend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}
	if err := store.Close(ctx); err != nil {
		slog.Error("Storage close failed", "error", err)
	}

	slog.Info("Server exited gracefully.")
}

// openStore picks the persistence strategy from configuration.
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Backend {
	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return storage.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
	case "sqlite":
		return storage.NewSQLiteStore(cfg.SQLitePath)
	default:
		return storage.NewFileStore(cfg.DataDir)
	}
}
