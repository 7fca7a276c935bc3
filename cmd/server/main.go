package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/ruralpay/cashcard/docs"
	"github.com/ruralpay/cashcard/internal/audit"
	"github.com/ruralpay/cashcard/internal/config"
	"github.com/ruralpay/cashcard/internal/database"
	"github.com/ruralpay/cashcard/internal/handlers"
	"github.com/ruralpay/cashcard/internal/logger"
	mW "github.com/ruralpay/cashcard/internal/middleware"
	"github.com/ruralpay/cashcard/internal/repository"
	"github.com/ruralpay/cashcard/internal/services"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Cash Card API
// @version 1.0
// @description Owner-scoped cash card records behind HTTP Basic or bearer authentication
// @host localhost:8080
// @BasePath /
// @schemes http https
// @securityDefinitions.basic BasicAuth
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewDefault(cfg.App.Env, cfg.Log.Level)
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx := context.Background()

	docs.SwaggerInfo.Host = "localhost:" + cfg.Server.Port

	var db *sql.DB
	if cfg.Store.Backend == "postgres" || cfg.Auth.Provider == "postgres" {
		var err error
		db, err = database.InitDB(ctx, database.GetConfig(viper.GetViper()), log)
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
		defer db.Close()

		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	redisClient := database.InitRedis(ctx, viper.GetViper(), log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	auditLogger := audit.NewAuditLogger(log)

	cardStore := newCardStore(cfg, db, log)
	credentials, err := newCredentialStore(ctx, cfg, db)
	if err != nil {
		return err
	}

	tokenService := services.NewTokenService(cfg.JWT.SecretKey, cfg.JWT.TokenTTL(), redisClient, auditLogger)
	authService := services.NewAuthService(credentials, tokenService, cfg.Auth.BcryptCost)
	cashCardService := services.NewCashCardService(cardStore, auditLogger)

	r := newRouter(cfg, log, auditLogger, authService, tokenService, cashCardService)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Str("env", cfg.App.Env).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}

	log.Info().Msg("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}

func newCardStore(cfg *config.Config, db *sql.DB, log zerolog.Logger) repository.CashCardStore {
	if cfg.Store.Backend == "memory" {
		log.Warn().Msg("Using in-memory cash card store, records are lost on restart")
		return repository.NewMemoryStore()
	}
	return repository.NewPostgresStore(db)
}

func newCredentialStore(ctx context.Context, cfg *config.Config, db *sql.DB) (repository.CredentialStore, error) {
	var store interface {
		repository.CredentialStore
		repository.CredentialWriter
	}
	if cfg.Auth.Provider == "postgres" {
		store = repository.NewPostgresCredentialStore(db)
	} else {
		store = repository.NewMemoryCredentialStore()
	}

	users := make([]services.SeedUser, 0, len(cfg.Auth.SeedUsers))
	for _, u := range cfg.Auth.SeedUsers {
		users = append(users, services.SeedUser{Username: u.Username, Password: u.Password, Roles: u.Roles})
	}
	if err := services.SeedCredentials(ctx, store, cfg.Auth.BcryptCost, users...); err != nil {
		return nil, err
	}
	return store, nil
}

func newRouter(
	cfg *config.Config,
	log zerolog.Logger,
	auditLogger audit.Logger,
	authService *services.AuthService,
	tokenService *services.TokenService,
	cashCardService *services.CashCardService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mW.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(mW.SecurityHeaders)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", handlers.Health)
	r.Get("/ready", handlers.Ready(cashCardService))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	authenticate := mW.Authenticate(authService, cfg.Auth.Realm, log)

	r.Route("/auth", func(r chi.Router) {
		authHandler := handlers.NewAuthHandler(tokenService, log)

		r.Use(authenticate)
		r.Post("/token", mW.WithIdentity(authHandler.IssueToken))
		r.Post("/logout", mW.WithIdentity(authHandler.Logout))
	})

	r.Route("/cashcards", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(mW.RequireRole(cfg.Auth.CardOwnerRole, auditLogger))

		handlers.NewCashCardHandler(cashCardService, log, "/cashcards").RegisterRoutes(r)
	})

	return r
}
