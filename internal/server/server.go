// Package server wires the HTTP server: router, middleware, routes, and the
// dependency chain behind them.
//
// This is the composition root — the one place where concrete storage,
// services, and handlers meet:
//
//	sqlite.DB or memory.Store → services → handlers → routes
//
// main.go stays minimal: read config, build the blob store and recipe
// provider, hand everything to New, call Start.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/recipe-tracker/internal/auth"
	"github.com/sakif/recipe-tracker/internal/blob"
	"github.com/sakif/recipe-tracker/internal/handler"
	"github.com/sakif/recipe-tracker/internal/middleware"
	"github.com/sakif/recipe-tracker/internal/repository"
	"github.com/sakif/recipe-tracker/internal/repository/memory"
	sqliteRepo "github.com/sakif/recipe-tracker/internal/repository/sqlite"
	"github.com/sakif/recipe-tracker/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port      int
	JWTSecret string

	// DBPath is the SQLite file. Ignored when MemoryOnly is set, in which
	// case everything lives in process memory and dies with the process.
	DBPath     string
	MemoryOnly bool

	// UploadDir, when non-empty, is served at /uploads/*. It is set for the
	// disk blob store and left empty for S3, where the bucket serves the
	// files itself.
	UploadDir string
}

// Server owns the router and the resources that need closing on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB // nil in memory-only mode
}

// New assembles the full dependency chain. The blob store and the recipe
// provider are built by the caller: which backends they talk to is a
// deployment decision, not a wiring one.
func New(cfg Config, logger *slog.Logger, blobStore blob.Store, provider service.RecipeProvider) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
	}

	var (
		users repository.UserRepository
		recs  repository.RecipeRepository
		plans repository.MealPlanRepository
	)
	if cfg.MemoryOnly {
		store := memory.New()
		users, recs, plans = store.Users(), store.Recipes(), store.MealPlans()
		logger.Warn("running memory-only: all data is lost on exit")
	} else {
		db, err := sqliteRepo.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		s.db = db
		users, recs, plans = db.Users(), db.Recipes(), db.MealPlans()
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		s.closeDB()
		return nil, fmt.Errorf("configuring tokens: %w", err)
	}

	authSvc := service.NewAuthService(users, tokens, auth.NewPasswordService(), logger)
	recipeSvc := service.NewRecipeService(recs, logger)
	planSvc := service.NewMealPlanService(plans, recs, logger)
	importSvc := service.NewImportService(provider, recipeSvc, logger)

	s.setupRoutes(
		tokens,
		handler.NewAuthHandler(authSvc, logger),
		handler.NewRecipeHandler(recipeSvc, importSvc, logger),
		handler.NewMealPlanHandler(planSvc, logger),
		handler.NewUploadHandler(blobStore, logger),
	)

	return s, nil
}

// setupRoutes configures middleware and the route table.
//
//	POST   /auth/register            public
//	POST   /auth/login               public
//	GET    /uploads/*                public (disk store only)
//	GET    /recipes                  auth
//	POST   /recipes                  auth
//	GET    /recipes/search           auth
//	POST   /recipes/import           auth
//	PUT    /recipes/{id}             auth
//	DELETE /recipes/{id}             auth
//	PATCH  /recipes/{id}/favorite    auth
//	GET    /mealplan                 auth
//	POST   /mealplan                 auth
//	POST   /upload                   auth
func (s *Server) setupRoutes(
	tokens *auth.TokenService,
	authH *handler.AuthHandler,
	recipeH *handler.RecipeHandler,
	planH *handler.MealPlanHandler,
	uploadH *handler.UploadHandler,
) {
	// Order matters: RequestID first so everything downstream can log it.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	s.router.Post("/auth/register", authH.HandleRegister)
	s.router.Post("/auth/login", authH.HandleLogin)

	if s.config.UploadDir != "" {
		fileServer := http.FileServer(http.Dir(s.config.UploadDir))
		s.router.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))
	}

	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipeH.HandleList)
			r.Post("/", recipeH.HandleCreate)
			r.Get("/search", recipeH.HandleSearch)
			r.Post("/import", recipeH.HandleImport)
			r.Put("/{id}", recipeH.HandleUpdate)
			r.Delete("/{id}", recipeH.HandleDelete)
			r.Patch("/{id}/favorite", recipeH.HandleToggleFavorite)
		})

		r.Get("/mealplan", planH.HandleGet)
		r.Post("/mealplan", planH.HandleSet)

		r.Post("/upload", uploadH.HandleUpload)
	})
}

// Router exposes the assembled handler, mainly for tests that want to drive
// the server through httptest without binding a port.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) closeDB() {
	if s.db != nil {
		s.db.Close()
	}
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, close the database so the WAL is flushed.
func (s *Server) Start() error {
	defer s.closeDB()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.Bool("memoryOnly", s.config.MemoryOnly),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
