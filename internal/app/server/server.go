package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"empleados/internal/domain/auth"
	"empleados/internal/domain/catalogs"
	"empleados/internal/domain/certificate"
	"empleados/internal/domain/employees"
	"empleados/internal/domain/users"
	"empleados/internal/platform/config"
	"empleados/internal/platform/db"
	"empleados/internal/platform/logging"
	"empleados/internal/platform/metrics"
	authhandler "empleados/internal/transport/http/handlers/auth"
	catalogshandler "empleados/internal/transport/http/handlers/catalogs"
	employeeshandler "empleados/internal/transport/http/handlers/employees"
	opshandler "empleados/internal/transport/http/handlers/ops"
	usershandler "empleados/internal/transport/http/handlers/users"
	"empleados/internal/transport/http/middleware"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	Config config.Config
	DB     *db.Pool
	Router http.Handler
}

// Pinger is the readiness probe's view of the database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups the route owners mounted under /api/v1.
type Handlers struct {
	Auth      *authhandler.Handler
	Catalogs  *catalogshandler.Handler
	Employees *employeeshandler.Handler
	Users     *usershandler.Handler
	Ops       *opshandler.Handler
}

// New connects to the database, prepares the schema and wires every
// component. Close releases the pool.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	renderer, err := certificate.NewRenderer(certificate.Company{
		Name:    cfg.Company.Name,
		NIT:     cfg.Company.NIT,
		Address: cfg.Company.Address,
		City:    cfg.Company.City,
	}, cfg.Certificate.Locale, cfg.Certificate.Currency, cfg.Certificate.TimeZone)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("certificate renderer: %w", err)
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	catalogStore := catalogs.NewStore(pool)
	userStore := users.NewStore(pool)
	userService := users.NewService(userStore)
	employeeService := employees.NewService(employees.NewStore(pool), catalogStore, renderer.Location())

	handlers := Handlers{
		Auth:      authhandler.NewHandler(auth.NewService(userStore, cfg.JWTSecret, cfg.JWTTTL), userService),
		Catalogs:  catalogshandler.NewHandler(catalogStore),
		Employees: employeeshandler.NewHandler(employeeService, renderer, collector),
		Users:     usershandler.NewHandler(userService),
		Ops:       opshandler.NewHandler(collector),
	}

	return &App{
		Config: cfg,
		DB:     pool,
		Router: NewRouter(cfg, pool, collector, handlers),
	}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// NewRouter assembles the middleware chain and mounts every route.
func NewRouter(cfg config.Config, pinger Pinger, collector *metrics.Collector, h Handlers) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pinger.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		h.Auth.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			h.Auth.RegisterRoutes(r)
			h.Catalogs.RegisterRoutes(r)
			h.Employees.RegisterRoutes(r)
			h.Users.RegisterRoutes(r)
			h.Ops.RegisterRoutes(r)
		})
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})
	return router
}

// Run is the process entry point: it serves until SIGINT or SIGTERM and
// then drains in-flight requests.
func Run() error {
	cfg := config.Load()
	logging.New(cfg.LogLevel, cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("env", cfg.Environment).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
