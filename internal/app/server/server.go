// Package server wires configuration, storage, domains and HTTP routing into
// a runnable application.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"peoplehub/internal/domain/activity"
	"peoplehub/internal/domain/contract"
	"peoplehub/internal/domain/dashboard"
	"peoplehub/internal/domain/department"
	"peoplehub/internal/domain/employee"
	"peoplehub/internal/domain/leave"
	"peoplehub/internal/platform/config"
	"peoplehub/internal/platform/db"
	"peoplehub/internal/transport/http/api"
	authhandler "peoplehub/internal/transport/http/handlers/auth"
	"peoplehub/internal/transport/http/handlers/contracts"
	dashboardhandler "peoplehub/internal/transport/http/handlers/dashboard"
	"peoplehub/internal/transport/http/handlers/departments"
	"peoplehub/internal/transport/http/handlers/employees"
	"peoplehub/internal/transport/http/handlers/leaves"
	"peoplehub/internal/transport/http/handlers/reports"
	"peoplehub/internal/transport/http/middleware"
)

type App struct {
	Config   config.Config
	DB       *pgxpool.Pool
	Router   chi.Router
	Activity *activity.Recorder
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}

	api.SetDebug(cfg.Development())

	recorder := activity.NewRecorder(pool)
	employeeStore := employee.NewStore(pool)
	departmentStore := department.NewStore(pool)
	leaveStore := leave.NewStore(pool)
	contractStore := contract.NewStore(pool)
	dashboardStore := dashboard.NewStore(pool, employeeStore, leaveStore, recorder)

	app := &App{
		Config:   cfg,
		DB:       pool,
		Activity: recorder,
	}
	app.Router = newRouter(cfg, recorder, employeeStore, departmentStore, leaveStore, contractStore, dashboardStore)
	return app, nil
}

func newRouter(
	cfg config.Config,
	recorder *activity.Recorder,
	employeeStore *employee.Store,
	departmentStore *department.Store,
	leaveStore *leave.Store,
	contractStore *contract.Store,
	dashboardStore *dashboard.Store,
) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if err := dashboardStore.DB.Ping(req.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	authHandler := authhandler.NewHandler(employeeStore, recorder, cfg.JWTSecret, cfg.JWTTTL)
	employeesHandler := employees.NewHandler(employeeStore, departmentStore, leaveStore, contractStore, recorder)
	departmentsHandler := departments.NewHandler(departmentStore, recorder)
	leavesHandler := leaves.NewHandler(leaveStore, recorder)
	contractsHandler := contracts.NewHandler(contractStore, recorder)
	dashboardHandler := dashboardhandler.NewHandler(dashboardStore)
	reportsHandler := reports.NewHandler(employeeStore, recorder)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			authHandler.RegisterPublic(r)
			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(cfg.JWTSecret, employeeStore))
				authHandler.RegisterProtected(r)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(cfg.JWTSecret, employeeStore))
			r.Route("/employees", employeesHandler.RegisterRoutes)
			r.Route("/departments", departmentsHandler.RegisterRoutes)
			r.Route("/leaves", leavesHandler.RegisterRoutes)
			r.Route("/contracts", contractsHandler.RegisterRoutes)
			r.Route("/dashboard", dashboardHandler.RegisterRoutes)
			r.Route("/reports", reportsHandler.RegisterRoutes)
		})
	})

	return r
}

func (a *App) Run() error {
	return http.ListenAndServe(a.Config.Addr, a.Router)
}

// Close drains in-flight activity writes before releasing the pool.
func (a *App) Close() {
	a.Activity.Wait()
	a.DB.Close()
}
