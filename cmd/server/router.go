package main

import (
	"net/http"

	"github.com/agsdev/tasks-api/internal/api"
	apiMiddleware "github.com/agsdev/tasks-api/internal/api/middleware"
	"github.com/agsdev/tasks-api/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.Metrics(app.metrics))

	authHandler := api.NewAuthHandler(app.accountService, app.metrics, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.metrics)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/tasks", taskHandler.ListTasks)
			r.Post("/tasks", taskHandler.CreateTask)
			r.Get("/tasks/{"+api.TaskPathParam+"}", taskHandler.GetTask)
			r.Put("/tasks/{"+api.TaskPathParam+"}", taskHandler.UpdateTask)
			r.Delete("/tasks/{"+api.TaskPathParam+"}", taskHandler.DeleteTask)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(app.registry))

	return r
}
