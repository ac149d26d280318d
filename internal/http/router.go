package router

import (
	"net/http"
	"taskmanager/internal/http/handlers"
	"taskmanager/internal/http/middleware"

	"github.com/charmbracelet/log"
)

func New(handler *handlers.TaskHandler, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", handler.Dashboard)
	mux.HandleFunc("GET /stats", handler.Stats)
	mux.HandleFunc("GET /priority", handler.Priority)

	mux.HandleFunc("POST /tasks", handler.Create)
	mux.HandleFunc("GET /tasks", handler.List)
	mux.HandleFunc("GET /tasks/overdue", handler.Overdue)
	mux.HandleFunc("GET /tasks/{id}", handler.Get)
	mux.HandleFunc("PUT /tasks/{id}", handler.Update)
	mux.HandleFunc("DELETE /tasks/{id}", handler.Delete)
	mux.HandleFunc("PATCH /tasks/{id}/complete", handler.Complete)

	mux.HandleFunc("GET /categories", handler.ListCategories)
	mux.HandleFunc("POST /categories", handler.CreateCategory)

	if logger == nil {
		return middleware.WithRequestID(mux)
	}
	return middleware.WithRequestID(middleware.AccessLog(logger)(mux))
}
