// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// postdesk API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"postdesk/internal/handlers"
	"postdesk/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. aiLimiter guards the endpoints that may call
// the remote summary service: per client on /api/ai/summary and per form
// session on form generation. nil disables the limit.
func New(api *handlers.API, aiLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)

	r.NotFound(jsonStatus(http.StatusNotFound, `{"error":"not found"}`))
	r.MethodNotAllowed(jsonStatus(http.StatusMethodNotAllowed, `{"error":"method not allowed"}`))

	r.Get("/health", healthHandler)

	limit := func(key middleware.KeyFunc) func(http.Handler) http.Handler {
		if aiLimiter == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return aiLimiter.Middleware(key)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", api.Dashboard)

		// Posts
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", api.ListPosts)
			r.Post("/", api.CreatePost)
			r.Get("/{id}", api.GetPost)
			r.Put("/{id}", api.UpdatePost)
			r.Delete("/{id}", api.DeletePost)
			r.Get("/{id}/preview", api.PreviewPost)
		})

		// Categories
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", api.ListCategories)
			r.Post("/", api.CreateCategory)
			r.Get("/{id}", api.GetCategory)
			r.Put("/{id}", api.UpdateCategory)
			r.Delete("/{id}", api.DeleteCategory)
		})
		r.Get("/slug", api.SlugPreview)

		// Settings
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", api.GetSettings)
			r.Patch("/", api.PatchSettings)
			r.Post("/reset", api.ResetSettings)
			r.Post("/toggle-theme", api.ToggleTheme)
		})

		// AI summary service
		r.Route("/ai", func(r chi.Router) {
			r.Get("/", api.AIStatus)
			r.Put("/provider", api.SetAIProvider)
			r.With(limit(middleware.ByClientIP)).Post("/summary", api.GenerateSummary)
		})

		// Edit form sessions
		r.Route("/forms/posts", func(r chi.Router) {
			r.Post("/", api.OpenPostForm)
			r.Route("/{sid}", func(r chi.Router) {
				r.Get("/", api.GetPostForm)
				r.Patch("/", api.PatchPostForm)
				r.Delete("/", api.ClosePostForm)
				r.Post("/edit/{id}", api.EditPostForm)
				r.Post("/save", api.SavePostForm)
				r.Post("/reset", api.ResetPostForm)
				r.Post("/delete/{id}", api.DeletePostForm)
				r.With(limit(middleware.ByFormSession)).Post("/generate", api.GeneratePostSummary)
			})
		})
		r.Route("/forms/categories", func(r chi.Router) {
			r.Post("/", api.OpenCategoryForm)
			r.Route("/{sid}", func(r chi.Router) {
				r.Get("/", api.GetCategoryForm)
				r.Patch("/", api.PatchCategoryForm)
				r.Delete("/", api.CloseCategoryForm)
				r.Post("/edit/{id}", api.EditCategoryForm)
				r.Post("/save", api.SaveCategoryForm)
				r.Post("/reset", api.ResetCategoryForm)
				r.Post("/delete/{id}", api.DeleteCategoryForm)
			})
		})

		// Export and backup
		r.Get("/export", api.Export)
		r.Post("/backup", api.Backup)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func jsonStatus(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}
