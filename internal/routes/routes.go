package routes

import (
	"github.com/AnshRaj112/hireon-backend/internal/handlers"
	"github.com/AnshRaj112/hireon-backend/internal/middleware"
	"github.com/AnshRaj112/hireon-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux, tokens *services.TokenService) {
	// Auth routes
	r.Post("/api/v1/user/register", handlers.Register)
	r.Post("/api/v1/user/login", handlers.Login)
	r.Get("/api/v1/user/logout", handlers.Logout)

	// Authenticated profile routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))
		r.Get("/api/v1/user/me", handlers.Me)
		r.Post("/api/v1/user/profile/update", handlers.UpdateProfile)
	})
}
