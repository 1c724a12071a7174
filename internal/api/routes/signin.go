package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/cavemanlearn/bff/internal/api/handlers/signin"
)

// RegisterSignInRoutes registers the sign-in flow endpoints. The callback
// gets CORS headers because the provider redirect may arrive with a frontend
// origin attached.
func RegisterSignInRoutes(r chi.Router, handler *signin.Handler, allowedOrigins []string) {
	r.Get("/signin/start", handler.HandleStart)
	r.With(corsMiddleware(allowedOrigins)).Get("/signin/callback", handler.HandleCallback)
}

func corsMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
