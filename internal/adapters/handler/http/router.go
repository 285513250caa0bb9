package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewHandler wires all routes. The restaurant voting routes are registered
// one per configured name, so an unknown restaurant 404s at the router. Only
// the /api subtree carries the permissive CORS policy.
func NewHandler(votes *VoteHandler, dashboard *DashboardHandler, restaurants []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", dashboard.Home)
	r.Get("/login", dashboard.LoginForm)
	r.Post("/login", dashboard.LoginSubmit)
	r.Get("/logout", dashboard.Logout)
	r.Get("/votes", dashboard.Votes)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}))

		r.Post("/vote", votes.VoteJSON)
		r.Get("/getvotes", votes.GetVotes)
		r.Get("/getheavyvotes", votes.GetHeavyVotes)

		for _, name := range restaurants {
			r.Get("/"+name, votes.CastVote(name))
		}
	})

	return r
}
