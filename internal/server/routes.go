package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"profitdesk/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router, auth *Authenticator) {
	r.Route("/v1", func(r chi.Router) {
		// unauthorized zone
		r.Get("/public-config", handler(s.getV1PublicConfig))

		// token zone: authenticated, access code not yet redeemed
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireToken)

			r.Post("/verify-code", handler(s.postV1VerifyCode))
		})

		// role zone
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireToken, auth.RequireRole)

			r.Post("/evaluate", handler(s.postV1Evaluate))

			r.Route("/items", func(r chi.Router) {
				r.Get("/", handler(s.getV1Items))
				r.Post("/", handler(s.postV1Items))
				r.Get("/{id}", handler(s.getV1Item))
				r.Patch("/{id}", handler(s.patchV1Item))
				r.Delete("/{id}", handler(s.deleteV1Item))
				r.Get("/{id}/logs", handler(s.getV1ItemLogs))
			})

			r.Get("/settings", handler(s.getV1Settings))
			r.Get("/markets/{market}/categories", handler(s.getV1MarketCategories))

			// admin zone
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)

				r.Put("/settings", handler(s.putV1Settings))
				r.Post("/admin/access-codes", handler(s.postV1AccessCodes))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
