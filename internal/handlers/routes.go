package handlers

import (
	"net/http"

	"github.com/israil64/laptop-galaxy/internal/storage"
)

// APIRoutes assembles the public JSON surface. The limiter guards only the
// public submission endpoints; pass nil to disable it (tests do).
func APIRoutes(store storage.Store, limiter *RateLimiter) *http.ServeMux {
	auth := &AuthHandler{Store: store}
	laptops := &LaptopHandler{Store: store}
	reviews := &ReviewHandler{Store: store}
	messages := &MessageHandler{Store: store}

	limit := func(next http.HandlerFunc) http.HandlerFunc {
		if limiter == nil {
			return next
		}
		return limiter.Middleware(next)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/signup", auth.Signup)
	mux.HandleFunc("POST /api/login", auth.Login)

	mux.HandleFunc("GET /api/laptops", laptops.List)
	mux.HandleFunc("POST /api/laptops", laptops.Create)
	mux.HandleFunc("PUT /api/laptops/{id}", laptops.Update)
	mux.HandleFunc("DELETE /api/laptops/{id}", laptops.Delete)

	mux.HandleFunc("GET /api/reviews", reviews.List)
	mux.HandleFunc("POST /api/reviews", limit(reviews.Create))
	mux.HandleFunc("PUT /api/reviews/{id}", reviews.Update)
	mux.HandleFunc("DELETE /api/reviews/{id}", reviews.Delete)

	mux.HandleFunc("POST /api/contact", limit(messages.Contact))
	mux.HandleFunc("GET /api/messages", messages.List)
	mux.HandleFunc("DELETE /api/messages/{id}", messages.Delete)

	return mux
}
