// internal/auth/routes.go

package auth

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes wires the auth endpoints
func RegisterRoutes(router *mux.Router, handler *Handler, middleware *Middleware) {
	api := router.PathPrefix("/api/v1/auth").Subrouter()

	// Public
	api.HandleFunc("/signup", handler.Signup).Methods("POST")
	api.HandleFunc("/signin", handler.Signin).Methods("POST")
	api.HandleFunc("/refresh", handler.Refresh).Methods("POST")

	// Protected
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Authenticate)
	protected.HandleFunc("/logout", handler.Logout).Methods("POST")
	protected.HandleFunc("/logout-all", handler.LogoutAll).Methods("POST")
	protected.HandleFunc("/me", handler.Me).Methods("GET")
}
