package partners

import (
	"github.com/gorilla/mux"

	"github.com/studycircleapp/studycircle-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/partners").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Matching
	api.HandleFunc("/match/{id}", handler.GetMatchScore).Methods("GET")
	api.HandleFunc("/discover", handler.Discover).Methods("GET")
	api.HandleFunc("/search", handler.Search).Methods("GET")

	// Partner requests
	api.HandleFunc("/{id}/request", handler.SendRequest).Methods("POST")
	api.HandleFunc("/requests", handler.GetRequests).Methods("GET")
	api.HandleFunc("/requests/{id}/respond", handler.RespondToRequest).Methods("POST")

	// Connections
	api.HandleFunc("/connections", handler.GetConnections).Methods("GET")
	api.HandleFunc("/connections/{id}/disconnect", handler.Disconnect).Methods("POST")
	api.HandleFunc("/connections/{id}/session", handler.RecordSession).Methods("POST")

	// Daily picks
	api.HandleFunc("/daily-picks", handler.GetDailyPicks).Methods("GET")
	api.HandleFunc("/daily-picks/{id}/seen", handler.MarkPickSeen).Methods("POST")
}
