// internal/profile/routes.go

package profile

import (
	"github.com/gorilla/mux"

	"github.com/studycircleapp/studycircle-backend/internal/auth"
)

// RegisterRoutes wires the profile endpoints
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/profile", handler.GetMyProfile).Methods("GET")
	api.HandleFunc("/profile", handler.UpdateProfile).Methods("PUT")
	api.HandleFunc("/profile/setup", handler.SetupProfile).Methods("POST")
	api.HandleFunc("/profile/completion", handler.GetProfileCompletion).Methods("GET")
	api.HandleFunc("/profile/study-session", handler.RecordStudySession).Methods("POST")
	api.HandleFunc("/profile/looking", handler.SetLookingForPartner).Methods("PUT")
}
