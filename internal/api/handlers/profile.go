package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"toolshare-backend/internal/api/middleware"
	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/service"
)

// UpsertProfile creates or updates the caller's marketplace profile.
func UpsertProfile(svc service.ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var profile domain.Profile
		if err := DecodeJSON(r, &profile); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "invalid request body")
			return
		}
		profile.UserID = middleware.UserID(r)

		if err := svc.UpsertProfile(r.Context(), &profile); err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, profile)
	}
}

// GetProfile returns a user's public profile.
func GetProfile(svc service.ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := svc.GetProfile(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, profile)
	}
}
