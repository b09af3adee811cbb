package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"toolshare-backend/internal/api/middleware"
	"toolshare-backend/internal/service"
)

type sendMessageRequest struct {
	Body string `json:"body"`
}

// SendMessage posts a chat message on a rental.
func SendMessage(svc service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		if err := DecodeJSON(r, &req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "invalid request body")
			return
		}

		msg, err := svc.SendMessage(r.Context(), middleware.UserID(r), mux.Vars(r)["id"], req.Body)
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, msg)
	}
}

// ListMessages returns a rental's conversation and marks it read.
func ListMessages(svc service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msgs, err := svc.ListMessages(r.Context(), middleware.UserID(r), mux.Vars(r)["id"])
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"messages": msgs})
	}
}

// UnreadCounts returns per-rental unread message counts for the caller.
func UnreadCounts(svc service.MessageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := svc.UnreadCounts(r.Context(), middleware.UserID(r))
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"unread": counts})
	}
}
