package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"toolshare-backend/internal/api/middleware"
	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/service"
)

// CreateReview submits a review for a completed rental.
func CreateReview(svc service.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var review domain.ToolReview
		if err := DecodeJSON(r, &review); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "invalid request body")
			return
		}
		review.RentalID = mux.Vars(r)["id"]
		if err := review.Validate(); err != nil {
			middleware.WriteError(w, http.StatusUnprocessableEntity, middleware.ErrValidation, err.Error())
			return
		}

		created, err := svc.CreateReview(r.Context(), middleware.UserID(r), &review)
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)
	}
}

// ListItemReviews returns the reviews for one item.
func ListItemReviews(svc service.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize := pagination(r)
		reviews, total, err := svc.ListItemReviews(r.Context(), mux.Vars(r)["id"], page, pageSize)
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, ListResponse{Items: reviews, Total: total, Page: page, PageSize: pageSize})
	}
}
