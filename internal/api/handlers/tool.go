package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"toolshare-backend/internal/api/middleware"
	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/service"
)

// CreateItem lists a new tool for the authenticated lender.
func CreateItem(svc service.ToolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item domain.ToolItem
		if err := DecodeJSON(r, &item); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "invalid request body")
			return
		}
		item.LenderID = middleware.UserID(r)
		if err := item.Validate(); err != nil {
			middleware.WriteError(w, http.StatusUnprocessableEntity, middleware.ErrValidation, err.Error())
			return
		}

		if err := svc.CreateItem(r.Context(), &item); err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, item)
	}
}

// GetItem returns one listing.
func GetItem(svc service.ToolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := svc.GetItem(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, item)
	}
}

// UpdateItem edits a listing. Owner only.
func UpdateItem(svc service.ToolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item domain.ToolItem
		if err := DecodeJSON(r, &item); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "invalid request body")
			return
		}
		item.ID = mux.Vars(r)["id"]
		if err := item.Validate(); err != nil {
			middleware.WriteError(w, http.StatusUnprocessableEntity, middleware.ErrValidation, err.Error())
			return
		}

		if err := svc.UpdateItem(r.Context(), middleware.UserID(r), &item); err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, item)
	}
}

// DeactivateItem unlists a tool. The row survives for rental history.
func DeactivateItem(svc service.ToolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeactivateItem(r.Context(), middleware.UserID(r), mux.Vars(r)["id"]); err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusNoContent, nil)
	}
}

// ListItems searches active listings.
func ListItems(svc service.ToolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, pageSize := pagination(r)
		maxRate, _ := strconv.ParseInt(q.Get("max_rate_cents"), 10, 64)

		filter := domain.ToolFilter{
			Query:        q.Get("q"),
			Category:     domain.ToolCategory(q.Get("category")),
			Condition:    domain.ToolCondition(q.Get("condition")),
			MaxRateCents: maxRate,
			City:         q.Get("city"),
			State:        q.Get("state"),
			Page:         page,
			PageSize:     pageSize,
		}
		if filter.Category != "" && !filter.Category.Valid() {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "unknown category")
			return
		}

		items, total, err := svc.ListItems(r.Context(), filter)
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, ListResponse{Items: items, Total: total, Page: page, PageSize: pageSize})
	}
}

// ListMyItems returns the caller's own listings, active or not.
func ListMyItems(svc service.ToolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize := pagination(r)
		items, total, err := svc.ListMyItems(r.Context(), middleware.UserID(r), page, pageSize)
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, ListResponse{Items: items, Total: total, Page: page, PageSize: pageSize})
	}
}
