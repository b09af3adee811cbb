package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"toolshare-backend/internal/api/middleware"
	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/service"
)

type quoteRequest struct {
	ItemID string `json:"item_id"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// GetQuote prices a candidate date range without reserving anything.
func GetQuote(svc service.RentalService, pickupHourUTC int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req quoteRequest
		if err := DecodeJSON(r, &req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "invalid request body")
			return
		}
		start, err := parseWhen(req.Start, pickupHourUTC)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, err.Error())
			return
		}
		end, err := parseWhen(req.End, pickupHourUTC)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, err.Error())
			return
		}

		quote, err := svc.GetQuote(r.Context(), req.ItemID, start, end)
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, quote)
	}
}

type createRentalRequest struct {
	ItemID      string `json:"item_id"`
	Start       string `json:"start"`
	End         string `json:"end"`
	PickupNotes string `json:"pickup_notes"`
}

// CreateRental books an item for the requested range.
func CreateRental(svc service.RentalService, pickupHourUTC int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRentalRequest
		if err := DecodeJSON(r, &req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "invalid request body")
			return
		}
		start, err := parseWhen(req.Start, pickupHourUTC)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, err.Error())
			return
		}
		end, err := parseWhen(req.End, pickupHourUTC)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, err.Error())
			return
		}

		rental, err := svc.RequestRental(r.Context(), middleware.UserID(r), req.ItemID, start, end, req.PickupNotes)
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, rental)
	}
}

// GetRental returns one rental, visible only to its participants.
func GetRental(svc service.RentalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rental, err := svc.GetRental(r.Context(), middleware.UserID(r), mux.Vars(r)["id"])
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, rental)
	}
}

// ListRentals returns the caller's rentals as a renter.
func ListRentals(svc service.RentalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize := pagination(r)
		status := domain.RentalStatus(r.URL.Query().Get("status"))
		if status != "" && !status.Valid() {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "unknown status")
			return
		}

		rentals, total, err := svc.ListRentals(r.Context(), middleware.UserID(r), status, page, pageSize)
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, ListResponse{Items: rentals, Total: total, Page: page, PageSize: pageSize})
	}
}

// ListLendings returns the caller's rentals as a lender.
func ListLendings(svc service.RentalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize := pagination(r)
		status := domain.RentalStatus(r.URL.Query().Get("status"))
		if status != "" && !status.Valid() {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "unknown status")
			return
		}

		rentals, total, err := svc.ListLendings(r.Context(), middleware.UserID(r), status, page, pageSize)
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, ListResponse{Items: rentals, Total: total, Page: page, PageSize: pageSize})
	}
}

// ApproveRental moves a pending request to approved. Lender only.
func ApproveRental(svc service.RentalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rental, err := svc.ApproveRental(r.Context(), middleware.UserID(r), mux.Vars(r)["id"])
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, rental)
	}
}

// ActivateRental records the pickup. Lender only.
func ActivateRental(svc service.RentalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rental, err := svc.ActivateRental(r.Context(), middleware.UserID(r), mux.Vars(r)["id"])
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, rental)
	}
}

type completeRentalRequest struct {
	ReturnNotes string `json:"return_notes"`
}

// CompleteRental records the return. Lender only.
func CompleteRental(svc service.RentalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req completeRentalRequest
		if r.ContentLength > 0 {
			if err := DecodeJSON(r, &req); err != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "invalid request body")
				return
			}
		}

		rental, err := svc.CompleteRental(r.Context(), middleware.UserID(r), mux.Vars(r)["id"], req.ReturnNotes)
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, rental)
	}
}

type cancelRentalRequest struct {
	Reason string `json:"reason"`
}

// CancelRental cancels a rental and frees its dates. Either participant.
func CancelRental(svc service.RentalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cancelRentalRequest
		if r.ContentLength > 0 {
			if err := DecodeJSON(r, &req); err != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "invalid request body")
				return
			}
		}

		rental, err := svc.CancelRental(r.Context(), middleware.UserID(r), mux.Vars(r)["id"], req.Reason)
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, rental)
	}
}

type disputeRequest struct {
	Reason string `json:"reason"`
}

// DisputeRental opens a dispute on an active rental. Lender only.
func DisputeRental(svc service.RentalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req disputeRequest
		if err := DecodeJSON(r, &req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "invalid request body")
			return
		}

		rental, err := svc.DisputeRental(r.Context(), middleware.UserID(r), mux.Vars(r)["id"], req.Reason)
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, rental)
	}
}

type resolveDisputeRequest struct {
	Resolution string `json:"resolution"`
	Outcome    string `json:"outcome"` // "completed" or "cancelled"
}

// ResolveDispute closes a dispute as completed or cancelled.
func ResolveDispute(svc service.RentalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resolveDisputeRequest
		if err := DecodeJSON(r, &req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "invalid request body")
			return
		}

		rental, err := svc.ResolveDispute(r.Context(), middleware.UserID(r), mux.Vars(r)["id"],
			req.Resolution, domain.RentalStatus(req.Outcome))
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, rental)
	}
}
