package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"toolshare-backend/internal/api/middleware"
	"toolshare-backend/internal/service"
)

// ListBlocks returns an item's availability blocks inside a window. The
// window defaults to the next 90 days.
func ListBlocks(svc service.AvailabilityService, pickupHourUTC int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		from := time.Now().UTC()
		to := from.Add(90 * 24 * time.Hour)
		var err error
		if v := q.Get("from"); v != "" {
			if from, err = parseWhen(v, pickupHourUTC); err != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, err.Error())
				return
			}
		}
		if v := q.Get("to"); v != "" {
			if to, err = parseWhen(v, pickupHourUTC); err != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, err.Error())
				return
			}
		}

		blocks, err := svc.ListBlocks(r.Context(), mux.Vars(r)["id"], from, to)
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"blocks": blocks})
	}
}

// CheckAvailability reports whether a range is currently clear. Advisory:
// booking re-checks authoritatively.
func CheckAvailability(svc service.AvailabilityService, pickupHourUTC int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		start, err := parseWhen(q.Get("start"), pickupHourUTC)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, err.Error())
			return
		}
		end, err := parseWhen(q.Get("end"), pickupHourUTC)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, err.Error())
			return
		}

		available, err := svc.CheckAvailability(r.Context(), mux.Vars(r)["id"], start, end)
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]bool{"available": available})
	}
}

type createBlockRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CreateBlock places a manual block on the item's calendar. Owner only.
func CreateBlock(svc service.AvailabilityService, pickupHourUTC int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBlockRequest
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

		block, err := svc.CreateManualBlock(r.Context(), middleware.UserID(r), mux.Vars(r)["id"], start, end)
		if err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, block)
	}
}

// DeleteBlock removes a manual block. Owner only; rental-backed blocks are
// released through cancellation instead.
func DeleteBlock(svc service.AvailabilityService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.RemoveManualBlock(r.Context(), middleware.UserID(r), mux.Vars(r)["blockID"]); err != nil {
			HandleError(w, err)
			return
		}
		WriteJSON(w, http.StatusNoContent, nil)
	}
}
