package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toolshare-backend/internal/api/handlers"
	"toolshare-backend/internal/api/middleware"
	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/pricing"
	"toolshare-backend/internal/security"
)

const testPickupHour = 10

// newAuthedRouter builds a router with the auth middleware enabled and
// returns a valid bearer token for userID.
func newAuthedRouter(t *testing.T, userID string, register func(r *mux.Router)) (*mux.Router, string) {
	t.Helper()
	tokens := security.NewTokenManager("test-secret")
	token, err := tokens.GenerateToken(userID, userID+"@example.com", time.Hour)
	require.NoError(t, err)

	r := mux.NewRouter()
	r.Use(middleware.Auth(tokens))
	register(r)
	return r, token
}

func doRequest(r *mux.Router, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGetQuote(t *testing.T) {
	svc := new(MockRentalService)
	// Quotes are part of the public browse surface, no token required.
	router := mux.NewRouter()
	router.HandleFunc("/quotes", handlers.GetQuote(svc, testPickupHour)).Methods("POST")

	t.Run("Success", func(t *testing.T) {
		start := time.Date(2026, 6, 1, testPickupHour, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 3)
		quote := &pricing.Quote{
			TotalDays:         3,
			DailyRateCents:    2500,
			SubtotalCents:     7500,
			PlatformFeeCents:  1125,
			LenderPayoutCents: 6375,
			DepositCents:      5000,
			TotalCents:        12500,
		}
		svc.On("GetQuote", mock.Anything, "item-1", start, end).Return(quote, nil).Once()

		rec := doRequest(router, "POST", "/quotes", "",
			`{"item_id":"item-1","start":"2026-06-01","end":"2026-06-04"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got pricing.Quote
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int64(12500), got.TotalCents)
		svc.AssertExpectations(t)
	})


	t.Run("BadTimestamp", func(t *testing.T) {
		rec := doRequest(router, "POST", "/quotes", "",
			`{"item_id":"item-1","start":"June 1st","end":"2026-06-04"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("DurationTooLong", func(t *testing.T) {
		svc.On("GetQuote", mock.Anything, "item-1", mock.Anything, mock.Anything).
			Return(nil, domain.ErrInvalidDuration).Once()

		rec := doRequest(router, "POST", "/quotes", "",
			`{"item_id":"item-1","start":"2026-06-01","end":"2026-07-15"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestCreateRental(t *testing.T) {
	svc := new(MockRentalService)
	router, token := newAuthedRouter(t, "renter-1", func(r *mux.Router) {
		r.HandleFunc("/rentals", handlers.CreateRental(svc, testPickupHour)).Methods("POST")
	})

	start := time.Date(2026, 6, 1, testPickupHour, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	t.Run("Success", func(t *testing.T) {
		rental := &domain.Rental{ID: "rental-1", RenterID: "renter-1", ItemID: "item-1", Status: domain.RentalStatusPending}
		svc.On("RequestRental", mock.Anything, "renter-1", "item-1", start, end, "gate code 4411").
			Return(rental, nil).Once()

		rec := doRequest(router, "POST", "/rentals", token,
			`{"item_id":"item-1","start":"2026-06-01","end":"2026-06-04","pickup_notes":"gate code 4411"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var got domain.Rental
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "rental-1", got.ID)
		assert.Equal(t, domain.RentalStatusPending, got.Status)
		svc.AssertExpectations(t)
	})

	t.Run("DateConflict", func(t *testing.T) {
		svc.On("RequestRental", mock.Anything, "renter-1", "item-1", start, end, "").
			Return(nil, domain.ErrDateConflict).Once()

		rec := doRequest(router, "POST", "/rentals", token,
			`{"item_id":"item-1","start":"2026-06-01","end":"2026-06-04"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		var resp middleware.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, middleware.ErrConflict, resp.Error)
	})

	t.Run("OwnItem", func(t *testing.T) {
		svc.On("RequestRental", mock.Anything, "renter-1", "item-1", start, end, "").
			Return(nil, domain.ErrOwnItem).Once()

		rec := doRequest(router, "POST", "/rentals", token,
			`{"item_id":"item-1","start":"2026-06-01","end":"2026-06-04"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("UnknownFieldRejected", func(t *testing.T) {
		rec := doRequest(router, "POST", "/rentals", token,
			`{"item_id":"item-1","start":"2026-06-01","end":"2026-06-04","price_cents":1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MissingToken", func(t *testing.T) {
		rec := doRequest(router, "POST", "/rentals", "",
			`{"item_id":"item-1","start":"2026-06-01","end":"2026-06-04"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("StorageDownMapsToUnavailable", func(t *testing.T) {
		svc.On("RequestRental", mock.Anything, "renter-1", "item-1", start, end, "").
			Return(nil, errors.New("dial tcp: connection refused")).Once()

		rec := doRequest(router, "POST", "/rentals", token,
			`{"item_id":"item-1","start":"2026-06-01","end":"2026-06-04"}`)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		// The raw driver error must not leak to the client.
		assert.NotContains(t, rec.Body.String(), "dial tcp")
	})
}

func TestRentalLifecycleEndpoints(t *testing.T) {
	svc := new(MockRentalService)
	router, token := newAuthedRouter(t, "lender-1", func(r *mux.Router) {
		r.HandleFunc("/rentals/{id}/approve", handlers.ApproveRental(svc)).Methods("POST")
		r.HandleFunc("/rentals/{id}/complete", handlers.CompleteRental(svc)).Methods("POST")
		r.HandleFunc("/rentals/{id}/cancel", handlers.CancelRental(svc)).Methods("POST")
		r.HandleFunc("/rentals/{id}/resolve", handlers.ResolveDispute(svc)).Methods("POST")
	})

	t.Run("Approve", func(t *testing.T) {
		rental := &domain.Rental{ID: "rental-1", Status: domain.RentalStatusApproved}
		svc.On("ApproveRental", mock.Anything, "lender-1", "rental-1").Return(rental, nil).Once()

		rec := doRequest(router, "POST", "/rentals/rental-1/approve", token, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ApproveWrongActor", func(t *testing.T) {
		svc.On("ApproveRental", mock.Anything, "lender-1", "rental-1").
			Return(nil, domain.ErrForbidden).Once()

		rec := doRequest(router, "POST", "/rentals/rental-1/approve", token, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("ApproveStaleStatus", func(t *testing.T) {
		svc.On("ApproveRental", mock.Anything, "lender-1", "rental-1").
			Return(nil, domain.ErrInvalidTransition).Once()

		rec := doRequest(router, "POST", "/rentals/rental-1/approve", token, "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("CompleteWithoutBody", func(t *testing.T) {
		rental := &domain.Rental{ID: "rental-1", Status: domain.RentalStatusCompleted}
		svc.On("CompleteRental", mock.Anything, "lender-1", "rental-1", "").Return(rental, nil).Once()

		rec := doRequest(router, "POST", "/rentals/rental-1/complete", token, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("CancelWithReason", func(t *testing.T) {
		rental := &domain.Rental{ID: "rental-1", Status: domain.RentalStatusCancelled}
		svc.On("CancelRental", mock.Anything, "lender-1", "rental-1", "tool broke").Return(rental, nil).Once()

		rec := doRequest(router, "POST", "/rentals/rental-1/cancel", token, `{"reason":"tool broke"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ResolveDispute", func(t *testing.T) {
		rental := &domain.Rental{ID: "rental-1", Status: domain.RentalStatusCancelled}
		svc.On("ResolveDispute", mock.Anything, "lender-1", "rental-1", "renter refunded", domain.RentalStatusCancelled).
			Return(rental, nil).Once()

		rec := doRequest(router, "POST", "/rentals/rental-1/resolve", token,
			`{"resolution":"renter refunded","outcome":"cancelled"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestGetRental(t *testing.T) {
	svc := new(MockRentalService)
	router, token := newAuthedRouter(t, "user-9", func(r *mux.Router) {
		r.HandleFunc("/rentals/{id}", handlers.GetRental(svc)).Methods("GET")
	})

	t.Run("NotParticipant", func(t *testing.T) {
		svc.On("GetRental", mock.Anything, "user-9", "rental-1").
			Return(nil, domain.ErrForbidden).Once()

		rec := doRequest(router, "GET", "/rentals/rental-1", token, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc.On("GetRental", mock.Anything, "user-9", "rental-404").
			Return(nil, domain.ErrNotFound).Once()

		rec := doRequest(router, "GET", "/rentals/rental-404", token, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListRentals(t *testing.T) {
	svc := new(MockRentalService)
	router, token := newAuthedRouter(t, "renter-1", func(r *mux.Router) {
		r.HandleFunc("/rentals", handlers.ListRentals(svc)).Methods("GET")
	})

	t.Run("StatusFilter", func(t *testing.T) {
		rentals := []domain.Rental{{ID: "rental-1", Status: domain.RentalStatusActive}}
		svc.On("ListRentals", mock.Anything, "renter-1", domain.RentalStatusActive, 1, 20).
			Return(rentals, int64(1), nil).Once()

		rec := doRequest(router, "GET", "/rentals?status=active", token, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		var resp handlers.ListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.Total)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		rec := doRequest(router, "GET", "/rentals?status=paused", token, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
