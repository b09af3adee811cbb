// Package api provides HTTP routing for the REST API.
package api

import (
	"database/sql"

	"github.com/gorilla/mux"

	"toolshare-backend/internal/api/handlers"
	"toolshare-backend/internal/api/middleware"
	"toolshare-backend/internal/config"
	"toolshare-backend/internal/security"
	"toolshare-backend/internal/service"
	"toolshare-backend/internal/ws"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Rentals      service.RentalService
	Tools        service.ToolService
	Availability service.AvailabilityService
	Reviews      service.ReviewService
	Messages     service.MessageService
	Profiles     service.ProfileService
}

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(db *sql.DB, svcs Services, tokens security.TokenManager, hub *ws.Hub, booking config.BookingConfig) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.Logging)
	r.Use(middleware.ErrorRecovery)

	// Liveness probe, outside auth.
	r.HandleFunc("/healthz", handlers.HealthCheck(db)).Methods("GET")

	pickupHour := booking.PickupHourUTC

	// The browse surface needs no account: quotes, listings, reviews, and
	// availability calendars are readable by anyone.
	public := r.PathPrefix("/api/v1").Subrouter()
	authed := middleware.Auth(tokens)
	public.HandleFunc("/quotes", handlers.GetQuote(svcs.Rentals, pickupHour)).Methods("POST")
	public.HandleFunc("/items", handlers.ListItems(svcs.Tools)).Methods("GET")
	// Registered before /items/{id} so mux never captures "mine" as an ID.
	public.Handle("/items/mine", authed(handlers.ListMyItems(svcs.Tools))).Methods("GET")
	public.HandleFunc("/items/{id}", handlers.GetItem(svcs.Tools)).Methods("GET")
	public.HandleFunc("/items/{id}/reviews", handlers.ListItemReviews(svcs.Reviews)).Methods("GET")
	public.HandleFunc("/items/{id}/availability", handlers.ListBlocks(svcs.Availability, pickupHour)).Methods("GET")
	public.HandleFunc("/items/{id}/availability/check", handlers.CheckAvailability(svcs.Availability, pickupHour)).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(tokens))

	// Rentals
	api.HandleFunc("/rentals", handlers.CreateRental(svcs.Rentals, pickupHour)).Methods("POST")
	api.HandleFunc("/rentals", handlers.ListRentals(svcs.Rentals)).Methods("GET")
	api.HandleFunc("/lendings", handlers.ListLendings(svcs.Rentals)).Methods("GET")
	api.HandleFunc("/rentals/{id}", handlers.GetRental(svcs.Rentals)).Methods("GET")
	api.HandleFunc("/rentals/{id}/approve", handlers.ApproveRental(svcs.Rentals)).Methods("POST")
	api.HandleFunc("/rentals/{id}/activate", handlers.ActivateRental(svcs.Rentals)).Methods("POST")
	api.HandleFunc("/rentals/{id}/complete", handlers.CompleteRental(svcs.Rentals)).Methods("POST")
	api.HandleFunc("/rentals/{id}/cancel", handlers.CancelRental(svcs.Rentals)).Methods("POST")
	api.HandleFunc("/rentals/{id}/dispute", handlers.DisputeRental(svcs.Rentals)).Methods("POST")
	api.HandleFunc("/rentals/{id}/resolve", handlers.ResolveDispute(svcs.Rentals)).Methods("POST")

	// Rental chat
	api.HandleFunc("/rentals/{id}/messages", handlers.SendMessage(svcs.Messages)).Methods("POST")
	api.HandleFunc("/rentals/{id}/messages", handlers.ListMessages(svcs.Messages)).Methods("GET")
	api.HandleFunc("/messages/unread", handlers.UnreadCounts(svcs.Messages)).Methods("GET")

	// Reviews
	api.HandleFunc("/rentals/{id}/reviews", handlers.CreateReview(svcs.Reviews)).Methods("POST")

	// Items
	api.HandleFunc("/items", handlers.CreateItem(svcs.Tools)).Methods("POST")
	api.HandleFunc("/items/{id}", handlers.UpdateItem(svcs.Tools)).Methods("PUT")
	api.HandleFunc("/items/{id}", handlers.DeactivateItem(svcs.Tools)).Methods("DELETE")

	// Manual availability blocks
	api.HandleFunc("/items/{id}/blocks", handlers.CreateBlock(svcs.Availability, pickupHour)).Methods("POST")
	api.HandleFunc("/items/{id}/blocks/{blockID}", handlers.DeleteBlock(svcs.Availability)).Methods("DELETE")

	// Profiles
	api.HandleFunc("/profiles/me", handlers.UpsertProfile(svcs.Profiles)).Methods("PUT")
	api.HandleFunc("/profiles/{id}", handlers.GetProfile(svcs.Profiles)).Methods("GET")

	// Event push
	api.HandleFunc("/ws", handlers.WebSocketUpgrade(hub)).Methods("GET")

	return r
}
