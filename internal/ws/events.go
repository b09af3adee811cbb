package ws

import (
	"encoding/json"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
)

const TypeMessageReceived = "message.received"

// Message is the envelope for every event pushed over a WebSocket.
type Message struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

func NewMessage(eventType string, payload any) Message {
	return Message{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// RentalEventPayload is pushed to both parties whenever a rental changes
// state.
type RentalEventPayload struct {
	RentalID string              `json:"rental_id"`
	ItemID   string              `json:"item_id"`
	Status   domain.RentalStatus `json:"status"`
	StartAt  time.Time           `json:"start_at"`
	EndAt    time.Time           `json:"end_at"`
}

// EventBroadcaster adapts the hub to the event publishing used by the
// service layer.
type EventBroadcaster struct {
	hub *Hub
}

// NewEventBroadcaster creates a new event broadcaster.
func NewEventBroadcaster(hub *Hub) *EventBroadcaster {
	return &EventBroadcaster{hub: hub}
}

// PublishRentalEvent pushes a rental state change to its renter and lender.
func (b *EventBroadcaster) PublishRentalEvent(eventType string, rental *domain.Rental) {
	payload := RentalEventPayload{
		RentalID: rental.ID,
		ItemID:   rental.ItemID,
		Status:   rental.Status,
		StartAt:  rental.StartAt,
		EndAt:    rental.EndAt,
	}
	b.send([]string{rental.RenterID, rental.LenderID}, NewMessage(eventType, payload))
}

// PublishMessageEvent pushes a new chat message to the rental's
// participants.
func (b *EventBroadcaster) PublishMessageEvent(msg *domain.RentalMessage, participants []string) {
	b.send(participants, NewMessage(TypeMessageReceived, msg))
}

func (b *EventBroadcaster) send(userIDs []string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("failed to encode ws message", "error", err)
		return
	}
	b.hub.Send(userIDs, data)
}
