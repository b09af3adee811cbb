package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

var ErrEmptyMessage = errors.New("message body cannot be empty")

type messageService struct {
	msgRepo    repository.MessageRepository
	rentalRepo repository.RentalRepository
	events     EventPublisher
}

func NewMessageService(msgRepo repository.MessageRepository, rentalRepo repository.RentalRepository, events EventPublisher) MessageService {
	return &messageService{msgRepo: msgRepo, rentalRepo: rentalRepo, events: events}
}

func (s *messageService) SendMessage(ctx context.Context, senderID, rentalID, body string) (*domain.RentalMessage, error) {
	if body == "" {
		return nil, ErrEmptyMessage
	}

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !rental.IsParticipant(senderID) {
		return nil, domain.ErrForbidden
	}

	msg := &domain.RentalMessage{
		ID:       uuid.NewString(),
		RentalID: rentalID,
		SenderID: senderID,
		Body:     body,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	s.events.PublishMessageEvent(msg, []string{rental.RenterID, rental.LenderID})

	return msg, nil
}

// ListMessages returns the conversation and marks the other party's
// messages as read.
func (s *messageService) ListMessages(ctx context.Context, userID, rentalID string) ([]domain.RentalMessage, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !rental.IsParticipant(userID) {
		return nil, domain.ErrForbidden
	}

	msgs, err := s.msgRepo.ListByRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	_ = s.msgRepo.MarkRead(ctx, rentalID, userID)

	return msgs, nil
}

func (s *messageService) UnreadCounts(ctx context.Context, userID string) (map[string]int, error) {
	return retryRead(ctx, func() (map[string]int, error) {
		return s.msgRepo.UnreadCounts(ctx, userID)
	})
}
