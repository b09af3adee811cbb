package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendRentalRequestNotification(ctx context.Context, lenderEmail, renterName, itemTitle string) error {
	subject := fmt.Sprintf("New rental request: %s", itemTitle)
	body := fmt.Sprintf("%s has requested to rent your %s.\n\nOpen the app to approve or decline the request.", renterName, itemTitle)
	return s.send(lenderEmail, subject, body)
}

func (s *emailService) SendRentalApprovalNotification(ctx context.Context, renterEmail, itemTitle string) error {
	subject := fmt.Sprintf("Rental approved: %s", itemTitle)
	body := fmt.Sprintf("Your rental request for %s has been approved.\n\nCoordinate pickup with the lender in the app.", itemTitle)
	return s.send(renterEmail, subject, body)
}

func (s *emailService) SendRentalCancellationNotification(ctx context.Context, email, itemTitle, reason string) error {
	subject := fmt.Sprintf("Rental cancelled: %s", itemTitle)
	body := fmt.Sprintf("The rental for %s has been cancelled.", itemTitle)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	return s.send(email, subject, body)
}

func (s *emailService) SendRentalCompletionNotification(ctx context.Context, email, itemTitle string) error {
	subject := fmt.Sprintf("Rental completed: %s", itemTitle)
	body := fmt.Sprintf("The rental for %s is complete. You can now leave a review for the other party.", itemTitle)
	return s.send(email, subject, body)
}

func (s *emailService) SendReturnReminder(ctx context.Context, renterEmail, itemTitle string, endAt time.Time) error {
	subject := fmt.Sprintf("Return reminder: %s", itemTitle)
	body := fmt.Sprintf("Your rental of %s is due back on %s.", itemTitle, endAt.Format("Monday, January 2"))
	return s.send(renterEmail, subject, body)
}
