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
	return &emailService{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName}
}

func (s *emailService) send(to, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

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

func (s *emailService) SendBookingConfirmation(ctx context.Context, email, stationName string, startAt time.Time, durationMinutes, costCents int64) error {
	subject := fmt.Sprintf("Booking confirmed - %s", stationName)
	body := fmt.Sprintf(
		"Your charging session at %s is confirmed.\n\nStart: %s\nDuration: %d minutes\nCost: $%.2f\n\nThe VoltMarket Team",
		stationName, startAt.Format(time.RFC1123), durationMinutes, float64(costCents)/100)
	return s.send(email, subject, body)
}

func (s *emailService) SendBookingCancellation(ctx context.Context, email, stationName string, refundCents int64) error {
	subject := fmt.Sprintf("Booking cancelled - %s", stationName)
	body := fmt.Sprintf(
		"Your booking at %s was cancelled and $%.2f was returned to your wallet.\n\nThe VoltMarket Team",
		stationName, float64(refundCents)/100)
	return s.send(email, subject, body)
}

func (s *emailService) SendStationReviewNotice(ctx context.Context, email, stationName string, approved bool) error {
	verdict := "approved"
	if !approved {
		verdict = "rejected"
	}
	subject := fmt.Sprintf("Station review result - %s", stationName)
	body := fmt.Sprintf("Your station '%s' has been %s by the VoltMarket moderation team.", stationName, verdict)
	return s.send(email, subject, body)
}
