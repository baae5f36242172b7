package service

import (
	"context"
	"fmt"
	"time"

	"homywork-server/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService builds the SendGrid-backed mailer. With enabled false it
// logs the would-be sends instead, which is what local development runs.
func NewEmailService(apiKey, fromEmail, fromName string, enabled bool) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   enabled,
	}
}

func (s *emailService) SendBookingConfirmed(ctx context.Context, guestEmail, guestName, propertyTitle string, checkIn, checkOut time.Time, totalCents int64) error {
	subject := fmt.Sprintf("Booking confirmed: %s", propertyTitle)
	plain := fmt.Sprintf(
		"Hi %s,\n\nYour booking at %s is confirmed.\nCheck-in: %s\nCheck-out: %s\nTotal: %s\n\nEnjoy your stay!",
		guestName, propertyTitle, checkIn.Format("Mon, 02 Jan 2006"), checkOut.Format("Mon, 02 Jan 2006"), formatAmount(totalCents))
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Your booking at <strong>%s</strong> is confirmed.</p><ul><li>Check-in: %s</li><li>Check-out: %s</li><li>Total: %s</li></ul><p>Enjoy your stay!</p>`,
		guestName, propertyTitle, checkIn.Format("Mon, 02 Jan 2006"), checkOut.Format("Mon, 02 Jan 2006"), formatAmount(totalCents))
	return s.send(guestEmail, guestName, subject, plain, html)
}

func (s *emailService) SendHostNewBooking(ctx context.Context, hostEmail, hostName, propertyTitle string, checkIn, checkOut time.Time, payoutCents int64) error {
	subject := fmt.Sprintf("New booking for %s", propertyTitle)
	plain := fmt.Sprintf(
		"Hi %s,\n\nYou have a new booking at %s.\nCheck-in: %s\nCheck-out: %s\nYour payout: %s\n\nThe payout is transferred automatically after check-in.",
		hostName, propertyTitle, checkIn.Format("Mon, 02 Jan 2006"), checkOut.Format("Mon, 02 Jan 2006"), formatAmount(payoutCents))
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>You have a new booking at <strong>%s</strong>.</p><ul><li>Check-in: %s</li><li>Check-out: %s</li><li>Your payout: %s</li></ul><p>The payout is transferred automatically after check-in.</p>`,
		hostName, propertyTitle, checkIn.Format("Mon, 02 Jan 2006"), checkOut.Format("Mon, 02 Jan 2006"), formatAmount(payoutCents))
	return s.send(hostEmail, hostName, subject, plain, html)
}

func (s *emailService) SendPayoutCompleted(ctx context.Context, hostEmail, hostName, propertyTitle string, amountCents int64) error {
	subject := fmt.Sprintf("Payout sent for %s", propertyTitle)
	plain := fmt.Sprintf(
		"Hi %s,\n\nYour payout of %s for %s has been transferred to your connected account.",
		hostName, formatAmount(amountCents), propertyTitle)
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Your payout of <strong>%s</strong> for <strong>%s</strong> has been transferred to your connected account.</p>`,
		hostName, formatAmount(amountCents), propertyTitle)
	return s.send(hostEmail, hostName, subject, plain, html)
}

func (s *emailService) send(to, toName, subject, plainText, htmlContent string) error {
	if !s.enabled {
		logger.Info("Email sending disabled, skipping", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

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

// formatAmount renders a cent amount as euros for email copy.
func formatAmount(cents int64) string {
	return fmt.Sprintf("€%.2f", float64(cents)/100)
}
