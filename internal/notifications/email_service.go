package notifications

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"flyviet/internal/bookings"
	"flyviet/internal/shared/config"
)

// EmailService renders and sends booking emails.
type EmailService interface {
	SendBookingEmail(ctx context.Context, event bookings.BookingEvent) error
}

type smtpEmailService struct {
	cfg config.EmailConfig
}

// NewSMTPEmailService builds an SMTP-backed email sender. SMTP settings
// must be present; use the log service otherwise.
func NewSMTPEmailService(cfg config.EmailConfig) (EmailService, error) {
	if cfg.SMTPHost == "" || cfg.FromEmail == "" {
		return nil, fmt.Errorf("SMTP host and from address are required")
	}
	return &smtpEmailService{cfg: cfg}, nil
}

func (s *smtpEmailService) SendBookingEmail(ctx context.Context, event bookings.BookingEvent) error {
	subject, body := renderBookingEmail(event)

	msg := strings.Builder{}
	msg.WriteString(fmt.Sprintf("From: FlyViet <%s>\r\n", s.cfg.FromEmail))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", event.ContactEmail))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{event.ContactEmail}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send booking email: %w", err)
	}
	return nil
}

// logEmailService writes emails to the log instead of sending them.
type logEmailService struct{}

func NewLogEmailService() EmailService {
	return logEmailService{}
}

func (logEmailService) SendBookingEmail(ctx context.Context, event bookings.BookingEvent) error {
	subject, body := renderBookingEmail(event)
	log.Printf("[email] to=%s subject=%q\n%s", event.ContactEmail, subject, body)
	return nil
}

func renderBookingEmail(event bookings.BookingEvent) (subject, body string) {
	switch event.Type {
	case bookings.EventBookingCreated:
		subject = fmt.Sprintf("Booking confirmation %s", event.BookingNumber)
		lines := []string{
			fmt.Sprintf("Dear %s,", event.ContactName),
			"",
			fmt.Sprintf("Your booking %s has been confirmed.", event.BookingNumber),
			fmt.Sprintf("Total amount: %.0f VND", event.TotalAmount),
			fmt.Sprintf("Payment method: %s", event.PaymentMethod),
		}
		if event.PaymentStatus == "unpaid" {
			lines = append(lines, "",
				"Your payment is pending. Please complete the bank transfer to finalize your ticket.")
		}
		lines = append(lines, "", "Thank you for flying with FlyViet.")
		body = strings.Join(lines, "\n")

	case bookings.EventBookingPaid:
		subject = fmt.Sprintf("Payment received for booking %s", event.BookingNumber)
		body = strings.Join([]string{
			fmt.Sprintf("Dear %s,", event.ContactName),
			"",
			fmt.Sprintf("We have received your payment of %.0f VND for booking %s.", event.TotalAmount, event.BookingNumber),
			"Your e-ticket is now active.",
		}, "\n")

	case bookings.EventBookingCancelled:
		subject = fmt.Sprintf("Booking %s cancelled", event.BookingNumber)
		body = strings.Join([]string{
			fmt.Sprintf("Dear %s,", event.ContactName),
			"",
			fmt.Sprintf("Your booking %s has been cancelled.", event.BookingNumber),
			"If you did not request this, please contact our support team.",
		}, "\n")

	default:
		subject = fmt.Sprintf("Update on booking %s", event.BookingNumber)
		body = fmt.Sprintf("Dear %s,\n\nThere is an update on your booking %s.",
			event.ContactName, event.BookingNumber)
	}

	return subject, body
}
