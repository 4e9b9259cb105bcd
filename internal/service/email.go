package service

import (
	"context"
	"fmt"

	"roomledger-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
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

func (s *emailService) SendOverdueNotice(ctx context.Context, toEmail, toName, roomName, monthYear string, amount decimal.Decimal) error {
	subject := fmt.Sprintf("Payment overdue for %s", monthYear)
	body := fmt.Sprintf(
		"Hello %s,\n\nThe rent payment of %s for room %s, month %s, is overdue.\nPlease settle it as soon as possible.\n\nBest regards,\n%s",
		toName, amount.StringFixed(2), roomName, monthYear, s.fromName,
	)
	return s.send(toEmail, toName, subject, body)
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, toEmail, toName, monthYear string, amount decimal.Decimal) error {
	subject := fmt.Sprintf("Payment received for %s", monthYear)
	body := fmt.Sprintf(
		"Hello %s,\n\nWe have registered your payment of %s for month %s.\nThank you.\n\nBest regards,\n%s",
		toName, amount.StringFixed(2), monthYear, s.fromName,
	)
	return s.send(toEmail, toName, subject, body)
}

func (s *emailService) send(toEmail, toName, subject, plainText string) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}
