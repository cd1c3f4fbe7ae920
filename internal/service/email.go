package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/utils"
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

func (s *emailService) send(to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
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

func (s *emailService) SendOverdueDigest(ctx context.Context, to string, orders []domain.RentalOrder) error {
	var b strings.Builder
	fmt.Fprintf(&b, "The following rental orders are past their due date:\n\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "- Order %s, client %s, due %s, total %s\n",
			o.ID, o.ClientName, o.DueDate, utils.FormatCents(o.TotalCents))
	}
	return s.send(to, "", fmt.Sprintf("%d overdue rental(s)", len(orders)), b.String())
}

func (s *emailService) SendRentalReceipt(ctx context.Context, to, clientName string, order *domain.RentalOrder) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nYour rental was registered.\n\n", clientName)
	for _, li := range order.LineItems {
		fmt.Fprintf(&b, "- %dx %s at %s per %s\n",
			li.Quantity, li.EquipmentName, utils.FormatCents(li.UnitPriceCents), order.BillingPeriod)
	}
	fmt.Fprintf(&b, "\nStart: %s\nDue: %s\nTotal: %s\n",
		order.StartDate, order.DueDate, utils.FormatCents(order.TotalCents))
	return s.send(to, clientName, "Rental confirmation", b.String())
}
