package infrastructure

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// ResendMailer sends transactional mail through Resend. Without an API key it logs and skips.
type ResendMailer struct {
	sender string
	client *resend.Client
}

func NewResendMailer(apiKey, sender string) *ResendMailer {
	if apiKey == "" || sender == "" {
		log.Println("[mail] EMAIL_API_KEY or EMAIL_SENDER not set; welcome mail disabled")
		return &ResendMailer{}
	}
	return &ResendMailer{
		sender: sender,
		client: resend.NewClient(apiKey),
	}
}

func (m *ResendMailer) SendWelcome(ctx context.Context, recipientEmail, name string) error {
	if m.client == nil {
		return nil
	}

	greeting := "Welcome"
	if name != "" {
		greeting = fmt.Sprintf("Welcome, %s", name)
	}

	params := &resend.SendEmailRequest{
		From:    m.sender,
		To:      []string{recipientEmail},
		Subject: "Welcome to Stock Tracker",
		Text:    fmt.Sprintf("%s! Your account is ready. Start building your watchlist.", greeting),
	}

	response, err := m.client.Emails.Send(params)
	if err != nil {
		return err
	}

	log.Printf("[mail] welcome mail sent, id=%s", response.Id)
	return nil
}
