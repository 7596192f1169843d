package infrastructure

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends transactional mail through SendGrid. It is the only
// notification side effect the backend performs.
type EmailService struct {
	apiKey     string
	senderName string
	sender     string
	baseURL    string
}

func NewEmailService(apiKey, senderName, sender, baseURL string) *EmailService {
	return &EmailService{
		apiKey:     apiKey,
		senderName: senderName,
		sender:     sender,
		baseURL:    baseURL,
	}
}

func (e *EmailService) SendPasswordReset(recipientEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", e.baseURL, token)

	from := mail.NewEmail(e.senderName, e.sender)
	subject := "Password Reset Request"
	to := mail.NewEmail("", recipientEmail)

	plainTextContent := fmt.Sprintf("You requested a password reset. Open this link to choose a new password: %s (expires in 1 hour)", resetURL)
	htmlContent := fmt.Sprintf(`<p>You requested a password reset</p>
<p>Click this link to reset your password:</p>
<a href="%s">%s</a>
<p>This link will expire in 1 hour.</p>`, resetURL, resetURL)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	client := sendgrid.NewSendClient(e.apiKey)
	response, err := client.Send(message)
	if err != nil {
		log.Println("Failed to send password reset email:", err)
		return err
	}

	log.Println("Password reset email sent. Status Code:", response.StatusCode)
	return nil
}
