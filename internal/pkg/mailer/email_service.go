package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendIntakeSummary(toEmail, patientName, summary string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) SendIntakeSummary(toEmail, patientName, summary string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("New intake: %s", patientName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New pre-consultation intake</h2>
			<pre style="background: #f6f6f6; padding: 12px; white-space: pre-wrap;">%s</pre>
		</div>
	`, htmlEscape(summary))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send intake summary to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Intake summary sent to %s\n", toEmail)
	return nil
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
