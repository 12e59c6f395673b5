package alert

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

// ConsoleSender prints the alert to stdout instead of delivering it.
type ConsoleSender struct{}

// Send writes the alert preview to stdout.
func (s *ConsoleSender) Send(to []string, subject, htmlBody string) error {
	fmt.Printf("To:      %s\n", strings.Join(to, ", "))
	fmt.Printf("Subject: %s\n\n", subject)
	fmt.Println(htmlBody)
	_, err := fmt.Fprintln(os.Stderr, "Alert rendered to console (no SMTP host configured or dry run)")
	return err
}

// SMTPSender delivers alerts through an SMTP server.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Send delivers the alert as an HTML email to all recipients.
func (s *SMTPSender) Send(to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return fmt.Errorf("no alert recipients configured")
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}

	if err := smtp.SendMail(addr, auth, s.From, to, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send alert via %s: %w", addr, err)
	}
	return nil
}
