package utils

import (
	"fmt"
	"sync"

	"github.com/Govind-619/BillSphere/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends an HTML email
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer delivers mail through the configured SMTP server
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// logMailer is used when SMTP is not configured
type logMailer struct{}

func (logMailer) Send(to, subject, _ string) error {
	LogInfo("SMTP not configured, skipping email %q to %s", subject, to)
	return nil
}

var (
	mailerMu sync.RWMutex
	mailer   Mailer
)

// SetMailer replaces the mailer used by SendEmail
func SetMailer(m Mailer) {
	mailerMu.Lock()
	defer mailerMu.Unlock()
	mailer = m
}

func currentMailer() Mailer {
	mailerMu.RLock()
	m := mailer
	mailerMu.RUnlock()
	if m != nil {
		return m
	}
	cfg := config.AppConfig
	if cfg == nil || cfg.SMTPHost == "" {
		return logMailer{}
	}
	return &SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}
}

// SendEmail sends an email through the current mailer
func SendEmail(to, subject, body string) error {
	return currentMailer().Send(to, subject, body)
}

// SendSubscriptionStatusEmail tells a customer their subscription changed status
func SendSubscriptionStatusEmail(to, customerName, productName, status, notes string) error {
	subject := fmt.Sprintf("Your %s subscription is %s", productName, status)
	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>Your subscription to <strong>%s</strong> is now <strong>%s</strong>.</p>
		<p>%s</p>
	`, customerName, productName, status, notes)
	return SendEmail(to, subject, body)
}

// SendOfferEmail sends a new offer to a lead or customer
func SendOfferEmail(to, customerName, reference, productName, price, validUntil string) error {
	subject := fmt.Sprintf("Offer %s for %s", reference, productName)
	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>We have prepared an offer for <strong>%s</strong> at <strong>%s</strong>.</p>
		<p>Reference: %s. This offer is valid until %s.</p>
	`, customerName, productName, price, reference, validUntil)
	return SendEmail(to, subject, body)
}
