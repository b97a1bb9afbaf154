package services

import (
	"fmt"
	"time"

	"github.com/akshatsri47/credit-card-approval/config"
	"gopkg.in/gomail.v2"
)

// EmailService provides methods for sending operational email
type EmailService struct {
	dialer   *gomail.Dialer
	from     string
	opsEmail string
}

// NewEmailService creates a new EmailService instance
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer:   dialer,
		from:     cfg.SMTP.From,
		opsEmail: cfg.OpsEmail,
	}
}

// Enabled reports whether an ops recipient is configured
func (s *EmailService) Enabled() bool {
	return s.opsEmail != ""
}

// SendEmail sends an email to the ops address
func (s *EmailService) SendEmail(subject, body string) error {
	if !s.Enabled() {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.opsEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("email send error: %v", err)
	}

	return nil
}

// SendImportReport sends a summary of a finished bulk import
func (s *EmailService) SendImportReport(customers, loans int, importErr error) error {
	subject := "Data import finished"
	status := "completed"
	detail := ""
	if importErr != nil {
		subject = "Data import failed"
		status = "failed"
		detail = fmt.Sprintf("<p>Error: %v</p>", importErr)
	}

	body := fmt.Sprintf(`
		<h2>Data import %s</h2>
		<p>Customers imported: %d</p>
		<p>Loans imported: %d</p>
		%s
		<p>Date: %s</p>
	`, status, customers, loans, detail, time.Now().Format("02.01.2006 15:04:05"))

	return s.SendEmail(subject, body)
}

// SendDecisionNotification sends a loan decision summary
func (s *EmailService) SendDecisionNotification(loanID *uint, customerID uint, approved bool, reason string) error {
	if approved {
		subject := "Loan approved"
		body := fmt.Sprintf(`
			<h2>Loan approved</h2>
			<p>Loan: #%d</p>
			<p>Customer: #%d</p>
			<p>Date: %s</p>
		`, *loanID, customerID, time.Now().Format("02.01.2006 15:04:05"))
		return s.SendEmail(subject, body)
	}

	subject := "Loan application declined"
	body := fmt.Sprintf(`
		<h2>Loan application declined</h2>
		<p>Customer: #%d</p>
		<p>Reason: %s</p>
		<p>Date: %s</p>
	`, customerID, reason, time.Now().Format("02.01.2006 15:04:05"))
	return s.SendEmail(subject, body)
}
