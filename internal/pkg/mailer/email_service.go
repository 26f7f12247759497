package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendFraudAlert(toEmail, orderID, riskLevel, reason string) error
	SendDecisionCopy(toEmail, orderID, decision, politeMessage string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

// SendFraudAlert notifies the operations inbox about a flagged decision.
func (s *emailService) SendFraudAlert(toEmail, orderID, riskLevel, reason string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Fraud alert for order %s (%s risk)", orderID, riskLevel))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Fraud Alert</h2>
			<p>An order issue was flagged during automated adjudication.</p>
			<ul>
				<li><b>Order:</b> %s</li>
				<li><b>Risk level:</b> %s</li>
			</ul>
			<p><b>Reason:</b> %s</p>
			<p>Please review the case in the operations dashboard.</p>
		</div>
	`, orderID, riskLevel, reason)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send fraud alert for %s: %v\n", orderID, err)
		return err
	}

	fmt.Printf("[MAILER] Fraud alert sent for order %s\n", orderID)
	return nil
}

// SendDecisionCopy mails the customer-facing verdict to the customer.
func (s *emailService) SendDecisionCopy(toEmail, orderID, decision, politeMessage string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Update on your order %s", orderID))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Order Update</h2>
			<p>%s</p>
			<p style="color: #888; font-size: 12px;">Reference: %s / %s</p>
		</div>
	`, politeMessage, orderID, decision)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send decision copy for %s: %v\n", orderID, err)
		return err
	}

	fmt.Printf("[MAILER] Decision copy sent for order %s\n", orderID)
	return nil
}
