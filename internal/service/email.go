package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *emailService) SendApprovalNotification(ctx context.Context, email, name, equipmentName, notes string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour borrow request for %s has been approved.", name, equipmentName)
	if notes != "" {
		body += fmt.Sprintf("\n\nNotes from the equipment office: %s", notes)
	}
	body += "\n\nPlease collect the equipment at the stated location.\n\nEquipment Lending Office"
	return s.send(email, fmt.Sprintf("Borrow request approved: %s", equipmentName), body)
}

func (s *emailService) SendRejectionNotification(ctx context.Context, email, name, equipmentName, reason string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour borrow request for %s has been rejected.", name, equipmentName)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nEquipment Lending Office"
	return s.send(email, fmt.Sprintf("Borrow request rejected: %s", equipmentName), body)
}

func (s *emailService) SendReturnConfirmation(ctx context.Context, email, name, equipmentName string) error {
	body := fmt.Sprintf("Hello %s,\n\nThe return of %s has been recorded. Thank you.\n\nEquipment Lending Office", name, equipmentName)
	return s.send(email, fmt.Sprintf("Return recorded: %s", equipmentName), body)
}

func (s *emailService) SendDueReminder(ctx context.Context, email, name, equipmentName, dueDate string) error {
	body := fmt.Sprintf("Hello %s,\n\nA reminder that %s is due back on %s.\n\nEquipment Lending Office", name, equipmentName, dueDate)
	return s.send(email, fmt.Sprintf("Due tomorrow: %s", equipmentName), body)
}

func (s *emailService) SendOverdueNotice(ctx context.Context, email, name, equipmentName, dueDate string) error {
	body := fmt.Sprintf("Hello %s,\n\n%s was due back on %s and has not been returned. Please return it as soon as possible.\n\nEquipment Lending Office", name, equipmentName, dueDate)
	return s.send(email, fmt.Sprintf("Overdue: %s", equipmentName), body)
}
