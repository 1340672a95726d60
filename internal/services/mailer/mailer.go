// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

// Package mailer composes and sends transactional email over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"codeberg.org/hverlin/inkwell/internal/config"
	"github.com/wneessen/go-mail"
)

// ErrDelivery marks a failed send. There is no retry or queue; callers
// surface the failure to the client.
var ErrDelivery = errors.New("mail delivery failed")

// sendTimeout bounds the SMTP dial and send.
const sendTimeout = 15 * time.Second

// Service sends contact and recovery mail.
type Service struct {
	cfg       *config.SMTPConfig
	recipient string
	baseURL   string
}

// NewService creates a new mailer. The recipient is the operator address for
// contact-form mail; baseURL is used to build recovery links.
func NewService(cfg *config.SMTPConfig, recipient, baseURL string) (*Service, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}
	if recipient == "" {
		recipient = cfg.From
	}

	return &Service{
		cfg:       cfg,
		recipient: recipient,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// SendContact forwards a contact-form submission to the operator.
func (s *Service) SendContact(ctx context.Context, name, email, phone, message string) error {
	body := fmt.Sprintf("name: %s\nemail: %s\ncontact: %s\nyour message: %s\n",
		name, email, phone, message)

	msg, err := s.newMsg(s.recipient, "Contact Request Received")
	if err != nil {
		return err
	}
	msg.SetBodyString(mail.TypeTextPlain, body)

	return s.send(ctx, msg)
}

// SendRecovery mails a password-recovery link embedding the token.
func (s *Service) SendRecovery(ctx context.Context, toEmail, token string) error {
	recoveryURL := fmt.Sprintf("%s/account-recovery/%s", s.baseURL, token)
	escaped := html.EscapeString(recoveryURL)
	body := fmt.Sprintf(
		"<html><body><p>We have received a request to reset your password.</p>"+
			"<p>Click this url to recover your password<br>"+
			"<a href=%q>%s</a></p>"+
			"<p>If it wasn't you, please ignore the email</p></body></html>",
		escaped, escaped)

	msg, err := s.newMsg(toEmail, "Password Recovery")
	if err != nil {
		return err
	}
	msg.SetBodyString(mail.TypeTextHTML, body)

	return s.send(ctx, msg)
}

func (s *Service) newMsg(to, subject string) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	return msg, nil
}

// send delivers a message via SMTP using go-mail.
func (s *Service) send(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(sendTimeout),
	}

	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Implicit TLS (SSL) for port 465, STARTTLS for others
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	return nil
}
